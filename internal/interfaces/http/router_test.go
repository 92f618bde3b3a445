package http_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
)

// La tabla de rutas se arma sin tocar los casos de uso, así que basta con
// dependencias en cero para verificar la superficie HTTP.
func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: "x"})

	out := make(map[string]bool)
	for _, route := range app.GetRoutes() {
		out[fmt.Sprintf("%s %s", route.Method, route.Path)] = true
	}
	return out
}

func TestRouter_SuperficieDeStockYAlertas(t *testing.T) {
	routes := registeredRoutes(t)

	// Consultas de stock por producto y por bodega como rutas propias,
	// además del listado con filtros.
	assert.True(t, routes["GET /api/stock/product/:id"], "falta GET /api/stock/product/:id")
	assert.True(t, routes["GET /api/stock/warehouse/:id"], "falta GET /api/stock/warehouse/:id")
	assert.True(t, routes["GET /api/stock"] || routes["GET /api/stock/"], "falta GET /api/stock")

	// La resolución de alertas es idempotente: PUT, no POST.
	assert.True(t, routes["PUT /api/alerts/:id/resolve"], "falta PUT /api/alerts/:id/resolve")
	assert.False(t, routes["POST /api/alerts/:id/resolve"], "resolve no debe registrarse como POST")
}
