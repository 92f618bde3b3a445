package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestReturn_DesdeCliente_ReingresaStock(t *testing.T) {
	env := newInvEnv([]string{prodA}, []string{whA})
	env.stockRepo.set(prodA, whA, qty(5))

	resp, err := env.returnUC.Process(context.Background(), inventory.ReturnInput{
		ProductID:   prodA,
		WarehouseID: whA,
		Type:        entity.ReturnFromCustomer,
		Quantity:    qty(2),
		Reason:      "producto defectuoso",
		UserID:      "u-1",
	})
	require.NoError(t, err)

	assert.True(t, env.stockRepo.qty(prodA, whA).Equal(qty(7)))
	assert.Equal(t, string(entity.ReturnFromCustomer), resp.ReturnType)
	require.Len(t, env.returnRepo.returns, 1)
}

func TestReturn_AProveedor_DescuentaStock(t *testing.T) {
	env := newInvEnv([]string{prodA}, []string{whA})
	env.stockRepo.set(prodA, whA, qty(5))

	_, err := env.returnUC.Process(context.Background(), inventory.ReturnInput{
		ProductID:   prodA,
		WarehouseID: whA,
		Type:        entity.ReturnToSupplier,
		Quantity:    qty(3),
	})
	require.NoError(t, err)

	assert.True(t, env.stockRepo.qty(prodA, whA).Equal(qty(2)))
}

func TestReturn_AProveedorSinStock_FallaSinEfectos(t *testing.T) {
	env := newInvEnv([]string{prodA}, []string{whA})
	env.stockRepo.set(prodA, whA, qty(1))

	_, err := env.returnUC.Process(context.Background(), inventory.ReturnInput{
		ProductID:   prodA,
		WarehouseID: whA,
		Type:        entity.ReturnToSupplier,
		Quantity:    qty(2),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, env.stockRepo.qty(prodA, whA).Equal(qty(1)))
	assert.Empty(t, env.returnRepo.returns)
}

func TestReturn_TipoInvalido_Rechazado(t *testing.T) {
	env := newInvEnv([]string{prodA}, []string{whA})

	_, err := env.returnUC.Process(context.Background(), inventory.ReturnInput{
		ProductID:   prodA,
		WarehouseID: whA,
		Type:        entity.ReturnType("perdida"),
		Quantity:    qty(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
