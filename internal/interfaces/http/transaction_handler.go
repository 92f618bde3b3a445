package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TransactionHandler maneja el registro y la consulta de transacciones de stock (protegido).
type TransactionHandler struct {
	registerUC *inventory.RegisterTransactionUseCase
	stockUC    *usecase.StockUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(registerUC *inventory.RegisterTransactionUseCase, stockUC *usecase.StockUseCase) *TransactionHandler {
	return &TransactionHandler{registerUC: registerUC, stockUC: stockUC}
}

// Register godoc
// @Summary      Registrar transacción de stock
// @Description  Registra una entrada (in), salida (out) o ajuste (adjust). Los traslados usan /transactions/transfer.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "product_id, warehouse_id, type (in|out|adjust), quantity, note"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Register(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	txnType, err := entity.ParseTransactionType(in.Type)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser in, out o adjust"})
	}
	txn, err := h.registerUC.Register(c.Context(), inventory.TransactionInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Type:        txnType,
		Quantity:    in.Quantity,
		Note:        in.Note,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}

// Transfer godoc
// @Summary      Trasladar stock entre bodegas
// @Description  Operación atómica de dos patas: out en la bodega origen e in en la destino.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, from_warehouse_id, to_warehouse_id, quantity, note"
// @Success      201   {object}  map[string]dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/transfer [post]
func (h *TransactionHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, inTxn, err := h.registerUC.Transfer(c.Context(), inventory.TransferInput{
		ProductID:       in.ProductID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		Note:            in.Note,
		UserID:          GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"out": out, "in": inTxn})
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        type          query  string  false  "Filtrar por tipo (in|out|adjust|transfer)"
// @Param        from          query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit         query  int     false  "Límite (default 50)"
// @Param        offset        query  int     false  "Offset"
// @Success      200  {array}  dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	filter := repository.TransactionFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		Type:        entity.TransactionType(c.Query("type")),
	}
	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido: usar RFC3339 o YYYY-MM-DD"})
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido: usar RFC3339 o YYYY-MM-DD"})
	}
	filter.From, filter.To = from, to

	list, err := h.stockUC.ListTransactions(filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "transactions": list})
}

// parseTimeParam acepta RFC3339 o fecha simple; vacío devuelve nil.
func parseTimeParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
