package xmlport_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/xmlport"
)

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_IdaYVuelta(t *testing.T) {
	codec := xmlport.NewCodec()
	in := []dto.XMLProductRecord{
		{
			ID:           "p-001",
			SKU:          "SKU-001",
			Name:         "Tornillo 3mm",
			Description:  "Caja por 100 unidades",
			CategoryCode: "FERR",
			ReorderLevel: decimal.NewFromInt(20),
			UnitCost:     decimal.RequireFromString("1.50"),
		},
		{
			ID:   "p-002",
			SKU:  "SKU-002",
			Name: "Tuerca 3mm",
		},
	}

	data, err := codec.EncodeProducts(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<products")
	assert.Contains(t, string(data), `count="2"`)

	out, err := codec.DecodeProducts(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "SKU-001", out[0].SKU)
	assert.Equal(t, "Tornillo 3mm", out[0].Name)
	assert.Equal(t, "FERR", out[0].CategoryCode)
	assert.True(t, out[0].ReorderLevel.Equal(decimal.NewFromInt(20)))
	assert.True(t, out[0].UnitCost.Equal(decimal.RequireFromString("1.50")))
	assert.Equal(t, "SKU-002", out[1].SKU)
	assert.True(t, out[1].UnitCost.IsZero())
}

func TestDecodeProducts_XMLMalformado(t *testing.T) {
	codec := xmlport.NewCodec()

	_, err := codec.DecodeProducts([]byte("<products><product>"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecodeProducts_RaizIncorrecta(t *testing.T) {
	codec := xmlport.NewCodec()

	_, err := codec.DecodeProducts([]byte("<inventario></inventario>"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecodeProducts_SinSKU_Rechazado(t *testing.T) {
	codec := xmlport.NewCodec()
	doc := `<products><product id="p-001"><name>Sin SKU</name></product></products>`

	_, err := codec.DecodeProducts([]byte(doc))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecodeProducts_NumeroInvalido_Rechazado(t *testing.T) {
	codec := xmlport.NewCodec()
	doc := `<products><product id="p-001"><name>X</name><sku>S</sku><unit_cost>caro</unit_cost></product></products>`

	_, err := codec.DecodeProducts([]byte(doc))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "unit_cost")
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestEncodeCategories_EscribePathComoCodigos(t *testing.T) {
	codec := xmlport.NewCodec()
	data, err := codec.EncodeCategories([]dto.XMLCategoryRecord{
		{
			Code:     "LAPTOP",
			Name:     "Portátiles",
			ParentID: "cat-elec",
			Level:    1,
			Path:     []string{"ELEC", "LAPTOP"},
		},
	})
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `<category code="LAPTOP">`)
	assert.Contains(t, s, "<level>1</level>")
	assert.Contains(t, s, "<code>ELEC</code>")
	assert.Contains(t, s, "<code>LAPTOP</code>")
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

func samplePO() dto.XMLPORecord {
	orderDate := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	return dto.XMLPORecord{
		ID:         "po-001",
		SupplierID: "s-001",
		Supplier:   "Distribuidora Norte",
		OrderedBy:  "u-001",
		Status:     "pending",
		OrderDate:  &orderDate,
		Notes:      "reposición mensual",
		Items: []dto.XMLPOItemRecord{
			{
				ID:          "item-1",
				ProductID:   "p-001",
				ProductName: "Tornillo 3mm",
				ProductSKU:  "SKU-001",
				Quantity:    decimal.NewFromInt(100),
				UnitCost:    decimal.RequireFromString("1.50"),
				WarehouseID: "w-001",
				Warehouse:   "Bodega Central",
			},
		},
	}
}

func TestOrdenesDeCompra_IdaYVuelta(t *testing.T) {
	codec := xmlport.NewCodec()

	data, err := codec.EncodePurchaseOrders([]dto.XMLPORecord{samplePO()})
	require.NoError(t, err)
	assert.Contains(t, string(data), "<total_cost>150</total_cost>")

	out, err := codec.DecodePurchaseOrders(data)
	require.NoError(t, err)
	require.Len(t, out, 1)

	po := out[0]
	assert.Equal(t, "po-001", po.ID)
	assert.Equal(t, "s-001", po.SupplierID)
	assert.Equal(t, "pending", po.Status)
	require.NotNil(t, po.OrderDate)
	assert.True(t, po.OrderDate.Equal(time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)))

	require.Len(t, po.Items, 1)
	it := po.Items[0]
	assert.Equal(t, "p-001", it.ProductID)
	assert.Equal(t, "SKU-001", it.ProductSKU)
	assert.Equal(t, "Tornillo 3mm", it.ProductName)
	assert.True(t, it.Quantity.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "w-001", it.WarehouseID)
}

func TestDecodePurchaseOrders_SinSupplierID_Rechazado(t *testing.T) {
	codec := xmlport.NewCodec()
	doc := `<purchase_orders><purchase_order id="po-1"><status>pending</status></purchase_order></purchase_orders>`

	_, err := codec.DecodePurchaseOrders([]byte(doc))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecodePurchaseOrders_ProductIDDesdeAtributo(t *testing.T) {
	codec := xmlport.NewCodec()
	// Sin <product_id> explícito: el id se toma del atributo de <product>.
	doc := strings.TrimSpace(`
<purchase_orders>
  <purchase_order id="po-1">
    <supplier_id>s-001</supplier_id>
    <items>
      <item>
        <product id="p-009" sku="SKU-9">Remache</product>
        <quantity>5</quantity>
        <unit_cost>2</unit_cost>
        <warehouse_id>w-001</warehouse_id>
      </item>
    </items>
  </purchase_order>
</purchase_orders>`)

	out, err := codec.DecodePurchaseOrders([]byte(doc))
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].Items, 1)
	assert.Equal(t, "p-009", out[0].Items[0].ProductID)
	assert.Equal(t, "Remache", out[0].Items[0].ProductName)
}

func TestDecodePurchaseOrders_ItemSinBodega_Rechazado(t *testing.T) {
	codec := xmlport.NewCodec()
	doc := `<purchase_orders><purchase_order><supplier_id>s-001</supplier_id><items><item><product_id>p-001</product_id><quantity>5</quantity></item></items></purchase_order></purchase_orders>`

	_, err := codec.DecodePurchaseOrders([]byte(doc))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecodePurchaseOrders_FechaSoloDia_Aceptada(t *testing.T) {
	codec := xmlport.NewCodec()
	doc := `<purchase_orders><purchase_order><supplier_id>s-001</supplier_id><expected_delivery>2026-09-30</expected_delivery></purchase_order></purchase_orders>`

	out, err := codec.DecodePurchaseOrders([]byte(doc))
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].ExpectedDelivery)
	assert.Equal(t, 30, out[0].ExpectedDelivery.Day())
}
