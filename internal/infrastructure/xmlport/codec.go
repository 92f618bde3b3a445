// Package xmlport implementa el códec XML de intercambio: exportación con
// encoding/xml (stream de tokens) e importación con etree. El parseo valida
// estructura y elementos requeridos antes de devolver registros, de modo que
// un documento malformado nunca llega al almacenamiento.
package xmlport

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	appxml "github.com/jhoicas/almacen-api/internal/application/xmlport"
	"github.com/jhoicas/almacen-api/internal/domain"
)

var _ appxml.Codec = (*Codec)(nil)

// Codec códec XML de productos, categorías y órdenes de compra.
type Codec struct{}

// NewCodec construye el códec.
func NewCodec() *Codec {
	return &Codec{}
}

// EncodeProducts serializa el documento <products>.
func (c *Codec) EncodeProducts(records []dto.XMLProductRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "products"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "generated_at"}, Value: time.Now().Format(time.RFC3339)},
			{Name: xml.Name{Local: "count"}, Value: strconv.Itoa(len(records))},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	for _, r := range records {
		item := xml.StartElement{
			Name: xml.Name{Local: "product"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: r.ID}},
		}
		if err := enc.EncodeToken(item); err != nil {
			return nil, err
		}
		writeElem(enc, "name", r.Name)
		writeElem(enc, "sku", r.SKU)
		writeElem(enc, "description", r.Description)
		writeElem(enc, "reorder_level", r.ReorderLevel.String())
		writeElem(enc, "unit_cost", r.UnitCost.String())
		writeElem(enc, "category_code", r.CategoryCode)
		if err := enc.EncodeToken(item.End()); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeProducts parsea un documento <products>. Falla con ErrInvalidInput si
// el XML está malformado, la raíz no es <products> o falta sku o name.
func (c *Codec) DecodeProducts(data []byte) ([]dto.XMLProductRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: XML malformado", domain.ErrInvalidInput)
	}
	root := doc.Root()
	if root == nil || root.Tag != "products" {
		return nil, fmt.Errorf("%w: se esperaba raíz <products>", domain.ErrInvalidInput)
	}

	var records []dto.XMLProductRecord
	for _, el := range root.SelectElements("product") {
		r := dto.XMLProductRecord{
			ID:           el.SelectAttrValue("id", ""),
			SKU:          childText(el, "sku"),
			Name:         childText(el, "name"),
			Description:  childText(el, "description"),
			CategoryCode: childText(el, "category_code"),
		}
		if r.SKU == "" || r.Name == "" {
			return nil, fmt.Errorf("%w: producto sin sku o name", domain.ErrInvalidInput)
		}
		var err error
		if r.ReorderLevel, err = childDecimal(el, "reorder_level"); err != nil {
			return nil, err
		}
		if r.UnitCost, err = childDecimal(el, "unit_cost"); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// EncodeCategories serializa el documento <categories>.
func (c *Codec) EncodeCategories(records []dto.XMLCategoryRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "categories"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "generated_at"}, Value: time.Now().Format(time.RFC3339)},
			{Name: xml.Name{Local: "count"}, Value: strconv.Itoa(len(records))},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	for _, r := range records {
		item := xml.StartElement{
			Name: xml.Name{Local: "category"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "code"}, Value: r.Code}},
		}
		if err := enc.EncodeToken(item); err != nil {
			return nil, err
		}
		writeElem(enc, "name", r.Name)
		writeElem(enc, "description", r.Description)
		writeElem(enc, "parent_id", r.ParentID)
		writeElem(enc, "level", strconv.Itoa(r.Level))

		path := xml.StartElement{Name: xml.Name{Local: "path"}}
		if err := enc.EncodeToken(path); err != nil {
			return nil, err
		}
		for _, code := range r.Path {
			writeElem(enc, "code", code)
		}
		if err := enc.EncodeToken(path.End()); err != nil {
			return nil, err
		}
		if err := enc.EncodeToken(item.End()); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePurchaseOrders serializa el documento <purchase_orders> con ítems anidados.
func (c *Codec) EncodePurchaseOrders(records []dto.XMLPORecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "purchase_orders"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "generated_at"}, Value: time.Now().Format(time.RFC3339)},
			{Name: xml.Name{Local: "count"}, Value: strconv.Itoa(len(records))},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	for _, r := range records {
		po := xml.StartElement{
			Name: xml.Name{Local: "purchase_order"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: r.ID}},
		}
		if err := enc.EncodeToken(po); err != nil {
			return nil, err
		}
		writeElem(enc, "supplier_id", r.SupplierID)
		writeElem(enc, "supplier", r.Supplier)
		writeElem(enc, "ordered_by", r.OrderedBy)
		writeElem(enc, "status", r.Status)
		if r.OrderDate != nil {
			writeElem(enc, "order_date", r.OrderDate.Format(time.RFC3339))
		}
		if r.ExpectedDelivery != nil {
			writeElem(enc, "expected_delivery", r.ExpectedDelivery.Format(time.RFC3339))
		}
		writeElem(enc, "notes", r.Notes)

		items := xml.StartElement{Name: xml.Name{Local: "items"}}
		if err := enc.EncodeToken(items); err != nil {
			return nil, err
		}
		for _, it := range r.Items {
			item := xml.StartElement{
				Name: xml.Name{Local: "item"},
				Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: it.ID}},
			}
			if err := enc.EncodeToken(item); err != nil {
				return nil, err
			}
			writeElem(enc, "product_id", it.ProductID)

			product := xml.StartElement{
				Name: xml.Name{Local: "product"},
				Attr: []xml.Attr{
					{Name: xml.Name{Local: "id"}, Value: it.ProductID},
					{Name: xml.Name{Local: "sku"}, Value: it.ProductSKU},
				},
			}
			if err := enc.EncodeToken(product); err != nil {
				return nil, err
			}
			if err := enc.EncodeToken(xml.CharData(it.ProductName)); err != nil {
				return nil, err
			}
			if err := enc.EncodeToken(product.End()); err != nil {
				return nil, err
			}

			writeElem(enc, "quantity", it.Quantity.String())
			writeElem(enc, "unit_cost", it.UnitCost.String())
			writeElem(enc, "total_cost", it.Quantity.Mul(it.UnitCost).String())
			writeElem(enc, "warehouse_id", it.WarehouseID)
			writeElem(enc, "warehouse", it.Warehouse)
			if err := enc.EncodeToken(item.End()); err != nil {
				return nil, err
			}
		}
		if err := enc.EncodeToken(items.End()); err != nil {
			return nil, err
		}
		if err := enc.EncodeToken(po.End()); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePurchaseOrders parsea un documento <purchase_orders>. Falla con
// ErrInvalidInput ante XML malformado o elementos requeridos ausentes.
func (c *Codec) DecodePurchaseOrders(data []byte) ([]dto.XMLPORecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: XML malformado", domain.ErrInvalidInput)
	}
	root := doc.Root()
	if root == nil || root.Tag != "purchase_orders" {
		return nil, fmt.Errorf("%w: se esperaba raíz <purchase_orders>", domain.ErrInvalidInput)
	}

	var records []dto.XMLPORecord
	for _, el := range root.SelectElements("purchase_order") {
		r := dto.XMLPORecord{
			ID:         el.SelectAttrValue("id", ""),
			SupplierID: childText(el, "supplier_id"),
			Supplier:   childText(el, "supplier"),
			OrderedBy:  childText(el, "ordered_by"),
			Status:     childText(el, "status"),
			Notes:      childText(el, "notes"),
		}
		if r.SupplierID == "" {
			return nil, fmt.Errorf("%w: orden sin supplier_id", domain.ErrInvalidInput)
		}
		var err error
		if r.OrderDate, err = childTime(el, "order_date"); err != nil {
			return nil, err
		}
		if r.ExpectedDelivery, err = childTime(el, "expected_delivery"); err != nil {
			return nil, err
		}

		itemsEl := el.SelectElement("items")
		if itemsEl != nil {
			for _, itemEl := range itemsEl.SelectElements("item") {
				it := dto.XMLPOItemRecord{
					ID:          itemEl.SelectAttrValue("id", ""),
					ProductID:   childText(itemEl, "product_id"),
					WarehouseID: childText(itemEl, "warehouse_id"),
					Warehouse:   childText(itemEl, "warehouse"),
				}
				if productEl := itemEl.SelectElement("product"); productEl != nil {
					it.ProductName = productEl.Text()
					it.ProductSKU = productEl.SelectAttrValue("sku", "")
					if it.ProductID == "" {
						it.ProductID = productEl.SelectAttrValue("id", "")
					}
				}
				if it.ProductID == "" || it.WarehouseID == "" {
					return nil, fmt.Errorf("%w: item sin product_id o warehouse_id", domain.ErrInvalidInput)
				}
				if it.Quantity, err = childDecimal(itemEl, "quantity"); err != nil {
					return nil, err
				}
				if it.UnitCost, err = childDecimal(itemEl, "unit_cost"); err != nil {
					return nil, err
				}
				r.Items = append(r.Items, it)
			}
		}
		records = append(records, r)
	}
	return records, nil
}

// writeElem emite <name>value</name>. Los valores vacíos se omiten.
func writeElem(enc *xml.Encoder, name, value string) {
	if value == "" {
		return
	}
	el := xml.StartElement{Name: xml.Name{Local: name}}
	_ = enc.EncodeToken(el)
	_ = enc.EncodeToken(xml.CharData(value))
	_ = enc.EncodeToken(el.End())
}

func childText(el *etree.Element, tag string) string {
	if child := el.SelectElement(tag); child != nil {
		return child.Text()
	}
	return ""
}

func childDecimal(el *etree.Element, tag string) (decimal.Decimal, error) {
	s := childText(el, tag)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: valor numérico inválido en <%s>: %s", domain.ErrInvalidInput, tag, s)
	}
	return d, nil
}

func childTime(el *etree.Element, tag string) (*time.Time, error) {
	s := childText(el, tag)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if t, err = time.Parse("2006-01-02", s); err != nil {
			return nil, fmt.Errorf("%w: fecha inválida en <%s>: %s", domain.ErrInvalidInput, tag, s)
		}
	}
	return &t, nil
}
