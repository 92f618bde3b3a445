package xmlport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/purchasing"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Codec serializa y parsea los documentos XML de intercambio. El parseo de un
// documento malformado o sin elementos requeridos falla con ErrInvalidInput
// antes de que el caso de uso toque el almacenamiento.
type Codec interface {
	EncodeProducts(records []dto.XMLProductRecord) ([]byte, error)
	DecodeProducts(data []byte) ([]dto.XMLProductRecord, error)
	EncodeCategories(records []dto.XMLCategoryRecord) ([]byte, error)
	EncodePurchaseOrders(records []dto.XMLPORecord) ([]byte, error)
	DecodePurchaseOrders(data []byte) ([]dto.XMLPORecord, error)
}

// UseCase importación y exportación XML de productos, categorías y órdenes de compra.
type UseCase struct {
	codec         Codec
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	poRepo        repository.PurchaseOrderRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	purchasingUC  *purchasing.UseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	codec Codec,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	purchasingUC *purchasing.UseCase,
) *UseCase {
	return &UseCase{
		codec:         codec,
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		poRepo:        poRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		purchasingUC:  purchasingUC,
	}
}

// ExportProducts serializa el catálogo completo de productos.
func (uc *UseCase) ExportProducts() ([]byte, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	records := make([]dto.XMLProductRecord, 0, len(products))
	for _, p := range products {
		records = append(records, dto.XMLProductRecord{
			ID:           p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Description:  p.Description,
			CategoryCode: p.CategoryCode,
			ReorderLevel: p.ReorderLevel,
			UnitCost:     p.UnitCost,
		})
	}
	return uc.codec.EncodeProducts(records)
}

// ImportProducts parsea el documento y crea los productos que no existan.
// Un SKU ya registrado se omite y se reporta en Skipped; el resto se importa.
// Un documento malformado falla completo antes de escribir nada.
func (uc *UseCase) ImportProducts(data []byte) (*dto.ImportProductsResult, error) {
	records, err := uc.codec.DecodeProducts(data)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.SKU == "" || r.Name == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	result := &dto.ImportProductsResult{Skipped: []string{}}
	now := time.Now()
	for _, r := range records {
		existing, err := uc.productRepo.GetBySKU(r.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped = append(result.Skipped, r.SKU)
			continue
		}
		product := &entity.Product{
			ID:           uuid.New().String(),
			SKU:          r.SKU,
			Name:         r.Name,
			Description:  r.Description,
			CategoryCode: r.CategoryCode,
			ReorderLevel: r.ReorderLevel,
			UnitCost:     r.UnitCost,
			Price:        decimal.Zero,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.productRepo.Create(product); err != nil {
			return nil, err
		}
		result.Imported++
	}
	return result, nil
}

// ExportCategories serializa la colección completa de categorías.
func (uc *UseCase) ExportCategories() ([]byte, error) {
	categories, err := uc.categoryRepo.ListAll()
	if err != nil {
		return nil, err
	}
	records := make([]dto.XMLCategoryRecord, 0, len(categories))
	for _, c := range categories {
		records = append(records, dto.XMLCategoryRecord{
			Code:        c.Code,
			Name:        c.Name,
			Description: c.Description,
			ParentID:    c.ParentID,
			Level:       c.Level,
			Path:        c.Path,
		})
	}
	return uc.codec.EncodeCategories(records)
}

// ExportPurchaseOrders serializa todas las órdenes con sus ítems, enriquecidos
// con nombre de producto, SKU y nombre de bodega.
func (uc *UseCase) ExportPurchaseOrders() ([]byte, error) {
	pos, err := uc.poRepo.List("", "", 10000, 0)
	if err != nil {
		return nil, err
	}
	records := make([]dto.XMLPORecord, 0, len(pos))
	for _, po := range pos {
		record := dto.XMLPORecord{
			ID:               po.ID,
			SupplierID:       po.SupplierID,
			OrderedBy:        po.OrderedBy,
			Status:           string(po.Status),
			ExpectedDelivery: po.ExpectedDelivery,
			Notes:            po.Notes,
		}
		orderDate := po.OrderDate
		record.OrderDate = &orderDate
		if supplier, err := uc.supplierRepo.GetByID(po.SupplierID); err == nil && supplier != nil {
			record.Supplier = supplier.Name
		}
		items, err := uc.poRepo.ListItems(po.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			rec := dto.XMLPOItemRecord{
				ID:          item.ID,
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				UnitCost:    item.UnitCost,
				WarehouseID: item.WarehouseID,
			}
			if product, err := uc.productRepo.GetByID(item.ProductID); err == nil && product != nil {
				rec.ProductName = product.Name
				rec.ProductSKU = product.SKU
			}
			if wh, err := uc.warehouseRepo.GetByID(item.WarehouseID); err == nil && wh != nil {
				rec.Warehouse = wh.Name
			}
			record.Items = append(record.Items, rec)
		}
		records = append(records, record)
	}
	return uc.codec.EncodePurchaseOrders(records)
}

// ImportPurchaseOrders parsea el documento y crea cada orden en pending con
// sus ítems, pasando por las mismas validaciones que la creación normal. Las
// órdenes que no pasan validación se reportan en Errors sin abortar el resto.
func (uc *UseCase) ImportPurchaseOrders(ctx context.Context, userID string, data []byte) (*dto.ImportPOsResult, error) {
	records, err := uc.codec.DecodePurchaseOrders(data)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportPOsResult{}
	for _, r := range records {
		req := dto.CreatePORequest{
			SupplierID:       r.SupplierID,
			ExpectedDelivery: r.ExpectedDelivery,
			Notes:            r.Notes,
		}
		for _, item := range r.Items {
			req.Items = append(req.Items, dto.POItemRequest{
				ProductID:   item.ProductID,
				WarehouseID: item.WarehouseID,
				Quantity:    item.Quantity,
				UnitCost:    item.UnitCost,
			})
		}
		if _, err := uc.purchasingUC.Create(ctx, userID, req); err != nil {
			result.Errors = append(result.Errors, "orden "+r.ID+": "+err.Error())
			continue
		}
		result.Imported++
	}
	return result, nil
}
