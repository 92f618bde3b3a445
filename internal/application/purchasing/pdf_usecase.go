package purchasing

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// POItemForPDF línea de orden enriquecida con nombres legibles para el documento.
type POItemForPDF struct {
	entity.PurchaseOrderItem
	ProductName   string
	WarehouseName string
}

// POPDFGenerator genera la representación imprimible de una orden de compra.
type POPDFGenerator interface {
	GeneratePOPDF(
		ctx context.Context,
		po *entity.PurchaseOrder,
		supplier *entity.Supplier,
		items []POItemForPDF,
	) ([]byte, error)
}

// PDFUseCase genera el documento PDF de una orden de compra para enviar al proveedor.
type PDFUseCase struct {
	poRepo        repository.PurchaseOrderRepository
	supplierRepo  repository.SupplierRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	generator     POPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	generator POPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		poRepo:        poRepo,
		supplierRepo:  supplierRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		generator:     generator,
	}
}

// DownloadPOPDF carga la orden con proveedor e ítems, enriquece cada línea con
// el nombre del producto y la bodega de destino, y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la orden no existe.
func (uc *PDFUseCase) DownloadPOPDF(
	ctx context.Context,
	poID string,
) (pdfBytes []byte, filename string, err error) {
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if po == nil {
		return nil, "", domain.ErrNotFound
	}

	supplier, err := uc.supplierRepo.GetByID(po.SupplierID)
	if err != nil || supplier == nil {
		return nil, "", fmt.Errorf("pdf: obtener proveedor: %w", err)
	}

	rawItems, err := uc.poRepo.ListItems(poID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener ítems: %w", err)
	}

	enriched := make([]POItemForPDF, 0, len(rawItems))
	for _, item := range rawItems {
		productName := "Producto " + item.ProductID // fallback
		if product, pErr := uc.productRepo.GetByID(item.ProductID); pErr == nil && product != nil {
			productName = product.Name
		}
		warehouseName := item.WarehouseID
		if wh, wErr := uc.warehouseRepo.GetByID(item.WarehouseID); wErr == nil && wh != nil {
			warehouseName = wh.Name
		}
		enriched = append(enriched, POItemForPDF{
			PurchaseOrderItem: *item,
			ProductName:       productName,
			WarehouseName:     warehouseName,
		})
	}

	pdfBytes, err = uc.generator.GeneratePOPDF(ctx, po, supplier, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("orden_compra_%s.pdf", po.ID)
	return pdfBytes, filename, nil
}
