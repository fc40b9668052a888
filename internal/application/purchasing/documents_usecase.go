package purchasing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// POPDFGenerator genera la representación imprimible de una orden de compra.
type POPDFGenerator interface {
	GeneratePOPDF(ctx context.Context, po *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error)
}

// CXMLBuilder construye el OrderRequest cXML de una orden para intercambio
// electrónico con proveedores que lo soportan.
type CXMLBuilder interface {
	BuildOrderRequest(po *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error)
}

// DocumentUseCase produce los documentos de salida de una orden: PDF para
// imprimir o adjuntar a un correo, y cXML para EDI con el proveedor.
type DocumentUseCase struct {
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	pdfGen       POPDFGenerator
	cxmlBuilder  CXMLBuilder
}

// NewDocumentUseCase construye el caso de uso inyectando sus dependencias.
func NewDocumentUseCase(
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	pdfGen POPDFGenerator,
	cxmlBuilder CXMLBuilder,
) *DocumentUseCase {
	return &DocumentUseCase{
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		pdfGen:       pdfGen,
		cxmlBuilder:  cxmlBuilder,
	}
}

// DownloadPOPDF genera el PDF de la orden y devuelve bytes + nombre de archivo.
// Una orden en borrador todavía puede cambiar; aún así se permite imprimirla
// (el estado va marcado en el documento).
func (uc *DocumentUseCase) DownloadPOPDF(ctx context.Context, poID string) (pdfBytes []byte, filename string, err error) {
	po, supplier, err := uc.load(poID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdfGen.GeneratePOPDF(ctx, po, supplier)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("orden_%s.pdf", po.PONumber), nil
}

// DownloadPOCXML genera el OrderRequest cXML de una orden colocada.
// Solo tiene sentido enviar al proveedor órdenes en ordered: un borrador aún
// puede cambiar y una orden cerrada ya no se transmite.
func (uc *DocumentUseCase) DownloadPOCXML(poID string) (xmlBytes []byte, filename string, err error) {
	po, supplier, err := uc.load(poID)
	if err != nil {
		return nil, "", err
	}
	if po.Status != entity.POStatusOrdered {
		return nil, "", domain.ErrInvalidTransition
	}
	xmlBytes, err = uc.cxmlBuilder.BuildOrderRequest(po, supplier)
	if err != nil {
		return nil, "", fmt.Errorf("cxml: generación fallida: %w", err)
	}
	return xmlBytes, fmt.Sprintf("orden_%s.xml", po.PONumber), nil
}

func (uc *DocumentUseCase) load(poID string) (*entity.PurchaseOrder, *entity.Supplier, error) {
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, nil, fmt.Errorf("documentos: obtener orden: %w", err)
	}
	if po == nil {
		return nil, nil, domain.ErrNotFound
	}
	var supplier *entity.Supplier
	if po.SupplierID != "" {
		supplier, err = uc.supplierRepo.GetByID(po.SupplierID)
		if err != nil {
			return nil, nil, fmt.Errorf("documentos: obtener proveedor: %w", err)
		}
	}
	return po, supplier, nil
}
