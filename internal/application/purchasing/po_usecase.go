package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	domainpurch "github.com/jhoicas/Compras-api/internal/domain/purchasing"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// POUseCase máquina de estados de órdenes de compra:
// draft → ordered → received | cancelled (received solo vía ReceiveUseCase).
// Una orden es un documento vivo hasta recibirse físicamente: editar en
// ordered está permitido a propósito.
type POUseCase struct {
	txRunner TxRunner
	poRepo   repository.PurchaseOrderRepository // lecturas fuera de tx
}

// NewPOUseCase construye el caso de uso.
func NewPOUseCase(txRunner TxRunner, poRepo repository.PurchaseOrderRepository) *POUseCase {
	return &POUseCase{txRunner: txRunner, poRepo: poRepo}
}

// Create crea una orden. Con status destino "draft" la validación es laxa
// (guardar avance: proveedor placeholder y sin líneas es válido); con
// "ordered" se exige proveedor activo y al menos una línea válida. Esa
// distinción de intención es la fuente de verdad del nivel de validación.
func (uc *POUseCase) Create(ctx context.Context, actorID string, in dto.CreatePORequest) (*dto.POResponse, error) {
	status := in.Status
	if status == "" {
		status = entity.POStatusDraft
	}
	if status != entity.POStatusDraft && status != entity.POStatusOrdered {
		return nil, domain.NewValidationError("status", "debe ser draft u ordered")
	}

	now := time.Now()
	var out *dto.POResponse

	err := uc.txRunner.RunPurchasing(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.StockMovementRepository,
		supplierRepo repository.SupplierRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.ReceiptIntentRepository,
	) error {
		supplierName := ""
		if in.SupplierID != "" {
			supplier, err := supplierRepo.GetByID(in.SupplierID)
			if err != nil {
				return err
			}
			if supplier != nil {
				supplierName = supplier.Name
			}
			if status == entity.POStatusOrdered {
				if supplier == nil || !supplier.IsActive {
					return domain.NewValidationError("supplier_id", "proveedor inexistente o inactivo")
				}
			}
		} else if status == entity.POStatusOrdered {
			return domain.NewValidationError("supplier_id", "requerido para colocar la orden")
		}

		if status == entity.POStatusOrdered && len(in.Lines) == 0 {
			return domain.NewValidationError("lines", "una orden colocada requiere al menos una línea")
		}

		lines, err := resolveLines(itemRepo, in.Lines)
		if err != nil {
			return err
		}

		poNumber, err := poRepo.NextPONumber(now.Year())
		if err != nil {
			return err
		}

		po := &entity.PurchaseOrder{
			ID:                   uuid.New().String(),
			PONumber:             poNumber,
			SupplierID:           in.SupplierID,
			SupplierName:         supplierName, // snapshot: no sigue renombres posteriores
			Status:               status,
			Lines:                lines,
			TotalAmount:          domainpurch.OrderTotal(lines),
			ExpectedDeliveryDate: in.ExpectedDeliveryDate,
			Notes:                in.Notes,
			TargetLocationID:     in.TargetLocationID,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := poRepo.Create(po); err != nil {
			return err
		}
		out = ToPOResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene una orden por ID.
func (uc *POUseCase) GetByID(id string) (*dto.POResponse, error) {
	po, err := uc.poRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, nil
	}
	return ToPOResponse(po), nil
}

// List lista órdenes con filtros de estado y proveedor.
func (uc *POUseCase) List(status, supplierID string, limit, offset int) (*dto.POListResponse, error) {
	list, err := uc.poRepo.List(repository.POFilter{
		Status: status, SupplierID: supplierID, Limit: limit, Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.POResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *ToPOResponse(po))
	}
	return &dto.POListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update aplica un parche sobre una orden en draft u ordered. Una orden
// received o cancelled es inmutable: ErrInvalidTransition.
// Lines no-nil reemplaza la lista completa y recalcula TotalAmount.
func (uc *POUseCase) Update(ctx context.Context, id string, in dto.UpdatePORequest) (*dto.POResponse, error) {
	var out *dto.POResponse

	err := uc.txRunner.RunPurchasing(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.StockMovementRepository,
		supplierRepo repository.SupplierRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.ReceiptIntentRepository,
	) error {
		po, err := poRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusDraft && po.Status != entity.POStatusOrdered {
			return domain.ErrInvalidTransition
		}

		if in.SupplierID != nil {
			supplier, err := supplierRepo.GetByID(*in.SupplierID)
			if err != nil {
				return err
			}
			if po.Status == entity.POStatusOrdered && (supplier == nil || !supplier.IsActive) {
				return domain.NewValidationError("supplier_id", "proveedor inexistente o inactivo")
			}
			po.SupplierID = *in.SupplierID
			po.SupplierName = ""
			if supplier != nil {
				po.SupplierName = supplier.Name
			}
		}
		if in.Lines != nil {
			if po.Status == entity.POStatusOrdered && len(*in.Lines) == 0 {
				return domain.NewValidationError("lines", "una orden colocada requiere al menos una línea")
			}
			lines, err := resolveLines(itemRepo, *in.Lines)
			if err != nil {
				return err
			}
			po.Lines = lines
		}
		if in.ExpectedDeliveryDate != nil {
			po.ExpectedDeliveryDate = in.ExpectedDeliveryDate
		}
		if in.Notes != nil {
			po.Notes = *in.Notes
		}
		if in.InvoiceURL != nil {
			po.InvoiceURL = *in.InvoiceURL
		}
		if in.TargetLocationID != nil {
			po.TargetLocationID = *in.TargetLocationID
		}

		po.TotalAmount = domainpurch.OrderTotal(po.Lines)
		po.UpdatedAt = time.Now()
		if err := poRepo.Update(po); err != nil {
			return err
		}
		out = ToPOResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Place coloca una orden: draft → ordered, con validación completa
// (proveedor activo, al menos una línea, líneas válidas) y total recalculado.
func (uc *POUseCase) Place(ctx context.Context, id string) (*dto.POResponse, error) {
	var out *dto.POResponse

	err := uc.txRunner.RunPurchasing(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.StockMovementRepository,
		supplierRepo repository.SupplierRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.ReceiptIntentRepository,
	) error {
		po, err := poRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusDraft {
			return domain.ErrInvalidTransition
		}

		supplier, err := supplierRepo.GetByID(po.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil || !supplier.IsActive {
			return domain.NewValidationError("supplier_id", "proveedor inexistente o inactivo")
		}
		if len(po.Lines) == 0 {
			return domain.NewValidationError("lines", "una orden colocada requiere al menos una línea")
		}

		po.SupplierName = supplier.Name
		po.Status = entity.POStatusOrdered
		po.TotalAmount = domainpurch.OrderTotal(po.Lines)
		po.UpdatedAt = time.Now()
		if err := poRepo.Update(po); err != nil {
			return err
		}
		out = ToPOResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel cancela una orden; solo alcanzable desde draft u ordered.
func (uc *POUseCase) Cancel(ctx context.Context, id string) (*dto.POResponse, error) {
	var out *dto.POResponse

	err := uc.txRunner.RunPurchasing(ctx, func(
		_ repository.ItemRepository,
		_ repository.StockMovementRepository,
		_ repository.SupplierRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.ReceiptIntentRepository,
	) error {
		po, err := poRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusDraft && po.Status != entity.POStatusOrdered {
			return domain.ErrInvalidTransition
		}
		po.Status = entity.POStatusCancelled
		po.UpdatedAt = time.Now()
		if err := poRepo.Update(po); err != nil {
			return err
		}
		out = ToPOResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolveLines valida cada línea contra el catálogo y denormaliza nombre y
// unidad del ítem (estables para visualización aunque el ítem cambie después).
// Un ítem solo puede aparecer en una línea: la conciliación de recepciones
// empareja por ítem, y una orden con el mismo ítem repetido sería irrecibible.
func resolveLines(itemRepo repository.ItemRepository, inputs []dto.POLineInput) ([]entity.POLine, error) {
	lines := make([]entity.POLine, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for i, l := range inputs {
		if l.ItemID == "" {
			return nil, domain.NewLineValidationError(i, "item_id", "requerido")
		}
		if seen[l.ItemID] {
			return nil, domain.NewLineValidationError(i, "item_id", "ítem repetido en otra línea")
		}
		seen[l.ItemID] = true
		if !l.Quantity.IsPositive() {
			return nil, domain.NewLineValidationError(i, "quantity", "debe ser > 0")
		}
		if l.UnitCost.IsNegative() {
			return nil, domain.NewLineValidationError(i, "unit_cost", "no puede ser negativo")
		}
		item, err := itemRepo.GetByID(l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.NewLineValidationError(i, "item_id", "ítem inexistente")
		}
		unitCost := l.UnitCost
		if unitCost.IsZero() {
			unitCost = item.UnitCost
		}
		lines = append(lines, entity.POLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Unit:      item.Unit,
			Quantity:  l.Quantity,
			UnitCost:  unitCost,
			TotalCost: l.Quantity.Mul(unitCost),
		})
	}
	return lines, nil
}

// ToPOResponse convierte la entidad al DTO de salida.
func ToPOResponse(po *entity.PurchaseOrder) *dto.POResponse {
	if po == nil {
		return nil
	}
	lines := make([]dto.POLineResponse, 0, len(po.Lines))
	for _, l := range po.Lines {
		lines = append(lines, dto.POLineResponse{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Unit:      l.Unit,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			TotalCost: l.TotalCost,
		})
	}
	resp := &dto.POResponse{
		ID:                   po.ID,
		PONumber:             po.PONumber,
		SupplierID:           po.SupplierID,
		SupplierName:         po.SupplierName,
		Status:               po.Status,
		Lines:                lines,
		TotalAmount:          po.TotalAmount,
		ExpectedDeliveryDate: po.ExpectedDeliveryDate,
		Notes:                po.Notes,
		InvoiceURL:           po.InvoiceURL,
		TargetLocationID:     po.TargetLocationID,
		AutoGenerated:        po.AutoGenerated,
		CreatedAt:            po.CreatedAt,
		UpdatedAt:            po.UpdatedAt,
	}
	if po.ReceivedDetails != nil {
		rd := po.ReceivedDetails
		items := make([]dto.ReceivedLineResponse, 0, len(rd.Items))
		for _, l := range rd.Items {
			items = append(items, dto.ReceivedLineResponse{
				ItemID:          l.ItemID,
				OrderedQty:      l.OrderedQty,
				ReceivedQty:     l.ReceivedQty,
				RejectedQty:     l.RejectedQty,
				MissingQty:      l.MissingQty,
				ActualUnitCost:  l.ActualUnitCost,
				ExpiryDate:      l.ExpiryDate,
				RejectionReason: l.RejectionReason,
			})
		}
		resp.ReceivedDetails = &dto.ReceivingRecordResponse{
			ReceivedBy:          rd.ReceivedBy,
			ReceivedAt:          rd.ReceivedAt,
			Items:               items,
			TotalRejectedValue:  rd.TotalRejectedValue,
			FinalPayableAmount:  rd.FinalPayableAmount,
			CreditNoteRequested: rd.CreditNoteRequested,
			Notes:               rd.Notes,
			InvoiceURL:          rd.InvoiceURL,
		}
	}
	return resp
}
