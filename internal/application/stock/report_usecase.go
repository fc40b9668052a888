package stock

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ReportUseCase consultas de solo lectura sobre el libro de stock: historial
// de movimientos y reporte de ítems bajo punto de reorden.
type ReportUseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.StockMovementRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) *ReportUseCase {
	return &ReportUseCase{itemRepo: itemRepo, movRepo: movRepo}
}

// Movements devuelve el historial de movimientos de un ítem, más reciente primero.
func (uc *ReportUseCase) Movements(itemID string, limit, offset int) (*dto.StockMovementListResponse, error) {
	list, err := uc.movRepo.ListByItem(itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementResponse{
			ID:        m.ID,
			ItemID:    m.ItemID,
			Delta:     m.Delta,
			NewStock:  m.NewStock,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return &dto.StockMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// LowStock lista los ítems en o bajo su punto de reorden con la cantidad
// sugerida para volver al nivel máximo (la misma política que usa el
// disparador de reposición automática).
func (uc *ReportUseCase) LowStock() ([]dto.LowStockItemDTO, error) {
	raw, err := uc.itemRepo.ListBelowReorderPoint()
	if err != nil {
		return nil, err
	}
	one := decimal.NewFromInt(1)
	out := make([]dto.LowStockItemDTO, 0, len(raw))
	for _, r := range raw {
		suggested := r.MaxStockLevel.Sub(r.CurrentStock)
		if suggested.LessThan(one) {
			suggested = one
		}
		out = append(out, dto.LowStockItemDTO{
			ItemID:              r.ItemID,
			SKU:                 r.SKU,
			Name:                r.Name,
			CurrentStock:        r.CurrentStock,
			ReorderPoint:        r.ReorderPoint,
			MaxStockLevel:       r.MaxStockLevel,
			SuggestedOrderQty:   suggested,
			EstimatedOrderCost:  suggested.Mul(r.UnitCost),
			PreferredSupplierID: r.PreferredSupplierID,
		})
	}
	return out, nil
}
