package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/purchasing"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
	"github.com/jhoicas/Compras-api/pkg/logger"
)

// ReorderTrigger evalúa el punto de reorden tras cada ajuste de stock y, si se
// cruzó el umbral, sintetiza una orden de compra en borrador al proveedor
// preferido del ítem. Corre dentro de la misma transacción que el ajuste, de
// modo que ajuste y orden automática se confirman o revierten juntos.
type ReorderTrigger struct {
	log *logger.Logger
}

// NewReorderTrigger construye el disparador.
func NewReorderTrigger(log *logger.Logger) *ReorderTrigger {
	return &ReorderTrigger{log: log}
}

// Evaluate revisa el umbral del ítem con el stock resultante. Devuelve el ID
// de la orden creada, o vacío si no aplica. Los saltos (sin proveedor
// preferido, proveedor inactivo) se registran en el log como eventos warn para
// que el operador tenga visibilidad de que la reposición fue omitida.
//
// Guarda de idempotencia: si ya existe una orden automática abierta (draft u
// ordered) para el ítem y proveedor, no se crea otra — el disparador corre en
// cada ajuste decreciente y no debe multiplicar órdenes por el mismo faltante.
func (t *ReorderTrigger) Evaluate(
	itemRepo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
	poRepo repository.PurchaseOrderRepository,
	item *entity.Item,
	newStock decimal.Decimal,
	now time.Time,
) (string, error) {
	if !purchasing.NeedsReorder(item, newStock) {
		return "", nil
	}

	if item.PreferredSupplierID == "" {
		t.log.Warn().
			Str("item_id", item.ID).
			Str("sku", item.SKU).
			Str("new_stock", newStock.String()).
			Msg("reposición automática omitida: ítem sin proveedor preferido")
		return "", nil
	}

	supplier, err := supplierRepo.GetByID(item.PreferredSupplierID)
	if err != nil {
		return "", err
	}
	if supplier == nil || !supplier.IsActive {
		t.log.Warn().
			Str("item_id", item.ID).
			Str("sku", item.SKU).
			Str("supplier_id", item.PreferredSupplierID).
			Msg("reposición automática omitida: proveedor preferido inexistente o inactivo")
		return "", nil
	}

	open, err := poRepo.HasOpenAutoOrder(item.ID, supplier.ID)
	if err != nil {
		return "", err
	}
	if open {
		// Ya hay una orden abierta por este faltante; no duplicar.
		return "", nil
	}

	qty := purchasing.ReorderQty(item, newStock)
	poNumber, err := poRepo.NextPONumber(now.Year())
	if err != nil {
		return "", err
	}

	line := entity.POLine{
		ItemID:    item.ID,
		Name:      item.Name,
		Unit:      item.Unit,
		Quantity:  qty,
		UnitCost:  item.UnitCost,
		TotalCost: qty.Mul(item.UnitCost),
	}
	po := &entity.PurchaseOrder{
		ID:            uuid.New().String(),
		PONumber:      poNumber,
		SupplierID:    supplier.ID,
		SupplierName:  supplier.Name,
		Status:        entity.POStatusDraft,
		Lines:         []entity.POLine{line},
		TotalAmount:   line.TotalCost,
		Notes:         "Generada automáticamente por punto de reorden (stock " + newStock.String() + ")",
		AutoGenerated: true,
		SourceItemID:  item.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := poRepo.Create(po); err != nil {
		return "", err
	}

	t.log.Info().
		Str("item_id", item.ID).
		Str("sku", item.SKU).
		Str("po_id", po.ID).
		Str("po_number", po.PONumber).
		Str("qty", qty.String()).
		Msg("orden de reposición automática creada")
	return po.ID, nil
}
