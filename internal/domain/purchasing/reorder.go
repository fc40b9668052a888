package purchasing

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// NeedsReorder indica si el stock resultante cruza el punto de reorden.
// Un punto de reorden no configurado (<= 0) desactiva la reposición automática.
func NeedsReorder(item *entity.Item, newStock decimal.Decimal) bool {
	if !item.ReorderPoint.IsPositive() {
		return false
	}
	return newStock.LessThanOrEqual(item.ReorderPoint)
}

// ReorderQty calcula la cantidad a pedir para volver a MaxStockLevel
// (piso de 1 unidad base). Si el ítem se compra en otra unidad
// (ConversionFactor > 0), la cantidad se redondea hacia arriba a unidades de
// compra completas, expresada siempre en unidad base.
func ReorderQty(item *entity.Item, newStock decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	qty := item.MaxStockLevel.Sub(newStock)
	if qty.LessThan(one) {
		qty = one
	}
	if item.ConversionFactor.IsPositive() {
		packs := qty.Div(item.ConversionFactor).Ceil()
		qty = packs.Mul(item.ConversionFactor)
	}
	return qty
}
