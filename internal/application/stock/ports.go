package stock

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el ajuste de stock, su registro
// de auditoría y la evaluación de reposición automática sean una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
		supplierRepo repository.SupplierRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}
