package purchasing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del ciclo de compras atados a esa tx.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
		supplierRepo repository.SupplierRepository,
		poRepo repository.PurchaseOrderRepository,
		intentRepo repository.ReceiptIntentRepository,
	) error) error
}

// StockLedger acredita stock dentro de la transacción del caller.
// Implementado por stock.AdjustStockUseCase; el motor de recepciones nunca
// escribe CurrentStock por su cuenta.
type StockLedger interface {
	ReceiveInTx(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
		supplierRepo repository.SupplierRepository,
		poRepo repository.PurchaseOrderRepository,
		itemID string,
		qty decimal.Decimal,
		reason, idempotencyKey, actorID string,
		now time.Time,
	) (decimal.Decimal, error)
}
