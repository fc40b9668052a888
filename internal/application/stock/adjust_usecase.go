package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// AdjustStockUseCase es el único mutador sancionado de Item.CurrentStock.
// Cada ajuste bloquea la fila del ítem (SELECT FOR UPDATE), verifica el
// invariante de no-negatividad, deja un movimiento de auditoría y evalúa el
// disparador de reposición, todo dentro de una misma transacción.
type AdjustStockUseCase struct {
	txRunner TxRunner
	trigger  *ReorderTrigger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, trigger *ReorderTrigger) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, trigger: trigger}
}

// AdjustInput entrada de un ajuste de stock.
// IdempotencyKey opcional: un reintento con la misma clave devuelve ErrConflict
// en lugar de aplicar el ajuste dos veces.
type AdjustInput struct {
	ItemID         string
	Delta          decimal.Decimal
	Reason         string
	AllowNegative  bool
	IdempotencyKey string
	ActorID        string
}

// Adjust aplica el ajuste en una transacción y devuelve el nivel resultante
// junto con el ID de la orden automática, si el disparador creó una.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, in AdjustInput) (*dto.AdjustStockResponse, error) {
	if in.ItemID == "" {
		return nil, domain.NewValidationError("item_id", "requerido")
	}
	if in.Delta.IsZero() {
		return nil, domain.NewValidationError("delta", "no puede ser cero")
	}
	if in.Reason == "" {
		return nil, domain.NewValidationError("reason", "requerido")
	}

	now := time.Now()
	var out dto.AdjustStockResponse

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
		supplierRepo repository.SupplierRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		newStock, reorderPOID, err := uc.applyInTx(itemRepo, movRepo, supplierRepo, poRepo, in, now)
		if err != nil {
			return err
		}
		out = dto.AdjustStockResponse{ItemID: in.ItemID, NewStock: newStock, ReorderPOID: reorderPOID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ReceiveInTx acredita stock por una línea recibida de una orden de compra,
// usando los repositorios de la transacción del caller (misma unidad atómica).
// Implementa la interfaz purchasing.StockLedger: el motor de recepciones es el
// único autorizado a invocar un incremento de stock en nombre de una orden.
func (uc *AdjustStockUseCase) ReceiveInTx(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	supplierRepo repository.SupplierRepository,
	poRepo repository.PurchaseOrderRepository,
	itemID string,
	qty decimal.Decimal,
	reason, idempotencyKey, actorID string,
	now time.Time,
) (decimal.Decimal, error) {
	if !qty.IsPositive() {
		return decimal.Zero, domain.NewValidationError("received_qty", "debe ser positiva")
	}
	newStock, _, err := uc.applyInTx(itemRepo, movRepo, supplierRepo, poRepo, AdjustInput{
		ItemID:         itemID,
		Delta:          qty,
		Reason:         reason,
		IdempotencyKey: idempotencyKey,
		ActorID:        actorID,
	}, now)
	return newStock, err
}

// applyInTx ejecuta un ajuste con repositorios ya atados a una transacción.
func (uc *AdjustStockUseCase) applyInTx(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	supplierRepo repository.SupplierRepository,
	poRepo repository.PurchaseOrderRepository,
	in AdjustInput,
	now time.Time,
) (decimal.Decimal, string, error) {
	// Bloquea la fila del ítem para serializar ajustes concurrentes
	item, err := itemRepo.GetForUpdate(in.ItemID)
	if err != nil {
		return decimal.Zero, "", err
	}
	if item == nil {
		return decimal.Zero, "", domain.ErrNotFound
	}

	newStock := item.CurrentStock.Add(in.Delta)
	if newStock.IsNegative() && !in.AllowNegative {
		return decimal.Zero, "", domain.ErrNegativeStock
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		ItemID:         item.ID,
		Delta:          in.Delta,
		NewStock:       newStock,
		Reason:         in.Reason,
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      now,
		CreatedBy:      in.ActorID,
	}
	if err := movRepo.Create(mov); err != nil {
		// Clave de idempotencia repetida: el ajuste ya fue aplicado en un intento anterior.
		if errors.Is(err, domain.ErrDuplicate) && in.IdempotencyKey != "" {
			return decimal.Zero, "", domain.ErrConflict
		}
		return decimal.Zero, "", err
	}

	if err := itemRepo.UpdateStock(item.ID, newStock); err != nil {
		return decimal.Zero, "", err
	}

	// El disparador se evalúa de forma uniforme tras cada ajuste; con stock por
	// encima del umbral es un no-op inmediato.
	reorderPOID, err := uc.trigger.Evaluate(itemRepo, supplierRepo, poRepo, item, newStock, now)
	if err != nil {
		return decimal.Zero, "", err
	}
	return newStock, reorderPOID, nil
}
