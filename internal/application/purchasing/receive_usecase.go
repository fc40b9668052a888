package purchasing

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	domainpurch "github.com/jhoicas/Compras-api/internal/domain/purchasing"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
	"github.com/jhoicas/Compras-api/pkg/logger"
)

// ReceiveUseCase motor de conciliación de recepciones. Una recepción corre en
// dos fases transaccionales: la primera valida, concilia y persiste un intent
// pendiente (marca de recepción en curso); la segunda acredita el stock línea
// por línea con claves de idempotencia derivadas del intent, congela el
// registro de recepción en la orden y elimina el intent. Si el proceso muere
// entre fases, Resume retoma desde el intent pendiente sin duplicar créditos.
type ReceiveUseCase struct {
	txRunner TxRunner
	ledger   StockLedger
	log      *logger.Logger
}

// NewReceiveUseCase construye el caso de uso.
func NewReceiveUseCase(txRunner TxRunner, ledger StockLedger, log *logger.Logger) *ReceiveUseCase {
	return &ReceiveUseCase{txRunner: txRunner, ledger: ledger, log: log}
}

// Receive ejecuta la recepción completa de una orden en estado ordered.
// Política estricta: cualquier línea inválida (sobreconteo incluido) rechaza
// toda la recepción antes de tocar stock. Un intent pendiente concurrente
// sobre la misma orden produce ErrConflict en la fase 1.
func (uc *ReceiveUseCase) Receive(ctx context.Context, poID, actorID string, in dto.ReceivePORequest) (*dto.POResponse, error) {
	now := time.Now()

	input := domainpurch.ReceiptInput{
		Lines:               make([]domainpurch.ReceiptLineInput, 0, len(in.Lines)),
		CreditNoteRequested: in.CreditNoteRequested,
		Notes:               in.Notes,
		InvoiceURL:          in.InvoiceURL,
		ReceivedBy:          actorID,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, domainpurch.ReceiptLineInput{
			ItemID:          l.ItemID,
			ReceivedQty:     l.ReceivedQty,
			RejectedQty:     l.RejectedQty,
			ActualUnitCost:  l.ActualUnitCost,
			ExpiryDate:      l.ExpiryDate,
			RejectionReason: l.RejectionReason,
		})
	}

	// Fase 1: validar, conciliar y dejar el intent pendiente.
	var intent *entity.ReceiptIntent
	err := uc.txRunner.RunPurchasing(ctx, func(
		_ repository.ItemRepository,
		_ repository.StockMovementRepository,
		_ repository.SupplierRepository,
		poRepo repository.PurchaseOrderRepository,
		intentRepo repository.ReceiptIntentRepository,
	) error {
		po, err := poRepo.GetForUpdate(poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusOrdered {
			return domain.ErrInvalidTransition
		}

		rec, err := domainpurch.Reconcile(po.Lines, input)
		if err != nil {
			return err
		}

		intent = &entity.ReceiptIntent{
			Key:  uuid.New().String(),
			POID: po.ID,
			Record: entity.ReceivingRecord{
				ReceivedBy:          actorID,
				ReceivedAt:          now,
				Items:               rec.Lines,
				TotalRejectedValue:  rec.TotalRejectedValue,
				FinalPayableAmount:  rec.FinalPayableAmount,
				CreditNoteRequested: in.CreditNoteRequested,
				Notes:               in.Notes,
				InvoiceURL:          in.InvoiceURL,
			},
			CreatedAt: now,
		}
		return intentRepo.CreatePending(intent)
	})
	if err != nil {
		return nil, err
	}

	// Fase 2: aplicar créditos de stock y finalizar la orden.
	return uc.apply(ctx, intent)
}

// Resume retoma una recepción cuyo proceso murió entre la fase 1 y la fase 2.
// Sin intent pendiente para la orden devuelve ErrNotFound.
func (uc *ReceiveUseCase) Resume(ctx context.Context, poID string) (*dto.POResponse, error) {
	var intent *entity.ReceiptIntent
	err := uc.txRunner.RunPurchasing(ctx, func(
		_ repository.ItemRepository,
		_ repository.StockMovementRepository,
		_ repository.SupplierRepository,
		_ repository.PurchaseOrderRepository,
		intentRepo repository.ReceiptIntentRepository,
	) error {
		found, err := intentRepo.GetPending(poID)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrNotFound
		}
		intent = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("po_id", poID).Str("intent_key", intent.Key).
		Msg("retomando recepción pendiente")
	return uc.apply(ctx, intent)
}

// apply es la fase 2: acredita cada línea recibida con una clave de
// idempotencia "<intentKey>:<índice>", de modo que un reintento tras un fallo
// parcial salta las líneas ya acreditadas en lugar de duplicarlas.
func (uc *ReceiveUseCase) apply(ctx context.Context, intent *entity.ReceiptIntent) (*dto.POResponse, error) {
	var out *dto.POResponse

	err := uc.txRunner.RunPurchasing(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
		supplierRepo repository.SupplierRepository,
		poRepo repository.PurchaseOrderRepository,
		intentRepo repository.ReceiptIntentRepository,
	) error {
		po, err := poRepo.GetForUpdate(intent.POID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusOrdered {
			return domain.ErrInvalidTransition
		}

		record := intent.Record
		for idx, line := range record.Items {
			if !line.ReceivedQty.IsPositive() {
				continue // línea toda rechazada o faltante: no acredita stock
			}
			key := intent.Key + ":" + strconv.Itoa(idx)
			applied, err := movRepo.ExistsKey(key)
			if err != nil {
				return err
			}
			if applied {
				continue
			}
			if _, err := uc.ledger.ReceiveInTx(
				itemRepo, movRepo, supplierRepo, poRepo,
				line.ItemID, line.ReceivedQty,
				"po-receipt:"+po.ID, key, record.ReceivedBy, record.ReceivedAt,
			); err != nil {
				return err
			}
		}

		po.Status = entity.POStatusReceived
		po.ReceivedDetails = &record
		po.UpdatedAt = time.Now()
		if err := poRepo.Update(po); err != nil {
			return err
		}
		if err := intentRepo.Delete(intent.Key); err != nil {
			return err
		}
		out = ToPOResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("po_id", intent.POID).
		Str("payable", intent.Record.FinalPayableAmount.String()).
		Str("rejected_value", intent.Record.TotalRejectedValue.String()).
		Msg("orden de compra recibida y conciliada")
	return out, nil
}
