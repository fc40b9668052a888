// Package purchasing contiene los servicios de dominio puros del ciclo de
// compras: conciliación de recepciones y cálculo de cantidades de reposición.
package purchasing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ReceiptLineInput es la entrada de recepción para una línea de la orden.
// ActualUnitCost nil usa el costo original de la línea (sin corrección de factura).
type ReceiptLineInput struct {
	ItemID          string
	ReceivedQty     decimal.Decimal
	RejectedQty     decimal.Decimal
	ActualUnitCost  *decimal.Decimal
	ExpiryDate      *time.Time
	RejectionReason string
}

// ReceiptInput es la entrada completa de una recepción.
type ReceiptInput struct {
	Lines               []ReceiptLineInput
	CreditNoteRequested bool
	Notes               string
	InvoiceURL          string
	ReceivedBy          string
}

// Reconciliation es el resultado aritmético de comparar lo pedido contra lo
// recibido/rechazado/faltante. TotalMissingValue se reporta para la decisión
// de nota crédito pero no se persiste como campo propio.
type Reconciliation struct {
	Lines              []entity.ReceivedLine
	TotalRejectedValue decimal.Decimal
	TotalMissingValue  decimal.Decimal
	FinalPayableAmount decimal.Decimal
}

// Reconcile valida la entrada contra las líneas de la orden y calcula la
// conciliación completa. Política estricta: si recibida+rechazada supera la
// cantidad pedida en alguna línea, se rechaza toda la operación (un faltante
// negativo delata un error de digitación; recortarlo en silencio lo taparía).
//
// Invariantes por línea: ReceivedQty + RejectedQty + MissingQty == OrderedQty,
// lineRejectedValue = RejectedQty × ActualUnitCost,
// lineMissingValue  = MissingQty × UnitCost original,
// linePayable       = ReceivedQty × ActualUnitCost.
func Reconcile(poLines []entity.POLine, in ReceiptInput) (*Reconciliation, error) {
	if len(in.Lines) == 0 {
		return nil, domain.NewValidationError("items", "la recepción debe incluir todas las líneas de la orden")
	}

	inputByItem := make(map[string]ReceiptLineInput, len(in.Lines))
	for i, l := range in.Lines {
		if l.ItemID == "" {
			return nil, domain.NewLineValidationError(i, "item_id", "requerido")
		}
		if _, dup := inputByItem[l.ItemID]; dup {
			return nil, domain.NewLineValidationError(i, "item_id", "línea duplicada para el mismo ítem")
		}
		inputByItem[l.ItemID] = l
	}

	result := &Reconciliation{
		Lines:              make([]entity.ReceivedLine, 0, len(poLines)),
		TotalRejectedValue: decimal.Zero,
		TotalMissingValue:  decimal.Zero,
		FinalPayableAmount: decimal.Zero,
	}

	for i, pol := range poLines {
		l, ok := inputByItem[pol.ItemID]
		if !ok {
			return nil, domain.NewLineValidationError(i, "item_id", "falta la recepción para el ítem "+pol.ItemID)
		}
		delete(inputByItem, pol.ItemID)

		if l.ReceivedQty.IsNegative() {
			return nil, domain.NewLineValidationError(i, "received_qty", "no puede ser negativa")
		}
		if l.RejectedQty.IsNegative() {
			return nil, domain.NewLineValidationError(i, "rejected_qty", "no puede ser negativa")
		}

		counted := l.ReceivedQty.Add(l.RejectedQty)
		if counted.GreaterThan(pol.Quantity) {
			return nil, domain.NewLineValidationError(i, "received_qty",
				"recibida + rechazada ("+counted.String()+") supera la cantidad pedida ("+pol.Quantity.String()+")")
		}
		missing := pol.Quantity.Sub(counted)

		actualCost := pol.UnitCost
		if l.ActualUnitCost != nil {
			if l.ActualUnitCost.IsNegative() {
				return nil, domain.NewLineValidationError(i, "actual_unit_cost", "no puede ser negativo")
			}
			actualCost = *l.ActualUnitCost
		}

		if l.RejectedQty.IsPositive() && l.RejectionReason == "" {
			return nil, domain.NewLineValidationError(i, "rejection_reason", "requerido cuando hay cantidad rechazada")
		}

		result.Lines = append(result.Lines, entity.ReceivedLine{
			ItemID:          pol.ItemID,
			OrderedQty:      pol.Quantity,
			ReceivedQty:     l.ReceivedQty,
			RejectedQty:     l.RejectedQty,
			MissingQty:      missing,
			ActualUnitCost:  actualCost,
			ExpiryDate:      l.ExpiryDate,
			RejectionReason: l.RejectionReason,
		})

		result.TotalRejectedValue = result.TotalRejectedValue.Add(l.RejectedQty.Mul(actualCost))
		result.TotalMissingValue = result.TotalMissingValue.Add(missing.Mul(pol.UnitCost))
		result.FinalPayableAmount = result.FinalPayableAmount.Add(l.ReceivedQty.Mul(actualCost))
	}

	// Líneas de entrada que no pertenecen a la orden
	if len(inputByItem) > 0 {
		for itemID := range inputByItem {
			return nil, domain.NewValidationError("items", "el ítem "+itemID+" no pertenece a la orden")
		}
	}

	// La nota crédito solo tiene sentido cuando hay valor rechazado o faltante que reclamar.
	if in.CreditNoteRequested && result.TotalRejectedValue.Add(result.TotalMissingValue).LessThanOrEqual(decimal.Zero) {
		return nil, domain.NewValidationError("credit_note_requested", "no hay valor rechazado ni faltante que reclamar")
	}

	return result, nil
}

// LineTotal calcula el total de una línea de orden (Quantity × UnitCost).
func LineTotal(quantity, unitCost decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitCost)
}

// OrderTotal calcula el total de la orden como Σ línea.Quantity × línea.UnitCost.
// TotalAmount de la orden nunca se confía de forma independiente: se recalcula aquí.
func OrderTotal(lines []entity.POLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity.Mul(l.UnitCost))
	}
	return total
}
