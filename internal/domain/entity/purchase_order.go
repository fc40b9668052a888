package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden de compra.
// draft → ordered → received | cancelled. received y cancelled son terminales.
const (
	POStatusDraft     = "draft"
	POStatusOrdered   = "ordered"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder representa una orden de compra a un proveedor.
// SupplierName se captura al crear (snapshot intencional: no sigue renombres
// posteriores del proveedor). TotalAmount es derivado y se recalcula en cada
// edición; una vez recibida, queda congelado y ReceivedDetails.FinalPayableAmount
// es la cifra autoritativa a pagar.
type PurchaseOrder struct {
	ID                   string
	PONumber             string // único, generado al crear; identificador externo impreso en documentos
	SupplierID           string
	SupplierName         string
	Status               string // draft, ordered, received, cancelled
	Lines                []POLine
	TotalAmount          decimal.Decimal
	ExpectedDeliveryDate *time.Time
	Notes                string
	InvoiceURL           string // referencia opaca del colaborador de uploads; nunca se interpreta
	TargetLocationID     string
	AutoGenerated        bool   // creada por el disparador de reposición automática
	SourceItemID         string // ítem que originó la orden automática (vacío si manual)
	ReceivedDetails      *ReceivingRecord
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// POLine es una línea de una orden de compra. Name y Unit se denormalizan al
// agregarla para que la visualización sea estable aunque el ítem cambie después.
type POLine struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`  // cantidad pedida, > 0, en unidad base
	UnitCost  decimal.Decimal `json:"unit_cost"` // >= 0
	TotalCost decimal.Decimal `json:"total_cost"`
}

// ReceivingRecord es el registro inmutable de recepción de una orden.
// Se escribe exactamente una vez (transición ordered → received) y es la
// pista de auditoría de lo físicamente aceptado.
type ReceivingRecord struct {
	ReceivedBy           string          `json:"received_by"`
	ReceivedAt           time.Time       `json:"received_at"`
	Items                []ReceivedLine  `json:"items"`
	TotalRejectedValue   decimal.Decimal `json:"total_rejected_value"`
	FinalPayableAmount   decimal.Decimal `json:"final_payable_amount"`
	CreditNoteRequested  bool            `json:"credit_note_requested"`
	Notes                string          `json:"notes"`
	InvoiceURL           string          `json:"invoice_url,omitempty"`
}

// ReceivedLine detalla la conciliación de una línea: pedida, recibida en buen
// estado, rechazada (presente pero inutilizable) y faltante (nunca llegó).
type ReceivedLine struct {
	ItemID          string          `json:"item_id"`
	OrderedQty      decimal.Decimal `json:"ordered_qty"`
	ReceivedQty     decimal.Decimal `json:"received_qty"`
	RejectedQty     decimal.Decimal `json:"rejected_qty"`
	MissingQty      decimal.Decimal `json:"missing_qty"`
	ActualUnitCost  decimal.Decimal `json:"actual_unit_cost"` // puede diferir del costo original (corrección de factura)
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
}

// ReceiptIntent marca una recepción en curso. Se escribe antes de aplicar los
// ajustes de stock y se elimina al finalizar la orden; si el proceso muere a
// mitad de camino, la recepción se reanuda desde aquí sin duplicar efectos.
// Solo puede existir un intent pendiente por orden.
type ReceiptIntent struct {
	Key       string // clave de idempotencia generada (prefijo de las claves por línea)
	POID      string
	Record    ReceivingRecord // conciliación ya calculada y validada
	CreatedAt time.Time
}
