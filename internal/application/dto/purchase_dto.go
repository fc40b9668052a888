package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// POLineInput una línea al crear o editar una orden de compra.
type POLineInput struct {
	ItemID   string          `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CreatePORequest entrada para crear una orden. Status destino: "draft"
// (guardar avance, validación laxa) u "ordered" (colocar orden, validación completa).
type CreatePORequest struct {
	SupplierID           string        `json:"supplier_id"`
	Status               string        `json:"status" validate:"omitempty,oneof=draft ordered"`
	Lines                []POLineInput `json:"lines"`
	ExpectedDeliveryDate *time.Time    `json:"expected_delivery_date"`
	Notes                string        `json:"notes"`
	TargetLocationID     string        `json:"target_location_id"`
}

// UpdatePORequest parche de una orden (permitido en draft y ordered).
// Lines no-nil reemplaza la lista completa y recalcula el total.
type UpdatePORequest struct {
	SupplierID           *string        `json:"supplier_id"`
	Lines                *[]POLineInput `json:"lines"`
	ExpectedDeliveryDate *time.Time     `json:"expected_delivery_date"`
	Notes                *string        `json:"notes"`
	InvoiceURL           *string        `json:"invoice_url"`
	TargetLocationID     *string        `json:"target_location_id"`
}

// POLineResponse una línea de la orden.
type POLineResponse struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// ReceiptLineRequest recepción de una línea: buenas, rechazadas y costo real.
type ReceiptLineRequest struct {
	ItemID          string           `json:"item_id" validate:"required"`
	ReceivedQty     decimal.Decimal  `json:"received_qty"`
	RejectedQty     decimal.Decimal  `json:"rejected_qty"`
	ActualUnitCost  *decimal.Decimal `json:"actual_unit_cost"`
	ExpiryDate      *time.Time       `json:"expiry_date"`
	RejectionReason string           `json:"rejection_reason"`
}

// ReceivePORequest body para POST /api/purchase-orders/{id}/receive.
type ReceivePORequest struct {
	Lines               []ReceiptLineRequest `json:"lines"`
	CreditNoteRequested bool                 `json:"credit_note_requested"`
	Notes               string               `json:"notes"`
	InvoiceURL          string               `json:"invoice_url"`
}

// ReceivedLineResponse conciliación resultante de una línea.
type ReceivedLineResponse struct {
	ItemID          string          `json:"item_id"`
	OrderedQty      decimal.Decimal `json:"ordered_qty"`
	ReceivedQty     decimal.Decimal `json:"received_qty"`
	RejectedQty     decimal.Decimal `json:"rejected_qty"`
	MissingQty      decimal.Decimal `json:"missing_qty"`
	ActualUnitCost  decimal.Decimal `json:"actual_unit_cost"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
}

// ReceivingRecordResponse registro inmutable de la recepción.
type ReceivingRecordResponse struct {
	ReceivedBy          string                 `json:"received_by"`
	ReceivedAt          time.Time              `json:"received_at"`
	Items               []ReceivedLineResponse `json:"items"`
	TotalRejectedValue  decimal.Decimal        `json:"total_rejected_value"`
	FinalPayableAmount  decimal.Decimal        `json:"final_payable_amount"`
	CreditNoteRequested bool                   `json:"credit_note_requested"`
	Notes               string                 `json:"notes,omitempty"`
	InvoiceURL          string                 `json:"invoice_url,omitempty"`
}

// POResponse salida de una orden de compra.
type POResponse struct {
	ID                   string                   `json:"id"`
	PONumber             string                   `json:"po_number"`
	SupplierID           string                   `json:"supplier_id"`
	SupplierName         string                   `json:"supplier_name"`
	Status               string                   `json:"status"`
	Lines                []POLineResponse         `json:"lines"`
	TotalAmount          decimal.Decimal          `json:"total_amount"`
	ExpectedDeliveryDate *time.Time               `json:"expected_delivery_date,omitempty"`
	Notes                string                   `json:"notes,omitempty"`
	InvoiceURL           string                   `json:"invoice_url,omitempty"`
	TargetLocationID     string                   `json:"target_location_id,omitempty"`
	AutoGenerated        bool                     `json:"auto_generated"`
	ReceivedDetails      *ReceivingRecordResponse `json:"received_details,omitempty"`
	CreatedAt            time.Time                `json:"created_at"`
	UpdatedAt            time.Time                `json:"updated_at"`
}

// POListResponse lista paginada de órdenes.
type POListResponse struct {
	Items []POResponse `json:"items"`
	Page  PageResponse `json:"page"`
}
