package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/stock/adjustments.
// AllowNegative habilita ajustes tolerantes a backorder (por defecto, un
// resultado negativo se rechaza). IdempotencyKey opcional hace el ajuste
// seguro de reintentar.
type AdjustStockRequest struct {
	ItemID         string          `json:"item_id" validate:"required"`
	Delta          decimal.Decimal `json:"delta"`
	Reason         string          `json:"reason" validate:"required"`
	AllowNegative  bool            `json:"allow_negative"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// AdjustStockResponse salida de un ajuste: nivel resultante y si el
// disparador de reposición creó una orden automática.
type AdjustStockResponse struct {
	ItemID      string          `json:"item_id"`
	NewStock    decimal.Decimal `json:"new_stock"`
	ReorderPOID string          `json:"reorder_po_id,omitempty"`
}

// StockMovementResponse una entrada del historial de movimientos.
type StockMovementResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Delta     decimal.Decimal `json:"delta"`
	NewStock  decimal.Decimal `json:"new_stock"`
	Reason    string          `json:"reason"`
	CreatedAt time.Time       `json:"created_at"`
	CreatedBy string          `json:"created_by,omitempty"`
}

// StockMovementListResponse historial paginado de movimientos de un ítem.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// LowStockItemDTO un ítem en o bajo su punto de reorden, con la cantidad
// sugerida para volver al nivel máximo.
type LowStockItemDTO struct {
	ItemID              string          `json:"item_id"`
	SKU                 string          `json:"sku"`
	Name                string          `json:"name"`
	CurrentStock        decimal.Decimal `json:"current_stock"`
	ReorderPoint        decimal.Decimal `json:"reorder_point"`
	MaxStockLevel       decimal.Decimal `json:"max_stock_level"`
	SuggestedOrderQty   decimal.Decimal `json:"suggested_order_qty"`
	EstimatedOrderCost  decimal.Decimal `json:"estimated_order_cost"`
	PreferredSupplierID string          `json:"preferred_supplier_id,omitempty"`
}
