package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem de inventario.
type CreateItemRequest struct {
	SKU                 string          `json:"sku" validate:"required,min=1,max=100"`
	Name                string          `json:"name" validate:"required,min=1,max=200"`
	DepartmentID        string          `json:"department_id" validate:"required"`
	CategoryID          string          `json:"category_id" validate:"required"`
	Unit                string          `json:"unit" validate:"required"`
	InitialStock        decimal.Decimal `json:"initial_stock"`
	MinStockLevel       decimal.Decimal `json:"min_stock_level"`
	MaxStockLevel       decimal.Decimal `json:"max_stock_level"`
	ReorderPoint        decimal.Decimal `json:"reorder_point"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	PurchaseUnit        string          `json:"purchase_unit"`
	ConversionFactor    decimal.Decimal `json:"conversion_factor"`
	PreferredSupplierID string          `json:"preferred_supplier_id"`
	Location            string          `json:"location"`
}

// UpdateItemRequest parche de atributos de un ítem (nunca toca CurrentStock:
// toda mutación de stock pasa por POST /api/stock/adjustments).
type UpdateItemRequest struct {
	Name                *string          `json:"name" validate:"omitempty,min=1,max=200"`
	DepartmentID        *string          `json:"department_id"`
	CategoryID          *string          `json:"category_id"`
	Unit                *string          `json:"unit"`
	MinStockLevel       *decimal.Decimal `json:"min_stock_level"`
	MaxStockLevel       *decimal.Decimal `json:"max_stock_level"`
	ReorderPoint        *decimal.Decimal `json:"reorder_point"`
	UnitCost            *decimal.Decimal `json:"unit_cost"`
	PurchaseUnit        *string          `json:"purchase_unit"`
	ConversionFactor    *decimal.Decimal `json:"conversion_factor"`
	PreferredSupplierID *string          `json:"preferred_supplier_id"`
	Location            *string          `json:"location"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID                  string          `json:"id"`
	SKU                 string          `json:"sku"`
	Name                string          `json:"name"`
	DepartmentID        string          `json:"department_id"`
	CategoryID          string          `json:"category_id"`
	Unit                string          `json:"unit"`
	CurrentStock        decimal.Decimal `json:"current_stock"`
	MinStockLevel       decimal.Decimal `json:"min_stock_level"`
	MaxStockLevel       decimal.Decimal `json:"max_stock_level"`
	ReorderPoint        decimal.Decimal `json:"reorder_point"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	PurchaseUnit        string          `json:"purchase_unit,omitempty"`
	ConversionFactor    decimal.Decimal `json:"conversion_factor"`
	PreferredSupplierID string          `json:"preferred_supplier_id,omitempty"`
	Location            string          `json:"location,omitempty"`
	IsActive            bool            `json:"is_active"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
