package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un ítem de inventario del hotel (cocina, lencería, amenities...).
// CurrentStock se expresa siempre en Unit (unidad base); PurchaseUnit/ConversionFactor
// describen cómo se compra (1 PurchaseUnit = ConversionFactor unidades base).
// CurrentStock solo se muta vía el caso de uso AdjustStock, nunca por escritura directa.
type Item struct {
	ID                  string
	SKU                 string // código único, asignado por el operador
	Name                string
	DepartmentID        string
	CategoryID          string
	Unit                string          // unidad base de medida (kg, und, lt...)
	CurrentStock        decimal.Decimal // en unidad base
	MinStockLevel       decimal.Decimal
	MaxStockLevel       decimal.Decimal
	ReorderPoint        decimal.Decimal // umbral de reposición automática
	UnitCost            decimal.Decimal
	PurchaseUnit        string          // vacío si se compra en unidad base
	ConversionFactor    decimal.Decimal // 0 si no aplica
	PreferredSupplierID string          // vacío si no hay proveedor preferido
	Location            string          // ubicación de almacenamiento (texto libre)
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// StockMovement registra cada mutación de stock (auditoría del libro de inventario).
// IdempotencyKey es única cuando está definida; un reintento con la misma clave
// es rechazado por la capa de persistencia, lo que hace seguro repetir recepciones.
type StockMovement struct {
	ID             string
	ItemID         string
	Delta          decimal.Decimal // positivo entrada, negativo salida
	NewStock       decimal.Decimal // stock resultante tras aplicar Delta
	Reason         string          // ej. "po-receipt:<poID>", "sale", "merma"
	IdempotencyKey string          // vacío para ajustes manuales
	CreatedAt      time.Time
	CreatedBy      string // UserID
}
