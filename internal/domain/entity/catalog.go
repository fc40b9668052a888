package entity

import "time"

// Supplier representa un proveedor del hotel. Referenciado por
// Item.PreferredSupplierID y PurchaseOrder.SupplierID; no posee órdenes.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category representa una categoría de ítems (abarrotes, lácteos, limpieza...).
type Category struct {
	ID        string
	Label     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Department representa un departamento del hotel (cocina, housekeeping, bar...).
type Department struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
