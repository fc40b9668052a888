package entity

import "time"

// Roles del personal del hotel.
const (
	RoleAdmin      = "admin"
	RoleAlmacenero = "almacenero" // gestiona stock y recepciones
	RoleComprador  = "comprador"  // gestiona órdenes de compra
)

// User representa un usuario del personal (solo back-office; los huéspedes no entran aquí).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, almacenero, comprador
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
