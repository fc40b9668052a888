package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de PostgreSQL para violación de constraint único.
const pgUniqueViolation = "23505"

// isUniqueViolation detecta choques contra un UNIQUE: sku, po_number, label
// de categoría, clave de idempotencia o el intent pendiente por orden. Cada
// repositorio lo traduce a su error de dominio (ErrDuplicate, ErrConflict...).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
