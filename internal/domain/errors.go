package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrNegativeStock      = errors.New("el ajuste dejaría el stock en negativo")
	ErrReferenced         = errors.New("el recurso está referenciado por otros registros")
)

// ValidationError señala qué línea y campo de la entrada es inválido, para que
// la UI pueda resaltarlo. Line == -1 cuando el error no pertenece a una línea concreta.
type ValidationError struct {
	Line   int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("%v: línea %d, campo %q: %s", ErrValidation, e.Line, e.Field, e.Reason)
	}
	if e.Field != "" {
		return fmt.Sprintf("%v: campo %q: %s", ErrValidation, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: %s", ErrValidation, e.Reason)
}

// Unwrap permite errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError construye un error de validación general (sin línea).
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Line: -1, Field: field, Reason: reason}
}

// NewLineValidationError construye un error de validación para una línea concreta (índice 0-based).
func NewLineValidationError(line int, field, reason string) *ValidationError {
	return &ValidationError{Line: line, Field: field, Reason: reason}
}
