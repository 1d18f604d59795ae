// Package apperr defines the recoverable business error conditions of the
// settlement engine. Handlers map each one to a distinct HTTP status and a
// stable machine-readable code, so the caller can always render a specific
// message instead of a generic failure.
package apperr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrSinPrecioEnLista: the product has no price entry in the requested
	// list. Distinct from a legitimately free item — never reported as 0.
	ErrSinPrecioEnLista = errors.New("el producto no tiene precio en la lista seleccionada")

	// ErrPorcentajeInvalido: adjustment percentage outside [0, 100].
	ErrPorcentajeInvalido = errors.New("el porcentaje debe estar entre 0 y 100")

	// ErrMontoInvalido: fixed-amount adjustment with a negative value. The
	// sign comes from the adjustment mode, never from the amount.
	ErrMontoInvalido = errors.New("el monto del ajuste no puede ser negativo")

	// ErrDescuentoMayorQueSubtotal: discount amount exceeds the subtotal.
	ErrDescuentoMayorQueSubtotal = errors.New("el descuento no puede ser mayor al subtotal")

	// ErrPagoInsuficiente: sum of payment components below the sale total.
	ErrPagoInsuficiente = errors.New("el monto total de pagos es insuficiente")

	// ErrCodigoDuplicado: product / raw-material code collision on creation.
	ErrCodigoDuplicado = errors.New("ya existe un registro con ese código")

	// ErrListaProtegida: protected price lists cannot be deleted or renamed.
	ErrListaProtegida = errors.New("la lista de precios está protegida")

	// ErrTransicionInvalida: kitchen orders only move forward
	// (Pendiente → En Preparación → Listo → Entregado).
	ErrTransicionInvalida = errors.New("transición de estado inválida")
)

// StockInsuficienteError reports a shortfall found during validation.
// Blocking by default; the manual adjustment path may override it with an
// explicit operator confirmation.
type StockInsuficienteError struct {
	EntidadID  uuid.UUID
	Entidad    string // nombre para el mensaje
	Necesario  decimal.Decimal
	Disponible decimal.Decimal
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: necesario %s, disponible %s",
		e.Entidad, e.Necesario.String(), e.Disponible.String())
}

// SustitucionInvalidaError: the chosen combo alternative is neither the
// slot's default product nor one of its registered options.
type SustitucionInvalidaError struct {
	ComboItemID uuid.UUID
	ProductoID  uuid.UUID
}

func (e *SustitucionInvalidaError) Error() string {
	return fmt.Sprintf("el producto %s no es una sustitución válida para el item %s",
		e.ProductoID, e.ComboItemID)
}

// EntidadEnUsoError: attempted deactivation or type change of an entity
// still referenced by active recipes or combos.
type EntidadEnUsoError struct {
	EntidadID uuid.UUID
	Entidad   string
	UsadaPor  string // "recetas" | "combos"
}

func (e *EntidadEnUsoError) Error() string {
	return fmt.Sprintf("%s está en uso por %s activos y no puede modificarse", e.Entidad, e.UsadaPor)
}
