package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// StockShortageError detalla un faltante de stock: producto, cantidad disponible
// y cantidad solicitada, para que el cliente pueda corregir la venta de inmediato.
type StockShortageError struct {
	ProductID   int64
	ProductName string
	Available   int64
	Requested   int64
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: disponible %d, solicitado %d",
		e.ProductName, e.Available, e.Requested)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *StockShortageError) Unwrap() error { return ErrInsufficientStock }
