// Package snapshot define la foto de venta: un value object versionado con los
// datos de cliente y líneas tal como se vendieron. Se serializa a JSON dentro de
// la venta para que el detalle sobreviva independiente de las tablas normalizadas.
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// SchemaVersion versión actual del esquema de la foto. Incrementar al cambiar
// la forma; Decode rechaza versiones que no conoce.
const SchemaVersion = 1

// Customer datos del cliente al momento de la venta.
type Customer struct {
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Line línea vendida: producto, cantidad y precio al momento de la venta.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleSnapshot foto completa de la venta. Inmutable una vez creada.
type SaleSnapshot struct {
	Version  int      `json:"version"`
	Customer Customer `json:"customer"`
	Lines    []Line   `json:"lines"`
}

// New construye una foto con la versión de esquema actual.
func New(customer Customer, lines []Line) SaleSnapshot {
	return SaleSnapshot{Version: SchemaVersion, Customer: customer, Lines: lines}
}

// Encode serializa la foto a JSON.
func (s SaleSnapshot) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("serializar snapshot: %w", err)
	}
	return string(b), nil
}

// Decode deserializa una foto y valida la versión de esquema.
func Decode(raw string) (SaleSnapshot, error) {
	var s SaleSnapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return SaleSnapshot{}, fmt.Errorf("parsear snapshot: %w", err)
	}
	if s.Version != SchemaVersion {
		return SaleSnapshot{}, fmt.Errorf("versión de snapshot no soportada: %d", s.Version)
	}
	return s, nil
}
