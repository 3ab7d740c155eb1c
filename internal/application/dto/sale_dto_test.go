package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-ventas/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Normalize: colapso de alias del frontend
// ──────────────────────────────────────────────────────────────────────────────

// El payload canónico pasa tal cual.
func TestNormalize_FormaCanonica(t *testing.T) {
	req := dto.CreateSaleRequest{
		Customer:      &dto.SaleCustomerInput{Name: "Ana Pérez", Document: "12345678"},
		PaymentMethod: "cash",
		Items:         []dto.SaleItemInput{{ID: 1, Quantity: 2, Price: decimal.RequireFromString("2500")}},
		Total:         decimal.RequireFromString("5000"),
	}
	n := req.Normalize()
	assert.Equal(t, "Ana Pérez", n.Customer.Name)
	assert.Equal(t, "12345678", n.Customer.Document)
	assert.Equal(t, "cash", n.PaymentMethod)
}

// El payload legado (cliente/nombres/metodoPago) se colapsa a la forma canónica.
func TestNormalize_FormaLegada(t *testing.T) {
	req := dto.CreateSaleRequest{
		Cliente:    &dto.SaleCustomerInput{Nombres: "Ana Pérez", Documento: "12345678", Telefono: "3001234567"},
		MetodoPago: "efectivo",
	}
	n := req.Normalize()
	assert.Equal(t, "Ana Pérez", n.Customer.Name)
	assert.Equal(t, "12345678", n.Customer.Document)
	assert.Equal(t, "3001234567", n.Customer.Phone)
	assert.Equal(t, "efectivo", n.PaymentMethod)
}

// Cuando ambos alias traen valor, gana la forma canónica.
func TestNormalize_CanonicoGanaSobreLegado(t *testing.T) {
	req := dto.CreateSaleRequest{
		Customer:      &dto.SaleCustomerInput{Name: "Canónico", Nombre: "Legado"},
		PaymentMethod: "card",
		MetodoPago:    "efectivo",
	}
	n := req.Normalize()
	assert.Equal(t, "Canónico", n.Customer.Name)
	assert.Equal(t, "card", n.PaymentMethod)
}

// nombres tiene prioridad sobre nombre dentro de los alias legados.
func TestNormalize_PrioridadDeAliasLegados(t *testing.T) {
	req := dto.CreateSaleRequest{
		Cliente: &dto.SaleCustomerInput{Nombres: "Plural", Nombre: "Singular"},
	}
	assert.Equal(t, "Plural", req.Normalize().Customer.Name)
}

// Espacios en blanco cuentan como vacío.
func TestNormalize_EspaciosCuentanComoVacio(t *testing.T) {
	req := dto.CreateSaleRequest{
		Customer: &dto.SaleCustomerInput{Name: "   ", Nombre: "Real"},
	}
	assert.Equal(t, "Real", req.Normalize().Customer.Name)
}

// Sin bloque de cliente, el normalizado queda vacío (y la validación del caso
// de uso lo rechaza después).
func TestNormalize_SinCliente(t *testing.T) {
	n := dto.CreateSaleRequest{}.Normalize()
	assert.Empty(t, n.Customer.Name)
}

// Un body legado completo, tal como lo envía la caja vieja, se deserializa y
// normaliza de punta a punta.
func TestNormalize_BodyLegadoCompleto(t *testing.T) {
	body := `{
		"cliente": {"nombres": "Ana Pérez", "documento": "12345678", "tipo": "natural"},
		"items": [{"id": 1, "name": "Café 500g", "quantity": 2, "price": "2500.00"}],
		"metodoPago": "efectivo",
		"tax": "0",
		"total": "5000.00"
	}`
	var req dto.CreateSaleRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	n := req.Normalize()
	assert.Equal(t, "Ana Pérez", n.Customer.Name)
	assert.Equal(t, "natural", n.Customer.Type)
	assert.Equal(t, "efectivo", n.PaymentMethod)
	require.Len(t, n.Items, 1)
	assert.True(t, n.Total.Equal(decimal.RequireFromString("5000.00")))
}
