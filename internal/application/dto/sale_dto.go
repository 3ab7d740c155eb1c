package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
// El frontend histórico envía variantes de nombre de campo (nombres||nombre,
// paymentMethod||metodoPago); aquí se aceptan todas y Normalize las colapsa una
// sola vez en la forma canónica, para que la lógica de negocio no vuelva a
// preguntar por campos alternativos.
type CreateSaleRequest struct {
	Customer *SaleCustomerInput `json:"customer"`
	Cliente  *SaleCustomerInput `json:"cliente"` // forma legada

	Items []SaleItemInput `json:"items"`

	PaymentMethod string `json:"paymentMethod"`
	MetodoPago    string `json:"metodoPago"` // forma legada

	AmountReceived *decimal.Decimal `json:"amountReceived"`
	Subtotal       *decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal  `json:"tax"`
	Total          decimal.Decimal  `json:"total"`
}

// SaleCustomerInput cliente tal como llega del frontend, con alias históricos.
type SaleCustomerInput struct {
	Name      string `json:"name"`
	Nombre    string `json:"nombre"`
	Nombres   string `json:"nombres"`
	Document  string `json:"document"`
	Documento string `json:"documento"`
	Phone     string `json:"phone"`
	Telefono  string `json:"telefono"`
	Type      string `json:"type"`
	Tipo      string `json:"tipo"`
}

// SaleItemInput línea del carrito.
type SaleItemInput struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// NormalizedCustomer cliente ya colapsado a un solo juego de campos.
type NormalizedCustomer struct {
	Name     string
	Document string
	Phone    string
	Type     string
}

// NormalizedSale forma canónica interna del request de venta.
type NormalizedSale struct {
	Customer       NormalizedCustomer
	Items          []SaleItemInput
	PaymentMethod  string
	AmountReceived *decimal.Decimal
	Subtotal       *decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
}

// Normalize colapsa los alias de campos en la forma canónica. Es el único punto
// del sistema que conoce las variantes del frontend.
func (r CreateSaleRequest) Normalize() NormalizedSale {
	cust := r.Customer
	if cust == nil {
		cust = r.Cliente
	}
	var nc NormalizedCustomer
	if cust != nil {
		nc = NormalizedCustomer{
			Name:     firstNonEmpty(cust.Name, cust.Nombres, cust.Nombre),
			Document: firstNonEmpty(cust.Document, cust.Documento),
			Phone:    firstNonEmpty(cust.Phone, cust.Telefono),
			Type:     firstNonEmpty(cust.Type, cust.Tipo),
		}
	}
	return NormalizedSale{
		Customer:       nc,
		Items:          r.Items,
		PaymentMethod:  firstNonEmpty(r.PaymentMethod, r.MetodoPago),
		AmountReceived: r.AmountReceived,
		Subtotal:       r.Subtotal,
		Tax:            r.Tax,
		Total:          r.Total,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// SaleResponse respuesta de POST /api/sales (201).
type SaleResponse struct {
	Success       bool        `json:"success"`
	Sale          SaleSummary `json:"sale"`
	InvoiceNumber string      `json:"invoiceNumber"`
	Invoice       *InvoiceRef `json:"invoice"` // null si la generación de factura falló
}

// SaleSummary venta en respuestas.
type SaleSummary struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          string          `json:"date"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
}

// InvoiceRef referencia mínima al documento de factura generado.
type InvoiceRef struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

// SaleFailure cuerpo de error para el endpoint de ventas: {success:false, message}.
type SaleFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
