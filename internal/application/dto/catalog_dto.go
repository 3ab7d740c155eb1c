package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
	Stock      int64           `json:"stock"`
	CategoryID *int64          `json:"category_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se tocan.
type UpdateProductRequest struct {
	Name       *string          `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	TaxRate    *decimal.Decimal `json:"tax_rate"`
	CategoryID *int64           `json:"category_id"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID         int64           `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
	Stock      int64           `json:"stock"`
	State      string          `json:"state"`
	CategoryID *int64          `json:"category_id,omitempty"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	State       string `json:"state"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	State   string `json:"state"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Type     string `json:"type,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Type     string `json:"type,omitempty"`
	State    string `json:"state"`
}
