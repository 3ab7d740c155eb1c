package repository

import "github.com/tu-usuario/pos-ventas/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetBySaleID(saleID int64) (*entity.Invoice, error)
}
