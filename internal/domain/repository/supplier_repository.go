package repository

import "github.com/tu-usuario/pos-ventas/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id int64) (*entity.Supplier, error)
	List(state entity.Lifecycle, limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Retire(id int64) error
}
