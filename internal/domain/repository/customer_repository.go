package repository

import "github.com/tu-usuario/pos-ventas/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id int64) (*entity.Customer, error)
	List(state entity.Lifecycle, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Retire(id int64) error
}
