package repository

import "github.com/tu-usuario/pos-ventas/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las mutaciones de stock son deltas guardados a nivel SQL, nunca read-modify-write.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	List(state entity.Lifecycle, limit, offset int) ([]*entity.Product, error)
	// Retire marca el producto como retirado (soft delete).
	Retire(id int64) error
	// DecrementStock descuenta qty solo si stock >= qty (update condicional).
	// Devuelve el stock resultante y ok=false si la guarda no afectó filas.
	DecrementStock(id int64, qty int64) (newStock int64, ok bool, err error)
	// IncrementStock suma qty sin condición y devuelve el stock resultante.
	IncrementStock(id int64, qty int64) (newStock int64, err error)
}
