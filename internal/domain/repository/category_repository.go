package repository

import "github.com/tu-usuario/pos-ventas/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	List(state entity.Lifecycle, limit, offset int) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Retire(id int64) error
}
