package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría y asigna category.ID.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (name, description, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		category.Name, category.Description, string(category.State),
		category.CreatedAt, category.UpdatedAt,
	).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id int64) (*entity.Category, error) {
	query := `SELECT id, name, description, state, created_at, updated_at FROM categories WHERE id = $1`
	var c entity.Category
	var state string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Description, &state, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	c.State = entity.Lifecycle(state)
	return &c, nil
}

// List lista categorías por estado de vida, paginadas.
func (r *CategoryRepo) List(state entity.Lifecycle, limit, offset int) ([]*entity.Category, error) {
	query := `
		SELECT id, name, description, state, created_at, updated_at
		FROM categories WHERE state = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, string(state), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var st string
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &st, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.State = entity.Lifecycle(st)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de la categoría.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `UPDATE categories SET name = $2, description = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Retire marca la categoría como retirada (soft delete).
func (r *CategoryRepo) Retire(id int64) error {
	query := `UPDATE categories SET state = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, string(entity.LifecycleRetired))
	if err != nil {
		return fmt.Errorf("retire category: %w", err)
	}
	return nil
}
