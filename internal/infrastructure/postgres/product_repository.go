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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, category_id, sku, name, price, tax_rate, stock, state, created_at, updated_at`

// Create persiste un nuevo producto y asigna product.ID.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (category_id, sku, name, price, tax_rate, stock, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.CategoryID, product.SKU, product.Name, product.Price, product.TaxRate,
		product.Stock, string(product.State), product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (incluye retirados; el caller filtra por estado).
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	var state string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CategoryID, &p.SKU, &p.Name, &p.Price, &p.TaxRate,
		&p.Stock, &state, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.State = entity.Lifecycle(state)
	return &p, nil
}

// Update actualiza los campos editables del producto (no el stock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, sku = $3, name = $4, price = $5, tax_rate = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CategoryID, product.SKU, product.Name,
		product.Price, product.TaxRate, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos por estado de vida, paginados.
func (r *ProductRepo) List(state entity.Lifecycle, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE state = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, string(state), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var st string
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.SKU, &p.Name, &p.Price, &p.TaxRate,
			&p.Stock, &st, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.State = entity.Lifecycle(st)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Retire marca el producto como retirado (soft delete).
func (r *ProductRepo) Retire(id int64) error {
	query := `UPDATE products SET state = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, string(entity.LifecycleRetired))
	if err != nil {
		return fmt.Errorf("retire product: %w", err)
	}
	return nil
}

// DecrementStock descuenta qty con la guarda stock >= qty en el mismo UPDATE.
// Bajo concurrencia el motor serializa los decrementos por el lock de fila;
// 0 filas afectadas significa que no había existencia suficiente.
func (r *ProductRepo) DecrementStock(id int64, qty int64) (int64, bool, error) {
	query := `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
		RETURNING stock`
	var newStock int64
	err := r.q.QueryRow(context.Background(), query, id, qty).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("decrement stock: %w", err)
	}
	return newStock, true, nil
}

// IncrementStock suma qty sin condición.
func (r *ProductRepo) IncrementStock(id int64, qty int64) (int64, error) {
	query := `
		UPDATE products SET stock = stock + $2, updated_at = now()
		WHERE id = $1
		RETURNING stock`
	var newStock int64
	err := r.q.QueryRow(context.Background(), query, id, qty).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("increment stock: %w", err)
	}
	return newStock, nil
}
