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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, tax_id, email, phone, address, state, created_at, updated_at`

// Create persiste un proveedor y asigna supplier.ID.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (name, tax_id, email, phone, address, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		supplier.Name, supplier.TaxID, supplier.Email, supplier.Phone,
		supplier.Address, string(supplier.State), supplier.CreatedAt, supplier.UpdatedAt,
	).Scan(&supplier.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	var s entity.Supplier
	var state string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &s.Address,
		&state, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	s.State = entity.Lifecycle(state)
	return &s, nil
}

// List lista proveedores por estado de vida, paginados.
func (r *SupplierRepo) List(state entity.Lifecycle, limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE state = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, string(state), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		var st string
		if err := rows.Scan(&s.ID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &s.Address,
			&st, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		s.State = entity.Lifecycle(st)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza los datos del proveedor.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, tax_id = $3, email = $4, phone = $5, address = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, supplier.TaxID, supplier.Email,
		supplier.Phone, supplier.Address, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// Retire marca el proveedor como retirado (soft delete).
func (r *SupplierRepo) Retire(id int64) error {
	query := `UPDATE suppliers SET state = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, string(entity.LifecycleRetired))
	if err != nil {
		return fmt.Errorf("retire supplier: %w", err)
	}
	return nil
}
