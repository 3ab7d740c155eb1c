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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, invoice_number, customer_name, subtotal, tax, total, payment_method, status, snapshot, created_at`

// Create inserta la venta y asigna sale.ID y sale.CreatedAt. La columna
// invoice_number tiene constraint UNIQUE: una colisión de consecutivo entre
// cajas concurrentes retorna domain.ErrDuplicate para que el caller re-derive
// y reintente.
//
// Dentro de una transacción el insert corre bajo un savepoint (pgx.Tx.Begin
// anidado). PostgreSQL aborta la transacción completa ante cualquier error de
// statement; sin el savepoint, el 23505 del consecutivo dejaría la tx en estado
// 25P02 y el reintento (y hasta el insert de respaldo) fallarían también. Con
// el savepoint, la violación se revierte sola y la tx de la venta sigue usable.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	if tx, ok := r.q.(pgx.Tx); ok {
		nested, err := tx.Begin(ctx)
		if err != nil {
			return fmt.Errorf("savepoint venta: %w", err)
		}
		if err := insertSale(ctx, nested, sale); err != nil {
			_ = nested.Rollback(ctx)
			return err
		}
		if err := nested.Commit(ctx); err != nil {
			return fmt.Errorf("liberar savepoint venta: %w", err)
		}
		return nil
	}
	return insertSale(ctx, r.q, sale)
}

func insertSale(ctx context.Context, q Querier, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (invoice_number, customer_name, subtotal, tax, total, payment_method, status, snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		RETURNING id, created_at`
	err := q.QueryRow(ctx, query,
		sale.InvoiceNumber, sale.CustomerName, sale.Subtotal, sale.Tax, sale.Total,
		sale.PaymentMethod, sale.Status, sale.Snapshot,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.InvoiceNumber, &s.CustomerName, &s.Subtotal, &s.Tax, &s.Total,
		&s.PaymentMethod, &s.Status, &s.Snapshot, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List lista ventas paginadas, más reciente primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.InvoiceNumber, &s.CustomerName, &s.Subtotal, &s.Tax,
			&s.Total, &s.PaymentMethod, &s.Status, &s.Snapshot, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// LastInvoiceNumber devuelve el consecutivo más reciente que empieza con el
// prefijo del día ("" si no hay ventas hoy). Ordena por el número mismo, no por
// created_at: los respaldos F- no entran porque no comparten el prefijo.
func (r *SaleRepo) LastInvoiceNumber(prefix string) (string, error) {
	query := `
		SELECT invoice_number FROM sales
		WHERE invoice_number LIKE $1 || '-%'
		ORDER BY invoice_number DESC LIMIT 1`
	var number string
	err := r.q.QueryRow(context.Background(), query, prefix).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last invoice number: %w", err)
	}
	return number, nil
}

// UpdateStatus hace la transición de estado de forma atómica: el WHERE exige
// el estado de origen, así dos anulaciones concurrentes no pueden pasar las
// dos. Cero filas afectadas significa que otro ya movió el estado.
func (r *SaleRepo) UpdateStatus(id int64, from, to string) error {
	query := `UPDATE sales SET status = $3 WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(context.Background(), query, id, from, to)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: la venta no está en estado %s", domain.ErrConflict, from)
	}
	return nil
}
