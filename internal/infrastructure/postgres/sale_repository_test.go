package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakeTx: transacción pgx simulada con la semántica de aborto de PostgreSQL.
//
// Tras cualquier error de statement, PostgreSQL aborta la transacción y todo
// statement posterior falla con 25P02 hasta un ROLLBACK (o rollback a
// savepoint). El fake reproduce exactamente eso: una violación del UNIQUE del
// consecutivo marca el estado como abortado, y solo el Rollback del savepoint
// anidado (pgx.Tx.Begin) lo limpia.
// ──────────────────────────────────────────────────────────────────────────────

type txState struct {
	aborted    bool
	duplicates int // inserts que deben chocar con 23505 antes de pasar
	nextID     int64
	lastNumber string // resultado de LastInvoiceNumber
}

func abortErr() *pgconn.PgError {
	return &pgconn.PgError{
		Code:    "25P02",
		Message: "current transaction is aborted, commands ignored until end of transaction block",
	}
}

func uniqueErr() *pgconn.PgError {
	return &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		ConstraintName: "sales_invoice_number_key",
	}
}

type fakeTx struct {
	st *txState
}

var _ pgx.Tx = (*fakeTx)(nil)

// Begin abre un savepoint. En una tx abortada, SAVEPOINT también falla.
func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) {
	if t.st.aborted {
		return nil, abortErr()
	}
	return &fakeTx{st: t.st}, nil
}

// Commit libera el savepoint; en estado abortado falla igual que RELEASE.
func (t *fakeTx) Commit(ctx context.Context) error {
	if t.st.aborted {
		return abortErr()
	}
	return nil
}

// Rollback revierte al savepoint y limpia el estado abortado.
func (t *fakeTx) Rollback(ctx context.Context) error {
	t.st.aborted = false
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if t.st.aborted {
		return pgconn.CommandTag{}, abortErr()
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if t.st.aborted {
		return nil, abortErr()
	}
	return nil, pgx.ErrNoRows
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if t.st.aborted {
		return errRow{abortErr()}
	}
	switch {
	case strings.Contains(sql, "INSERT INTO sales"):
		if t.st.duplicates > 0 {
			t.st.duplicates--
			t.st.aborted = true
			return errRow{uniqueErr()}
		}
		t.st.nextID++
		return saleInsertRow{id: t.st.nextID}
	case strings.Contains(sql, "SELECT invoice_number"):
		if t.st.lastNumber == "" {
			return errRow{pgx.ErrNoRows}
		}
		return stringRow{t.st.lastNumber}
	default:
		return errRow{pgx.ErrNoRows}
	}
}

func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	panic("no implementado en el fake")
}
func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	panic("no implementado en el fake")
}
func (t *fakeTx) LargeObjects() pgx.LargeObjects { panic("no implementado en el fake") }
func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	panic("no implementado en el fake")
}
func (t *fakeTx) Conn() *pgx.Conn { return nil }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

type saleInsertRow struct{ id int64 }

func (r saleInsertRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.id
	*(dest[1].(*time.Time)) = time.Now()
	return nil
}

type stringRow struct{ s string }

func (r stringRow) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.s
	return nil
}

func testSale(number string) *entity.Sale {
	return &entity.Sale{InvoiceNumber: number, CustomerName: "Ana Pérez", Status: entity.SaleStatusCompleted}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create bajo savepoint
// ──────────────────────────────────────────────────────────────────────────────

// Una colisión del UNIQUE del consecutivo retorna ErrDuplicate y deja la
// transacción usable: el savepoint contiene el aborto y el caller puede
// re-derivar el número y reintentar en la misma tx.
func TestSaleRepoCreate_ColisionNoAbortaLaTransaccion(t *testing.T) {
	tx := &fakeTx{st: &txState{duplicates: 1, lastNumber: "20260901-000007"}}
	repo := postgres.NewSaleRepository(tx)

	err := repo.Create(testSale("20260901-000007"))
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.False(t, tx.st.aborted, "el savepoint debe contener el aborto dentro de Create")

	// La tx sigue viva: la re-derivación del número funciona...
	last, err := repo.LastInvoiceNumber("20260901")
	require.NoError(t, err, "tras la colisión, la consulta del consecutivo debe seguir funcionando")
	assert.Equal(t, "20260901-000007", last)

	// ...y el reintento del insert también.
	sale := testSale("20260901-000008")
	require.NoError(t, repo.Create(sale), "el reintento en la misma tx debe poder insertar")
	assert.Equal(t, int64(1), sale.ID)
}

// Colisiones consecutivas: cada intento queda contenido, la tx nunca entra en
// 25P02 y el insert final (con el identificador de respaldo) pasa.
func TestSaleRepoCreate_ColisionesRepetidasHastaRespaldo(t *testing.T) {
	tx := &fakeTx{st: &txState{duplicates: 3}}
	repo := postgres.NewSaleRepository(tx)

	for i := 0; i < 3; i++ {
		err := repo.Create(testSale("20260901-000001"))
		require.ErrorIs(t, err, domain.ErrDuplicate)
		require.False(t, tx.st.aborted)
	}

	sale := testSale("F-1788258600000")
	require.NoError(t, repo.Create(sale))
	assert.NotZero(t, sale.ID)
}

// Sin el savepoint, el fake reproduce el comportamiento real de PostgreSQL:
// statements posteriores a un error fallan con 25P02 hasta el rollback. Este
// test documenta la semántica que el savepoint de Create debe contener.
func TestFakeTx_SemanticaDeAborto(t *testing.T) {
	tx := &fakeTx{st: &txState{duplicates: 1}}

	// Error directo sobre la tx (sin savepoint): queda abortada.
	err := tx.QueryRow(context.Background(), "INSERT INTO sales ...").Scan()
	require.Error(t, err)
	require.True(t, tx.st.aborted)

	// Todo statement posterior falla con 25P02.
	err = tx.QueryRow(context.Background(), "SELECT invoice_number ...").Scan(new(string))
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "25P02", pgErr.Code)

	// Solo el rollback (a savepoint) la revive.
	require.NoError(t, tx.Rollback(context.Background()))
	assert.False(t, tx.st.aborted)
}
