package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-ventas/internal/application/ledger"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[int64]*entity.Product
}

func newStubProductRepo(products ...*entity.Product) *stubProductRepo {
	m := &stubProductRepo{products: make(map[int64]*entity.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *stubProductRepo) Create(p *entity.Product) error { m.products[p.ID] = p; return nil }
func (m *stubProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}
func (m *stubProductRepo) Update(p *entity.Product) error { return nil }
func (m *stubProductRepo) List(entity.Lifecycle, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (m *stubProductRepo) Retire(int64) error { return nil }
func (m *stubProductRepo) DecrementStock(id, qty int64) (int64, bool, error) {
	p, ok := m.products[id]
	if !ok || p.Stock < qty {
		return 0, false, nil
	}
	p.Stock -= qty
	return p.Stock, true, nil
}
func (m *stubProductRepo) IncrementStock(id, qty int64) (int64, error) {
	p, ok := m.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.Stock += qty
	return p.Stock, nil
}

type stubMovementRepo struct {
	movements []*entity.StockMovement
}

func (m *stubMovementRepo) Create(mov *entity.StockMovement) error {
	m.movements = append(m.movements, mov)
	return nil
}
func (m *stubMovementRepo) ListByProduct(int64, int, int) ([]*entity.StockMovement, error) {
	return m.movements, nil
}

// stubTxRunner pasa los repos directo; el rollback real lo cubren los tests de
// integración del TxRunner de postgres.
type stubTxRunner struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
}

func (r *stubTxRunner) Run(
	ctx context.Context,
	fn func(repository.ProductRepository, repository.MovementRepository) error,
) error {
	return fn(r.productRepo, r.movRepo)
}

func newLedgerFixture(products ...*entity.Product) (*ledger.Ledger, *stubProductRepo, *stubMovementRepo) {
	productRepo := newStubProductRepo(products...)
	movRepo := &stubMovementRepo{}
	runner := &stubTxRunner{productRepo: productRepo, movRepo: movRepo}
	return ledger.New(runner, productRepo, movRepo), productRepo, movRepo
}

func product(id int64, name string, stock int64) *entity.Product {
	return &entity.Product{ID: id, Name: name, Stock: stock, State: entity.LifecycleActive}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

// Una entrada suma stock y deja un movimiento con foto antes/después.
func TestRecordMovement_Entrada(t *testing.T) {
	l, products, movs := newLedgerFixture(product(1, "Café 500g", 10))

	result, err := l.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: 1,
		Direction: entity.MovementEntry,
		Quantity:  5,
		Reason:    "recepción proveedor",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), result.NewStock)

	p, _ := products.GetByID(1)
	assert.Equal(t, int64(15), p.Stock)

	require.Len(t, movs.movements, 1)
	mov := movs.movements[0]
	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, entity.MovementEntry, mov.Direction)
	assert.Equal(t, int64(10), mov.Before)
	assert.Equal(t, int64(15), mov.After)
	assert.Equal(t, "recepción proveedor", mov.Reason)
}

// Una salida descuenta stock respetando la guarda de no-negatividad.
func TestRecordMovement_Salida(t *testing.T) {
	l, products, movs := newLedgerFixture(product(1, "Café 500g", 10))

	result, err := l.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: 1,
		Direction: entity.MovementExit,
		Quantity:  4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), result.NewStock)

	p, _ := products.GetByID(1)
	assert.Equal(t, int64(6), p.Stock)

	require.Len(t, movs.movements, 1)
	assert.Equal(t, int64(10), movs.movements[0].Before)
	assert.Equal(t, int64(6), movs.movements[0].After)
}

// Una salida mayor al disponible se rechaza con el faltante exacto y no deja
// movimiento ni cambia el stock.
func TestRecordMovement_SalidaSinStock(t *testing.T) {
	l, products, movs := newLedgerFixture(product(1, "Café 500g", 3))

	_, err := l.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: 1,
		Direction: entity.MovementExit,
		Quantity:  7,
	})
	require.Error(t, err)

	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, int64(3), shortage.Available)
	assert.Equal(t, int64(7), shortage.Requested)

	p, _ := products.GetByID(1)
	assert.Equal(t, int64(3), p.Stock)
	assert.Empty(t, movs.movements, "un movimiento rechazado no debe quedar en la bitácora")
}

// Cantidad y dirección inválidas se rechazan antes de tocar el stock.
func TestRecordMovement_EntradaInvalida(t *testing.T) {
	l, _, _ := newLedgerFixture(product(1, "Café 500g", 10))

	_, err := l.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: 1, Direction: entity.MovementEntry, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = l.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: 1, Direction: "sideways", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Producto inexistente retorna not found.
func TestRecordMovement_ProductoInexistente(t *testing.T) {
	l, _, _ := newLedgerFixture()

	_, err := l.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID: 99, Direction: entity.MovementEntry, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CheckAvailability
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckAvailability(t *testing.T) {
	l, _, _ := newLedgerFixture(product(1, "Café 500g", 5))

	ok, stock, err := l.CheckAvailability(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), stock)

	ok, _, err = l.CheckAvailability(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.False(t, ok, "pedir más del disponible debe reportar no disponible")

	_, _, err = l.CheckAvailability(context.Background(), 42, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
