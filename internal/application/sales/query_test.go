package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-ventas/internal/application/sales"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake con lectura obsoleta: GetByID devuelve una foto vieja de la venta
// mientras el estado real ya cambió, como pasa cuando dos anulaciones
// concurrentes leen antes de escribir.
// ──────────────────────────────────────────────────────────────────────────────

type staleSaleRepo struct {
	memSaleRepo
	readStatus string // estado que reporta GetByID, distinto del almacenado
}

func (m *staleSaleRepo) GetByID(id int64) (*entity.Sale, error) {
	sale, err := m.memSaleRepo.GetByID(id)
	if err != nil || sale == nil {
		return sale, err
	}
	copia := *sale
	copia.Status = m.readStatus
	return &copia, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestVoid_CambiaElEstado(t *testing.T) {
	repo := &memSaleRepo{}
	require.NoError(t, repo.Create(&entity.Sale{
		InvoiceNumber: "20260901-000001",
		CustomerName:  "Ana Pérez",
		Status:        entity.SaleStatusCompleted,
		CreatedAt:     time.Now(),
	}))
	uc := sales.NewQueryUseCase(repo)

	require.NoError(t, uc.Void(context.Background(), 1))
	assert.Equal(t, entity.SaleStatusVoided, repo.sales[0].Status)
}

func TestVoid_VentaInexistente(t *testing.T) {
	uc := sales.NewQueryUseCase(&memSaleRepo{})
	err := uc.Void(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVoid_YaAnuladaRetornaConflicto(t *testing.T) {
	repo := &memSaleRepo{}
	require.NoError(t, repo.Create(&entity.Sale{
		InvoiceNumber: "20260901-000001",
		CustomerName:  "Ana Pérez",
		Status:        entity.SaleStatusCompleted,
	}))
	uc := sales.NewQueryUseCase(repo)

	require.NoError(t, uc.Void(context.Background(), 1))
	err := uc.Void(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Dos anulaciones concurrentes leen las dos "completed" antes de escribir. La
// transición guardada del repositorio es la autoridad: aunque la lectura de
// este caso de uso quedó obsoleta, la segunda anulación recibe conflicto.
func TestVoid_LecturaObsoletaNoAnulaDosVeces(t *testing.T) {
	repo := &staleSaleRepo{readStatus: entity.SaleStatusCompleted}
	require.NoError(t, repo.Create(&entity.Sale{
		InvoiceNumber: "20260901-000001",
		CustomerName:  "Ana Pérez",
		Status:        entity.SaleStatusCompleted,
	}))
	uc := sales.NewQueryUseCase(repo)

	// La otra anulación ganó entre nuestra lectura y nuestra escritura.
	repo.sales[0].Status = entity.SaleStatusVoided

	err := uc.Void(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrConflict, "la guarda de la transición debe rechazar la segunda anulación")
	assert.Equal(t, entity.SaleStatusVoided, repo.sales[0].Status)
}
