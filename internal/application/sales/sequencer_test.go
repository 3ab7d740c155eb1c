package sales

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// seqSaleRepo implementa repository.SaleRepository solo para LastInvoiceNumber.
type seqSaleRepo struct {
	last string
	err  error
}

func (r *seqSaleRepo) Create(*entity.Sale) error                      { return nil }
func (r *seqSaleRepo) GetByID(int64) (*entity.Sale, error)            { return nil, nil }
func (r *seqSaleRepo) List(int, int) ([]*entity.Sale, error)          { return nil, nil }
func (r *seqSaleRepo) UpdateStatus(int64, string, string) error       { return nil }
func (r *seqSaleRepo) LastInvoiceNumber(prefix string) (string, error) {
	return r.last, r.err
}

// fixedSequencer construye un Sequencer congelado en 2026-09-01 10:30 local.
func fixedSequencer() *Sequencer {
	return &Sequencer{now: func() time.Time {
		return time.Date(2026, 9, 1, 10, 30, 0, 0, time.Local)
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Next
// ──────────────────────────────────────────────────────────────────────────────

// Primera venta del día: sin filas previas el contador arranca en 000001.
func TestSequencer_PrimeraVentaDelDia(t *testing.T) {
	s := fixedSequencer()
	number, err := s.Next(&seqSaleRepo{last: ""})
	require.NoError(t, err)
	assert.Equal(t, "20260901-000001", number)
}

// Con ventas previas, el consecutivo se deriva del último número del día.
func TestSequencer_IncrementaUltimoConsecutivo(t *testing.T) {
	s := fixedSequencer()
	number, err := s.Next(&seqSaleRepo{last: "20260901-000041"})
	require.NoError(t, err)
	assert.Equal(t, "20260901-000042", number)
}

// El contador conserva los ceros a la izquierda (ancho fijo de 6 dígitos).
func TestSequencer_PaddingDeSeisDigitos(t *testing.T) {
	s := fixedSequencer()
	number, err := s.Next(&seqSaleRepo{last: "20260901-000009"})
	require.NoError(t, err)
	assert.Equal(t, "20260901-000010", number)
}

// Un último número con formato corrupto retorna error, no un consecutivo basura.
func TestSequencer_FormatoInesperadoRetornaError(t *testing.T) {
	s := fixedSequencer()
	_, err := s.Next(&seqSaleRepo{last: "20260901-XYZ"})
	assert.Error(t, err, "un consecutivo no numérico debe rechazarse")
}

// Con el contador del día en 999999 no hay siguiente: un 1000000 tendría 7
// dígitos y quedaría por debajo de 999999 en el orden lexicográfico, dejando
// la derivación clavada. Next retorna error y el caller pasa al respaldo.
func TestSequencer_ContadorDelDiaAgotado(t *testing.T) {
	s := fixedSequencer()
	_, err := s.Next(&seqSaleRepo{last: "20260901-999999"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agotado")
}

// Si la consulta del último número falla, Next propaga el error; el caller
// decide si usa el identificador de respaldo.
func TestSequencer_ErrorDeConsultaSePropaga(t *testing.T) {
	s := fixedSequencer()
	_, err := s.Next(&seqSaleRepo{err: errors.New("conexión perdida")})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Fallback
// ──────────────────────────────────────────────────────────────────────────────

// El identificador de respaldo es F-<epoch-millis> del reloj del secuenciador.
func TestSequencer_FallbackEsEpochMillis(t *testing.T) {
	fixed := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	s := &Sequencer{now: func() time.Time { return fixed }}

	assert.Equal(t, "F-1788258600000", s.Fallback())
}
