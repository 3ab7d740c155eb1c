package sales

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
)

const invoiceDayLayout = "20060102"

// maxDailySequence es el tope del contador de 6 dígitos. Pasarlo produciría un
// número de 7 dígitos que además rompe el orden lexicográfico del que depende
// la derivación (ORDER BY invoice_number DESC pone "-999999" por encima de
// "-1000000"), así que el secuenciador se niega y el caller pasa a Fallback.
const maxDailySequence = 999999

// Sequencer deriva el siguiente consecutivo de factura del día, con formato
// YYYYMMDD-NNNNNN (contador de 6 dígitos con ceros a la izquierda, por día).
// La unicidad real la garantiza el constraint UNIQUE de la columna: el
// orquestador reintenta la derivación si el insert choca con un duplicado.
type Sequencer struct {
	now func() time.Time
}

// NewSequencer construye el secuenciador con el reloj del sistema.
func NewSequencer() *Sequencer {
	return &Sequencer{now: time.Now}
}

// Next consulta el último número del día y deriva el siguiente. Sin ventas hoy,
// arranca en 000001. Retorna error si la consulta o el parseo fallan; el caller
// decide si usa Fallback.
func (s *Sequencer) Next(saleRepo repository.SaleRepository) (string, error) {
	prefix := s.now().Format(invoiceDayLayout)
	last, err := saleRepo.LastInvoiceNumber(prefix)
	if err != nil {
		return "", fmt.Errorf("consultar último consecutivo: %w", err)
	}
	seq := 1
	if last != "" {
		raw, ok := strings.CutPrefix(last, prefix+"-")
		if !ok {
			return "", fmt.Errorf("consecutivo con formato inesperado: %q", last)
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Errorf("consecutivo con formato inesperado: %q", last)
		}
		seq = n + 1
	}
	if seq > maxDailySequence {
		return "", fmt.Errorf("consecutivo del día %s agotado", prefix)
	}
	return fmt.Sprintf("%s-%06d", prefix, seq), nil
}

// Fallback genera un identificador único no consecutivo (F-<epoch-millis>).
// Sacrifica la estética del consecutivo a cambio de que la venta nunca se
// bloquee ni falle solo porque la numeración bonita falló.
func (s *Sequencer) Fallback() string {
	return fmt.Sprintf("F-%d", s.now().UnixMilli())
}
