package snapshot_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-ventas/internal/domain/snapshot"
)

// La foto codificada preserva cliente, líneas y versión de esquema.
func TestSnapshot_EncodeDecode(t *testing.T) {
	snap := snapshot.New(
		snapshot.Customer{Name: "Ana Pérez", Document: "12345678", Type: "natural"},
		[]snapshot.Line{
			{
				ProductID: 7,
				Name:      "Café 500g",
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("2500.00"),
				Subtotal:  decimal.RequireFromString("5000.00"),
			},
		},
	)

	encoded, err := snap.Encode()
	require.NoError(t, err)

	decoded, err := snapshot.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, snapshot.SchemaVersion, decoded.Version)
	assert.Equal(t, "Ana Pérez", decoded.Customer.Name)
	require.Len(t, decoded.Lines, 1)
	assert.Equal(t, int64(7), decoded.Lines[0].ProductID)
	assert.True(t, decoded.Lines[0].UnitPrice.Equal(decimal.RequireFromString("2500.00")))
	assert.True(t, decoded.Lines[0].Subtotal.Equal(decimal.RequireFromString("5000.00")))
}

// Decode rechaza versiones de esquema desconocidas en lugar de interpretar mal
// datos viejos o futuros.
func TestSnapshot_VersionDesconocidaRechazada(t *testing.T) {
	_, err := snapshot.Decode(`{"version":99,"customer":{"name":"Ana"},"lines":[]}`)
	assert.Error(t, err)

	_, err = snapshot.Decode(`{"customer":{"name":"Ana"},"lines":[]}`)
	assert.Error(t, err, "una foto sin versión (version 0) tampoco es válida")
}

// JSON corrupto retorna error de parseo.
func TestSnapshot_JSONCorrupto(t *testing.T) {
	_, err := snapshot.Decode(`{"version":1,`)
	assert.Error(t, err)
}
