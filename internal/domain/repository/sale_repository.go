package repository

import "github.com/tu-usuario/pos-ventas/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	// Create inserta la venta y asigna sale.ID. La columna invoice_number tiene
	// constraint UNIQUE; una colisión de consecutivo retorna domain.ErrDuplicate.
	// Un Create fallido deja la transacción del caller usable: la implementación
	// contiene el error dentro de un savepoint, de modo que el caller puede
	// re-derivar el número y reintentar en la misma transacción.
	Create(sale *entity.Sale) error
	GetByID(id int64) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	// LastInvoiceNumber devuelve el número de factura más reciente que empieza
	// con el prefijo dado ("" si no existe ninguno).
	LastInvoiceNumber(prefix string) (string, error)
	// UpdateStatus hace la transición de estado solo si la venta sigue en el
	// estado de origen; si otro proceso ya la movió, retorna domain.ErrConflict.
	UpdateStatus(id int64, from, to string) error
}
