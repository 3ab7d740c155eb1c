package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgErrUniqueViolation código SQLSTATE de violación de constraint único.
const pgErrUniqueViolation = "23505"

// isUniqueViolation reporta si err es una violación de constraint único. Los
// repositorios lo traducen a domain.ErrDuplicate; en el caso del consecutivo de
// factura, el orquestador de ventas lo usa para re-derivar y reintentar.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
