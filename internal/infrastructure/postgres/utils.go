package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgCode devuelve el SQLSTATE de un error de PostgreSQL o "" si no lo es.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pgCode(err) == "23505" }

// isForeignKeyViolation cubre tanto la fila referida inexistente como el borrado de una fila referida.
func isForeignKeyViolation(err error) bool { return pgCode(err) == "23503" }

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// nullableInt64 guarda 0 como NULL (referencias opcionales).
func nullableInt64(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func int64OrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
