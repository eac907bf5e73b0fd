package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation. Repositories translate it into the Conflict sentinel of the
// row being inserted, so a lost check-then-act race surfaces the same way
// the pre-check does.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
