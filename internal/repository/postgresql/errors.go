package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a Postgres unique_violation and,
// when it is, leaves the error in *pgErr for constraint inspection.
func isUniqueViolation(err error, pgErr **pgconn.PgError) bool {
	return errors.As(err, pgErr) && (*pgErr).Code == "23505"
}
