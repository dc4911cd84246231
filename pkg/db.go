package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html

// IsInvalidTextRepresentationError checks if postgres failed to parse a value,
// e.g. a malformed uuid passed as an id
func IsInvalidTextRepresentationError(err error) bool {
	return hasPgErrorCode(err, "22P02")
}

func hasPgErrorCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
