package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}

// mapWriteError translates a unique_violation into a domain.Conflict; any
// other store error is an unexpected Integrity failure (spec.md §7:
// "Integrity/unexpected -> 500").
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domain.Conflict("unique constraint violated")
	}
	return domain.Integrity("store write failed", err)
}
