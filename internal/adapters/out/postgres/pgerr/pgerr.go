// Package pgerr recognises PostgreSQL error conditions independently of the
// driver the connection was opened with.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	// UniqueViolation is the SQLSTATE of unique_violation.
	UniqueViolation = "23505"
	// NumericValueOutOfRange is raised when integer or numeric arithmetic overflows its column type.
	NumericValueOutOfRange = "22003"
)

// IsUniqueViolation reports whether err is a unique violation of constraint.
// An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	code, name, ok := codeOf(err)
	return ok && code == UniqueViolation && (constraint == "" || name == constraint)
}

// IsNumericOutOfRange reports whether err is an integer or numeric overflow.
func IsNumericOutOfRange(err error) bool {
	code, _, ok := codeOf(err)
	return ok && code == NumericValueOutOfRange
}

func codeOf(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}

	return "", "", false
}
