package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the requested row doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference is returned when a write points at a category
	// that no longer exists.
	ErrInvalidReference = errors.New("invalid reference")
)

const (
	pgForeignKeyViolation    = "23503"
	pgCheckViolation         = "23514"
	pgNumericValueOutOfRange = "22003"
)

// OutOfRangeError reports a value the products table rejects. Field names
// the column when Postgres identifies it.
type OutOfRangeError struct {
	Field string
	Err   error
}

func (e *OutOfRangeError) Error() string {
	if e.Field == "" {
		return "value out of range: " + e.Err.Error()
	}
	return e.Field + " out of range: " + e.Err.Error()
}

func (e *OutOfRangeError) Unwrap() error { return e.Err }

// mapError translates driver errors so callers never see pgx types.
func mapError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrInvalidReference)
		case pgCheckViolation, pgNumericValueOutOfRange:
			return fmt.Errorf("%s: %w", op, &OutOfRangeError{Field: constraintColumn(pgErr), Err: err})
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// constraintColumn reads the column from pgErr, falling back to the default
// check constraint name "<table>_<column>_check".
func constraintColumn(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name, ok := strings.CutPrefix(pgErr.ConstraintName, pgErr.TableName+"_")
	if !ok || pgErr.TableName == "" {
		return ""
	}
	return strings.TrimSuffix(name, "_check")
}
