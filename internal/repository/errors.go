package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by lookups that match no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName is returned when a sibling (or root) already has the name
	ErrDuplicateName = errors.New("a node with this name already exists under the specified parent")
	// ErrParentNotFound is returned when a node references a missing parent
	ErrParentNotFound = errors.New("parent node not found")
	// ErrNodeNotFound is returned when a property references a missing node
	ErrNodeNotFound = errors.New("node not found")
	// ErrValueOutOfRange is returned when a property value does not fit the value column
	ErrValueOutOfRange = errors.New("property value out of range")
)

// Postgres SQLSTATE and MySQL error numbers for constraint violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNumericOverflow     = "22003"
	myDuplicateEntry      = 1062
	myOutOfRange          = 1264
	myNoReferencedRow     = 1452
)

// isDuplicateKey reports a unique constraint violation. Drivers translate most
// of these to gorm.ErrDuplicatedKey; the raw driver errors are checked for the rest.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == myDuplicateEntry
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

// isForeignKeyViolation reports a referential integrity violation
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == myNoReferencedRow
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// isNumericOverflow reports a value that exceeds the precision of its column
func isNumericOverflow(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgNumericOverflow
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == myOutOfRange
	}

	// MSSQL error 8115
	return strings.Contains(strings.ToLower(err.Error()), "arithmetic overflow")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
