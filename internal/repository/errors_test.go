package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgUniqueViolation})))
	assert.True(t, isDuplicateKey(&mysql.MySQLError{Number: myDuplicateEntry}))
	assert.True(t, isDuplicateKey(errors.New("UNIQUE constraint failed: nodes.parent_id, nodes.name")))

	assert.False(t, isDuplicateKey(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.False(t, isDuplicateKey(&mysql.MySQLError{Number: myNoReferencedRow}))
	assert.False(t, isDuplicateKey(errors.New("connection refused")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.True(t, isForeignKeyViolation(&mysql.MySQLError{Number: myNoReferencedRow}))
	assert.True(t, isForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))

	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isForeignKeyViolation(errors.New("timeout")))
}

func TestIsNumericOverflow(t *testing.T) {
	assert.True(t, isNumericOverflow(fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgNumericOverflow})))
	assert.True(t, isNumericOverflow(&mysql.MySQLError{Number: myOutOfRange}))
	assert.True(t, isNumericOverflow(errors.New("mssql: Arithmetic overflow error converting nvarchar to data type numeric.")))

	assert.False(t, isNumericOverflow(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isNumericOverflow(&mysql.MySQLError{Number: myDuplicateEntry}))
	assert.False(t, isNumericOverflow(errors.New("timeout")))
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(gorm.ErrRecordNotFound), ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, notFound(other))
}
