package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "nil", err: nil, expected: nil},
		{name: "record not found", err: fmt.Errorf("query: %w", gorm.ErrRecordNotFound), expected: ErrNotFound},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, expected: ErrConstraintViolation},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, expected: ErrConstraintViolation},
		{name: "postgres unique violation", err: &pgconn.PgError{Code: "23505"}, expected: ErrConstraintViolation},
		{name: "postgres not null violation", err: &pgconn.PgError{Code: "23502"}, expected: ErrConstraintViolation},
		{name: "postgres syntax error", err: &pgconn.PgError{Code: "42601"}},
		{name: "sqlite constraint", err: sqlite3.Error{Code: sqlite3.ErrConstraint}, expected: ErrConstraintViolation},
		{name: "sqlite busy", err: sqlite3.Error{Code: sqlite3.ErrBusy}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateError(tc.err)
			switch {
			case tc.err == nil:
				assert.NoError(t, got)
			case tc.expected == nil:
				assert.Equal(t, tc.err, got)
				assert.False(t, errors.Is(got, ErrConstraintViolation))
				assert.False(t, errors.Is(got, ErrNotFound))
			default:
				assert.ErrorIs(t, got, tc.expected)
			}
		})
	}
}
