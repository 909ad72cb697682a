package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smallbiznis/fmis/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm", err: fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "pgconn", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "pgconn other code", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "sqlite", err: errors.New("UNIQUE constraint failed: tax_codes.code"), want: true},
		{name: "mysql", err: errors.New("Error 1062: Duplicate entry"), want: true},
		{name: "other", err: errors.New("connection refused"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateKeyErr(tc.err))
		})
	}
}

func TestDialect(t *testing.T) {
	for _, typ := range []string{"postgres", "mysql", "sqlite", " SQLite "} {
		d, err := Dialect(config.Config{DBType: typ})
		require.NoError(t, err, typ)
		assert.NotNil(t, d)
	}

	_, err := Dialect(config.Config{DBType: "oracle"})
	assert.Error(t, err)
}

func TestConfigure(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Configure(conn, ConfigFrom(config.Config{DBMaxOpenConn: 3, DBMaxIdleConn: 1, DBConnMaxLifetime: 10})))

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	assert.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)
}
