// Package testutil wires the shared collaborators of service tests against an
// in-memory SQLite database.
package testutil

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/internal/config"
	"github.com/smallbiznis/fmis/internal/docnumber"
	"github.com/smallbiznis/fmis/internal/migration"
	"github.com/smallbiznis/fmis/internal/observability/metrics"
	"github.com/smallbiznis/fmis/internal/payee"
	"github.com/smallbiznis/fmis/internal/providers/pdf"
	"github.com/smallbiznis/fmis/internal/reference"
	"github.com/smallbiznis/fmis/internal/tax"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LGU is the local government unit every test environment runs as.
var LGU = config.LGUConfig{
	Name:       "Municipality of San Isidro",
	Province:   "Nueva Ecija",
	Treasurer:  "Maria Santos",
	Accountant: "Jose Reyes",
	Mayor:      "Antonio Cruz",
}

// NewDB opens a schema-migrated in-memory database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

// Env carries the pieces a test may want to poke at directly.
type Env struct {
	DB      *gorm.DB
	Clock   *clock.FakeClock
	Metrics *metrics.Metrics
	Config  config.Config
}

// NewEnv builds the database, fake clock and metrics registry for a test.
func NewEnv(t *testing.T, now time.Time) *Env {
	t.Helper()
	m, err := metrics.NewWithRegisterer(prometheus.NewRegistry())
	require.NoError(t, err)

	return &Env{
		DB:      NewDB(t),
		Clock:   clock.NewFakeClock(now),
		Metrics: m,
		Config: config.Config{
			AppName:     "fmis",
			Environment: "test",
			LGU:         LGU,
			DBType:      "sqlite",
		},
	}
}

// Options supplies the env and the reference, tax, payee, numbering and PDF
// modules that document services depend on.
func (e *Env) Options() fx.Option {
	return fx.Options(
		fx.Supply(e.DB, zap.NewNop(), e.Metrics, e.Config),
		fx.Supply(config.NewStaticRatesConfigHolder(config.DefaultRatesConfig())),
		fx.Provide(func() (*snowflake.Node, error) { return snowflake.NewNode(1) }),
		fx.Provide(func() clock.Clock { return e.Clock }),
		docnumber.Module,
		tax.Module,
		reference.Module,
		payee.Module,
		pdf.Module,
	)
}
