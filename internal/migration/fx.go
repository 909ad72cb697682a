package migration

import (
	"github.com/smallbiznis/fmis/internal/clock"
	"github.com/smallbiznis/fmis/internal/config"
	"github.com/smallbiznis/fmis/internal/seed"
	"github.com/smallbiznis/fmis/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, rates *config.RatesConfigHolder, c clock.Clock, log *zap.Logger) error {
		if err := Migrate(conn, cfg.DBType); err != nil {
			return err
		}
		log.Info("schema up to date", zap.String("dialect", conn.Dialector.Name()))

		return seed.EnsureDefaults(conn, rates.Get(), c.Now())
	}),
)

// Migrate brings the schema up to date for the configured dialect.
func Migrate(conn *gorm.DB, dbType string) error {
	if dbType != db.TypePostgres {
		return AutoMigrate(conn)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}
