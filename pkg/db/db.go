package db

import (
	"context"

	"github.com/smallbiznis/fmis/internal/config"
	"github.com/smallbiznis/fmis/internal/observability/logger"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"
)

var Module = fx.Module("db",
	fx.Provide(New),
)

type params struct {
	fx.In

	Lc  fx.Lifecycle
	Cfg config.Config
	Log *zap.Logger
}

// New opens the database selected by DATABASE_TYPE and installs the tracing
// and pool metrics plugins.
func New(p params) (*gorm.DB, error) {
	dialector, err := Dialect(p.Cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(p.Log, logger.DefaultGormLoggerConfig()),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	poolCfg := ConfigFrom(p.Cfg)
	if err := Configure(conn, poolCfg); err != nil {
		return nil, err
	}

	if err := conn.Use(otelgorm.NewPlugin(otelgorm.WithDBName(poolCfg.Name))); err != nil {
		return nil, err
	}
	if err := conn.Use(gormprometheus.New(gormprometheus.Config{
		DBName:          poolCfg.Name,
		RefreshInterval: 15,
	})); err != nil {
		p.Log.Warn("db metrics plugin unavailable", zap.Error(err))
	}

	p.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	p.Log.Info("database connected", zap.String("type", poolCfg.Type), zap.String("name", poolCfg.Name))
	return conn, nil
}

// Configure applies pool limits to the underlying connection pool.
func Configure(conn *gorm.DB, cfg Config) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	if cfg.MaxIdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	}
	if cfg.MaxOpenConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	return nil
}
