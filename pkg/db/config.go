package db

import (
	"time"

	"github.com/smallbiznis/fmis/internal/config"
)

// Config holds connection pool settings.
type Config struct {
	Type            string
	Name            string
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// ConfigFrom derives pool settings from the application configuration.
func ConfigFrom(cfg config.Config) Config {
	return Config{
		Type:            cfg.DBType,
		Name:            cfg.DBName,
		MaxIdleConn:     cfg.DBMaxIdleConn,
		MaxOpenConn:     cfg.DBMaxOpenConn,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleTime) * time.Second,
	}
}
