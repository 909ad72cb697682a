package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	TimeZone    string

	CORSAllowedOrigins []string

	OTLPEndpoint string

	LGU LGUConfig

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBPath            string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	RatesConfigPath string
}

// LGUConfig identifies the local government unit printed on vouchers and
// certificates.
type LGUConfig struct {
	Name       string
	Province   string
	Treasurer  string
	Accountant string
	Mayor      string
}

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewRatesConfigHolder),
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:            getenv("APP_SERVICE", "fmis"),
		AppVersion:         getenv("APP_VERSION", "0.1.0"),
		Environment:        getenv("ENVIRONMENT", "development"),
		HTTPAddr:           getenv("HTTP_ADDR", ":8080"),
		TimeZone:           getenv("TZ_NAME", "Asia/Manila"),
		CORSAllowedOrigins: parseList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		OTLPEndpoint:       getenv("OTLP_ENDPOINT", "localhost:4317"),
		LGU: LGUConfig{
			Name:       getenv("LGU_NAME", "Municipality"),
			Province:   getenv("LGU_PROVINCE", ""),
			Treasurer:  getenv("LGU_TREASURER", ""),
			Accountant: getenv("LGU_ACCOUNTANT", ""),
			Mayor:      getenv("LGU_MAYOR", ""),
		},
		DBType:            strings.ToLower(getenv("DATABASE_TYPE", "postgres")),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "fmis"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBPath:            getenv("DATABASE_PATH", "fmis.db"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),
		RatesConfigPath:   strings.TrimSpace(getenv("RATES_CONFIG_PATH", "")),
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
