package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config carries process-level settings, populated from the environment.
type Config struct {
	Environment string
	Addr        string
	Database    Database
}

type Database struct {
	Driver string
	DSN    string
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Environment: getenv("ERP_ENV", "development"),
		Addr:        getenv("ERP_ADDR", ":8080"),
		Database: Database{
			Driver: strings.ToLower(getenv("ERP_DB_DRIVER", "sqlite")),
			DSN:    getenv("ERP_DB_DSN", "erp.db"),
		},
	}
	return cfg
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

var Module = fx.Module("config",
	fx.Provide(Load),
)
