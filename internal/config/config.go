// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StorageDriver selects where the itinerary document lives:
	// "postgres" or "sqlite".
	StorageDriver string

	// DatabaseURL is the Postgres connection string. Required for postgres.
	DatabaseURL string

	// SQLitePath is the SQLite database file. Defaults to "itinerary.db".
	SQLitePath string

	// StateKey names the persisted itinerary document. Defaults to "vacationData".
	StateKey string

	// RequireArrivalDate rejects destinations saved without an arrival date.
	RequireArrivalDate bool

	// MaxImportBytes caps the size of an import upload. Defaults to 5 MiB.
	MaxImportBytes int64
}

// Load reads the server configuration. Storage defaults to Postgres.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	return load(DriverPostgres)
}

// LoadLocal reads the CLI configuration. It is Load with storage defaulting
// to the local SQLite file, so the CLI works without a database server.
func LoadLocal() (Config, error) {
	return load(DriverSQLite)
}

func load(defaultDriver string) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", "http://localhost:5173")
	v.SetDefault("storage_driver", defaultDriver)
	v.SetDefault("sqlite_path", "itinerary.db")
	v.SetDefault("state_key", "vacationData")
	v.SetDefault("require_arrival_date", false)
	v.SetDefault("max_import_bytes", 5<<20)
	v.SetDefault("database_url", "")

	cfg := Config{
		Port:               v.GetString("port"),
		LogLevel:           v.GetString("log_level"),
		CORSOrigins:        splitCSV(v.GetString("cors_origins")),
		StorageDriver:      strings.ToLower(strings.TrimSpace(v.GetString("storage_driver"))),
		DatabaseURL:        v.GetString("database_url"),
		SQLitePath:         v.GetString("sqlite_path"),
		StateKey:           v.GetString("state_key"),
		RequireArrivalDate: v.GetBool("require_arrival_date"),
		MaxImportBytes:     v.GetInt64("max_import_bytes"),
	}

	var missing []string
	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case DriverSQLite:
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.StorageDriver)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if cfg.MaxImportBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_IMPORT_BYTES must be a positive number of bytes")
	}

	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
