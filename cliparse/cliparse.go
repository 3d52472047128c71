package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

// Storage backend constants
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	IPHashSalt   string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("livepoll", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sqlite or postgres backends)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Storage backend (memory, sqlite, or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4117 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = StoreMemory
		}
	}
	switch cfg.DatabaseType {
	case StoreMemory, StoreSQLite, StorePostgres:
	default:
		return Config{}, errors.New("database type must be memory, sqlite, or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType != StoreMemory {
		return Config{}, errors.New("database URL required for " + cfg.DatabaseType + " (use -d or DATABASE_URL env)")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}

	return cfg, nil
}
