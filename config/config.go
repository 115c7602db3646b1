// Package config reads the fsim settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/etnz/fundsim/date"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Sources of fund histories.
const (
	SourceYahoo = "yahoo"
	SourceEODHD = "eodhd"
)

// Config holds the fsim settings. Command line flags override them.
type Config struct {
	DataDir     string      // fund history files, "Data" by default
	DBPath      string      // SQLite cache, none by default
	Source      string      // SourceYahoo or SourceEODHD
	EODHDKey    string
	CacheDir    string      // HTTP cache of the EODHD client
	CachePeriod date.Period // cached responses expire when the period changes
	Workers     int         // concurrent fetches and computations
	Currency    string      // currency of the projected amounts
	LogLevel    string      // debug, info, warn, error
	LogFormat   string      // console or json
}

// Load reads the configuration from the environment, after loading the
// given .env files, or ".env" when none is given. Missing files are ignored
// and variables already set are never overridden.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	workers, err := getEnvAsInt("FUNDSIM_WORKERS", runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	period, err := date.ParsePeriod(getEnv("FUNDSIM_CACHE_PERIOD", "daily"))
	if err != nil {
		return nil, fmt.Errorf("FUNDSIM_CACHE_PERIOD: %w", err)
	}
	cfg := &Config{
		DataDir:     getEnv("FUNDSIM_DATA", "Data"),
		DBPath:      getEnv("FUNDSIM_DB", ""),
		Source:      strings.ToLower(getEnv("FUNDSIM_SOURCE", SourceYahoo)),
		EODHDKey:    getEnv("FUNDSIM_EODHD_API_KEY", ""),
		CacheDir:    getEnv("FUNDSIM_CACHE", defaultCacheDir()),
		CachePeriod: period,
		Workers:     workers,
		Currency:    strings.ToUpper(getEnv("FUNDSIM_CURRENCY", "MXN")),
		LogLevel:    strings.ToLower(getEnv("FUNDSIM_LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("FUNDSIM_LOG_FORMAT", "console")),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings are consistent.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceYahoo:
	case SourceEODHD:
		if c.EODHDKey == "" {
			return fmt.Errorf("FUNDSIM_EODHD_API_KEY is required with the %s source", SourceEODHD)
		}
	default:
		return fmt.Errorf("unknown source %q, want %s or %s", c.Source, SourceYahoo, SourceEODHD)
	}
	if c.Workers < 1 {
		return fmt.Errorf("FUNDSIM_WORKERS must be at least 1, got %d", c.Workers)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q, want console or json", c.LogFormat)
	}
	return nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		log.Debug().Err(err).Msg("no user cache directory, using the temporary directory")
		dir = os.TempDir()
	}
	return filepath.Join(dir, "fundsim")
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
