package internal

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
	"github.com/soundfolio/creditsync/internal/database"
	"github.com/soundfolio/creditsync/internal/ingest"
)

const DefaultConfigPath = "creditsync.yaml"

// Config is the struct used to contain the
// various user config supplied by file or
// environment variables.
type Config struct {
	Ingest   ingest.Config   `yaml:"ingest" env-prefix:"CREDITSYNC_"`
	Imdb     ImdbConfig      `yaml:"imdb" env-prefix:"CREDITSYNC_"`
	Catalog  CatalogConfig   `yaml:"catalog" env-prefix:"CREDITSYNC_"`
	Ledger   database.Config `yaml:"ledger" env-prefix:"CREDITSYNC_"`
	Metrics  MetricsConfig   `yaml:"metrics" env-prefix:"CREDITSYNC_"`
	LogLevel string          `yaml:"log_level" env:"CREDITSYNC_LOG_LEVEL" env-default:"info" validate:"oneof=verbose debug info warn warning error"`
}

// ImdbConfig is a subset of the configuration that focuses
// only on how IMDb is contacted
type ImdbConfig struct {
	BaseURL   string        `yaml:"base_url" env:"IMDB_BASE_URL" env-default:"https://www.imdb.com" validate:"required,url"`
	UserAgent string        `yaml:"user_agent" env:"IMDB_USER_AGENT"`
	Timeout   time.Duration `yaml:"timeout" env:"IMDB_TIMEOUT" env-default:"10s" validate:"gt=0"`
}

type CatalogConfig struct {
	Path                string  `yaml:"path" env:"CATALOG_PATH" env-default:"src/data/projects.json" validate:"required"`
	SheetPath           string  `yaml:"sheet_path" env:"CATALOG_SHEET_PATH" env-default:"projects.csv"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" env:"CATALOG_SIMILARITY_THRESHOLD" env-default:"0.9" validate:"gte=0,lte=1"`
}

// MetricsConfig controls the Prometheus textfile written at the end
// of each run. An empty path disables metrics.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile" env:"METRICS_TEXTFILE"`
}

// LoadConfig loads the YAML configuration file at the path provided,
// applying any environment variable overrides and defaults. If the file
// does not exist and required is false, the configuration is built from
// the environment and defaults alone.
func LoadConfig(path string, required bool) (*Config, error) {
	config := &Config{}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path %s: %w", path, err)
	}

	if _, err := os.Stat(expanded); err == nil {
		if err := cleanenv.ReadConfig(expanded, config); err != nil {
			return nil, fmt.Errorf("failed to load configuration from %s: %w", expanded, err)
		}
	} else if errors.Is(err, os.ErrNotExist) && !required {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to access configuration file %s: %w", expanded, err)
	}

	if err := config.expandPaths(); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("configuration is invalid: %w", err)
	}

	return config, nil
}

// expandPaths replaces a leading '~' in every configured path
// with the users home directory.
func (config *Config) expandPaths() error {
	paths := []*string{
		&config.Ingest.CreditsPath,
		&config.Ingest.OutputPath,
		&config.Ingest.ImagesDir,
		&config.Ingest.RolesPath,
		&config.Catalog.Path,
		&config.Catalog.SheetPath,
		&config.Ledger.Path,
		&config.Metrics.TextfilePath,
	}

	for _, p := range paths {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %s: %w", *p, err)
		}

		*p = expanded
	}

	return nil
}
