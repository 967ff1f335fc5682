// Package config handles configuration management for metro-pipeline.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// FK validation policies for the Silver conformance layer.
const (
	// FKAdvisory records foreign-key existence as booleans without
	// excluding records from the conformed layer.
	FKAdvisory = "advisory"

	// FKEnforce excludes records whose foreign keys do not resolve
	// against the already-conformed dimensions.
	FKEnforce = "enforce"
)

// Materialization strategies for warehouse tables.
const (
	// StrategyFullRefresh truncates and reloads the target table.
	StrategyFullRefresh = "full-refresh"

	// StrategyMerge upserts on the table's natural key.
	StrategyMerge = "merge"
)

// Config holds all configuration for metro-pipeline.
type Config struct {
	// Connection is the PostgreSQL connection string for the warehouse.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Pipeline holds configuration for the run subcommand.
	Pipeline PipelineConfig `mapstructure:"pipeline"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`
}

// PipelineConfig holds configuration for pipeline execution.
type PipelineConfig struct {
	// FKPolicy controls whether foreign-key existence failures exclude
	// records from the Silver layer ("enforce") or are recorded as
	// advisory booleans only ("advisory").
	FKPolicy string `mapstructure:"fk_policy"`

	// Strategy is the default table materialization strategy:
	// "full-refresh" or "merge".
	Strategy string `mapstructure:"strategy"`

	// HealthyPct is the minimum overall valid percentage for a run to
	// be reported as healthy.
	HealthyPct float64 `mapstructure:"healthy_pct"`

	// DegradedPct is the minimum overall valid percentage for a run to
	// be reported as degraded rather than needing attention.
	DegradedPct float64 `mapstructure:"degraded_pct"`

	// DateDimStartYear is the first year of the generated date dimension.
	DateDimStartYear int `mapstructure:"date_dim_start_year"`

	// DateDimYearsAhead extends the date dimension this many years
	// beyond the current year.
	DateDimYearsAhead int `mapstructure:"date_dim_years_ahead"`

	// OutlierQuantity is the line quantity above which a transaction
	// line is flagged as an outlier.
	OutlierQuantity int `mapstructure:"outlier_quantity"`
}

// SeedConfig holds configuration for sample data generation.
type SeedConfig struct {
	// Transactions is the number of transaction headers to generate.
	Transactions int `mapstructure:"transactions"`

	// RandomSeed makes generated data reproducible when non-zero.
	RandomSeed uint64 `mapstructure:"random_seed"`

	// DirtyPct is the approximate percentage of rows receiving an
	// injected data defect.
	DirtyPct int `mapstructure:"dirty_pct"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Pipeline: PipelineConfig{
			FKPolicy:          FKAdvisory,
			Strategy:          StrategyFullRefresh,
			HealthyPct:        95,
			DegradedPct:       80,
			DateDimStartYear:  2020,
			DateDimYearsAhead: 10,
			OutlierQuantity:   100,
		},
		Seed: SeedConfig{
			Transactions: 5000,
			RandomSeed:   0,
			DirtyPct:     8,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./metro-pipeline.yaml
// 3. ~/.config/metro-pipeline/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("metro-pipeline")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "metro-pipeline"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Validate checks settings required by every subcommand that touches
// the warehouse.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required (--connection or config file)")
	}
	return nil
}

// ValidatePipeline checks settings for the run subcommand.
func (c *Config) ValidatePipeline() error {
	if err := c.Validate(); err != nil {
		return err
	}

	switch c.Pipeline.FKPolicy {
	case FKAdvisory, FKEnforce:
	default:
		return fmt.Errorf("invalid fk_policy %q: must be %q or %q",
			c.Pipeline.FKPolicy, FKAdvisory, FKEnforce)
	}

	switch c.Pipeline.Strategy {
	case StrategyFullRefresh, StrategyMerge:
	default:
		return fmt.Errorf("invalid strategy %q: must be %q or %q",
			c.Pipeline.Strategy, StrategyFullRefresh, StrategyMerge)
	}

	if c.Pipeline.HealthyPct < 0 || c.Pipeline.HealthyPct > 100 {
		return fmt.Errorf("healthy_pct must be between 0 and 100, got %v",
			c.Pipeline.HealthyPct)
	}
	if c.Pipeline.DegradedPct < 0 || c.Pipeline.DegradedPct > c.Pipeline.HealthyPct {
		return fmt.Errorf("degraded_pct must be between 0 and healthy_pct, got %v",
			c.Pipeline.DegradedPct)
	}

	if c.Pipeline.DateDimStartYear < 1970 {
		return fmt.Errorf("date_dim_start_year must be 1970 or later, got %d",
			c.Pipeline.DateDimStartYear)
	}
	if c.Pipeline.DateDimYearsAhead < 0 {
		return fmt.Errorf("date_dim_years_ahead must be non-negative, got %d",
			c.Pipeline.DateDimYearsAhead)
	}

	if c.Pipeline.OutlierQuantity <= 0 {
		return fmt.Errorf("outlier_quantity must be positive, got %d",
			c.Pipeline.OutlierQuantity)
	}

	return nil
}

// ValidateSeed checks settings for the seed subcommand.
func (c *Config) ValidateSeed() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.Seed.Transactions <= 0 {
		return fmt.Errorf("seed transactions must be positive, got %d",
			c.Seed.Transactions)
	}
	if c.Seed.DirtyPct < 0 || c.Seed.DirtyPct > 100 {
		return fmt.Errorf("seed dirty_pct must be between 0 and 100, got %d",
			c.Seed.DirtyPct)
	}

	return nil
}
