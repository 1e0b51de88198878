// Package config loads and validates scraper configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tchluc/emploitogo-crawler/internal/logging"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Scraper ScraperConfig  `mapstructure:"scraper"`
	HTTP    HTTPConfig     `mapstructure:"http"`
	Storage StorageConfig  `mapstructure:"storage"`
	Logging logging.Config `mapstructure:"logging"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
}

// ScraperConfig governs pagination and fan-out behavior.
type ScraperConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	ListingURL  string `mapstructure:"listing_url"`
	UserAgent   string `mapstructure:"user_agent"`
	MaxPages    int    `mapstructure:"max_pages"`
	AllPages    bool   `mapstructure:"all_pages"`
	Workers     int    `mapstructure:"workers"`
	Incremental bool   `mapstructure:"incremental"`
}

// HTTPConfig configures the fetch retry and rate-limiting policy.
type HTTPConfig struct {
	TimeoutSeconds      int `mapstructure:"timeout_seconds"`
	MaxRetries          int `mapstructure:"max_retries"`
	RetryBackoffSeconds int `mapstructure:"retry_backoff_seconds"`
	DelaySeconds        int `mapstructure:"delay_seconds"`
}

// StorageConfig sets the persisted file locations and envelope metadata.
type StorageConfig struct {
	OutputFile     string `mapstructure:"output_file"`
	StructuredFile string `mapstructure:"structured_file"`
	Source         string `mapstructure:"source"`
	ScraperVersion string `mapstructure:"scraper_version"`
}

// MetricsConfig toggles the Prometheus endpoint for long runs.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EMPLOITOGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scraper.base_url", "https://www.emploitogo.info")
	v.SetDefault("scraper.listing_url", "https://www.emploitogo.info/emploitogo/")
	v.SetDefault("scraper.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("scraper.max_pages", 5)
	v.SetDefault("scraper.all_pages", false)
	v.SetDefault("scraper.workers", 8)
	v.SetDefault("scraper.incremental", false)
	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.retry_backoff_seconds", 5)
	v.SetDefault("http.delay_seconds", 3)
	v.SetDefault("storage.output_file", "data/jobs_data.json")
	v.SetDefault("storage.structured_file", "data/structured_info.json")
	v.SetDefault("storage.source", "emploitogo.info")
	v.SetDefault("storage.scraper_version", "1.0.0")
	v.SetDefault("logging.dir", "logs")
	v.SetDefault("logging.verbose", false)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Scraper.BaseURL == "" {
		return fmt.Errorf("scraper.base_url must be set")
	}
	if c.Scraper.ListingURL == "" {
		return fmt.Errorf("scraper.listing_url must be set")
	}
	if c.Scraper.UserAgent == "" {
		return fmt.Errorf("scraper.user_agent must be set")
	}
	if c.Scraper.MaxPages <= 0 && !c.Scraper.AllPages {
		return fmt.Errorf("scraper.max_pages must be > 0 unless scraper.all_pages is set")
	}
	if c.Scraper.Workers <= 0 {
		return fmt.Errorf("scraper.workers must be > 0")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.HTTP.MaxRetries <= 0 {
		return fmt.Errorf("http.max_retries must be > 0")
	}
	if c.HTTP.RetryBackoffSeconds < 0 {
		return fmt.Errorf("http.retry_backoff_seconds must be >= 0")
	}
	if c.HTTP.DelaySeconds < 0 {
		return fmt.Errorf("http.delay_seconds must be >= 0")
	}
	if c.Storage.OutputFile == "" {
		return fmt.Errorf("storage.output_file must be set")
	}
	if c.Storage.StructuredFile == "" {
		return fmt.Errorf("storage.structured_file must be set")
	}
	if c.Metrics.Enabled && c.Metrics.Port <= 0 {
		return fmt.Errorf("metrics.port must be > 0 when metrics are enabled")
	}
	return nil
}

// Timeout converts the per-attempt HTTP timeout into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// RetryBackoff is the fixed pause between failed attempts for one URL.
func (c Config) RetryBackoff() time.Duration {
	return time.Duration(c.HTTP.RetryBackoffSeconds) * time.Second
}

// RequestDelay is the mandatory inter-request delay, applied after every
// fetch regardless of outcome.
func (c Config) RequestDelay() time.Duration {
	return time.Duration(c.HTTP.DelaySeconds) * time.Second
}
