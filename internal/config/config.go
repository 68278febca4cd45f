package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rickypang0219/hyperliquid-fetcher/internal/archive"
	"github.com/rickypang0219/hyperliquid-fetcher/internal/progress"
	"github.com/rickypang0219/hyperliquid-fetcher/internal/sink"
)

// DateFormat is the on-the-wire date format used by the archive and the
// CLI (YYYYMMDD).
const DateFormat = "20060102"

// Config defines configuration for the fetcher CLI.
type Config struct {
	Coin             string `yaml:"coin"`
	Start            string `yaml:"start"`
	End              string `yaml:"end"`
	Output           string `yaml:"output"`
	Bucket           string `yaml:"bucket"`
	Region           string `yaml:"region"`
	RequesterPays    bool   `yaml:"requester_pays"`
	ChunkSize        int64  `yaml:"chunk_size"`
	MaxHourlyRetries int    `yaml:"max_hourly_retries"`
	MaxDailyRetries  int    `yaml:"max_daily_retries"`
	SkipHours        int    `yaml:"skip_hours"`
	Progress         bool   `yaml:"progress"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Bucket:           archive.DefaultBucket,
		Region:           archive.DefaultRegion,
		RequesterPays:    true,
		ChunkSize:        sink.DefaultBufferSize,
		MaxHourlyRetries: 3,
		MaxDailyRetries:  3,
		SkipHours:        2,
		Progress:         true,
	}
}

// yamlConfig is used for YAML unmarshaling with string chunk size and
// optional booleans (so an absent key does not override a true default).
type yamlConfig struct {
	Coin             string `yaml:"coin"`
	Start            string `yaml:"start"`
	End              string `yaml:"end"`
	Output           string `yaml:"output"`
	Bucket           string `yaml:"bucket"`
	Region           string `yaml:"region"`
	RequesterPays    *bool  `yaml:"requester_pays"`
	ChunkSize        string `yaml:"chunk_size"`
	MaxHourlyRetries int    `yaml:"max_hourly_retries"`
	MaxDailyRetries  int    `yaml:"max_daily_retries"`
	SkipHours        int    `yaml:"skip_hours"`
	Progress         *bool  `yaml:"progress"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.Coin != "" {
		cfg.Coin = yc.Coin
	}
	if yc.Start != "" {
		cfg.Start = yc.Start
	}
	if yc.End != "" {
		cfg.End = yc.End
	}
	if yc.Output != "" {
		cfg.Output = yc.Output
	}
	if yc.Bucket != "" {
		cfg.Bucket = yc.Bucket
	}
	if yc.Region != "" {
		cfg.Region = yc.Region
	}
	if yc.RequesterPays != nil {
		cfg.RequesterPays = *yc.RequesterPays
	}
	if yc.ChunkSize != "" {
		size, err := progress.ParseBytes(yc.ChunkSize)
		if err != nil {
			return Config{}, fmt.Errorf("parse chunk_size: %w", err)
		}
		cfg.ChunkSize = size
	}
	if yc.MaxHourlyRetries != 0 {
		cfg.MaxHourlyRetries = yc.MaxHourlyRetries
	}
	if yc.MaxDailyRetries != 0 {
		cfg.MaxDailyRetries = yc.MaxDailyRetries
	}
	if yc.SkipHours != 0 {
		cfg.SkipHours = yc.SkipHours
	}
	if yc.Progress != nil {
		cfg.Progress = *yc.Progress
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the FETCHER_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("FETCHER_COIN"); v != "" {
		c.Coin = v
	}
	if v := os.Getenv("FETCHER_START"); v != "" {
		c.Start = v
	}
	if v := os.Getenv("FETCHER_END"); v != "" {
		c.End = v
	}
	if v := os.Getenv("FETCHER_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("FETCHER_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("FETCHER_REGION"); v != "" {
		c.Region = v
	}
	if v := os.Getenv("FETCHER_REQUESTER_PAYS"); v != "" {
		c.RequesterPays = v == "true" || v == "1"
	}
	if v := os.Getenv("FETCHER_CHUNK_SIZE"); v != "" {
		size, err := progress.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("parse FETCHER_CHUNK_SIZE: %w", err)
		}
		c.ChunkSize = size
	}
	if v := os.Getenv("FETCHER_MAX_HOURLY_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse FETCHER_MAX_HOURLY_RETRIES: %w", err)
		}
		c.MaxHourlyRetries = n
	}
	if v := os.Getenv("FETCHER_MAX_DAILY_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse FETCHER_MAX_DAILY_RETRIES: %w", err)
		}
		c.MaxDailyRetries = n
	}
	if v := os.Getenv("FETCHER_SKIP_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse FETCHER_SKIP_HOURS: %w", err)
		}
		c.SkipHours = n
	}
	if v := os.Getenv("FETCHER_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Coin == "" {
		return errors.New("config: coin is required")
	}
	if c.Output == "" {
		return errors.New("config: output is required")
	}
	if c.Bucket == "" {
		return errors.New("config: bucket is required")
	}

	start, err := c.StartDate()
	if err != nil {
		return err
	}
	end, err := c.EndDate()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("config: end %s is before start %s", c.End, c.Start)
	}

	if c.ChunkSize <= 0 {
		return errors.New("config: chunk_size must be positive")
	}
	if c.MaxHourlyRetries <= 0 {
		return errors.New("config: max_hourly_retries must be positive")
	}
	if c.MaxDailyRetries <= 0 {
		return errors.New("config: max_daily_retries must be positive")
	}
	if c.SkipHours <= 0 {
		return errors.New("config: skip_hours must be positive")
	}
	return nil
}

// StartDate parses the start date.
func (c *Config) StartDate() (time.Time, error) {
	return parseDate("start", c.Start)
}

// EndDate parses the end date.
func (c *Config) EndDate() (time.Time, error) {
	return parseDate("end", c.End)
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("config: %s is required", field)
	}
	d, err := time.Parse(DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: parse %s %q: expected YYYYMMDD", field, value)
	}
	return d, nil
}
