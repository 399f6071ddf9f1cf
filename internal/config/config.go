package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"backoffice/internal/database"
	"backoffice/internal/models"
	"backoffice/internal/seed"
	"backoffice/internal/status"
)

// DefaultPath is where the CLI looks for a config file
const DefaultPath = "configs/config.yaml"

// Config represents the application configuration
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	LogLevel string `yaml:"log_level"`
	Console  struct {
		Timezone string  `yaml:"timezone"`
		TaxRate  float64 `yaml:"tax_rate"`
		Currency string  `yaml:"currency"`
	} `yaml:"console"`
	Orders struct {
		Workflow string `yaml:"workflow"`
	} `yaml:"orders"`
	Seed struct {
		Enabled         bool  `yaml:"enabled"`
		RandomSeed      int64 `yaml:"random_seed"`
		OrdersPerOutlet int   `yaml:"orders_per_outlet"`
	} `yaml:"seed"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = 9090
	cfg.Metrics.Path = "/metrics"
	cfg.Database.Driver = database.DriverMemory
	cfg.LogLevel = "info"
	cfg.Console.Timezone = "Asia/Kolkata"
	cfg.Console.TaxRate = models.DefaultTaxRate
	cfg.Console.Currency = "₹"
	cfg.Orders.Workflow = string(status.WorkflowFull)
	cfg.Seed.Enabled = true
	cfg.Seed.RandomSeed = 1
	cfg.Seed.OrdersPerOutlet = seed.DefaultOrdersPerOutlet
	return cfg
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("BACKOFFICE_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BACKOFFICE_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("BACKOFFICE_DB_DRIVER"); ok {
		c.Database.Driver = v
	}
	if v, ok := lookup("BACKOFFICE_DB_DSN"); ok {
		c.Database.DSN = v
	}
	if v, ok := lookup("BACKOFFICE_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

// Validate rejects settings the console cannot start with
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		problems = append(problems, fmt.Sprintf("metrics.port %d out of range", c.Metrics.Port))
	}
	switch c.Database.Driver {
	case database.DriverMemory, database.DriverSQLite, database.DriverPostgres:
	default:
		problems = append(problems, fmt.Sprintf("unknown database.driver %q", c.Database.Driver))
	}
	switch status.Workflow(c.Orders.Workflow) {
	case status.WorkflowFull, status.WorkflowSimple:
	default:
		problems = append(problems, fmt.Sprintf("unknown orders.workflow %q", c.Orders.Workflow))
	}
	if c.Console.TaxRate < 0 {
		problems = append(problems, "console.tax_rate must not be negative")
	}
	if _, err := time.LoadLocation(c.Console.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("console.timezone: %v", err))
	}
	if c.Seed.OrdersPerOutlet < 0 {
		problems = append(problems, "seed.orders_per_outlet must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location resolves the console timezone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Console.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Addr is the API listen address
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Server.Port) }

// MetricsAddr is the metrics listen address
func (c *Config) MetricsAddr() string { return fmt.Sprintf(":%d", c.Metrics.Port) }
