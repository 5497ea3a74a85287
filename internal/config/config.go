package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the complete service configuration, read from CSI_-prefixed
// environment variables.
type Config struct {
	Server   ServerConfig   `envconfig:"SERVER"`
	Logging  LoggingConfig  `envconfig:"LOGGING"`
	Analysis AnalysisConfig `envconfig:"ANALYSIS"`
	Demo     DemoConfig     `envconfig:"DEMO"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           int           `envconfig:"PORT" default:"8080"`
	ReadTimeout    time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout   time.Duration `envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout    time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
	MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LEVEL" default:"info"`
	JSON  bool   `envconfig:"JSON" default:"false"`
}

// AnalysisConfig contains the fixed analysis parameters.
type AnalysisConfig struct {
	SLADays float64 `envconfig:"SLA_DAYS" default:"14"`
}

// DemoConfig points the /demo endpoint at local fixture files.
type DemoConfig struct {
	PersonalPath   string `envconfig:"PERSONAL_PATH" default:"testdata/personal.csv"`
	TicketsPath    string `envconfig:"TICKETS_PATH" default:"testdata/tickets.csv"`
	ComplaintsPath string `envconfig:"COMPLAINTS_PATH" default:"testdata/complaints.csv"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("CSI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if cfg.Analysis.SLADays <= 0 {
		return nil, fmt.Errorf("CSI_ANALYSIS_SLA_DAYS must be positive, got %v", cfg.Analysis.SLADays)
	}
	return &cfg, nil
}
