package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config carries every runtime setting of the service. Flags provide the
// primary surface; a YAML config file can supply defaults for anything a flag
// did not set explicitly.
type Config struct {
	ListenAddr  string
	DatabaseDSN string

	// RulesPath selects a rule-table YAML file; empty uses the embedded
	// default catalog. PolicyPath overlays the engine policy the same way.
	RulesPath  string
	PolicyPath string

	ScrapeUserAgent string
	ScrapeTimeout   time.Duration
	ScrapeAttempts  int

	Verbose bool
}

// Defaults mirrored by the flag definitions in cmd/safebuy.
const (
	DefaultListenAddr      = ":8080"
	DefaultScrapeUserAgent = "safebuy/1.0 (+compliance-scanner)"
	DefaultScrapeTimeout   = 15 * time.Second
	DefaultScrapeAttempts  = 3
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to flags and env variables.
type FileConfig struct {
	Listen string `yaml:"listen"`
	DB     struct {
		DSN string `yaml:"dsn"`
	} `yaml:"db"`
	Rules  string `yaml:"rules"`
	Policy string `yaml:"policy"`
	Scrape struct {
		UserAgent string        `yaml:"userAgent"`
		Timeout   time.Duration `yaml:"timeout"`
		Attempts  int           `yaml:"attempts"`
	} `yaml:"scrape"`
	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads a YAML config file into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return fc, fmt.Errorf("unsupported config extension %q", ext)
	}
	return fc, nil
}

// ApplyFileConfig overlays file values into cfg for any fields still at their
// defaults. Flags should already have been parsed; this lets the file supply
// defaults while preserving explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.ListenAddr == "" || cfg.ListenAddr == DefaultListenAddr) && fc.Listen != "" {
		cfg.ListenAddr = fc.Listen
	}
	if cfg.DatabaseDSN == "" && fc.DB.DSN != "" {
		cfg.DatabaseDSN = fc.DB.DSN
	}
	if cfg.RulesPath == "" && fc.Rules != "" {
		cfg.RulesPath = fc.Rules
	}
	if cfg.PolicyPath == "" && fc.Policy != "" {
		cfg.PolicyPath = fc.Policy
	}
	if (cfg.ScrapeUserAgent == "" || cfg.ScrapeUserAgent == DefaultScrapeUserAgent) && fc.Scrape.UserAgent != "" {
		cfg.ScrapeUserAgent = fc.Scrape.UserAgent
	}
	if (cfg.ScrapeTimeout == 0 || cfg.ScrapeTimeout == DefaultScrapeTimeout) && fc.Scrape.Timeout > 0 {
		cfg.ScrapeTimeout = fc.Scrape.Timeout
	}
	if (cfg.ScrapeAttempts == 0 || cfg.ScrapeAttempts == DefaultScrapeAttempts) && fc.Scrape.Attempts > 0 {
		cfg.ScrapeAttempts = fc.Scrape.Attempts
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return errors.New("config: listen address is required")
	}
	if cfg.ScrapeAttempts < 0 {
		return errors.New("config: negative scrape attempts are not allowed")
	}
	if cfg.ScrapeTimeout < 0 {
		return errors.New("config: negative scrape timeout is not allowed")
	}
	return nil
}
