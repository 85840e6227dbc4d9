package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultNameserver   = "208.67.222.222:53"
	defaultQueryTimeout = 5 * time.Second
	defaultThreadCount  = 8
	defaultInterval     = 4 * time.Hour
	defaultSMTPPort     = 25
)

// Load reads, parses and validates a configuration file. Environment
// variables in the file are expanded before parsing so credentials can stay
// out of the file itself.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed for %s: %w", path, err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Nameserver == "" {
		cfg.Nameserver = defaultNameserver
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = defaultQueryTimeout
	}
	if cfg.ThreadCount == 0 {
		cfg.ThreadCount = defaultThreadCount
	}
	if cfg.Interval == 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Email.Port == 0 {
		cfg.Email.Port = defaultSMTPPort
	}
}
