package config

import (
	"fmt"
	"time"
)

// Config is the service configuration, loaded from YAML.
type Config struct {
	Nameserver   string        `yaml:"nameserver"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
	ThreadCount  int           `yaml:"thread_count"`

	ServersFile string `yaml:"servers_file"`
	IPsFile     string `yaml:"ips_file"`
	ReportDir   string `yaml:"report_dir"`
	HistoryFile string `yaml:"history_file"`

	Interval time.Duration `yaml:"interval"`
	RunOnce  bool          `yaml:"run_once"`

	Log   Log   `yaml:"log"`
	Email Email `yaml:"email"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Email struct {
	Enabled    bool     `yaml:"enabled"`
	Host       string   `yaml:"host"`
	Port       int      `yaml:"port"`
	Username   string   `yaml:"username"`
	Password   string   `yaml:"password"`
	From       string   `yaml:"from"`
	Recipients []string `yaml:"recipients"`
}

// Validate checks the fields the engine depends on. Defaults are applied by
// the loader before validation runs.
func (c *Config) Validate() error {
	if c.ThreadCount < 1 {
		return fmt.Errorf("thread_count must be at least 1, got %d", c.ThreadCount)
	}
	if c.ServersFile == "" {
		return fmt.Errorf("servers_file is required")
	}
	if c.IPsFile == "" {
		return fmt.Errorf("ips_file is required")
	}
	if c.ReportDir == "" {
		return fmt.Errorf("report_dir is required")
	}
	if c.Interval <= 0 && !c.RunOnce {
		return fmt.Errorf("interval must be positive when run_once is false")
	}
	if c.Email.Enabled {
		if c.Email.Host == "" {
			return fmt.Errorf("email.host is required when email is enabled")
		}
		if c.Email.From == "" {
			return fmt.Errorf("email.from is required when email is enabled")
		}
		if len(c.Email.Recipients) == 0 {
			return fmt.Errorf("email.recipients must not be empty when email is enabled")
		}
	}
	return nil
}
