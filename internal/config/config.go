package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	Sites         []string            `yaml:"sites"`
	SkipDomains   []string            `yaml:"skip_domains"`
	HTTP          HttpConfig          `yaml:"http"`
	Pause         PauseConfig         `yaml:"pause"`
	Robots        RobotsConfig        `yaml:"robots"`
	RulesFile     string              `yaml:"rules_file"`
	Output        OutputConfig        `yaml:"output"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type HttpConfig struct {
	UserAgent              string `yaml:"user_agent"`
	TotalTimeoutMS         int    `yaml:"total_timeout_ms"`
	AcceptLanguage         string `yaml:"accept_language"`
	MaxIdleConnections     int    `yaml:"max_idle_connections"`
	IdleConnectionTimeoutS int    `yaml:"idle_connection_timeout_s"`
}

type PauseConfig struct {
	DelayMS int `yaml:"delay_ms"`
}

type RobotsConfig struct {
	Respect       bool `yaml:"respect"`
	CacheTTLHours int  `yaml:"cache_ttl_hours"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

type StorageConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Driver           string `yaml:"driver"`
	DSN              string `yaml:"dsn"`
	CommandTimeoutMS int    `yaml:"command_timeout_ms"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

// Validation
func (c *Config) Validate() error {
	if len(c.Sites) == 0 {
		return fmt.Errorf("sites must not be empty")
	}
	for _, site := range c.Sites {
		u, err := url.Parse(site)
		if err != nil {
			return fmt.Errorf("invalid site %q: %w", site, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("site %q must be an http(s) URL", site)
		}
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required")
	}
	if c.HTTP.TotalTimeoutMS <= 0 {
		return fmt.Errorf("http.total_timeout_ms must be > 0")
	}
	if c.HTTP.MaxIdleConnections < 0 {
		return fmt.Errorf("http.max_idle_connections must be >= 0")
	}
	if c.Pause.DelayMS < 0 {
		return fmt.Errorf("pause.delay_ms must be >= 0")
	}
	if c.Robots.Respect && c.Robots.CacheTTLHours <= 0 {
		return fmt.Errorf("robots.cache_ttl_hours must be > 0 when robots.respect is true")
	}
	if c.Output.Prefix == "" {
		return fmt.Errorf("output.prefix is required")
	}
	if c.Storage.Enabled {
		if c.Storage.Driver != "mssql" {
			return fmt.Errorf("storage.driver must be 'mssql'")
		}
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required when storage.enabled is true")
		}
		if c.Storage.CommandTimeoutMS <= 0 {
			return fmt.Errorf("storage.command_timeout_ms must be > 0")
		}
	}
	return nil
}

// IsSkipped сообщает, попадает ли сайт под список пропускаемых доменов
func (c *Config) IsSkipped(site string) bool {
	for _, domain := range c.SkipDomains {
		if domain != "" && strings.Contains(site, domain) {
			return true
		}
	}
	return false
}

// Getters
func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetIdleConnectionTimeout() time.Duration {
	return time.Duration(c.HTTP.IdleConnectionTimeoutS) * time.Second
}

func (c *Config) GetPauseDelay() time.Duration {
	return time.Duration(c.Pause.DelayMS) * time.Millisecond
}

func (c *Config) GetRobotsCacheTTL() time.Duration {
	return time.Duration(c.Robots.CacheTTLHours) * time.Hour
}

func (c *Config) GetCommandTimeout() time.Duration {
	return time.Duration(c.Storage.CommandTimeoutMS) * time.Millisecond
}
