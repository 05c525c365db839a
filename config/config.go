// config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	IMAP     IMAPConfig     `toml:"imap"`
	Session  SessionConfig  `toml:"session"`
	Cache    CacheConfig    `toml:"cache"`
	Export   ExportConfig   `toml:"export"`
	Analysis AnalysisConfig `toml:"analysis"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// IMAPConfig is the default mail server messages are retrieved from.
type IMAPConfig struct {
	Server string `toml:"server"`
	Port   int    `toml:"port"`
}

type SessionConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	// EncryptionKey seals IMAP credentials inside the session; it must be
	// 16, 24 or 32 bytes for AES.
	EncryptionKey string   `toml:"encryption_key"`
	Timeout       Duration `toml:"timeout"`
}

type CacheConfig struct {
	// TTL bounds how long a cached verdict may be served before the
	// message is re-analyzed.
	TTL Duration `toml:"ttl"`
}

// Duration lets TOML carry durations as strings like "12h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type ExportConfig struct {
	Directory string `toml:"directory"`
}

type AnalysisConfig struct {
	Workers    int `toml:"workers"`
	BatchLimit int `toml:"batch_limit"`
}

// Default configuration values
var defaultConfig = Config{
	Server: ServerConfig{
		Host: "localhost",
		Port: 3000,
	},
	IMAP: IMAPConfig{
		Port: 993,
	},
	Session: SessionConfig{
		Timeout: Duration{12 * time.Hour},
	},
	Cache: CacheConfig{
		TTL: Duration{time.Hour},
	},
	Export: ExportConfig{
		Directory: "exports",
	},
	Analysis: AnalysisConfig{
		Workers:    5,
		BatchLimit: 50,
	},
}

// Load loads the configuration from the specified path, falling back to
// standard locations when the path is empty.
func Load(path string) (*Config, error) {
	config := defaultConfig

	if path == "" {
		configLocations := []string{
			"./config.toml",
			"~/.config/phishing-aid/config.toml",
			"/etc/phishing-aid/config.toml",
		}

		for _, loc := range configLocations {
			expanded, err := expandPath(loc)
			if err != nil {
				continue
			}
			if _, err := os.Stat(expanded); err == nil {
				path = expanded
				break
			}
		}
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &config); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validate checks if the configuration is valid
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.IMAP.Port < 1 || c.IMAP.Port > 65535 {
		return fmt.Errorf("invalid IMAP port: %d", c.IMAP.Port)
	}

	switch len(c.Session.EncryptionKey) {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("encryption key must be 16, 24 or 32 bytes, got %d", len(c.Session.EncryptionKey))
	}

	if c.Cache.TTL.Duration < time.Minute {
		return fmt.Errorf("cache TTL must be at least 1 minute")
	}

	if c.Analysis.Workers < 1 {
		return fmt.Errorf("analysis workers must be positive")
	}

	return nil
}

// expandPath expands the ~ in paths to the user's home directory
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
