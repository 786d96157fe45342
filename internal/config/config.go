// Package config provides YAML-based configuration loading for the client,
// the headless watcher and the SSH host.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the complete client configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Player  PlayerConfig  `yaml:"player"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// ServerConfig describes how to reach the game server.
type ServerConfig struct {
	URL          string        `yaml:"url"`
	Subprotocol  string        `yaml:"subprotocol"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	ReadLimit    int64         `yaml:"read_limit"` // bytes per frame
}

// PlayerConfig holds player defaults.
type PlayerConfig struct {
	Name string `yaml:"name"` // used when no name was remembered
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls diagnostics logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// UIConfig tunes the terminal interface.
type UIConfig struct {
	Title         string        `yaml:"title"`
	AlertTitle    string        `yaml:"alert_title"`
	FlashInterval time.Duration `yaml:"flash_interval"`
	ToastDuration time.Duration `yaml:"toast_duration"`
}

// SSHConfig configures `thirteen serve`.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"`
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("config: server.url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("config: server.url: scheme must be ws or wss, got %q", u.Scheme)
	}
	if c.Server.Subprotocol == "" {
		return errors.New("config: server.subprotocol is required")
	}
	if c.Server.DialTimeout <= 0 {
		return errors.New("config: server.dial_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return errors.New("config: server.write_timeout must be positive")
	}
	if c.Server.ReadLimit < 0 {
		return errors.New("config: server.read_limit must not be negative")
	}
	if c.Storage.Path == "" {
		return errors.New("config: storage.path is required")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if c.UI.FlashInterval <= 0 {
		return errors.New("config: ui.flash_interval must be positive")
	}
	if c.UI.ToastDuration <= 0 {
		return errors.New("config: ui.toast_duration must be positive")
	}
	if c.SSH.Address == "" {
		return errors.New("config: ssh.address is required")
	}
	return nil
}
