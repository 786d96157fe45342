package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/thirteen.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration, matching defaults/thirteen.yaml.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:          "ws://localhost:8080/api",
			Subprotocol:  "json",
			DialTimeout:  10 * time.Second,
			WriteTimeout: 5 * time.Second,
			ReadLimit:    65536,
		},
		Storage: StorageConfig{
			Path: "~/.thirteen/thirteen.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			Title:         "Thirteen",
			AlertTitle:    "(!) Thirteen",
			FlashInterval: time.Second,
			ToastDuration: 4 * time.Second,
		},
		SSH: SSHConfig{
			Address:     ":23235",
			HostKeyPath: ".ssh/thirteen_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
