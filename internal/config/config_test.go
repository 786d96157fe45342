package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("embedded YAML differs from DefaultConfig (-code +yaml):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadCustomPathOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "server:\n  url: wss://cards.example.com/api\nui:\n  flash_interval: 250ms\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.URL != "wss://cards.example.com/api" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.UI.FlashInterval != 250*time.Millisecond {
		t.Errorf("UI.FlashInterval = %v, want 250ms", cfg.UI.FlashInterval)
	}
	// untouched keys keep their defaults
	if cfg.Server.Subprotocol != "json" {
		t.Errorf("Server.Subprotocol = %q, want json", cfg.Server.Subprotocol)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() succeeded for a missing file")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, work)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}

	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	local := "player:\n  name: local\n"
	if err := os.WriteFile(filepath.Join(work, "configs", "thirteen.yaml"), []byte(local), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Player.Name != "local" {
		t.Errorf("Player.Name = %q, want local", cfg.Player.Name)
	}

	if err := os.MkdirAll(filepath.Join(home, ".thirteen"), 0o755); err != nil {
		t.Fatal(err)
	}
	user := "player:\n  name: user\n"
	if err := os.WriteFile(filepath.Join(home, ".thirteen", "config.yaml"), []byte(user), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Player.Name != "user" {
		t.Errorf("Player.Name = %q, want user", cfg.Player.Name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"http scheme", func(c *Config) { c.Server.URL = "http://x" }, "scheme"},
		{"no subprotocol", func(c *Config) { c.Server.Subprotocol = "" }, "subprotocol"},
		{"zero dial timeout", func(c *Config) { c.Server.DialTimeout = 0 }, "dial_timeout"},
		{"negative read limit", func(c *Config) { c.Server.ReadLimit = -1 }, "read_limit"},
		{"no db path", func(c *Config) { c.Storage.Path = "" }, "storage.path"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"zero flash", func(c *Config) { c.UI.FlashInterval = 0 }, "flash_interval"},
		{"no ssh address", func(c *Config) { c.SSH.Address = "" }, "ssh.address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.errSub)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test,
// matching testing.T.Chdir on toolchains that predate it.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
