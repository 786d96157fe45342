// thirteen is a terminal client for the Thirteen (Tiến lên) card game server.
//
// Usage:
//
//	thirteen play            - Join the table in an interactive TUI
//	thirteen watch           - Join headless and print the game log
//	thirteen serve           - Host the TUI over SSH
//	thirteen history         - Show recorded games
//	thirteen name [new-name] - Show or change the remembered name
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.thirteen/config.yaml)
//	--server <url>      - Game server websocket URL
//	--db <path>         - Database path (default: ~/.thirteen/thirteen.db)
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write diagnostics to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/thirteen/internal/config"
	"github.com/vovakirdan/thirteen/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagServer   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "thirteen",
	Short: "Thirteen - play Tiến lên in your terminal",
	Long: `Thirteen is a terminal client for a Thirteen (Tiến lên) card game server.
It mirrors the table, shows a running log of the game and sends your moves.

Available commands:
  play     - Join the table interactively
  watch    - Join without a UI and print the game log
  serve    - Host the client over SSH
  history  - Show recorded games and win counts
  name     - Show or change the remembered player name

Examples:
  thirteen play --name Alice
  thirteen play --server wss://cards.example.com/api
  thirteen watch --name Observer
  thirteen serve --ssh :2222
  thirteen history`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Game server websocket URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write diagnostics to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(nameCmd)
}

// loadConfig reads the config and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagServer != "" {
		cfg.Server.URL = flagServer
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, cfg.Validate()
}

// newLogger builds the diagnostics logger. Without --log-file it writes to
// fallback; pass io.Discard when the terminal belongs to the TUI.
func newLogger(cfg config.Config, fallback io.Writer) (*log.Logger, func(), error) {
	w, closer := fallback, func() {}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "thirteen",
		Level:           level,
	})
	return logger, closer, nil
}

// openStore opens the database, or returns nil and logs a warning so the
// client still works without persistence.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open database, continuing without it", "path", cfg.Storage.Path, "err", err)
		return nil
	}
	return store
}
