package session

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/thirteen/internal/client"
	"github.com/vovakirdan/thirteen/internal/config"
	"github.com/vovakirdan/thirteen/internal/state"
)

// Stores are the optional persistence backends of a session.
type Stores struct {
	Names   NameStore
	Results ResultStore
}

// NewFromConfig wires a fresh reducer and websocket client for cfg.
func NewFromConfig(cfg config.ServerConfig, stores Stores, logger *log.Logger) *Session {
	ropts := []state.Option{state.WithLogger(logger)}
	copts := []client.Option{client.WithLogger(logger)}
	sopts := []Option{WithLogger(logger)}

	if stores.Names != nil {
		ropts = append(ropts, state.WithRememberedName(stores.Names))
		sopts = append(sopts, WithNames(stores.Names))
	}
	if stores.Results != nil {
		sopts = append(sopts, WithResults(stores.Results))
	}
	if cfg.Subprotocol != "" {
		copts = append(copts, client.WithSubprotocol(cfg.Subprotocol))
	}
	if cfg.ReadLimit > 0 {
		copts = append(copts, client.WithReadLimit(cfg.ReadLimit))
	}
	if cfg.WriteTimeout > 0 {
		sopts = append(sopts, WithWriteTimeout(cfg.WriteTimeout))
	}

	return New(state.New(ropts...), client.New(copts...), cfg.URL, sopts...)
}
