package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/thirteen/internal/client"
	"github.com/vovakirdan/thirteen/internal/session"
	"github.com/vovakirdan/thirteen/internal/state"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Join headless and print the game log",
	Long: `Join the table without a UI and print every log entry as it happens.
The command exits when the connection closes or on Ctrl+C.

Examples:
  thirteen watch --name Observer
  thirteen watch --server ws://localhost:8080/api | tee game.log`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagName, "name", "", "Name to join with (default: remembered name)")
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	var stores session.Stores
	if store := openStore(cfg, logger); store != nil {
		defer store.Close()
		stores.Names = store.Names("")
		stores.Results = store
	}

	sess := session.NewFromConfig(cfg.Server, stores, logger)
	defer sess.Close()

	name := strings.TrimSpace(flagName)
	if name == "" {
		name = sess.Reducer().Name()
	}
	if name == "" {
		name = cfg.Player.Name
	}
	if name == "" {
		return errors.New("no name to join with, pass --name")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, cfg.Server.DialTimeout)
	err = sess.Join(dialCtx, name)
	cancel()
	if err != nil {
		logger.Error("could not connect", "url", cfg.Server.URL, "err", err)
	}

	runCtx, finish := context.WithCancel(ctx)
	defer finish()

	p := &logPrinter{}
	err = sess.Run(runCtx, func(sig client.Signal) {
		p.print(sess.Reducer().Log())
		if _, closed := sig.(client.Closed); closed {
			finish()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// logPrinter writes log entries it has not printed yet.
type logPrinter struct {
	gen  int
	seen int
}

func (p *logPrinter) print(l state.LogView) {
	if l.Generation() != p.gen {
		p.gen = l.Generation()
		p.seen = 0
		fmt.Println("--- new game ---")
	}
	for _, e := range l.Since(p.seen) {
		fmt.Printf("%s  %-7s  %s\n", e.Timestamp.Format("15:04:05"), e.Severity, e.String())
	}
	p.seen = l.Len()
}
