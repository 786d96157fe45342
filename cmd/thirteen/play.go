package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/thirteen/internal/platform/tui"
	"github.com/vovakirdan/thirteen/internal/session"
)

var (
	flagName string
	flagMono bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Join the table",
	Long: `Connect to the game server and take a seat at the table.

Controls:
  Left/Right  - Move between cards
  Space       - Select or unselect a card
  Enter       - Play the selected cards
  P           - Pass
  S           - Start the game (lobby)
  R R         - Reset the game for everyone
  N           - Change your name
  C           - Reconnect
  PgUp/PgDn   - Scroll the log
  ?           - Toggle help
  Q/Ctrl+C    - Quit

Examples:
  thirteen play
  thirteen play --name Alice
  thirteen play --server ws://192.168.1.10:8080/api`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Join immediately with this name")
	playCmd.Flags().BoolVar(&flagMono, "mono", false, "Use a theme without colours")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal, try 'thirteen watch'")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, io.Discard)
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

	name := flagName
	if name == "" && sess.Reducer().Name() == "" {
		name = cfg.Player.Name
	}

	opts := tui.Options{
		UI:          cfg.UI,
		DialTimeout: cfg.Server.DialTimeout,
		Name:        name,
		AutoJoin:    flagName != "",
	}
	if flagMono {
		theme := tui.MonochromeTheme()
		opts.Theme = &theme
	}

	if err := tui.Run(sess, opts); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
