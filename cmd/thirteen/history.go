package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/thirteen/internal/platform/tui"
	"github.com/vovakirdan/thirteen/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded games",
	Long: `Display the games recorded by this client and who won them most often.

In a terminal an interactive screen opens; when the output is piped, or
with --plain, a text table is printed instead.

Examples:
  thirteen history
  thirteen history --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to print in plain mode")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print text instead of opening the interactive screen")
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}

	return printHistory(store, flagLimit)
}

func printHistory(store *storage.Store, limit int) error {
	results, err := store.RecentResults(limit)
	if err != nil {
		return err
	}

	fmt.Println("Recent games")
	fmt.Println()
	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'thirteen play' and finish a game to record one!")
		return nil
	}

	fmt.Printf("  %-16s  %-16s  %-12s  %s\n", "Date", "Winner", "You", "Places")
	fmt.Printf("  %-16s  %-16s  %-12s  %s\n", "----", "------", "---", "------")
	for _, r := range results {
		fmt.Printf("  %-16s  %-16s  %-12s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Winner,
			r.LocalName,
			strings.Join(r.Places, ", "),
		)
	}

	wins, err := store.WinCounts(5)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Most wins")
	for i, w := range wins {
		fmt.Printf("  %d. %s (%d)\n", i+1, w.Name, w.Wins)
	}
	return nil
}
