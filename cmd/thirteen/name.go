package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/thirteen/internal/storage"
)

var (
	flagForget bool
	flagScope  string
)

var nameCmd = &cobra.Command{
	Use:   "name [new-name]",
	Short: "Show or change the remembered player name",
	Long: `Without arguments, print the name used to join the next game.
With an argument, remember that name instead.

Examples:
  thirteen name
  thirteen name Alice
  thirteen name --forget
  thirteen name --scope bob    # the name remembered for SSH user bob`,
	Args: cobra.MaximumNArgs(1),
	RunE: runName,
}

func init() {
	nameCmd.Flags().BoolVar(&flagForget, "forget", false, "Forget the remembered name")
	nameCmd.Flags().StringVar(&flagScope, "scope", "", "Name slot, e.g. an SSH user")
}

func runName(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	names := store.Names(flagScope)

	switch {
	case flagForget:
		if err := names.ForgetLastName(); err != nil {
			return err
		}
		fmt.Println("Forgot the remembered name.")
		return nil

	case len(args) == 1:
		name := strings.TrimSpace(args[0])
		if name == "" {
			return errors.New("name must not be blank")
		}
		if err := names.SetLastName(name); err != nil {
			return err
		}
		fmt.Printf("Will join as %q.\n", name)
		return nil
	}

	name, err := names.LastName()
	if err != nil {
		return err
	}
	if name == "" {
		name = cfg.Player.Name
	}
	if name == "" {
		fmt.Println("No name remembered yet.")
		return nil
	}
	fmt.Println(name)
	return nil
}
