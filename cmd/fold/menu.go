package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fold/internal/platform/tui"
	"github.com/vovakirdan/fold/internal/storage"
)

// runMenu starts the interactive mode picker. After a run ends the player
// returns to the menu.
func runMenu(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard, "fold")
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	return tui.RunSession(tui.SessionDeps{
		Store:    store,
		Settings: settings,
		Logger:   logger,
		Bell:     os.Stdout,
	}, runtimeConfig(width, height, settings))
}
