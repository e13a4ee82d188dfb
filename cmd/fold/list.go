package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fold/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered puzzle mode.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	modes := registry.List()
	out := cmd.OutOrStdout()

	if len(modes) == 0 {
		fmt.Fprintln(out, "No modes available.")
		return
	}

	fmt.Fprintln(out, "Available modes:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, m := range modes {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, m.ID, m.Description)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'fold play <id>' to play a mode.")
}
