package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/popkit/internal/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Launch the interactive placement playground",
	Long: `Launch an interactive playground in the terminal.

Click anywhere to present a popover anchored at the cursor, click again
to route the tap. Arrow keys move the anchor, tab cycles the requested
direction, and +/- resize the content.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	p := tea.NewProgram(
		tui.NewModel(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("playground error: %w", err)
	}
	return nil
}
