package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"writeassist/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the document in the terminal editor",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	logPath := a.cfg.Log.File
	if logPath == "" {
		logPath = "writeassist.log"
	}
	f, err := tea.LogToFile(logPath, "writeassist")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	m := tui.New(ctx, a.newSession())
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
