package main

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskflow/internal/auth"
	"taskflow/internal/ui"
)

// uiCmd implements 'taskflow ui', also run when no subcommand is given.
func uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDashboard()
		},
	}
}

// runDashboard owns the terminal, so diagnostics go to the log file.
func runDashboard() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "taskflow")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	a, err := openApp(cfg, log.Default())
	if err != nil {
		return err
	}
	defer a.Close()

	user, _ := auth.NewSession(a.kv).Current(context.Background())
	if err := ui.Run(a.store, a.kv, cfg, user); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
