package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"hostlink/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the namespace tree interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		top := newTop(cfg)
		program := tea.NewProgram(ui.NewBrowseModel(top))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("browse UI failed: %w", err)
		}
		return nil
	},
}
