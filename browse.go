package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"questkeys/internal/ui"
)

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [path]",
		Short: "Browse quests interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.openDatabase(args)
			if err != nil {
				return err
			}
			quests, err := doc.Quests()
			if err != nil {
				return err
			}
			table, err := a.langTable()
			if err != nil {
				return err
			}
			prog, err := a.playerProgress()
			if err != nil {
				return err
			}

			p := tea.NewProgram(ui.NewModel(quests, table, prog), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browser: %w", err)
			}
			return nil
		},
	}
}
