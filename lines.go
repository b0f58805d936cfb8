package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"questkeys/internal/ui"
)

func (a *app) linesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lines [path]",
		Short: "List quest lines (chapters) and how many quests each holds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.openDatabase(args)
			if err != nil {
				return err
			}
			lines, err := doc.Lines()
			if err != nil {
				return err
			}
			table, err := a.langTable()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(fmt.Sprintf("Quest lines: %d", len(lines))))
			if len(lines) == 0 {
				return nil
			}
			return printLineTable(out, lines, table)
		},
	}
}
