package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questkeys/internal/questdb"
	"questkeys/internal/ui"
)

func (a *app) progressCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "progress [path] --player file",
		Short: "Summarize a player's quest completion",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Player == "" {
				return errors.New("no progress file: pass --player or set QUESTKEYS_PLAYER")
			}

			doc, err := a.openDatabase(args)
			if err != nil {
				return err
			}
			quests, err := doc.Quests()
			if err != nil {
				return err
			}
			prog, err := a.playerProgress()
			if err != nil {
				return err
			}
			table, err := a.langTable()
			if err != nil {
				return err
			}

			sum := prog.Summarize(quests)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(fmt.Sprintf("Completed: %d/%d (%d%%)", sum.Completed, sum.Total, sum.Percent)))

			var listed []questdb.Quest
			for _, q := range quests {
				if all || !prog.Completed(q.QuestID) {
					listed = append(listed, q)
				}
			}
			if len(listed) == 0 {
				fmt.Fprintln(out, ui.Complete("All quests complete."))
				return nil
			}

			fmt.Fprintln(out)
			return printQuestTable(out, listed, table)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list completed quests too")
	return cmd
}
