package main

import (
	"github.com/spf13/cobra"

	"questkeys/internal/questdb"
)

func (a *app) keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys [path]",
		Short: "Print the name and description keys of every quest",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runKeys,
	}
}

func (a *app) runKeys(cmd *cobra.Command, args []string) error {
	doc, err := a.openDatabase(args)
	if err != nil {
		return err
	}

	quests, err := doc.Quests()
	if err != nil {
		return err
	}

	return questdb.WriteKeys(cmd.OutOrStdout(), quests)
}
