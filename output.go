package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"questkeys/internal/lang"
	"questkeys/internal/progress"
	"questkeys/internal/questdb"
)

// questsPath picks the positional argument over the configured path.
func (a *app) questsPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return a.cfg.Quests
}

func (a *app) openDatabase(args []string) (*questdb.Document, error) {
	doc, err := questdb.Load(a.questsPath(args))
	if err != nil {
		return nil, err
	}
	doc.Strict = a.cfg.Strict
	return doc, nil
}

// langTable loads the configured .lang file. No file means fallback names.
func (a *app) langTable() (lang.Table, error) {
	if a.cfg.Lang == "" {
		return nil, nil
	}
	return lang.LoadFile(a.cfg.Lang)
}

// playerProgress loads the configured progress file, or returns nil.
func (a *app) playerProgress() (*progress.Progress, error) {
	if a.cfg.Player == "" {
		return nil, nil
	}
	return progress.Load(a.cfg.Player)
}

// displayName resolves a name key for table output; fallback is used when
// the key is empty.
func displayName(table lang.Table, key, fallback string) string {
	if key == "" {
		return fallback
	}
	return truncate(lang.StripFormatting(table.Resolve(key)), 60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func printLineTable(w io.Writer, lines []questdb.Line, table lang.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tQUESTS\tNAME")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", l.ID, len(l.QuestIDs), displayName(table, l.NameKey, "Chapter "+l.ID))
	}
	return tw.Flush()
}

func printQuestTable(w io.Writer, quests []questdb.Quest, table lang.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, q := range quests {
		fmt.Fprintf(tw, "%s\t%s\n", q.QuestID, displayName(table, q.NameKey, "Quest "+q.QuestID))
	}
	return tw.Flush()
}
