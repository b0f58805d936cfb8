package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"questkeys/internal/config"
	"questkeys/internal/ui"
)

// app holds the flag values and the resolved configuration shared by every
// subcommand.
type app struct {
	configPath string
	langPath   string
	playerPath string
	strict     bool
	verbose    bool
	noColor    bool

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "questkeys [path]",
		Short: "Extract quest localization keys from a BetterQuesting quest database",
		Long: `questkeys reads a BetterQuesting DefaultQuests.json and prints the name and
description localization keys of every quest, in file order.

The quest file comes from the positional argument, QUESTKEYS_QUESTS, the
config file, or ` + config.DefaultQuestsPath + `, in that order.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: a.runKeys,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (.yaml or .toml; default <user config dir>/questkeys/config.yaml)")
	flags.StringVar(&a.langPath, "lang", "", ".lang file used to resolve keys into display text")
	flags.StringVar(&a.playerPath, "player", "", "BetterQuesting progress file (QuestProgress.json)")
	flags.BoolVar(&a.strict, "strict", false, "fail when the document has no questDatabase:9")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(a.keysCmd())
	rootCmd.AddCommand(a.linesCmd())
	rootCmd.AddCommand(a.progressCmd())
	rootCmd.AddCommand(a.browseCmd())
	return rootCmd
}

// setup configures logging and colour, then resolves configuration with
// flags taking precedence over environment and config file.
func (a *app) setup(cmd *cobra.Command) error {
	setupLogging(cmd.ErrOrStderr(), a.verbose)

	if a.noColor || !ui.ShouldUseColor() {
		ui.ForceNoColor()
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Lang = a.langPath
	}
	if flags.Changed("player") {
		cfg.Player = a.playerPath
	}
	if flags.Changed("strict") {
		cfg.Strict = a.strict
	}
	a.cfg = cfg

	slog.Debug("configuration resolved", "quests", cfg.Quests, "lang", cfg.Lang, "player", cfg.Player, "strict", cfg.Strict)
	return nil
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
