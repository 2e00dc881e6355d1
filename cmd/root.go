package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/abhisek/lingodeck/internal/config"
	"github.com/abhisek/lingodeck/internal/logging"
	"github.com/abhisek/lingodeck/internal/store"
	"github.com/spf13/cobra"
)

// annotationTUI marks commands that take over the terminal.
const annotationTUI = "tui"

var errLogStderrTUI = errors.New("--log-stderr cannot be used with the interactive UI; set log.file to choose where its logs go")

var (
	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "lingodeck",
	Short: "Flashcard practice in the terminal",
	Long: "lingodeck is a terminal flashcard trainer. Swipe a card right when you knew it,\n" +
		"left when you didn't, and beat the timer on every card.",
	Annotations:       map[string]string{annotationTUI: "true"},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGODECK_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/lingodeck/config.yaml)")
	rootCmd.PersistentFlags().Bool("log-stderr", false, "Write logs to stderr (non-interactive commands only)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// setup loads configuration and installs the logger. Interactive commands
// log to a file since the TUI owns the terminal.
func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c

	toStderr, _ := cmd.Flags().GetBool("log-stderr")
	tui := cmd.Annotations[annotationTUI] == "true"
	if toStderr && tui {
		return errLogStderrTUI
	}
	if !tui {
		logging.SetupStderr(cfg.Log)
		return nil
	}
	_, closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	logCloser = closer
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then storage.db_path from config, then LINGODECK_DB env var, then the
// default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath, store.EnsureDir(cfg.Storage.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// practiceConfig returns the loaded practice settings, or the defaults when
// configuration has not been loaded.
func practiceConfig() config.PracticeConfig {
	if cfg == nil {
		return config.DefaultPractice()
	}
	return cfg.Practice
}
