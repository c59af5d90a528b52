package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reddycharan348/Gate-Exam/internal/config"
	"github.com/reddycharan348/Gate-Exam/internal/llm"
	"github.com/reddycharan348/Gate-Exam/internal/logging"
	"github.com/reddycharan348/Gate-Exam/internal/offline"
	"github.com/reddycharan348/Gate-Exam/internal/store"
)

var (
	// appConfig is loaded before any command runs.
	appConfig *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "gate-exam",
	Short: "AI-generated GATE mock tests in your terminal",
	Long: "gate-exam builds GATE-pattern question papers with an LLM, runs a timed\n" +
		"exam in the terminal, scores it with negative marking and explains where\n" +
		"to improve.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides GATE_EXAM_DB)")
	pf.String("config", "", "Path to a YAML config file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.Bool("offline", false, "Use the built-in offline question generator instead of an LLM")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and installs the logger. The TUI owns the
// terminal, so it logs to a file; other commands log to stderr.
func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if off, _ := cmd.Flags().GetBool("offline"); off {
		cfg.LLM.Provider = "mock"
	}
	appConfig = cfg

	lc := logging.Config{Level: cfg.Log.Level, File: cfg.Log.File, Console: true}
	if cmd.Parent() == nil && lc.File == "" {
		lc.File = logging.DefaultFile()
	}
	logCloser, err = logging.Setup(lc)
	return err
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (GATE_EXAM_DB or the config file), then the
// default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if appConfig != nil && appConfig.DB != "" {
		return appConfig.DB, store.EnsureDir(appConfig.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the database chosen by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newProvider builds the configured LLM provider. The mock provider is
// backed by the offline generator.
func newProvider(ctx context.Context, repo store.EventRepo) (llm.Provider, error) {
	cfg := appConfig.LLM
	if cfg.Provider == "mock" {
		cfg.MockResponder = offline.Responder()
	}
	return llm.NewProvider(ctx, cfg, repo)
}
