package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dagdraft/internal/config"
	"dagdraft/internal/logging"
)

var (
	// Global flags
	workspace string
	verbose   bool
	useMock   bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dagdraft",
	Short: "dagdraft - section-by-section summons drafting",
	Long: `dagdraft drafts a Dutch summons (dagvaarding) one section at a time.

Each section is generated from the case analysis and the previously
approved sections, then reviewed by a human before the next section
builds on it. Once every section is approved, the document is assembled
from the template with all placeholders substituted.

Typical loop:
  dagdraft case new --title "Jansen / De Vries" --analysis analyse.json
  dagdraft start <case-id>
  dagdraft generate <summons-id> FEITEN
  dagdraft show <summons-id> FEITEN
  dagdraft approve <summons-id> FEITEN
  dagdraft assemble <summons-id>`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(filepath.Join(workspace, "dagdraft.yaml"))
		if err != nil {
			return err
		}
		if useMock {
			cfg.LLM.Provider = "mock"
		}
		if verbose {
			cfg.Logging.DebugMode = true
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := logging.Initialize(cfg.Workspace, logging.Options{
			DebugMode:  cfg.Logging.DebugMode,
			Level:      cfg.Logging.Level,
			Categories: cfg.Logging.Categories,
		}); err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "use the offline scripted generation client")

	rootCmd.AddCommand(caseCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(showCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
