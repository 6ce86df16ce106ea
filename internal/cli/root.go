// Package cli implements the grade-analyzer CLI commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rcliao/grade-analyzer/internal/config"
	"github.com/rcliao/grade-analyzer/internal/report"
)

var (
	configPath string
	formatFlag string
	verbose    bool

	cfg    *config.Config
	logger = zap.NewNop()
)

// RootCmd is the top-level command. Without a subcommand it starts the analyzer.
var RootCmd = &cobra.Command{
	Use:   "grade-analyzer",
	Short: "Interactive student grade analyzer",
	Long: `Record students and their grades, then print per-student and class statistics.

Run without arguments to start the interactive Student Grade Analyzer.
The profile and verify subcommands cover the other lecture exercises.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runAnalyze,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config path (default: $GRADE_ANALYZER_CONFIG or ~/.grade-analyzer/config.toml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: text, json or yaml (default from config)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.Path()
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if formatFlag != "" {
		if _, err := report.ParseFormat(formatFlag); err != nil {
			return err
		}
		cfg.Report.Format = formatFlag
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(cfg.Level())
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = l
	logger.Debug("config loaded", zap.String("path", getConfigPath()), zap.String("format", cfg.Report.Format))
	return nil
}
