package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/grade-analyzer/internal/menu"
	"github.com/rcliao/grade-analyzer/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Start the interactive Student Grade Analyzer",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}

	RootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	in, closeInput := openInput(cmd)
	defer closeInput()

	a := menu.New(store.NewMemoryStore(), in, cmd.OutOrStdout(),
		menu.WithFormat(cfg.ReportFormat()),
		menu.WithLogger(logger.Named("menu")),
	)
	if err := a.Run(); err != nil {
		if endOfInput(err) {
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
		return err
	}
	return nil
}
