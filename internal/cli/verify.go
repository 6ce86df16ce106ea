package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/grade-analyzer/internal/report"
	"github.com/rcliao/grade-analyzer/internal/verify"
)

func init() {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check school.db and queries.sql against the expected contents",
		Long:  "Verify the lecture database exercise: table set, row counts, known rows, required queries and file sizes.",
		Args:  cobra.NoArgs,
		RunE:  runVerify,
	}

	cmd.Flags().StringP("dir", "d", "", "Directory holding school.db and queries.sql (default: verify.dir)")

	RootCmd.AddCommand(cmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	exp := cfg.Verify
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		exp.Dir = dir
	}

	res, err := verify.New(exp, logger.Named("verify")).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	if err := writeResult(cmd.OutOrStdout(), res, cfg.ReportFormat()); err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("%w: %d check(s) failed", verify.ErrFailed, len(res.Failed()))
	}
	return nil
}

func writeResult(w io.Writer, res *verify.Result, f report.Format) error {
	switch f {
	case report.FormatJSON:
		b, _ := json.MarshalIndent(res, "", "  ")
		_, err := fmt.Fprintln(w, string(b))
		return err
	case report.FormatYAML:
		b, err := yaml.Marshal(res)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}

	step := ""
	for _, c := range res.Checks {
		if c.Step != step {
			step = c.Step
			fmt.Fprintln(w, stepStyle.Render(step))
		}
		fmt.Fprintf(w, "  %s %-22s %s\n", statusMarks[c.Status], c.Name, c.Detail)
	}
	if res.OK {
		fmt.Fprintln(w, passStyle.Render("All checks passed."))
	} else {
		fmt.Fprintln(w, errorStyle.Render("Some checks failed."))
	}
	return nil
}
