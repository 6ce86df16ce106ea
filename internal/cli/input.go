package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/grade-analyzer/internal/console"
)

// openInput returns a terminal reader when stdin is a terminal, otherwise a
// plain line reader over the command's input. closeFn must always be called.
func openInput(cmd *cobra.Command) (in console.LineReader, closeFn func() error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			history := ""
			if cfg.Shell.History {
				history = cfg.Shell.HistoryFile
			}
			l := console.NewLiner(history)
			return l, l.Close
		}
	}
	return console.NewReader(cmd.InOrStdin(), cmd.OutOrStdout()), func() error { return nil }
}

// endOfInput reports whether err means the user closed the input.
func endOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, console.ErrAborted)
}
