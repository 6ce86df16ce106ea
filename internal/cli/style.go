package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/rcliao/grade-analyzer/internal/verify"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	stepStyle  = lipgloss.NewStyle().Bold(true)
)

var statusMarks = map[verify.Status]string{
	verify.Pass: passStyle.Render("ok  "),
	verify.Warn: warnStyle.Render("warn"),
	verify.Fail: errorStyle.Render("FAIL"),
}

// PrintError writes a styled "error: ..." line.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("error:"), err)
}
