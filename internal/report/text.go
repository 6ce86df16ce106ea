package report

import (
	"fmt"
	"strings"
)

const (
	msgNoStudents = "No students available. Add students first."
	msgNoGrades   = "No grades available for statistics."
)

// Text renders the plain-text report.
func Text(r Report) string {
	var b strings.Builder

	if r.Empty() {
		b.WriteString(msgNoStudents + "\n")
		return b.String()
	}

	b.WriteString("--- Student Report ---\n")
	for _, row := range r.Students {
		avg := "N/A"
		if row.Average != nil {
			avg = fmt.Sprintf("%.1f", *row.Average)
		}
		fmt.Fprintf(&b, "%s's average grade is %s.\n", row.Name, avg)
	}
	b.WriteString("--------------------------\n")

	if r.Summary == nil {
		b.WriteString(msgNoGrades + "\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Max Average: %.1f\n", r.Summary.Max)
	fmt.Fprintf(&b, "Min Average: %.1f\n", r.Summary.Min)
	fmt.Fprintf(&b, "Overall Average: %.1f\n", r.Summary.Mean)
	return b.String()
}
