// Package report derives per-student and aggregate grade statistics.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/grade-analyzer/internal/model"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (valid: text, json, yaml)", s)
}

// Row is one student's line in a report.
type Row struct {
	Name    string   `json:"name" yaml:"name"`
	Grades  int      `json:"grades" yaml:"grades"`
	Average *float64 `json:"average" yaml:"average"` // nil when no grades
}

// Summary aggregates per-student averages over students with grades.
type Summary struct {
	Max  float64 `json:"max" yaml:"max"`
	Min  float64 `json:"min" yaml:"min"`
	Mean float64 `json:"mean" yaml:"mean"`
}

// Report is the derived view of a roster.
type Report struct {
	Students []Row    `json:"students" yaml:"students"`
	Summary  *Summary `json:"summary" yaml:"summary"` // nil when no student has grades
}

// AverageOf returns the arithmetic mean of grades, or 0 for none.
func AverageOf(grades []int) float64 {
	if len(grades) == 0 {
		return 0
	}
	sum := 0
	for _, g := range grades {
		sum += g
	}
	return float64(sum) / float64(len(grades))
}

// Build computes the report for students in the given order.
func Build(students []model.Student) Report {
	r := Report{Students: make([]Row, 0, len(students))}

	var averages []float64
	for _, st := range students {
		row := Row{Name: st.Name, Grades: len(st.Grades)}
		if st.HasGrades() {
			avg := AverageOf(st.Grades)
			row.Average = &avg
			averages = append(averages, avg)
		}
		r.Students = append(r.Students, row)
	}

	if len(averages) == 0 {
		return r
	}

	sum := Summary{Max: averages[0], Min: averages[0]}
	total := 0.0
	for _, a := range averages {
		sum.Max = math.Max(sum.Max, a)
		sum.Min = math.Min(sum.Min, a)
		total += a
	}
	sum.Mean = total / float64(len(averages))
	r.Summary = &sum
	return r
}

// Empty reports whether the roster had no students.
func (r Report) Empty() bool {
	return len(r.Students) == 0
}

// rounded returns a copy with every value rounded to one decimal place.
func (r Report) rounded() Report {
	out := Report{Students: make([]Row, len(r.Students))}
	for i, row := range r.Students {
		out.Students[i] = row
		if row.Average != nil {
			v := round1(*row.Average)
			out.Students[i].Average = &v
		}
	}
	if r.Summary != nil {
		out.Summary = &Summary{
			Max:  round1(r.Summary.Max),
			Min:  round1(r.Summary.Min),
			Mean: round1(r.Summary.Mean),
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Write renders r to w in the requested format.
func Write(w io.Writer, r Report, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.rounded())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.rounded()); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, Text(r))
		return err
	}
}
