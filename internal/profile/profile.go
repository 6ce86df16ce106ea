// Package profile builds a short user profile: age bracket plus hobbies.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/grade-analyzer/internal/console"
	"github.com/rcliao/grade-analyzer/internal/model"
	"github.com/rcliao/grade-analyzer/internal/report"
)

// ErrInvalidAge is returned for a negative age (birth year after the current year).
var ErrInvalidAge = errors.New("age cannot be negative")

const stopToken = "stop"

// Classify maps an age to its life stage.
func Classify(age int) (model.LifeStage, error) {
	switch {
	case age < 0:
		return "", fmt.Errorf("%w: %d", ErrInvalidAge, age)
	case age <= 12:
		return model.Child, nil
	case age <= 19:
		return model.Teenager, nil
	default:
		return model.Adult, nil
	}
}

// Build assembles a profile, deriving age and life stage from the years.
func Build(name string, birthYear, currentYear int, hobbies []string) (model.Profile, error) {
	age := currentYear - birthYear
	stage, err := Classify(age)
	if err != nil {
		return model.Profile{}, err
	}
	if hobbies == nil {
		hobbies = []string{}
	}
	return model.Profile{
		Name:      strings.TrimSpace(name),
		BirthYear: birthYear,
		Age:       age,
		LifeStage: stage,
		Hobbies:   hobbies,
	}, nil
}

// Collect prompts for name, birth year and hobbies, then builds the profile.
func Collect(in console.LineReader, out io.Writer, currentYear int) (model.Profile, error) {
	name, err := in.Prompt("Enter your full name: ")
	if err != nil {
		return model.Profile{}, fmt.Errorf("read name: %w", err)
	}

	var birthYear int
	for {
		line, err := in.Prompt("Enter your birth year: ")
		if err != nil {
			return model.Profile{}, fmt.Errorf("read birth year: %w", err)
		}
		birthYear, err = console.ParseInt(line)
		if err != nil {
			fmt.Fprintln(out, "Please enter the year as a whole number.")
			continue
		}
		if birthYear > currentYear {
			fmt.Fprintf(out, "Birth year cannot be after %d.\n", currentYear)
			continue
		}
		break
	}

	hobbies, err := collectHobbies(in)
	if err != nil {
		return model.Profile{}, err
	}
	return Build(name, birthYear, currentYear, hobbies)
}

func collectHobbies(in console.LineReader) ([]string, error) {
	hobbies := []string{}
	for {
		line, err := in.Prompt("Enter a favorite hobby or type 'stop' to finish: ")
		if err != nil {
			return nil, fmt.Errorf("read hobby: %w", err)
		}
		if console.IsToken(line, stopToken) {
			return hobbies, nil
		}
		if h := strings.TrimSpace(line); h != "" {
			hobbies = append(hobbies, h)
		}
	}
}

// Write renders the profile summary. Text is the default.
func Write(w io.Writer, p model.Profile, f report.Format) error {
	switch f {
	case report.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case report.FormatYAML:
		b, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("Profile Summary:\n")
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Age: %d\n", p.Age)
	fmt.Fprintf(&b, "Life Stage: %s\n", p.LifeStage)
	if len(p.Hobbies) == 0 {
		b.WriteString("You didn't mention any hobbies.\n")
	} else {
		fmt.Fprintf(&b, "Favorite Hobbies (%d):\n", len(p.Hobbies))
		for _, h := range p.Hobbies {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}
	b.WriteString("---\n")
	_, err := io.WriteString(w, b.String())
	return err
}
