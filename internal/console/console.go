// Package console reads line-oriented user input.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrParse is returned when an integer was required but not given.
var ErrParse = errors.New("not a valid integer")

// LineReader prompts for and returns one line of input without its newline.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// ParseInt parses s, ignoring surrounding whitespace.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return n, nil
}

// IsToken reports whether input equals token, ignoring case and surrounding space.
func IsToken(input, token string) bool {
	return strings.EqualFold(strings.TrimSpace(input), token)
}

// Reader is a LineReader over any io.Reader. Prompts are echoed to w.
// It serves piped stdin and tests.
type Reader struct {
	sc *bufio.Scanner
	w  io.Writer
}

// NewReader returns a Reader that reads from r and writes prompts to w.
func NewReader(r io.Reader, w io.Writer) *Reader {
	return &Reader{sc: bufio.NewScanner(r), w: w}
}

func (r *Reader) Prompt(prompt string) (string, error) {
	if _, err := io.WriteString(r.w, prompt); err != nil {
		return "", err
	}
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(r.sc.Text(), "\r"), nil
}
