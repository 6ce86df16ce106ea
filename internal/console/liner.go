package console

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned by Liner.Prompt when the user presses Ctrl+C.
var ErrAborted = liner.ErrPromptAborted

// Liner is a terminal LineReader with line editing and history.
type Liner struct {
	line        *liner.State
	historyFile string
}

// NewLiner opens the terminal. An empty historyFile disables history persistence.
func NewLiner(historyFile string) *Liner {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	l := &Liner{line: line, historyFile: historyFile}
	l.loadHistory()
	return l
}

func (l *Liner) loadHistory() {
	if l.historyFile == "" {
		return
	}
	if f, err := os.Open(l.historyFile); err == nil {
		l.line.ReadHistory(f)
		f.Close()
	}
}

func (l *Liner) Prompt(prompt string) (string, error) {
	input, err := l.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		l.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (l *Liner) Close() error {
	if l.historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(l.historyFile), 0o700); err == nil {
			if f, err := os.OpenFile(l.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
				l.line.WriteHistory(f)
				f.Close()
			}
		}
	}
	return l.line.Close()
}
