// Package console connects the interpreter's line protocol to real
// terminals, pipes and writers.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"rewind/eval"
)

// Prefix starts every line of output.
const Prefix = "> "

// =====
// Input
// =====

// Readline reads commands from a terminal with line editing and
// history.
type Readline struct {
	rl *readline.Instance
}

func NewReadline(prompt string) (*Readline, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return &Readline{rl: rl}, nil
}

// ReadLine returns io.EOF on Ctrl-D and on Ctrl-C.
func (r *Readline) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func (r *Readline) Close() error { return r.rl.Close() }

// IsTerminal reports whether stdin and stdout are attached to a terminal.
func IsTerminal() bool { return readline.DefaultIsTerminal() }

// Lines reads commands from any reader, one per line.
type Lines struct {
	scanner *bufio.Scanner
}

func NewLines(r io.Reader) *Lines {
	return &Lines{scanner: bufio.NewScanner(r)}
}

func (l *Lines) ReadLine() (string, error) {
	if l.scanner.Scan() {
		return l.scanner.Text(), nil
	}
	if err := l.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// ======
// Output
// ======

var (
	// promptStyle for the statement waiting at a prompt
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// errorStyle for raised and uncaught errors
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// rewindStyle for step back notices
	rewindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// dimStyle for inspection replies
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Printer writes prefixed lines, styled by kind when color is on.
type Printer struct {
	w     io.Writer
	color bool
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) WriteLine(kind eval.LineKind, line string) {
	if p.color {
		line = styleFor(kind).Render(line)
	}
	fmt.Fprintln(p.w, Prefix+line)
}

func styleFor(kind eval.LineKind) lipgloss.Style {
	switch kind {
	case eval.LINE_PROMPT:
		return promptStyle
	case eval.LINE_ERROR:
		return errorStyle
	case eval.LINE_REWIND:
		return rewindStyle
	case eval.LINE_INSPECT:
		return dimStyle
	}
	return lipgloss.NewStyle()
}
