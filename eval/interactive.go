package eval

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"rewind/parser"
)

// Input yields one line of user input at a time. It blocks until a
// line is available and returns io.EOF once input is exhausted.
type Input interface {
	ReadLine() (string, error)
}

// LineKind tells an Output what a line is, so it may style it.
type LineKind uint8

const (
	_ = LineKind(iota)
	LINE_PROMPT  // the statement waiting at a prompt
	LINE_TRACE   // effects of executing a statement
	LINE_ERROR   // ERR: ... and uncaught errors
	LINE_REWIND  // Stepped back to ..., First statement
	LINE_INSPECT // replies to i and e
)

// Output writes one line of output at a time.
type Output interface {
	WriteLine(kind LineKind, line string)
}

type CommandKind uint8

const (
	_ = CommandKind(iota)
	CMD_CONTINUE
	CMD_BACK
	CMD_INSPECT
	CMD_ENV
	CMD_QUIT
	CMD_BAD
)

type Command struct {
	Kind CommandKind
	Name string // variable name for CMD_INSPECT
}

// ParseCommand reads one line typed at a prompt.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	switch line {
	case "c":
		return Command{Kind: CMD_CONTINUE}
	case "b":
		return Command{Kind: CMD_BACK}
	case "e":
		return Command{Kind: CMD_ENV}
	case "q":
		return Command{Kind: CMD_QUIT}
	}
	if rest, ok := strings.CutPrefix(line, "i "); ok {
		name := strings.TrimSpace(rest)
		if isName(name) {
			return Command{Kind: CMD_INSPECT, Name: name}
		}
	}
	return Command{Kind: CMD_BAD}
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		alpha := ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		if !alpha && (i == 0 || ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}

// Session is the command protocol spoken at every prompt.
type Session struct {
	in  Input
	out Output
}

func NewSession(in Input, out Output) *Session {
	return &Session{in: in, out: out}
}

// Step shows stmt and reads commands until the user decides to
// continue (CMD_CONTINUE) or go back (CMD_BACK). Inspection commands
// are answered against st and then the same statement is prompted
// again. q yields ErrQuit.
func (s *Session) Step(st State, stmt parser.Stmt) (CommandKind, error) {
	for {
		s.out.WriteLine(LINE_PROMPT, Truncate(stmt.String()))
		line, err := s.in.ReadLine()
		if err != nil {
			return 0, err
		}
		cmd := ParseCommand(line)
		switch cmd.Kind {
		case CMD_CONTINUE, CMD_BACK:
			return cmd.Kind, nil
		case CMD_QUIT:
			return 0, ErrQuit
		default:
			s.answer(st, cmd)
		}
	}
}

// Inspect runs the standalone inspection mode over st, where no
// statement is pending: only i, e and q are understood. It returns
// nil on q or at the end of input.
func (s *Session) Inspect(st State) error {
	for {
		line, err := s.in.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		cmd := ParseCommand(line)
		switch cmd.Kind {
		case CMD_QUIT:
			return nil
		case CMD_CONTINUE, CMD_BACK:
			s.out.WriteLine(LINE_INSPECT, "bad input")
		default:
			s.answer(st, cmd)
		}
	}
}

func (s *Session) answer(st State, cmd Command) {
	switch cmd.Kind {
	case CMD_INSPECT:
		s.inspectVar(st, cmd.Name)
	case CMD_ENV:
		s.showEnv(st)
	default:
		s.out.WriteLine(LINE_INSPECT, "bad input")
	}
}

func (s *Session) inspectVar(st State, name string) {
	for _, v := range st.History.Priors(name) {
		s.out.WriteLine(LINE_INSPECT, fmt.Sprintf("%s = %s", name, Inspect(v)))
	}
	if v, ok := st.Env.Get(name); ok {
		s.out.WriteLine(LINE_INSPECT, fmt.Sprintf("%s = %s", name, Inspect(v)))
	} else {
		s.out.WriteLine(LINE_INSPECT, fmt.Sprintf("%s is undefined", name))
	}
}

func (s *Session) showEnv(st State) {
	for _, name := range st.Env.Names() {
		v, _ := st.Env.Get(name)
		s.out.WriteLine(LINE_INSPECT, fmt.Sprintf("%s = %s", name, Inspect(v)))
	}
}

const promptWidth = 30

// Truncate shortens s to its first 30 characters, marking the cut
// with "...".
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= promptWidth {
		return s
	}
	return string([]rune(s)[:promptWidth]) + "..."
}
