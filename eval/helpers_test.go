package eval

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"rewind/parser"
)

// script feeds canned lines to a prompt. Once lines run out it keeps
// answering fallback, or io.EOF if fallback is empty.
type script struct {
	lines    []string
	fallback string
	reads    int
	onRead   func(n int, line string)
}

func (s *script) ReadLine() (string, error) {
	var line string
	switch {
	case s.reads < len(s.lines):
		line = s.lines[s.reads]
	case s.fallback != "":
		line = s.fallback
	default:
		return "", io.EOF
	}
	if s.onRead != nil {
		s.onRead(s.reads, line)
	}
	s.reads++
	return line, nil
}

type outputLine struct {
	kind LineKind
	text string
}

type recorder struct {
	lines []outputLine
}

func (r *recorder) WriteLine(kind LineKind, line string) {
	r.lines = append(r.lines, outputLine{kind, line})
}

func (r *recorder) texts() []string {
	texts := make([]string, len(r.lines))
	for i, l := range r.lines {
		texts[i] = l.text
	}
	return texts
}

func (r *recorder) of(kind LineKind) []string {
	texts := []string{}
	for _, l := range r.lines {
		if l.kind == kind {
			texts = append(texts, l.text)
		}
	}
	return texts
}

func mustParse(t *testing.T, src string) parser.Stmt {
	t.Helper()
	module, errs := parser.Parse("<test>", src)
	require.Empty(t, errs)
	return module.Root()
}

func newTestMachine(in *script) (*Machine, *recorder) {
	out := &recorder{}
	m := NewMachine(Config{Input: in, Output: out})
	return m, out
}
