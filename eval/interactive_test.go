package eval_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewind/eval"
	"rewind/parser"
)

// lines answers prompts from a fixed list, then reports io.EOF.
type lines []string

func (l *lines) ReadLine() (string, error) {
	if len(*l) == 0 {
		return "", io.EOF
	}
	line := (*l)[0]
	*l = (*l)[1:]
	return line, nil
}

// transcript keeps the text of every line written.
type transcript []string

func (tr *transcript) WriteLine(_ eval.LineKind, line string) {
	*tr = append(*tr, line)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected eval.Command
	}{
		{"c", eval.Command{Kind: eval.CMD_CONTINUE}},
		{" c ", eval.Command{Kind: eval.CMD_CONTINUE}},
		{"b", eval.Command{Kind: eval.CMD_BACK}},
		{"e", eval.Command{Kind: eval.CMD_ENV}},
		{"q", eval.Command{Kind: eval.CMD_QUIT}},
		{"i x", eval.Command{Kind: eval.CMD_INSPECT, Name: "x"}},
		{"i  total2", eval.Command{Kind: eval.CMD_INSPECT, Name: "total2"}},
		{"i", eval.Command{Kind: eval.CMD_BAD}},
		{"i 2x", eval.Command{Kind: eval.CMD_BAD}},
		{"i a b", eval.Command{Kind: eval.CMD_BAD}},
		{"continue", eval.Command{Kind: eval.CMD_BAD}},
		{"", eval.Command{Kind: eval.CMD_BAD}},
	}
	for i, test := range tests {
		assert.Equal(t, test.expected, eval.ParseCommand(test.input), "tests[%d] (%q)", i, test.input)
	}
}

func TestTruncate(t *testing.T) {
	short := "x = 1"
	assert.Equal(t, short, eval.Truncate(short))
	exact := strings.Repeat("a", 30)
	assert.Equal(t, exact, eval.Truncate(exact))
	assert.Equal(t, exact+"...", eval.Truncate(exact+"b"))
	assert.Equal(t, strings.Repeat("é", 30)+"...", eval.Truncate(strings.Repeat("é", 31)))
}

func TestSessionInspectMode(t *testing.T) {
	st := eval.NewState()
	st.Env.Set("b", eval.String("s"))
	st.Env.Set("a", eval.Number(1))
	out := &transcript{}
	s := eval.NewSession(&lines{"e", "c", "b", "i a", "x", "q", "e"}, out)

	require.NoError(t, s.Inspect(st))

	assert.Equal(t, []string{
		"a = 1",
		`b = "s"`,
		"bad input",
		"bad input",
		"a = 1",
		"bad input",
	}, []string(*out))
}

func TestSessionInspectModeEndOfInput(t *testing.T) {
	out := &transcript{}
	s := eval.NewSession(&lines{"i v"}, out)

	require.NoError(t, s.Inspect(eval.NewState()))
	assert.Equal(t, []string{"v is undefined"}, []string(*out))
}

func TestSessionStep(t *testing.T) {
	st := eval.NewState()
	st.Env.Set("x", eval.Number(1))
	stmt := parser.NewAssign("total", parser.NewString("a long string literal"))
	out := &transcript{}
	s := eval.NewSession(&lines{"i x", "zz", "b", "q"}, out)

	kind, err := s.Step(st, stmt)
	require.NoError(t, err)
	assert.Equal(t, eval.CMD_BACK, kind)
	assert.Equal(t, []string{
		`total = "a long string literal...`,
		"x = 1",
		`total = "a long string literal...`,
		"bad input",
		`total = "a long string literal...`,
	}, []string(*out))

	_, err = s.Step(st, stmt)
	assert.ErrorIs(t, err, eval.ErrQuit)
}
