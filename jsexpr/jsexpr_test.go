package jsexpr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewind/eval"
	"rewind/jsexpr"
	"rewind/parser"
)

func parseExpr(t *testing.T, src string) parser.Expr {
	t.Helper()
	module, errs := parser.Parse("<test>", "_ = "+src)
	require.Empty(t, errs)
	return module.Root().(*parser.Assign).Value
}

func TestRender(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * x", "(1 + (2 * x))"},
		{"a == b and c != nil", `($bool("and", (a === b)) && (c !== null))`},
		{"!a || b", `($bool("||", (!$bool("!", a))) || b)`},
		{"x / (y - 1)", "$div(x, (y - 1))"},
		{"-x", "(-x)"},
		{`"q\"uote"`, `"q\"uote"`},
	}
	for i, test := range tests {
		assert.Equal(t, test.expected, jsexpr.Render(parseExpr(t, test.input)), "tests[%d] (%q)", i, test.input)
	}
}

func TestEngineEvaluate(t *testing.T) {
	env := eval.NewEnvironment()
	env.Set("x", eval.Number(4))
	env.Set("s", eval.String("hi"))
	env.Set("n", eval.NIL)

	tests := []struct {
		input    string
		expected eval.Value
	}{
		{"x + 1", eval.Number(5)},
		{"x / 8", eval.Number(0.5)},
		{`s + "!"`, eval.String("hi!")},
		{"x > 3 and s == \"hi\"", eval.TRUE},
		{"n == nil", eval.TRUE},
		{"!(x < 0)", eval.TRUE},
		{"false or x", eval.Number(4)},
		{"true and nil", eval.NIL},
		{"x / 8 * 2", eval.Number(1)},
	}
	engine := jsexpr.New()
	for i, test := range tests {
		value, err := engine.Evaluate(parseExpr(t, test.input), env)
		if !assert.NoError(t, err, "tests[%d] (%q)", i, test.input) {
			continue
		}
		assert.Equal(t, test.expected, value, "tests[%d] (%q)", i, test.input)
	}
}

func TestEngineErrors(t *testing.T) {
	env := eval.NewEnvironment()
	env.Set("x", eval.Number(1))
	env.Set("s", eval.String("hi"))

	_, err := jsexpr.New().Evaluate(parseExpr(t, "z + 1"), env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ReferenceError")

	tests := []struct {
		input    string
		expected string
	}{
		{"1 / 0", "division by zero"},
		{"0 / 0", "division by zero"},
		{"x / (x - 1)", "division by zero"},
		{"1 and true", "cannot apply and to 1"},
		{"nil or true", "cannot apply or to nil"},
		{`s && false`, `cannot apply && to "hi"`},
		{"!x", "cannot apply ! to 1"},
		{"s * 2", "NaN is not a number"},
	}
	for i, test := range tests {
		_, err := jsexpr.New().Evaluate(parseExpr(t, test.input), env)
		assert.EqualError(t, err, test.expected, "tests[%d] (%q)", i, test.input)
	}
}

// The checks JavaScript would skip are the ones the native evaluator
// makes, so both engines fail on the same expressions.
func TestEngineFailsLikeNative(t *testing.T) {
	env := eval.NewEnvironment()
	env.Set("x", eval.Number(1))
	inputs := []string{"0 / 0", "x / 0", "1 and true", "x or false", "!x"}
	for i, input := range inputs {
		expr := parseExpr(t, input)
		_, jsErr := jsexpr.New().Evaluate(expr, env)
		_, nativeErr := eval.Native{}.Evaluate(expr, env)
		require.Error(t, nativeErr, "tests[%d] (%q)", i, input)
		assert.EqualError(t, jsErr, nativeErr.Error(), "tests[%d] (%q)", i, input)
	}
}

func TestEngineDrivesMachine(t *testing.T) {
	module, errs := parser.Parse("<test>", "i = 0; while (i < 2) i = i + 1; try y = z catch y = i")
	require.Empty(t, errs)
	in := &always{"c"}
	out := &discard{}
	m := eval.NewMachine(eval.Config{Evaluator: jsexpr.New(), Input: in, Output: out})

	st, err := m.Run(module.Root())
	require.NoError(t, err)

	y, ok := st.Env.Get("y")
	require.True(t, ok)
	assert.Equal(t, eval.Number(2), y)
}

type always struct{ line string }

func (a *always) ReadLine() (string, error) { return a.line, nil }

type discard struct{}

func (discard) WriteLine(eval.LineKind, string) {}
