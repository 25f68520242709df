package console_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewind/console"
	"rewind/eval"
)

func TestLines(t *testing.T) {
	in := console.NewLines(strings.NewReader("c\ni x\n\nq"))
	for _, expected := range []string{"c", "i x", "", "q"} {
		line, err := in.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, expected, line)
	}
	_, err := in.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := console.NewPrinter(&buf, false)
	p.WriteLine(eval.LINE_PROMPT, "x = 1")
	p.WriteLine(eval.LINE_ERROR, "ERR: boom")
	assert.Equal(t, "> x = 1\n> ERR: boom\n", buf.String())
}

func TestPrinterColorKeepsText(t *testing.T) {
	var buf bytes.Buffer
	p := console.NewPrinter(&buf, true)
	p.WriteLine(eval.LINE_REWIND, "First statement")
	assert.True(t, strings.HasPrefix(buf.String(), console.Prefix))
	assert.Contains(t, buf.String(), "First statement")
}

func TestMachineOverConsole(t *testing.T) {
	var buf bytes.Buffer
	m := eval.NewMachine(eval.Config{
		Input:  console.NewLines(strings.NewReader("c\nc\nc\n")),
		Output: console.NewPrinter(&buf, false),
	})
	module := "x = 1; print x"
	root := mustRoot(t, module)

	_, err := m.Run(root)
	require.NoError(t, err)
	assert.Equal(t, "> x = 1; print x\n> x = 1\n> Assigned 1 to x\n> print x\n> x\n", buf.String())
}
