package console_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rewind/parser"
)

func mustRoot(t *testing.T, src string) parser.Stmt {
	t.Helper()
	module, errs := parser.Parse("<test>", src)
	require.Empty(t, errs)
	return module.Root()
}
