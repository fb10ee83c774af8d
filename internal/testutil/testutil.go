package testutil

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HicaroD/objbridge/ast"
	"github.com/HicaroD/objbridge/diagnostics"
	"github.com/HicaroD/objbridge/internal/logging"
	"github.com/HicaroD/objbridge/parser"
)

const DefaultFilename = "test.rs"

// ParseModule parses src and fails the test on syntax errors.
func ParseModule(t testing.TB, src string) *ast.Module {
	t.Helper()
	module, err := parser.ParseModule(DefaultFilename, []byte(src), diagnostics.NewCollector())
	require.NoError(t, err)
	return module
}

func ParseFile(t testing.TB, path string) *ast.Module {
	t.Helper()
	src, err := os.ReadFile(path)
	require.NoError(t, err)
	module, err := parser.ParseModule(path, src, diagnostics.NewCollector())
	require.NoError(t, err)
	return module
}

// ParseType parses a single type expression by wrapping it in a struct field.
func ParseType(t testing.TB, src string) ast.Type {
	t.Helper()
	module := ParseModule(t, "mod m { struct S { f: "+src+" } }")
	item, ok := module.Items[0].(*ast.StructItem)
	require.True(t, ok)
	require.Len(t, item.Fields, 1)
	return item.Fields[0].Type
}

// Context returns a context carrying a debug logger. Output is discarded
// unless the test runs with -v.
func Context(t testing.TB) context.Context {
	t.Helper()
	var w io.Writer = io.Discard
	if testing.Verbose() {
		w = os.Stdout
	}
	return logging.SetupSlogSimpleToWriter(context.Background(), w, false)
}
