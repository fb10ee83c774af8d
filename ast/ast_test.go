package ast_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HicaroD/objbridge/ast"
	"github.com/HicaroD/objbridge/internal/testutil"
)

func TestWithSelfName(t *testing.T) {
	module := testutil.ParseModule(t, `mod m {
    struct MyObject;
    impl Default for MyObject {
        fn default() -> Self { MyObject }
    }
}`)
	impl, ok := module.Items[1].(*ast.ImplItem)
	require.True(t, ok)
	require.True(t, impl.IsTraitImpl())

	renamed, err := impl.WithSelfName("MyObjectRs")
	require.NoError(t, err)

	assert.Equal(t, "MyObjectRs", renamed.SelfType.String())
	assert.Equal(t, "MyObject", impl.SelfType.String())
	assert.Equal(t, impl.SelfType.Position(), renamed.SelfType.Position())
	assert.Same(t, impl.Trait, renamed.Trait)
	assert.Equal(t, "IMPL: Default for MyObjectRs", renamed.String())
}

func TestWithSelfNameRejectsPaths(t *testing.T) {
	for _, src := range []string{
		"mod m { impl Default for a::MyObject {} }",
		"mod m { impl Default for &MyObject {} }",
	} {
		module := testutil.ParseModule(t, src)
		impl := module.Items[0].(*ast.ImplItem)
		_, err := impl.WithSelfName("X")
		assert.Error(t, err, src)
	}
}

func TestItemStrings(t *testing.T) {
	module := testutil.ParseModule(t, `mod m {
    use super::{A, B};
    struct S { pub value: &'a str }
    impl S {}
    fn helper() {}
    macro_rules! noop { () => {} }
}`)
	require.Len(t, module.Items, 5)

	var got []string
	for _, item := range module.Items {
		got = append(got, item.(fmt.Stringer).String())
	}
	assert.Equal(t, []string{
		"USE: super::{A,B}",
		"STRUCT: S",
		"IMPL: S",
		"OTHER: fn helper",
		"OTHER: macro_rules noop",
	}, got)

	use := module.Items[0].(*ast.UseItem)
	assert.Equal(t, "super::{A,B}", use.Tree())

	field := module.Items[1].(*ast.StructItem).Fields[0]
	assert.Equal(t, "&'a str", field.Type.String())
}

func TestTypeStrings(t *testing.T) {
	tests := []string{
		"i32",
		"&mut T",
		"*const u8",
		"(i32,)",
		"(A, B)",
		"[u8]",
		"[u8; 4]",
		"fn(i32) -> bool",
		"::std::vec::Vec<T>",
		"Option<&'a str>",
		"!",
		"_",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			assert.Equal(t, src, testutil.ParseType(t, src).String())
		})
	}
}

func TestHasGenericArgs(t *testing.T) {
	assert.True(t, testutil.ParseType(t, "a::Vec<u8>").(*ast.PathType).HasGenericArgs())
	assert.False(t, testutil.ParseType(t, "a::b::C").(*ast.PathType).HasGenericArgs())
}
