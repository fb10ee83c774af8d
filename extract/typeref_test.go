package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HicaroD/objbridge/internal/testutil"
	"github.com/HicaroD/objbridge/ir"
)

func TestResolveType(t *testing.T) {
	tests := []struct {
		src  string
		want ir.TypeRef
	}{
		{"i32", ir.TypeRef{Name: "i32"}},
		{"String", ir.TypeRef{Name: "String"}},
		{"QString", ir.TypeRef{Name: "QString"}},
		{"Self", ir.TypeRef{Name: "Self"}},
		{"&str", ir.TypeRef{Name: "str", IsReference: true}},
		{"&mut QColor", ir.TypeRef{Name: "QColor", IsReference: true}},
		{"&'a str", ir.TypeRef{Name: "str", IsReference: true}},
	}

	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			ref, err := ResolveType(testutil.ParseType(t, test.src))
			require.NoError(t, err)
			assert.Equal(t, test.want, ref)
		})
	}
}

func TestResolveTypeErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{"(i32, i32)", ErrUnresolvableType},
		{"()", ErrUnresolvableType},
		{"&&i32", ErrUnresolvableType},
		{"&(i32)", ErrUnresolvableType},
		{"*const u8", ErrUnresolvableType},
		{"[u8]", ErrUnresolvableType},
		{"[u8; 4]", ErrUnresolvableType},
		{"fn(i32) -> i32", ErrUnresolvableType},
		{"impl Display", ErrUnresolvableType},
		{"dyn Display", ErrUnresolvableType},
		{"Vec<u8>", ErrUnresolvableType},
		{"&Option<u8>", ErrUnresolvableType},
		{"!", ErrUnresolvableType},
		{"_", ErrUnresolvableType},
		{"std::string::String", ErrQualifiedType},
		{"a::B", ErrQualifiedType},
		{"&a::B", ErrQualifiedType},
		{"::Foo", ErrQualifiedType},
		{"a::Vec<u8>", ErrQualifiedType},
	}

	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			_, err := ResolveType(testutil.ParseType(t, test.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, test.want)
		})
	}
}
