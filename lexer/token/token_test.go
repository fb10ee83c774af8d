package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{EOF, "end of file"},
		{ID, "identifier"},
		{COLON_COLON, "::"},
		{ARROW, "->"},
		{STRUCT, "struct"},
		{SELF_TYPE, "Self"},
		{SELF_VALUE, "self"},
		{Kind(1000), "Kind(1000)"},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, test.kind.String())
	}
}

func TestKeywords(t *testing.T) {
	for lexeme, kind := range KEYWORDS {
		assert.True(t, kind.IsKeyword(), lexeme)
		assert.Equal(t, lexeme, kind.String())
	}
	assert.False(t, ID.IsKeyword())
	assert.False(t, KEYWORD_END.IsKeyword())
}

func TestIsPathSegment(t *testing.T) {
	for _, kind := range []Kind{ID, SELF_VALUE, SELF_TYPE, CRATE, SUPER} {
		assert.True(t, kind.IsPathSegment(), kind.String())
	}
	for _, kind := range []Kind{MOD, COLON_COLON, LIFETIME, UNDERSCORE} {
		assert.False(t, kind.IsPathSegment(), kind.String())
	}
}

func TestTokenName(t *testing.T) {
	pos := NewPosition("test.rs", 3, 1)
	assert.Equal(t, "value", New([]byte("value"), ID, pos).Name())
	assert.Equal(t, "pub", New([]byte("pub"), PUB, pos).Name())
	assert.Equal(t, "'a", New([]byte("'a"), LIFETIME, pos).Name())
	assert.Equal(t, "{", New(nil, OPEN_CURLY, pos).Name())
	assert.Equal(t, "value | identifier | test.rs:1:3", New([]byte("value"), ID, pos).String())
}

func TestPosMove(t *testing.T) {
	pos := NewPosition("test.rs", 1, 1)
	assert.True(t, pos.IsValid())

	for _, ch := range []byte("ab\nc") {
		pos.Move(ch)
	}
	assert.Equal(t, Pos{Filename: "test.rs", Line: 2, Column: 2, Offset: 4}, pos)
	assert.Equal(t, "test.rs:2:2", pos.String())

	assert.False(t, Pos{}.IsValid())
}
