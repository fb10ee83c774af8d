// Package ast defines the syntax tree of a restricted, Rust-shaped module
// definition: a single `mod` block holding structs, impl blocks, use
// declarations and other items.
package ast

import (
	"strings"

	"github.com/HicaroD/objbridge/lexer/token"
)

type Node interface {
	Position() token.Pos
	astNode()
}

// Module is the unit of extraction: `mod name { items }`.
type Module struct {
	Attrs []*Attribute
	Vis   *Visibility
	Name  *token.Token
	Items []Item
	Pos   token.Pos
}

func (m *Module) Position() token.Pos { return m.Pos }
func (m *Module) astNode()            {}

// Attribute is an outer `#[...]` or inner `#![...]` attribute. Its content
// is kept as an opaque run of tokens.
type Attribute struct {
	Inner  bool
	Tokens []*token.Token
	Pos    token.Pos
}

func (attr *Attribute) Position() token.Pos { return attr.Pos }
func (attr *Attribute) astNode()            {}

func (attr *Attribute) String() string {
	prefix := "#["
	if attr.Inner {
		prefix = "#!["
	}
	return prefix + JoinTokens(attr.Tokens) + "]"
}

// Visibility is `pub`, `pub(crate)`, `pub(super)` or `pub(in path)`.
type Visibility struct {
	Tokens []*token.Token
	Pos    token.Pos
}

func (vis *Visibility) Position() token.Pos { return vis.Pos }
func (vis *Visibility) astNode()            {}
func (vis *Visibility) String() string      { return JoinTokens(vis.Tokens) }

// Generics is an opaque `<...>` parameter list on a declaration.
type Generics struct {
	Tokens []*token.Token
	Pos    token.Pos
}

func (g *Generics) Position() token.Pos { return g.Pos }
func (g *Generics) astNode()            {}

// Block is an opaque brace-delimited token run, e.g. a function body.
type Block struct {
	Open   *token.Token
	Tokens []*token.Token
	Close  *token.Token
}

func (b *Block) Position() token.Pos { return b.Open.Pos }
func (b *Block) astNode()            {}

// JoinTokens renders tokens back to compact source text.
func JoinTokens(tokens []*token.Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 && needsSpace(tokens[i-1], tok) {
			sb.WriteByte(' ')
		}
		switch tok.Kind {
		case token.STRING_LITERAL:
			sb.WriteString(`"` + tok.Name() + `"`)
		case token.CHAR_LITERAL:
			sb.WriteString(`'` + tok.Name() + `'`)
		default:
			sb.WriteString(tok.Name())
		}
	}
	return sb.String()
}

func needsSpace(prev, next *token.Token) bool {
	return isWordLike(prev.Kind) && isWordLike(next.Kind)
}

func isWordLike(kind token.Kind) bool {
	switch kind {
	case token.ID, token.LIFETIME, token.INTEGER_LITERAL, token.STRING_LITERAL, token.CHAR_LITERAL, token.UNDERSCORE:
		return true
	}
	return kind.IsKeyword()
}
