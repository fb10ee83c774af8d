package token

import "fmt"

type Kind int

const (
	// EOF
	EOF Kind = iota
	INVALID

	// Identifier
	ID
	// 'a
	LIFETIME

	// Literals
	INTEGER_LITERAL
	STRING_LITERAL
	CHAR_LITERAL

	// Keywords
	KEYWORD_START
	MOD
	STRUCT
	IMPL
	FN
	USE
	PUB
	CRATE
	SELF_VALUE // self
	SELF_TYPE  // Self
	SUPER
	MUT
	CONST
	STATIC
	TYPE
	TRAIT
	ENUM
	FOR
	WHERE
	AS
	UNSAFE
	EXTERN
	DYN
	REF
	LET
	IN
	ASYNC
	KEYWORD_END

	// (
	OPEN_PAREN
	// )
	CLOSE_PAREN
	// {
	OPEN_CURLY
	// }
	CLOSE_CURLY
	// [
	OPEN_BRACKET
	// ]
	CLOSE_BRACKET
	// <
	LESS
	// >
	GREATER

	// ,
	COMMA
	// ;
	SEMICOLON
	// :
	COLON
	// ::
	COLON_COLON
	// ->
	ARROW
	// =>
	FAT_ARROW
	// =
	EQUAL
	// &
	AMPERSAND
	// *
	STAR
	// !
	BANG
	// #
	SHARP
	// .
	DOT
	// ..
	DOT_DOT
	// ?
	QUESTION
	// +
	PLUS
	// -
	MINUS
	// /
	SLASH
	// |
	PIPE
	// @
	AT
	// _
	UNDERSCORE
	// $
	DOLLAR
	// %
	PERCENT
)

var KEYWORDS map[string]Kind = map[string]Kind{
	"mod":    MOD,
	"struct": STRUCT,
	"impl":   IMPL,
	"fn":     FN,
	"use":    USE,
	"pub":    PUB,
	"crate":  CRATE,
	"self":   SELF_VALUE,
	"Self":   SELF_TYPE,
	"super":  SUPER,
	"mut":    MUT,
	"const":  CONST,
	"static": STATIC,
	"type":   TYPE,
	"trait":  TRAIT,
	"enum":   ENUM,
	"for":    FOR,
	"where":  WHERE,
	"as":     AS,
	"unsafe": UNSAFE,
	"extern": EXTERN,
	"dyn":    DYN,
	"ref":    REF,
	"let":    LET,
	"in":     IN,
	"async":  ASYNC,
}

func (kind Kind) IsKeyword() bool {
	return kind > KEYWORD_START && kind < KEYWORD_END
}

// IsPathSegment reports whether a token of this kind may start a path segment.
func (kind Kind) IsPathSegment() bool {
	switch kind {
	case ID, SELF_VALUE, SELF_TYPE, CRATE, SUPER:
		return true
	}
	return false
}

func (kind Kind) String() string {
	switch kind {
	case EOF:
		return "end of file"
	case INVALID:
		return "INVALID"
	case ID:
		return "identifier"
	case LIFETIME:
		return "lifetime"
	case INTEGER_LITERAL:
		return "integer literal"
	case STRING_LITERAL:
		return "string literal"
	case CHAR_LITERAL:
		return "char literal"
	case OPEN_PAREN:
		return "("
	case CLOSE_PAREN:
		return ")"
	case OPEN_CURLY:
		return "{"
	case CLOSE_CURLY:
		return "}"
	case OPEN_BRACKET:
		return "["
	case CLOSE_BRACKET:
		return "]"
	case LESS:
		return "<"
	case GREATER:
		return ">"
	case COMMA:
		return ","
	case SEMICOLON:
		return ";"
	case COLON:
		return ":"
	case COLON_COLON:
		return "::"
	case ARROW:
		return "->"
	case FAT_ARROW:
		return "=>"
	case EQUAL:
		return "="
	case AMPERSAND:
		return "&"
	case STAR:
		return "*"
	case BANG:
		return "!"
	case SHARP:
		return "#"
	case DOT:
		return "."
	case DOT_DOT:
		return ".."
	case QUESTION:
		return "?"
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case SLASH:
		return "/"
	case PIPE:
		return "|"
	case AT:
		return "@"
	case UNDERSCORE:
		return "_"
	case DOLLAR:
		return "$"
	case PERCENT:
		return "%"
	}
	for keyword, k := range KEYWORDS {
		if k == kind {
			return keyword
		}
	}
	return fmt.Sprintf("Kind(%d)", int(kind))
}
