package token

import "fmt"

type Token struct {
	Lexeme []byte
	Kind   Kind
	Pos    Pos
}

func New(lexeme []byte, kind Kind, position Pos) *Token {
	return &Token{Lexeme: lexeme, Kind: kind, Pos: position}
}

// Name returns the source spelling of the token.
func (token *Token) Name() string {
	switch {
	case token.Kind == ID, token.Kind == LIFETIME, token.Kind.IsKeyword():
		return string(token.Lexeme)
	case token.Kind == STRING_LITERAL, token.Kind == CHAR_LITERAL, token.Kind == INTEGER_LITERAL:
		return string(token.Lexeme)
	}
	return token.Kind.String()
}

func (token *Token) String() string {
	return fmt.Sprintf("%s | %s | %s", token.Name(), token.Kind, token.Pos)
}
