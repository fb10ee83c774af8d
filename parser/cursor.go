package parser

import (
	"github.com/HicaroD/objbridge/lexer/token"
)

// cursor walks a fully scanned token stream. The last token is always EOF.
type cursor struct {
	offset int
	tokens []*token.Token
}

func newCursor(tokens []*token.Token) *cursor {
	return &cursor{offset: 0, tokens: tokens}
}

func (cursor *cursor) peek() *token.Token {
	return cursor.peekN(0)
}

func (cursor *cursor) peekN(n int) *token.Token {
	if cursor.offset+n >= len(cursor.tokens) {
		return cursor.tokens[len(cursor.tokens)-1]
	}
	return cursor.tokens[cursor.offset+n]
}

func (cursor *cursor) next() *token.Token {
	token := cursor.peek()
	if !cursor.isOutOfBound() {
		cursor.offset++
	}
	return token
}

func (cursor *cursor) skip() {
	cursor.next()
}

func (cursor *cursor) nextIs(expectedKind token.Kind) bool {
	return cursor.peek().Kind == expectedKind
}

func (cursor *cursor) nthIs(n int, expectedKind token.Kind) bool {
	return cursor.peekN(n).Kind == expectedKind
}

func (cursor *cursor) isOutOfBound() bool {
	return cursor.offset >= len(cursor.tokens)-1
}
