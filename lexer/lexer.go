package lexer

import (
	"unicode/utf8"

	"github.com/HicaroD/objbridge/diagnostics"
	"github.com/HicaroD/objbridge/lexer/token"
)

// eof is returned by peekChar past the end of the source. A NUL byte inside
// the source is an ordinary (invalid) character; use atEOF to test for the end.
const eof = '\000'

type Lexer struct {
	Collector *diagnostics.Collector

	src    []byte
	offset int
	pos    token.Pos
}

func New(filename string, src []byte, collector *diagnostics.Collector) *Lexer {
	lexer := new(Lexer)

	lexer.Collector = collector
	lexer.pos = token.NewPosition(filename, 1, 1)
	lexer.src = src
	lexer.offset = 0

	return lexer
}

func (lex *Lexer) Filename() string { return lex.pos.Filename }

func (lex *Lexer) Peek() *token.Token {
	prevPos := lex.pos
	prevOffset := lex.offset
	prevDiags := len(lex.Collector.Diags)

	token := lex.Next()

	lex.pos = prevPos
	lex.offset = prevOffset
	lex.Collector.Diags = lex.Collector.Diags[:prevDiags]
	return token
}

func (lex *Lexer) NextIs(expectedKind token.Kind) bool {
	token := lex.Peek()
	return token.Kind == expectedKind
}

func (lex *Lexer) Next() *token.Token {
	tok := &token.Token{}
	tok.Kind = token.INVALID

	if !lex.skipWhitespaceAndComments() {
		tok.Pos = lex.pos
		return tok
	}
	if lex.atEOF() {
		lex.consumeTokenNoLex(tok, token.EOF)
		return tok
	}

	return lex.getToken(tok, lex.peekChar())
}

// Tokenize scans the whole source. Useful for testing.
func (lex *Lexer) Tokenize() ([]*token.Token, error) {
	var tokens []*token.Token
	for {
		tok := lex.Next()
		if tok.Kind == token.INVALID {
			return nil, lex.Collector.Diags[len(lex.Collector.Diags)-1]
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, nil
}

func (lex *Lexer) getToken(tok *token.Token, ch byte) *token.Token {
	switch ch {
	case '(':
		lex.single(tok, token.OPEN_PAREN)
	case ')':
		lex.single(tok, token.CLOSE_PAREN)
	case '{':
		lex.single(tok, token.OPEN_CURLY)
	case '}':
		lex.single(tok, token.CLOSE_CURLY)
	case '[':
		lex.single(tok, token.OPEN_BRACKET)
	case ']':
		lex.single(tok, token.CLOSE_BRACKET)
	case '<':
		lex.single(tok, token.LESS)
	case '>':
		lex.single(tok, token.GREATER)
	case ',':
		lex.single(tok, token.COMMA)
	case ';':
		lex.single(tok, token.SEMICOLON)
	case '&':
		// '&&' is two references in type position
		lex.single(tok, token.AMPERSAND)
	case '*':
		lex.single(tok, token.STAR)
	case '!':
		lex.single(tok, token.BANG)
	case '#':
		lex.single(tok, token.SHARP)
	case '?':
		lex.single(tok, token.QUESTION)
	case '+':
		lex.single(tok, token.PLUS)
	case '/':
		lex.single(tok, token.SLASH)
	case '|':
		lex.single(tok, token.PIPE)
	case '@':
		lex.single(tok, token.AT)
	case '$':
		lex.single(tok, token.DOLLAR)
	case '%':
		lex.single(tok, token.PERCENT)
	case '"':
		tok.Pos = lex.pos
		lex.getStringLit(tok)
	case '\'':
		lex.getLifetimeOrChar(tok)
	case '-':
		lex.pair(tok, token.MINUS, '>', token.ARROW)
	case '=':
		lex.pair(tok, token.EQUAL, '>', token.FAT_ARROW)
	case ':':
		lex.pair(tok, token.COLON, ':', token.COLON_COLON)
	case '.':
		lex.pair(tok, token.DOT, '.', token.DOT_DOT)
	default:
		switch {
		case lex.isPrefixedLiteral():
			lex.getPrefixedLiteral(tok)
		case isIdentStart(ch):
			lex.getIdOrKeyword(tok)
		case isDigit(ch):
			lex.getNumberLit(tok)
		default:
			tok.Pos = lex.pos
			lex.nextChar()
			lex.Collector.ReportAndSave(diagnostics.New(diagnostics.Syntax, tok.Pos, "invalid character %q", ch))
		}
	}
	return tok
}

func (lex *Lexer) single(tok *token.Token, kind token.Kind) {
	lex.consumeTokenNoLex(tok, kind)
	lex.nextChar()
}

func (lex *Lexer) pair(tok *token.Token, kind token.Kind, second byte, pairKind token.Kind) {
	lex.consumeTokenNoLex(tok, kind)
	lex.nextChar()
	if lex.peekChar() == second {
		lex.nextChar()
		tok.Kind = pairKind
	}
}

// getStringLit scans a quoted string whose opening quote is the current
// character. tok.Pos must already point at the start of the literal, which
// may be a b prefix.
func (lex *Lexer) getStringLit(tok *token.Token) {
	lex.nextChar() // "

	var str []byte
	for !lex.atEOF() && lex.peekChar() != '"' {
		ch := lex.nextChar()
		if ch != '\\' {
			str = append(str, ch)
			continue
		}
		if lex.atEOF() {
			break
		}
		if lex.peekChar() == '\n' || (lex.peekChar() == '\r' && lex.peekCharAt(1) == '\n') {
			// line continuation: the newline and leading whitespace are dropped
			lex.readWhile(isWhitespace)
			continue
		}
		str = append(str, lex.escape()...)
	}

	if lex.atEOF() {
		lex.Collector.ReportAndSave(diagnostics.New(diagnostics.Syntax, tok.Pos, "unterminated string literal"))
		return
	}
	lex.nextChar()

	tok.Kind = token.STRING_LITERAL
	tok.Lexeme = str
}

// escape consumes the character after a backslash. Simple escapes are
// decoded; \x, \u{...} and anything else are kept as written.
func (lex *Lexer) escape() []byte {
	ch := lex.nextChar()
	if decoded, ok := unescape(ch); ok {
		return []byte{decoded}
	}
	escaped := []byte{'\\', ch}
	switch ch {
	case 'x':
		escaped = append(escaped, lex.readN(2, isHexDigit)...)
	case 'u':
		if lex.peekChar() == '{' {
			escaped = append(escaped, lex.readWhile(func(ch byte) bool { return ch != '}' && ch != '"' && ch != '\'' && ch != '\n' })...)
			if lex.peekChar() == '}' {
				escaped = append(escaped, lex.nextChar())
			}
		}
	}
	return escaped
}

// getRawStringLit scans r"...", r#"..."# and so on. The current character is
// the first # or the opening quote.
func (lex *Lexer) getRawStringLit(tok *token.Token) {
	hashes := len(lex.readWhile(func(ch byte) bool { return ch == '#' }))
	lex.nextChar() // "

	start := lex.offset
	for !lex.atEOF() {
		if lex.peekChar() == '"' && lex.hashesAt(1) >= hashes {
			end := lex.offset
			for i := 0; i <= hashes; i++ {
				lex.nextChar()
			}
			tok.Kind = token.STRING_LITERAL
			tok.Lexeme = lex.src[start:end]
			return
		}
		lex.nextChar()
	}
	lex.Collector.ReportAndSave(diagnostics.New(diagnostics.Syntax, tok.Pos, "unterminated raw string literal"))
}

// isPrefixedLiteral reports whether the source at the current character is a
// byte literal (b"", b''), a raw string (r"", r#""#, br"") or a raw
// identifier (r#type).
func (lex *Lexer) isPrefixedLiteral() bool {
	at := 0
	if lex.peekCharAt(at) == 'b' {
		at++
		switch lex.peekCharAt(at) {
		case '"', '\'':
			return true
		}
	}
	if lex.peekCharAt(at) != 'r' {
		return false
	}
	at++
	switch lex.peekCharAt(at) {
	case '"':
		return true
	case '#':
		hashes := lex.hashesAt(at)
		next := lex.peekCharAt(at + hashes)
		return next == '"' || (at == 1 && hashes == 1 && isIdentStart(next))
	}
	return false
}

func (lex *Lexer) getPrefixedLiteral(tok *token.Token) {
	tok.Pos = lex.pos
	if lex.peekChar() == 'b' {
		lex.nextChar()
		switch lex.peekChar() {
		case '"':
			lex.getStringLit(tok)
			return
		case '\'':
			lex.getCharLit(tok)
			return
		}
	}
	lex.nextChar() // r

	if lex.peekChar() == '#' && isIdentStart(lex.peekCharAt(1)) {
		pos := tok.Pos
		lex.nextChar()
		lex.getIdOrKeyword(tok)
		// r#type names the identifier type, never the keyword
		tok.Pos = pos
		tok.Kind = token.ID
		return
	}
	lex.getRawStringLit(tok)
}

// getLifetimeOrChar handles both 'a (lifetime) and 'a' (char literal).
func (lex *Lexer) getLifetimeOrChar(tok *token.Token) {
	tok.Pos = lex.pos

	if isIdentStart(lex.peekCharAt(1)) {
		lex.nextChar() // '
		name := lex.readWhile(isIdentContinue)
		if lex.peekChar() == '\'' && utf8.RuneCount(name) == 1 {
			lex.closeChar(tok, name)
			return
		}
		tok.Kind = token.LIFETIME
		tok.Lexeme = append([]byte{'\''}, name...)
		return
	}
	lex.getCharLit(tok)
}

// getCharLit scans a char literal whose opening quote is the current
// character.
func (lex *Lexer) getCharLit(tok *token.Token) {
	lex.nextChar() // '

	if lex.atEOF() {
		lex.Collector.ReportAndSave(diagnostics.New(diagnostics.Syntax, tok.Pos, "unterminated char literal"))
		return
	}
	if lex.nextChar() == '\\' {
		if lex.atEOF() {
			lex.Collector.ReportAndSave(diagnostics.New(diagnostics.Syntax, tok.Pos, "unterminated char literal"))
			return
		}
		lex.closeChar(tok, lex.escape())
		return
	}

	start := lex.offset - 1
	// the rest of a multi-byte character
	lex.readWhile(func(ch byte) bool { return ch >= 0x80 && ch < 0xC0 })
	lex.closeChar(tok, lex.src[start:lex.offset])
}

func (lex *Lexer) closeChar(tok *token.Token, value []byte) {
	if lex.peekChar() != '\'' || lex.atEOF() {
		lex.Collector.ReportAndSave(diagnostics.New(diagnostics.Syntax, tok.Pos, "unterminated char literal"))
		return
	}
	lex.nextChar()
	tok.Kind = token.CHAR_LITERAL
	tok.Lexeme = value
}

func (lex *Lexer) getNumberLit(tok *token.Token) {
	tok.Pos = lex.pos
	// suffixes such as 10u32 and hex digits are kept in the lexeme
	number := lex.readWhile(isIdentContinue)
	tok.Kind = token.INTEGER_LITERAL
	tok.Lexeme = number
}

func (lex *Lexer) getIdOrKeyword(tok *token.Token) {
	tok.Pos = lex.pos
	identifier := lex.readWhile(isIdentContinue)
	tok.Lexeme = identifier
	if len(identifier) == 1 && identifier[0] == '_' {
		tok.Kind = token.UNDERSCORE
		return
	}
	tok.Kind = token.ID
	keyword, ok := token.KEYWORDS[string(identifier)]
	if ok {
		tok.Kind = keyword
	}
}

func (lex *Lexer) consumeTokenNoLex(tok *token.Token, kind token.Kind) {
	tok.Lexeme = nil
	tok.Kind = kind
	tok.Pos = lex.pos
}

// skipWhitespaceAndComments reports false on an unterminated block comment.
func (lex *Lexer) skipWhitespaceAndComments() bool {
	for {
		lex.readWhile(isWhitespace)

		if lex.peekChar() != '/' {
			return true
		}
		switch lex.peekCharAt(1) {
		case '/':
			lex.readWhile(func(ch byte) bool { return ch != '\n' })
		case '*':
			if !lex.skipBlockComment() {
				return false
			}
		default:
			return true
		}
	}
}

// skipBlockComment consumes a possibly nested /* */ comment.
func (lex *Lexer) skipBlockComment() bool {
	start := lex.pos
	depth := 0
	for {
		ch := lex.peekChar()
		switch {
		case lex.atEOF():
			lex.Collector.ReportAndSave(diagnostics.New(diagnostics.Syntax, start, "unterminated block comment"))
			return false
		case ch == '/' && lex.peekCharAt(1) == '*':
			lex.nextChar()
			lex.nextChar()
			depth++
		case ch == '*' && lex.peekCharAt(1) == '/':
			lex.nextChar()
			lex.nextChar()
			depth--
			if depth == 0 {
				return true
			}
		default:
			lex.nextChar()
		}
	}
}

func (lex *Lexer) readWhile(isValid func(byte) bool) []byte {
	start := lex.offset

	for !lex.atEOF() && isValid(lex.peekChar()) {
		lex.nextChar()
	}

	return lex.src[start:lex.offset]
}

// readN reads up to n characters accepted by isValid.
func (lex *Lexer) readN(n int, isValid func(byte) bool) []byte {
	start := lex.offset
	for i := 0; i < n && !lex.atEOF() && isValid(lex.peekChar()); i++ {
		lex.nextChar()
	}
	return lex.src[start:lex.offset]
}

// hashesAt counts the # characters starting n bytes ahead.
func (lex *Lexer) hashesAt(n int) int {
	count := 0
	for lex.offset+n+count < len(lex.src) && lex.src[lex.offset+n+count] == '#' {
		count++
	}
	return count
}

func (lex *Lexer) atEOF() bool {
	return lex.offset >= len(lex.src)
}

func (lex *Lexer) nextChar() byte {
	if lex.offset >= len(lex.src) {
		return eof
	}
	character := lex.src[lex.offset]
	lex.pos.Move(character)
	lex.offset++
	return character
}

func (lex *Lexer) peekChar() byte {
	return lex.peekCharAt(0)
}

func (lex *Lexer) peekCharAt(n int) byte {
	if lex.offset+n >= len(lex.src) {
		return eof
	}
	return lex.src[lex.offset+n]
}

func unescape(ch byte) (byte, bool) {
	switch ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '"', '\'':
		return ch, true
	}
	return 0, false
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
