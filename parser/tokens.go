package parser

import (
	"github.com/HicaroD/objbridge/ast"
	"github.com/HicaroD/objbridge/lexer/token"
)

func (p *Parser) parseAttributes() ([]*ast.Attribute, error) {
	var attrs []*ast.Attribute
	for p.cursor.nextIs(token.SHARP) {
		attr, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// parseInnerAttributes only consumes `#![...]`, leaving the outer attributes
// of the following declaration in place.
func (p *Parser) parseInnerAttributes() ([]*ast.Attribute, error) {
	var attrs []*ast.Attribute
	for p.cursor.nextIs(token.SHARP) && p.cursor.nthIs(1, token.BANG) {
		attr, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func (p *Parser) parseAttribute() (*ast.Attribute, error) {
	sharp := p.cursor.next()
	attr := &ast.Attribute{Pos: sharp.Pos}
	if p.cursor.nextIs(token.BANG) {
		p.cursor.skip()
		attr.Inner = true
	}
	if !p.cursor.nextIs(token.OPEN_BRACKET) {
		tok := p.cursor.peek()
		return nil, p.errorf(tok.Pos, "expected [ after #, not %s", tok.Kind)
	}
	tokens, err := p.collectDelimited()
	if err != nil {
		return nil, err
	}
	attr.Tokens = tokens[1 : len(tokens)-1]
	return attr, nil
}

// parseVisibility returns nil when no `pub` qualifier is present.
func (p *Parser) parseVisibility() (*ast.Visibility, error) {
	if !p.cursor.nextIs(token.PUB) {
		return nil, nil
	}
	pub := p.cursor.next()
	vis := &ast.Visibility{Tokens: []*token.Token{pub}, Pos: pub.Pos}

	// `pub (T)` on a tuple field is a public field of type (T), not a
	// restricted visibility.
	if p.cursor.nextIs(token.OPEN_PAREN) {
		switch p.cursor.peekN(1).Kind {
		case token.CRATE, token.SUPER, token.SELF_VALUE, token.IN:
			if p.cursor.nthIs(2, token.CLOSE_PAREN) || p.cursor.nthIs(1, token.IN) {
				tokens, err := p.collectDelimited()
				if err != nil {
					return nil, err
				}
				vis.Tokens = append(vis.Tokens, tokens...)
			}
		}
	}
	return vis, nil
}

// parseGenerics returns nil when the next token does not open `<...>`.
func (p *Parser) parseGenerics() (*ast.Generics, error) {
	if !p.cursor.nextIs(token.LESS) {
		return nil, nil
	}
	open := p.cursor.peek()
	tokens, err := p.collectDelimited()
	if err != nil {
		return nil, err
	}
	return &ast.Generics{Tokens: tokens[1 : len(tokens)-1], Pos: open.Pos}, nil
}

// skipWhereClause consumes a `where` clause up to, but not including, the
// `{` or `;` that ends it.
func (p *Parser) skipWhereClause() ([]*token.Token, error) {
	if !p.cursor.nextIs(token.WHERE) {
		return nil, nil
	}

	var tokens []*token.Token
	depth := 0
	for {
		tok := p.cursor.peek()
		switch tok.Kind {
		case token.EOF:
			return nil, p.errorf(tok.Pos, "unexpected end of file in where clause")
		case token.LESS, token.OPEN_PAREN, token.OPEN_BRACKET:
			depth++
		case token.GREATER, token.CLOSE_PAREN, token.CLOSE_BRACKET:
			depth--
		case token.OPEN_CURLY, token.SEMICOLON:
			if depth == 0 {
				return tokens, nil
			}
		}
		tokens = append(tokens, p.cursor.next())
	}
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	if !p.cursor.nextIs(token.OPEN_CURLY) {
		tok := p.cursor.peek()
		return nil, p.errorf(tok.Pos, "expected function body, not %s", tok.Kind)
	}
	tokens, err := p.collectDelimited()
	if err != nil {
		return nil, err
	}
	return &ast.Block{
		Open:   tokens[0],
		Tokens: tokens[1 : len(tokens)-1],
		Close:  tokens[len(tokens)-1],
	}, nil
}

// collectDelimited consumes a balanced group starting at the current opening
// delimiter and returns it, delimiters included.
func (p *Parser) collectDelimited() ([]*token.Token, error) {
	open := p.cursor.peek()
	var stack []token.Kind

	var tokens []*token.Token
	for {
		tok := p.cursor.peek()
		switch tok.Kind {
		case token.EOF:
			return nil, p.errorf(open.Pos, "unclosed delimiter %s", open.Kind)
		case token.OPEN_PAREN, token.OPEN_BRACKET, token.OPEN_CURLY:
			stack = append(stack, closerOf(tok.Kind))
		case token.LESS:
			// angle brackets only nest when the group itself is angled
			if open.Kind == token.LESS {
				stack = append(stack, token.GREATER)
			}
		case token.CLOSE_PAREN, token.CLOSE_BRACKET, token.CLOSE_CURLY, token.GREATER:
			if tok.Kind == token.GREATER && open.Kind != token.LESS {
				break
			}
			if len(stack) == 0 || stack[len(stack)-1] != tok.Kind {
				return nil, p.errorf(tok.Pos, "mismatched closing delimiter %s", tok.Kind)
			}
			stack = stack[:len(stack)-1]
		}
		tokens = append(tokens, p.cursor.next())
		if len(stack) == 0 {
			return tokens, nil
		}
	}
}

// skipItemTail consumes a declaration the extractor does not model. It stops
// after a `;` at depth zero or, unless semicolonTerminated, after the brace
// group that closes the declaration.
func (p *Parser) skipItemTail(semicolonTerminated bool) ([]*token.Token, error) {
	start := p.cursor.peek()

	var tokens []*token.Token
	depth := 0
	for {
		tok := p.cursor.peek()
		switch tok.Kind {
		case token.EOF:
			return nil, p.errorf(start.Pos, "unexpected end of file in declaration starting with %s", start.Kind)
		case token.OPEN_PAREN, token.OPEN_BRACKET, token.OPEN_CURLY:
			depth++
		case token.CLOSE_PAREN, token.CLOSE_BRACKET, token.CLOSE_CURLY:
			if depth == 0 {
				return nil, p.errorf(tok.Pos, "unexpected %s in declaration starting with %s", tok.Kind, start.Kind)
			}
			depth--
		}
		tokens = append(tokens, p.cursor.next())

		if depth != 0 {
			continue
		}
		switch tok.Kind {
		case token.SEMICOLON:
			return tokens, nil
		case token.CLOSE_CURLY:
			if semicolonTerminated {
				continue
			}
			if p.cursor.nextIs(token.SEMICOLON) {
				tokens = append(tokens, p.cursor.next())
			}
			return tokens, nil
		}
	}
}

func closerOf(kind token.Kind) token.Kind {
	switch kind {
	case token.OPEN_PAREN:
		return token.CLOSE_PAREN
	case token.OPEN_BRACKET:
		return token.CLOSE_BRACKET
	case token.OPEN_CURLY:
		return token.CLOSE_CURLY
	case token.LESS:
		return token.GREATER
	}
	return token.INVALID
}

// expectListSeparator consumes the `,` between list elements unless the list
// is about to close.
func (p *Parser) expectListSeparator(closer token.Kind) error {
	if p.cursor.nextIs(closer) {
		return nil
	}
	if p.cursor.nextIs(token.COMMA) {
		p.cursor.skip()
		return nil
	}
	tok := p.cursor.peek()
	return p.errorf(tok.Pos, "expected , or %s, not %s", closer, tok.Kind)
}
