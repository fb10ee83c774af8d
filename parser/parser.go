package parser

import (
	"github.com/HicaroD/objbridge/ast"
	"github.com/HicaroD/objbridge/diagnostics"
	"github.com/HicaroD/objbridge/lexer"
	"github.com/HicaroD/objbridge/lexer/token"
)

type Parser struct {
	cursor    *cursor
	collector *diagnostics.Collector
}

func New(collector *diagnostics.Collector) *Parser {
	parser := new(Parser)
	parser.cursor = nil
	parser.collector = collector
	return parser
}

// ParseModule scans and parses src, which must contain exactly one
// `mod name { ... }` definition.
func ParseModule(filename string, src []byte, collector *diagnostics.Collector) (*ast.Module, error) {
	return New(collector).ParseModule(filename, src)
}

func (p *Parser) ParseModule(filename string, src []byte) (*ast.Module, error) {
	lex := lexer.New(filename, src, p.collector)
	tokens, err := lex.Tokenize()
	if err != nil {
		return nil, err
	}
	p.cursor = newCursor(tokens)
	return p.parseModule()
}

func (p *Parser) parseModule() (*ast.Module, error) {
	module := new(ast.Module)

	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}
	module.Attrs = attrs

	module.Pos = p.cursor.peek().Pos
	vis, err := p.parseVisibility()
	if err != nil {
		return nil, err
	}
	module.Vis = vis

	if _, err := p.mustExpect(token.MOD); err != nil {
		return nil, err
	}
	name, err := p.mustExpect(token.ID)
	if err != nil {
		return nil, err
	}
	module.Name = name

	if _, err := p.mustExpect(token.OPEN_CURLY); err != nil {
		return nil, err
	}

	inner, err := p.parseInnerAttributes()
	if err != nil {
		return nil, err
	}
	module.Attrs = append(module.Attrs, inner...)

	for !p.cursor.nextIs(token.CLOSE_CURLY) {
		if p.cursor.nextIs(token.EOF) {
			tok := p.cursor.peek()
			return nil, p.errorf(tok.Pos, "expected }, not %s", tok.Kind)
		}
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		module.Items = append(module.Items, item)
	}
	p.cursor.skip() // }

	if tok := p.cursor.peek(); tok.Kind != token.EOF {
		return nil, p.errorf(tok.Pos, "expected end of file after module, not %s", tok.Kind)
	}
	return module, nil
}

func (p *Parser) parseItem() (ast.Item, error) {
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}

	pos := p.cursor.peek().Pos
	vis, err := p.parseVisibility()
	if err != nil {
		return nil, err
	}

	switch tok := p.cursor.peek(); {
	case tok.Kind == token.STRUCT:
		return p.parseStruct(attrs, vis, pos)
	case tok.Kind == token.IMPL, tok.Kind == token.UNSAFE && p.cursor.nthIs(1, token.IMPL):
		if vis != nil {
			return nil, p.errorf(vis.Pos, "unnecessary visibility qualifier on impl block")
		}
		return p.parseImpl(attrs, pos)
	case tok.Kind == token.USE:
		return p.parseUse(attrs, vis, pos)
	default:
		return p.parseOtherItem(attrs, vis, pos)
	}
}

func (p *Parser) parseStruct(attrs []*ast.Attribute, vis *ast.Visibility, pos token.Pos) (*ast.StructItem, error) {
	structItem := &ast.StructItem{Attrs: attrs, Vis: vis, Pos: pos}

	if _, err := p.mustExpect(token.STRUCT); err != nil {
		return nil, err
	}
	name, err := p.mustExpect(token.ID)
	if err != nil {
		return nil, err
	}
	structItem.Name = name

	generics, err := p.parseGenerics()
	if err != nil {
		return nil, err
	}
	structItem.Generics = generics

	if _, err := p.skipWhereClause(); err != nil {
		return nil, err
	}

	switch tok := p.cursor.peek(); tok.Kind {
	case token.OPEN_CURLY:
		structItem.Kind = ast.FIELDS_NAMED
		fields, err := p.parseNamedFields()
		if err != nil {
			return nil, err
		}
		structItem.Fields = fields
	case token.OPEN_PAREN:
		structItem.Kind = ast.FIELDS_TUPLE
		fields, err := p.parseTupleFields()
		if err != nil {
			return nil, err
		}
		structItem.Fields = fields
		if _, err := p.skipWhereClause(); err != nil {
			return nil, err
		}
		if _, err := p.mustExpect(token.SEMICOLON); err != nil {
			return nil, err
		}
	case token.SEMICOLON:
		structItem.Kind = ast.FIELDS_UNIT
		p.cursor.skip()
	default:
		return nil, p.errorf(tok.Pos, "expected struct body, not %s", tok.Kind)
	}

	return structItem, nil
}

func (p *Parser) parseNamedFields() ([]*ast.Field, error) {
	if _, err := p.mustExpect(token.OPEN_CURLY); err != nil {
		return nil, err
	}

	var fields []*ast.Field
	for !p.cursor.nextIs(token.CLOSE_CURLY) {
		attrs, err := p.parseAttributes()
		if err != nil {
			return nil, err
		}
		pos := p.cursor.peek().Pos
		vis, err := p.parseVisibility()
		if err != nil {
			return nil, err
		}
		name, err := p.mustExpect(token.ID)
		if err != nil {
			return nil, err
		}
		if _, err := p.mustExpect(token.COLON); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, &ast.Field{Attrs: attrs, Vis: vis, Name: name, Type: ty, Pos: pos})

		if err := p.expectListSeparator(token.CLOSE_CURLY); err != nil {
			return nil, err
		}
	}
	p.cursor.skip() // }

	return fields, nil
}

func (p *Parser) parseTupleFields() ([]*ast.Field, error) {
	if _, err := p.mustExpect(token.OPEN_PAREN); err != nil {
		return nil, err
	}

	var fields []*ast.Field
	for !p.cursor.nextIs(token.CLOSE_PAREN) {
		attrs, err := p.parseAttributes()
		if err != nil {
			return nil, err
		}
		pos := p.cursor.peek().Pos
		vis, err := p.parseVisibility()
		if err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, &ast.Field{Attrs: attrs, Vis: vis, Type: ty, Pos: pos})

		if err := p.expectListSeparator(token.CLOSE_PAREN); err != nil {
			return nil, err
		}
	}
	p.cursor.skip() // )

	return fields, nil
}

func (p *Parser) parseImpl(attrs []*ast.Attribute, pos token.Pos) (*ast.ImplItem, error) {
	impl := &ast.ImplItem{Attrs: attrs, Pos: pos}

	if p.cursor.nextIs(token.UNSAFE) {
		p.cursor.skip()
		impl.Unsafe = true
	}
	if _, err := p.mustExpect(token.IMPL); err != nil {
		return nil, err
	}

	generics, err := p.parseGenerics()
	if err != nil {
		return nil, err
	}
	impl.Generics = generics

	negative := false
	if p.cursor.nextIs(token.BANG) {
		p.cursor.skip()
		negative = true
	}

	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if p.cursor.nextIs(token.FOR) {
		forTok := p.cursor.next()
		traitPath, ok := ty.(*ast.PathType)
		if !ok {
			return nil, p.errorf(ty.Position(), "expected a trait path before %s, not %s", forTok.Kind, ty)
		}
		impl.Trait = &ast.TraitRef{Negative: negative, Path: traitPath}

		ty, err = p.parseType()
		if err != nil {
			return nil, err
		}
	} else if negative {
		return nil, p.errorf(ty.Position(), "negative impls require a trait")
	}
	impl.SelfType = ty

	if _, err := p.skipWhereClause(); err != nil {
		return nil, err
	}

	if _, err := p.mustExpect(token.OPEN_CURLY); err != nil {
		return nil, err
	}
	// inner attributes of the impl body are not kept apart
	inner, err := p.parseInnerAttributes()
	if err != nil {
		return nil, err
	}
	impl.Attrs = append(impl.Attrs, inner...)

	for !p.cursor.nextIs(token.CLOSE_CURLY) {
		if p.cursor.nextIs(token.EOF) {
			tok := p.cursor.peek()
			return nil, p.errorf(tok.Pos, "expected }, not %s", tok.Kind)
		}
		member, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		impl.Members = append(impl.Members, member)
	}
	p.cursor.skip() // }

	return impl, nil
}

func (p *Parser) parseMember() (ast.Member, error) {
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}
	pos := p.cursor.peek().Pos
	vis, err := p.parseVisibility()
	if err != nil {
		return nil, err
	}

	if p.isMethodAhead() {
		return p.parseMethod(attrs, vis, pos)
	}

	keyword := p.cursor.peek()
	tokens, err := p.skipItemTail(isSemicolonTerminated(keyword.Kind))
	if err != nil {
		return nil, err
	}
	return &ast.OtherMember{
		Attrs:   attrs,
		Vis:     vis,
		Keyword: keyword,
		Name:    declaredName(tokens),
		Tokens:  tokens,
		Pos:     pos,
	}, nil
}

// isMethodAhead looks past function qualifiers for `fn`.
func (p *Parser) isMethodAhead() bool {
	for i := 0; ; i++ {
		switch p.cursor.peekN(i).Kind {
		case token.CONST, token.ASYNC, token.UNSAFE, token.EXTERN, token.STRING_LITERAL:
			continue
		case token.FN:
			return true
		default:
			return false
		}
	}
}

func (p *Parser) parseMethod(attrs []*ast.Attribute, vis *ast.Visibility, pos token.Pos) (*ast.Method, error) {
	method := &ast.Method{Attrs: attrs, Vis: vis, Pos: pos}

	for !p.cursor.nextIs(token.FN) {
		method.Qualifiers = append(method.Qualifiers, p.cursor.next())
	}
	p.cursor.skip() // fn

	name, err := p.mustExpect(token.ID)
	if err != nil {
		return nil, err
	}
	method.Name = name

	generics, err := p.parseGenerics()
	if err != nil {
		return nil, err
	}
	method.Generics = generics

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	method.Params = params

	if p.cursor.nextIs(token.ARROW) {
		arrow := p.cursor.next()
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		method.Output = &ast.ReturnType{Arrow: arrow, Type: ty}
	}

	if _, err := p.skipWhereClause(); err != nil {
		return nil, err
	}

	if p.cursor.nextIs(token.SEMICOLON) {
		p.cursor.skip()
		return method, nil
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	method.Body = body

	return method, nil
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.mustExpect(token.OPEN_PAREN); err != nil {
		return nil, err
	}

	var params []ast.Param
	for !p.cursor.nextIs(token.CLOSE_PAREN) {
		attrs, err := p.parseAttributes()
		if err != nil {
			return nil, err
		}

		var param ast.Param
		if p.isReceiverAhead() {
			param, err = p.parseReceiver()
		} else {
			param, err = p.parseTypedParam(attrs)
		}
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		if err := p.expectListSeparator(token.CLOSE_PAREN); err != nil {
			return nil, err
		}
	}
	p.cursor.skip() // )

	return params, nil
}

func (p *Parser) isReceiverAhead() bool {
	i := 0
	if p.cursor.nthIs(i, token.AMPERSAND) {
		i++
		if p.cursor.nthIs(i, token.LIFETIME) {
			i++
		}
	}
	if p.cursor.nthIs(i, token.MUT) {
		i++
	}
	return p.cursor.nthIs(i, token.SELF_VALUE) && !p.cursor.nthIs(i+1, token.COLON_COLON)
}

func (p *Parser) parseReceiver() (*ast.ReceiverParam, error) {
	receiver := &ast.ReceiverParam{Pos: p.cursor.peek().Pos}

	if p.cursor.nextIs(token.AMPERSAND) {
		p.cursor.skip()
		receiver.Ref = true
		if p.cursor.nextIs(token.LIFETIME) {
			receiver.Lifetime = p.cursor.next()
		}
	}
	if p.cursor.nextIs(token.MUT) {
		p.cursor.skip()
		receiver.Mut = true
	}
	if _, err := p.mustExpect(token.SELF_VALUE); err != nil {
		return nil, err
	}

	if !receiver.Ref && p.cursor.nextIs(token.COLON) {
		p.cursor.skip()
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		receiver.Type = ty
	}
	return receiver, nil
}

func (p *Parser) parseTypedParam(attrs []*ast.Attribute) (*ast.TypedParam, error) {
	param := &ast.TypedParam{Attrs: attrs, Pos: p.cursor.peek().Pos}

	pattern, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	param.Pattern = pattern

	if _, err := p.mustExpect(token.COLON); err != nil {
		return nil, err
	}

	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	param.Type = ty

	return param, nil
}

func (p *Parser) parsePattern() (ast.Pattern, error) {
	tok := p.cursor.peek()

	switch tok.Kind {
	case token.UNDERSCORE:
		p.cursor.skip()
		return &ast.WildPat{Pos: tok.Pos}, nil
	case token.AMPERSAND:
		p.cursor.skip()
		refPat := &ast.RefPat{Pos: tok.Pos}
		if p.cursor.nextIs(token.MUT) {
			p.cursor.skip()
			refPat.Mut = true
		}
		elem, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		refPat.Elem = elem
		return refPat, nil
	case token.OPEN_PAREN:
		p.cursor.skip()
		tuple := &ast.TuplePat{Pos: tok.Pos}
		for !p.cursor.nextIs(token.CLOSE_PAREN) {
			elem, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			tuple.Elems = append(tuple.Elems, elem)
			if err := p.expectListSeparator(token.CLOSE_PAREN); err != nil {
				return nil, err
			}
		}
		p.cursor.skip() // )
		return tuple, nil
	case token.REF, token.MUT:
		return p.parseIdentPattern()
	case token.ID:
		switch p.cursor.peekN(1).Kind {
		case token.COLON_COLON, token.OPEN_CURLY, token.OPEN_PAREN:
			return p.parsePathPattern()
		}
		return p.parseIdentPattern()
	case token.SELF_TYPE, token.CRATE, token.SUPER:
		return p.parsePathPattern()
	default:
		return nil, p.errorf(tok.Pos, "expected pattern, not %s", tok.Kind)
	}
}

func (p *Parser) parseIdentPattern() (*ast.IdentPat, error) {
	pattern := &ast.IdentPat{Pos: p.cursor.peek().Pos}
	if p.cursor.nextIs(token.REF) {
		p.cursor.skip()
		pattern.Ref = true
	}
	if p.cursor.nextIs(token.MUT) {
		p.cursor.skip()
		pattern.Mut = true
	}
	name, err := p.mustExpect(token.ID)
	if err != nil {
		return nil, err
	}
	pattern.Name = name
	return pattern, nil
}

func (p *Parser) parsePathPattern() (*ast.PathPat, error) {
	pos := p.cursor.peek().Pos
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	pattern := &ast.PathPat{Path: path, Pos: pos}

	if p.cursor.nextIs(token.OPEN_CURLY) || p.cursor.nextIs(token.OPEN_PAREN) {
		tokens, err := p.collectDelimited()
		if err != nil {
			return nil, err
		}
		pattern.Tokens = tokens
	}
	return pattern, nil
}

func (p *Parser) parseUse(attrs []*ast.Attribute, vis *ast.Visibility, pos token.Pos) (*ast.UseItem, error) {
	if _, err := p.mustExpect(token.USE); err != nil {
		return nil, err
	}

	tokens, err := p.skipItemTail(true)
	if err != nil {
		return nil, err
	}
	// drop the terminating ;
	tokens = tokens[:len(tokens)-1]
	if len(tokens) == 0 {
		return nil, p.errorf(pos, "expected use tree")
	}

	return &ast.UseItem{Attrs: attrs, Vis: vis, Tokens: tokens, Pos: pos}, nil
}

func (p *Parser) parseOtherItem(attrs []*ast.Attribute, vis *ast.Visibility, pos token.Pos) (*ast.OtherItem, error) {
	keyword := p.cursor.peek()
	semicolonTerminated := isSemicolonTerminated(keyword.Kind) && !p.isMethodAhead()

	tokens, err := p.skipItemTail(semicolonTerminated)
	if err != nil {
		return nil, err
	}
	return &ast.OtherItem{
		Attrs:   attrs,
		Vis:     vis,
		Keyword: keyword,
		Name:    declaredName(tokens),
		Tokens:  tokens,
		Pos:     pos,
	}, nil
}

func (p *Parser) expect(expectedKind token.Kind) (*token.Token, bool) {
	tok := p.cursor.peek()
	if tok.Kind != expectedKind {
		return tok, false
	}
	p.cursor.skip()
	return tok, true
}

func (p *Parser) mustExpect(expectedKind token.Kind) (*token.Token, error) {
	tok, ok := p.expect(expectedKind)
	if !ok {
		return nil, p.errorf(tok.Pos, "expected %s, not %s", expectedKind, tok.Kind)
	}
	return tok, nil
}

func (p *Parser) errorf(pos token.Pos, format string, args ...any) error {
	return p.collector.Report(diagnostics.New(diagnostics.Syntax, pos, format, args...))
}

func isSemicolonTerminated(kind token.Kind) bool {
	switch kind {
	case token.CONST, token.STATIC, token.TYPE, token.USE, token.LET:
		return true
	}
	return false
}

// declaredName finds the name introduced by a skipped declaration, e.g. the
// `foo` of `pub const fn foo()` or `macro_rules! foo`.
func declaredName(tokens []*token.Token) *token.Token {
	at := func(i int) *token.Token {
		if i < len(tokens) {
			return tokens[i]
		}
		return nil
	}

	if len(tokens) >= 3 && tokens[0].Kind == token.ID && tokens[1].Kind == token.BANG && tokens[2].Kind == token.ID {
		return tokens[2]
	}

	for i, tok := range tokens {
		switch tok.Kind {
		case token.OPEN_CURLY, token.OPEN_PAREN, token.SEMICOLON, token.EQUAL, token.COLON:
			return nil
		case token.FN, token.ENUM, token.TRAIT, token.MOD, token.TYPE, token.STATIC, token.CONST, token.CRATE:
			next := i + 1
			if tok := at(next); tok != nil && tok.Kind == token.MUT {
				next++
			}
			if tok := at(next); tok != nil && tok.Kind == token.ID {
				return tok
			}
		case token.ID:
			// union is a contextual keyword
			if string(tok.Lexeme) == "union" {
				if next := at(i + 1); next != nil && next.Kind == token.ID {
					return next
				}
			}
		}
	}
	return nil
}
