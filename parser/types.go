package parser

import (
	"github.com/HicaroD/objbridge/ast"
	"github.com/HicaroD/objbridge/lexer/token"
)

func (p *Parser) parseType() (ast.Type, error) {
	tok := p.cursor.peek()

	switch tok.Kind {
	case token.AMPERSAND:
		p.cursor.skip()
		ref := &ast.RefType{Pos: tok.Pos}
		if p.cursor.nextIs(token.LIFETIME) {
			ref.Lifetime = p.cursor.next()
		}
		if p.cursor.nextIs(token.MUT) {
			p.cursor.skip()
			ref.Mut = true
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ref.Elem = elem
		return ref, nil
	case token.STAR:
		p.cursor.skip()
		ptr := &ast.PtrType{Pos: tok.Pos}
		switch qualifier := p.cursor.next(); qualifier.Kind {
		case token.MUT:
			ptr.Mut = true
		case token.CONST:
		default:
			return nil, p.errorf(qualifier.Pos, "expected const or mut after *, not %s", qualifier.Kind)
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ptr.Elem = elem
		return ptr, nil
	case token.OPEN_PAREN:
		return p.parseTupleOrParenType()
	case token.OPEN_BRACKET:
		return p.parseSliceOrArrayType()
	case token.FN, token.UNSAFE, token.EXTERN:
		return p.parseFnType()
	case token.IMPL, token.DYN:
		return p.parseBoundsType()
	case token.BANG:
		p.cursor.skip()
		return &ast.NeverType{Pos: tok.Pos}, nil
	case token.UNDERSCORE:
		p.cursor.skip()
		return &ast.InferType{Pos: tok.Pos}, nil
	case token.LESS:
		return nil, p.errorf(tok.Pos, "qualified self types are not supported")
	}

	if tok.Kind == token.COLON_COLON || tok.Kind.IsPathSegment() {
		return p.parsePath()
	}
	return nil, p.errorf(tok.Pos, "expected type, not %s", tok.Kind)
}

func (p *Parser) parseTupleOrParenType() (ast.Type, error) {
	open := p.cursor.next()

	if p.cursor.nextIs(token.CLOSE_PAREN) {
		p.cursor.skip()
		return &ast.TupleType{Pos: open.Pos}, nil
	}

	first, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.cursor.nextIs(token.CLOSE_PAREN) {
		p.cursor.skip()
		return &ast.ParenType{Elem: first, Pos: open.Pos}, nil
	}

	tuple := &ast.TupleType{Elems: []ast.Type{first}, Pos: open.Pos}
	for p.cursor.nextIs(token.COMMA) {
		p.cursor.skip()
		if p.cursor.nextIs(token.CLOSE_PAREN) {
			break
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		tuple.Elems = append(tuple.Elems, elem)
	}
	if _, err := p.mustExpect(token.CLOSE_PAREN); err != nil {
		return nil, err
	}
	return tuple, nil
}

func (p *Parser) parseSliceOrArrayType() (ast.Type, error) {
	open := p.cursor.next()

	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if p.cursor.nextIs(token.CLOSE_BRACKET) {
		p.cursor.skip()
		return &ast.SliceType{Elem: elem, Pos: open.Pos}, nil
	}

	if _, err := p.mustExpect(token.SEMICOLON); err != nil {
		return nil, err
	}
	array := &ast.ArrayType{Elem: elem, Pos: open.Pos}
	depth := 0
	for {
		tok := p.cursor.peek()
		switch tok.Kind {
		case token.EOF:
			return nil, p.errorf(open.Pos, "unclosed array type")
		case token.OPEN_BRACKET, token.OPEN_PAREN, token.OPEN_CURLY:
			depth++
		case token.CLOSE_PAREN, token.CLOSE_CURLY:
			depth--
		case token.CLOSE_BRACKET:
			if depth == 0 {
				p.cursor.skip()
				if len(array.Len) == 0 {
					return nil, p.errorf(tok.Pos, "expected array length")
				}
				return array, nil
			}
			depth--
		}
		array.Len = append(array.Len, p.cursor.next())
	}
}

func (p *Parser) parseFnType() (ast.Type, error) {
	fn := &ast.FnType{Pos: p.cursor.peek().Pos}

	for !p.cursor.nextIs(token.FN) {
		switch tok := p.cursor.next(); tok.Kind {
		case token.UNSAFE, token.EXTERN, token.STRING_LITERAL:
		default:
			return nil, p.errorf(tok.Pos, "expected fn, not %s", tok.Kind)
		}
	}
	p.cursor.skip() // fn

	if _, err := p.mustExpect(token.OPEN_PAREN); err != nil {
		return nil, err
	}
	for !p.cursor.nextIs(token.CLOSE_PAREN) {
		// named parameters: fn(x: i32)
		if (p.cursor.nextIs(token.ID) || p.cursor.nextIs(token.UNDERSCORE)) && p.cursor.nthIs(1, token.COLON) {
			p.cursor.skip()
			p.cursor.skip()
		}
		param, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)
		if err := p.expectListSeparator(token.CLOSE_PAREN); err != nil {
			return nil, err
		}
	}
	p.cursor.skip() // )

	if p.cursor.nextIs(token.ARROW) {
		p.cursor.skip()
		output, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn.Output = output
	}
	return fn, nil
}

// parseBoundsType keeps the bound list of `impl ...` and `dyn ...` opaque. The
// list ends at the first unnested token that cannot continue a bound.
func (p *Parser) parseBoundsType() (ast.Type, error) {
	keyword := p.cursor.next()
	bounds := &ast.BoundsType{Keyword: keyword, Pos: keyword.Pos}

	depth := 0
loop:
	for {
		tok := p.cursor.peek()
		switch tok.Kind {
		case token.EOF:
			break loop
		case token.LESS, token.OPEN_PAREN, token.OPEN_BRACKET:
			depth++
		case token.GREATER, token.CLOSE_PAREN, token.CLOSE_BRACKET:
			if depth == 0 {
				break loop
			}
			depth--
		case token.COMMA, token.SEMICOLON, token.OPEN_CURLY, token.CLOSE_CURLY, token.EQUAL, token.WHERE, token.FOR:
			if depth == 0 {
				break loop
			}
		}
		bounds.Bounds = append(bounds.Bounds, p.cursor.next())
	}

	if len(bounds.Bounds) == 0 {
		tok := p.cursor.peek()
		return nil, p.errorf(tok.Pos, "expected bounds after %s, not %s", keyword.Kind, tok.Kind)
	}
	return bounds, nil
}

func (p *Parser) parsePath() (*ast.PathType, error) {
	path := &ast.PathType{Pos: p.cursor.peek().Pos}

	if p.cursor.nextIs(token.COLON_COLON) {
		p.cursor.skip()
		path.Global = true
	}

	for {
		name := p.cursor.peek()
		if !name.Kind.IsPathSegment() {
			return nil, p.errorf(name.Pos, "expected path segment, not %s", name.Kind)
		}
		p.cursor.skip()
		segment := &ast.PathSegment{Name: name}

		// turbofish
		if p.cursor.nextIs(token.COLON_COLON) && p.cursor.nthIs(1, token.LESS) {
			p.cursor.skip()
		}
		if p.cursor.nextIs(token.LESS) {
			args, err := p.parseGenericArgs()
			if err != nil {
				return nil, err
			}
			segment.Args = args
		}
		path.Segments = append(path.Segments, segment)

		if !p.cursor.nextIs(token.COLON_COLON) || !p.cursor.peekN(1).Kind.IsPathSegment() {
			return path, nil
		}
		p.cursor.skip() // ::
	}
}

func (p *Parser) parseGenericArgs() (*ast.GenericArgs, error) {
	open := p.cursor.next() // <
	args := &ast.GenericArgs{Pos: open.Pos}

	for !p.cursor.nextIs(token.GREATER) {
		switch tok := p.cursor.peek(); {
		case tok.Kind == token.LIFETIME:
			args.Lifetimes = append(args.Lifetimes, p.cursor.next())
		case tok.Kind == token.INTEGER_LITERAL:
			// const generic argument
			p.cursor.skip()
		case tok.Kind == token.OPEN_CURLY:
			if _, err := p.collectDelimited(); err != nil {
				return nil, err
			}
		default:
			// associated type binding: Item = T
			if tok.Kind == token.ID && p.cursor.nthIs(1, token.EQUAL) {
				p.cursor.skip()
				p.cursor.skip()
			}
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args.Types = append(args.Types, ty)
		}

		if err := p.expectListSeparator(token.GREATER); err != nil {
			return nil, err
		}
	}
	p.cursor.skip() // >

	return args, nil
}
