package ast

import (
	"fmt"
	"strings"

	"github.com/HicaroD/objbridge/lexer/token"
)

// Member is an item inside an impl block: *Method or *OtherMember.
type Member interface {
	Node
	memberNode()
}

type Method struct {
	Attrs      []*Attribute
	Vis        *Visibility
	Qualifiers []*token.Token // const, async, unsafe, extern "abi"
	Name       *token.Token
	Generics   *Generics
	Params     []Param
	Output     *ReturnType // nil when there is no `->`
	Body       *Block      // nil for `fn f();`
	Pos        token.Pos
}

func (m *Method) String() string {
	params := make([]string, 0, len(m.Params))
	for _, param := range m.Params {
		params = append(params, param.String())
	}
	sig := fmt.Sprintf("fn %s(%s)", m.Name.Name(), strings.Join(params, ", "))
	if m.Output != nil {
		sig += " -> " + m.Output.Type.String()
	}
	return sig
}
func (m *Method) Position() token.Pos { return m.Pos }
func (m *Method) astNode()            {}
func (m *Method) memberNode()         {}

// ReturnType is `-> Type`; its position is the arrow's.
type ReturnType struct {
	Arrow *token.Token
	Type  Type
}

func (ret *ReturnType) Position() token.Pos { return ret.Arrow.Pos }
func (ret *ReturnType) astNode()            {}

// OtherMember is a non-method impl member: associated const, associated type
// or macro invocation.
type OtherMember struct {
	Attrs   []*Attribute
	Vis     *Visibility
	Keyword *token.Token
	Name    *token.Token
	Tokens  []*token.Token
	Pos     token.Pos
}

func (o *OtherMember) String() string {
	if o.Name == nil {
		return o.Keyword.Name()
	}
	return fmt.Sprintf("%s %s", o.Keyword.Name(), o.Name.Name())
}
func (o *OtherMember) Position() token.Pos { return o.Pos }
func (o *OtherMember) astNode()            {}
func (o *OtherMember) memberNode()         {}

// Param is a method parameter: *ReceiverParam or *TypedParam.
type Param interface {
	Node
	String() string
	paramNode()
}

// ReceiverParam is `self`, `mut self`, `&self`, `&'a mut self` or `self: T`.
type ReceiverParam struct {
	Ref      bool
	Lifetime *token.Token
	Mut      bool
	Type     Type // explicit `self: T`, nil otherwise
	Pos      token.Pos
}

func (r *ReceiverParam) String() string {
	var sb strings.Builder
	if r.Ref {
		sb.WriteString("&")
		if r.Lifetime != nil {
			sb.WriteString(r.Lifetime.Name() + " ")
		}
	}
	if r.Mut {
		sb.WriteString("mut ")
	}
	sb.WriteString("self")
	if r.Type != nil {
		sb.WriteString(": " + r.Type.String())
	}
	return sb.String()
}
func (r *ReceiverParam) Position() token.Pos { return r.Pos }
func (r *ReceiverParam) astNode()            {}
func (r *ReceiverParam) paramNode()          {}

type TypedParam struct {
	Attrs   []*Attribute
	Pattern Pattern
	Type    Type
	Pos     token.Pos
}

func (p *TypedParam) String() string      { return fmt.Sprintf("%s: %s", p.Pattern, p.Type) }
func (p *TypedParam) Position() token.Pos { return p.Pos }
func (p *TypedParam) astNode()            {}
func (p *TypedParam) paramNode()          {}

// Pattern is the binding side of a parameter.
type Pattern interface {
	Node
	String() string
	patternNode()
}

// IdentPat binds a single name: `x`, `mut x`, `ref x`.
type IdentPat struct {
	Ref  bool
	Mut  bool
	Name *token.Token
	Pos  token.Pos
}

func (p *IdentPat) String() string {
	prefix := ""
	if p.Ref {
		prefix += "ref "
	}
	if p.Mut {
		prefix += "mut "
	}
	return prefix + p.Name.Name()
}
func (p *IdentPat) Position() token.Pos { return p.Pos }
func (p *IdentPat) astNode()            {}
func (p *IdentPat) patternNode()        {}

type WildPat struct {
	Pos token.Pos
}

func (p *WildPat) String() string      { return "_" }
func (p *WildPat) Position() token.Pos { return p.Pos }
func (p *WildPat) astNode()            {}
func (p *WildPat) patternNode()        {}

type TuplePat struct {
	Elems []Pattern
	Pos   token.Pos
}

func (p *TuplePat) String() string {
	elems := make([]string, 0, len(p.Elems))
	for _, elem := range p.Elems {
		elems = append(elems, elem.String())
	}
	return "(" + strings.Join(elems, ", ") + ")"
}
func (p *TuplePat) Position() token.Pos { return p.Pos }
func (p *TuplePat) astNode()            {}
func (p *TuplePat) patternNode()        {}

type RefPat struct {
	Mut  bool
	Elem Pattern
	Pos  token.Pos
}

func (p *RefPat) String() string {
	if p.Mut {
		return "&mut " + p.Elem.String()
	}
	return "&" + p.Elem.String()
}
func (p *RefPat) Position() token.Pos { return p.Pos }
func (p *RefPat) astNode()            {}
func (p *RefPat) patternNode()        {}

// PathPat destructures a struct or tuple struct: `Point { x, y }`, `Wrapper(v)`.
type PathPat struct {
	Path   *PathType
	Tokens []*token.Token // delimited body, opaque
	Pos    token.Pos
}

func (p *PathPat) String() string      { return p.Path.String() + JoinTokens(p.Tokens) }
func (p *PathPat) Position() token.Pos { return p.Pos }
func (p *PathPat) astNode()            {}
func (p *PathPat) patternNode()        {}
