package ast

import (
	"strings"

	"github.com/HicaroD/objbridge/lexer/token"
)

// Type is a syntactic type expression.
type Type interface {
	Node
	String() string
	typeNode()
}

type PathSegment struct {
	Name *token.Token
	Args *GenericArgs // nil when the segment has no `<...>`
}

func (seg *PathSegment) String() string {
	if seg.Args == nil {
		return seg.Name.Name()
	}
	return seg.Name.Name() + seg.Args.String()
}

// GenericArgs is `<'a, T, U>` on a path segment.
type GenericArgs struct {
	Lifetimes []*token.Token
	Types     []Type
	Pos       token.Pos
}

func (args *GenericArgs) String() string {
	parts := make([]string, 0, len(args.Lifetimes)+len(args.Types))
	for _, lt := range args.Lifetimes {
		parts = append(parts, lt.Name())
	}
	for _, ty := range args.Types {
		parts = append(parts, ty.String())
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// PathType is a possibly qualified, possibly generic type name:
// `T`, `a::b::T`, `::T`, `Vec<T>`.
type PathType struct {
	Global   bool
	Segments []*PathSegment
	Pos      token.Pos
}

func (t *PathType) String() string {
	segments := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		segments = append(segments, seg.String())
	}
	path := strings.Join(segments, "::")
	if t.Global {
		return "::" + path
	}
	return path
}
func (t *PathType) Position() token.Pos { return t.Pos }
func (t *PathType) astNode()            {}
func (t *PathType) typeNode()           {}

// HasGenericArgs reports whether any segment carries `<...>`.
func (t *PathType) HasGenericArgs() bool {
	for _, seg := range t.Segments {
		if seg.Args != nil {
			return true
		}
	}
	return false
}

// RefType is `&T`, `&mut T` or `&'a T`.
type RefType struct {
	Lifetime *token.Token
	Mut      bool
	Elem     Type
	Pos      token.Pos
}

func (t *RefType) String() string {
	var sb strings.Builder
	sb.WriteString("&")
	if t.Lifetime != nil {
		sb.WriteString(t.Lifetime.Name() + " ")
	}
	if t.Mut {
		sb.WriteString("mut ")
	}
	sb.WriteString(t.Elem.String())
	return sb.String()
}
func (t *RefType) Position() token.Pos { return t.Pos }
func (t *RefType) astNode()            {}
func (t *RefType) typeNode()           {}

// PtrType is `*const T` or `*mut T`.
type PtrType struct {
	Mut  bool
	Elem Type
	Pos  token.Pos
}

func (t *PtrType) String() string {
	if t.Mut {
		return "*mut " + t.Elem.String()
	}
	return "*const " + t.Elem.String()
}
func (t *PtrType) Position() token.Pos { return t.Pos }
func (t *PtrType) astNode()            {}
func (t *PtrType) typeNode()           {}

// TupleType is `()`, `(T,)` or `(T, U)`.
type TupleType struct {
	Elems []Type
	Pos   token.Pos
}

func (t *TupleType) String() string {
	elems := make([]string, 0, len(t.Elems))
	for _, elem := range t.Elems {
		elems = append(elems, elem.String())
	}
	if len(elems) == 1 {
		return "(" + elems[0] + ",)"
	}
	return "(" + strings.Join(elems, ", ") + ")"
}
func (t *TupleType) Position() token.Pos { return t.Pos }
func (t *TupleType) astNode()            {}
func (t *TupleType) typeNode()           {}

// ParenType is a parenthesized type `(T)`.
type ParenType struct {
	Elem Type
	Pos  token.Pos
}

func (t *ParenType) String() string      { return "(" + t.Elem.String() + ")" }
func (t *ParenType) Position() token.Pos { return t.Pos }
func (t *ParenType) astNode()            {}
func (t *ParenType) typeNode()           {}

// SliceType is `[T]`; ArrayType is `[T; N]` with an opaque length.
type SliceType struct {
	Elem Type
	Pos  token.Pos
}

func (t *SliceType) String() string      { return "[" + t.Elem.String() + "]" }
func (t *SliceType) Position() token.Pos { return t.Pos }
func (t *SliceType) astNode()            {}
func (t *SliceType) typeNode()           {}

type ArrayType struct {
	Elem Type
	Len  []*token.Token
	Pos  token.Pos
}

func (t *ArrayType) String() string {
	return "[" + t.Elem.String() + "; " + JoinTokens(t.Len) + "]"
}
func (t *ArrayType) Position() token.Pos { return t.Pos }
func (t *ArrayType) astNode()            {}
func (t *ArrayType) typeNode()           {}

// FnType is a bare function pointer type `fn(A, B) -> C`.
type FnType struct {
	Params []Type
	Output Type // nil without `->`
	Pos    token.Pos
}

func (t *FnType) String() string {
	params := make([]string, 0, len(t.Params))
	for _, param := range t.Params {
		params = append(params, param.String())
	}
	sig := "fn(" + strings.Join(params, ", ") + ")"
	if t.Output != nil {
		sig += " -> " + t.Output.String()
	}
	return sig
}
func (t *FnType) Position() token.Pos { return t.Pos }
func (t *FnType) astNode()            {}
func (t *FnType) typeNode()           {}

// BoundsType is `impl Trait + 'a` or `dyn Trait`. Bounds are kept opaque.
type BoundsType struct {
	Keyword *token.Token
	Bounds  []*token.Token
	Pos     token.Pos
}

func (t *BoundsType) String() string {
	return t.Keyword.Name() + " " + JoinTokens(t.Bounds)
}
func (t *BoundsType) Position() token.Pos { return t.Pos }
func (t *BoundsType) astNode()            {}
func (t *BoundsType) typeNode()           {}

// NeverType is `!`.
type NeverType struct {
	Pos token.Pos
}

func (t *NeverType) String() string      { return "!" }
func (t *NeverType) Position() token.Pos { return t.Pos }
func (t *NeverType) astNode()            {}
func (t *NeverType) typeNode()           {}

// InferType is `_`.
type InferType struct {
	Pos token.Pos
}

func (t *InferType) String() string      { return "_" }
func (t *InferType) Position() token.Pos { return t.Pos }
func (t *InferType) astNode()            {}
func (t *InferType) typeNode()           {}
