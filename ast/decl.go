package ast

import (
	"fmt"

	"gitlab.com/tozd/go/errors"

	"github.com/HicaroD/objbridge/lexer/token"
)

// Item is a top-level declaration inside a module. The set of
// implementations is closed: *StructItem, *ImplItem, *UseItem, *OtherItem.
type Item interface {
	Node
	itemNode()
}

type FieldsKind int

const (
	FIELDS_NAMED FieldsKind = iota // struct S { a: T }
	FIELDS_TUPLE                   // struct S(T);
	FIELDS_UNIT                    // struct S;
)

type StructItem struct {
	Attrs    []*Attribute
	Vis      *Visibility
	Name     *token.Token
	Generics *Generics
	Kind     FieldsKind
	Fields   []*Field
	Pos      token.Pos
}

func (s *StructItem) String() string      { return fmt.Sprintf("STRUCT: %s", s.Name.Name()) }
func (s *StructItem) Position() token.Pos { return s.Pos }
func (s *StructItem) astNode()            {}
func (s *StructItem) itemNode()           {}

// Field is a struct field. Name is nil for tuple struct fields.
type Field struct {
	Attrs []*Attribute
	Vis   *Visibility
	Name  *token.Token
	Type  Type
	Pos   token.Pos
}

func (field *Field) String() string {
	if field.Name == nil {
		return field.Type.String()
	}
	return fmt.Sprintf("%s: %s", field.Name.Name(), field.Type)
}
func (field *Field) Position() token.Pos { return field.Pos }
func (field *Field) astNode()            {}

// TraitRef is the `Trait for` clause of an impl block.
type TraitRef struct {
	Negative bool
	Path     *PathType
}

type ImplItem struct {
	Attrs    []*Attribute
	Unsafe   bool
	Generics *Generics
	Trait    *TraitRef // nil for inherent impls
	SelfType Type
	Members  []Member
	Pos      token.Pos
}

func (impl *ImplItem) String() string {
	if impl.Trait != nil {
		return fmt.Sprintf("IMPL: %s for %s", impl.Trait.Path, impl.SelfType)
	}
	return fmt.Sprintf("IMPL: %s", impl.SelfType)
}
func (impl *ImplItem) Position() token.Pos { return impl.Pos }
func (impl *ImplItem) astNode()            {}
func (impl *ImplItem) itemNode()           {}

// IsTraitImpl reports whether the impl block has a trait clause.
func (impl *ImplItem) IsTraitImpl() bool { return impl.Trait != nil }

// WithSelfName returns a shallow copy of impl whose single-segment self type
// path is renamed to name. The receiver is left untouched.
func (impl *ImplItem) WithSelfName(name string) (*ImplItem, error) {
	path, ok := impl.SelfType.(*PathType)
	if !ok || len(path.Segments) != 1 {
		return nil, errors.Errorf("self type %s is not a single segment path", impl.SelfType)
	}

	segment := *path.Segments[0]
	ident := *segment.Name
	ident.Lexeme = []byte(name)
	segment.Name = &ident

	renamed := *path
	renamed.Segments = []*PathSegment{&segment}

	clone := *impl
	clone.SelfType = &renamed
	return &clone, nil
}

// UseItem is a `use` declaration, kept verbatim.
type UseItem struct {
	Attrs  []*Attribute
	Vis    *Visibility
	Tokens []*token.Token // tree between `use` and `;`
	Pos    token.Pos
}

func (u *UseItem) Tree() string        { return JoinTokens(u.Tokens) }
func (u *UseItem) String() string      { return fmt.Sprintf("USE: %s", u.Tree()) }
func (u *UseItem) Position() token.Pos { return u.Pos }
func (u *UseItem) astNode()            {}
func (u *UseItem) itemNode()           {}

// OtherItem is any other declaration (fn, enum, const, trait, nested mod,
// macro invocation, ...). Only its leading keyword and name are recorded.
type OtherItem struct {
	Attrs   []*Attribute
	Vis     *Visibility
	Keyword *token.Token
	Name    *token.Token // nil when the item has no name, e.g. a macro call
	Tokens  []*token.Token
	Pos     token.Pos
}

func (o *OtherItem) String() string {
	if o.Name == nil {
		return fmt.Sprintf("OTHER: %s", o.Keyword.Name())
	}
	return fmt.Sprintf("OTHER: %s %s", o.Keyword.Name(), o.Name.Name())
}
func (o *OtherItem) Position() token.Pos { return o.Pos }
func (o *OtherItem) astNode()            {}
func (o *OtherItem) itemNode()           {}
