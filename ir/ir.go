// Package ir defines the object descriptor produced by extraction and handed
// whole to binding generators.
package ir

import (
	"github.com/HicaroD/objbridge/ast"
)

// TypeRef is a single unqualified type name, optionally taken by reference.
type TypeRef struct {
	Name        string
	IsReference bool
}

func (ref TypeRef) String() string {
	if ref.IsReference {
		return "&" + ref.Name
	}
	return ref.Name
}

// NamePair is one logical name spelled for the foreign binding (Target) and
// for the source object model (Source).
type NamePair struct {
	Target string `yaml:"target"`
	Source string `yaml:"source"`
}

type Parameter struct {
	Name string
	Type TypeRef
}

type Invokable struct {
	Name       string
	Parameters []Parameter
	ReturnType *TypeRef // nil without `->`

	// Origin is carried through for generators and never inspected here.
	Origin *ast.Method
}

// Property is a named field of the primary struct. Each accessor pair may be
// absent; extraction currently fills all three.
type Property struct {
	Name   string
	Type   TypeRef
	Getter *NamePair
	Setter *NamePair
	Notify *NamePair
}

// Object is the root of the IR: one per module.
type Object struct {
	ModuleName  string
	TypeName    string
	StorageName string
	Invokables  []Invokable
	Properties  []Property

	Struct     *ast.StructItem
	TraitImpls []*ast.ImplItem // self types renamed to StorageName
	Imports    []*ast.UseItem
}
