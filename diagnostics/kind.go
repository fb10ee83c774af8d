package diagnostics

import "fmt"

// Kind classifies a diagnostic.
type Kind int

const (
	// Syntax is reported by the lexer and parser for malformed source.
	Syntax Kind = iota
	// UnsupportedItem: a top-level item is neither struct, impl nor use.
	UnsupportedItem
	// DuplicateStruct: more than one struct definition in the module.
	DuplicateStruct
	// ImplBeforeStruct: an impl block precedes the struct definition.
	ImplBeforeStruct
	// ImplTargetMismatch: an impl block does not target the module's struct.
	ImplTargetMismatch
	// UnsupportedMember: a non-method member inside an impl block.
	UnsupportedMember
	// InvalidParameterPattern: a parameter binds through a non-simple pattern.
	InvalidParameterPattern
	// UnresolvableType: a type is not a bare name or a reference to one.
	UnresolvableType
	// QualifiedType: a type path has more than one segment.
	QualifiedType
	// MissingStruct: the module contains no struct at all.
	MissingStruct
)

func (kind Kind) String() string {
	switch kind {
	case Syntax:
		return "Syntax"
	case UnsupportedItem:
		return "UnsupportedItem"
	case DuplicateStruct:
		return "DuplicateStruct"
	case ImplBeforeStruct:
		return "ImplBeforeStruct"
	case ImplTargetMismatch:
		return "ImplTargetMismatch"
	case UnsupportedMember:
		return "UnsupportedMember"
	case InvalidParameterPattern:
		return "InvalidParameterPattern"
	case UnresolvableType:
		return "UnresolvableType"
	case QualifiedType:
		return "QualifiedType"
	case MissingStruct:
		return "MissingStruct"
	default:
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
}
