package extract

import (
	"gitlab.com/tozd/go/errors"

	"github.com/HicaroD/objbridge/ast"
	"github.com/HicaroD/objbridge/ir"
)

var (
	// ErrUnresolvableType is returned for any type that is neither a bare
	// name nor a reference to a bare name.
	ErrUnresolvableType = errors.Base("unresolvable type")
	// ErrQualifiedType is returned for names with more than one path segment.
	ErrQualifiedType = errors.Base("qualified type")
)

// ResolveType reduces a syntactic type to a TypeRef. The name is carried
// through verbatim.
func ResolveType(ty ast.Type) (ir.TypeRef, error) {
	switch ty := ty.(type) {
	case *ast.PathType:
		name, err := resolvePath(ty)
		if err != nil {
			return ir.TypeRef{}, err
		}
		return ir.TypeRef{Name: name, IsReference: false}, nil
	case *ast.RefType:
		path, ok := ty.Elem.(*ast.PathType)
		if !ok {
			return ir.TypeRef{}, errors.Errorf("%w: reference to %s", ErrUnresolvableType, ty.Elem)
		}
		name, err := resolvePath(path)
		if err != nil {
			return ir.TypeRef{}, err
		}
		return ir.TypeRef{Name: name, IsReference: true}, nil
	default:
		return ir.TypeRef{}, errors.Errorf("%w: %s", ErrUnresolvableType, ty)
	}
}

func resolvePath(path *ast.PathType) (string, error) {
	if len(path.Segments) != 1 || path.Global {
		return "", errors.Errorf("%w: %s", ErrQualifiedType, path)
	}
	segment := path.Segments[0]
	if segment.Args != nil {
		return "", errors.Errorf("%w: generic arguments on %s", ErrUnresolvableType, path)
	}
	return segment.Name.Name(), nil
}
