package extract

import (
	"context"

	slogctx "github.com/veqryn/slog-context"

	"github.com/HicaroD/objbridge/ast"
	"github.com/HicaroD/objbridge/ir"
	"github.com/HicaroD/objbridge/naming"
)

// extractProperties builds one Property per named field, in declaration
// order. Tuple and unit structs have no properties.
func extractProperties(ctx context.Context, conv naming.Conventions, item *ast.StructItem) ([]ir.Property, error) {
	if item.Kind != ast.FIELDS_NAMED {
		slogctx.Debug(ctx, "struct has no named fields")
		return []ir.Property{}, nil
	}

	properties := make([]ir.Property, 0, len(item.Fields))
	for _, field := range item.Fields {
		ref, err := ResolveType(field.Type)
		if err != nil {
			return nil, typeDiag(err, field.Pos,
				"invalid named field type format", "named field type should only have one segment")
		}

		name := field.Name.Name()
		properties = append(properties, ir.Property{
			Name:   name,
			Type:   ref,
			Getter: pair(conv.Getter(name)),
			Setter: pair(conv.Setter(name)),
			Notify: pair(conv.Notify(name)),
		})
	}

	return properties, nil
}

func pair(target, source string) *ir.NamePair {
	return &ir.NamePair{Target: target, Source: source}
}
