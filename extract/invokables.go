package extract

import (
	"context"

	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	"github.com/HicaroD/objbridge/ast"
	"github.com/HicaroD/objbridge/diagnostics"
	"github.com/HicaroD/objbridge/ir"
	"github.com/HicaroD/objbridge/lexer/token"
)

// extractInvokables builds one Invokable per method of an inherent impl
// block, stopping at the first invalid member.
func extractInvokables(ctx context.Context, members []ast.Member) ([]ir.Invokable, error) {
	invokables := make([]ir.Invokable, 0, len(members))

	for _, member := range members {
		method, ok := member.(*ast.Method)
		if !ok {
			return nil, diagnostics.New(diagnostics.UnsupportedMember, member.Position(), "only methods are supported in impl blocks")
		}

		invokable, err := extractInvokable(method)
		if err != nil {
			return nil, err
		}
		slogctx.Debug(ctx, "extracted invokable", "name", invokable.Name, "parameters", len(invokable.Parameters))
		invokables = append(invokables, invokable)
	}

	return invokables, nil
}

func extractInvokable(method *ast.Method) (ir.Invokable, error) {
	invokable := ir.Invokable{
		Name:       method.Name.Name(),
		Parameters: make([]ir.Parameter, 0, len(method.Params)),
		Origin:     method,
	}

	for _, param := range method.Params {
		switch param := param.(type) {
		case *ast.ReceiverParam:
			continue
		case *ast.TypedParam:
			parameter, err := extractParameter(param)
			if err != nil {
				return ir.Invokable{}, err
			}
			invokable.Parameters = append(invokable.Parameters, parameter)
		}
	}

	if method.Output != nil {
		ref, err := ResolveType(method.Output.Type)
		if err != nil {
			return ir.Invokable{}, typeDiag(err, method.Output.Position(),
				"invalid return type format", "return type should only have one segment")
		}
		invokable.ReturnType = &ref
	}

	return invokable, nil
}

func extractParameter(param *ast.TypedParam) (ir.Parameter, error) {
	ident, ok := param.Pattern.(*ast.IdentPat)
	if !ok {
		return ir.Parameter{}, diagnostics.New(diagnostics.InvalidParameterPattern, param.Pos, "invalid argument ident format")
	}

	ref, err := ResolveType(param.Type)
	if err != nil {
		return ir.Parameter{}, typeDiag(err, param.Pos,
			"invalid argument type format", "argument type should only have one segment")
	}

	return ir.Parameter{Name: ident.Name.Name(), Type: ref}, nil
}

// typeDiag attaches pos to a ResolveType failure.
func typeDiag(err error, pos token.Pos, unresolvable, qualified string) error {
	if errors.Is(err, ErrQualifiedType) {
		return diagnostics.New(diagnostics.QualifiedType, pos, "%s", qualified)
	}
	return diagnostics.New(diagnostics.UnresolvableType, pos, "%s", unresolvable)
}
