// Package extract turns a parsed module into an ir.Object. Items are
// classified in a single pass; the first rule violation aborts extraction
// and is returned as a *diagnostics.Diag.
package extract

import (
	"context"

	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/HicaroD/objbridge/ast"
	"github.com/HicaroD/objbridge/diagnostics"
	"github.com/HicaroD/objbridge/ir"
	"github.com/HicaroD/objbridge/naming"
)

// Extractor holds no mutable state and may be shared between goroutines.
type Extractor struct {
	conv naming.Conventions
}

func New(conv naming.Conventions) *Extractor {
	return &Extractor{conv: conv}
}

// Extract runs an Extractor with the default conventions.
func Extract(ctx context.Context, module *ast.Module) (*ir.Object, error) {
	return New(naming.Default()).Extract(ctx, module)
}

func (e *Extractor) Conventions() naming.Conventions { return e.conv }

// extraction accumulates the items of one module. A nil primary struct is
// the awaiting-struct state.
type extraction struct {
	conv naming.Conventions

	primary     *ast.StructItem
	typeName    string
	storageName string
	invokables  []ir.Invokable
	traitImpls  []*ast.ImplItem
	imports     []*ast.UseItem
}

// Extract classifies the items of module in source order and assembles the
// object descriptor. ctx only carries the logger.
func (e *Extractor) Extract(ctx context.Context, module *ast.Module) (*ir.Object, error) {
	if module == nil || module.Name == nil {
		return nil, errors.New("extract: nil module")
	}
	ctx = slogctx.Append(ctx, "module", module.Name.Name())

	x := &extraction{
		conv:       e.conv,
		invokables: []ir.Invokable{},
		traitImpls: []*ast.ImplItem{},
		imports:    []*ast.UseItem{},
	}

	for _, item := range module.Items {
		var err error
		switch item := item.(type) {
		case *ast.StructItem:
			err = x.addStruct(ctx, item)
		case *ast.ImplItem:
			if item.IsTraitImpl() {
				err = x.addTraitImpl(ctx, item)
			} else {
				err = x.addInherentImpl(ctx, item)
			}
		case *ast.UseItem:
			slogctx.Debug(ctx, "recorded import", "tree", item.Tree())
			x.imports = append(x.imports, item)
		default:
			err = diagnostics.New(diagnostics.UnsupportedItem, item.Position(), "unsupported item in module")
		}
		if err != nil {
			slogctx.Debug(ctx, "extraction failed", "error", err)
			return nil, err
		}
	}

	if x.primary == nil {
		return nil, diagnostics.New(diagnostics.MissingStruct, module.Pos, "there must be at least one struct per module")
	}

	properties, err := extractProperties(ctx, x.conv, x.primary)
	if err != nil {
		return nil, err
	}

	obj := &ir.Object{
		ModuleName:  module.Name.Name(),
		TypeName:    x.typeName,
		StorageName: x.storageName,
		Invokables:  x.invokables,
		Properties:  properties,
		Struct:      x.primary,
		TraitImpls:  x.traitImpls,
		Imports:     x.imports,
	}
	slogctx.Debug(ctx, "extracted object",
		"type", obj.TypeName,
		"properties", len(obj.Properties),
		"invokables", len(obj.Invokables),
		"trait_impls", len(obj.TraitImpls),
	)
	return obj, nil
}

func (x *extraction) addStruct(ctx context.Context, item *ast.StructItem) error {
	if x.primary != nil {
		return diagnostics.New(diagnostics.DuplicateStruct, item.Pos, "only one struct is supported per module")
	}

	x.primary = item
	x.typeName = item.Name.Name()
	x.storageName = x.conv.StorageName(x.typeName)
	slogctx.Debug(ctx, "recorded primary struct", "type", x.typeName, "storage", x.storageName)
	return nil
}

func (x *extraction) addInherentImpl(ctx context.Context, impl *ast.ImplItem) error {
	if err := x.checkImplTarget(impl); err != nil {
		return err
	}

	invokables, err := extractInvokables(ctx, impl.Members)
	if err != nil {
		return err
	}
	x.invokables = append(x.invokables, invokables...)
	return nil
}

func (x *extraction) addTraitImpl(ctx context.Context, impl *ast.ImplItem) error {
	if err := x.checkImplTarget(impl); err != nil {
		return err
	}

	renamed, err := impl.WithSelfName(x.storageName)
	if err != nil {
		return errors.WithStack(err)
	}
	slogctx.Debug(ctx, "recorded trait impl", "trait", impl.Trait.Path.String(), "self", renamed.SelfType.String())
	x.traitImpls = append(x.traitImpls, renamed)
	return nil
}

// checkImplTarget verifies that impl follows the primary struct and names it
// through a single-segment path.
func (x *extraction) checkImplTarget(impl *ast.ImplItem) error {
	if x.primary == nil {
		return diagnostics.New(diagnostics.ImplBeforeStruct, impl.Pos, "impl can only be declared after a struct")
	}

	path, ok := impl.SelfType.(*ast.PathType)
	if !ok {
		return diagnostics.New(diagnostics.ImplTargetMismatch, impl.Pos, "expected a type path on impl block")
	}
	if len(path.Segments) != 1 || path.Global {
		return diagnostics.New(diagnostics.ImplTargetMismatch, impl.Pos, "invalid path on impl block")
	}

	ident := path.Segments[0].Name
	if ident.Name() != x.typeName {
		if impl.IsTraitImpl() {
			return diagnostics.New(diagnostics.ImplTargetMismatch, ident.Pos, "the impl trait block needs to match the struct")
		}
		return diagnostics.New(diagnostics.ImplTargetMismatch, ident.Pos, "the impl block needs to match the struct")
	}
	return nil
}

// ExtractAll extracts independent modules concurrently. Results are in input
// order; the first failure cancels the remaining work and is returned.
func (e *Extractor) ExtractAll(ctx context.Context, modules []*ast.Module) ([]*ir.Object, error) {
	objects := make([]*ir.Object, len(modules))

	group, ctx := errgroup.WithContext(ctx)
	for i, module := range modules {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			obj, err := e.Extract(ctx, module)
			if err != nil {
				return err
			}
			objects[i] = obj
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return objects, nil
}
