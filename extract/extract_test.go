package extract

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HicaroD/objbridge/ast"
	"github.com/HicaroD/objbridge/diagnostics"
	"github.com/HicaroD/objbridge/internal/testutil"
	"github.com/HicaroD/objbridge/ir"
	"github.com/HicaroD/objbridge/naming"
)

func extract(t *testing.T, src string) *ir.Object {
	t.Helper()
	obj, err := Extract(testutil.Context(t), testutil.ParseModule(t, src))
	require.NoError(t, err)
	require.NotNil(t, obj)
	return obj
}

func TestExtractCounter(t *testing.T) {
	obj := extract(t, `mod counter {
    struct Foo {
        count: i32,
    }

    impl Foo {
        fn double(&self, x: i32) -> i32 {
            x * 2
        }
    }
}`)

	assert.Equal(t, "counter", obj.ModuleName)
	assert.Equal(t, "Foo", obj.TypeName)
	assert.Equal(t, "FooRs", obj.StorageName)

	require.Len(t, obj.Properties, 1)
	prop := obj.Properties[0]
	assert.Equal(t, "count", prop.Name)
	assert.Equal(t, ir.TypeRef{Name: "i32"}, prop.Type)
	assert.Equal(t, &ir.NamePair{Target: "getCount", Source: "count"}, prop.Getter)
	assert.Equal(t, &ir.NamePair{Target: "setCount", Source: "set_count"}, prop.Setter)
	assert.Equal(t, &ir.NamePair{Target: "countChanged", Source: "count"}, prop.Notify)

	require.Len(t, obj.Invokables, 1)
	inv := obj.Invokables[0]
	assert.Equal(t, "double", inv.Name)
	assert.Equal(t, []ir.Parameter{{Name: "x", Type: ir.TypeRef{Name: "i32"}}}, inv.Parameters)
	assert.Equal(t, &ir.TypeRef{Name: "i32"}, inv.ReturnType)
	require.NotNil(t, inv.Origin)
	assert.Equal(t, "double", inv.Origin.Name.Name())

	assert.Equal(t, "Foo", obj.Struct.Name.Name())
	assert.Empty(t, obj.TraitImpls)
	assert.Empty(t, obj.Imports)
}

func TestExtractEmptyStruct(t *testing.T) {
	for _, src := range []string{
		"mod m { struct Bar {} }",
		"mod m { struct Bar; }",
		"mod m { struct Bar(i32, (u8, u8)); }",
	} {
		t.Run(src, func(t *testing.T) {
			obj := extract(t, src)
			assert.Equal(t, "Bar", obj.TypeName)
			assert.Empty(t, obj.Properties)
			assert.Empty(t, obj.Invokables)
			assert.NotNil(t, obj.Properties)
			assert.NotNil(t, obj.Invokables)
		})
	}
}

func TestExtractInvokablesPreserveOrder(t *testing.T) {
	obj := extract(t, `mod m {
    struct S;
    impl S {
        fn first(&self, c: u8, a: &str, b: QString) {}
        fn second(&mut self) -> bool { true }
        fn third(self: Box<Self>, mut n: i32) {}
        fn fourth(value: &QColor) -> &QColor { value }
    }
    impl S {
        fn fifth() {}
    }
}`)

	var names []string
	for _, inv := range obj.Invokables {
		names = append(names, inv.Name)
	}
	assert.Equal(t, []string{"first", "second", "third", "fourth", "fifth"}, names)

	assert.Equal(t, []ir.Parameter{
		{Name: "c", Type: ir.TypeRef{Name: "u8"}},
		{Name: "a", Type: ir.TypeRef{Name: "str", IsReference: true}},
		{Name: "b", Type: ir.TypeRef{Name: "QString"}},
	}, obj.Invokables[0].Parameters)
	assert.Nil(t, obj.Invokables[0].ReturnType)

	assert.Empty(t, obj.Invokables[1].Parameters)
	assert.Equal(t, &ir.TypeRef{Name: "bool"}, obj.Invokables[1].ReturnType)

	assert.Equal(t, []ir.Parameter{{Name: "n", Type: ir.TypeRef{Name: "i32"}}}, obj.Invokables[2].Parameters)

	assert.Equal(t, []ir.Parameter{{Name: "value", Type: ir.TypeRef{Name: "QColor", IsReference: true}}}, obj.Invokables[3].Parameters)
	assert.Equal(t, &ir.TypeRef{Name: "QColor", IsReference: true}, obj.Invokables[3].ReturnType)
}

func TestExtractPropertyNames(t *testing.T) {
	fields := []string{"number", "string", "my_value", "count", "x", "_private", "value2", "HTTPServer"}

	src := "mod m { struct S {"
	for _, field := range fields {
		src += fmt.Sprintf(" %s: i32,", field)
	}
	src += " } }"
	obj := extract(t, src)

	require.Len(t, obj.Properties, len(fields))
	for i, field := range fields {
		prop := obj.Properties[i]
		assert.Equal(t, field, prop.Name)
		assert.Equal(t, "get"+naming.Title(field), prop.Getter.Target)
		assert.Equal(t, naming.Snake(field), prop.Getter.Source)
		assert.Equal(t, "set"+naming.Title(field), prop.Setter.Target)
		assert.Equal(t, "set_"+naming.Snake(field), prop.Setter.Source)
		assert.Equal(t, naming.Camel(field)+"Changed", prop.Notify.Target)
		assert.Equal(t, naming.Snake(field), prop.Notify.Source)
	}

	assert.Equal(t, "getMyValue", obj.Properties[2].Getter.Target)
	assert.Equal(t, "set_my_value", obj.Properties[2].Setter.Source)
	assert.Equal(t, "myValueChanged", obj.Properties[2].Notify.Target)

	private := obj.Properties[5]
	assert.Equal(t, "_private", private.Name)
	assert.Equal(t, &ir.NamePair{Target: "getPrivate", Source: "private"}, private.Getter)
	assert.Equal(t, &ir.NamePair{Target: "setPrivate", Source: "set_private"}, private.Setter)
	assert.Equal(t, &ir.NamePair{Target: "privateChanged", Source: "private"}, private.Notify)

	assert.Equal(t, "getValue2", obj.Properties[6].Getter.Target)
	assert.Equal(t, "httpServerChanged", obj.Properties[7].Notify.Target)
	assert.Equal(t, "set_http_server", obj.Properties[7].Setter.Source)
}

func TestExtractTraitImplRewritesSelfType(t *testing.T) {
	module := testutil.ParseModule(t, `mod my_object {
    use super::MyTrait;
    struct MyObject { public: i32 }
    impl MyObject {
        fn invokable(&self) {}
    }
    impl Default for MyObject {
        fn default() -> Self { Self { public: 32 } }
    }
    impl MyTrait for MyObject {}
}`)
	original := module.Items[3].(*ast.ImplItem)

	obj, err := Extract(testutil.Context(t), module)
	require.NoError(t, err)

	assert.Equal(t, "MyObject", obj.TypeName)
	require.Len(t, obj.TraitImpls, 2)
	assert.Equal(t, "MyObjectRs", obj.TraitImpls[0].SelfType.String())
	assert.Equal(t, "Default", obj.TraitImpls[0].Trait.Path.String())
	assert.Equal(t, "MyObjectRs", obj.TraitImpls[1].SelfType.String())
	assert.Equal(t, "MyTrait", obj.TraitImpls[1].Trait.Path.String())
	assert.Equal(t, original.Members, obj.TraitImpls[0].Members)

	// the input tree is left untouched
	assert.Equal(t, "MyObject", original.SelfType.String())

	require.Len(t, obj.Imports, 1)
	assert.Equal(t, "super::MyTrait", obj.Imports[0].Tree())

	// trait impl methods are not invokables
	require.Len(t, obj.Invokables, 1)
	assert.Equal(t, "invokable", obj.Invokables[0].Name)
}

func TestExtractCustomConventions(t *testing.T) {
	conv := naming.Conventions{
		StorageSuffix:      "Impl",
		GetterPrefix:       "read",
		SetterPrefix:       "write",
		SetterSourcePrefix: "put_",
		NotifySuffix:       "Updated",
	}
	extractor := New(conv)
	assert.Equal(t, conv, extractor.Conventions())

	module := testutil.ParseModule(t, `mod m {
    struct Widget { size: u32 }
    impl Default for Widget { fn default() -> Self { todo!() } }
}`)
	obj, err := extractor.Extract(testutil.Context(t), module)
	require.NoError(t, err)

	assert.Equal(t, "WidgetImpl", obj.StorageName)
	assert.Equal(t, "WidgetImpl", obj.TraitImpls[0].SelfType.String())
	assert.Equal(t, ir.NamePair{Target: "readSize", Source: "size"}, *obj.Properties[0].Getter)
	assert.Equal(t, ir.NamePair{Target: "writeSize", Source: "put_size"}, *obj.Properties[0].Setter)
	assert.Equal(t, ir.NamePair{Target: "sizeUpdated", Source: "size"}, *obj.Properties[0].Notify)
}

func TestExtractIsIdempotent(t *testing.T) {
	module := testutil.ParseModule(t, `mod my_object {
    use cxx_qt_lib::QString;
    struct MyObject { number: i32, string: String }
    impl MyObject {
        fn say_hi(&self, string: &str, number: i32) {}
        fn say_bye(&self) {}
    }
    impl Default for MyObject { fn default() -> Self { todo!() } }
}`)
	ctx := testutil.Context(t)

	first, err := Extract(ctx, module)
	require.NoError(t, err)
	second, err := Extract(ctx, module)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Describe(), second.Describe()); diff != "" {
		t.Errorf("second extraction differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, first, second)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    diagnostics.Kind
		message string
		line    int
		column  int
	}{
		{
			name:    "duplicate struct",
			src:     "mod m {\n    struct A;\n    impl A {}\n    use a::b;\n    struct B;\n}",
			kind:    diagnostics.DuplicateStruct,
			message: "only one struct is supported per module",
			line:    5, column: 5,
		},
		{
			name:    "impl before struct",
			src:     "mod m {\n    impl A {}\n    struct A;\n}",
			kind:    diagnostics.ImplBeforeStruct,
			message: "impl can only be declared after a struct",
			line:    2, column: 5,
		},
		{
			name:    "trait impl before struct",
			src:     "mod m {\n    impl Default for A {}\n    struct A;\n}",
			kind:    diagnostics.ImplBeforeStruct,
			message: "impl can only be declared after a struct",
			line:    2, column: 5,
		},
		{
			name:    "impl of another type",
			src:     "mod m { struct A; impl B {} }",
			kind:    diagnostics.ImplTargetMismatch,
			message: "the impl block needs to match the struct",
			line:    1, column: 24,
		},
		{
			name:    "trait impl of another type",
			src:     "mod m { struct A; impl Default for B {} }",
			kind:    diagnostics.ImplTargetMismatch,
			message: "the impl trait block needs to match the struct",
			line:    1, column: 36,
		},
		{
			name:    "impl on qualified path",
			src:     "mod m { struct A; impl a::A {} }",
			kind:    diagnostics.ImplTargetMismatch,
			message: "invalid path on impl block",
			line:    1, column: 19,
		},
		{
			name:    "impl on reference",
			src:     "mod m { struct A; impl &A {} }",
			kind:    diagnostics.ImplTargetMismatch,
			message: "expected a type path on impl block",
			line:    1, column: 19,
		},
		{
			name:    "free function",
			src:     "mod m { struct A; fn f() {} }",
			kind:    diagnostics.UnsupportedItem,
			message: "unsupported item in module",
			line:    1, column: 19,
		},
		{
			name:    "enum",
			src:     "mod m { struct A; pub enum E { X } }",
			kind:    diagnostics.UnsupportedItem,
			message: "unsupported item in module",
			line:    1, column: 19,
		},
		{
			name:    "missing struct",
			src:     "mod m { use a::b; }",
			kind:    diagnostics.MissingStruct,
			message: "there must be at least one struct per module",
			line:    1, column: 1,
		},
		{
			name:    "associated const",
			src:     "mod m { struct A; impl A { const X: u8 = 1; } }",
			kind:    diagnostics.UnsupportedMember,
			message: "only methods are supported in impl blocks",
			line:    1, column: 28,
		},
		{
			name:    "destructuring parameter",
			src:     "mod m { struct A; impl A { fn f(&self, (a, b): (u8, u8)) {} } }",
			kind:    diagnostics.InvalidParameterPattern,
			message: "invalid argument ident format",
			line:    1, column: 40,
		},
		{
			name:    "wildcard parameter",
			src:     "mod m { struct A; impl A { fn f(&self, _: u8) {} } }",
			kind:    diagnostics.InvalidParameterPattern,
			message: "invalid argument ident format",
			line:    1, column: 40,
		},
		{
			name:    "tuple parameter",
			src:     "mod m { struct A; impl A { fn f(&self, x: (u8, u8)) {} } }",
			kind:    diagnostics.UnresolvableType,
			message: "invalid argument type format",
			line:    1, column: 40,
		},
		{
			name:    "double reference parameter",
			src:     "mod m { struct A; impl A { fn f(&self, x: &&u8) {} } }",
			kind:    diagnostics.UnresolvableType,
			message: "invalid argument type format",
			line:    1, column: 40,
		},
		{
			name:    "generic parameter",
			src:     "mod m { struct A; impl A { fn f(&self, x: Vec<u8>) {} } }",
			kind:    diagnostics.UnresolvableType,
			message: "invalid argument type format",
			line:    1, column: 40,
		},
		{
			name:    "two segment parameter",
			src:     "mod m { struct A; impl A { fn f(&self, x: a::B) {} } }",
			kind:    diagnostics.QualifiedType,
			message: "argument type should only have one segment",
			line:    1, column: 40,
		},
		{
			name:    "tuple return",
			src:     "mod m { struct A; impl A { fn f(&self) -> (u8, u8) {} } }",
			kind:    diagnostics.UnresolvableType,
			message: "invalid return type format",
			line:    1, column: 40,
		},
		{
			name:    "qualified return",
			src:     "mod m { struct A; impl A { fn f(&self) -> std::string::String {} } }",
			kind:    diagnostics.QualifiedType,
			message: "return type should only have one segment",
			line:    1, column: 40,
		},
		{
			name:    "generic field",
			src:     "mod m { struct A { v: Vec<u8> } }",
			kind:    diagnostics.UnresolvableType,
			message: "invalid named field type format",
			line:    1, column: 20,
		},
		{
			name:    "qualified field",
			src:     "mod m { struct A { v: std::String } }",
			kind:    diagnostics.QualifiedType,
			message: "named field type should only have one segment",
			line:    1, column: 20,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			obj, err := Extract(testutil.Context(t), testutil.ParseModule(t, test.src))
			require.Error(t, err)
			assert.Nil(t, obj)
			assert.ErrorIs(t, err, diagnostics.ErrCompilerErrorFound)

			var diag *diagnostics.Diag
			require.ErrorAs(t, err, &diag)
			assert.Equal(t, test.kind, diag.Kind)
			assert.Equal(t, test.message, diag.Message)
			assert.Equal(t, test.line, diag.Pos.Line, "line")
			assert.Equal(t, test.column, diag.Pos.Column, "column")
			assert.Equal(t, testutil.DefaultFilename, diag.Pos.Filename)
		})
	}
}

func TestExtractFailsOnFirstError(t *testing.T) {
	// both the member and the later struct are invalid; the member comes first
	src := "mod m {\n    struct A;\n    impl A { type T = u8; }\n    struct B;\n}"
	_, err := Extract(testutil.Context(t), testutil.ParseModule(t, src))

	kind, ok := diagnostics.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, diagnostics.UnsupportedMember, kind)
}

func TestExtractNilModule(t *testing.T) {
	_, err := Extract(testutil.Context(t), nil)
	require.Error(t, err)
	_, ok := diagnostics.KindOf(err)
	assert.False(t, ok)
}

func TestExtractAll(t *testing.T) {
	ctx := testutil.Context(t)
	var modules []*ast.Module
	for i := range 8 {
		modules = append(modules, testutil.ParseModule(t, fmt.Sprintf(
			"mod m%d { struct T%d { v: i32 } impl T%d { fn get(&self) -> i32 { self.v } } }", i, i, i)))
	}

	objects, err := New(naming.Default()).ExtractAll(ctx, modules)
	require.NoError(t, err)
	require.Len(t, objects, len(modules))
	for i, obj := range objects {
		assert.Equal(t, fmt.Sprintf("m%d", i), obj.ModuleName)
		assert.Equal(t, fmt.Sprintf("T%dRs", i), obj.StorageName)
		assert.Len(t, obj.Invokables, 1)
	}
}

func TestExtractAllReturnsFailure(t *testing.T) {
	modules := []*ast.Module{
		testutil.ParseModule(t, "mod ok { struct A; }"),
		testutil.ParseModule(t, "mod bad { use a::b; }"),
	}

	objects, err := New(naming.Default()).ExtractAll(testutil.Context(t), modules)
	require.Error(t, err)
	assert.Nil(t, objects)

	kind, ok := diagnostics.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, diagnostics.MissingStruct, kind)
}
