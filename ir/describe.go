package ir

import (
	"io"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/HicaroD/objbridge/ast"
)

// Description is a handle-free rendering of an Object. Syntax handles are
// replaced by their source text so two descriptions compare by value.
type Description struct {
	Module     string                 `yaml:"module"`
	Type       string                 `yaml:"type"`
	Storage    string                 `yaml:"storage"`
	Properties []PropertyDescription  `yaml:"properties,omitempty"`
	Invokables []InvokableDescription `yaml:"invokables,omitempty"`
	TraitImpls []string               `yaml:"trait_impls,omitempty"`
	Imports    []string               `yaml:"imports,omitempty"`
}

type PropertyDescription struct {
	Name   string    `yaml:"name"`
	Type   string    `yaml:"type"`
	Getter *NamePair `yaml:"getter,omitempty"`
	Setter *NamePair `yaml:"setter,omitempty"`
	Notify *NamePair `yaml:"notify,omitempty"`
}

type InvokableDescription struct {
	Name       string                 `yaml:"name"`
	Parameters []ParameterDescription `yaml:"parameters,omitempty"`
	Return     string                 `yaml:"return,omitempty"`
	Signature  string                 `yaml:"signature,omitempty"`
}

type ParameterDescription struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

func (obj *Object) Describe() *Description {
	desc := &Description{
		Module:  obj.ModuleName,
		Type:    obj.TypeName,
		Storage: obj.StorageName,
	}

	for _, prop := range obj.Properties {
		desc.Properties = append(desc.Properties, PropertyDescription{
			Name:   prop.Name,
			Type:   prop.Type.String(),
			Getter: copyPair(prop.Getter),
			Setter: copyPair(prop.Setter),
			Notify: copyPair(prop.Notify),
		})
	}

	for _, inv := range obj.Invokables {
		invDesc := InvokableDescription{Name: inv.Name}
		for _, param := range inv.Parameters {
			invDesc.Parameters = append(invDesc.Parameters, ParameterDescription{
				Name: param.Name,
				Type: param.Type.String(),
			})
		}
		if inv.ReturnType != nil {
			invDesc.Return = inv.ReturnType.String()
		}
		if inv.Origin != nil {
			invDesc.Signature = inv.Origin.String()
		}
		desc.Invokables = append(desc.Invokables, invDesc)
	}

	for _, impl := range obj.TraitImpls {
		desc.TraitImpls = append(desc.TraitImpls, describeTraitImpl(impl))
	}
	for _, use := range obj.Imports {
		desc.Imports = append(desc.Imports, use.Tree())
	}

	return desc
}

func describeTraitImpl(impl *ast.ImplItem) string {
	if impl.Trait == nil {
		return impl.SelfType.String()
	}
	trait := impl.Trait.Path.String()
	if impl.Trait.Negative {
		trait = "!" + trait
	}
	return trait + " for " + impl.SelfType.String()
}

func copyPair(pair *NamePair) *NamePair {
	if pair == nil {
		return nil
	}
	copied := *pair
	return &copied
}

// EncodeYAML writes the description of obj to w.
func EncodeYAML(w io.Writer, obj *Object) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(obj.Describe()); err != nil {
		return errors.Errorf("encoding description of %s: %w", obj.TypeName, err)
	}
	if err := enc.Close(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// DecodeYAML reads a description written by EncodeYAML.
func DecodeYAML(r io.Reader) (*Description, error) {
	desc := new(Description)
	if err := yaml.NewDecoder(r).Decode(desc); err != nil {
		return nil, errors.Errorf("decoding description: %w", err)
	}
	return desc, nil
}
