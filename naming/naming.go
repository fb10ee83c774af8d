// Package naming holds the conventions used to derive generated identifiers
// from source identifiers: the internal storage suffix and the accessor,
// mutator and change-notification spellings of a property.
package naming

import (
	"strings"

	"github.com/stoewer/go-strcase"
)

const (
	DefaultStorageSuffix      = "Rs"
	DefaultGetterPrefix       = "get"
	DefaultSetterPrefix       = "set"
	DefaultSetterSourcePrefix = "set_"
	DefaultNotifySuffix       = "Changed"
)

// Conventions is a pure value; extraction never reads conventions from
// anywhere but the value it is given.
type Conventions struct {
	StorageSuffix      string `mapstructure:"storage_suffix" yaml:"storage_suffix" toml:"storage_suffix" json:"storage_suffix"`
	GetterPrefix       string `mapstructure:"getter_prefix" yaml:"getter_prefix" toml:"getter_prefix" json:"getter_prefix"`
	SetterPrefix       string `mapstructure:"setter_prefix" yaml:"setter_prefix" toml:"setter_prefix" json:"setter_prefix"`
	SetterSourcePrefix string `mapstructure:"setter_source_prefix" yaml:"setter_source_prefix" toml:"setter_source_prefix" json:"setter_source_prefix"`
	NotifySuffix       string `mapstructure:"notify_suffix" yaml:"notify_suffix" toml:"notify_suffix" json:"notify_suffix"`
}

func Default() Conventions {
	return Conventions{
		StorageSuffix:      DefaultStorageSuffix,
		GetterPrefix:       DefaultGetterPrefix,
		SetterPrefix:       DefaultSetterPrefix,
		SetterSourcePrefix: DefaultSetterSourcePrefix,
		NotifySuffix:       DefaultNotifySuffix,
	}
}

// StorageName is the identifier of the backing storage type of typeName.
func (c Conventions) StorageName(typeName string) string {
	return typeName + c.StorageSuffix
}

// Getter returns the foreign and source spellings of field's accessor.
func (c Conventions) Getter(field string) (target, source string) {
	return c.GetterPrefix + Title(field), Snake(field)
}

// Setter returns the foreign and source spellings of field's mutator.
func (c Conventions) Setter(field string) (target, source string) {
	return c.SetterPrefix + Title(field), c.SetterSourcePrefix + Snake(field)
}

// Notify returns the foreign and source spellings of field's change signal.
func (c Conventions) Notify(field string) (target, source string) {
	return Camel(field) + c.NotifySuffix, Snake(field)
}

// Title converts an identifier to UpperCamelCase: "my_value" -> "MyValue".
func Title(ident string) string { return strcase.UpperCamelCase(words(ident)) }

// Snake converts an identifier to snake_case: "myValue" -> "my_value".
func Snake(ident string) string { return strcase.SnakeCase(words(ident)) }

// Camel converts an identifier to lowerCamelCase: "my_value" -> "myValue".
func Camel(ident string) string { return strcase.LowerCamelCase(words(ident)) }

// words drops the underscores that do not separate two words, so
// "_private" and "private_" both case like "private".
func words(ident string) string {
	var parts []string
	for _, part := range strings.Split(ident, "_") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return ident
	}
	return strings.Join(parts, "_")
}
