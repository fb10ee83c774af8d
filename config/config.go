// Package config loads and saves naming conventions. Files may be written in
// CUE, YAML, TOML or JSON; environment variables prefixed with OBJBRIDGE_
// override any file value.
package config

import (
	"context"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/HicaroD/objbridge/naming"
)

const EnvPrefix = "OBJBRIDGE"

//go:embed conventions_schema.cue
var conventionsSchema string

var ErrUnsupportedFormat = errors.Base("unsupported config format")

type LoadOptions struct {
	// Path is the configuration file to read. When empty only defaults and
	// environment overrides apply.
	Path string
}

// Load resolves naming conventions from defaults, the optional file at
// opts.Path and the environment, in increasing order of precedence.
func Load(ctx context.Context, opts LoadOptions) (naming.Conventions, error) {
	v := viper.New()
	setDefaults(v, naming.Default())
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if opts.Path != "" {
		ctx = slogctx.Append(ctx, "config", opts.Path)
		var err error
		switch extension(opts.Path) {
		case "cue":
			err = loadCUEIntoViper(v, opts.Path)
		case "yaml", "yml", "toml", "json":
			v.SetConfigFile(opts.Path)
			err = v.ReadInConfig()
		default:
			err = errors.Errorf("%w: %s", ErrUnsupportedFormat, opts.Path)
		}
		if err != nil {
			return naming.Conventions{}, errors.Errorf("loading %s: %w", opts.Path, err)
		}
		slogctx.Debug(ctx, "loaded naming conventions")
	}

	var conv naming.Conventions
	if err := v.Unmarshal(&conv); err != nil {
		return naming.Conventions{}, errors.Errorf("decoding conventions: %w", err)
	}
	if err := Validate(conv); err != nil {
		return naming.Conventions{}, err
	}
	return conv, nil
}

func setDefaults(v *viper.Viper, conv naming.Conventions) {
	v.SetDefault("storage_suffix", conv.StorageSuffix)
	v.SetDefault("getter_prefix", conv.GetterPrefix)
	v.SetDefault("setter_prefix", conv.SetterPrefix)
	v.SetDefault("setter_source_prefix", conv.SetterSourcePrefix)
	v.SetDefault("notify_suffix", conv.NotifySuffix)
}

// loadCUEIntoViper compiles a CUE file, checks it against #Conventions and
// merges the result over the defaults already held by v.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}

	cctx := cuecontext.New()
	schema, err := compileSchema(cctx)
	if err != nil {
		return err
	}

	user := cctx.CompileBytes(data, cue.Filename(path))
	if user.Err() != nil {
		return errors.WithStack(user.Err())
	}

	unified := schema.Unify(user)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return errors.WithStack(err)
	}

	var values map[string]any
	if err := unified.Decode(&values); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(v.MergeConfigMap(values))
}

func compileSchema(cctx *cue.Context) (cue.Value, error) {
	schema := cctx.CompileString(conventionsSchema)
	if schema.Err() != nil {
		return cue.Value{}, errors.Errorf("compiling conventions schema: %w", schema.Err())
	}
	return schema.LookupPath(cue.ParsePath("#Conventions")), nil
}

// Validate checks conv against the conventions schema. Every name must be
// an identifier fragment and the storage suffix may not be empty.
func Validate(conv naming.Conventions) error {
	cctx := cuecontext.New()
	schema, err := compileSchema(cctx)
	if err != nil {
		return err
	}
	value := schema.Unify(cctx.Encode(conv))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return errors.Errorf("invalid conventions: %w", err)
	}
	return nil
}

// Save writes conv to path in the format named by its extension.
func Save(path string, conv naming.Conventions) error {
	if err := Validate(conv); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch extension(path) {
	case "cue":
		data, err = encodeCUE(conv)
	case "yaml", "yml":
		data, err = yaml.Marshal(conv)
	case "toml":
		data, err = toml.Marshal(conv)
	case "json":
		data, err = json.MarshalIndent(conv, "", "  ")
		data = append(data, '\n')
	default:
		return errors.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return errors.Errorf("encoding %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func encodeCUE(conv naming.Conventions) ([]byte, error) {
	value := cuecontext.New().Encode(conv)
	if value.Err() != nil {
		return nil, errors.WithStack(value.Err())
	}
	node := value.Syntax()
	if lit, ok := node.(*ast.StructLit); ok {
		node = &ast.File{Decls: lit.Elts}
	}
	data, err := format.Node(node)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
