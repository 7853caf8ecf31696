// Package confloader provides configuration loading mechanism.
package confloader

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "SNIPBOARD_"

// Loader loads configuration from multiple sources.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	overrides map[string]any
	envKeys   map[string]string // ENV_SUFFIX -> dotted.key
	sections  map[string]bool   // dotted keys of nested structs
	loaded    bool
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the configuration file path.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithOverrides sets values applied after the file and the environment,
// keyed by dotted path. Command-line flags use this.
func WithOverrides(values map[string]any) Option {
	return func(l *Loader) {
		l.overrides = values
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// ConfigFile returns the configured file path, if any.
func (l *Loader) ConfigFile() string {
	return l.filePath
}

// Load loads configuration from all sources and unmarshals into target.
// Fields of target not mentioned by any source keep their values, so
// callers pass a struct pre-filled with defaults.
func (l *Loader) Load(target any) error {
	l.k = koanf.New(".")
	l.envKeys = envKeyMap(reflect.TypeOf(target))
	l.sections = sectionSet(l.envKeys)

	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
	}

	if err := l.LoadEnv(); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if len(l.overrides) > 0 {
		if err := l.LoadMap(l.overrides); err != nil {
			return fmt.Errorf("load overrides: %w", err)
		}
	}

	if err := l.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	l.loaded = true
	return nil
}

// LoadFile loads configuration from a YAML file.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads configuration from environment variables.
//
// After the prefix, names are matched case-insensitively against the
// known keys with dots and underscores treated alike:
// SNIPBOARD_SERVER_HTTP_RATE_LIMIT -> server.http.rate_limit.
// Unknown names fall back to replacing every underscore with a dot.
// Names that resolve to a whole section (SNIPBOARD_SERVER, which the CLI
// uses for its own setting) are skipped.
func (l *Loader) LoadEnv() error {
	transform := func(s string) string {
		suffix := strings.ToUpper(strings.TrimPrefix(s, l.envPrefix))
		if key, ok := l.envKeys[suffix]; ok {
			return key
		}
		key := strings.ReplaceAll(strings.ToLower(suffix), "_", ".")
		if l.sections[key] {
			return ""
		}
		return key
	}

	if err := l.k.Load(env.Provider(l.envPrefix, ".", transform), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// LoadMap merges data, keyed by dotted path, over what is loaded so far.
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.k.Load(overrideProvider(data), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Unmarshal unmarshals the loaded configuration into the target struct.
// Uses koanf tags for struct field mapping. Slices and maps present in a
// source replace the target's values instead of merging with them.
func (l *Loader) Unmarshal(target any) error {
	return l.k.UnmarshalWithConf("", target, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           target,
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	})
}

// GetString returns a string value from the configuration.
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// IsLoaded returns true if configuration has been loaded.
func (l *Loader) IsLoaded() bool {
	return l.loaded
}

// Keys returns all configuration keys.
func (l *Loader) Keys() []string {
	return l.k.Keys()
}

// envKeyMap collects the dotted koanf keys of every leaf field of t and
// indexes them by their environment form (upper case, "." -> "_").
func envKeyMap(t reflect.Type) map[string]string {
	keys := make(map[string]string)
	collectKeys(t, "", keys)
	return keys
}

// sectionSet returns every proper prefix of the known keys.
func sectionSet(keys map[string]string) map[string]bool {
	out := make(map[string]bool)
	for _, key := range keys {
		for i := 0; i < len(key); i++ {
			if key[i] == '.' {
				out[key[:i]] = true
			}
		}
	}
	return out
}

func collectKeys(t reflect.Type, prefix string, out map[string]string) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := strings.Split(f.Tag.Get("koanf"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			collectKeys(ft, key, out)
			continue
		}
		out[strings.ToUpper(strings.ReplaceAll(key, ".", "_"))] = key
	}
}
