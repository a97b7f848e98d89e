package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	// ErrInvalidConfig is returned when the provided config is not a pointer to a struct
	// that embeds EnvConfig.
	ErrInvalidConfig = errors.New("config must be a pointer to a struct embedding EnvConfig")

	// ErrVarNotSet is returned when a required environment variable is not set and has no default.
	ErrVarNotSet = errors.New("env var not set")

	// ErrUnsupportedVarType is returned when trying to parse an environment variable
	// into an unsupported Go type.
	ErrUnsupportedVarType = errors.New("unsupported env var type")
)

//nolint:gochecknoglobals
var (
	durationType  = reflect.TypeOf(time.Duration(0))
	envConfigType = reflect.TypeOf(EnvConfig{})
)

// EnvConfig is a base type that must be embedded in configuration structs
// to enable environment variable parsing.
type EnvConfig struct {
	namespace string
}

// Namespace returns the prefix the config was parsed with.
func (c EnvConfig) Namespace() string {
	return c.namespace
}

func getEnvConfig(cfg any) (*EnvConfig, error) {
	ptr := reflect.ValueOf(cfg)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Struct {
		return nil, ErrInvalidConfig
	}

	for _, field := range reflect.VisibleFields(ptr.Elem().Type()) {
		if field.Anonymous && field.Type == envConfigType {
			//nolint:forcetypeassert
			return ptr.Elem().FieldByIndex(field.Index).Addr().Interface().(*EnvConfig), nil
		}
	}

	return nil, ErrInvalidConfig
}

// Load reads the given dotenv files into the process environment and then calls Parse.
// Variables already present in the environment win over the files.
// Missing files are skipped, so a checkout without a .env still starts with defaults.
func Load(ctx context.Context, cfg any, namespace string, files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return fmt.Errorf("load %s: %w", file, err)
		}
	}

	return Parse(ctx, cfg, namespace)
}

// Parse fills cfg, a pointer to a struct embedding EnvConfig, from the environment.
// Fields name their variable with `env` and may carry a `default`; nested structs add
// their `envPrefix`. A variable is looked up under the full namespace first, then under
// each shorter "_"-separated prefix, then without one.
// Supported kinds: string, []string (comma separated), ints, floats, bool, time.Duration.
func Parse(ctx context.Context, cfg any, namespace string) error {
	envConfig, err := getEnvConfig(cfg)
	if err != nil {
		return fmt.Errorf("get env config: %w", err)
	}

	envConfig.namespace = namespace

	return parse(namespace, "", cfg)
}

func parse(namespace, prefix string, cfg any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := range t.NumField() {
		field := t.Field(i)
		value := v.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if field.Type == envConfigType {
				continue
			}

			if err := parse(namespace, prefix+field.Tag.Get("envPrefix"), value.Addr().Interface()); err != nil {
				return err
			}

			continue
		}

		name, ok := field.Tag.Lookup("env")
		if !ok || name == "" {
			continue
		}

		raw, err := resolve(namespace, prefix+name, field.Tag)
		if err != nil {
			return err
		}

		if err := assign(value, raw); err != nil {
			return fmt.Errorf("parse %s: %w", prefix+name, err)
		}
	}

	return nil
}

// resolve returns the value of key under the longest matching namespace prefix,
// falling back to the default tag.
func resolve(namespace, key string, tag reflect.StructTag) (string, error) {
	parts := strings.Split(namespace, "_")

	for i := len(parts); i > 0; i-- {
		name := strings.Join(parts[:i], "_")
		if name != "" {
			name += "_"
		}

		if value, ok := os.LookupEnv(name + key); ok {
			return value, nil
		}
	}

	if value, ok := tag.Lookup("default"); ok {
		return value, nil
	}

	return "", fmt.Errorf("%w: %s", ErrVarNotSet, key)
}

type setter func(value reflect.Value, raw string) error

//nolint:gochecknoglobals
var setters = map[reflect.Kind]setter{
	reflect.String: func(value reflect.Value, raw string) error {
		value.SetString(raw)

		return nil
	},
	reflect.Int:     setInt,
	reflect.Int8:    setInt,
	reflect.Int16:   setInt,
	reflect.Int32:   setInt,
	reflect.Int64:   setInt,
	reflect.Float32: setFloat,
	reflect.Float64: setFloat,
	reflect.Bool: func(value reflect.Value, raw string) error {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err //nolint:wrapcheck
		}

		value.SetBool(b)

		return nil
	},
}

func assign(value reflect.Value, raw string) error {
	switch {
	case value.Type() == durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err //nolint:wrapcheck
		}

		value.SetInt(int64(d))

		return nil
	case value.Kind() == reflect.Slice && value.Type().Elem().Kind() == reflect.String:
		value.Set(reflect.ValueOf(splitList(raw)).Convert(value.Type()))

		return nil
	}

	set, ok := setters[value.Kind()]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnsupportedVarType, value.Type())
	}

	return set(value, raw)
}

func setInt(value reflect.Value, raw string) error {
	n, err := strconv.ParseInt(raw, 10, value.Type().Bits())
	if err != nil {
		return err //nolint:wrapcheck
	}

	value.SetInt(n)

	return nil
}

func setFloat(value reflect.Value, raw string) error {
	f, err := strconv.ParseFloat(raw, value.Type().Bits())
	if err != nil {
		return err //nolint:wrapcheck
	}

	value.SetFloat(f)

	return nil
}

// splitList reads a comma separated list, dropping empty items.
func splitList(raw string) []string {
	items := make([]string, 0)

	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
