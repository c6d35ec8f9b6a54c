package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Option adjusts how Load parses the environment.
type Option func(*env.Options)

// WithPrefix only considers variables starting with prefix; the prefix is
// stripped before matching field tags.
func WithPrefix(prefix string) Option {
	return func(o *env.Options) {
		o.Prefix = prefix
	}
}

// WithEnvironment parses vars instead of the process environment.
// The default .env file is still loaded, but its values are not consulted.
func WithEnvironment(vars map[string]string) Option {
	return func(o *env.Options) {
		o.Environment = vars
	}
}

// WithRequired treats every field without a default as required.
func WithRequired() Option {
	return func(o *env.Options) {
		o.RequiredIfNoDef = true
	}
}

// Load parses environment variables into v based on `env` struct tags.
//
// The .env file in the working directory is loaded once per process the first
// time Load is called; a missing file is fine and variables that are already
// set always win. os.FileMode fields are parsed as octal ("0750").
//
// Example:
//
//	type StorageConfig struct {
//		Dir     string      `env:"UPLOAD_DIR" envDefault:"MyUploads"`
//		DirPerm os.FileMode `env:"UPLOAD_DIR_PERM" envDefault:"0755"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	options := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(os.FileMode(0)): parseFileMode,
		},
	}
	for _, opt := range opts {
		opt(&options)
	}

	if err := env.ParseWithOptions(v, options); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure.
// Use it for configuration the process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment without
// overriding variables that are already set. Earlier files take precedence.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("%w: %v", ErrLoadingEnvFile, err)
	}
	return nil
}

func parseFileMode(s string) (any, error) {
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	return os.FileMode(n), nil
}
