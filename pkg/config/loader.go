package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadOption configures Load and LoadFile.
type LoadOption func(*loadOptions)

type loadOptions struct {
	envFiles    []string
	environment map[string]string
}

// WithEnvFiles loads the given dotenv files instead of the optional ".env".
// Listed files must exist.
func WithEnvFiles(files ...string) LoadOption {
	return func(o *loadOptions) { o.envFiles = append(o.envFiles, files...) }
}

// WithEnvironment replaces the process environment, mainly for tests.
// Dotenv files are not read when it is set.
func WithEnvironment(vars map[string]string) LoadOption {
	return func(o *loadOptions) { o.environment = vars }
}

// Load reads the configuration from dotenv files and the environment.
func Load(opts ...LoadOption) (Config, error) {
	cfg := Default()
	if err := applyEnv(&cfg, opts); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML file and applies environment overrides on top.
func LoadFile(path string, opts ...LoadOption) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrReadingFile, err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrReadingFile, path, err)
	}

	if err := applyEnv(&cfg, opts); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure.
func MustLoad(opts ...LoadOption) Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load paymill configuration: %v", err))
	}
	return cfg
}

// applyEnv overwrites only the fields whose variables are set.
func applyEnv(cfg *Config, opts []LoadOption) error {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	envOpts := env.Options{}
	if o.environment != nil {
		envOpts.Environment = o.environment
	} else if err := loadDotenv(o.envFiles); err != nil {
		return err
	}

	if err := env.ParseWithOptions(cfg, envOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

func loadDotenv(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: .env: %w", ErrReadingFile, err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("%w: %w", ErrReadingFile, err)
	}
	return nil
}
