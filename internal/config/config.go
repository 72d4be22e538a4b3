package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"kizhi/pkg/interpreter"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no -config flag is given, if it exists
const DefaultPath = "kizhi.yaml"

// Config holds interpreter and CLI settings loaded from YAML
type Config struct {
	Verbose           bool   `yaml:"verbose"`            // debug logging
	NoColor           bool   `yaml:"no_color"`           // plain output
	MaxSteps          int    `yaml:"max_steps"`          // step limit per run, 0 = unlimited
	NotFoundMessage   string `yaml:"not_found_message"`  // missing-variable diagnostic
	AllowRedefinition bool   `yaml:"allow_redefinition"` // later def wins over an earlier one
}

func Default() Config {
	return Config{
		MaxSteps:        100000,
		NotFoundMessage: interpreter.DefaultNotFoundMessage,
	}
}

// Load reads path. A missing file yields the defaults when optional is set.
func Load(path string, optional bool) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of the defaults, rejecting unknown keys
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	if cfg.MaxSteps < 0 {
		return Config{}, fmt.Errorf("max_steps must not be negative, got %d", cfg.MaxSteps)
	}
	if cfg.NotFoundMessage == "" {
		cfg.NotFoundMessage = interpreter.DefaultNotFoundMessage
	}

	return cfg, nil
}

// Options translates the config into interpreter options
func (c Config) Options() []interpreter.Option {
	return []interpreter.Option{
		interpreter.WithMaxSteps(c.MaxSteps),
		interpreter.WithNotFoundMessage(c.NotFoundMessage),
		interpreter.WithRedefinition(c.AllowRedefinition),
	}
}
