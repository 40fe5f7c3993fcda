// Package config loads the shell's configuration file.
package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// DefaultConfigPath is where Load looks when no --config flag is set.
const DefaultConfigPath = ".goshrc.yaml"

type Configuration struct {
	// Prompt is the PS1 template used when the environment doesn't
	// provide one. Supports \u, \h, \w and \$.
	Prompt string `json:"prompt" validate:"required"`

	// DefaultPath seeds PATH when it is absent from the inherited
	// environment.
	DefaultPath string `json:"default_path" validate:"required"`

	// HistoryFile is where interactive history is persisted.
	// Empty disables persistence.
	HistoryFile string `json:"history_file"`

	// LogFile receives newline delimited JSON command logs.
	// Empty disables command logging.
	LogFile string `json:"log_file"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	// The embedded default must always parse.
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Load reads the configuration at path, falling back to the built-in
// default if the file doesn't exist.
func Load(vfs afero.Fs, path string) (*Configuration, error) {
	contents, err := afero.ReadFile(vfs, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Default(), nil
	case err != nil:
		return nil, err
	}

	out := Default()
	if err := yaml.UnmarshalStrict(contents, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
