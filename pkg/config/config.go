// Package config loads run settings from a modelprep.{yaml,toml,json}
// file, MODELPREP_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"strings"
	"unicode/utf8"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/wdm0006/modelprep/dataio"
)

const (
	Name      = "modelprep"
	EnvPrefix = "MODELPREP"
)

type Config struct {
	Input struct {
		Delimiter string   `mapstructure:"delimiter"`
		Sheet     string   `mapstructure:"sheet"`
		NAValues  []string `mapstructure:"na_values"`
		Strict    bool     `mapstructure:"strict"`
	} `mapstructure:"input"`
	Export struct {
		Format    string `mapstructure:"format"`
		Delimiter string `mapstructure:"delimiter"`
	} `mapstructure:"export"`
	Pipeline struct {
		MaxAttempts int `mapstructure:"max_attempts"`
	} `mapstructure:"pipeline"`
	Display struct {
		HeadRows int `mapstructure:"head_rows"`
	} `mapstructure:"display"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// New returns a viper instance with every default set and environment
// lookup enabled. Keys use dots; MODELPREP_EXPORT_FORMAT maps to
// export.format.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("input.delimiter", "")
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.strict", false)
	v.SetDefault("export.format", string(dataio.CSV))
	v.SetDefault("export.delimiter", ",")
	v.SetDefault("pipeline.max_attempts", 5)
	v.SetDefault("display.head_rows", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads path, or when path is empty searches the working
// directory and the home directory for modelprep.*. A missing search
// result is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		return errors.Wrapf(v.ReadInConfig(), "config %s", path)
	}
	v.SetConfigName(Name)
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return errors.Wrap(err, "config")
	}
	return nil
}

// Load decodes v and checks the result.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if _, err := ParseDelimiter(c.Input.Delimiter); err != nil {
		return errors.Wrap(err, "input.delimiter")
	}
	if _, err := ParseDelimiter(c.Export.Delimiter); err != nil {
		return errors.Wrap(err, "export.delimiter")
	}
	switch dataio.Format(c.Export.Format) {
	case dataio.CSV, dataio.Parquet, dataio.XLSX:
	default:
		return errors.Errorf("export.format: unsupported %q", c.Export.Format)
	}
	if c.Pipeline.MaxAttempts < 1 {
		return errors.New("pipeline.max_attempts must be at least 1")
	}
	if c.Display.HeadRows < 1 {
		return errors.New("display.head_rows must be at least 1")
	}
	return nil
}

// LoadOptions converts the input section. Validate must have passed.
func (c *Config) LoadOptions() dataio.LoadOptions {
	d, _ := ParseDelimiter(c.Input.Delimiter)
	return dataio.LoadOptions{Delimiter: d, Sheet: c.Input.Sheet, NAValues: c.Input.NAValues, Strict: c.Input.Strict}
}

func (c *Config) ExportOptions() dataio.ExportOptions {
	d, _ := ParseDelimiter(c.Export.Delimiter)
	return dataio.ExportOptions{Format: dataio.Format(c.Export.Format), Delimiter: d}
}

// ParseDelimiter accepts a single character, "tab" or a literal \t.
// Empty returns 0.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || n != len(s) {
		return 0, errors.Errorf("delimiter %q must be a single character", s)
	}
	if r == '"' || r == '\n' || r == '\r' {
		return 0, errors.Errorf("delimiter %q is not allowed", s)
	}
	return r, nil
}
