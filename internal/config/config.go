// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads holologin settings.
//
// Values are layered with koanf: flag defaults, then the YAML config file,
// then flags set explicitly on the command line.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/holologin/internal/logging"
)

// Default values for flags.
const (
	DefaultMenuLocale      = "en"
	DefaultMessageNewlines = 1
	DefaultLogFormat       = logging.FormatText
	DefaultLogLevel        = "info"
)

// Config holds every runtime setting.
type Config struct {
	MenuLocale string        `koanf:"menu_locale"`
	CatalogDir string        `koanf:"catalog_dir"`
	Captcha    CaptchaConfig `koanf:"captcha"`
	Output     OutputConfig  `koanf:"output"`
	Log        LogConfig     `koanf:"log"`
	Metrics    MetricsConfig `koanf:"metrics"`
}

// CaptchaConfig controls captcha generation.
type CaptchaConfig struct {
	// Seed fixes the random sequence; zero seeds from the clock.
	Seed uint64 `koanf:"seed"`
}

// OutputConfig controls console presentation.
type OutputConfig struct {
	// MessageNewlines is the number of newlines written after each
	// login-flow message.
	MessageNewlines int `koanf:"message_newlines"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
	File   string `koanf:"file"`
}

// MetricsConfig controls metric export.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"menu-locale":      "menu_locale",
	"catalog-dir":      "catalog_dir",
	"captcha-seed":     "captcha.seed",
	"message-newlines": "output.message_newlines",
	"log-format":       "log.format",
	"log-level":        "log.level",
	"log-file":         "log.file",
	"metrics-textfile": "metrics.textfile",
}

// RegisterFlags adds every config flag, with its default, to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("menu-locale", DefaultMenuLocale, "language of the top-level menu (vi or en)")
	flags.String("catalog-dir", "", "directory of <locale>.yaml catalogs (default: built-in catalogs)")
	flags.Uint64("captcha-seed", 0, "fixed captcha random seed (0 = seed from clock)")
	flags.Int("message-newlines", DefaultMessageNewlines, "newlines written after each login message")
	flags.String("log-format", DefaultLogFormat, "log format (json or text)")
	flags.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("log-file", "", "append logs to this file (default: logging disabled)")
	flags.String("metrics-textfile", "", "write Prometheus metrics to this file on exit")
}

// Load builds a Config from the file at path and the flags in flags. When
// required is false a missing file is skipped; otherwise it is an error.
func Load(flags *pflag.FlagSet, path string, required bool) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, oops.Code("CONFIG_INVALID").With("path", path).Wrapf(err, "load config file")
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
			// optional default file is absent
		default:
			return nil, oops.Code("CONFIG_NOT_FOUND").With("path", path).Wrapf(err, "stat config file")
		}
	}

	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrapf(err, "load flags")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrapf(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.MenuLocale != "vi" && c.MenuLocale != "en" {
		return oops.Code("CONFIG_INVALID").With("menu_locale", c.MenuLocale).
			Errorf("menu_locale must be 'vi' or 'en', got %q", c.MenuLocale)
	}
	if c.Output.MessageNewlines < 0 {
		return oops.Code("CONFIG_INVALID").With("message_newlines", c.Output.MessageNewlines).
			Errorf("output.message_newlines cannot be negative")
	}
	if c.Log.Format != logging.FormatJSON && c.Log.Format != logging.FormatText {
		return oops.Code("CONFIG_INVALID").With("format", c.Log.Format).
			Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return oops.Code("CONFIG_INVALID").With("level", c.Log.Level).
			Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}
