// config.go
//
// CLI-facing configuration for cmd/whilec: dialect gating, display
// format, and indent width, loadable from an optional .whilec.toml so a
// project directory can pin its own defaults rather than repeating flags
// on every invocation.
package corewhile

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the CLI's resolved configuration. The zero value is not
// valid for use; call DefaultConfig or LoadConfig.
type Config struct {
	PureOnly bool   `toml:"pure_only"`
	Format   string `toml:"format"`
	Indent   int    `toml:"indent"`
}

// DefaultConfig returns the built-in defaults: pure_only off,
// HWHILE display, 4-space indent.
func DefaultConfig() Config {
	return Config{PureOnly: false, Format: "hwhile", Indent: 4}
}

// LoadConfig reads path (typically ".whilec.toml") over DefaultConfig's
// values. A missing file is not an error; it just means the defaults
// stand unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParserOptions converts cfg into the Options value Parse expects.
func (cfg Config) ParserOptions() Options {
	return Options{PureOnly: cfg.PureOnly}
}

// DisplayFormat converts cfg into the Format value DisplayPAD expects,
// honoring Indent for either dialect.
func (cfg Config) DisplayFormat() Format {
	f := FormatHWHILE
	if cfg.Format == "pure" {
		f = FormatPURE
	}
	f.IndentWidth = cfg.Indent
	return f
}
