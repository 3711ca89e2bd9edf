package corewhile

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_Config_DefaultsWhenFileAbsent(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func Test_Config_LoadsOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".whilec.toml")
	contents := "pure_only = true\nformat = \"pure\"\nindent = 2\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.PureOnly || cfg.Format != "pure" || cfg.Indent != 2 {
		t.Fatalf("got %+v", cfg)
	}
}

func Test_Config_ParserOptions(t *testing.T) {
	cfg := Config{PureOnly: true}
	if opts := cfg.ParserOptions(); !opts.PureOnly {
		t.Fatalf("ParserOptions did not carry PureOnly through")
	}
}

func Test_Config_DisplayFormat(t *testing.T) {
	cfg := Config{Format: "pure", Indent: 8}
	f := cfg.DisplayFormat()
	if f.TokenPrefix != "" || f.IndentWidth != 8 {
		t.Fatalf("got %+v", f)
	}
	cfg2 := Config{Format: "hwhile", Indent: 4}
	f2 := cfg2.DisplayFormat()
	if f2.TokenPrefix != "@" || f2.IndentWidth != 4 {
		t.Fatalf("got %+v", f2)
	}
}
