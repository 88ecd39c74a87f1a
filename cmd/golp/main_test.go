package main

import (
	"errors"
	"flag"
	"testing"

	"nickandperla.net/golp/internal/config"
	"nickandperla.net/golp/internal/engine"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"mixed scope", &engine.MixedScopeError{First: "record", Second: "records"}, 2},
		{"printer contract", &engine.PrinterContractError{Value: "5"}, 2},
		{"user program", &engine.UserProgramError{Err: errors.New("division by zero")}, 3},
		{"setup", errors.New("open data.txt: no such file"), 1},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("%s: exitCode = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	if code := run([]string{"-V"}); code != 0 {
		t.Errorf("-V exited %d", code)
	}
}

func TestApplyFlags(t *testing.T) {
	newFlags := func() *flag.FlagSet {
		fs := flag.NewFlagSet("golp", flag.ContinueOnError)
		fs.String("F", "", "")
		fs.String("R", "", "")
		fs.String("i", "", "")
		fs.String("o", "", "")
		return fs
	}

	base := config.Default()
	base.FieldSeparator = ";"
	base.InputFormat = "csv"

	// Unset flags keep config values.
	fs := newFlags()
	if err := fs.Parse([]string{"-o", "json"}); err != nil {
		t.Fatal(err)
	}
	cfg := applyFlags(base, fs)
	if cfg.FieldSeparator != ";" || cfg.InputFormat != "csv" {
		t.Errorf("unset flags should keep config: %+v", cfg)
	}
	if cfg.OutputFormat != "json" {
		t.Errorf("output format = %q, want json", cfg.OutputFormat)
	}

	// An explicit empty -F resets a config-set separator back to
	// whitespace splitting.
	fs = newFlags()
	if err := fs.Parse([]string{"-F", ""}); err != nil {
		t.Fatal(err)
	}
	cfg = applyFlags(base, fs)
	if cfg.FieldSeparator != "" {
		t.Errorf("explicit -F \"\" should override config, got %q", cfg.FieldSeparator)
	}
}
