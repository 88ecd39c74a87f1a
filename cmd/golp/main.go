// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Command golp evaluates one expression against tabular input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"

	"nickandperla.net/golp/internal/config"
	"nickandperla.net/golp/internal/engine"
	"nickandperla.net/golp/internal/format"
	"nickandperla.net/golp/internal/input"
	"nickandperla.net/golp/internal/store"
	"nickandperla.net/golp/pkg/golp"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// GOLP_OPTS contributes leading arguments, so defaults set there can
	// still be overridden on the command line.
	if env := os.Getenv("GOLP_OPTS"); env != "" {
		extra, err := shellquote.Split(env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "golp: GOLP_OPTS: %v\n", err)
			return 1
		}
		args = append(extra, args...)
	}

	fs := flag.NewFlagSet("golp", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: golp [flags] 'prog' [input-file]\n")
		fs.PrintDefaults()
	}
	fs.String("F", "", "field separator (empty: whitespace; multi-char: regexp)")
	fs.String("R", "", "record separator")
	fs.String("i", "", "input format: "+strings.Join(input.Formats(), ", "))
	fs.String("o", "", "output format: "+strings.Join(format.Formats(), ", "))
	var (
		configPath  = fs.String("config", "", "config file path")
		historyN    = fs.Int("history", 0, "print the N most recent runs and exit")
		noHistory   = fs.Bool("no-history", false, "do not record this run")
		showVersion = fs.Bool("V", false, "print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *showVersion {
		fmt.Println("golp " + version)
		return 0
	}

	cfgPath := *configPath
	if cfgPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			cfgPath = p
		}
	}
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "golp: %v\n", err)
			return 1
		}
	}

	cfg = applyFlags(cfg, fs)

	historyPath := cfg.HistoryPath
	if historyPath == "" {
		if p, err := config.DefaultHistoryPath(); err == nil {
			historyPath = p
		}
	}

	if *historyN > 0 {
		return printHistory(historyPath, *historyN)
	}

	rest := fs.Args()
	switch len(rest) {
	case 0:
		fs.Usage()
		return 1
	case 1:
		// A lone positional naming a readable file starts the REPL; a
		// program runs over stdin.
		if fileExists(rest[0]) && stdinIsTerminal() {
			return runREPL(rest[0], cfg)
		}
		return runOne(cfg, rest[0], "", *noHistory, historyPath)
	case 2:
		return runOne(cfg, rest[0], rest[1], *noHistory, historyPath)
	}
	fs.Usage()
	return 1
}

// applyFlags layers the flags the user actually passed over the config.
// Keyed on fs.Visit rather than the flag values: comparing to the zero
// value would make an explicit -F "" indistinguishable from an unset
// flag, so a config-set separator could never be reset.
func applyFlags(cfg config.Config, fs *flag.FlagSet) config.Config {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "F":
			cfg.FieldSeparator = f.Value.String()
		case "R":
			cfg.RecordSeparator = f.Value.String()
		case "i":
			cfg.InputFormat = f.Value.String()
		case "o":
			cfg.OutputFormat = f.Value.String()
		}
	})
	return cfg
}

func runOne(cfg config.Config, prog, path string, noHistory bool, historyPath string) int {
	var in io.Reader = os.Stdin
	filename := "<stdin>"
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "golp: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
		filename = path
	}

	opts := []golp.Option{
		golp.WithInput(in),
		golp.WithFilename(filename),
		golp.WithFieldSeparator(cfg.FieldSeparator),
		golp.WithRecordSeparator(cfg.RecordSeparator),
		golp.WithInputFormat(cfg.InputFormat),
		golp.WithOutputFormat(cfg.OutputFormat),
	}
	if !noHistory && cfg.HistoryEnabled() && historyPath != "" {
		opts = append(opts, golp.WithSQLiteHistory(historyPath))
	}

	rt := golp.New(opts...)
	defer rt.Close()

	if err := rt.Run(prog); err != nil {
		fmt.Fprintf(os.Stderr, "golp: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps error kinds to exit statuses: 2 for programs that break
// the evaluation contract, 3 for failures inside the user program, 1 for
// everything else.
func exitCode(err error) int {
	var mixed *engine.MixedScopeError
	var contract *engine.PrinterContractError
	if errors.As(err, &mixed) || errors.As(err, &contract) {
		return 2
	}
	var uerr *engine.UserProgramError
	if errors.As(err, &uerr) {
		return 3
	}
	return 1
}

func printHistory(path string, n int) int {
	s, err := store.NewSQLite(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "golp: history: %v\n", err)
		return 1
	}
	defer s.Close()

	entries, err := s.Recent(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "golp: history: %v\n", err)
		return 1
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  %-4s %-4s  %q  %s\n",
			e.Ts, e.RunID, e.InputFormat, e.OutputFormat, e.Program, e.Outcome)
	}
	return 0
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
