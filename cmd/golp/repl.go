// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"nickandperla.net/golp/internal/config"
	"nickandperla.net/golp/pkg/golp"
)

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// runREPL evaluates one expression per line against the input file. Each
// expression gets a fresh engine over a re-opened file, since an
// invocation consumes its input stream.
func runREPL(path string, cfg config.Config) int {
	fmt.Printf("golp REPL over %s (Ctrl+D to exit)\n", path)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(">>> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return 0
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		rt := golp.New(
			golp.WithInput(f),
			golp.WithFilename(path),
			golp.WithFieldSeparator(cfg.FieldSeparator),
			golp.WithRecordSeparator(cfg.RecordSeparator),
			golp.WithInputFormat(cfg.InputFormat),
			golp.WithOutputFormat(cfg.OutputFormat),
		)
		if err := rt.Run(line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		rt.Close()
		f.Close()
	}
}
