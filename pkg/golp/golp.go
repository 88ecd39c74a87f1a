// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package golp

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"nickandperla.net/golp/internal/engine"
	"nickandperla.net/golp/internal/eval"
	"nickandperla.net/golp/internal/format"
	"nickandperla.net/golp/internal/input"
	"nickandperla.net/golp/internal/store"
)

// Runtime runs user programs over record streams.
type Runtime struct {
	input        io.Reader
	output       io.Writer
	filename     string
	fieldSep     string
	recordSep    string
	inputFormat  string
	outputFormat string
	history      store.Store
	historyErr   error
}

// New creates a runtime with the given options.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		input:        os.Stdin,
		output:       os.Stdout,
		recordSep:    "\n",
		inputFormat:  "awk",
		outputFormat: "auto",
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Run executes one program over the runtime's input and renders the
// result to its output. The input stream is consumed; create a fresh
// runtime (or reset the reader) to run again.
func (rt *Runtime) Run(prog string) error {
	started := time.Now().UTC()

	parser, err := input.New(rt.inputFormat, rt.recordSep, rt.fieldSep)
	if err != nil {
		return err
	}
	producer, err := parser.Records(rt.input)
	if err != nil {
		return err
	}

	tty := format.IsTTY(rt.output)
	printer, err := format.New(rt.outputFormat, rt.output, tty)
	if err != nil {
		return err
	}

	bindings := make(map[string]eval.Value)
	for name, pv := range format.Bindings(rt.output, tty) {
		bindings[name] = pv
	}

	eng := engine.New(engine.Options{
		Source:    producer,
		Filename:  rt.filename,
		Printer:   eval.PrinterVal{Name: rt.outputFormat, P: printer},
		Bindings:  bindings,
		RecordSep: rt.recordSep,
	})
	runErr := eng.Run(prog)

	rt.record(started, prog, runErr)
	return runErr
}

// History returns the run-history store, nil when recording is off.
func (rt *Runtime) History() store.Store {
	return rt.history
}

// Close releases resources.
func (rt *Runtime) Close() error {
	if rt.history != nil {
		return rt.history.Close()
	}
	return nil
}

// record appends the run to history. Best effort: a history failure
// never fails the run.
func (rt *Runtime) record(started time.Time, prog string, runErr error) {
	if rt.history == nil {
		if rt.historyErr != nil {
			fmt.Fprintf(os.Stderr, "golp: history: %v\n", rt.historyErr)
			rt.historyErr = nil
		}
		return
	}
	outcome := "ok"
	if runErr != nil {
		outcome = runErr.Error()
	}
	err := rt.history.Append(store.Entry{
		RunID:        uuid.NewString(),
		Ts:           started.Format(time.RFC3339),
		Program:      prog,
		InputFormat:  rt.inputFormat,
		OutputFormat: rt.outputFormat,
		Outcome:      outcome,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "golp: history: %v\n", err)
	}
}
