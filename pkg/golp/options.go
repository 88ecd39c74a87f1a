// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package golp provides the public API for the golp record processor.
package golp

import (
	"io"

	"nickandperla.net/golp/internal/store"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithInput sets the input stream. Defaults to standard input.
func WithInput(r io.Reader) Option {
	return func(rt *Runtime) {
		rt.input = r
	}
}

// WithOutput sets the output writer. Defaults to standard output.
func WithOutput(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.output = w
	}
}

// WithFilename sets the name bound to the filename variable.
func WithFilename(name string) Option {
	return func(rt *Runtime) {
		rt.filename = name
	}
}

// WithFieldSeparator sets the input field separator.
func WithFieldSeparator(sep string) Option {
	return func(rt *Runtime) {
		rt.fieldSep = sep
	}
}

// WithRecordSeparator sets the input record separator.
func WithRecordSeparator(sep string) Option {
	return func(rt *Runtime) {
		rt.recordSep = sep
	}
}

// WithInputFormat sets the input format name.
func WithInputFormat(name string) Option {
	return func(rt *Runtime) {
		rt.inputFormat = name
	}
}

// WithOutputFormat sets the output format name.
func WithOutputFormat(name string) Option {
	return func(rt *Runtime) {
		rt.outputFormat = name
	}
}

// WithHistory records completed runs to the given store.
func WithHistory(s store.Store) Option {
	return func(rt *Runtime) {
		rt.history = s
	}
}

// WithSQLiteHistory records completed runs to a SQLite database at path.
// An open failure disables recording for the run but is still reported.
func WithSQLiteHistory(path string) Option {
	return func(rt *Runtime) {
		s, err := store.NewSQLite(path)
		if err != nil {
			rt.historyErr = err
			return
		}
		rt.history = s
	}
}

// WithMemoryHistory records completed runs in memory (for testing).
func WithMemoryHistory() Option {
	return func(rt *Runtime) {
		rt.history = store.NewMemory()
	}
}
