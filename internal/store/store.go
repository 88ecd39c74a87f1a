// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package store provides persistence for golp run history.
package store

// Entry records one completed invocation.
type Entry struct {
	// RunID is the invocation's unique id.
	RunID string
	// Ts is the RFC3339 start time.
	Ts string
	// Program is the user program text.
	Program string
	// InputFormat and OutputFormat are the resolved format names.
	InputFormat  string
	OutputFormat string
	// Outcome is "ok" or the error text.
	Outcome string
}

// Store is the interface for run-history persistence.
type Store interface {
	// Append records a completed run.
	Append(e Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(limit int) ([]Entry, error)
	// Close releases resources.
	Close() error
}
