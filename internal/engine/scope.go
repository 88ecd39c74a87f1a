// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package engine orchestrates evaluation rounds over a record stream.
// It decides at run time, by observing which bindings the user program
// touches, whether the program runs once per record or once over the
// whole input, and it shares one single-pass input between both modes.
package engine

// ScopeState classifies a program by the bindings it touched first.
type ScopeState int

const (
	// Undecided means no scope-tagged binding has been accessed yet. A
	// program that finishes Undecided is a pure expression and runs once.
	Undecided ScopeState = iota
	// RecordScoped programs run once per input record.
	RecordScoped
	// TableScoped programs run once over the whole input.
	TableScoped
)

func (s ScopeState) String() string {
	switch s {
	case RecordScoped:
		return "record"
	case TableScoped:
		return "table"
	}
	return "undecided"
}

// Arbiter tracks which scope class the program locked in. The state
// moves away from Undecided at most once; an access under the opposite
// scope afterwards is a contract violation.
type Arbiter struct {
	state    ScopeState
	lockedBy string
}

// State returns the current scope state.
func (a *Arbiter) State() ScopeState {
	return a.state
}

// Observe records an access to a scope-tagged binding. The first access
// locks the scope; later accesses under the same scope are no-ops, and an
// access under the other scope fails with MixedScopeError.
func (a *Arbiter) Observe(s ScopeState, binding string) error {
	if a.state == Undecided {
		a.state = s
		a.lockedBy = binding
		return nil
	}
	if a.state == s {
		return nil
	}
	return &MixedScopeError{
		First:       a.lockedBy,
		FirstScope:  a.state,
		Second:      binding,
		SecondScope: s,
	}
}
