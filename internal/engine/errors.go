// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package engine

import "fmt"

// MixedScopeError reports a program that referenced both a record-scoped
// and a table-scoped binding in one round. It names both bindings in the
// order they were touched.
type MixedScopeError struct {
	First       string
	FirstScope  ScopeState
	Second      string
	SecondScope ScopeState
}

func (e *MixedScopeError) Error() string {
	return fmt.Sprintf(
		"cannot reference both %s-scoped %q and %s-scoped %q in one program",
		e.FirstScope, e.First, e.SecondScope, e.Second)
}

// UserProgramError wraps a failure raised while evaluating the user
// program. The message shows only the cause; Unwrap exposes it for
// errors.Is and errors.As.
type UserProgramError struct {
	Err error
}

func (e *UserProgramError) Error() string {
	return e.Err.Error()
}

func (e *UserProgramError) Unwrap() error {
	return e.Err
}

// PrinterContractError reports that the printer binding was reassigned to
// a value that cannot print results.
type PrinterContractError struct {
	Value string
}

func (e *PrinterContractError) Error() string {
	return fmt.Sprintf("printer is bound to %s, which cannot print results", e.Value)
}
