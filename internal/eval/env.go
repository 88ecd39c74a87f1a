// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import "fmt"

// Env maps names to values or lazy computations. It is built once per
// invocation; user programs read through Get (which resolves lazy
// bindings, firing their observers) and write through Set.
type Env struct {
	bindings map[string]any // Value or *Lazy
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{bindings: make(map[string]any)}
}

// Bind installs a plain value.
func (e *Env) Bind(name string, v Value) {
	e.bindings[name] = v
}

// BindLazy installs a lazy computation.
func (e *Env) BindLazy(name string, l *Lazy) {
	e.bindings[name] = l
}

// Get resolves a name. Lazy bindings are computed through their Get,
// which fires the access observer.
func (e *Env) Get(name string) (Value, error) {
	b, ok := e.bindings[name]
	if !ok {
		return nil, fmt.Errorf("undefined variable %q", name)
	}
	switch v := b.(type) {
	case *Lazy:
		return v.Get()
	case Value:
		return v, nil
	}
	return nil, fmt.Errorf("invalid binding for %q", name)
}

// Set writes a plain value, replacing any existing binding. User
// assignments land here, which is how printer and header get reassigned
// mid-program.
func (e *Env) Set(name string, v Value) {
	e.bindings[name] = v
}

// Has reports whether a name is bound.
func (e *Env) Has(name string) bool {
	_, ok := e.bindings[name]
	return ok
}

// Peek returns the binding for name without resolving lazy values and
// without firing observers. The engine uses it for contract checks on
// bindings like printer.
func (e *Env) Peek(name string) (Value, bool) {
	b, ok := e.bindings[name]
	if !ok {
		return nil, false
	}
	if v, ok := b.(Value); ok {
		return v, true
	}
	return nil, false
}
