// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package expr defines golp expression AST types.
package expr

import (
	"strings"

	"nickandperla.net/golp/internal/token"
)

// Expr is the interface all expression nodes implement.
type Expr interface {
	// String returns a source-like representation of the expression.
	String() string
}

// Num is a numeric literal.
type Num struct {
	Value float64
	Lit   string // original literal text
}

func (n Num) String() string { return n.Lit }

// Str is a string literal.
type Str struct {
	Value string
}

func (s Str) String() string { return `"` + s.Value + `"` }

// Bool is a boolean literal.
type Bool struct {
	Value bool
}

func (b Bool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Nil is the nil literal.
type Nil struct{}

func (Nil) String() string { return "nil" }

// Ident is a name resolved against the environment.
type Ident struct {
	Name string
}

func (i Ident) String() string { return i.Name }

// List is a list literal.
type List struct {
	Elems []Expr
}

func (l List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Unary is a prefix operation (-x, !x).
type Unary struct {
	Op      token.Token
	Operand Expr
}

func (u Unary) String() string { return u.Op.String() + u.Operand.String() }

// Binary is an infix operation.
type Binary struct {
	Op          token.Token
	Left, Right Expr
}

func (b Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// Ternary is the conditional expression cond ? then : else.
type Ternary struct {
	Cond, Then, Else Expr
}

func (t Ternary) String() string {
	return "(" + t.Cond.String() + " ? " + t.Then.String() + " : " + t.Else.String() + ")"
}

// Index is a subscript access target[index].
type Index struct {
	Target Expr
	Index  Expr
}

func (x Index) String() string { return x.Target.String() + "[" + x.Index.String() + "]" }

// Attr is an attribute access target.name.
type Attr struct {
	Target Expr
	Name   string
}

func (a Attr) String() string { return a.Target.String() + "." + a.Name }

// Call is a function invocation.
type Call struct {
	Target Expr
	Args   []Expr
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Target.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Assign writes a value into the environment.
type Assign struct {
	Name  string
	Value Expr
}

func (a Assign) String() string { return a.Name + " = " + a.Value.String() }

// Program is a ;-separated statement sequence. Its value is the value of
// the last statement.
type Program struct {
	Stmts []Expr
}

func (p Program) String() string {
	parts := make([]string, len(p.Stmts))
	for i, s := range p.Stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}
