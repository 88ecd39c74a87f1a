// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements the golp expression evaluator and its runtime
// values.
package eval

import (
	"fmt"
	"strconv"
	"strings"

	"nickandperla.net/golp/internal/record"
)

// Value is the interface for all golp runtime values.
// The sealed marker method restricts implementations to this package.
type Value interface {
	value()
}

// Null represents the absence of a value.
type Null struct{}

func (Null) value() {}

// Bool represents a boolean value.
type Bool struct {
	Value bool
}

func (Bool) value() {}

// Num represents a numeric value.
type Num struct {
	Value float64
}

func (Num) value() {}

// Str represents a string value.
type Str struct {
	Value string
}

func (Str) value() {}

// List represents an ordered list of values.
type List struct {
	Items []Value
}

func (List) value() {}

// RecordVal wraps an input record. Indexing yields fields; the str
// attribute yields the raw line.
type RecordVal struct {
	Rec record.Record
}

func (RecordVal) value() {}

// IterFunc produces the next element of a sequence, returning
// record.ErrNoMoreRecords when the sequence ends.
type IterFunc func() (Value, error)

// Seq is a lazy sequence of values. Replayable sequences hand out a fresh
// iterator per traversal; one-shot sequences (the engine's per-record
// result stream) share a single iterator and cannot restart.
type Seq struct {
	iters func() IterFunc
}

func (Seq) value() {}

// NewSeq creates a replayable sequence: iters must return an independent
// iterator positioned at the start.
func NewSeq(iters func() IterFunc) Seq {
	return Seq{iters: iters}
}

// NewOneShotSeq creates a sequence that can only be drained once.
func NewOneShotSeq(next IterFunc) Seq {
	return Seq{iters: func() IterFunc { return next }}
}

// Iter returns an iterator over the sequence.
func (s Seq) Iter() IterFunc {
	return s.iters()
}

// Drain materializes the remaining elements of the sequence.
func (s Seq) Drain() ([]Value, error) {
	var items []Value
	next := s.Iter()
	for {
		v, err := next()
		if err == record.ErrNoMoreRecords {
			return items, nil
		}
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

// Builtin is a named native function value.
type Builtin struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (Builtin) value() {}

// Printer is the output-rendering capability. The engine resolves the
// environment's printer binding to this interface at the end of a run.
type Printer interface {
	// PrintResult renders the final result. header may be nil.
	PrintResult(result Value, header []string) error
}

// PrinterVal wraps a Printer so user programs can reassign the printer
// binding by name.
type PrinterVal struct {
	Name string
	P    Printer
}

func (PrinterVal) value() {}

// Truthy returns the boolean interpretation of a value. nil, false, 0,
// "" and the empty list are falsy; everything else is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Null:
		return false
	case Bool:
		return val.Value
	case Num:
		return val.Value != 0
	case Str:
		return val.Value != ""
	case List:
		return len(val.Items) > 0
	default:
		return true
	}
}

// NumValue attempts numeric interpretation of a value. Strings that look
// like numbers coerce, so field comparisons like record[2] > 50 work on
// text input.
func NumValue(v Value) (float64, bool) {
	switch val := v.(type) {
	case Num:
		return val.Value, true
	case Bool:
		if val.Value {
			return 1, true
		}
		return 0, true
	case Str:
		n, err := strconv.ParseFloat(strings.TrimSpace(val.Value), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// FormatNum renders a number without a trailing ".0" for integral values.
func FormatNum(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Display returns the plain text rendering of a value.
func Display(v Value) string {
	switch val := v.(type) {
	case Null:
		return ""
	case Bool:
		if val.Value {
			return "true"
		}
		return "false"
	case Num:
		return FormatNum(val.Value)
	case Str:
		return val.Value
	case List:
		parts := make([]string, len(val.Items))
		for i, item := range val.Items {
			parts[i] = Display(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case RecordVal:
		return strings.Join(val.Rec.Fields, " ")
	case Seq:
		return "<sequence>"
	case Builtin:
		return "<builtin " + val.Name + ">"
	case PrinterVal:
		return "<printer " + val.Name + ">"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Repr returns an unambiguous rendering, quoting strings.
func Repr(v Value) string {
	switch val := v.(type) {
	case Null:
		return "nil"
	case Str:
		return strconv.Quote(val.Value)
	case List:
		parts := make([]string, len(val.Items))
		for i, item := range val.Items {
			parts[i] = Repr(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case RecordVal:
		parts := make([]string, len(val.Rec.Fields))
		for i, f := range val.Rec.Fields {
			parts[i] = strconv.Quote(f)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return Display(v)
	}
}

// Equal compares two values, coercing numeric strings when the other side
// is a number.
func Equal(a, b Value) bool {
	if an, ok := a.(Num); ok {
		if bn, ok := NumValue(b); ok {
			return an.Value == bn
		}
		return false
	}
	if bn, ok := b.(Num); ok {
		if an, ok := NumValue(a); ok {
			return an == bn.Value
		}
		return false
	}
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value
	case Str:
		bv, ok := b.(Str)
		return ok && av.Value == bv.Value
	case List:
		bv, ok := b.(List)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case RecordVal:
		bv, ok := b.(RecordVal)
		if !ok || len(av.Rec.Fields) != len(bv.Rec.Fields) {
			return false
		}
		for i := range av.Rec.Fields {
			if av.Rec.Fields[i] != bv.Rec.Fields[i] {
				return false
			}
		}
		return true
	}
	return false
}
