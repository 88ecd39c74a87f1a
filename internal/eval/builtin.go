// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Builtins returns the native function bindings. All of them are
// scope-free: calling them never locks the evaluation scope.
func Builtins() map[string]Builtin {
	b := map[string]Builtin{}
	register := func(name string, fn func(args []Value) (Value, error)) {
		b[name] = Builtin{Name: name, Fn: fn}
	}

	register("len", fnLen)
	register("num", fnNum)
	register("int", fnInt)
	register("str", fnStr)
	register("abs", fnAbs)
	register("round", fnRound)
	register("sum", fnSum)
	register("min", fnMin)
	register("max", fnMax)
	register("sort", fnSort)
	register("reverse", fnReverse)
	register("first", fnFirst)
	register("last", fnLast)
	register("split", fnSplit)
	register("join", fnJoin)
	register("upper", fnUpper)
	register("lower", fnLower)
	register("trim", fnTrim)
	register("replace", fnReplace)
	register("contains", fnContains)
	register("startswith", fnStartsWith)
	register("endswith", fnEndsWith)
	register("match", fnMatch)
	register("sub", fnSub)

	return b
}

func wantArgs(name string, args []Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func strArg(name string, args []Value, i int) (string, error) {
	s, ok := args[i].(Str)
	if !ok {
		return "", fmt.Errorf("%s: argument %d must be a string, got %s", name, i+1, Repr(args[i]))
	}
	return s.Value, nil
}

func numArg(name string, args []Value, i int) (float64, error) {
	n, ok := NumValue(args[i])
	if !ok {
		return 0, fmt.Errorf("%s: argument %d must be a number, got %s", name, i+1, Repr(args[i]))
	}
	return n, nil
}

// elementsOf returns the elements of a list or sequence argument.
func elementsOf(name string, v Value) ([]Value, error) {
	switch t := v.(type) {
	case List:
		return t.Items, nil
	case Seq:
		return t.Drain()
	case RecordVal:
		items := make([]Value, len(t.Rec.Fields))
		for i, f := range t.Rec.Fields {
			items[i] = Str{Value: f}
		}
		return items, nil
	}
	return nil, fmt.Errorf("%s: expected a list or sequence, got %s", name, Repr(v))
}

func fnLen(args []Value) (Value, error) {
	if err := wantArgs("len", args, 1); err != nil {
		return nil, err
	}
	switch t := args[0].(type) {
	case Str:
		return Num{Value: float64(len([]rune(t.Value)))}, nil
	case List:
		return Num{Value: float64(len(t.Items))}, nil
	case RecordVal:
		return Num{Value: float64(len(t.Rec.Fields))}, nil
	case Seq:
		items, err := t.Drain()
		if err != nil {
			return nil, err
		}
		return Num{Value: float64(len(items))}, nil
	}
	return nil, fmt.Errorf("len: unsupported value %s", Repr(args[0]))
}

func fnNum(args []Value) (Value, error) {
	if err := wantArgs("num", args, 1); err != nil {
		return nil, err
	}
	n, ok := NumValue(args[0])
	if !ok {
		return nil, fmt.Errorf("num: cannot convert %s", Repr(args[0]))
	}
	return Num{Value: n}, nil
}

func fnInt(args []Value) (Value, error) {
	if err := wantArgs("int", args, 1); err != nil {
		return nil, err
	}
	n, ok := NumValue(args[0])
	if !ok {
		return nil, fmt.Errorf("int: cannot convert %s", Repr(args[0]))
	}
	return Num{Value: math.Trunc(n)}, nil
}

func fnStr(args []Value) (Value, error) {
	if err := wantArgs("str", args, 1); err != nil {
		return nil, err
	}
	return Str{Value: Display(args[0])}, nil
}

func fnAbs(args []Value) (Value, error) {
	if err := wantArgs("abs", args, 1); err != nil {
		return nil, err
	}
	n, err := numArg("abs", args, 0)
	if err != nil {
		return nil, err
	}
	return Num{Value: math.Abs(n)}, nil
}

func fnRound(args []Value) (Value, error) {
	if err := wantArgs("round", args, 1); err != nil {
		return nil, err
	}
	n, err := numArg("round", args, 0)
	if err != nil {
		return nil, err
	}
	return Num{Value: math.Round(n)}, nil
}

func fnSum(args []Value) (Value, error) {
	if err := wantArgs("sum", args, 1); err != nil {
		return nil, err
	}
	items, err := elementsOf("sum", args[0])
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, item := range items {
		n, ok := NumValue(item)
		if !ok {
			return nil, fmt.Errorf("sum: non-numeric element %s", Repr(item))
		}
		total += n
	}
	return Num{Value: total}, nil
}

func fnMin(args []Value) (Value, error) { return extreme("min", args, false) }
func fnMax(args []Value) (Value, error) { return extreme("max", args, true) }

func extreme(name string, args []Value, max bool) (Value, error) {
	if err := wantArgs(name, args, 1); err != nil {
		return nil, err
	}
	items, err := elementsOf(name, args[0])
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: empty sequence", name)
	}
	best := items[0]
	for _, item := range items[1:] {
		c, err := compare(item, best)
		if err != nil {
			return nil, err
		}
		if (max && c > 0) || (!max && c < 0) {
			best = item
		}
	}
	return best, nil
}

func fnSort(args []Value) (Value, error) {
	if err := wantArgs("sort", args, 1); err != nil {
		return nil, err
	}
	items, err := elementsOf("sort", args[0])
	if err != nil {
		return nil, err
	}
	sorted := make([]Value, len(items))
	copy(sorted, items)
	var sortErr error
	sort.SliceStable(sorted, func(i, j int) bool {
		c, err := compare(sorted[i], sorted[j])
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return List{Items: sorted}, nil
}

func fnReverse(args []Value) (Value, error) {
	if err := wantArgs("reverse", args, 1); err != nil {
		return nil, err
	}
	items, err := elementsOf("reverse", args[0])
	if err != nil {
		return nil, err
	}
	reversed := make([]Value, len(items))
	for i, item := range items {
		reversed[len(items)-1-i] = item
	}
	return List{Items: reversed}, nil
}

func fnFirst(args []Value) (Value, error) {
	if err := wantArgs("first", args, 1); err != nil {
		return nil, err
	}
	items, err := elementsOf("first", args[0])
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return Null{}, nil
	}
	return items[0], nil
}

func fnLast(args []Value) (Value, error) {
	if err := wantArgs("last", args, 1); err != nil {
		return nil, err
	}
	items, err := elementsOf("last", args[0])
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return Null{}, nil
	}
	return items[len(items)-1], nil
}

func fnSplit(args []Value) (Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, fmt.Errorf("split: expected 1 or 2 arguments, got %d", len(args))
	}
	s, err := strArg("split", args, 0)
	if err != nil {
		return nil, err
	}
	var parts []string
	if len(args) == 1 {
		parts = strings.Fields(s)
	} else {
		sep, err := strArg("split", args, 1)
		if err != nil {
			return nil, err
		}
		parts = strings.Split(s, sep)
	}
	items := make([]Value, len(parts))
	for i, p := range parts {
		items[i] = Str{Value: p}
	}
	return List{Items: items}, nil
}

func fnJoin(args []Value) (Value, error) {
	if err := wantArgs("join", args, 2); err != nil {
		return nil, err
	}
	items, err := elementsOf("join", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := strArg("join", args, 1)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Display(item)
	}
	return Str{Value: strings.Join(parts, sep)}, nil
}

func fnUpper(args []Value) (Value, error) {
	if err := wantArgs("upper", args, 1); err != nil {
		return nil, err
	}
	s, err := strArg("upper", args, 0)
	if err != nil {
		return nil, err
	}
	return Str{Value: strings.ToUpper(s)}, nil
}

func fnLower(args []Value) (Value, error) {
	if err := wantArgs("lower", args, 1); err != nil {
		return nil, err
	}
	s, err := strArg("lower", args, 0)
	if err != nil {
		return nil, err
	}
	return Str{Value: strings.ToLower(s)}, nil
}

func fnTrim(args []Value) (Value, error) {
	if err := wantArgs("trim", args, 1); err != nil {
		return nil, err
	}
	s, err := strArg("trim", args, 0)
	if err != nil {
		return nil, err
	}
	return Str{Value: strings.TrimSpace(s)}, nil
}

func fnReplace(args []Value) (Value, error) {
	if err := wantArgs("replace", args, 3); err != nil {
		return nil, err
	}
	s, err := strArg("replace", args, 0)
	if err != nil {
		return nil, err
	}
	old, err := strArg("replace", args, 1)
	if err != nil {
		return nil, err
	}
	repl, err := strArg("replace", args, 2)
	if err != nil {
		return nil, err
	}
	return Str{Value: strings.ReplaceAll(s, old, repl)}, nil
}

func fnContains(args []Value) (Value, error) {
	if err := wantArgs("contains", args, 2); err != nil {
		return nil, err
	}
	if s, ok := args[0].(Str); ok {
		sub, err := strArg("contains", args, 1)
		if err != nil {
			return nil, err
		}
		return Bool{Value: strings.Contains(s.Value, sub)}, nil
	}
	items, err := elementsOf("contains", args[0])
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if Equal(item, args[1]) {
			return Bool{Value: true}, nil
		}
	}
	return Bool{Value: false}, nil
}

func fnStartsWith(args []Value) (Value, error) {
	if err := wantArgs("startswith", args, 2); err != nil {
		return nil, err
	}
	s, err := strArg("startswith", args, 0)
	if err != nil {
		return nil, err
	}
	prefix, err := strArg("startswith", args, 1)
	if err != nil {
		return nil, err
	}
	return Bool{Value: strings.HasPrefix(s, prefix)}, nil
}

func fnEndsWith(args []Value) (Value, error) {
	if err := wantArgs("endswith", args, 2); err != nil {
		return nil, err
	}
	s, err := strArg("endswith", args, 0)
	if err != nil {
		return nil, err
	}
	suffix, err := strArg("endswith", args, 1)
	if err != nil {
		return nil, err
	}
	return Bool{Value: strings.HasSuffix(s, suffix)}, nil
}

func fnMatch(args []Value) (Value, error) {
	if err := wantArgs("match", args, 2); err != nil {
		return nil, err
	}
	pattern, err := strArg("match", args, 0)
	if err != nil {
		return nil, err
	}
	s, err := strArg("match", args, 1)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("match: bad pattern: %v", err)
	}
	m := re.FindStringSubmatch(s)
	if m == nil {
		return Null{}, nil
	}
	if len(m) > 1 {
		groups := make([]Value, len(m)-1)
		for i, g := range m[1:] {
			groups[i] = Str{Value: g}
		}
		return List{Items: groups}, nil
	}
	return Str{Value: m[0]}, nil
}

func fnSub(args []Value) (Value, error) {
	if err := wantArgs("sub", args, 3); err != nil {
		return nil, err
	}
	pattern, err := strArg("sub", args, 0)
	if err != nil {
		return nil, err
	}
	repl, err := strArg("sub", args, 1)
	if err != nil {
		return nil, err
	}
	s, err := strArg("sub", args, 2)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("sub: bad pattern: %v", err)
	}
	return Str{Value: re.ReplaceAllString(s, repl)}, nil
}
