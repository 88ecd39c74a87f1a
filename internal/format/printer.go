// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package format renders evaluation results in the supported output
// formats.
package format

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"nickandperla.net/golp/internal/eval"
	"nickandperla.net/golp/internal/record"
)

// UnknownFormatError reports an output format name outside the
// recognized set.
type UnknownFormatError struct {
	Name  string
	Known []string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Formats returns the recognized output format names, sorted.
func Formats() []string {
	names := []string{"auto", "awk", "csv", "tsv", "markdown", "json", "repr", "str"}
	sort.Strings(names)
	return names
}

// New creates the named printer writing to w. isTTY guides the auto
// printer's table rendering.
func New(name string, w io.Writer, isTTY bool) (eval.Printer, error) {
	switch name {
	case "auto":
		return &autoPrinter{w: w, isTTY: isTTY}, nil
	case "awk":
		return &awkPrinter{w: w}, nil
	case "csv":
		return &csvPrinter{w: w, comma: ','}, nil
	case "tsv":
		return &csvPrinter{w: w, comma: '\t'}, nil
	case "markdown":
		return &markdownPrinter{w: w}, nil
	case "json":
		return &jsonPrinter{w: w}, nil
	case "repr":
		return &reprPrinter{w: w}, nil
	case "str":
		return &strPrinter{w: w}, nil
	}
	return nil, &UnknownFormatError{Name: name, Known: Formats()}
}

// Bindings returns one PrinterVal per renderer, keyed by the environment
// name user programs reassign the printer with.
func Bindings(w io.Writer, isTTY bool) map[string]eval.PrinterVal {
	names := map[string]string{
		"AutoPrinter":     "auto",
		"AwkPrinter":      "awk",
		"CsvPrinter":      "csv",
		"TsvPrinter":      "tsv",
		"MarkdownPrinter": "markdown",
		"JsonPrinter":     "json",
		"ReprPrinter":     "repr",
		"StrPrinter":      "str",
	}
	out := make(map[string]eval.PrinterVal, len(names))
	for binding, format := range names {
		p, _ := New(format, w, isTTY)
		out[binding] = eval.PrinterVal{Name: format, P: p}
	}
	return out
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// rowFields renders one result element as output fields.
func rowFields(v eval.Value) []string {
	switch t := v.(type) {
	case eval.RecordVal:
		return t.Rec.Fields
	case eval.List:
		fields := make([]string, len(t.Items))
		for i, item := range t.Items {
			fields[i] = eval.Display(item)
		}
		return fields
	default:
		return []string{eval.Display(v)}
	}
}

// eachRow streams the rows of a result: sequences element by element
// (driving any pending lazy evaluation), lists item by item, scalars as
// a single row.
func eachRow(result eval.Value, fn func(v eval.Value) error) error {
	switch t := result.(type) {
	case eval.Seq:
		next := t.Iter()
		for {
			v, err := next()
			if err == record.ErrNoMoreRecords {
				return nil
			}
			if err != nil {
				return err
			}
			if err := fn(v); err != nil {
				return err
			}
		}
	case eval.List:
		for _, item := range t.Items {
			if err := fn(item); err != nil {
				return err
			}
		}
		return nil
	default:
		return fn(result)
	}
}

// materialize drains sequences so a whole-result renderer can size its
// output.
func materialize(result eval.Value) (eval.Value, error) {
	if s, ok := result.(eval.Seq); ok {
		items, err := s.Drain()
		if err != nil {
			return nil, err
		}
		return eval.List{Items: items}, nil
	}
	return result, nil
}
