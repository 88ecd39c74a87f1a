// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package format

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"nickandperla.net/golp/internal/eval"
)

// awkPrinter writes one line per result row, fields joined by a space.
type awkPrinter struct {
	w io.Writer
}

func (p *awkPrinter) PrintResult(result eval.Value, header []string) error {
	if _, ok := result.(eval.Null); ok {
		return nil
	}
	if header != nil {
		if _, err := fmt.Fprintln(p.w, strings.Join(header, " ")); err != nil {
			return err
		}
	}
	return eachRow(result, func(v eval.Value) error {
		_, err := fmt.Fprintln(p.w, strings.Join(rowFields(v), " "))
		return err
	})
}

// csvPrinter writes delimiter-separated rows, header first when present.
type csvPrinter struct {
	w     io.Writer
	comma rune
}

func (p *csvPrinter) PrintResult(result eval.Value, header []string) error {
	if _, ok := result.(eval.Null); ok {
		return nil
	}
	cw := csv.NewWriter(p.w)
	cw.Comma = p.comma
	if header != nil {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	err := eachRow(result, func(v eval.Value) error {
		if err := cw.Write(rowFields(v)); err != nil {
			return err
		}
		// Flush per row so lazy evaluation and output interleave.
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// strPrinter renders the whole result as plain text.
type strPrinter struct {
	w io.Writer
}

func (p *strPrinter) PrintResult(result eval.Value, header []string) error {
	v, err := materialize(result)
	if err != nil {
		return err
	}
	if _, ok := v.(eval.Null); ok {
		return nil
	}
	_, err = fmt.Fprintln(p.w, eval.Display(v))
	return err
}

// reprPrinter renders the whole result unambiguously.
type reprPrinter struct {
	w io.Writer
}

func (p *reprPrinter) PrintResult(result eval.Value, header []string) error {
	v, err := materialize(result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, eval.Repr(v))
	return err
}
