// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"nickandperla.net/golp/internal/eval"
)

// markdownPrinter renders the result as an aligned markdown table.
// It materializes the whole result to size its columns.
type markdownPrinter struct {
	w io.Writer
}

func (p *markdownPrinter) PrintResult(result eval.Value, header []string) error {
	v, err := materialize(result)
	if err != nil {
		return err
	}
	if _, ok := v.(eval.Null); ok {
		return nil
	}

	var rows [][]string
	if err := eachRow(v, func(item eval.Value) error {
		rows = append(rows, rowFields(item))
		return nil
	}); err != nil {
		return err
	}

	cols := len(header)
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}
	if header == nil {
		header = make([]string, cols)
		for i := range header {
			header[i] = strconv.Itoa(i)
		}
	}

	widths := make([]int, cols)
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if err := p.writeRow(header, widths); err != nil {
		return err
	}
	rule := make([]string, cols)
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	if err := p.writeRow(rule, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := p.writeRow(row, widths); err != nil {
			return err
		}
	}
	return nil
}

func (p *markdownPrinter) writeRow(cells []string, widths []int) error {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	_, err := fmt.Fprintln(p.w, "| "+strings.Join(parts, " | ")+" |")
	return err
}

// autoPrinter picks a renderer from the shape of the result: tables go
// to markdown on a terminal and awk otherwise, scalars print plainly.
type autoPrinter struct {
	w     io.Writer
	isTTY bool
}

func (p *autoPrinter) PrintResult(result eval.Value, header []string) error {
	switch result.(type) {
	case eval.Seq, eval.List, eval.RecordVal:
		if p.isTTY {
			// Table rendering needs the whole result anyway.
			return (&markdownPrinter{w: p.w}).PrintResult(result, header)
		}
		return (&awkPrinter{w: p.w}).PrintResult(result, header)
	default:
		return (&strPrinter{w: p.w}).PrintResult(result, header)
	}
}
