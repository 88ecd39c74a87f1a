// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package input parses byte streams into one-pass record producers.
package input

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"nickandperla.net/golp/internal/record"
)

// UnknownFormatError reports a format name outside the recognized set.
type UnknownFormatError struct {
	Name  string
	Known []string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown input format %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Parser turns an input stream into a one-pass record producer.
type Parser interface {
	Records(r io.Reader) (record.Producer, error)
}

// capture records every byte a producer reads so the whole input text
// can be handed out verbatim after the stream is exhausted.
type capture struct {
	r   io.Reader
	buf strings.Builder
}

func (c *capture) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.buf.Write(p[:n])
	return n, err
}

func (c *capture) Contents() string {
	return c.buf.String()
}

// Formats returns the recognized input format names, sorted.
func Formats() []string {
	names := []string{"awk", "csv", "tsv", "json"}
	sort.Strings(names)
	return names
}

// New creates a parser for the named format. recordSep and fieldSep only
// apply to the awk format; the empty fieldSep means whitespace splitting.
func New(format, recordSep, fieldSep string) (Parser, error) {
	switch format {
	case "awk":
		return newAwkParser(recordSep, fieldSep)
	case "csv":
		return &csvParser{comma: ','}, nil
	case "tsv":
		return &csvParser{comma: '\t'}, nil
	case "json":
		return &jsonParser{}, nil
	}
	return nil, &UnknownFormatError{Name: format, Known: Formats()}
}
