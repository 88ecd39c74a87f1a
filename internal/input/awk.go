// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package input

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"nickandperla.net/golp/internal/record"
)

// awkParser splits records on a record separator and fields AWK-style:
// an unset field separator splits on runs of whitespace, a single rune is
// a literal separator, anything longer is a regular expression.
type awkParser struct {
	recordSep string
	fieldRE   *regexp.Regexp // nil means whitespace or literal splitting
	fieldLit  string
}

func newAwkParser(recordSep, fieldSep string) (*awkParser, error) {
	if recordSep == "" {
		recordSep = "\n"
	}
	p := &awkParser{recordSep: recordSep}
	if utf8.RuneCountInString(fieldSep) > 1 {
		re, err := regexp.Compile(fieldSep)
		if err != nil {
			return nil, err
		}
		p.fieldRE = re
	} else {
		p.fieldLit = fieldSep
	}
	return p, nil
}

// Records returns a producer over r. The producer owns the buffered
// reader; it must be the only consumer of r from here on.
func (p *awkParser) Records(r io.Reader) (record.Producer, error) {
	cap := &capture{r: r}
	sc := bufio.NewScanner(cap)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	if p.recordSep == "\n" {
		sc.Split(bufio.ScanLines)
	} else {
		sc.Split(splitOn(p.recordSep))
	}
	return &awkProducer{parser: p, sc: sc, cap: cap}, nil
}

func (p *awkParser) fields(raw string) []string {
	if p.fieldRE != nil {
		return p.fieldRE.Split(raw, -1)
	}
	if p.fieldLit == "" {
		return strings.Fields(raw)
	}
	return strings.Split(raw, p.fieldLit)
}

type awkProducer struct {
	parser *awkParser
	sc     *bufio.Scanner
	cap    *capture
}

// Contents returns the input text read so far, verbatim.
func (p *awkProducer) Contents() string { return p.cap.Contents() }

func (p *awkProducer) Next() (record.Record, error) {
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return record.Record{}, err
		}
		return record.Record{}, record.ErrNoMoreRecords
	}
	raw := p.sc.Text()
	return record.Record{Fields: p.parser.fields(raw), Raw: raw}, nil
}

// Header returns nil: awk input carries no column names.
func (p *awkProducer) Header() []string { return nil }

// splitOn builds a bufio.SplitFunc for an arbitrary record separator.
// A trailing separator does not produce a final empty record.
func splitOn(sep string) bufio.SplitFunc {
	sepBytes := []byte(sep)
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if i := bytes.Index(data, sepBytes); i >= 0 {
			return i + len(sepBytes), data[:i], nil
		}
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}
