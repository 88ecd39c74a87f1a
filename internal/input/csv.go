// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package input

import (
	"encoding/csv"
	"io"
	"strings"

	"nickandperla.net/golp/internal/record"
)

// csvParser reads delimiter-separated values. The first row is flagged as
// the header, never surfaced as a data record.
type csvParser struct {
	comma rune
}

func (p *csvParser) Records(r io.Reader) (record.Producer, error) {
	cap := &capture{r: r}
	cr := csv.NewReader(cap)
	cr.Comma = p.comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return &csvProducer{cr: cr, cap: cap, done: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &csvProducer{cr: cr, cap: cap, header: header, sep: string(p.comma)}, nil
}

type csvProducer struct {
	cr     *csv.Reader
	cap    *capture
	header []string
	sep    string
	done   bool
}

// Contents returns the input text read so far, header row included.
func (p *csvProducer) Contents() string { return p.cap.Contents() }

func (p *csvProducer) Next() (record.Record, error) {
	if p.done {
		return record.Record{}, record.ErrNoMoreRecords
	}
	fields, err := p.cr.Read()
	if err == io.EOF {
		p.done = true
		return record.Record{}, record.ErrNoMoreRecords
	}
	if err != nil {
		return record.Record{}, err
	}
	// encoding/csv does not expose the raw line; reconstruct it.
	return record.Record{Fields: fields, Raw: strings.Join(fields, p.sep)}, nil
}

func (p *csvProducer) Header() []string { return p.header }
