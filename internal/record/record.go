// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package record defines the record data model and the replayable view
// over a one-pass record stream.
package record

import "errors"

// ErrNoMoreRecords signals that a record stream has ended. It is expected
// control flow, never a user-visible failure, and must stay distinguishable
// from any error a user program raises.
var ErrNoMoreRecords = errors.New("no more records")

// Record is one tokenized unit of input: the split fields plus the raw
// text they came from. Immutable once produced.
type Record struct {
	Fields []string
	Raw    string
}

// Field returns the i-th field. Negative indices count from the end.
func (r Record) Field(i int) (string, bool) {
	if i < 0 {
		i += len(r.Fields)
	}
	if i < 0 || i >= len(r.Fields) {
		return "", false
	}
	return r.Fields[i], true
}

// Producer is a one-pass source of records. Next returns ErrNoMoreRecords
// once the stream is exhausted. Header returns column names when the input
// carries them (e.g. the first CSV row), nil otherwise; it is valid as soon
// as the producer is constructed.
type Producer interface {
	Next() (Record, error)
	Header() []string
}

// RawProducer is a Producer that can reproduce the input text it
// consumed, separators and any header row included. Contents is only
// complete once Next has returned ErrNoMoreRecords.
type RawProducer interface {
	Producer
	Contents() string
}

// SliceProducer adapts a fixed slice of records into a Producer. Used by
// tests and by the json input format, which materializes eagerly anyway.
type SliceProducer struct {
	Recs  []Record
	Names []string
	pos   int
}

// Next returns the next record from the slice.
func (p *SliceProducer) Next() (Record, error) {
	if p.pos >= len(p.Recs) {
		return Record{}, ErrNoMoreRecords
	}
	r := p.Recs[p.pos]
	p.pos++
	return r, nil
}

// Header returns the column names, if any.
func (p *SliceProducer) Header() []string { return p.Names }
