// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package record

// Sequence wraps a one-pass Producer so it can be traversed any number of
// times. Produced records are appended to an internal buffer; every
// traversal replays the buffer before pulling fresh records, so the
// underlying producer is asked for each element exactly once no matter how
// many consumers interleave.
//
// Sequence is the sole owner of the producer. Consumers read through At or
// an Iter and never touch the stream directly.
type Sequence struct {
	src  Producer
	buf  []Record
	done bool
}

// NewSequence creates a replayable view over src.
func NewSequence(src Producer) *Sequence {
	return &Sequence{src: src}
}

// Header returns the column names carried by the underlying producer,
// nil if the input has none.
func (s *Sequence) Header() []string {
	return s.src.Header()
}

// fill pulls from the producer until the buffer holds at least n records
// or the stream ends. Producer failures are returned without marking the
// stream done, so a later pull retries.
func (s *Sequence) fill(n int) error {
	for len(s.buf) < n && !s.done {
		r, err := s.src.Next()
		if err == ErrNoMoreRecords {
			s.done = true
			return nil
		}
		if err != nil {
			return err
		}
		s.buf = append(s.buf, r)
	}
	return nil
}

// At returns the i-th record, pulling from the producer as needed.
// Returns ErrNoMoreRecords if the stream ends before index i.
func (s *Sequence) At(i int) (Record, error) {
	if err := s.fill(i + 1); err != nil {
		return Record{}, err
	}
	if i >= len(s.buf) {
		return Record{}, ErrNoMoreRecords
	}
	return s.buf[i], nil
}

// Len materializes the whole stream and returns the record count.
func (s *Sequence) Len() (int, error) {
	for !s.done {
		if err := s.fill(len(s.buf) + 1); err != nil {
			return 0, err
		}
	}
	return len(s.buf), nil
}

// All materializes the whole stream and returns every record in order.
func (s *Sequence) All() ([]Record, error) {
	if _, err := s.Len(); err != nil {
		return nil, err
	}
	return s.buf, nil
}

// Iter returns an independent iterator starting at the first record.
// Iterators share the buffer, not a position.
func (s *Sequence) Iter() *Iter {
	return &Iter{seq: s}
}

// Iter is a position over a Sequence. Multiple iterators over the same
// sequence see identical records in identical order.
type Iter struct {
	seq *Sequence
	pos int
}

// Next returns the record at the iterator's position and advances it.
// Returns ErrNoMoreRecords at the end of the stream.
func (it *Iter) Next() (Record, error) {
	r, err := it.seq.At(it.pos)
	if err != nil {
		return Record{}, err
	}
	it.pos++
	return r, nil
}
