// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package record

// Cursor exposes a "current record" over an iterator with explicit,
// externally driven advancement. Repeated Get calls between Advance calls
// return the identical record, so one evaluation round can reference the
// record any number of times without consuming input.
type Cursor struct {
	it       *Iter
	cur      Record
	fetched  bool
	onAccess func() error
}

// NewCursor creates a cursor over it. onAccess, if non-nil, fires on every
// Get before anything else; a non-nil error from it aborts the access.
func NewCursor(it *Iter, onAccess func() error) *Cursor {
	return &Cursor{it: it, onAccess: onAccess}
}

// Get returns the current record. The first successful call fetches the
// first record from the iterator; a fetch that fails is not cached, so the
// next Get retries. Returns ErrNoMoreRecords when the stream is empty.
func (c *Cursor) Get() (Record, error) {
	if c.onAccess != nil {
		if err := c.onAccess(); err != nil {
			return Record{}, err
		}
	}
	if !c.fetched {
		r, err := c.it.Next()
		if err != nil {
			return Record{}, err
		}
		c.cur = r
		c.fetched = true
	}
	return c.cur, nil
}

// Advance discards the current record and fetches the next one. Returns
// ErrNoMoreRecords when the stream is exhausted; the current record is left
// unchanged in that case. Advance never fires the access observer: it is
// driven by the engine, not by the user program.
func (c *Cursor) Advance() error {
	r, err := c.it.Next()
	if err != nil {
		return err
	}
	c.cur = r
	c.fetched = true
	return nil
}
