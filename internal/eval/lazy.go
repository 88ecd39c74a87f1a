// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

// Lazy is a deferred, optionally memoized computation with an
// access-observer hook. The observer fires on every Get, cache hit or not;
// the producer runs at most once when caching is enabled. A failed
// producer run is never cached, so the next Get retries.
type Lazy struct {
	produce  func() (Value, error)
	onAccess func() error
	cache    bool
	cached   Value
	has      bool
}

// NewLazy creates a lazy value. onAccess may be nil; when it returns a
// non-nil error the access is aborted before the producer runs.
func NewLazy(produce func() (Value, error), cache bool, onAccess func() error) *Lazy {
	return &Lazy{produce: produce, onAccess: onAccess, cache: cache}
}

// Get resolves the lazy value.
func (l *Lazy) Get() (Value, error) {
	if l.onAccess != nil {
		if err := l.onAccess(); err != nil {
			return nil, err
		}
	}
	if l.has {
		return l.cached, nil
	}
	v, err := l.produce()
	if err != nil {
		return nil, err
	}
	if l.cache {
		l.cached = v
		l.has = true
	}
	return v, nil
}
