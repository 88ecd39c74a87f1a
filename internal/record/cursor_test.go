package record

import "testing"

func TestCursorStability(t *testing.T) {
	seq := NewSequence(&SliceProducer{Recs: makeRecords("a", "b")})
	accesses := 0
	c := NewCursor(seq.Iter(), func() error {
		accesses++
		return nil
	})

	r1, err := c.Get()
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	r2, err := c.Get()
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if r1.Raw != "a" || r2.Raw != "a" {
		t.Errorf("expected stable current record %q, got %q then %q", "a", r1.Raw, r2.Raw)
	}
	if accesses != 2 {
		t.Errorf("observer should fire on every Get, fired %d times", accesses)
	}

	if err := c.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	r3, err := c.Get()
	if err != nil {
		t.Fatalf("Get after Advance: %v", err)
	}
	if r3.Raw != "b" {
		t.Errorf("expected %q after Advance, got %q", "b", r3.Raw)
	}
	// Advance itself must not fire the observer.
	if accesses != 3 {
		t.Errorf("expected 3 observer firings, got %d", accesses)
	}
}

func TestCursorExhaustion(t *testing.T) {
	seq := NewSequence(&SliceProducer{Recs: makeRecords("only")})
	c := NewCursor(seq.Iter(), nil)

	if _, err := c.Get(); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := c.Advance(); err != ErrNoMoreRecords {
		t.Errorf("expected ErrNoMoreRecords, got %v", err)
	}
	// The current record survives a failed Advance.
	r, err := c.Get()
	if err != nil || r.Raw != "only" {
		t.Errorf("Get after exhausted Advance: got %q, %v", r.Raw, err)
	}
}

func TestCursorEmptyInput(t *testing.T) {
	seq := NewSequence(&SliceProducer{})
	c := NewCursor(seq.Iter(), nil)

	if _, err := c.Get(); err != ErrNoMoreRecords {
		t.Fatalf("expected ErrNoMoreRecords on empty input, got %v", err)
	}
	// The failed first fetch is not cached; Get keeps reporting exhaustion.
	if _, err := c.Get(); err != ErrNoMoreRecords {
		t.Errorf("expected ErrNoMoreRecords on retry, got %v", err)
	}
}

type blockingObserverErr struct{}

func (blockingObserverErr) Error() string { return "access denied" }

func TestCursorObserverError(t *testing.T) {
	seq := NewSequence(&SliceProducer{Recs: makeRecords("a")})
	c := NewCursor(seq.Iter(), func() error { return blockingObserverErr{} })

	if _, err := c.Get(); err == nil {
		t.Fatal("expected observer error to abort Get")
	}
}
