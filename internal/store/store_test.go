package store

import (
	"os"
	"testing"
)

func sampleEntries() []Entry {
	return []Entry{
		{RunID: "r1", Ts: "2026-01-01T10:00:00Z", Program: "len(records)", InputFormat: "awk", OutputFormat: "auto", Outcome: "ok"},
		{RunID: "r2", Ts: "2026-01-01T10:05:00Z", Program: "record[0]", InputFormat: "csv", OutputFormat: "json", Outcome: "ok"},
		{RunID: "r3", Ts: "2026-01-01T10:10:00Z", Program: "1 / 0", InputFormat: "awk", OutputFormat: "auto", Outcome: "division by zero"},
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	for _, e := range sampleEntries() {
		if err := s.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].RunID != "r3" || got[1].RunID != "r2" {
		t.Errorf("expected newest first, got %s, %s", got[0].RunID, got[1].RunID)
	}

	got, err = s.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected all 3 entries, got %d", len(got))
	}
}

func TestSQLiteStore(t *testing.T) {
	// Create temp file
	f, err := os.CreateTemp("", "golp-test-*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}

	for _, e := range sampleEntries() {
		if err := s.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := s.Recent(1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 1 || got[0].RunID != "r3" {
		t.Fatalf("expected r3 newest, got %+v", got)
	}
	if got[0].Outcome != "division by zero" {
		t.Errorf("outcome = %q", got[0].Outcome)
	}

	// Close and reopen to verify persistence
	s.Close()

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s2.Close()

	got, err = s2.Recent(10)
	if err != nil {
		t.Fatalf("Recent after reopen failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 entries after reopen, got %d", len(got))
	}
}
