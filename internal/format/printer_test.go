package format

import (
	"errors"
	"strings"
	"testing"

	"nickandperla.net/golp/internal/eval"
	"nickandperla.net/golp/internal/record"
)

func rec(fields ...string) eval.RecordVal {
	return eval.RecordVal{Rec: record.Record{Fields: fields, Raw: strings.Join(fields, " ")}}
}

func seqOf(items ...eval.Value) eval.Seq {
	return eval.NewSeq(func() eval.IterFunc {
		i := 0
		return func() (eval.Value, error) {
			if i >= len(items) {
				return nil, record.ErrNoMoreRecords
			}
			v := items[i]
			i++
			return v, nil
		}
	})
}

func print(t *testing.T, name string, result eval.Value, header []string) string {
	t.Helper()
	var out strings.Builder
	p, err := New(name, &out, false)
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	if err := p.PrintResult(result, header); err != nil {
		t.Fatalf("PrintResult(%q): %v", name, err)
	}
	return out.String()
}

func TestUnknownFormat(t *testing.T) {
	_, err := New("xml", nil, false)
	var ufe *UnknownFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UnknownFormatError, got %v", err)
	}
	if ufe.Name != "xml" {
		t.Errorf("error should carry the bad name, got %q", ufe.Name)
	}
}

func TestAwkPrinter(t *testing.T) {
	got := print(t, "awk", seqOf(rec("a", "1"), rec("b", "2")), nil)
	want := "a 1\nb 2\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = print(t, "awk", eval.Str{Value: "hello"}, nil)
	if got != "hello\n" {
		t.Errorf("scalar: got %q", got)
	}

	got = print(t, "awk", seqOf(rec("x")), []string{"col"})
	if got != "col\nx\n" {
		t.Errorf("with header: got %q", got)
	}

	if got := print(t, "awk", eval.Null{}, nil); got != "" {
		t.Errorf("nil result should print nothing, got %q", got)
	}
}

func TestCsvPrinter(t *testing.T) {
	got := print(t, "csv", seqOf(rec("a", "x,y"), rec("b", "2")), []string{"k", "v"})
	want := "k,v\na,\"x,y\"\nb,2\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTsvPrinter(t *testing.T) {
	got := print(t, "tsv", seqOf(rec("a", "1")), nil)
	if got != "a\t1\n" {
		t.Errorf("got %q", got)
	}
}

func TestMarkdownPrinter(t *testing.T) {
	got := print(t, "markdown", seqOf(rec("alice", "30"), rec("bob", "7")), []string{"name", "age"})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
	if lines[0] != "| name  | age |" {
		t.Errorf("header line: got %q", lines[0])
	}
	if lines[1] != "| ----- | --- |" {
		t.Errorf("rule line: got %q", lines[1])
	}
	if lines[2] != "| alice | 30  |" {
		t.Errorf("row: got %q", lines[2])
	}
}

func TestMarkdownWithoutHeader(t *testing.T) {
	got := print(t, "markdown", seqOf(rec("a", "b")), nil)
	if !strings.HasPrefix(got, "| 0 | 1 |") {
		t.Errorf("expected numbered header, got %q", got)
	}
}

func TestJsonPrinter(t *testing.T) {
	got := print(t, "json", seqOf(rec("alice", "30")), []string{"name", "age"})
	want := `[{"age":"30","name":"alice"}]` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = print(t, "json", eval.Num{Value: 3}, nil)
	if got != "3\n" {
		t.Errorf("scalar: got %q", got)
	}

	got = print(t, "json", seqOf(rec("a"), rec("b")), nil)
	want = `[["a"],["b"]]` + "\n"
	if got != want {
		t.Errorf("no header: got %q, want %q", got, want)
	}
}

func TestStrAndReprPrinters(t *testing.T) {
	if got := print(t, "str", eval.Str{Value: "x"}, nil); got != "x\n" {
		t.Errorf("str: got %q", got)
	}
	if got := print(t, "repr", eval.Str{Value: "x"}, nil); got != "\"x\"\n" {
		t.Errorf("repr: got %q", got)
	}
	if got := print(t, "repr", eval.Null{}, nil); got != "nil\n" {
		t.Errorf("repr nil: got %q", got)
	}
	got := print(t, "repr", seqOf(eval.Num{Value: 1}, eval.Num{Value: 2}), nil)
	if got != "[1, 2]\n" {
		t.Errorf("repr seq: got %q", got)
	}
}

func TestAutoPrinter(t *testing.T) {
	// Not a TTY: tables render awk-style.
	got := print(t, "auto", seqOf(rec("a", "1")), nil)
	if got != "a 1\n" {
		t.Errorf("auto table: got %q", got)
	}
	got = print(t, "auto", eval.Num{Value: 42}, nil)
	if got != "42\n" {
		t.Errorf("auto scalar: got %q", got)
	}

	// TTY: markdown.
	var out strings.Builder
	p, _ := New("auto", &out, true)
	if err := p.PrintResult(seqOf(rec("a", "1")), []string{"k", "v"}); err != nil {
		t.Fatalf("PrintResult: %v", err)
	}
	if !strings.HasPrefix(out.String(), "| k | v |") {
		t.Errorf("auto tty: got %q", out.String())
	}
}

func TestStreamingDrivesLazyRounds(t *testing.T) {
	// The awk printer must pull the sequence element by element, not
	// materialize it up front.
	var pulled []int
	i := 0
	seq := eval.NewOneShotSeq(func() (eval.Value, error) {
		if i >= 3 {
			return nil, record.ErrNoMoreRecords
		}
		i++
		pulled = append(pulled, i)
		return eval.Num{Value: float64(i)}, nil
	})

	var out strings.Builder
	p, _ := New("awk", &out, false)
	if err := p.PrintResult(seq, nil); err != nil {
		t.Fatalf("PrintResult: %v", err)
	}
	if out.String() != "1\n2\n3\n" {
		t.Errorf("got %q", out.String())
	}
	if len(pulled) != 3 {
		t.Errorf("expected 3 pulls, got %d", len(pulled))
	}
}

func TestPrinterPropagatesSequenceError(t *testing.T) {
	boom := errors.New("round failed")
	seq := eval.NewOneShotSeq(func() (eval.Value, error) {
		return nil, boom
	})
	var out strings.Builder
	p, _ := New("awk", &out, false)
	if err := p.PrintResult(seq, nil); !errors.Is(err, boom) {
		t.Errorf("expected sequence error to propagate, got %v", err)
	}
}
