package eval

import (
	"strings"
	"testing"

	"nickandperla.net/golp/internal/parser"
	"nickandperla.net/golp/internal/record"
)

func testEnv() *Env {
	env := NewEnv()
	for name, fn := range Builtins() {
		env.Bind(name, fn)
	}
	return env
}

func run(t *testing.T, src string, env *Env) Value {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	v, err := Evaluate(prog, env)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func runErr(t *testing.T, src string, env *Env) error {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	_, err = Evaluate(prog, env)
	if err == nil {
		t.Fatalf("eval %q: expected error, got none", src)
	}
	return err
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2", "3"},
		{"10 - 4 * 2", "2"},
		{"7 / 2", "3.5"},
		{"7 % 3", "1"},
		{"-3 + 5", "2"},
		{`"a" + "b"`, "ab"},
		{"[1] + [2, 3]", "[1, 2, 3]"},
		// AWK-style coercion: numeric strings participate in arithmetic.
		{`"10" + 5`, "15"},
		{`"2.5" * 2`, "5"},
	}
	for _, tt := range tests {
		got := Display(run(t, tt.input, testEnv()))
		if got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestComparisonAndLogic(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 4", false},
		{`"10" > 9`, true}, // numeric, not lexical
		{`"abc" < "abd"`, true},
		{"1 == 1", true},
		{`"5" == 5`, true},
		{"nil == nil", true},
		{"nil == 0", false},
		{"[1, 2] == [1, 2]", true},
		{"[1, 2] != [2, 1]", true},
		{"true && false", false},
		{"true || false", true},
		{"!nil", true},
		{`1 < 2 && "x" == "x"`, true},
	}
	for _, tt := range tests {
		v := run(t, tt.input, testEnv())
		b, ok := v.(Bool)
		if !ok || b.Value != tt.want {
			t.Errorf("%s: got %s, want %v", tt.input, Repr(v), tt.want)
		}
	}
}

func TestShortCircuit(t *testing.T) {
	env := testEnv()
	// The right side would fail; short-circuit must skip it.
	v := run(t, "false && undefined_name", env)
	if b, ok := v.(Bool); !ok || b.Value {
		t.Errorf("expected false, got %s", Repr(v))
	}
	v = run(t, "true || undefined_name", env)
	if b, ok := v.(Bool); !ok || !b.Value {
		t.Errorf("expected true, got %s", Repr(v))
	}
}

func TestTernary(t *testing.T) {
	env := testEnv()
	if got := Display(run(t, `1 < 2 ? "yes" : "no"`, env)); got != "yes" {
		t.Errorf("got %s, want yes", got)
	}
	if got := Display(run(t, `[] ? "yes" : "no"`, env)); got != "no" {
		t.Errorf("empty list should be falsy, got %s", got)
	}
}

func TestIndexing(t *testing.T) {
	env := testEnv()
	env.Bind("record", RecordVal{Rec: record.Record{
		Fields: []string{"alice", "30", "engineer"},
		Raw:    "alice 30 engineer",
	}})

	tests := []struct {
		input string
		want  string
	}{
		{"record[0]", "alice"},
		{"record[2]", "engineer"},
		{"record[-1]", "engineer"},
		{"[10, 20, 30][1]", "20"},
		{"[10, 20, 30][-3]", "10"},
		{`"hello"[1]`, "e"},
		{`"hello"[-1]`, "o"},
	}
	for _, tt := range tests {
		got := Display(run(t, tt.input, env))
		if got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.input, got, tt.want)
		}
	}

	if err := runErr(t, "record[9]", env); !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected out of range error, got %v", err)
	}
	if err := runErr(t, "record[1.5]", env); !strings.Contains(err.Error(), "integer") {
		t.Errorf("expected integer index error, got %v", err)
	}
}

func TestRecordAttributes(t *testing.T) {
	env := testEnv()
	env.Bind("record", RecordVal{Rec: record.Record{
		Fields: []string{"a", "b"},
		Raw:    "a\tb",
	}})

	if got := Display(run(t, "record.str", env)); got != "a\tb" {
		t.Errorf("record.str: got %q", got)
	}
	if got := Display(run(t, "record.fields", env)); got != "[a, b]" {
		t.Errorf("record.fields: got %q", got)
	}
	if err := runErr(t, "record.nope", env); !strings.Contains(err.Error(), "no attribute") {
		t.Errorf("expected attribute error, got %v", err)
	}
}

func TestAssignment(t *testing.T) {
	env := testEnv()
	v := run(t, "x = 3; y = x * 2; y + 1", env)
	if got := Display(v); got != "7" {
		t.Errorf("got %s, want 7", got)
	}
	stored, err := env.Get("y")
	if err != nil {
		t.Fatalf("Get y: %v", err)
	}
	if got := Display(stored); got != "6" {
		t.Errorf("y: got %s, want 6", got)
	}
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`len("hello")`, "5"},
		{"len([1, 2, 3])", "3"},
		{`num("42")`, "42"},
		{`int(3.9)`, "3"},
		{"str(42)", "42"},
		{"abs(-3)", "3"},
		{"round(2.5)", "3"},
		{"sum([1, 2, 3])", "6"},
		{"min([3, 1, 2])", "1"},
		{"max([3, 1, 2])", "3"},
		{`max(["10", "9"])`, "10"},
		{"sort([3, 1, 2])", "[1, 2, 3]"},
		{"reverse([1, 2, 3])", "[3, 2, 1]"},
		{"first([7, 8])", "7"},
		{"last([7, 8])", "8"},
		{"first([])", ""},
		{`split("a b  c")`, "[a, b, c]"},
		{`split("a,b", ",")`, "[a, b]"},
		{`join([1, 2], "-")`, "1-2"},
		{`upper("abc")`, "ABC"},
		{`lower("ABC")`, "abc"},
		{`trim("  x  ")`, "x"},
		{`replace("aaa", "a", "b")`, "bbb"},
		{`contains("hello", "ell")`, "true"},
		{`contains([1, 2], 2)`, "true"},
		{`contains([1, 2], 5)`, "false"},
		{`startswith("golp", "go")`, "true"},
		{`endswith("golp", "lp")`, "true"},
		{`match("[0-9]+", "abc123")`, "123"},
		{`match("([a-z]+)([0-9]+)", "abc123")`, "[abc, 123]"},
		{`match("xyz", "abc")`, ""},
		{`sub("[0-9]", "#", "a1b2")`, "a#b#"},
	}
	for _, tt := range tests {
		got := Display(run(t, tt.input, testEnv()))
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuiltinErrors(t *testing.T) {
	inputs := []string{
		"len()",
		"len(1)",
		`num("abc")`,
		"sum([1, nil])",
		"min([])",
		`match("(", "x")`,
		`split(1)`,
	}
	for _, input := range inputs {
		runErr(t, input, testEnv())
	}
}

func TestDivisionByZero(t *testing.T) {
	err := runErr(t, "1 / 0", testEnv())
	if !strings.Contains(err.Error(), "division by zero") {
		t.Errorf("expected division by zero, got %v", err)
	}
	err = runErr(t, "1 % 0", testEnv())
	if !strings.Contains(err.Error(), "division by zero") {
		t.Errorf("expected division by zero, got %v", err)
	}
}

func TestUndefinedVariable(t *testing.T) {
	err := runErr(t, "nope", testEnv())
	if !strings.Contains(err.Error(), "undefined variable") {
		t.Errorf("expected undefined variable error, got %v", err)
	}
}

func TestSeqValues(t *testing.T) {
	env := testEnv()
	items := []Value{Str{Value: "a"}, Str{Value: "b"}, Str{Value: "c"}}
	env.Bind("things", NewSeq(func() IterFunc {
		i := 0
		return func() (Value, error) {
			if i >= len(items) {
				return nil, record.ErrNoMoreRecords
			}
			v := items[i]
			i++
			return v, nil
		}
	}))

	if got := Display(run(t, "len(things)", env)); got != "3" {
		t.Errorf("len(things): got %s", got)
	}
	// Replayable: a second traversal sees the same elements.
	if got := Display(run(t, "things[0]", env)); got != "a" {
		t.Errorf("things[0]: got %s", got)
	}
	if got := Display(run(t, `join(things, ",")`, env)); got != "a,b,c" {
		t.Errorf("join(things): got %s", got)
	}
}
