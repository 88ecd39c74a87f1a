package scanner

import (
	"testing"

	"nickandperla.net/golp/internal/token"
)

func TestScanExpression(t *testing.T) {
	s := NewFromString(`record[0] + 1.5 >= len("ab") && !done`)

	want := []Item{
		{Token: token.IDENT, Value: "record"},
		{Token: token.LBRACKET, Value: "["},
		{Token: token.NUMBER, Value: "0"},
		{Token: token.RBRACKET, Value: "]"},
		{Token: token.PLUS, Value: "+"},
		{Token: token.NUMBER, Value: "1.5"},
		{Token: token.GTE, Value: ">="},
		{Token: token.IDENT, Value: "len"},
		{Token: token.LPAREN, Value: "("},
		{Token: token.STRING, Value: "ab"},
		{Token: token.RPAREN, Value: ")"},
		{Token: token.AND, Value: "&&"},
		{Token: token.NOT, Value: "!"},
		{Token: token.IDENT, Value: "done"},
		{Token: token.EOF},
	}

	for i, w := range want {
		item, err := s.Next()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if item.Token != w.Token || item.Value != w.Value {
			t.Errorf("token %d: got %v %q, want %v %q", i, item.Token, item.Value, w.Token, w.Value)
		}
	}
}

func TestScanKeywords(t *testing.T) {
	s := NewFromString("true false nil truth")

	want := []token.Token{token.TRUE, token.FALSE, token.NIL, token.IDENT, token.EOF}
	for i, w := range want {
		item, err := s.Next()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if item.Token != w {
			t.Errorf("token %d: got %v, want %v", i, item.Token, w)
		}
	}
}

func TestScanStrings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"a\tb"`, "a\tb"},
		{`"a\nb"`, "a\nb"},
		{`"say \"hi\""`, `say "hi"`},
		{`'it\'s'`, "it's"},
	}

	for _, tt := range tests {
		s := NewFromString(tt.input)
		item, err := s.Next()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.input, err)
		}
		if item.Token != token.STRING || item.Value != tt.want {
			t.Errorf("%s: got %v %q, want STRING %q", tt.input, item.Token, item.Value, tt.want)
		}
	}
}

func TestScanUnterminatedString(t *testing.T) {
	s := NewFromString(`"oops`)
	if _, err := s.Next(); err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestScanAttributeAfterNumber(t *testing.T) {
	// "0.str" must scan as NUMBER DOT IDENT, not a malformed decimal.
	s := NewFromString("records[0].str")
	var toks []token.Token
	for {
		item, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		toks = append(toks, item.Token)
		if item.Token == token.EOF {
			break
		}
	}
	want := []token.Token{
		token.IDENT, token.LBRACKET, token.NUMBER, token.RBRACKET,
		token.DOT, token.IDENT, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, toks[i], want[i])
		}
	}
}

func TestScanDotDirectlyAfterNumber(t *testing.T) {
	// The dot here is consumed while deciding whether "3." starts a
	// decimal; it must still come out as a DOT token, not vanish.
	tests := []struct {
		input string
		want  []Item
	}{
		{"3.str", []Item{
			{Token: token.NUMBER, Value: "3"},
			{Token: token.DOT, Value: "."},
			{Token: token.IDENT, Value: "str"},
			{Token: token.EOF},
		}},
		{"3.", []Item{
			{Token: token.NUMBER, Value: "3"},
			{Token: token.DOT, Value: "."},
			{Token: token.EOF},
		}},
		{"12.fields[0]", []Item{
			{Token: token.NUMBER, Value: "12"},
			{Token: token.DOT, Value: "."},
			{Token: token.IDENT, Value: "fields"},
			{Token: token.LBRACKET, Value: "["},
			{Token: token.NUMBER, Value: "0"},
			{Token: token.RBRACKET, Value: "]"},
			{Token: token.EOF},
		}},
	}
	for _, tt := range tests {
		s := NewFromString(tt.input)
		for i, w := range tt.want {
			item, err := s.Next()
			if err != nil {
				t.Fatalf("%q token %d: unexpected error: %v", tt.input, i, err)
			}
			if item.Token != w.Token || item.Value != w.Value {
				t.Errorf("%q token %d: got %v %q, want %v %q",
					tt.input, i, item.Token, item.Value, w.Token, w.Value)
			}
		}
	}
}

func TestPeek(t *testing.T) {
	s := NewFromString("a + b")

	p1, err := s.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	p2, err := s.Peek()
	if err != nil {
		t.Fatalf("second Peek: %v", err)
	}
	if p1 != p2 {
		t.Error("Peek should return the same item without consuming")
	}
	n, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if n.Value != "a" {
		t.Errorf("Next after Peek: got %q, want %q", n.Value, "a")
	}
}

func TestLineTracking(t *testing.T) {
	s := NewFromString("a\n  b")
	item, _ := s.Next()
	if item.Line != 1 {
		t.Errorf("first token line: got %d, want 1", item.Line)
	}
	item, _ = s.Next()
	if item.Line != 2 {
		t.Errorf("second token line: got %d, want 2", item.Line)
	}
}
