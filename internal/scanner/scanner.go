// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming Unicode-aware lexer for golp
// expressions.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"nickandperla.net/golp/internal/token"
)

// Scanner tokenizes golp input rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	peeked *Item
	line   int // Current line number (1-based)
}

// Item represents a scanned token with its value.
type Item struct {
	Token token.Token
	Value string
	Line  int // Line number where this token started
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int {
	return s.line
}

// Peek returns the next item without consuming it.
func (s *Scanner) Peek() (*Item, error) {
	if s.peeked != nil {
		return s.peeked, nil
	}
	item, err := s.Next()
	if err != nil {
		return nil, err
	}
	s.peeked = item
	return item, nil
}

// Next returns the next token from the input.
func (s *Scanner) Next() (*Item, error) {
	if s.peeked != nil {
		item := s.peeked
		s.peeked = nil
		return item, nil
	}

	if err := s.skipWhitespace(); err != nil {
		return nil, err
	}

	r, _, err := s.reader.ReadRune()
	if err == io.EOF {
		return &Item{Token: token.EOF, Line: s.line}, nil
	}
	if err != nil {
		return nil, err
	}

	startLine := s.line

	switch {
	case isIdentStart(r):
		s.reader.UnreadRune()
		return s.scanIdent(startLine)
	case unicode.IsDigit(r):
		s.reader.UnreadRune()
		return s.scanNumber(startLine)
	case r == '"' || r == '\'':
		return s.scanString(r, startLine)
	}

	// Single- and double-rune operators.
	switch r {
	case '=':
		if s.peekRuneIs('=') {
			return &Item{Token: token.EQ, Value: "==", Line: startLine}, nil
		}
		return &Item{Token: token.ASSIGN, Value: "=", Line: startLine}, nil
	case '!':
		if s.peekRuneIs('=') {
			return &Item{Token: token.NEQ, Value: "!=", Line: startLine}, nil
		}
		return &Item{Token: token.NOT, Value: "!", Line: startLine}, nil
	case '<':
		if s.peekRuneIs('=') {
			return &Item{Token: token.LTE, Value: "<=", Line: startLine}, nil
		}
		return &Item{Token: token.LT, Value: "<", Line: startLine}, nil
	case '>':
		if s.peekRuneIs('=') {
			return &Item{Token: token.GTE, Value: ">=", Line: startLine}, nil
		}
		return &Item{Token: token.GT, Value: ">", Line: startLine}, nil
	case '&':
		if s.peekRuneIs('&') {
			return &Item{Token: token.AND, Value: "&&", Line: startLine}, nil
		}
		return &Item{Token: token.ILLEGAL, Value: "&", Line: startLine}, nil
	case '|':
		if s.peekRuneIs('|') {
			return &Item{Token: token.OR, Value: "||", Line: startLine}, nil
		}
		return &Item{Token: token.ILLEGAL, Value: "|", Line: startLine}, nil
	case '+':
		return &Item{Token: token.PLUS, Value: "+", Line: startLine}, nil
	case '-':
		return &Item{Token: token.MINUS, Value: "-", Line: startLine}, nil
	case '*':
		return &Item{Token: token.STAR, Value: "*", Line: startLine}, nil
	case '/':
		return &Item{Token: token.SLASH, Value: "/", Line: startLine}, nil
	case '%':
		return &Item{Token: token.PERCENT, Value: "%", Line: startLine}, nil
	case '?':
		return &Item{Token: token.QUESTION, Value: "?", Line: startLine}, nil
	case ':':
		return &Item{Token: token.COLON, Value: ":", Line: startLine}, nil
	case ';':
		return &Item{Token: token.SEMICOLON, Value: ";", Line: startLine}, nil
	case ',':
		return &Item{Token: token.COMMA, Value: ",", Line: startLine}, nil
	case '.':
		return &Item{Token: token.DOT, Value: ".", Line: startLine}, nil
	case '(':
		return &Item{Token: token.LPAREN, Value: "(", Line: startLine}, nil
	case ')':
		return &Item{Token: token.RPAREN, Value: ")", Line: startLine}, nil
	case '[':
		return &Item{Token: token.LBRACKET, Value: "[", Line: startLine}, nil
	case ']':
		return &Item{Token: token.RBRACKET, Value: "]", Line: startLine}, nil
	}

	return &Item{Token: token.ILLEGAL, Value: string(r), Line: startLine}, nil
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent(startLine int) (*Item, error) {
	var sb strings.Builder
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !isIdentChar(r) {
			s.reader.UnreadRune()
			break
		}
		sb.WriteRune(r)
	}
	name := sb.String()
	return &Item{Token: token.Lookup(name), Value: name, Line: startLine}, nil
}

// scanNumber scans an integer or decimal literal.
func (s *Scanner) scanNumber(startLine int) (*Item, error) {
	var sb strings.Builder
	sawDot := false
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if r == '.' && !sawDot {
			// Only part of the number when followed by a digit; otherwise
			// it is an attribute access like 3.str. The dot is already
			// consumed and Peek invalidates UnreadRune, so hand it to the
			// next call as a pending DOT instead of pushing it back.
			b, perr := s.reader.Peek(1)
			if perr != nil || b[0] < '0' || b[0] > '9' {
				s.peeked = &Item{Token: token.DOT, Value: ".", Line: s.line}
				break
			}
			sawDot = true
			sb.WriteRune(r)
			continue
		}
		if !unicode.IsDigit(r) {
			s.reader.UnreadRune()
			break
		}
		sb.WriteRune(r)
	}
	return &Item{Token: token.NUMBER, Value: sb.String(), Line: startLine}, nil
}

// scanString scans a quoted string literal with backslash escapes.
func (s *Scanner) scanString(quote rune, startLine int) (*Item, error) {
	var sb strings.Builder
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			return nil, fmt.Errorf("line %d: unterminated string", startLine)
		}
		if err != nil {
			return nil, err
		}
		if r == quote {
			return &Item{Token: token.STRING, Value: sb.String(), Line: startLine}, nil
		}
		if r == '\n' {
			s.line++
		}
		if r == '\\' {
			esc, _, err := s.reader.ReadRune()
			if err != nil {
				return nil, fmt.Errorf("line %d: unterminated string", startLine)
			}
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '\\', '"', '\'':
				sb.WriteRune(esc)
			default:
				sb.WriteRune('\\')
				sb.WriteRune(esc)
			}
			continue
		}
		sb.WriteRune(r)
	}
}

// peekRuneIs consumes the next rune when it matches want.
func (s *Scanner) peekRuneIs(want rune) bool {
	r, _, err := s.reader.ReadRune()
	if err != nil {
		return false
	}
	if r == want {
		return true
	}
	s.reader.UnreadRune()
	return false
}

// skipWhitespace consumes and discards whitespace, tracking line numbers.
func (s *Scanner) skipWhitespace() error {
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if r == '\n' {
			s.line++
		}
		if !unicode.IsSpace(r) {
			s.reader.UnreadRune()
			return nil
		}
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isIdentChar returns true if the rune is valid in an identifier.
func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
