// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines golp expression token types.
package token

// Token represents a golp token type.
type Token int

const (
	ILLEGAL Token = iota
	EOF

	IDENT  // record, printer, foo
	NUMBER // 42, 3.14
	STRING // "text", 'text'

	// Operators
	ASSIGN  // =
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	EQ      // ==
	NEQ     // !=
	LT      // <
	LTE     // <=
	GT      // >
	GTE     // >=
	NOT     // !
	AND     // &&
	OR      // ||

	// Delimiters
	QUESTION  // ?
	COLON     // :
	SEMICOLON // ;
	COMMA     // ,
	DOT       // .
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]

	// Keywords
	TRUE
	FALSE
	NIL
)

var names = map[Token]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	NUMBER:    "NUMBER",
	STRING:    "STRING",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	EQ:        "==",
	NEQ:       "!=",
	LT:        "<",
	LTE:       "<=",
	GT:        ">",
	GTE:       ">=",
	NOT:       "!",
	AND:       "&&",
	OR:        "||",
	QUESTION:  "?",
	COLON:     ":",
	SEMICOLON: ";",
	COMMA:     ",",
	DOT:       ".",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	TRUE:      "true",
	FALSE:     "false",
	NIL:       "nil",
}

// String returns the string representation of a token.
func (t Token) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "UNKNOWN"
}

var keywords = map[string]Token{
	"true":  TRUE,
	"false": FALSE,
	"nil":   NIL,
}

// Lookup returns the keyword token for an identifier, or IDENT.
func Lookup(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
