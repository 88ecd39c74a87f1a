// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser builds golp expression ASTs from source text.
package parser

import (
	"fmt"
	"strconv"

	"nickandperla.net/golp/internal/expr"
	"nickandperla.net/golp/internal/scanner"
	"nickandperla.net/golp/internal/token"
)

// Operator precedence, lowest to highest.
const (
	lowest = iota
	ternary
	logicalOr
	logicalAnd
	equality
	comparison
	additive
	multiplicative
	prefix
	postfix
)

var precedences = map[token.Token]int{
	token.QUESTION: ternary,
	token.OR:       logicalOr,
	token.AND:      logicalAnd,
	token.EQ:       equality,
	token.NEQ:      equality,
	token.LT:       comparison,
	token.LTE:      comparison,
	token.GT:       comparison,
	token.GTE:      comparison,
	token.PLUS:     additive,
	token.MINUS:    additive,
	token.STAR:     multiplicative,
	token.SLASH:    multiplicative,
	token.PERCENT:  multiplicative,
	token.LPAREN:   postfix,
	token.LBRACKET: postfix,
	token.DOT:      postfix,
}

// Parser parses a golp program from a token stream.
type Parser struct {
	s    *scanner.Scanner
	cur  *scanner.Item
	peek *scanner.Item
}

// Parse parses source text into a Program.
func Parse(src string) (*expr.Program, error) {
	p := &Parser{s: scanner.NewFromString(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	prog := &expr.Program{}
	for p.cur.Token != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)

		if p.cur.Token == token.SEMICOLON {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.cur.Token != token.EOF {
			return nil, p.errorf("unexpected %q", p.cur.Value)
		}
	}
	if len(prog.Stmts) == 0 {
		return nil, fmt.Errorf("empty program")
	}
	return prog, nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	item, err := p.s.Next()
	if err != nil {
		return err
	}
	p.peek = item
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.cur.Line, fmt.Sprintf(format, args...))
}

// parseStatement parses an assignment or a bare expression. The statement
// leaves p.cur on the token following it.
func (p *Parser) parseStatement() (expr.Expr, error) {
	if p.cur.Token == token.IDENT && p.peek.Token == token.ASSIGN {
		name := p.cur.Value
		if err := p.advance(); err != nil { // onto =
			return nil, err
		}
		if err := p.advance(); err != nil { // onto value
			return nil, err
		}
		value, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		return expr.Assign{Name: name, Value: value}, nil
	}
	return p.parseExpression(lowest)
}

// parseExpression parses until it hits a token of precedence <= min.
// On return p.cur is the first token past the expression.
func (p *Parser) parseExpression(min int) (expr.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := precedences[p.cur.Token]
		if !ok || prec <= min {
			return left, nil
		}
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parsePrefix() (expr.Expr, error) {
	item := p.cur
	switch item.Token {
	case token.NUMBER:
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(item.Value, 64)
		if err != nil {
			return nil, p.errorf("bad number %q", item.Value)
		}
		return expr.Num{Value: v, Lit: item.Value}, nil

	case token.STRING:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return expr.Str{Value: item.Value}, nil

	case token.TRUE, token.FALSE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return expr.Bool{Value: item.Token == token.TRUE}, nil

	case token.NIL:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return expr.Nil{}, nil

	case token.IDENT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return expr.Ident{Name: item.Value}, nil

	case token.MINUS, token.NOT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpression(prefix - 1)
		if err != nil {
			return nil, err
		}
		return expr.Unary{Op: item.Token, Operand: operand}, nil

	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	case token.LBRACKET:
		return p.parseList()

	case token.EOF:
		return nil, p.errorf("unexpected end of program")
	}
	return nil, p.errorf("unexpected %q", item.Value)
}

func (p *Parser) parseList() (expr.Expr, error) {
	if err := p.advance(); err != nil { // past [
		return nil, err
	}
	list := expr.List{}
	for p.cur.Token != token.RBRACKET {
		elem, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		list.Elems = append(list.Elems, elem)
		if p.cur.Token == token.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parseInfix(left expr.Expr) (expr.Expr, error) {
	op := p.cur
	switch op.Token {
	case token.LPAREN:
		return p.parseCall(left)

	case token.LBRACKET:
		if err := p.advance(); err != nil {
			return nil, err
		}
		idx, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return expr.Index{Target: left, Index: idx}, nil

	case token.DOT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Token != token.IDENT {
			return nil, p.errorf("expected attribute name after '.', got %q", p.cur.Value)
		}
		name := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return expr.Attr{Target: left, Name: name}, nil

	case token.QUESTION:
		if err := p.advance(); err != nil {
			return nil, err
		}
		then, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		// Right-associative: a ? b : c ? d : e nests in the else arm.
		els, err := p.parseExpression(ternary - 1)
		if err != nil {
			return nil, err
		}
		return expr.Ternary{Cond: left, Then: then, Else: els}, nil
	}

	// Ordinary left-associative binary operator.
	prec := precedences[op.Token]
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return expr.Binary{Op: op.Token, Left: left, Right: right}, nil
}

func (p *Parser) parseCall(target expr.Expr) (expr.Expr, error) {
	if err := p.advance(); err != nil { // past (
		return nil, err
	}
	call := expr.Call{Target: target}
	for p.cur.Token != token.RPAREN {
		arg, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if p.cur.Token == token.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *Parser) expect(tok token.Token) error {
	if p.cur.Token != tok {
		return p.errorf("expected %q, got %q", tok.String(), p.cur.Value)
	}
	return p.advance()
}
