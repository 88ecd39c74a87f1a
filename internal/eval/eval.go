// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"fmt"
	"math"

	"nickandperla.net/golp/internal/expr"
	"nickandperla.net/golp/internal/token"
)

// Evaluate runs a parsed program against env and returns the value of its
// last statement.
func Evaluate(prog *expr.Program, env *Env) (Value, error) {
	var result Value = Null{}
	for _, stmt := range prog.Stmts {
		v, err := evalExpr(stmt, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func evalExpr(e expr.Expr, env *Env) (Value, error) {
	switch node := e.(type) {
	case expr.Num:
		return Num{Value: node.Value}, nil
	case expr.Str:
		return Str{Value: node.Value}, nil
	case expr.Bool:
		return Bool{Value: node.Value}, nil
	case expr.Nil:
		return Null{}, nil
	case expr.Ident:
		return env.Get(node.Name)
	case expr.List:
		items := make([]Value, len(node.Elems))
		for i, el := range node.Elems {
			v, err := evalExpr(el, env)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return List{Items: items}, nil
	case expr.Assign:
		v, err := evalExpr(node.Value, env)
		if err != nil {
			return nil, err
		}
		env.Set(node.Name, v)
		return v, nil
	case expr.Unary:
		return evalUnary(node, env)
	case expr.Binary:
		return evalBinary(node, env)
	case expr.Ternary:
		cond, err := evalExpr(node.Cond, env)
		if err != nil {
			return nil, err
		}
		if Truthy(cond) {
			return evalExpr(node.Then, env)
		}
		return evalExpr(node.Else, env)
	case expr.Index:
		return evalIndex(node, env)
	case expr.Attr:
		return evalAttr(node, env)
	case expr.Call:
		return evalCall(node, env)
	}
	return nil, fmt.Errorf("cannot evaluate %T", e)
}

func evalUnary(node expr.Unary, env *Env) (Value, error) {
	v, err := evalExpr(node.Operand, env)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case token.MINUS:
		n, ok := NumValue(v)
		if !ok {
			return nil, fmt.Errorf("cannot negate %s", Repr(v))
		}
		return Num{Value: -n}, nil
	case token.NOT:
		return Bool{Value: !Truthy(v)}, nil
	}
	return nil, fmt.Errorf("unknown unary operator %s", node.Op)
}

func evalBinary(node expr.Binary, env *Env) (Value, error) {
	// Short-circuit logic first.
	if node.Op == token.AND || node.Op == token.OR {
		left, err := evalExpr(node.Left, env)
		if err != nil {
			return nil, err
		}
		if node.Op == token.AND && !Truthy(left) {
			return Bool{Value: false}, nil
		}
		if node.Op == token.OR && Truthy(left) {
			return Bool{Value: true}, nil
		}
		right, err := evalExpr(node.Right, env)
		if err != nil {
			return nil, err
		}
		return Bool{Value: Truthy(right)}, nil
	}

	left, err := evalExpr(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := evalExpr(node.Right, env)
	if err != nil {
		return nil, err
	}

	switch node.Op {
	case token.EQ:
		return Bool{Value: Equal(left, right)}, nil
	case token.NEQ:
		return Bool{Value: !Equal(left, right)}, nil
	case token.LT, token.LTE, token.GT, token.GTE:
		c, err := compare(left, right)
		if err != nil {
			return nil, err
		}
		switch node.Op {
		case token.LT:
			return Bool{Value: c < 0}, nil
		case token.LTE:
			return Bool{Value: c <= 0}, nil
		case token.GT:
			return Bool{Value: c > 0}, nil
		default:
			return Bool{Value: c >= 0}, nil
		}
	}
	return arith(node.Op, left, right)
}

// compare orders two values the AWK way: numerically when both sides look
// numeric, lexically otherwise.
func compare(a, b Value) (int, error) {
	an, aok := NumValue(a)
	bn, bok := NumValue(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1, nil
		case an > bn:
			return 1, nil
		default:
			return 0, nil
		}
	}
	as, aok := a.(Str)
	bs, bok := b.(Str)
	if aok && bok {
		switch {
		case as.Value < bs.Value:
			return -1, nil
		case as.Value > bs.Value:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, fmt.Errorf("cannot compare %s and %s", Repr(a), Repr(b))
}

func arith(op token.Token, left, right Value) (Value, error) {
	if op == token.PLUS {
		if ls, ok := left.(Str); ok {
			if rs, ok := right.(Str); ok {
				return Str{Value: ls.Value + rs.Value}, nil
			}
		}
		if ll, ok := left.(List); ok {
			if rl, ok := right.(List); ok {
				items := make([]Value, 0, len(ll.Items)+len(rl.Items))
				items = append(items, ll.Items...)
				items = append(items, rl.Items...)
				return List{Items: items}, nil
			}
		}
	}

	ln, lok := NumValue(left)
	rn, rok := NumValue(right)
	if !lok || !rok {
		return nil, fmt.Errorf("unsupported operands for %s: %s and %s", op, Repr(left), Repr(right))
	}
	switch op {
	case token.PLUS:
		return Num{Value: ln + rn}, nil
	case token.MINUS:
		return Num{Value: ln - rn}, nil
	case token.STAR:
		return Num{Value: ln * rn}, nil
	case token.SLASH:
		if rn == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return Num{Value: ln / rn}, nil
	case token.PERCENT:
		if rn == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return Num{Value: math.Mod(ln, rn)}, nil
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}

func evalIndex(node expr.Index, env *Env) (Value, error) {
	target, err := evalExpr(node.Target, env)
	if err != nil {
		return nil, err
	}
	idxVal, err := evalExpr(node.Index, env)
	if err != nil {
		return nil, err
	}
	n, ok := NumValue(idxVal)
	if !ok || n != math.Trunc(n) {
		return nil, fmt.Errorf("index must be an integer, got %s", Repr(idxVal))
	}
	i := int(n)

	switch t := target.(type) {
	case RecordVal:
		f, ok := t.Rec.Field(i)
		if !ok {
			return nil, fmt.Errorf("field index %d out of range (record has %d fields)", i, len(t.Rec.Fields))
		}
		return Str{Value: f}, nil
	case List:
		return indexSlice(t.Items, i)
	case Str:
		runes := []rune(t.Value)
		if i < 0 {
			i += len(runes)
		}
		if i < 0 || i >= len(runes) {
			return nil, fmt.Errorf("string index %d out of range", int(n))
		}
		return Str{Value: string(runes[i])}, nil
	case Seq:
		items, err := t.Drain()
		if err != nil {
			return nil, err
		}
		return indexSlice(items, i)
	}
	return nil, fmt.Errorf("cannot index %s", Repr(target))
}

func indexSlice(items []Value, i int) (Value, error) {
	if i < 0 {
		i += len(items)
	}
	if i < 0 || i >= len(items) {
		return nil, fmt.Errorf("index %d out of range (length %d)", i, len(items))
	}
	return items[i], nil
}

func evalAttr(node expr.Attr, env *Env) (Value, error) {
	target, err := evalExpr(node.Target, env)
	if err != nil {
		return nil, err
	}
	if r, ok := target.(RecordVal); ok {
		switch node.Name {
		case "str":
			return Str{Value: r.Rec.Raw}, nil
		case "fields":
			items := make([]Value, len(r.Rec.Fields))
			for i, f := range r.Rec.Fields {
				items[i] = Str{Value: f}
			}
			return List{Items: items}, nil
		}
	}
	return nil, fmt.Errorf("%s has no attribute %q", Repr(target), node.Name)
}

func evalCall(node expr.Call, env *Env) (Value, error) {
	target, err := evalExpr(node.Target, env)
	if err != nil {
		return nil, err
	}
	fn, ok := target.(Builtin)
	if !ok {
		return nil, fmt.Errorf("%s is not callable", Repr(target))
	}
	args := make([]Value, len(node.Args))
	for i, a := range node.Args {
		v, err := evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fn.Fn(args)
}
