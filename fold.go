// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"math"
	"strings"

	"modernc.org/mathutil"
)

// constValue returns the value of a constant expression.
func constValue(e Expr) (Constant, bool) {
	switch x := e.(type) {
	case *Literal:
		return x.Value, true
	case *BinaryExpr:
		return x.Folded, x.Folded != nil
	case *UnaryExpr:
		return x.Folded, x.Folded != nil
	case *SetExpr:
		return x.Folded, x.Folded != nil
	}
	return nil, false
}

func toFloat(c Constant) float64 {
	switch x := c.(type) {
	case IntegerConstant:
		return float64(x)
	case LongConstant:
		return float64(x)
	case RealConstant:
		return float64(x)
	}
	panic(todo("%T", c))
}

func toText(c Constant) string {
	switch x := c.(type) {
	case CharConstant:
		return string(rune(x))
	case StringConstant:
		return string(x)
	}
	panic(todo("%T", c))
}

// foldBinary evaluates x op y, t is the already checked result type. It
// returns nil when the value is not representable in t, an error is returned
// only for a division by zero.
func foldBinary(op Kind, x, y Constant, t Type) (Constant, error) {
	if _, ok := x.Type().(*SetType); ok {
		return foldSet(op, x.(*SetConstant), y.(*SetConstant))
	}

	switch op {
	case IN:
		n, _ := Ordinal(x)
		return BooleanConstant(y.(*SetConstant).has(n)), nil
	case AND:
		return BooleanConstant(bool(x.(BooleanConstant)) && bool(y.(BooleanConstant))), nil
	case OR:
		return BooleanConstant(bool(x.(BooleanConstant)) || bool(y.(BooleanConstant))), nil
	}

	if isRelational(op) {
		return BooleanConstant(compare(op, x, y)), nil
	}

	if isText(x.Type()) {
		return StringConstant(toText(x) + toText(y)), nil
	}

	if t == Real {
		a, b := toFloat(x), toFloat(y)
		switch op {
		case PLUS:
			return RealConstant(a + b), nil
		case MINUS:
			return RealConstant(a - b), nil
		case STAR:
			return RealConstant(a * b), nil
		case SLASH:
			if b == 0 {
				return nil, lexErr("division by zero")
			}

			return RealConstant(a / b), nil
		}
		panic(todo("%v", op))
	}

	a, _ := Ordinal(x)
	b, _ := Ordinal(y)
	var r int64
	var ovf bool
	switch op {
	case PLUS:
		r, ovf = mathutil.AddOverflowInt64(a, b)
	case MINUS:
		r, ovf = mathutil.SubOverflowInt64(a, b)
	case STAR:
		r, ovf = mathutil.MulOverflowInt64(a, b)
	case DIV, MOD:
		switch {
		case b == 0:
			return nil, lexErr("division by zero")
		case a == math.MinInt64 && b == -1:
			ovf = true
		case op == DIV:
			r = a / b
		default:
			r = a % b
		}
	default:
		panic(todo("%v", op))
	}
	if ovf {
		return nil, nil
	}

	if t == Integer {
		if r < math.MinInt32 || r > math.MaxInt32 {
			return nil, nil
		}

		return IntegerConstant(r), nil
	}

	return LongConstant(r), nil
}

func compare(op Kind, x, y Constant) bool {
	var c int
	switch {
	case isNumeric(x.Type()) && (x.Type() == Real || y.Type() == Real):
		a, b := toFloat(x), toFloat(y)
		switch {
		case a < b:
			c = -1
		case a > b:
			c = 1
		}
	case isText(x.Type()):
		c = strings.Compare(toText(x), toText(y))
	default:
		a, _ := Ordinal(x)
		b, _ := Ordinal(y)
		switch {
		case a < b:
			c = -1
		case a > b:
			c = 1
		}
	}
	return cmpResult(op, c)
}

func cmpResult(op Kind, c int) bool {
	switch op {
	case EQ:
		return c == 0
	case NE:
		return c != 0
	case LT:
		return c < 0
	case LE:
		return c <= 0
	case GT:
		return c > 0
	case GE:
		return c >= 0
	}
	panic(todo("%v", op))
}

// foldSet evaluates set operators. Equality compares members, the ordering
// operators compare the number of members.
func foldSet(op Kind, x, y *SetConstant) (Constant, error) {
	elem := x.Elem
	if isUnknown(elem) {
		elem = y.Elem
	}
	switch op {
	case PLUS:
		return newSetConstant(elem, append(append([]int64(nil), x.Members...), y.Members...)), nil
	case MINUS:
		var r []int64
		for _, v := range x.Members {
			if !y.has(v) {
				r = append(r, v)
			}
		}
		return &SetConstant{Elem: elem, Members: r}, nil
	case STAR:
		var r []int64
		for _, v := range x.Members {
			if y.has(v) {
				r = append(r, v)
			}
		}
		return &SetConstant{Elem: elem, Members: r}, nil
	case EQ, NE:
		eq := len(x.Members) == len(y.Members)
		for i := 0; eq && i < len(x.Members); i++ {
			eq = x.Members[i] == y.Members[i]
		}
		return BooleanConstant(eq == (op == EQ)), nil
	case LT, LE, GT, GE:
		c := len(x.Members) - len(y.Members)
		return BooleanConstant(cmpResult(op, c)), nil
	}
	panic(todo("%v", op))
}

// foldUnary evaluates op x. Like foldBinary it returns nil when the result
// overflows.
func foldUnary(op Kind, x Constant) (Constant, error) {
	switch op {
	case NOT:
		return !x.(BooleanConstant), nil
	case MINUS:
		if x == LongConstant(math.MinInt64) {
			return nil, nil
		}

		return Negate(x)
	case PLUS:
		return x, nil
	}
	panic(todo("%v", op))
}
