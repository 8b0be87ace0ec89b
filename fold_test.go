// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"math"
	"testing"
)

func TestBinaryType(t *testing.T) {
	intSet := &SetType{Elem: Integer}
	for i, test := range []struct {
		op   Kind
		l, r Type
		want Type
	}{
		{PLUS, Integer, Integer, Integer},
		{PLUS, Integer, Long, Long},
		{STAR, Long, Real, Real},
		{SLASH, Integer, Integer, Real},
		{DIV, Integer, Integer, Integer},
		{MOD, Long, Integer, Long},
		{PLUS, Char, String, String},
		{PLUS, Char, Char, String},
		{AND, Boolean, Boolean, Boolean},
		{LT, Integer, Real, Boolean},
		{EQ, Char, String, Boolean},
		{PLUS, intSet, intSet, intSet},
		{LE, intSet, intSet, Boolean},
		{IN, Integer, intSet, Boolean},
		{PLUS, Unknown, Integer, Unknown},
		{EQ, Unknown, Integer, Boolean},
		{PLUS, &RangeType{Lo: 1, Hi: 10, Base: Integer}, Integer, Integer},
	} {
		g, err := binaryType(test.op, test.l, test.r)
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}

		if g != test.want {
			t.Errorf("%d: %v %v %v: got %v, want %v", i, test.l, test.op, test.r, g, test.want)
		}
	}
}

func TestBinaryTypeErrors(t *testing.T) {
	enum := &EnumType{Members: []string{"a", "b"}}
	for i, test := range []struct {
		op   Kind
		l, r Type
	}{
		{DIV, Real, Integer},
		{SLASH, Char, Char},
		{AND, Integer, Boolean},
		{PLUS, Boolean, Boolean},
		{LT, Boolean, Integer},
		{EQ, enum, Integer},
		{IN, Real, &SetType{Elem: Integer}},
		{IN, Char, &SetType{Elem: Integer}},
	} {
		if _, err := binaryType(test.op, test.l, test.r); err == nil {
			t.Errorf("%d: %v %v %v: unexpected success", i, test.l, test.op, test.r)
		}
	}
}

func TestUnaryType(t *testing.T) {
	if g, err := unaryType(MINUS, &RangeType{Lo: 1, Hi: 3, Base: Integer}); err != nil || g != Integer {
		t.Fatalf("got %v, %v", g, err)
	}

	if g, err := unaryType(NOT, Boolean); err != nil || g != Boolean {
		t.Fatalf("got %v, %v", g, err)
	}

	if _, err := unaryType(NOT, Integer); err == nil {
		t.Fatal("unexpected success")
	}

	if _, err := unaryType(MINUS, Char); err == nil {
		t.Fatal("unexpected success")
	}
}

func TestConvertibleTo(t *testing.T) {
	rec := &RecordType{}
	for i, test := range []struct {
		from, to Type
		want     bool
	}{
		{Integer, Real, true},
		{Long, Integer, true},
		{Real, Integer, false},
		{Char, String, true},
		{String, Char, false},
		{&RangeType{Lo: 0, Hi: 9, Base: Integer}, Integer, true},
		{&SetType{Elem: Unknown}, &SetType{Elem: Char}, true},
		{&SetType{Elem: Char}, &SetType{Elem: Integer}, false},
		{&ReferenceType{Name: "r", Elem: rec}, &ReferenceType{Name: "r", Elem: rec}, true},
		{&ReferenceType{Name: "r", Elem: rec}, &ReferenceType{Name: "s", Elem: &RecordType{}}, false},
		{Unknown, rec, true},
	} {
		if g := ConvertibleTo(test.from, test.to); g != test.want {
			t.Errorf("%d: %v -> %v: got %v, want %v", i, test.from, test.to, g, test.want)
		}
	}
}

func TestOrdinalBounds(t *testing.T) {
	for i, test := range []struct {
		t      Type
		lo, hi int64
		ok     bool
	}{
		{Integer, math.MinInt32, math.MaxInt32, true},
		{Char, 0, 255, true},
		{Boolean, 0, 1, true},
		{&EnumType{Members: []string{"a", "b", "c"}}, 0, 2, true},
		{&RangeType{Lo: -5, Hi: 5, Base: Integer}, -5, 5, true},
		{Real, 0, 0, false},
		{String, 0, 0, false},
	} {
		lo, hi, ok := OrdinalBounds(test.t)
		if lo != test.lo || hi != test.hi || ok != test.ok {
			t.Errorf("%d: %v: got %v %v %v", i, test.t, lo, hi, ok)
		}
	}
}

func TestFoldBinary(t *testing.T) {
	for i, test := range []struct {
		op   Kind
		x, y Constant
		t    Type
		want Constant
	}{
		{PLUS, IntegerConstant(1), IntegerConstant(2), Integer, IntegerConstant(3)},
		{MINUS, IntegerConstant(1), IntegerConstant(2), Integer, IntegerConstant(-1)},
		{STAR, LongConstant(1 << 40), IntegerConstant(2), Long, LongConstant(1 << 41)},
		{DIV, IntegerConstant(7), IntegerConstant(2), Integer, IntegerConstant(3)},
		{MOD, IntegerConstant(-7), IntegerConstant(2), Integer, IntegerConstant(-1)},
		{SLASH, IntegerConstant(1), IntegerConstant(4), Real, RealConstant(0.25)},
		{PLUS, RealConstant(0.5), IntegerConstant(1), Real, RealConstant(1.5)},
		{PLUS, CharConstant('a'), StringConstant("bc"), String, StringConstant("abc")},
		{LT, StringConstant("abc"), StringConstant("abd"), Boolean, BooleanConstant(true)},
		{EQ, CharConstant('a'), StringConstant("a"), Boolean, BooleanConstant(true)},
		{GE, IntegerConstant(2), RealConstant(2.5), Boolean, BooleanConstant(false)},
		{NE, BooleanConstant(true), BooleanConstant(false), Boolean, BooleanConstant(true)},
		{AND, BooleanConstant(true), BooleanConstant(false), Boolean, BooleanConstant(false)},
		{OR, BooleanConstant(true), BooleanConstant(false), Boolean, BooleanConstant(true)},
		{IN, IntegerConstant(3), newSetConstant(Integer, []int64{1, 3}), Boolean, BooleanConstant(true)},
		{IN, IntegerConstant(2), newSetConstant(Integer, []int64{1, 3}), Boolean, BooleanConstant(false)},
	} {
		g, err := foldBinary(test.op, test.x, test.y, test.t)
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}

		if g != test.want {
			t.Errorf("%d: %v %v %v: got %#v, want %#v", i, test.x, test.op, test.y, g, test.want)
		}
	}
}

func TestFoldOverflow(t *testing.T) {
	for i, test := range []struct {
		op   Kind
		x, y Constant
		t    Type
	}{
		{PLUS, IntegerConstant(math.MaxInt32), IntegerConstant(1), Integer},
		{STAR, IntegerConstant(1 << 20), IntegerConstant(1 << 20), Integer},
		{PLUS, LongConstant(math.MaxInt64), IntegerConstant(1), Long},
		{MINUS, LongConstant(math.MinInt64), IntegerConstant(1), Long},
		{DIV, LongConstant(math.MinInt64), IntegerConstant(-1), Long},
	} {
		g, err := foldBinary(test.op, test.x, test.y, test.t)
		if err != nil || g != nil {
			t.Errorf("%d: got %v, %v, want nil, nil", i, g, err)
		}
	}

	if _, err := foldBinary(DIV, IntegerConstant(1), IntegerConstant(0), Integer); err == nil {
		t.Error("div by zero: unexpected success")
	}

	if _, err := foldBinary(SLASH, RealConstant(1), IntegerConstant(0), Real); err == nil {
		t.Error("/ by zero: unexpected success")
	}
}

func TestFoldSet(t *testing.T) {
	a := newSetConstant(Integer, []int64{1, 2, 3})
	b := newSetConstant(Integer, []int64{3, 4})
	for i, test := range []struct {
		op   Kind
		want string
	}{
		{PLUS, "[1, 2, 3, 4]"},
		{MINUS, "[1, 2]"},
		{STAR, "[3]"},
		{EQ, "false"},
		{NE, "true"},
		{GT, "true"},
		{LT, "false"},
		{GE, "true"},
	} {
		g, err := foldBinary(test.op, a, b, nil)
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}

		if g.String() != test.want {
			t.Errorf("%d: %v %v %v: got %v, want %v", i, a, test.op, b, g, test.want)
		}
	}

	// Ordering compares the number of members, not inclusion.
	c := newSetConstant(Integer, []int64{7, 8})
	if g, _ := foldBinary(LE, b, c, nil); g != BooleanConstant(true) {
		t.Errorf("got %v, want true", g)
	}
}

func TestFoldUnary(t *testing.T) {
	if g, err := foldUnary(NOT, BooleanConstant(false)); err != nil || g != BooleanConstant(true) {
		t.Fatalf("got %v, %v", g, err)
	}

	if g, err := foldUnary(MINUS, IntegerConstant(3)); err != nil || g != IntegerConstant(-3) {
		t.Fatalf("got %v, %v", g, err)
	}

	if g, err := foldUnary(PLUS, RealConstant(2)); err != nil || g != RealConstant(2) {
		t.Fatalf("got %v, %v", g, err)
	}

	if g, err := foldUnary(MINUS, LongConstant(math.MinInt64)); err != nil || g != nil {
		t.Fatalf("got %v, %v, want nil, nil", g, err)
	}
}
