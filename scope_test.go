// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"testing"

	"modernc.org/token"
)

func TestScopesUniverse(t *testing.T) {
	s := NewScopes()
	for _, v := range []struct {
		nm string
		t  Type
	}{
		{"Integer", Integer},
		{"LONGINT", Long},
		{"real", Real},
		{"char", Char},
		{"boolean", Boolean},
		{"string", String},
	} {
		g, err := s.LookupType(v.nm)
		if err != nil {
			t.Fatal(err)
		}

		if g != v.t {
			t.Fatalf("%s: got %v, want %v", v.nm, g, v.t)
		}
	}
}

func TestScopesLookup(t *testing.T) {
	s := NewScopes()
	s.Enter("program")
	if _, err := s.RegisterVariable("X", Integer); err != nil {
		t.Fatal(err)
	}

	s.Enter("p")
	if _, err := s.RegisterVariable("y", Real); err != nil {
		t.Fatal(err)
	}

	b, hops := s.Lookup("x")
	if b == nil || b.Name != "x" || hops != 1 {
		t.Fatalf("got %+v %v", b, hops)
	}

	if b, hops = s.Lookup("Y"); b == nil || hops != 0 || b.Type != Real {
		t.Fatalf("got %+v %v", b, hops)
	}

	if b, hops = s.Lookup("integer"); b == nil || hops != 2 || b.Kind != TypeBinding {
		t.Fatalf("got %+v %v", b, hops)
	}

	if b, hops = s.Lookup("z"); b != nil || hops != -1 {
		t.Fatalf("got %+v %v", b, hops)
	}

	if s.ContainsLocalIdentifier("x") || !s.ContainsLocalIdentifier("y") {
		t.Fatal("ContainsLocalIdentifier")
	}

	s.Leave()
	if _, hops := s.Lookup("y"); hops != -1 {
		t.Fatal("y visible after Leave")
	}
}

func TestScopesDuplicates(t *testing.T) {
	s := NewScopes()
	s.Enter("program")
	if _, err := s.RegisterVariable("a", Integer); err != nil {
		t.Fatal(err)
	}

	if _, err := s.RegisterConstant("A", IntegerConstant(1)); err == nil {
		t.Fatal("unexpected success")
	}

	if _, err := s.RegisterType("a", Real); err == nil {
		t.Fatal("unexpected success")
	}

	// Shadowing an outer binding is fine.
	if _, err := s.RegisterType("integer", Long); err != nil {
		t.Fatal(err)
	}

	if g, _ := s.LookupType("integer"); g != Long {
		t.Fatalf("got %v, want %v", g, Long)
	}

	if g, e := len(s.Frame(s.Current())), 1; g != e {
		t.Fatalf("got %v slots, want %v", g, e)
	}
}

func TestScopesFrame(t *testing.T) {
	s := NewScopes()
	id := s.Enter("program")
	a, _ := s.RegisterVariable("a", Integer)
	s.RegisterConstant("k", IntegerConstant(1))
	b, _ := s.RegisterVariable("b", &ArrayType{Dim: &RangeType{Lo: 1, Hi: 3, Base: Integer}, Elem: Real})
	if a.Slot != 0 || b.Slot != 1 {
		t.Fatalf("got slots %v %v", a.Slot, b.Slot)
	}

	frame := s.Frame(id)
	if g, e := len(frame), 2; g != e {
		t.Fatalf("got %v slots, want %v", g, e)
	}

	if g, e := frame[0].Kind, SlotKindOf(Integer); g != e {
		t.Fatalf("got %v, want %v", g, e)
	}

	if g, e := frame[1].Kind, SlotObject; g != e {
		t.Fatalf("got %v, want %v", g, e)
	}

	nodes := s.CreateInitializationNodes(token.Position{})
	if g, e := len(nodes), 1; g != e {
		t.Fatalf("got %v init nodes, want %v", g, e)
	}

	if n := nodes[0].(*InitStmt); n.Slot != 1 || n.Name != "b" {
		t.Fatalf("got %+v", n)
	}
}

func TestScopesConstants(t *testing.T) {
	s := NewScopes()
	s.Enter("program")
	s.RegisterConstant("max", IntegerConstant(10))
	s.RegisterVariable("v", Integer)
	if _, err := s.RegisterConstantFrom("min", "max", true); err != nil {
		t.Fatal(err)
	}

	if g, err := s.LookupConstant("MIN"); err != nil || g != IntegerConstant(-10) {
		t.Fatalf("got %v, %v", g, err)
	}

	if _, err := s.RegisterConstantFrom("top", "max", false); err != nil {
		t.Fatal(err)
	}

	if g, _ := s.LookupConstant("top"); g != IntegerConstant(10) {
		t.Fatalf("got %v", g)
	}

	if _, err := s.RegisterConstantFrom("w", "v", false); err == nil {
		t.Fatal("unexpected success")
	}

	if _, err := s.RegisterConstantFrom("w", "nope", false); err == nil {
		t.Fatal("unexpected success")
	}

	s.RegisterConstant("s", StringConstant("abc"))
	if _, err := s.RegisterConstantFrom("t", "s", true); err == nil {
		t.Fatal("unexpected success")
	}

	if s.IsConstant("v") || !s.IsVariable("v") || !s.IsConstant("max") {
		t.Fatal("binding kinds")
	}
}

func TestScopesEnum(t *testing.T) {
	s := NewScopes()
	s.Enter("program")
	e, err := s.RegisterEnum([]string{"Red", "green", "blue"})
	if err != nil {
		t.Fatal(err)
	}

	c, err := s.LookupConstant("red")
	if err != nil {
		t.Fatal(err)
	}

	if x := c.(*EnumConstant); x.Enum != e || x.Index != 0 {
		t.Fatalf("got %+v", x)
	}

	if _, err := s.RegisterEnum([]string{"cyan", "red"}); err == nil {
		t.Fatal("unexpected success")
	}
}

func TestScopesRanges(t *testing.T) {
	s := NewScopes()
	s.Enter("program")
	r, err := s.CreateRange(IntegerConstant(1), IntegerConstant(10))
	if err != nil {
		t.Fatal(err)
	}

	if r.Lo != 1 || r.Hi != 10 || r.Base != Integer {
		t.Fatalf("got %+v", r)
	}

	if r, err = s.CreateRange(IntegerConstant(0), LongConstant(1<<40)); err != nil || r.Base != Long {
		t.Fatalf("got %+v, %v", r, err)
	}

	if r, err = s.CreateRange(CharConstant('a'), CharConstant('z')); err != nil || r.Base != Char || r.String() != "'a'..'z'" {
		t.Fatalf("got %v, %v", r, err)
	}

	for i, test := range []struct{ lo, hi Constant }{
		{IntegerConstant(5), IntegerConstant(1)},
		{IntegerConstant(1), CharConstant('z')},
		{RealConstant(1), RealConstant(2)},
		{StringConstant("ab"), StringConstant("cd")},
	} {
		if _, err := s.CreateRange(test.lo, test.hi); err == nil {
			t.Errorf("%d: %v..%v: unexpected success", i, test.lo, test.hi)
		}
	}

	s.RegisterType("digit", &RangeType{Lo: 0, Hi: 9, Base: Integer})
	if g, err := s.CreateRangeFromTypename("digit"); err != nil || g.String() != "0..9" {
		t.Fatalf("got %v, %v", g, err)
	}

	if g, err := s.CreateRangeFromTypename("boolean"); err != nil || g.(*RangeType).Hi != 1 {
		t.Fatalf("got %v, %v", g, err)
	}

	if _, err := s.CreateRangeFromTypename("real"); err == nil {
		t.Fatal("unexpected success")
	}

	if _, err := s.CreateRangeFromTypename("nope"); err == nil {
		t.Fatal("unexpected success")
	}
}

func TestScopesSubroutines(t *testing.T) {
	s := NewScopes()
	s.Enter("program")
	params := []*FormalParameter{{Name: "a", Type: Integer}, {Name: "b", Type: Real, ByRef: true}}
	sub, err := s.RegisterFunctionInterface("f", params, Real)
	if err != nil {
		t.Fatal(err)
	}

	if s.Subroutine() != sub || sub.Qualified != "f" {
		t.Fatalf("got %+v", sub)
	}

	if !s.IsVariable("a") || !s.IsVariable("b") {
		t.Fatal("parameters not bound")
	}

	ret, hops := s.ReturnSlot(sub)
	if ret == nil || hops != 0 || ret.Slot != 2 {
		t.Fatalf("got %+v %v", ret, hops)
	}

	inner, err := s.RegisterProcedureInterface("g", nil)
	if err != nil {
		t.Fatal(err)
	}

	if g, e := inner.Qualified, "f.g"; g != e {
		t.Fatalf("got %q, want %q", g, e)
	}

	if _, hops := s.ReturnSlot(sub); hops != 1 {
		t.Fatalf("got %v hops, want 1", hops)
	}

	s.Leave()
	s.Leave()
	if !s.IsSubroutine("f") || s.IsParameterlessSubroutine("f") {
		t.Fatal("subroutine binding")
	}

	if _, err := s.RegisterProcedureInterface("f", nil); err == nil {
		t.Fatal("unexpected success")
	}
}

func TestScopesForward(t *testing.T) {
	s := NewScopes()
	s.Enter("program")
	params := []*FormalParameter{{Name: "n", Type: Integer}}
	fwd, err := s.RegisterFunctionInterface("f", params, Integer)
	if err != nil {
		t.Fatal(err)
	}

	fwd.Forward = true
	s.Leave()
	if g := s.UnresolvedForwards(); len(g) != 1 || g[0] != fwd {
		t.Fatalf("got %v", g)
	}

	// The definition may omit the result type.
	def, err := s.RegisterFunctionInterface("F", []*FormalParameter{{Name: "n", Type: Integer}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if def != fwd || def.Result != Integer {
		t.Fatalf("got %+v", def)
	}

	def.Forward = false
	s.Leave()
	if g := s.UnresolvedForwards(); len(g) != 0 {
		t.Fatalf("got %v", g)
	}
}

func TestScopesForwardMismatch(t *testing.T) {
	for i, test := range []struct {
		params []*FormalParameter
		result Type
		fn     bool
	}{
		{nil, Integer, true},
		{[]*FormalParameter{{Name: "n", Type: Real}}, Integer, true},
		{[]*FormalParameter{{Name: "n", Type: Integer, ByRef: true}}, Integer, true},
		{[]*FormalParameter{{Name: "n", Type: Integer}}, Real, true},
		{[]*FormalParameter{{Name: "n", Type: Integer}}, nil, false},
	} {
		s := NewScopes()
		s.Enter("program")
		fwd, _ := s.RegisterFunctionInterface("f", []*FormalParameter{{Name: "n", Type: Integer}}, Integer)
		fwd.Forward = true
		s.Leave()
		var err error
		switch {
		case test.fn:
			_, err = s.RegisterFunctionInterface("f", test.params, test.result)
		default:
			_, err = s.RegisterProcedureInterface("f", test.params)
		}
		if err == nil {
			t.Errorf("%d: unexpected success", i)
		}
	}
}

func TestScopesLoops(t *testing.T) {
	s := NewScopes()
	s.Enter("program")
	if s.InLoop() {
		t.Fatal("InLoop")
	}

	s.EnterLoop()
	s.RegisterProcedureInterface("p", nil)
	if s.InLoop() {
		t.Fatal("loop nesting leaked into a subroutine")
	}

	s.Leave()
	if !s.InLoop() {
		t.Fatal("InLoop")
	}

	s.LeaveLoop()
	if s.InLoop() {
		t.Fatal("InLoop")
	}
}

func TestScopesImport(t *testing.T) {
	s := NewScopes()
	s.Enter("u")
	s.RegisterConstant("k", IntegerConstant(1))
	s.SetPublic("k")
	s.RegisterVariable("hidden", Integer)
	exports := s.exports()
	if g, e := len(exports), 1; g != e {
		t.Fatalf("got %v exports, want %v", g, e)
	}

	u := &Unit{Name: "u", Exports: exports}
	s.Leave()
	s.Enter("program")
	if err := s.Import(u); err != nil {
		t.Fatal(err)
	}

	if g, err := s.LookupConstant("k"); err != nil || g != IntegerConstant(1) {
		t.Fatalf("got %v, %v", g, err)
	}

	if b, _ := s.Lookup("k"); b.Public {
		t.Fatal("imported binding re-exported")
	}

	if err := s.Import(u); err == nil {
		t.Fatal("unexpected success")
	}
}
