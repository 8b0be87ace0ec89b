// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"sort"

	"modernc.org/token"
)

// Subroutine is a procedure or a function, user defined or builtin.
type Subroutine struct {
	Name      string
	Qualified string // Name prefixed by the enclosing subroutines, the registry key.
	Params    []*FormalParameter
	Result    Type `PrettyPrint:"stringer"` // Nil for procedures.
	Function  bool
	Builtin   bool
	Variadic  bool // Takes any number of arguments.
	Forward   bool // Declared but not yet defined.
	Root      *RootNode
	Pos       token.Position

	refArgs bool                            // Variadic arguments are passed by reference.
	check   func(args []Expr) (Type, error) // Builtins with polymorphic signatures.
	arity   func(n int) bool                // Overrides the parameter count check.
}

func (s *Subroutine) String() string {
	if s.Qualified != "" {
		return s.Qualified
	}

	return s.Name
}

// ShouldBeReference reports whether argument i of a call must be a variable
// passed by reference.
func (s *Subroutine) ShouldBeReference(i int) bool {
	if i < len(s.Params) {
		return s.Params[i].ByRef
	}

	return s.Variadic && s.refArgs
}

// checkCall validates the arguments of a call and returns the result type.
func (s *Subroutine) checkCall(args []Expr) (Type, error) {
	switch {
	case s.arity != nil:
		if !s.arity(len(args)) {
			return s.resultType(), lexErr("wrong number of arguments in call to %s", s.Name)
		}
	case !s.Variadic && len(args) != len(s.Params):
		return s.resultType(), lexErr("wrong number of arguments in call to %s: have %d, want %d", s.Name, len(args), len(s.Params))
	}

	if s.check != nil {
		return s.check(args)
	}

	for i, v := range args {
		if i >= len(s.Params) {
			break
		}

		p := s.Params[i]
		if !ConvertibleTo(v.Type(), p.Type) || p.ByRef && !ConvertibleTo(p.Type, v.Type()) {
			return s.resultType(), lexErr("argument %d of %s: cannot use %v as %v", i+1, s.Name, v.Type(), p.Type)
		}
	}
	return s.resultType(), nil
}

func (s *Subroutine) resultType() Type {
	if s.Function {
		return s.Result
	}

	return nil
}

// Registry maps qualified names to subroutines.
type Registry struct {
	m map[string]*Subroutine
}

// NewRegistry returns a registry holding the builtin subroutines.
func NewRegistry() *Registry {
	r := &Registry{m: map[string]*Subroutine{}}
	for _, v := range newBuiltins() {
		r.m[v.Qualified] = v
	}
	return r
}

// Register adds s under its qualified name.
func (r *Registry) Register(s *Subroutine) error {
	if x := r.m[s.Qualified]; x != nil && x != s {
		return fmt.Errorf("subroutine %s already registered", s.Qualified)
	}

	r.m[s.Qualified] = s
	return nil
}

// Lookup returns the subroutine registered as name or nil.
func (r *Registry) Lookup(name string) *Subroutine { return r.m[foldIdent(name)] }

// Len returns the number of registered subroutines.
func (r *Registry) Len() int { return len(r.m) }

// Names returns the sorted registry keys.
func (r *Registry) Names() []string {
	var a []string
	for k := range r.m {
		a = append(a, k)
	}
	sort.Strings(a)
	return a
}

func arg0(args []Expr) Type {
	if len(args) == 0 {
		return Unknown
	}

	return args[0].Type()
}

func sameNumeric(nm string) func([]Expr) (Type, error) {
	return func(args []Expr) (Type, error) {
		t := arg0(args)
		if !isNumeric(t) && !isUnknown(t) {
			return Unknown, lexErr("%s: numeric argument expected, have %v", nm, t)
		}

		return base(t), nil
	}
}

func realOf(nm string) func([]Expr) (Type, error) {
	return func(args []Expr) (Type, error) {
		if t := arg0(args); !isNumeric(t) && !isUnknown(t) {
			return Real, lexErr("%s: numeric argument expected, have %v", nm, t)
		}

		return Real, nil
	}
}

func ordinalArg(nm string, result Type) func([]Expr) (Type, error) {
	return func(args []Expr) (Type, error) {
		t := arg0(args)
		if !IsOrdinal(t) && !isUnknown(t) {
			return Unknown, lexErr("%s: ordinal argument expected, have %v", nm, t)
		}

		if result == nil {
			return t, nil
		}

		return result, nil
	}
}

func integerArg(nm string, result Type) func([]Expr) (Type, error) {
	return func(args []Expr) (Type, error) {
		for _, v := range args {
			if t := v.Type(); !isInteger(t) && !isUnknown(t) {
				return result, lexErr("%s: integer argument expected, have %v", nm, t)
			}
		}
		return result, nil
	}
}

func realArg(nm string, result Type) func([]Expr) (Type, error) {
	return func(args []Expr) (Type, error) {
		if t := arg0(args); !isNumeric(t) && !isUnknown(t) {
			return result, lexErr("%s: real argument expected, have %v", nm, t)
		}

		return result, nil
	}
}

func pointerArg(nm string) func([]Expr) (Type, error) {
	return func(args []Expr) (Type, error) {
		switch t := arg0(args); t.(type) {
		case *ReferenceType, *UnknownType:
			return nil, nil
		default:
			return nil, lexErr("%s: pointer variable expected, have %v", nm, t)
		}
	}
}

func writeArgs(nm string) func([]Expr) (Type, error) {
	return func(args []Expr) (Type, error) {
		for _, v := range args {
			switch t := v.Type(); t.(type) {
			case *PrimitiveType, *RangeType, *EnumType, *UnknownType:
				// ok
			default:
				return nil, lexErr("%s: cannot write a value of type %v", nm, t)
			}
		}
		return nil, nil
	}
}

func atMost(n int) func(int) bool { return func(m int) bool { return m <= n } }

func newBuiltins() (r []*Subroutine) {
	for _, v := range []struct {
		nm     string
		params int // -1 variadic
		ref    bool
		fn     bool
		check  func(string) func([]Expr) (Type, error)
	}{
		{"abs", 1, false, true, sameNumeric},
		{"arctan", 1, false, true, realOf},
		{"chr", 1, false, true, func(nm string) func([]Expr) (Type, error) { return integerArg(nm, Char) }},
		{"cos", 1, false, true, realOf},
		{"dec", 1, true, false, func(nm string) func([]Expr) (Type, error) { return ordinalArg(nm, nil) }},
		{"dispose", 1, true, false, pointerArg},
		{"exp", 1, false, true, realOf},
		{"halt", -1, false, false, func(nm string) func([]Expr) (Type, error) { return integerArg(nm, nil) }},
		{"inc", 1, true, false, func(nm string) func([]Expr) (Type, error) { return ordinalArg(nm, nil) }},
		{"ln", 1, false, true, realOf},
		{"new", 1, true, false, pointerArg},
		{"odd", 1, false, true, func(nm string) func([]Expr) (Type, error) { return integerArg(nm, Boolean) }},
		{"ord", 1, false, true, func(nm string) func([]Expr) (Type, error) { return ordinalArg(nm, Integer) }},
		{"pred", 1, false, true, func(nm string) func([]Expr) (Type, error) { return ordinalArg(nm, nil) }},
		{"read", -1, true, false, nil},
		{"readln", -1, true, false, nil},
		{"round", 1, false, true, func(nm string) func([]Expr) (Type, error) { return realArg(nm, Long) }},
		{"sin", 1, false, true, realOf},
		{"sqr", 1, false, true, sameNumeric},
		{"sqrt", 1, false, true, realOf},
		{"succ", 1, false, true, func(nm string) func([]Expr) (Type, error) { return ordinalArg(nm, nil) }},
		{"trunc", 1, false, true, func(nm string) func([]Expr) (Type, error) { return realArg(nm, Long) }},
		{"write", -1, false, false, writeArgs},
		{"writeln", -1, false, false, writeArgs},
	} {
		s := &Subroutine{Name: v.nm, Qualified: v.nm, Builtin: true, Function: v.fn, Result: Unknown}
		switch {
		case v.params < 0:
			s.Variadic = true
			s.refArgs = v.ref
		default:
			for i := 0; i < v.params; i++ {
				s.Params = append(s.Params, &FormalParameter{Name: fmt.Sprintf("arg%d", i), Type: Unknown, ByRef: v.ref})
			}
		}
		if !v.fn {
			s.Result = nil
		}
		if v.check != nil {
			s.check = v.check(v.nm)
		}
		if v.nm == "halt" {
			s.arity = atMost(1)
		}
		r = append(r, s)
	}
	return r
}

// registerBuiltins binds the builtin subroutines of r in the current scope.
func registerBuiltins(s *Scopes, r *Registry) {
	for _, nm := range r.Names() {
		sub := r.m[nm]
		if sub.Builtin {
			s.bind(&Binding{Name: sub.Name, Kind: SubroutineBinding, Type: sub.Result, Sub: sub})
		}
	}
}
