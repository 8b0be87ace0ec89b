// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"sort"
)

// Unit is a compiled unit. Exports are the subroutines declared in its
// interface section and the types defined there.
type Unit struct {
	Name    string
	Exports []*Binding
	Builtin bool
}

// Units is a registry of compiled units available to uses clauses.
type Units struct {
	m map[string]*Unit
}

// NewUnits returns a registry holding the builtin units crt, dos and
// strings.
func NewUnits() *Units {
	u := &Units{m: map[string]*Unit{}}
	for _, v := range builtinUnits() {
		u.m[v.Name] = v
	}
	return u
}

// Add registers u, replacing a unit of the same name. Builtin units cannot
// be replaced.
func (u *Units) Add(unit *Unit) error {
	if x := u.m[unit.Name]; x != nil && x.Builtin {
		return fmt.Errorf("cannot replace builtin unit %s", unit.Name)
	}

	u.m[unit.Name] = unit
	return nil
}

// Lookup returns the unit nm or nil.
func (u *Units) Lookup(nm string) *Unit { return u.m[foldIdent(nm)] }

// Names returns the sorted names of the registered units.
func (u *Units) Names() []string {
	var a []string
	for k := range u.m {
		a = append(a, k)
	}
	sort.Strings(a)
	return a
}

func builtinSub(unit, nm string, result Type, params ...*FormalParameter) *Binding {
	s := &Subroutine{
		Name:      nm,
		Qualified: unit + "." + nm,
		Params:    params,
		Result:    result,
		Function:  result != nil,
		Builtin:   true,
	}
	return &Binding{Name: nm, Kind: SubroutineBinding, Type: result, Sub: s, Public: true}
}

func byRef(nm string, t Type) *FormalParameter {
	return &FormalParameter{Name: nm, Type: t, ByRef: true}
}

func byVal(nm string, t Type) *FormalParameter { return &FormalParameter{Name: nm, Type: t} }

func builtinUnits() []*Unit {
	pchar := &ReferenceType{Name: "char", Elem: Char}
	return []*Unit{
		{
			Name:    "crt",
			Builtin: true,
			Exports: []*Binding{
				builtinSub("crt", "clrscr", nil),
				builtinSub("crt", "delay", nil, byVal("ms", Integer)),
				builtinSub("crt", "keypressed", Boolean),
				builtinSub("crt", "readkey", Char),
			},
		},
		{
			Name:    "dos",
			Builtin: true,
			Exports: []*Binding{
				builtinSub("dos", "getdate", nil, byRef("year", Integer), byRef("month", Integer), byRef("day", Integer), byRef("dayofweek", Integer)),
				builtinSub("dos", "gettime", nil, byRef("hour", Integer), byRef("minute", Integer), byRef("second", Integer), byRef("sec100", Integer)),
			},
		},
		{
			Name:    "strings",
			Builtin: true,
			Exports: []*Binding{
				{Name: "pchar", Kind: TypeBinding, Type: pchar, Public: true},
				builtinSub("strings", "stralloc", pchar, byVal("size", Long)),
				builtinSub("strings", "strlen", Long, byVal("s", pchar)),
			},
		},
	}
}

// importUnit binds the exports of u in the current scope and registers its
// subroutines in reg.
func importUnit(s *Scopes, reg *Registry, u *Unit) error {
	err := s.Import(u)
	for _, v := range u.Exports {
		if v.Kind != SubroutineBinding {
			continue
		}

		if e := reg.Register(v.Sub); e != nil && err == nil {
			err = e
		}
	}
	return err
}
