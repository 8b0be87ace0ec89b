// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"strings"

	"modernc.org/strutil"
	"modernc.org/token"
)

// foldIdent returns the canonical spelling of an identifier. Identifiers are
// case insensitive.
func foldIdent(s string) string { return strings.ToLower(s) }

// ScopeID is a handle of a scope in a Scopes arena.
type ScopeID int

const noScope ScopeID = -1

// BindingKind classifies what an identifier denotes.
type BindingKind int

// Values of BindingKind.
const (
	VariableBinding BindingKind = iota
	ConstantBinding
	TypeBinding
	SubroutineBinding
)

func (k BindingKind) String() string {
	switch k {
	case VariableBinding:
		return "variable"
	case ConstantBinding:
		return "constant"
	case TypeBinding:
		return "type"
	case SubroutineBinding:
		return "subroutine"
	default:
		return "BindingKind(?)"
	}
}

// Binding is what an identifier denotes in a scope.
type Binding struct {
	Name   string // Lower case.
	Kind   BindingKind
	Type   Type     // Variable, constant or type.
	Const  Constant // ConstantBinding.
	Slot   int      // VariableBinding, index into the frame.
	Sub    *Subroutine
	ByRef  bool // By reference parameter.
	Param  bool
	Public bool // Exported from a unit.
	Pos    token.Position
}

// FormalParameter is a declared subroutine parameter.
type FormalParameter struct {
	Name  string
	Type  Type
	ByRef bool
}

// Slot is a storage location in a frame.
type Slot struct {
	Name string
	Type Type `PrettyPrint:"stringer"`
	Kind SlotKind
}

type scope struct {
	name  string
	outer ScopeID
	ids   map[int]*Binding
	order []*Binding // Registration order.
	frame []*Slot
	loops int
	ret   *Binding    // Function result slot.
	sub   *Subroutine // Subroutine whose body this scope is.
}

// Scopes is an arena of nested scopes with a cursor on the current one.
// Leaving a scope only moves the cursor, the scope record stays valid.
type Scopes struct {
	dict  *strutil.Dict
	arena []*scope
	cur   ScopeID
}

// NewScopes returns an arena holding only the universe scope, which binds
// the predefined types.
func NewScopes() *Scopes {
	s := &Scopes{dict: strutil.NewDict(), cur: noScope}
	s.Enter("")
	for _, v := range []struct {
		nm string
		t  Type
	}{
		{"boolean", Boolean},
		{"char", Char},
		{"integer", Integer},
		{"longint", Long},
		{"real", Real},
		{"string", String},
	} {
		s.RegisterType(v.nm, v.t)
	}
	return s
}

func (s *Scopes) scope() *scope { return s.arena[s.cur] }

// Current returns the current scope.
func (s *Scopes) Current() ScopeID { return s.cur }

// Enter creates a scope nested in the current one and makes it current.
func (s *Scopes) Enter(name string) ScopeID {
	id := ScopeID(len(s.arena))
	s.arena = append(s.arena, &scope{name: name, outer: s.cur, ids: map[int]*Binding{}})
	s.cur = id
	return id
}

// Leave makes the enclosing scope current.
func (s *Scopes) Leave() {
	if s.cur <= 0 {
		panic(todo("leaving the universe scope"))
	}

	s.cur = s.scope().outer
}

// Frame returns the slots of scope id.
func (s *Scopes) Frame(id ScopeID) []*Slot { return s.arena[id].frame }

func (s *Scopes) local(name string) *Binding {
	return s.scope().ids[s.dict.Id(foldIdent(name))]
}

// Lookup searches name from the current scope outwards. It returns the
// binding and the number of scopes between the current and the declaring
// one.
func (s *Scopes) Lookup(name string) (b *Binding, hops int) {
	id := s.dict.Id(foldIdent(name))
	for sc := s.cur; sc != noScope; sc = s.arena[sc].outer {
		if b := s.arena[sc].ids[id]; b != nil {
			return b, hops
		}

		hops++
	}
	return nil, -1
}

func (s *Scopes) bind(b *Binding) (*Binding, error) {
	b.Name = foldIdent(b.Name)
	id := s.dict.Id(b.Name)
	sc := s.scope()
	if sc.ids[id] != nil {
		return sc.ids[id], lexErr("Duplicate identifier: %s", b.Name)
	}

	sc.ids[id] = b
	sc.order = append(sc.order, b)
	return b, nil
}

// ContainsLocalIdentifier reports whether name is bound in the current
// scope.
func (s *Scopes) ContainsLocalIdentifier(name string) bool { return s.local(name) != nil }

// IsVariable reports whether name is a variable of the current scope.
func (s *Scopes) IsVariable(name string) bool { return s.localKind(name, VariableBinding) }

// IsConstant reports whether name is a constant of the current scope.
func (s *Scopes) IsConstant(name string) bool { return s.localKind(name, ConstantBinding) }

// IsSubroutine reports whether name is a subroutine of the current scope.
func (s *Scopes) IsSubroutine(name string) bool { return s.localKind(name, SubroutineBinding) }

// IsParameterlessSubroutine reports whether name is a subroutine of the
// current scope that can be called without arguments.
func (s *Scopes) IsParameterlessSubroutine(name string) bool {
	b := s.local(name)
	return b != nil && b.Kind == SubroutineBinding && (len(b.Sub.Params) == 0 || b.Sub.Variadic)
}

func (s *Scopes) localKind(name string, k BindingKind) bool {
	b := s.local(name)
	return b != nil && b.Kind == k
}

// RegisterVariable allocates a slot for a variable of type t in the current
// scope.
func (s *Scopes) RegisterVariable(name string, t Type) (*Binding, error) {
	sc := s.scope()
	b, err := s.bind(&Binding{Name: name, Kind: VariableBinding, Type: t, Slot: len(sc.frame)})
	if err != nil {
		return nil, err
	}

	sc.frame = append(sc.frame, &Slot{Name: b.Name, Type: t, Kind: SlotKindOf(t)})
	return b, nil
}

// RegisterConstant binds name to the value c.
func (s *Scopes) RegisterConstant(name string, c Constant) (*Binding, error) {
	return s.bind(&Binding{Name: name, Kind: ConstantBinding, Type: c.Type(), Const: c})
}

// RegisterConstantFrom binds name to the value of the constant other,
// negated when negate is set.
func (s *Scopes) RegisterConstantFrom(name, other string, negate bool) (*Binding, error) {
	c, err := s.LookupConstant(other)
	if err != nil {
		return nil, err
	}

	if negate {
		if c, err = Negate(c); err != nil {
			return nil, err
		}
	}

	return s.RegisterConstant(name, c)
}

// LookupConstant returns the value of the constant name.
func (s *Scopes) LookupConstant(name string) (Constant, error) {
	b, _ := s.Lookup(name)
	switch {
	case b == nil:
		return nil, lexErr("unknown identifier: %s", foldIdent(name))
	case b.Kind != ConstantBinding:
		return nil, lexErr("not a constant: %s", b.Name)
	}

	return b.Const, nil
}

// RegisterType binds name to t.
func (s *Scopes) RegisterType(name string, t Type) (*Binding, error) {
	return s.bind(&Binding{Name: name, Kind: TypeBinding, Type: t})
}

// LookupType returns the type named name. Type names are searched in all
// enclosing scopes.
func (s *Scopes) LookupType(name string) (Type, error) {
	b, _ := s.Lookup(name)
	switch {
	case b == nil:
		return Unknown, lexErr("unknown identifier: %s", foldIdent(name))
	case b.Kind != TypeBinding:
		return Unknown, lexErr("not a type: %s", b.Name)
	}

	return b.Type, nil
}

// RegisterEnum creates an enumeration with the given members and binds each
// member as a constant of it.
func (s *Scopes) RegisterEnum(names []string) (*EnumType, error) {
	t := &EnumType{}
	var err error
	for _, v := range names {
		c := &EnumConstant{Enum: t, Index: len(t.Members)}
		t.Members = append(t.Members, foldIdent(v))
		if _, e := s.RegisterConstant(v, c); e != nil && err == nil {
			err = e
		}
	}
	return t, err
}

// CreateRange returns the subrange lo..hi.
func (s *Scopes) CreateRange(lo, hi Constant) (*RangeType, error) {
	l, ok1 := Ordinal(lo)
	h, ok2 := Ordinal(hi)
	switch {
	case !ok1 || !ok2:
		return nil, lexErr("range bounds must be ordinal constants")
	case !sameOrdinal(lo.Type(), hi.Type()):
		return nil, lexErr("range bounds %v and %v have different types", lo, hi)
	case l > h:
		return nil, lexErr("lower bound %v greater than upper bound %v", lo, hi)
	}

	b := base(lo.Type())
	if isInteger(b) {
		b = Integer
		if _, ok := integerConstant(l).(LongConstant); ok {
			b = Long
		}
		if _, ok := integerConstant(h).(LongConstant); ok {
			b = Long
		}
	}
	return &RangeType{Lo: l, Hi: h, Base: b}, nil
}

// CreateRangeFromTypename returns the ordinal type name as a subrange.
func (s *Scopes) CreateRangeFromTypename(name string) (Type, error) {
	t, err := s.LookupType(name)
	if err != nil {
		return Unknown, err
	}

	return rangeOf(t)
}

func rangeOf(t Type) (Type, error) {
	if r, ok := t.(*RangeType); ok {
		return r, nil
	}

	lo, hi, ok := OrdinalBounds(t)
	if !ok {
		return Unknown, lexErr("not an ordinal type: %v", t)
	}

	return &RangeType{Lo: lo, Hi: hi, Base: t}, nil
}

// RegisterProcedureInterface binds a procedure in the current scope and
// enters its body scope, where the parameters are local variables.
func (s *Scopes) RegisterProcedureInterface(name string, params []*FormalParameter) (*Subroutine, error) {
	return s.registerInterface(name, params, nil, false)
}

// RegisterFunctionInterface is like RegisterProcedureInterface. A nil result
// is accepted when the function was declared forward with a result type.
func (s *Scopes) RegisterFunctionInterface(name string, params []*FormalParameter, result Type) (*Subroutine, error) {
	return s.registerInterface(name, params, result, true)
}

func (s *Scopes) registerInterface(name string, params []*FormalParameter, result Type, fn bool) (sub *Subroutine, err error) {
	sub = &Subroutine{Name: foldIdent(name), Params: params, Result: result, Function: fn}
	if b := s.local(name); b != nil {
		switch {
		case b.Kind == SubroutineBinding && b.Sub.Forward:
			if err = matchForward(b.Sub, sub); err == nil {
				sub = b.Sub
				sub.Params = params
			}
		default:
			err = lexErr("Duplicate identifier: %s", sub.Name)
		}
	} else {
		if fn && result == nil {
			err = lexErr("function %s needs a result type", sub.Name)
			sub.Result = Unknown
		}
		s.bind(&Binding{Name: name, Kind: SubroutineBinding, Type: sub.Result, Sub: sub})
	}

	if fn && sub.Result == nil {
		sub.Result = Unknown
	}
	sub.Qualified = s.qualify(sub.Name)
	s.Enter(sub.Name)
	sc := s.scope()
	sc.sub = sub
	for _, v := range params {
		b, e := s.RegisterVariable(v.Name, v.Type)
		if e != nil {
			if err == nil {
				err = e
			}
			continue
		}

		b.Param = true
		b.ByRef = v.ByRef
	}
	if sub.Function {
		sc.ret = &Binding{Name: sub.Name, Kind: VariableBinding, Type: sub.Result, Slot: len(sc.frame)}
		sc.frame = append(sc.frame, &Slot{Name: sub.Name, Type: sub.Result, Kind: SlotKindOf(sub.Result)})
	}
	return sub, err
}

// qualify returns name prefixed by the names of the enclosing subroutines.
func (s *Scopes) qualify(name string) string {
	a := []string{name}
	for sc := s.cur; sc != noScope; sc = s.arena[sc].outer {
		if sub := s.arena[sc].sub; sub != nil {
			a = append(a, sub.Name)
		}
	}
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
	return strings.Join(a, ".")
}

// matchForward checks a definition against an earlier forward declaration.
func matchForward(fwd, def *Subroutine) error {
	if fwd.Function != def.Function {
		return lexErr("%s does not match its forward declaration", def.Name)
	}

	if len(fwd.Params) != len(def.Params) {
		return lexErr("%s: parameter count does not match its forward declaration", def.Name)
	}

	for i, v := range fwd.Params {
		w := def.Params[i]
		if v.ByRef != w.ByRef || v.Type != w.Type {
			return lexErr("%s: parameter %s does not match its forward declaration", def.Name, w.Name)
		}
	}
	if def.Function && def.Result != nil && def.Result != fwd.Result {
		return lexErr("%s: result type does not match its forward declaration", def.Name)
	}

	return nil
}

// SetPublic marks the binding of name in the current scope as exported.
func (s *Scopes) SetPublic(name string) {
	if b := s.local(name); b != nil {
		b.Public = true
	}
}

// ReturnSlot returns the result slot of the function sub when the current
// scope is nested in its body, and the number of scopes to it.
func (s *Scopes) ReturnSlot(sub *Subroutine) (b *Binding, hops int) {
	for sc := s.cur; sc != noScope; sc = s.arena[sc].outer {
		if x := s.arena[sc]; x.sub == sub && x.ret != nil {
			return x.ret, hops
		}

		hops++
	}
	return nil, -1
}

// Subroutine returns the subroutine whose body is the current scope, if any.
func (s *Scopes) Subroutine() *Subroutine { return s.scope().sub }

// UnresolvedForwards returns the subroutines declared forward in the current
// scope that have no definition.
func (s *Scopes) UnresolvedForwards() (r []*Subroutine) {
	for _, v := range s.scope().order {
		if v.Kind == SubroutineBinding && v.Sub.Forward && !v.Sub.Builtin {
			r = append(r, v.Sub)
		}
	}
	return r
}

// EnterLoop and LeaveLoop track the loop nesting of the current scope.
func (s *Scopes) EnterLoop() { s.scope().loops++ }

func (s *Scopes) LeaveLoop() { s.scope().loops-- }

// InLoop reports whether a loop body is being parsed in the current scope.
func (s *Scopes) InLoop() bool { return s.scope().loops > 0 }

// CreateInitializationNodes returns the statements constructing the default
// values of the local variables of array, record and set type.
func (s *Scopes) CreateInitializationNodes(pos token.Position) (r []Stmt) {
	for _, v := range s.scope().order {
		if v.Kind != VariableBinding || v.Param {
			continue
		}

		switch v.Type.(type) {
		case *ArrayType, *RecordType, *SetType:
			r = append(r, &InitStmt{stmt: stmtAt(pos), Slot: v.Slot, Name: v.Name, Value: DefaultValue(v.Type)})
		}
	}
	return r
}

// exports returns the public bindings of the current scope.
func (s *Scopes) exports() (r []*Binding) {
	for _, v := range s.scope().order {
		if v.Public {
			r = append(r, v)
		}
	}
	return r
}

// Import binds the exported identifiers of u in the current scope.
func (s *Scopes) Import(u *Unit) error {
	var err error
	for _, v := range u.Exports {
		b := *v
		b.Public = false
		if _, e := s.bind(&b); e != nil && err == nil {
			err = e
		}
	}
	return err
}
