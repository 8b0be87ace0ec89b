// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"

	"modernc.org/mathutil"
)

// Set constructors with more members are not folded.
const maxFoldedSet = 1 << 16

// factory performs the semantic actions of the parser. It is the only place
// where errors of scope and type operations become diagnostics.
type factory struct {
	p       *Parser
	scopes  *Scopes
	reg     *Registry
	units   *Units
	pending []pendingPointer

	unit        *Unit // Non nil while parsing a unit.
	inInterface bool
}

type pendingPointer struct {
	t   *ReferenceType
	tok *Token
}

func newFactory(p *Parser, units *Units) *factory {
	f := &factory{p: p, scopes: NewScopes(), reg: NewRegistry(), units: units}
	registerBuiltins(f.scopes, f.reg)
	return f
}

// missing reports whether tok stands for an identifier the parser did not
// find. Its diagnostic was already reported.
func missing(tok *Token) bool { return tok.Val == "" }

func (f *factory) err(tok *Token, err error) {
	if err != nil {
		f.p.semErr(tok.Position, err.Error())
	}
}

func (f *factory) errf(tok *Token, format string, args ...interface{}) {
	f.p.semErr(tok.Position, fmt.Sprintf(format, args...))
}

func (f *factory) public(b *Binding) {
	if b != nil && f.inInterface {
		b.Public = true
	}
}

func (f *factory) startProgram(name *Token) { f.scopes.Enter(name.lower()) }

func (f *factory) finishProgram(name *Token, body *Block) *RootNode {
	f.checkForwards()
	return f.root(name.lower(), body, -1)
}

func (f *factory) startUnit(name *Token) {
	f.unit = &Unit{Name: name.lower()}
	f.scopes.Enter(name.lower())
	f.inInterface = true
}

func (f *factory) startImplementation() { f.inInterface = false }

func (f *factory) finishUnit(name *Token, body *Block) *RootNode {
	f.checkForwards()
	f.unit.Exports = f.scopes.exports()
	return f.root(name.lower(), body, -1)
}

func (f *factory) root(name string, body *Block, result int) *RootNode {
	if init := f.scopes.CreateInitializationNodes(body.Pos); len(init) != 0 {
		body.List = append(init, body.List...)
	}
	return &RootNode{Name: name, Frame: f.scopes.Frame(f.scopes.Current()), Body: body, Result: result}
}

func (f *factory) checkForwards() {
	for _, v := range f.scopes.UnresolvedForwards() {
		f.p.report(v.Pos, fmt.Sprintf("unresolved forward declaration: %s", v.Name))
	}
}

func (f *factory) importUnit(id *Token) {
	if missing(id) {
		return
	}

	u := f.units.Lookup(id.Val)
	if u == nil {
		f.errf(id, "unknown unit: %s", id.lower())
		return
	}

	f.err(id, importUnit(f.scopes, f.reg, u))
}

func (f *factory) registerVariables(ids []*Token, t Type) {
	for _, id := range ids {
		b, err := f.scopes.RegisterVariable(id.Val, t)
		if err != nil {
			f.err(id, err)
			continue
		}

		b.Pos = id.Position
	}
}

func (f *factory) registerConstant(id *Token, c Constant) {
	if c == nil || missing(id) {
		return
	}

	b, err := f.scopes.RegisterConstant(id.Val, c)
	f.err(id, err)
	f.public(b)
}

// registerConstantFrom defines id as the constant other, negated when sign
// is MINUS.
func (f *factory) registerConstantFrom(id, other *Token, sign Kind) {
	if missing(id) {
		return
	}

	b, err := f.scopes.RegisterConstantFrom(id.Val, other.Val, sign == MINUS)
	f.err(other, err)
	f.public(b)
}

func (f *factory) registerType(id *Token, t Type) {
	if missing(id) {
		return
	}

	b, err := f.scopes.RegisterType(id.Val, t)
	f.err(id, err)
	f.public(b)
}

func (f *factory) intConst(tok *Token) Constant {
	c, err := ParseInteger(tok.Val)
	f.err(tok, err)
	return c
}

func (f *factory) realConst(tok *Token) Constant {
	c, err := ParseReal(tok.Val)
	f.err(tok, err)
	return c
}

// signed applies an optional sign token to c.
func (f *factory) signed(sign *Token, c Constant) Constant {
	if sign == nil || sign.Kind != MINUS || c == nil {
		return c
	}

	n, err := Negate(c)
	if err != nil {
		f.err(sign, err)
		return c
	}

	return n
}

// constIdent returns the value of the constant named by id, negated when
// sign is a minus.
func (f *factory) constIdent(sign, id *Token) Constant {
	c, err := f.scopes.LookupConstant(id.Val)
	if err != nil {
		f.err(id, err)
		return nil
	}

	return f.signed(sign, c)
}

func (f *factory) typeNamed(id *Token) Type {
	if missing(id) {
		return Unknown
	}

	t, err := f.scopes.LookupType(id.Val)
	f.err(id, err)
	return t
}

func (f *factory) enum(ids []*Token) Type {
	var a []string
	for _, v := range ids {
		a = append(a, v.Val)
	}
	t, err := f.scopes.RegisterEnum(a)
	if len(ids) != 0 {
		f.err(ids[0], err)
	}
	for _, v := range t.Members {
		f.public(f.scopes.local(v))
	}
	return t
}

func (f *factory) subrange(tok *Token, lo, hi Constant) Type {
	if lo == nil || hi == nil {
		return Unknown
	}

	t, err := f.scopes.CreateRange(lo, hi)
	if err != nil {
		f.err(tok, err)
		return Unknown
	}

	return t
}

// ordinal casts t to an ordinal range for use as an array dimension or a set
// element.
func (f *factory) ordinal(tok *Token, t Type) Type {
	if isUnknown(t) {
		return Unknown
	}

	r, err := rangeOf(t)
	f.err(tok, err)
	return r
}

func (f *factory) array(dims []Type, elem Type) Type {
	t := elem
	for i := len(dims) - 1; i >= 0; i-- {
		t = &ArrayType{Dim: dims[i], Elem: t}
	}
	return t
}

func (f *factory) set(tok *Token, elem Type) Type {
	if !isUnknown(elem) && !IsOrdinal(elem) {
		f.errf(tok, "set element type must be ordinal: %v", elem)
		elem = Unknown
	}
	return &SetType{Elem: elem}
}

func (f *factory) pointer(id *Token) Type {
	if missing(id) {
		return Unknown
	}

	t := &ReferenceType{Name: id.lower()}
	if b, _ := f.scopes.Lookup(id.Val); b != nil && b.Kind == TypeBinding {
		t.Elem = b.Type
		return t
	}

	f.pending = append(f.pending, pendingPointer{t, id})
	return t
}

// resolvePointers binds the targets of pointer types declared before their
// target type.
func (f *factory) resolvePointers() {
	for _, v := range f.pending {
		t, err := f.scopes.LookupType(v.tok.Val)
		f.err(v.tok, err)
		v.t.Elem = t
	}
	f.pending = nil
}

func (f *factory) startRecord() { f.scopes.Enter("") }

func (f *factory) finishRecord() *RecordType {
	r := &RecordType{}
	for _, v := range f.scopes.Frame(f.scopes.Current()) {
		r.Fields = append(r.Fields, &Field{Name: v.Name, Type: v.Type, Slot: len(r.Fields)})
	}
	f.scopes.Leave()
	return r
}

// heading is a parsed procedure or function heading.
type heading struct {
	id     *Token
	params []*FormalParameter
	result Type
	fn     bool
}

func (f *factory) startSubroutine(h *heading) *Subroutine {
	var sub *Subroutine
	var err error
	switch {
	case h.fn:
		sub, err = f.scopes.RegisterFunctionInterface(h.id.Val, h.params, h.result)
	default:
		sub, err = f.scopes.RegisterProcedureInterface(h.id.Val, h.params)
	}
	f.err(h.id, err)
	if !sub.Forward {
		sub.Pos = h.id.Position
	}
	return sub
}

func (f *factory) forward(tok *Token, sub *Subroutine) {
	if sub.Forward {
		f.errf(tok, "duplicate forward declaration: %s", sub.Name)
	}
	sub.Forward = true
	f.scopes.Leave()
	if f.inInterface {
		f.scopes.SetPublic(sub.Name)
	}
}

func (f *factory) finishSubroutine(sub *Subroutine, body *Block) {
	f.checkForwards()
	result := -1
	if ret := f.scopes.scope().ret; ret != nil {
		result = ret.Slot
	}
	sub.Root = f.root(sub.Qualified, body, result)
	sub.Forward = false
	f.scopes.Leave()
	f.reg.Register(sub)
}

func (f *factory) literal(tok *Token, c Constant) Expr {
	if c == nil {
		return &BadExpr{node: at(tok.Position)}
	}

	return &Literal{node: at(tok.Position), Value: c}
}

func (f *factory) binary(op *Token, x, y Expr) Expr {
	t, err := binaryType(op.Kind, x.Type(), y.Type())
	n := &BinaryExpr{node: at(op.Position), Op: op.Kind, X: x, Y: y, T: t}
	if err != nil {
		f.err(op, err)
		return n
	}

	a, ok := constValue(x)
	if !ok {
		return n
	}

	b, ok := constValue(y)
	if !ok {
		return n
	}

	c, err := foldBinary(op.Kind, a, b, t)
	f.err(op, err)
	n.Folded = c
	return n
}

func (f *factory) unary(op *Token, x Expr) Expr {
	t, err := unaryType(op.Kind, x.Type())
	n := &UnaryExpr{node: at(op.Position), Op: op.Kind, X: x, T: t}
	if err != nil {
		f.err(op, err)
		return n
	}

	if c, ok := constValue(x); ok {
		v, err := foldUnary(op.Kind, c)
		f.err(op, err)
		n.Folded = v
	}
	return n
}

func (f *factory) varRef(id *Token, b *Binding, hops int) *VarRef {
	return &VarRef{node: at(id.Position), Name: b.Name, Slot: b.Slot, Depth: hops, ByRef: b.ByRef, T: b.Type}
}

// identExpr returns the value denoted by id: a variable, a constant or the
// result of calling a parameterless function.
func (f *factory) identExpr(id *Token) Expr {
	if missing(id) {
		return &BadExpr{node: at(id.Position)}
	}

	b, hops := f.scopes.Lookup(id.Val)
	if b == nil {
		f.errf(id, "unknown identifier: %s", id.lower())
		return &BadExpr{node: at(id.Position)}
	}

	switch b.Kind {
	case VariableBinding:
		return f.varRef(id, b, hops)
	case ConstantBinding:
		return f.literal(id, b.Const)
	case SubroutineBinding:
		return f.funcCall(id, b.Sub, nil)
	default:
		f.errf(id, "type %s used as a value", b.Name)
		return &BadExpr{node: at(id.Position)}
	}
}

// target returns the designator of an assignment to id. Inside a function
// body the function name designates its result.
func (f *factory) target(id *Token) Expr {
	b, _ := f.scopes.Lookup(id.Val)
	if b != nil && b.Kind == SubroutineBinding {
		if ret, hops := f.scopes.ReturnSlot(b.Sub); ret != nil {
			return f.varRef(id, ret, hops)
		}

		f.errf(id, "cannot assign to %s", b.Name)
		return &BadExpr{node: at(id.Position)}
	}

	return f.identExpr(id)
}

// subroutine returns the subroutine id names.
func (f *factory) subroutine(id *Token) *Subroutine {
	if missing(id) {
		return nil
	}

	b, _ := f.scopes.Lookup(id.Val)
	switch {
	case b == nil:
		f.errf(id, "unknown identifier: %s", id.lower())
	case b.Kind != SubroutineBinding:
		f.errf(id, "%s is not a subroutine", b.Name)
	default:
		return b.Sub
	}
	return nil
}

func (f *factory) call(id *Token, sub *Subroutine, args []Expr) *CallExpr {
	t, err := sub.checkCall(args)
	f.err(id, err)
	return &CallExpr{node: at(id.Position), Sub: sub, Args: args, T: t}
}

// funcCall is a call used as a value.
func (f *factory) funcCall(id *Token, sub *Subroutine, args []Expr) Expr {
	if sub == nil {
		return &BadExpr{node: at(id.Position)}
	}

	if !sub.Function {
		f.errf(id, "procedure %s used as a value", sub.Name)
		return &BadExpr{node: at(id.Position)}
	}

	c := f.call(id, sub, args)
	if c.T == nil {
		c.T = Unknown
	}
	return c
}

func (f *factory) callStmt(id *Token, sub *Subroutine, args []Expr) Stmt {
	if sub == nil {
		return &Nop{stmtAt(id.Position)}
	}

	return &CallStmt{stmt: stmtAt(id.Position), Call: f.call(id, sub, args)}
}

// refArg wraps an argument passed by reference.
func (f *factory) refArg(e Expr) Expr {
	switch e.(type) {
	case *VarRef, *IndexExpr, *FieldExpr, *DerefExpr:
		return &RefArg{node: at(e.Position()), X: e}
	case *BadExpr:
		return e
	}

	f.p.semErr(e.Position(), "variable expected for a var parameter")
	return e
}

func (f *factory) index(tok *Token, x, i Expr) Expr {
	n := &IndexExpr{node: at(tok.Position), X: x, Index: i, T: Unknown}
	switch t := x.Type().(type) {
	case *ArrayType:
		n.T = t.Elem
		if !ConvertibleTo(i.Type(), base(t.Dim)) {
			f.errf(tok, "invalid index type %v for %v", i.Type(), t)
			break
		}

		if c, ok := constValue(i); ok {
			v, _ := Ordinal(c)
			if lo, hi, ok := OrdinalBounds(t.Dim); ok && (v < lo || v > hi) {
				f.errf(tok, "index %v out of bounds", c)
			}
		}
	case *PrimitiveType:
		if t != String {
			f.errf(tok, "cannot index %v", t)
			break
		}

		n.T = Char
		if !isInteger(i.Type()) && !isUnknown(i.Type()) {
			f.errf(tok, "invalid index type %v for %v", i.Type(), t)
		}
	case *UnknownType:
		// nop
	default:
		f.errf(tok, "cannot index %v", t)
	}
	return n
}

func (f *factory) field(id *Token, x Expr) Expr {
	n := &FieldExpr{node: at(id.Position), X: x, Name: id.lower(), T: Unknown}
	if missing(id) {
		return n
	}

	switch t := x.Type().(type) {
	case *RecordType:
		fld := t.Field(id.Val)
		if fld == nil {
			f.errf(id, "unknown field: %s", id.lower())
			break
		}

		n.Slot = fld.Slot
		n.T = fld.Type
	case *UnknownType:
		// nop
	default:
		f.errf(id, "%v is not a record", t)
	}
	return n
}

func (f *factory) deref(tok *Token, x Expr) Expr {
	n := &DerefExpr{node: at(tok.Position), X: x, T: Unknown}
	switch t := x.Type().(type) {
	case *ReferenceType:
		if t.Elem != nil {
			n.T = t.Elem
		}
	case *UnknownType:
		// nop
	default:
		f.errf(tok, "%v is not a pointer", t)
	}
	return n
}

func (f *factory) assign(id, tok *Token, target, value Expr) Stmt {
	switch target.(type) {
	case *VarRef, *IndexExpr, *FieldExpr, *DerefExpr, *BadExpr:
		if !ConvertibleTo(value.Type(), target.Type()) {
			f.errf(tok, "cannot assign %v to %v", value.Type(), target.Type())
		}
	default:
		f.errf(id, "cannot assign to %s", id.lower())
	}
	return &AssignStmt{stmt: stmtAt(id.Position), Target: target, Value: value}
}

func (f *factory) condition(tok *Token, e Expr) Expr {
	if t := e.Type(); base(t) != Boolean && !isUnknown(t) {
		f.errf(tok, "boolean expression expected, have %v", t)
	}
	return e
}

func (f *factory) forVar(id *Token) *VarRef {
	switch x := f.identExpr(id).(type) {
	case *VarRef:
		if !IsOrdinal(x.T) && !isUnknown(x.T) {
			f.errf(id, "ordinal control variable expected, have %v", x.T)
		}
		return x
	case *BadExpr:
		return nil
	}

	f.errf(id, "%s is not a variable", id.lower())
	return nil
}

func (f *factory) forStmt(tok *Token, v *VarRef, from, to Expr, down bool, body Stmt) Stmt {
	if v != nil {
		for _, e := range []Expr{from, to} {
			if !ConvertibleTo(e.Type(), v.T) {
				f.errf(tok, "cannot use %v as %v in for statement", e.Type(), v.T)
				break
			}
		}
	}
	return &ForStmt{stmt: stmtAt(tok.Position), Var: v, From: from, To: to, Down: down, Body: body}
}

func (f *factory) breakStmt(tok *Token) Stmt {
	if !f.scopes.InLoop() {
		f.errf(tok, "break outside of a loop")
	}
	return &BreakStmt{stmtAt(tok.Position)}
}

func (f *factory) caseSelector(tok *Token, x Expr) Expr {
	if t := x.Type(); !IsOrdinal(t) && !isUnknown(t) {
		f.errf(tok, "ordinal expression expected, have %v", t)
	}
	return x
}

func (f *factory) caseLabel(e, sel Expr) Constant {
	c, ok := constValue(e)
	if !ok {
		if _, bad := e.(*BadExpr); !bad {
			f.p.semErr(e.Position(), "constant expression expected")
		}
		return nil
	}

	if !IsOrdinal(c.Type()) || !ConvertibleTo(c.Type(), sel.Type()) {
		f.p.semErr(e.Position(), fmt.Sprintf("cannot use %v as a %v case label", c, sel.Type()))
		return nil
	}

	return c
}

func (f *factory) caseStmt(tok *Token, x Expr, clauses []*CaseClause, els Stmt) Stmt {
	seen := map[int64]bool{}
	for _, v := range clauses {
		for _, c := range v.Labels {
			n, _ := Ordinal(c)
			if seen[n] {
				f.errf(tok, "duplicate case label %v", c)
			}
			seen[n] = true
		}
	}
	return &CaseStmt{stmt: stmtAt(tok.Position), X: x, Clauses: clauses, Else: els}
}

func (f *factory) rangeExpr(tok *Token, lo, hi Expr) Expr {
	if !sameOrdinal(lo.Type(), hi.Type()) && !isUnknown(lo.Type()) && !isUnknown(hi.Type()) {
		f.errf(tok, "range bounds %v and %v have different types", lo.Type(), hi.Type())
	}
	return &RangeExpr{node: at(lo.Position()), Lo: lo, Hi: hi}
}

func (f *factory) setExpr(tok *Token, elems []Expr) Expr {
	var elem Type = Unknown
	var members []int64
	folds := true
	for _, e := range elems {
		lo, hi := e, e
		if r, ok := e.(*RangeExpr); ok {
			lo, hi = r.Lo, r.Hi
		}
		t := lo.Type()
		switch {
		case isUnknown(t):
			folds = false
			continue
		case !IsOrdinal(t):
			f.p.semErr(e.Position(), fmt.Sprintf("ordinal expression expected, have %v", t))
			folds = false
			continue
		case isUnknown(elem):
			elem = base(t)
		case !sameOrdinal(elem, t):
			f.p.semErr(e.Position(), fmt.Sprintf("incompatible set element types %v and %v", elem, t))
			folds = false
			continue
		}

		a, ok1 := constValue(lo)
		b, ok2 := constValue(hi)
		if !ok1 || !ok2 {
			folds = false
			continue
		}

		l, _ := Ordinal(a)
		h, _ := Ordinal(b)
		w, ovf := mathutil.SubOverflowInt64(h, l)
		if ovf || w >= maxFoldedSet {
			folds = false
			continue
		}

		for i := int64(0); i <= w; i++ {
			members = append(members, l+i)
		}
	}
	n := &SetExpr{node: at(tok.Position), Elems: elems, T: &SetType{Elem: elem}}
	if folds {
		n.Folded = newSetConstant(elem, members)
	}
	return n
}

func (f *factory) random(tok *Token, max Expr) Expr {
	if max != nil && !isInteger(max.Type()) && !isUnknown(max.Type()) {
		f.errf(tok, "integer argument expected, have %v", max.Type())
	}
	return &RandomExpr{node: at(tok.Position), Max: max}
}
