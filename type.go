// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"math"
	"strings"
)

var (
	_ Type = (*ArrayType)(nil)
	_ Type = (*EnumType)(nil)
	_ Type = (*PrimitiveType)(nil)
	_ Type = (*RangeType)(nil)
	_ Type = (*RecordType)(nil)
	_ Type = (*ReferenceType)(nil)
	_ Type = (*SetType)(nil)
	_ Type = (*UnknownType)(nil)

	Integer = &PrimitiveType{Kind: IntegerKind}
	Long    = &PrimitiveType{Kind: LongKind}
	Real    = &PrimitiveType{Kind: RealKind}
	Char    = &PrimitiveType{Kind: CharKind}
	Boolean = &PrimitiveType{Kind: BooleanKind}
	String  = &PrimitiveType{Kind: StringKind}

	// Unknown is the type of erroneous expressions. It is compatible with
	// everything so one error does not cause others.
	Unknown = &UnknownType{}
)

// Type describes the type of a variable, constant or expression. The set of
// implementations is closed.
type Type interface {
	String() string
	isType()
}

// PrimitiveKind enumerates the predefined scalar types.
type PrimitiveKind int

// Values of PrimitiveKind.
const (
	IntegerKind PrimitiveKind = iota
	LongKind
	RealKind
	CharKind
	BooleanKind
	StringKind
)

var primitiveNames = [...]string{
	IntegerKind: "integer",
	LongKind:    "longint",
	RealKind:    "real",
	CharKind:    "char",
	BooleanKind: "boolean",
	StringKind:  "string",
}

func (k PrimitiveKind) String() string {
	if k >= 0 && int(k) < len(primitiveNames) {
		return primitiveNames[k]
	}

	return fmt.Sprintf("PrimitiveKind(%d)", int(k))
}

// PrimitiveType is one of the predefined types. There is exactly one instance
// per kind.
type PrimitiveType struct {
	Kind PrimitiveKind
}

func (t *PrimitiveType) isType()        {}
func (t *PrimitiveType) String() string { return t.Kind.String() }

// RangeType is a subrange lo..hi of an ordinal base type.
type RangeType struct {
	Lo, Hi int64
	Base   Type
}

func (t *RangeType) isType() {}

func (t *RangeType) String() string {
	if e, ok := t.Base.(*EnumType); ok {
		return fmt.Sprintf("%s..%s", e.Members[t.Lo], e.Members[t.Hi])
	}

	if t.Base == Char {
		return fmt.Sprintf("%q..%q", rune(t.Lo), rune(t.Hi))
	}

	return fmt.Sprintf("%d..%d", t.Lo, t.Hi)
}

// EnumType is an enumeration. Members are ordered by their ordinal value.
type EnumType struct {
	Members []string
}

func (t *EnumType) isType()        {}
func (t *EnumType) String() string { return "(" + strings.Join(t.Members, ", ") + ")" }

// ArrayType is a one dimensional array. Multi dimensional arrays are arrays of
// arrays.
type ArrayType struct {
	Dim  Type // Ordinal index type.
	Elem Type
}

func (t *ArrayType) isType()        {}
func (t *ArrayType) String() string { return fmt.Sprintf("array[%v] of %v", t.Dim, t.Elem) }

// Field is a record member.
type Field struct {
	Name string
	Type Type
	Slot int // Index into RecordValue.Fields.
}

// RecordType is a record. Field names are unique and lower case.
type RecordType struct {
	Fields []*Field
}

func (t *RecordType) isType() {}

func (t *RecordType) String() string {
	var a []string
	for _, v := range t.Fields {
		a = append(a, fmt.Sprintf("%s: %v", v.Name, v.Type))
	}
	return "record " + strings.Join(a, "; ") + " end"
}

// Field returns the field nm or nil.
func (t *RecordType) Field(nm string) *Field {
	nm = foldIdent(nm)
	for _, v := range t.Fields {
		if v.Name == nm {
			return v
		}
	}
	return nil
}

// ReferenceType is a pointer type ^Elem. Name is the target type name, Elem
// is nil until the name is resolved.
type ReferenceType struct {
	Name string
	Elem Type
}

func (t *ReferenceType) isType()        {}
func (t *ReferenceType) String() string { return "^" + t.Name }

// SetType is a set of ordinal values.
type SetType struct {
	Elem Type
}

func (t *SetType) isType()        {}
func (t *SetType) String() string { return fmt.Sprintf("set of %v", t.Elem) }

// UnknownType is the type of erroneous expressions and of the empty set
// constructor element.
type UnknownType struct{}

func (t *UnknownType) isType()        {}
func (t *UnknownType) String() string { return "<unknown>" }

// SlotKind classifies how a value of some type is stored in a frame slot.
type SlotKind int

// Values of SlotKind.
const (
	SlotObject SlotKind = iota
	SlotInt
	SlotLong
	SlotDouble
	SlotChar
	SlotBool
)

func (k SlotKind) String() string {
	switch k {
	case SlotObject:
		return "object"
	case SlotInt:
		return "int"
	case SlotLong:
		return "long"
	case SlotDouble:
		return "double"
	case SlotChar:
		return "char"
	case SlotBool:
		return "bool"
	default:
		return fmt.Sprintf("SlotKind(%d)", int(k))
	}
}

// SlotKindOf returns the storage kind used for a variable of type t.
func SlotKindOf(t Type) SlotKind {
	switch x := t.(type) {
	case *PrimitiveType:
		switch x.Kind {
		case IntegerKind:
			return SlotInt
		case LongKind:
			return SlotLong
		case RealKind:
			return SlotDouble
		case CharKind:
			return SlotChar
		case BooleanKind:
			return SlotBool
		}
	case *RangeType:
		return SlotKindOf(x.Base)
	case *EnumType:
		return SlotInt
	}
	return SlotObject
}

// base returns the base type of a subrange, otherwise t.
func base(t Type) Type {
	if r, ok := t.(*RangeType); ok {
		return r.Base
	}

	return t
}

func primitiveKind(t Type) (PrimitiveKind, bool) {
	if p, ok := base(t).(*PrimitiveType); ok {
		return p.Kind, true
	}

	return 0, false
}

func isUnknown(t Type) bool {
	_, ok := t.(*UnknownType)
	return ok || t == nil
}

func isNumeric(t Type) bool {
	k, ok := primitiveKind(t)
	return ok && (k == IntegerKind || k == LongKind || k == RealKind)
}

func isInteger(t Type) bool {
	k, ok := primitiveKind(t)
	return ok && (k == IntegerKind || k == LongKind)
}

// IsOrdinal reports whether t is an ordinal type: integer, char, boolean, an
// enumeration or a subrange.
func IsOrdinal(t Type) bool {
	switch x := t.(type) {
	case *PrimitiveType:
		return x.Kind == IntegerKind || x.Kind == LongKind || x.Kind == CharKind || x.Kind == BooleanKind
	case *RangeType, *EnumType:
		return true
	}
	return false
}

// OrdinalBounds returns the first and last ordinal value of t. The size of
// the type is hi-lo+1.
func OrdinalBounds(t Type) (lo, hi int64, ok bool) {
	switch x := t.(type) {
	case *PrimitiveType:
		switch x.Kind {
		case IntegerKind:
			return math.MinInt32, math.MaxInt32, true
		case LongKind:
			return math.MinInt64, math.MaxInt64, true
		case CharKind:
			return 0, 255, true
		case BooleanKind:
			return 0, 1, true
		}
	case *RangeType:
		return x.Lo, x.Hi, true
	case *EnumType:
		return 0, int64(len(x.Members)) - 1, true
	}
	return 0, 0, false
}

// DefaultValue returns the initial value of a variable of type t.
func DefaultValue(t Type) Value {
	switch x := t.(type) {
	case *PrimitiveType:
		switch x.Kind {
		case IntegerKind:
			return IntegerConstant(0)
		case LongKind:
			return LongConstant(0)
		case RealKind:
			return RealConstant(0)
		case CharKind:
			return CharConstant(0)
		case BooleanKind:
			return BooleanConstant(false)
		case StringKind:
			return StringConstant("")
		}
	case *RangeType:
		return ordinalConstant(x.Base, x.Lo)
	case *EnumType:
		return &EnumConstant{Enum: x}
	case *ArrayType:
		lo, hi, _ := OrdinalBounds(x.Dim)
		return &ArrayValue{Lo: lo, Len: hi - lo + 1, Elem: x.Elem}
	case *RecordType:
		r := &RecordValue{Type: x, Fields: make([]Value, len(x.Fields))}
		for i, v := range x.Fields {
			r.Fields[i] = DefaultValue(v.Type)
		}
		return r
	case *SetType:
		return &SetConstant{Elem: x.Elem}
	case *ReferenceType:
		return &PointerValue{Type: x}
	}
	return nil
}

// ConvertibleTo reports whether a value of type from can be assigned to, or
// passed as, type to.
func ConvertibleTo(from, to Type) bool {
	if isUnknown(from) || isUnknown(to) || from == to {
		return true
	}

	from, to = base(from), base(to)
	if from == to {
		return true
	}

	switch x := from.(type) {
	case *PrimitiveType:
		y, ok := to.(*PrimitiveType)
		if !ok {
			return false
		}

		switch x.Kind {
		case IntegerKind, LongKind:
			return y.Kind == IntegerKind || y.Kind == LongKind || y.Kind == RealKind
		case CharKind:
			return y.Kind == StringKind
		}
	case *SetType:
		y, ok := to.(*SetType)
		return ok && (isUnknown(x.Elem) || isUnknown(y.Elem) || sameOrdinal(x.Elem, y.Elem))
	case *ReferenceType:
		y, ok := to.(*ReferenceType)
		return ok && x.Elem != nil && x.Elem == y.Elem
	}
	return false
}

// sameOrdinal reports whether ordinal values of a and b are comparable.
func sameOrdinal(a, b Type) bool {
	a, b = base(a), base(b)
	if a == b {
		return true
	}

	return isInteger(a) && isInteger(b)
}

var numericResult = map[[2]PrimitiveKind]PrimitiveKind{
	{IntegerKind, IntegerKind}: IntegerKind,
	{IntegerKind, LongKind}:    LongKind,
	{IntegerKind, RealKind}:    RealKind,
	{LongKind, IntegerKind}:    LongKind,
	{LongKind, LongKind}:       LongKind,
	{LongKind, RealKind}:       RealKind,
	{RealKind, IntegerKind}:    RealKind,
	{RealKind, LongKind}:       RealKind,
	{RealKind, RealKind}:       RealKind,
}

var primitives = [...]*PrimitiveType{
	IntegerKind: Integer,
	LongKind:    Long,
	RealKind:    Real,
	CharKind:    Char,
	BooleanKind: Boolean,
	StringKind:  String,
}

func numericType(l, r Type) (Type, bool) {
	lk, ok1 := primitiveKind(l)
	rk, ok2 := primitiveKind(r)
	if !ok1 || !ok2 {
		return nil, false
	}

	k, ok := numericResult[[2]PrimitiveKind{lk, rk}]
	if !ok {
		return nil, false
	}

	return primitives[k], true
}

func isText(t Type) bool {
	k, ok := primitiveKind(t)
	return ok && (k == CharKind || k == StringKind)
}

// binaryType returns the result type of l op r.
func binaryType(op Kind, l, r Type) (Type, error) {
	if isUnknown(l) || isUnknown(r) {
		if isRelational(op) || op == IN {
			return Boolean, nil
		}

		return Unknown, nil
	}

	switch op {
	case PLUS, MINUS, STAR:
		if t, ok := numericType(l, r); ok {
			return t, nil
		}

		if op == PLUS && isText(l) && isText(r) {
			return String, nil
		}

		if ls, ok := l.(*SetType); ok {
			if rs, ok := r.(*SetType); ok && ConvertibleTo(rs, ls) {
				if isUnknown(ls.Elem) {
					return rs, nil
				}

				return ls, nil
			}
		}
	case SLASH:
		if isNumeric(l) && isNumeric(r) {
			return Real, nil
		}
	case DIV, MOD:
		if isInteger(l) && isInteger(r) {
			t, _ := numericType(l, r)
			return t, nil
		}
	case AND, OR:
		if base(l) == Boolean && base(r) == Boolean {
			return Boolean, nil
		}
	case EQ, NE, LT, LE, GT, GE:
		if comparable(l, r) {
			return Boolean, nil
		}
	case IN:
		if s, ok := r.(*SetType); ok && IsOrdinal(l) && (isUnknown(s.Elem) || sameOrdinal(l, s.Elem)) {
			return Boolean, nil
		}
	default:
		panic(todo("%v", op))
	}
	return Unknown, lexErr("incompatible operand types for %v: %v and %v", op, l, r)
}

// comparable reports whether l and r can be operands of a relational
// operator. Char, boolean and enumerations compare only with themselves,
// sets compare with sets.
func comparable(l, r Type) bool {
	if isNumeric(l) && isNumeric(r) {
		return true
	}

	if isText(l) && isText(r) {
		return true
	}

	if _, ok := l.(*SetType); ok {
		return ConvertibleTo(r, l)
	}

	if x, ok := l.(*ReferenceType); ok {
		y, ok := r.(*ReferenceType)
		return ok && x.Elem == y.Elem
	}

	return base(l) == base(r) && IsOrdinal(l)
}

func isRelational(op Kind) bool {
	switch op {
	case EQ, NE, LT, LE, GT, GE:
		return true
	}
	return false
}

// unaryType returns the result type of op x.
func unaryType(op Kind, x Type) (Type, error) {
	if isUnknown(x) {
		return Unknown, nil
	}

	switch op {
	case NOT:
		if base(x) == Boolean {
			return Boolean, nil
		}
	case PLUS, MINUS:
		if isNumeric(x) {
			return base(x), nil
		}
	default:
		panic(todo("%v", op))
	}
	return Unknown, lexErr("incompatible operand type for %v: %v", op, x)
}
