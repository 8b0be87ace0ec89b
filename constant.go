// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	_ Constant = (*EnumConstant)(nil)
	_ Constant = (*SetConstant)(nil)
	_ Constant = BooleanConstant(false)
	_ Constant = CharConstant(0)
	_ Constant = IntegerConstant(0)
	_ Constant = LongConstant(0)
	_ Constant = RealConstant(0)
	_ Constant = StringConstant("")

	_ negator = IntegerConstant(0)
	_ negator = LongConstant(0)
	_ negator = RealConstant(0)
)

// Constant is a compile time value.
type Constant interface {
	Type() Type
	String() string
	isConstant()
}

type negator interface {
	neg() (Constant, error)
}

// Negate returns -c. Only numeric constants can be negated.
func Negate(c Constant) (Constant, error) {
	if n, ok := c.(negator); ok {
		return n.neg()
	}

	return nil, lexErr("constant %v can't be negated", c)
}

// Ordinal returns the ordinal value of c.
func Ordinal(c Constant) (int64, bool) {
	switch x := c.(type) {
	case IntegerConstant:
		return int64(x), true
	case LongConstant:
		return int64(x), true
	case CharConstant:
		return int64(x), true
	case BooleanConstant:
		if x {
			return 1, true
		}

		return 0, true
	case *EnumConstant:
		return int64(x.Index), true
	}
	return 0, false
}

// ordinalConstant returns the constant of ordinal type t with value n.
func ordinalConstant(t Type, n int64) Constant {
	switch x := base(t).(type) {
	case *PrimitiveType:
		switch x.Kind {
		case CharKind:
			return CharConstant(n)
		case BooleanKind:
			return BooleanConstant(n != 0)
		case LongKind:
			return LongConstant(n)
		}
	case *EnumType:
		return &EnumConstant{Enum: x, Index: int(n)}
	}
	return integerConstant(n)
}

// integerConstant returns n as an integer constant if it fits, otherwise as
// a long one.
func integerConstant(n int64) Constant {
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return IntegerConstant(n)
	}

	return LongConstant(n)
}

// BooleanConstant is true or false.
type BooleanConstant bool

func (c BooleanConstant) isConstant()    {}
func (c BooleanConstant) String() string { return fmt.Sprint(bool(c)) }
func (c BooleanConstant) Type() Type     { return Boolean }

// CharConstant is a character.
type CharConstant rune

func (c CharConstant) isConstant()    {}
func (c CharConstant) String() string { return strconv.QuoteRune(rune(c)) }
func (c CharConstant) Type() Type     { return Char }

// IntegerConstant is a 32 bit integer.
type IntegerConstant int32

func (c IntegerConstant) isConstant()    {}
func (c IntegerConstant) String() string { return fmt.Sprint(int32(c)) }
func (c IntegerConstant) Type() Type     { return Integer }

func (c IntegerConstant) neg() (Constant, error) {
	if c == math.MinInt32 {
		return LongConstant(-int64(c)), nil
	}

	return -c, nil
}

// LongConstant is a 64 bit integer.
type LongConstant int64

func (c LongConstant) isConstant()    {}
func (c LongConstant) String() string { return fmt.Sprint(int64(c)) }
func (c LongConstant) Type() Type     { return Long }

func (c LongConstant) neg() (Constant, error) {
	if c == math.MinInt64 {
		return nil, lexErr("constant %v can't be negated", c)
	}

	return -c, nil
}

// RealConstant is a floating point number.
type RealConstant float64

func (c RealConstant) isConstant()            {}
func (c RealConstant) String() string         { return strconv.FormatFloat(float64(c), 'g', -1, 64) }
func (c RealConstant) Type() Type             { return Real }
func (c RealConstant) neg() (Constant, error) { return -c, nil }

// StringConstant is a string of any length other than one, single character
// literals are CharConstants.
type StringConstant string

func (c StringConstant) isConstant()    {}
func (c StringConstant) String() string { return strconv.Quote(string(c)) }
func (c StringConstant) Type() Type     { return String }

// EnumConstant is a member of an enumeration.
type EnumConstant struct {
	Enum  *EnumType `PrettyPrint:"stringer"`
	Index int
}

func (c *EnumConstant) isConstant() {}
func (c *EnumConstant) Type() Type  { return c.Enum }

func (c *EnumConstant) String() string {
	if c.Index >= 0 && c.Index < len(c.Enum.Members) {
		return c.Enum.Members[c.Index]
	}

	return fmt.Sprintf("%v(%d)", c.Enum, c.Index)
}

// SetConstant is a set of ordinal values, Members are sorted and unique.
type SetConstant struct {
	Elem    Type `PrettyPrint:"stringer"`
	Members []int64
}

func newSetConstant(elem Type, members []int64) *SetConstant {
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	w := 0
	for i, v := range members {
		if i == 0 || v != members[w-1] {
			members[w] = v
			w++
		}
	}
	return &SetConstant{Elem: elem, Members: members[:w]}
}

func (c *SetConstant) isConstant() {}
func (c *SetConstant) Type() Type  { return &SetType{Elem: c.Elem} }

func (c *SetConstant) String() string {
	var a []string
	for _, v := range c.Members {
		a = append(a, ordinalConstant(c.Elem, v).String())
	}
	return "[" + strings.Join(a, ", ") + "]"
}

func (c *SetConstant) has(n int64) bool {
	i := sort.Search(len(c.Members), func(i int) bool { return c.Members[i] >= n })
	return i < len(c.Members) && c.Members[i] == n
}

// ParseInteger converts the text of an integer literal. Values that do not
// fit 32 bits are LongConstants, values that do not fit 64 bits are an error.
func ParseInteger(s string) (Constant, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return IntegerConstant(0), lexErr("Integer literal out of range")
	}

	return integerConstant(n), nil
}

// ParseReal converts the text of a real literal.
func ParseReal(s string) (RealConstant, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, lexErr("Real literal out of range")
	}

	return RealConstant(n), nil
}

// ParseString converts the text of a quoted literal, including the quotes.
// Literals of exactly one character are CharConstants.
func ParseString(s string) Constant {
	if len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "''", "'")
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return CharConstant(r)
	}

	return StringConstant(s)
}
