// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"strings"
)

// Value is the initial content of a frame slot. It is a Constant for scalar
// types, *ArrayValue, *RecordValue or *PointerValue otherwise.
type Value interface {
	String() string
}

// ArrayValue is the default value of an array. Elements are materialized by
// the executing engine, Elem is their type.
type ArrayValue struct {
	Lo   int64 // Index of the first element.
	Len  int64
	Elem Type `PrettyPrint:"stringer"`
}

func (v *ArrayValue) String() string {
	return fmt.Sprintf("array[%d..%d] of %v", v.Lo, v.Lo+v.Len-1, v.Elem)
}

// RecordValue is the default value of a record, one value per field.
type RecordValue struct {
	Type   *RecordType `PrettyPrint:"stringer"`
	Fields []Value
}

func (v *RecordValue) String() string {
	var a []string
	for i, f := range v.Fields {
		a = append(a, fmt.Sprintf("%s: %v", v.Type.Fields[i].Name, f))
	}
	return "(" + strings.Join(a, "; ") + ")"
}

// PointerValue is a nil pointer.
type PointerValue struct {
	Type *ReferenceType `PrettyPrint:"stringer"`
}

func (v *PointerValue) String() string { return "nil" }
