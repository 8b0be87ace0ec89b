// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"reflect"

	"modernc.org/strutil"
)

var prettyHooks = strutil.PrettyPrintHooks{}

func init() {
	for _, v := range []fmt.Stringer{
		BindingKind(0),
		Kind(0),
		SlotKind(0),
		&Token{},
	} {
		prettyHooks[reflect.TypeOf(v)] = prettyStringer
	}
}

func prettyStringer(f strutil.Formatter, v interface{}, prefix, suffix string) {
	f.Format("%s%v", prefix, v)
	f.Format(suffix)
}

// PrettyString returns a human readable rendering of v, typically an AST
// node or a *Program. Zero valued fields are omitted, types, constants and
// subroutines are shown by name.
func PrettyString(v interface{}) string {
	return strutil.PrettyString(v, "", "", prettyHooks)
}
