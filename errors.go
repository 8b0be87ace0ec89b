// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"strings"

	"modernc.org/token"
)

// LexicalError is returned by scope and type construction operations when
// their precondition does not hold. The parser reports it as a semantic
// error and continues.
type LexicalError struct {
	Msg string
}

func (e *LexicalError) Error() string { return e.Msg }

func lexErr(format string, args ...interface{}) *LexicalError {
	return &LexicalError{fmt.Sprintf(format, args...)}
}

// Diagnostic is a reported lexical, syntax or semantic error.
type Diagnostic struct {
	token.Position
	Msg string
}

func (d *Diagnostic) Error() string {
	if d.Position.IsValid() {
		return fmt.Sprintf("%v: %s", d.Position, d.Msg)
	}

	return d.Msg
}

// format renders d the way diagnostics are streamed while parsing.
func (d *Diagnostic) format() string {
	return fmt.Sprintf("-- line %d col %d: %s", d.Line, d.Column, d.Msg)
}

// ErrorList is a list of diagnostics in the order they were reported.
type ErrorList []*Diagnostic

func (l ErrorList) Error() string {
	var a []string
	for _, v := range l {
		a = append(a, v.Error())
	}
	return strings.Join(a, "\n")
}

// Err returns l as an error, or nil when l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}

	return l
}
