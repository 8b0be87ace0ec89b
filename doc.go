// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pascal is a single pass front end for a Turbo Pascal like
// dialect. It scans and parses programs and units, binds names in nested
// scopes, checks types, folds constant expressions and produces an AST of
// executable nodes. Executing the AST is left to the caller.
//
// # Usage
//
// To parse a file:
//
//	prog, err := pascal.ParseFile("hello.pas", nil)
//	if err != nil {
//		// err is an ErrorList of all diagnostics, or an I/O error.
//	}
//
// The parser never stops at the first error. Every lexical, syntax and
// semantic error is collected and, when Config.ErrorWriter is set, streamed
// as it is found in the form
//
//	-- line 3 col 12: unknown identifier: y
//
// Two errors closer than Config.MinErrDist tokens are reported as one.
//
// # Source
//
// Keywords and identifiers are case insensitive. Comments are { ... } or
// (* ... *) and nest. A UTF-8 byte order mark switches the scanner from
// Latin-1 to UTF-8 decoding.
//
// # Programs
//
// A program is
//
//	program name; [uses unit, ...;] declarations begin statements end.
//
// where declarations are const, type and var sections and procedure or
// function definitions in any order. Supported types are the predefined
// boolean, char, integer, longint, real and string, subranges,
// enumerations, multi dimensional arrays, records, sets and pointers.
//
// # Units
//
// A unit exports the types, constants and subroutine headings of its
// interface section. Parsing a unit without errors adds it to Config.Units,
// where later programs find it by name in their uses clause. The builtin
// units crt, dos and strings are always available.
//
// # AST
//
// The Root of a Program holds the frame layout of the main block and its
// statements. Every user subroutine has its own RootNode, reachable through
// Program.Subroutines by qualified name, for example "outer.inner".
// PrettyString renders any node for inspection.
package pascal // import "modernc.org/pascal"
