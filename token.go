// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"

	"modernc.org/token"
)

// Kind is the category of a Token.
type Kind int

// Token kinds.
const (
	EOF     Kind = iota
	IDENT        // identifier
	STRING       // 'string literal'
	INT          // 123
	REAL         // 1.5e3
	ILLEGAL      // unrecognized input

	keywordsBegin
	AND
	ARRAY
	BEGIN
	BREAK
	CASE
	CONST
	DIV
	DO
	DOWNTO
	ELSE
	END
	FALSE
	FOR
	FORWARD
	FUNCTION
	IF
	IMPLEMENTATION
	IN
	INTERFACE
	MOD
	NOT
	OF
	OR
	PACKED
	PROCEDURE
	PROGRAM
	RANDOM
	RANDOMIZE
	RECORD
	REPEAT
	SET
	THEN
	TO
	TRUE
	TYPE
	UNIT
	UNTIL
	USES
	VAR
	WHILE
	keywordsEnd

	ASSIGN // :=
	CARET  // ^
	COLON  // :
	COMMA  // ,
	DD     // ..
	DOT    // .
	EQ     // =
	GE     // >=
	GT     // >
	LBRACK // [
	LE     // <=
	LPAREN // (
	LT     // <
	MINUS  // -
	NE     // <>
	PLUS   // +
	RBRACK // ]
	RPAREN // )
	SEMI   // ;
	SLASH  // /
	STAR   // *

	maxKind
)

var kindNames = [...]string{
	EOF:     "EOF",
	IDENT:   "identifier",
	STRING:  "string literal",
	INT:     "integer literal",
	REAL:    "real literal",
	ILLEGAL: "illegal token",

	AND:            "and",
	ARRAY:          "array",
	BEGIN:          "begin",
	BREAK:          "break",
	CASE:           "case",
	CONST:          "const",
	DIV:            "div",
	DO:             "do",
	DOWNTO:         "downto",
	ELSE:           "else",
	END:            "end",
	FALSE:          "false",
	FOR:            "for",
	FORWARD:        "forward",
	FUNCTION:       "function",
	IF:             "if",
	IMPLEMENTATION: "implementation",
	IN:             "in",
	INTERFACE:      "interface",
	MOD:            "mod",
	NOT:            "not",
	OF:             "of",
	OR:             "or",
	PACKED:         "packed",
	PROCEDURE:      "procedure",
	PROGRAM:        "program",
	RANDOM:         "random",
	RANDOMIZE:      "randomize",
	RECORD:         "record",
	REPEAT:         "repeat",
	SET:            "set",
	THEN:           "then",
	TO:             "to",
	TRUE:           "true",
	TYPE:           "type",
	UNIT:           "unit",
	UNTIL:          "until",
	USES:           "uses",
	VAR:            "var",
	WHILE:          "while",

	ASSIGN: ":=",
	CARET:  "^",
	COLON:  ":",
	COMMA:  ",",
	DD:     "..",
	DOT:    ".",
	EQ:     "=",
	GE:     ">=",
	GT:     ">",
	LBRACK: "[",
	LE:     "<=",
	LPAREN: "(",
	LT:     "<",
	MINUS:  "-",
	NE:     "<>",
	PLUS:   "+",
	RBRACK: "]",
	RPAREN: ")",
	SEMI:   ";",
	SLASH:  "/",
	STAR:   "*",
}

// keywords maps lower case spellings to their kinds.
var keywords = map[string]Kind{}

func init() {
	for k := keywordsBegin + 1; k < keywordsEnd; k++ {
		keywords[kindNames[k]] = k
	}
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k > keywordsBegin && k < keywordsEnd }

// expected returns the syntax error message reported when k is missing.
func (k Kind) expected() string {
	switch {
	case k <= ILLEGAL:
		return fmt.Sprintf("%s expected", k)
	default:
		return fmt.Sprintf("%q expected", k.String())
	}
}

// kindSet is a bit set of token kinds used for FIRST/FOLLOW tests.
type kindSet [2]uint64

func newKindSet(kinds ...Kind) (r kindSet) {
	for _, k := range kinds {
		r[k/64] |= 1 << (uint(k) % 64)
	}
	return r
}

func (s kindSet) has(k Kind) bool { return k >= 0 && k < maxKind && s[k/64]&(1<<(uint(k)%64)) != 0 }

func (s kindSet) union(t kindSet) kindSet { return kindSet{s[0] | t[0], s[1] | t[1]} }

// Token is a lexical unit. The embedded Position records the byte offset,
// line and column of the first character. Columns count characters, not
// bytes, once the source switched to UTF-8 decoding.
type Token struct {
	token.Position
	Kind    Kind
	Val     string // Source text, original case.
	CharPos int    // Character offset of the first character.

	next *Token
}

func (t *Token) String() string {
	return fmt.Sprintf("%v: %v %q", t.Position, t.Kind, t.Val)
}

// lower returns the token text in lower case, which is how identifiers are
// bound and looked up.
func (t *Token) lower() string { return foldIdent(t.Val) }
