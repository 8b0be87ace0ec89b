// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"unicode"

	"modernc.org/token"
)

// Scanner states.
const (
	stNone = iota // No transition, finish or rewind.
	stIdent
	stString    // Inside quotes.
	stStringEnd // After a closing quote, a second quote continues the string.
	stInt
	stFracFirst // After "123.", a digit is required.
	stFrac
	stExp // After "e".
	stExpSign
	stExpDigits
	stColon
	stDot
	stLess
	stGreater
	stOp // Single character operator.
)

const (
	commentNone = iota
	commentDone
	commentUnterminated
)

var (
	startStates [128]uint8
	opKinds     [128]Kind
)

func init() {
	for c := 'a'; c <= 'z'; c++ {
		startStates[c] = stIdent
	}
	for c := '0'; c <= '9'; c++ {
		startStates[c] = stInt
	}
	startStates['_'] = stIdent
	startStates['\''] = stString
	startStates[':'] = stColon
	startStates['.'] = stDot
	startStates['<'] = stLess
	startStates['>'] = stGreater
	for _, v := range []struct {
		c rune
		k Kind
	}{
		{'(', LPAREN},
		{')', RPAREN},
		{'*', STAR},
		{'+', PLUS},
		{',', COMMA},
		{'-', MINUS},
		{'/', SLASH},
		{';', SEMI},
		{'=', EQ},
		{'[', LBRACK},
		{']', RBRACK},
		{'^', CARET},
	} {
		startStates[v.c] = stOp
		opKinds[v.c] = v.k
	}
}

func startState(c int) int {
	switch {
	case c < 0:
		return stNone
	case c < len(startStates):
		return int(startStates[c])
	case unicode.IsLetter(rune(c)):
		return stIdent
	default:
		return stNone
	}
}

func isDigit(c int) bool { return c >= '0' && c <= '9' }

// isIdNext expects c already in lower case.
func isIdNext(c int) bool {
	return c >= 'a' && c <= 'z' || isDigit(c) || c == '_' || c >= 0x80 && unicode.IsLetter(rune(c))
}

// Scanner produces tokens from a Buffer. It never fails on bad input,
// unrecognized text becomes an ILLEGAL token. I/O errors end the token
// stream and are reported by Err.
type Scanner struct {
	name string
	src  source
	file *token.File // Line starts, nil for streams.

	ch      int // Current character, lower case, or eofCh.
	valCh   int // Current character as written.
	pos     int // Offset of ch.
	charPos int
	col     int
	line    int
	oldEols int // Line ends seen in the last comment, replayed by nextCh.

	tval []rune

	tokens *Token // Last token returned from the peeked list.
	pt     *Token // Peek cursor.
	eof    *Token
	err    error
}

// NewScanner returns a Scanner reading b. A UTF-8 byte order mark switches
// to UTF-8 decoding, a malformed one is an error.
func NewScanner(name string, b *Buffer) (*Scanner, error) {
	return newScanner(name, b, false)
}

func newScanner(name string, b *Buffer, utf8 bool) (s *Scanner, err error) {
	defer func() {
		if e := recover(); e != nil {
			fe, ok := e.(*fatalError)
			if !ok {
				panic(e)
			}

			s = nil
			err = fe.err
		}
	}()

	s = &Scanner{name: name, src: b, pos: -1, line: 1, charPos: -1}
	if b.stream == nil {
		s.file = token.NewFile(name, b.fileLen)
	}
	if utf8 {
		s.src = newUTF8Buffer(b)
	}
	s.nextCh()
	switch {
	case s.valCh == 0xef && !utf8:
		s.nextCh()
		c1 := s.valCh
		s.nextCh()
		c2 := s.valCh
		if c1 != 0xbb || c2 != 0xbf {
			return nil, fmt.Errorf("%s: illegal byte order mark at start of file", name)
		}

		s.src = newUTF8Buffer(b)
		s.col = 0
		s.charPos = -1
		s.nextCh()
	case utf8 && s.valCh == 0xfeff:
		s.col = 0
		s.charPos = -1
		s.nextCh()
	}
	s.tokens = &Token{}
	s.pt = s.tokens
	return s, nil
}

// File returns the line table of the input seen so far, or nil when reading a
// stream.
func (s *Scanner) File() *token.File { return s.file }

// Err returns the I/O error that ended the token stream, if any.
func (s *Scanner) Err() error { return s.err }

// Next returns the next token, consuming any token seen by Peek first.
// Past the end of input it keeps returning the same EOF token.
func (s *Scanner) Next() *Token {
	if s.tokens.next == nil {
		return s.scan()
	}

	s.tokens = s.tokens.next
	s.pt = s.tokens
	return s.tokens
}

// Peek returns the token following the peek cursor without consuming it.
// Repeated calls return the same token until SkipPeek, ResetPeek or Next.
func (s *Scanner) Peek() *Token {
	if s.pt.next == nil {
		s.pt.next = s.scan()
	}
	return s.pt.next
}

// SkipPeek moves the peek cursor past the token returned by Peek.
func (s *Scanner) SkipPeek() { s.pt = s.Peek() }

// ResetPeek moves the peek cursor back to the current scan position.
func (s *Scanner) ResetPeek() { s.pt = s.tokens }

func (s *Scanner) scan() (t *Token) {
	if s.err != nil {
		return s.eofToken()
	}

	defer func() {
		if e := recover(); e != nil {
			fe, ok := e.(*fatalError)
			if !ok {
				panic(e)
			}

			s.err = fe.err
			t = s.eofToken()
		}
	}()

	return s.nextToken()
}

func (s *Scanner) nextCh() {
	if s.oldEols > 0 {
		s.ch = '\n'
		s.oldEols--
	} else {
		s.pos = s.src.Pos()
		s.ch = s.src.Read()
		s.col++
		s.charPos++
		if s.ch == '\r' && s.src.Peek() != '\n' {
			s.ch = '\n'
		}
		if s.ch == '\n' {
			s.line++
			s.col = 0
			if s.file != nil {
				s.file.AddLine(s.pos + 1)
			}
		}
	}
	s.valCh = s.ch
	if s.ch >= 'A' {
		s.ch = int(unicode.ToLower(rune(s.ch)))
	}
}

func (s *Scanner) addCh() {
	if s.ch != eofCh {
		s.tval = append(s.tval, rune(s.valCh))
		s.nextCh()
	}
}

func (s *Scanner) position() token.Position {
	return token.Position{Filename: s.name, Offset: s.pos, Line: s.line, Column: s.col}
}

func (s *Scanner) eofToken() *Token {
	if s.eof == nil {
		s.eof = &Token{Position: s.position(), Kind: EOF, CharPos: s.charPos}
	}
	return s.eof
}

// braceComment skips a { } comment, which may nest.
func (s *Scanner) braceComment() int {
	level, line0 := 1, s.line
	s.nextCh()
	for {
		switch s.ch {
		case '{':
			level++
			s.nextCh()
		case '}':
			if level--; level == 0 {
				s.oldEols = s.line - line0
				s.nextCh()
				return commentDone
			}

			s.nextCh()
		case eofCh:
			return commentUnterminated
		default:
			s.nextCh()
		}
	}
}

// parenComment skips a (* *) comment, which may nest. A '(' not followed by
// '*' is put back.
func (s *Scanner) parenComment() int {
	level, pos0, line0, col0, charPos0 := 1, s.pos, s.line, s.col, s.charPos
	s.nextCh()
	if s.ch != '*' {
		s.src.SetPos(pos0)
		s.nextCh()
		s.line, s.col, s.charPos = line0, col0, charPos0
		return commentNone
	}

	s.nextCh()
	for {
		switch s.ch {
		case '*':
			s.nextCh()
			if s.ch == ')' {
				if level--; level == 0 {
					s.oldEols = s.line - line0
					s.nextCh()
					return commentDone
				}

				s.nextCh()
			}
		case '(':
			s.nextCh()
			if s.ch == '*' {
				level++
				s.nextCh()
			}
		case eofCh:
			return commentUnterminated
		default:
			s.nextCh()
		}
	}
}

func (s *Scanner) nextToken() *Token {
	for {
		for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
			s.nextCh()
		}

		start := s.position()
		charPos := s.charPos
		var r int
		var opener string
		switch s.ch {
		case '{':
			r, opener = s.braceComment(), "{"
		case '(':
			r, opener = s.parenComment(), "(*"
		}
		switch r {
		case commentDone:
			continue
		case commentUnterminated:
			return &Token{Position: start, Kind: ILLEGAL, Val: opener, CharPos: charPos}
		}

		break
	}

	if s.ch == eofCh {
		return s.eofToken()
	}

	t := &Token{Position: s.position(), CharPos: s.charPos}
	state := startState(s.ch)
	first := s.ch
	s.tval = s.tval[:0]
	s.addCh()
	recKind, recLen := ILLEGAL, 0
loop:
	for {
		switch state {
		case stNone:
			if recKind != ILLEGAL {
				s.tval = s.tval[:recLen]
				s.setScannerBehindT(t, recLen)
			}
			t.Kind = recKind
			break loop
		case stIdent:
			if isIdNext(s.ch) {
				s.addCh()
				break
			}

			t.Kind = IDENT
			if k, ok := keywords[foldIdent(string(s.tval))]; ok {
				t.Kind = k
			}
			break loop
		case stString:
			switch {
			case s.ch == '\'':
				s.addCh()
				state = stStringEnd
			case s.ch == eofCh || s.ch == '\n' || s.ch == '\r':
				state = stNone
			default:
				s.addCh()
			}
		case stStringEnd:
			recKind, recLen = STRING, len(s.tval)
			if s.ch != '\'' {
				t.Kind = STRING
				break loop
			}

			s.addCh()
			state = stString
		case stInt:
			recKind, recLen = INT, len(s.tval)
			switch {
			case isDigit(s.ch):
				s.addCh()
			case s.ch == '.':
				s.addCh()
				state = stFracFirst
			case s.ch == 'e':
				s.addCh()
				state = stExp
			default:
				t.Kind = INT
				break loop
			}
		case stFracFirst:
			state = stNone
			if isDigit(s.ch) {
				s.addCh()
				state = stFrac
			}
		case stFrac:
			recKind, recLen = REAL, len(s.tval)
			switch {
			case isDigit(s.ch):
				s.addCh()
			case s.ch == 'e':
				s.addCh()
				state = stExp
			default:
				t.Kind = REAL
				break loop
			}
		case stExp:
			switch {
			case s.ch == '+' || s.ch == '-':
				s.addCh()
				state = stExpSign
			case isDigit(s.ch):
				s.addCh()
				state = stExpDigits
			default:
				state = stNone
			}
		case stExpSign:
			state = stNone
			if isDigit(s.ch) {
				s.addCh()
				state = stExpDigits
			}
		case stExpDigits:
			recKind, recLen = REAL, len(s.tval)
			if !isDigit(s.ch) {
				t.Kind = REAL
				break loop
			}

			s.addCh()
		case stColon:
			t.Kind = COLON
			if s.ch == '=' {
				s.addCh()
				t.Kind = ASSIGN
			}
			break loop
		case stDot:
			t.Kind = DOT
			if s.ch == '.' {
				s.addCh()
				t.Kind = DD
			}
			break loop
		case stLess:
			t.Kind = LT
			switch s.ch {
			case '=':
				s.addCh()
				t.Kind = LE
			case '>':
				s.addCh()
				t.Kind = NE
			}
			break loop
		case stGreater:
			t.Kind = GT
			if s.ch == '=' {
				s.addCh()
				t.Kind = GE
			}
			break loop
		case stOp:
			t.Kind = opKinds[first]
			break loop
		default:
			panic(todo("%v: scanner state %d", t.Position, state))
		}
	}
	t.Val = string(s.tval)
	return t
}

// setScannerBehindT rewinds the input to just after the first n characters
// of t, the longest prefix that formed a complete token.
func (s *Scanner) setScannerBehindT(t *Token, n int) {
	s.src.SetPos(t.Offset)
	s.nextCh()
	s.line, s.col, s.charPos = t.Line, t.Column, t.CharPos
	for i := 0; i < n; i++ {
		s.nextCh()
	}
}
