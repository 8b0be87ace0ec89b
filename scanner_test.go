// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"fmt"
	"strings"
	"testing"
)

func scanAll(t *testing.T, src string) []*Token {
	t.Helper()
	s, err := NewScanner("test.pas", NewBuffer([]byte(src)))
	if err != nil {
		t.Fatal(err)
	}

	var r []*Token
	for {
		tok := s.Next()
		if tok.Kind == EOF {
			return r
		}

		r = append(r, tok)
	}
}

func kindsOf(toks []*Token) string {
	var a []string
	for _, v := range toks {
		a = append(a, v.Kind.String())
	}
	return strings.Join(a, " ")
}

func TestScannerKinds(t *testing.T) {
	for i, test := range []struct {
		src  string
		want string
	}{
		{"", ""},
		{"x := 1", "identifier := integer literal"},
		{"1..5", "integer literal .. integer literal"},
		{"a[1..2]", "identifier [ integer literal .. integer literal ]"},
		{"1.5 2e3 3.25E-2 4e+1", "real literal real literal real literal real literal"},
		{"1e", "integer literal identifier"},
		{"1e+", "integer literal identifier +"},
		{"1.5e", "real literal identifier"},
		{"1.", "integer literal ."},
		{"p^.x", "identifier ^ . identifier"},
		{"< <= <> > >= = :", "< <= <> > >= = :"},
		{"( ) [ ] , ; + - * /", "( ) [ ] , ; + - * /"},
		{"BEGIN End wHiLe", "begin end while"},
		{"for i := 1 to n do", "for identifier := integer literal to identifier do"},
		{"FOR forward Fortran", "for forward identifier"},
		{"begin_ _x x1", "identifier identifier identifier"},
		{"'a' 'it''s' ''", "string literal string literal string literal"},
		{"x { comment } y", "identifier identifier"},
		{"x (* comment *) y", "identifier identifier"},
		{"(x)", "( identifier )"},
		{"a { { nested } still comment } b", "identifier identifier"},
		{"a (* (* nested *) still *) b", "identifier identifier"},
		{"#", "illegal token"},
		{"x ? y", "identifier illegal token identifier"},
	} {
		if g, e := kindsOf(scanAll(t, test.src)), test.want; g != e {
			t.Errorf("%d: %q: got %q, want %q", i, test.src, g, e)
		}
	}
}

func TestScannerValues(t *testing.T) {
	toks := scanAll(t, "Foo 'it''s' 12 3.5 :=")
	var a []string
	for _, v := range toks {
		a = append(a, v.Val)
	}
	if g, e := strings.Join(a, "|"), "Foo|'it''s'|12|3.5|:="; g != e {
		t.Fatalf("got %q, want %q", g, e)
	}
}

func TestScannerPositions(t *testing.T) {
	toks := scanAll(t, "program p;\n  {\n  }  x := 'a'\r\n\ty")
	var a []string
	for _, v := range toks {
		a = append(a, fmt.Sprintf("%d:%d@%d", v.Line, v.Column, v.Offset))
	}
	if g, e := strings.Join(a, " "), "1:1@0 1:9@8 1:10@9 3:6@20 3:8@22 3:11@25 4:2@31"; g != e {
		t.Fatalf("got %q, want %q", g, e)
	}
}

func TestScannerNestedCommentColumn(t *testing.T) {
	toks := scanAll(t, "a { b { c } d } (* *) x")
	if g, e := len(toks), 2; g != e {
		t.Fatalf("got %v tokens, want %v", g, e)
	}

	if g, e := toks[1].Column, 23; g != e {
		t.Fatalf("got column %v, want %v", g, e)
	}
}

func TestScannerRewind(t *testing.T) {
	toks := scanAll(t, "x 1e y")
	if g, e := kindsOf(toks), "identifier integer literal identifier identifier"; g != e {
		t.Fatalf("got %q, want %q", g, e)
	}

	if g, e := toks[2].Val, "e"; g != e {
		t.Fatalf("got %q, want %q", g, e)
	}

	if g, e := toks[2].Column, 4; g != e {
		t.Fatalf("got column %v, want %v", g, e)
	}
}

func TestScannerUnterminated(t *testing.T) {
	for i, test := range []struct {
		src  string
		kind Kind
		val  string
	}{
		{"x { never closed", ILLEGAL, "{"},
		{"x (* never closed", ILLEGAL, "(*"},
		{"x { { closed once }", ILLEGAL, "{"},
		{"x 'never closed", ILLEGAL, "'never closed"},
		{"x 'line\n'", ILLEGAL, "'line"},
	} {
		toks := scanAll(t, test.src)
		if len(toks) < 2 {
			t.Errorf("%d: got %v tokens", i, len(toks))
			continue
		}

		if g, e := toks[1].Kind, test.kind; g != e {
			t.Errorf("%d: got %v, want %v", i, g, e)
		}

		if g, e := toks[1].Val, test.val; g != e {
			t.Errorf("%d: got %q, want %q", i, g, e)
		}

		if g, e := toks[1].Column, 3; g != e {
			t.Errorf("%d: got column %v, want %v", i, g, e)
		}
	}
}

func TestScannerPeek(t *testing.T) {
	s, err := NewScanner("test.pas", NewBuffer([]byte("a b c")))
	if err != nil {
		t.Fatal(err)
	}

	p1 := s.Peek()
	p2 := s.Peek()
	p3 := s.Peek()
	if p1 != p2 || p2 != p3 {
		t.Fatal("Peek is not idempotent")
	}

	if g, e := p1.Val, "a"; g != e {
		t.Fatalf("got %q, want %q", g, e)
	}

	s.SkipPeek()
	if g, e := s.Peek().Val, "b"; g != e {
		t.Fatalf("got %q, want %q", g, e)
	}

	s.ResetPeek()
	if s.Peek() != p1 {
		t.Fatal("ResetPeek did not rewind the peek cursor")
	}

	if s.Next() != p1 {
		t.Fatal("Next did not return the peeked token")
	}

	if g, e := s.Next().Val, "b"; g != e {
		t.Fatalf("got %q, want %q", g, e)
	}

	if g, e := s.Next().Val, "c"; g != e {
		t.Fatalf("got %q, want %q", g, e)
	}

	eof := s.Next()
	if eof.Kind != EOF || s.Next() != eof || s.Peek() != eof {
		t.Fatal("EOF is not sticky")
	}
}

func TestScannerBOM(t *testing.T) {
	s, err := NewScanner("test.pas", NewBuffer([]byte("\xef\xbb\xbf'héllo' π")))
	if err != nil {
		t.Fatal(err)
	}

	tok := s.Next()
	if g, e := tok.Val, "'héllo'"; g != e {
		t.Fatalf("got %q, want %q", g, e)
	}

	if g, e := tok.Column, 1; g != e {
		t.Fatalf("got column %v, want %v", g, e)
	}

	tok = s.Next()
	if g, e := tok.Kind, IDENT; g != e {
		t.Fatalf("got %v, want %v", g, e)
	}

	if g, e := tok.Column, 9; g != e {
		t.Fatalf("got column %v, want %v", g, e)
	}

	if _, err := NewScanner("test.pas", NewBuffer([]byte("\xef\x00\x00x"))); err == nil {
		t.Fatal("unexpected success")
	}
}

func TestScannerBOMWithUTF8(t *testing.T) {
	for _, src := range []string{"\xef\xbb\xbfprogram é", "program é"} {
		s, err := newScanner("test.pas", NewBuffer([]byte(src)), true)
		if err != nil {
			t.Fatal(err)
		}

		tok := s.Next()
		if tok.Kind != PROGRAM || tok.Column != 1 {
			t.Fatalf("%q: got %v at column %v", src, tok.Kind, tok.Column)
		}

		tok = s.Next()
		if tok.Kind != IDENT || tok.Val != "é" || tok.Column != 9 {
			t.Fatalf("%q: got %v %q at column %v", src, tok.Kind, tok.Val, tok.Column)
		}
	}
}

func TestScannerLatin1(t *testing.T) {
	toks := scanAll(t, "'\xe9'")
	if g, e := len(toks), 1; g != e {
		t.Fatalf("got %v tokens, want %v", g, e)
	}

	if g, e := ParseString(toks[0].Val), CharConstant(0xe9); g != e {
		t.Fatalf("got %v, want %v", g, e)
	}
}

func TestScannerIOError(t *testing.T) {
	s, err := NewScanner("test.pas", NewStreamBuffer(&failingReader{n: 3}))
	if err != nil {
		t.Fatal(err)
	}

	if g, e := s.Next().Kind, EOF; g != e {
		t.Fatalf("got %v, want %v", g, e)
	}

	if s.Err() == nil {
		t.Fatal("missing I/O error")
	}
}

func TestScannerLineCount(t *testing.T) {
	s, err := NewScanner("test.pas", NewBuffer([]byte("a\nb\n{\n}\nc")))
	if err != nil {
		t.Fatal(err)
	}

	for s.Next().Kind != EOF {
	}
	if g, e := s.File().LineCount(), 5; g != e {
		t.Fatalf("got %v lines, want %v", g, e)
	}
}
