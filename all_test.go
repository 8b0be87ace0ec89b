// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pascal // import "modernc.org/pascal"

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func caller(s string, va ...interface{}) {
	if s == "" {
		s = strings.Repeat("%v ", len(va))
	}
	_, fn, fl, _ := runtime.Caller(2)
	fmt.Fprintf(os.Stderr, "# caller: %s:%d: ", path.Base(fn), fl)
	fmt.Fprintf(os.Stderr, s, va...)
	fmt.Fprintln(os.Stderr)
	_, fn, fl, _ = runtime.Caller(1)
	fmt.Fprintf(os.Stderr, "# \tcallee: %s:%d: ", path.Base(fn), fl)
	fmt.Fprintln(os.Stderr)
	os.Stderr.Sync()
}

func dbg(s string, va ...interface{}) {
	if s == "" {
		s = strings.Repeat("%v ", len(va))
	}
	pc, fn, fl, _ := runtime.Caller(1)
	f := runtime.FuncForPC(pc)
	fmt.Fprintf(os.Stderr, "# dbg %s:%d:%s: ", path.Base(fn), fl, f.Name())
	fmt.Fprintf(os.Stderr, s, va...)
	fmt.Fprintln(os.Stderr)
	os.Stderr.Sync()
}

func TODO(...interface{}) string { //TODOOK
	_, fn, fl, _ := runtime.Caller(1)
	return fmt.Sprintf("# TODO: %s:%d:\n", path.Base(fn), fl) //TODOOK
}

func stack() []byte { return debug.Stack() }

func use(...interface{}) {}

func init() {
	use(caller, dbg, TODO, stack) //TODOOK
}

// ----------------------------------------------------------------------------

var (
	oTrace = flag.Bool("trc", false, "trace consumed tokens")

	tempDir string
)

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(testMain(m))
}

func testMain(m *testing.M) int {
	var err error
	tempDir, err = os.MkdirTemp("", "pascal-test-")
	if err != nil {
		panic(err)
	}

	defer os.RemoveAll(tempDir)

	return m.Run()
}

// parseSource parses src and returns the program together with the
// diagnostics as streamed to Config.ErrorWriter.
func parseSource(src string, cfg *Config) (*Program, []string, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	var buf bytes.Buffer
	cfg.ErrorWriter = &buf
	cfg.Trace = *oTrace
	prog, err := ParseBytes("test.pas", []byte(src), cfg)
	var diags []string
	if s := strings.TrimSpace(buf.String()); s != "" {
		diags = strings.Split(s, "\n")
	}
	return prog, diags, err
}

// mustParse parses src and fails the test on any diagnostic.
func mustParse(t *testing.T, src string, cfg *Config) *Program {
	t.Helper()
	prog, diags, err := parseSource(src, cfg)
	if err != nil {
		t.Fatalf("%v\n%s", err, strings.Join(diags, "\n"))
	}

	return prog
}

// mustFail parses src and returns its diagnostics, failing the test when
// there are none.
func mustFail(t *testing.T, src string, cfg *Config) []string {
	t.Helper()
	_, diags, err := parseSource(src, cfg)
	if err == nil {
		t.Fatalf("unexpected success:\n%s", src)
	}

	if _, ok := err.(ErrorList); !ok {
		t.Fatalf("unexpected error type %T: %v", err, err)
	}

	return diags
}

func TestParseFile(t *testing.T) {
	fn := filepath.Join(tempDir, "hello.pas")
	if err := os.WriteFile(fn, []byte("program hello;\nbegin\n  writeln('hello, world')\nend.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	prog, err := ParseFile(fn, nil)
	if err != nil {
		t.Fatal(err)
	}

	if g, e := prog.Name, "hello"; g != e {
		t.Fatalf("got %q, want %q", g, e)
	}

	if g, e := len(prog.Root.Body.List), 1; g != e {
		t.Fatalf("got %v statements, want %v", g, e)
	}

	if _, err := ParseFile(filepath.Join(tempDir, "nonexistent.pas"), nil); err == nil {
		t.Fatal("unexpected success")
	}
}

func TestParseReader(t *testing.T) {
	src := "program p; var i: integer; begin for i := 1 to 10 do writeln(i) end."
	prog, err := ParseReader("stream.pas", strings.NewReader(src), nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := prog.Root.Body.List[0].(*ForStmt); !ok {
		t.Fatalf("got %T, want *ForStmt", prog.Root.Body.List[0])
	}
}

type failingReader struct{ n int }

func (r *failingReader) Read(b []byte) (int, error) {
	if r.n == 0 {
		return 0, fmt.Errorf("device on fire")
	}

	n := copy(b, strings.Repeat(" ", r.n))
	r.n -= n
	return n, nil
}

func TestParseReaderIOError(t *testing.T) {
	_, err := ParseReader("broken.pas", &failingReader{n: 10}, nil)
	if err == nil || !strings.Contains(err.Error(), "device on fire") {
		t.Fatalf("got %v, want the I/O error", err)
	}

	if _, ok := err.(ErrorList); ok {
		t.Fatal("I/O error reported as a diagnostic")
	}
}
