// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pasc checks Pascal programs and units and shows what the front end
// makes of them.
//
// # Installation
//
// To install:
//
//	$ go install modernc.org/pascal/cmd/pasc@latest
//
// # Invocation
//
// To run the command:
//
//	$ pasc [options] command file...
//
// # Commands
//
//	parse
//
// Parse the files and report all diagnostics. The exit status is non zero
// when any file has an error.
//
//	tokens
//
// List the tokens of the files.
//
//	ast
//
// Parse the files and dump the resulting AST.
//
// # Options
//
//	--config file
//
// Use the project file instead of looking for pasc.toml, pasc.yaml or
// pasc.yml in the current directory.
//
//	--min-err-dist n
//
// Report an error only when at least n tokens were consumed since the last
// one. Defaults to 2.
//
//	--utf8
//
// Decode sources as UTF-8 even without a byte order mark.
//
//	--stack
//
// Show dying stack traces.
//
//	-v
//
// Show per file statistics.
//
// # Project file
//
// A project file lists the units to compile before the files on the command
// line, so their uses clauses can find them. Paths are relative to the
// directory of the project file. In TOML
//
//	units = ["lib/geometry.pas", "lib/text.pas"]
//	min_err_dist = 2
//	utf8 = false
//
// and the same keys in YAML.
package main // import "modernc.org/pascal/cmd/pasc"

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"modernc.org/pascal"
)

func fatal(stack bool, args ...interface{}) {
	if stack {
		fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
	}
	fmt.Fprintln(os.Stderr, strings.TrimSpace(fmt.Sprint(args...)))
	os.Exit(1)
}

func main() {
	t := newTask(os.Args)
	if err := t.main(); err != nil {
		fatal(t.stack, err)
	}
}

type task struct {
	args       []string
	config     string // --config
	minErrDist int    // --min-err-dist
	stderr     io.Writer
	stdout     io.Writer
	units      *pascal.Units

	stack   bool // --stack
	utf8    bool // --utf8
	verbose bool // -v
}

func newTask(args []string) *task {
	return &task{
		args:   args,
		stderr: os.Stderr,
		stdout: os.Stdout,
		units:  pascal.NewUnits(),
	}
}

func (t *task) main() error {
	cmd := t.rootCmd()
	cmd.SetArgs(t.args[1:])
	cmd.SetOut(t.stdout)
	cmd.SetErr(t.stderr)
	return cmd.Execute()
}

func (t *task) cfg() *pascal.Config {
	return &pascal.Config{
		Units:       t.units,
		ErrorWriter: t.stderr,
		MinErrDist:  t.minErrDist,
		UTF8:        t.utf8,
	}
}

// setup loads the project file, if any, and compiles its units.
func (t *task) setup() error {
	p, err := loadProject(t.config)
	if err != nil || p == nil {
		return err
	}

	if t.minErrDist == 0 {
		t.minErrDist = p.MinErrDist
	}
	t.utf8 = t.utf8 || p.UTF8
	for _, v := range p.units() {
		if _, err := t.parse(v); err != nil {
			return fmt.Errorf("unit %s: %v", v, err)
		}
	}
	return nil
}

// parse parses the named file and reports statistics when verbose.
func (t *task) parse(name string) (*pascal.Program, error) {
	b, err := pascal.OpenBuffer(name)
	if err != nil {
		return nil, err
	}

	defer b.Close()

	p, err := pascal.NewParser(name, b, t.cfg())
	if err != nil {
		return nil, err
	}

	prog, err := p.Parse()
	if t.verbose {
		t.stats(name, p)
	}
	if err != nil {
		if list, ok := err.(pascal.ErrorList); ok {
			return nil, fmt.Errorf("%s: %s", name, plural(len(list), "error"))
		}

		return nil, err
	}

	return prog, nil
}
