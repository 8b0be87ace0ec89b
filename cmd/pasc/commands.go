// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "modernc.org/pascal/cmd/pasc"

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"modernc.org/pascal"
)

func (t *task) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pasc",
		Short:         "Pascal front end",
		Long:          "pasc parses Pascal programs and units, reports diagnostics and dumps tokens or the AST.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return t.setup()
		},
	}
	fl := root.PersistentFlags()
	fl.StringVar(&t.config, "config", "", "project file (default: pasc.toml, pasc.yaml or pasc.yml if present)")
	fl.IntVar(&t.minErrDist, "min-err-dist", 0, "tokens to consume after an error before reporting another one")
	fl.BoolVar(&t.utf8, "utf8", false, "decode sources as UTF-8")
	fl.BoolVar(&t.stack, "stack", false, "show dying stack traces")
	fl.BoolVarP(&t.verbose, "verbose", "v", false, "show statistics")
	root.AddCommand(
		&cobra.Command{
			Use:   "parse file...",
			Short: "Parse files and report diagnostics",
			Args:  cobra.MinimumNArgs(1),
			RunE:  t.runParse,
		},
		&cobra.Command{
			Use:   "tokens file...",
			Short: "List the tokens of files",
			Args:  cobra.MinimumNArgs(1),
			RunE:  t.runTokens,
		},
		&cobra.Command{
			Use:   "ast file...",
			Short: "Parse files and dump their AST",
			Args:  cobra.MinimumNArgs(1),
			RunE:  t.runAST,
		},
	)
	return root
}

func (t *task) runParse(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, v := range args {
		if _, err := t.parse(v); err != nil {
			fmt.Fprintln(t.stderr, err)
			failed++
		}
	}
	if failed != 0 {
		return fmt.Errorf("%s failed", plural(failed, "file"))
	}

	return nil
}

func (t *task) runAST(cmd *cobra.Command, args []string) error {
	for _, v := range args {
		prog, err := t.parse(v)
		if err != nil {
			return err
		}

		fmt.Fprintln(t.stdout, pascal.PrettyString(prog))
	}
	return nil
}

func (t *task) runTokens(cmd *cobra.Command, args []string) error {
	for _, v := range args {
		if err := t.tokens(v); err != nil {
			return err
		}
	}
	return nil
}

func (t *task) tokens(name string) error {
	b, err := pascal.OpenBuffer(name)
	if err != nil {
		return err
	}

	defer b.Close()

	s, err := pascal.NewScanner(name, b)
	if err != nil {
		return err
	}

	n := 0
	for {
		tok := s.Next()
		if tok.Kind == pascal.EOF {
			break
		}

		fmt.Fprintf(t.stdout, "%d:%d\t%v\t%q\n", tok.Line, tok.Column, tok.Kind, tok.Val)
		n++
	}
	if t.verbose {
		fmt.Fprintf(t.stderr, "%s: %s tokens\n", name, humanize.Comma(int64(n)))
	}
	return s.Err()
}

func (t *task) stats(name string, p *pascal.Parser) {
	var size string
	if fi, err := os.Stat(name); err == nil {
		size = humanize.Bytes(uint64(fi.Size()))
	}
	lines := 0
	if f := p.File(); f != nil {
		lines = f.LineCount()
	}
	fmt.Fprintf(t.stderr, "%s: %s, %s lines, %s tokens, %s\n",
		name, size, humanize.Comma(int64(lines)), humanize.Comma(int64(p.Tokens())), plural(len(p.Errors()), "error"))
}

func plural(n int, s string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", s)
	}

	return fmt.Sprintf("%d %ss", n, s)
}
