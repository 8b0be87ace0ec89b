// Copyright 2026 The pascal Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "modernc.org/pascal/cmd/pasc"

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Project files looked for in the current directory, in order.
var projectFiles = []string{"pasc.toml", "pasc.yaml", "pasc.yml"}

type project struct {
	Units      []string `toml:"units" yaml:"units"`
	MinErrDist int      `toml:"min_err_dist" yaml:"min_err_dist"`
	UTF8       bool     `toml:"utf8" yaml:"utf8"`

	dir string
}

// units returns the unit paths relative to the working directory.
func (p *project) units() (r []string) {
	for _, v := range p.Units {
		if !filepath.IsAbs(v) {
			v = filepath.Join(p.dir, v)
		}
		r = append(r, v)
	}
	return r
}

// loadProject reads the project file name. An empty name selects the first
// default project file present, if any, and returns nil when there is none.
func loadProject(name string) (*project, error) {
	if name == "" {
		for _, v := range projectFiles {
			if _, err := os.Stat(v); err == nil {
				name = v
				break
			}
		}
		if name == "" {
			return nil, nil
		}
	}

	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	p, err := parseProject(b, name)
	if err != nil {
		return nil, err
	}

	p.dir = filepath.Dir(name)
	return p, nil
}

// parseProject decodes b as TOML or YAML depending on the extension of name.
func parseProject(b []byte, name string) (*project, error) {
	p := &project{}
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, p); err != nil {
			return nil, fmt.Errorf("%s: YAML parse error: %v", name, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(b), p); err != nil {
			return nil, fmt.Errorf("%s: TOML parse error: %v", name, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported project file format %q", name, ext)
	}
	if p.MinErrDist < 0 {
		return nil, fmt.Errorf("%s: min_err_dist must not be negative", name)
	}

	return p, nil
}
