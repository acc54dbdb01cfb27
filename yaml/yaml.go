// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package yaml loads parameter definitions from YAML documents.
//
// This package extends rivaas.dev/paramcodec with YAML support,
// using github.com/goccy/go-yaml for parsing.
//
// Example:
//
//	defaults:
//	  format: csv
//	params:
//	  ids:
//	    type: int
//	    max_items: 50
//	  verbose:
//	    type: bool
//	    format: ~
//
//	set, err := yaml.Load(body)
//	if err != nil {
//	    // handle error
//	}
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"rivaas.dev/paramcodec"
)

// document is the top level of a definitions file.
// Unknown top-level keys are rejected.
type document struct {
	Defaults map[string]any `yaml:"defaults"`
	Params   map[string]any `yaml:"params"`
}

// Load parses a YAML definitions document and builds a set.
//
// Example:
//
//	set, err := yaml.Load(body, paramcodec.WithSetLogger(logger))
func Load(body []byte, opts ...paramcodec.SetOption) (*paramcodec.Set, error) {
	return LoadReader(bytes.NewReader(body), opts...)
}

// LoadReader parses a YAML definitions document from r and builds a set.
func LoadReader(r io.Reader, opts ...paramcodec.SetOption) (*paramcodec.Set, error) {
	var doc document
	decoder := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: yaml: %w", paramcodec.ErrDefinition, err)
	}

	return paramcodec.NewSet(map[string]any{
		"defaults": doc.Defaults,
		"params":   doc.Params,
	}, opts...)
}
