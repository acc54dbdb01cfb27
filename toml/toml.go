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

// Package toml loads parameter definitions from TOML documents.
//
// This package extends rivaas.dev/paramcodec with TOML support,
// using github.com/BurntSushi/toml for parsing.
//
// Example:
//
//	[defaults]
//	format = "csv"
//
//	[params.ids]
//	type = "int"
//	max_items = 50
//
//	set, err := toml.Load(body)
//	if err != nil {
//	    // handle error
//	}
//
// TOML has no null, so a param cannot opt out of a default format. Put list
// defaults on the list params themselves when the set mixes scalars and lists.
package toml

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"rivaas.dev/paramcodec"
)

// Metadata holds information about the decoded keys.
type Metadata = toml.MetaData

// document is the top level of a definitions file.
type document struct {
	Defaults map[string]any `toml:"defaults"`
	Params   map[string]any `toml:"params"`
}

// Load parses a TOML definitions document and builds a set.
// Unknown top-level keys are rejected.
func Load(body []byte, opts ...paramcodec.SetOption) (*paramcodec.Set, error) {
	set, _, err := LoadWithMetadata(body, opts...)
	return set, err
}

// LoadWithMetadata is like [Load] and also returns the decode metadata.
func LoadWithMetadata(body []byte, opts ...paramcodec.SetOption) (*paramcodec.Set, Metadata, error) {
	var doc document
	meta, err := toml.Decode(string(body), &doc)
	if err != nil {
		return nil, meta, fmt.Errorf("%w: toml: %w", paramcodec.ErrDefinition, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, meta, fmt.Errorf("%w: toml: unknown keys %s", paramcodec.ErrDefinition, strings.Join(keys, ", "))
	}

	set, err := paramcodec.NewSet(map[string]any{
		"defaults": doc.Defaults,
		"params":   doc.Params,
	}, opts...)

	return set, meta, err
}

// LoadReader reads a TOML definitions document from r and builds a set.
func LoadReader(r io.Reader, opts ...paramcodec.SetOption) (*paramcodec.Set, error) {
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}

	return Load(buf.Bytes(), opts...)
}
