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

package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrNoSchema is returned by [Compile] for a parameter without a schema.
var ErrNoSchema = errors.New("parameter has no schema")

// Checker validates decoded parameter values against the parameter schema.
// It is safe for concurrent use.
type Checker struct {
	name   string
	schema *jsonschema.Schema
}

// Compile compiles the schema of p.
func Compile(p Parameter) (*Checker, error) {
	if p.Schema == nil {
		return nil, fmt.Errorf("parameter %q: %w", p.Name, ErrNoSchema)
	}
	raw, err := json.Marshal(p.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid schema JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	url := "param-" + p.Name + ".json"
	if err = compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Checker{name: p.Name, schema: schema}, nil
}

// Check validates a decoded value: bool, int64, float64, string, or a []any
// of those, as produced by [paramcodec.Param.Decode]. nil always passes.
func (c *Checker) Check(decoded any) error {
	if decoded == nil {
		return nil
	}
	raw, err := json.Marshal(decoded)
	if err != nil {
		return fmt.Errorf("parameter %q: failed to marshal value: %w", c.name, err)
	}
	data, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parameter %q: failed to unmarshal value: %w", c.name, err)
	}
	if err = c.schema.Validate(data); err != nil {
		return fmt.Errorf("parameter %q: %w", c.name, err)
	}

	return nil
}
