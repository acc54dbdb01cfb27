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

// Package openapi describes query parameters as OpenAPI parameter objects.
//
// [Describe] renders a [paramcodec.Param] as an OpenAPI 3 query parameter
// with the matching style and explode settings and a JSON Schema for the
// decoded value. [Parameter.Swagger] gives the Swagger 2 form with
// collectionFormat.
//
// [Compile] turns the schema into a [Checker] backed by
// github.com/santhosh-tekuri/jsonschema/v6, which validates decoded values:
//
//	param := set.Param("ids")
//	checker, err := openapi.Compile(openapi.Describe(param))
//	if err != nil {
//	    return err
//	}
//	decoded, err := param.Decode("1,2,3")
//	if err == nil {
//	    err = checker.Check(decoded)
//	}
package openapi

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"rivaas.dev/paramcodec"
)

// Parameter is an OpenAPI 3 parameter object for a query parameter.
type Parameter struct {
	// Name is the parameter name.
	Name string `json:"name" yaml:"name"`

	// In is always "query".
	In string `json:"in" yaml:"in"`

	// Style is the serialization style of list parameters: "form",
	// "spaceDelimited" or "pipeDelimited". Empty for scalars.
	Style string `json:"style,omitempty" yaml:"style,omitempty"`

	// Explode is true only for repeated parameters. Nil for scalars.
	Explode *bool `json:"explode,omitempty" yaml:"explode,omitempty"`

	// Delimiter is the x-delimiter extension. OpenAPI 3 has no style for
	// tab-separated values, so tsv lists are described as form with
	// x-delimiter "tab".
	Delimiter string `json:"x-delimiter,omitempty" yaml:"x-delimiter,omitempty"`

	// Schema describes the decoded value.
	Schema *Schema `json:"schema" yaml:"schema"`

	collectionFormat string
}

// Schema is the JSON Schema subset used for parameter values.
type Schema struct {
	Type     string  `json:"type" yaml:"type"`
	Format   string  `json:"format,omitempty" yaml:"format,omitempty"`
	Items    *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
}

// SwaggerParameter is the Swagger 2 form of a query parameter.
type SwaggerParameter struct {
	Name             string  `json:"name" yaml:"name"`
	In               string  `json:"in" yaml:"in"`
	Type             string  `json:"type" yaml:"type"`
	Format           string  `json:"format,omitempty" yaml:"format,omitempty"`
	Items            *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	CollectionFormat string  `json:"collectionFormat,omitempty" yaml:"collectionFormat,omitempty"`
	MinItems         *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems         *int    `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
}

// Describe renders p as an OpenAPI 3 query parameter.
func Describe(p *paramcodec.Param) Parameter {
	param := Parameter{
		Name:   p.Name(),
		In:     "query",
		Schema: kindSchema(p.Kind()),
	}
	if !p.IsList() {
		return param
	}

	explode := p.Scheme() == paramcodec.SchemeMulti
	param.Explode = &explode
	param.collectionFormat = p.Scheme().String()
	switch p.Scheme() {
	case paramcodec.SchemeSSV:
		param.Style = "spaceDelimited"
	case paramcodec.SchemePipes:
		param.Style = "pipeDelimited"
	case paramcodec.SchemeTSV:
		param.Style = "form"
		param.Delimiter = "tab"
	default:
		param.Style = "form"
	}

	list := &Schema{Type: "array", Items: param.Schema}
	if n := p.MinItems(); n > 0 {
		list.MinItems = &n
	}
	if n, ok := p.MaxItems(); ok {
		list.MaxItems = &n
	}
	param.Schema = list

	return param
}

// DescribeSet renders every param of s in name order.
func DescribeSet(s *paramcodec.Set) []Parameter {
	names := s.Names()
	out := make([]Parameter, 0, len(names))
	for _, name := range names {
		out = append(out, Describe(s.Param(name)))
	}

	return out
}

// Swagger returns the Swagger 2 form of the parameter.
func (p Parameter) Swagger() SwaggerParameter {
	if p.Schema == nil {
		return SwaggerParameter{Name: p.Name, In: p.In}
	}

	return SwaggerParameter{
		Name:             p.Name,
		In:               p.In,
		Type:             p.Schema.Type,
		Format:           p.Schema.Format,
		Items:            p.Schema.Items,
		CollectionFormat: p.collectionFormat,
		MinItems:         p.Schema.MinItems,
		MaxItems:         p.Schema.MaxItems,
	}
}

// JSON returns the parameter as indented JSON.
func (p Parameter) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parameter to JSON: %w", err)
	}

	return data, nil
}

// YAML returns the parameter as YAML.
func (p Parameter) YAML() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parameter to YAML: %w", err)
	}

	return data, nil
}

func kindSchema(kind paramcodec.Kind) *Schema {
	switch kind {
	case paramcodec.KindBool:
		return &Schema{Type: "boolean"}
	case paramcodec.KindInt:
		return &Schema{Type: "integer", Format: "int64"}
	case paramcodec.KindFloat:
		return &Schema{Type: "number", Format: "double"}
	default:
		return &Schema{Type: "string"}
	}
}
