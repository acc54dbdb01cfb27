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

package paramcodec

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"dario.cat/mergo"
)

// Top-level keys of a definitions document.
const (
	docDefaults = "defaults"
	docParams   = "params"
)

// SetOption configures [NewSet].
type SetOption func(*setOptions)

type setOptions struct {
	paramOpts []Option
	cache     *Cache
	logger    *slog.Logger
}

// WithParamOptions applies opts to every param of the set.
// It is ignored when a cache is set with [WithCache].
func WithParamOptions(opts ...Option) SetOption {
	return func(o *setOptions) {
		o.paramOpts = append(o.paramOpts, opts...)
	}
}

// WithCache builds params through c, sharing codec instances between sets.
func WithCache(c *Cache) SetOption {
	return func(o *setOptions) {
		o.cache = c
	}
}

// WithSetLogger sets the logger used for construction diagnostics.
func WithSetLogger(logger *slog.Logger) SetOption {
	return func(o *setOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Set is an immutable collection of named params built from a definitions
// document. It is safe for concurrent use.
type Set struct {
	params map[string]*Param
	names  []string
}

// NewSet builds a set from a definitions document of the form
//
//	{
//	    "defaults": {"format": "csv"},
//	    "params": {
//	        "ids":  {"type": "int", "max_items": 50},
//	        "flag": {"type": "bool", "format": nil},
//	    },
//	}
//
// Defaults are merged into every param definition without overriding keys
// the definition sets. Any other top-level key is rejected.
// A definition opts out of a default by setting the key to nil.
func NewSet(doc map[string]any, opts ...SetOption) (*Set, error) {
	o := &setOptions{logger: discardLogger}
	for _, opt := range opts {
		opt(o)
	}

	for key := range doc {
		if key != docDefaults && key != docParams {
			return nil, newConfigError(key, nil, fmt.Errorf("%w: %w", ErrDefinition, ErrUnknownOption))
		}
	}
	defaults, err := section(doc, docDefaults)
	if err != nil {
		return nil, err
	}
	defs, err := section(doc, docParams)
	if err != nil {
		return nil, err
	}
	defaults = normalizeKeys(defaults)

	s := &Set{
		params: make(map[string]*Param, len(defs)),
		names:  slices.Sorted(maps.Keys(defs)),
	}
	for _, name := range s.names {
		def, ok := asMap(defs[name])
		if !ok {
			return nil, newConfigError(name, defs[name], fmt.Errorf("%w: definition must be a map", ErrDefinition))
		}
		merged := normalizeKeys(def)
		inherited := maps.Clone(defaults)
		for k, v := range merged {
			if v == nil {
				delete(inherited, k)
			}
		}
		if err = mergo.Merge(&merged, inherited, mergo.WithoutDereference); err != nil {
			return nil, fmt.Errorf("param %q: merge defaults: %w", name, err)
		}
		dropNil(merged)

		cfg, err := DecodeConfig(merged)
		if err != nil {
			return nil, &ParamError{Name: name, Err: err}
		}
		var p *Param
		if o.cache != nil {
			p, err = o.cache.param(name, cfg)
		} else {
			p, err = NewParam(name, cfg, o.paramOpts...)
		}
		if err != nil {
			return nil, &ParamError{Name: name, Err: err}
		}
		s.params[name] = p
	}
	o.logger.Debug("parameter set built", "params", len(s.names))

	return s, nil
}

// MustNewSet is like [NewSet] but panics on error.
func MustNewSet(doc map[string]any, opts ...SetOption) *Set {
	s, err := NewSet(doc, opts...)
	if err != nil {
		panic(fmt.Sprintf("paramcodec.MustNewSet: %v", err))
	}

	return s
}

// Param returns the param with the given name, or nil.
func (s *Set) Param(name string) *Param {
	return s.params[name]
}

// Names returns the param names in sorted order.
func (s *Set) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of params.
func (s *Set) Len() int {
	return len(s.names)
}

// ValidateAll validates the values of the set's params. Names absent from
// values are skipped and names unknown to the set are ignored. Only failing
// names appear in the result; nil means everything is valid.
func (s *Set) ValidateAll(values map[string]any) map[string]Violations {
	var out map[string]Violations
	for _, name := range s.names {
		wire, ok := values[name]
		if !ok {
			continue
		}
		if v := s.params[name].Validate(wire); len(v) > 0 {
			if out == nil {
				out = make(map[string]Violations)
			}
			out[name] = v
		}
	}

	return out
}

// DecodeAll decodes the values of the set's params to natives.
// Every param is attempted; failures are collected in a [*SetError] and no
// partial result is returned.
func (s *Set) DecodeAll(values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(values))
	var errs SetError
	for _, name := range s.names {
		wire, ok := values[name]
		if !ok {
			continue
		}
		v, err := s.params[name].Decode(wire)
		if err != nil {
			errs.add(name, err)
			continue
		}
		out[name] = v
	}
	if err := errs.errorOrNil(); err != nil {
		return nil, err
	}

	return out, nil
}

// section returns doc[key] as a map. A missing or nil section is empty.
func section(doc map[string]any, key string) (map[string]any, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return map[string]any{}, nil
	}
	m, ok := asMap(raw)
	if !ok {
		return nil, newConfigError(key, nil, fmt.Errorf("%w: %s must be a map, not %T", ErrDefinition, key, raw))
	}

	return m, nil
}

// asMap accepts the map shapes produced by the YAML and TOML decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// normalizeKeys returns a copy of m with aliases renamed to canonical keys.
// Keys are left alone when renaming would hide a conflict.
func normalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		name, ok := canonicalKeys[k]
		if !ok || name == k {
			out[k] = v
			continue
		}
		if _, clash := m[name]; clash {
			out[k] = v
			continue
		}
		out[name] = v
	}

	return out
}

// dropNil removes keys set to nil, which opt out of a default.
func dropNil(m map[string]any) {
	for k, v := range m {
		if v == nil {
			delete(m, k)
		}
	}
}
