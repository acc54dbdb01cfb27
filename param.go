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
)

// Param is a named query parameter: a codec and the validator that agrees
// with it, built from one [Config].
//
// For list parameters Decode also enforces the item-count bounds, so Decode
// succeeds exactly when Validate reports no violations.
type Param struct {
	name string
	cfg  Config
	*compiled
}

// compiled holds the instances built for one config. It is shared between
// params with the same config through a [Cache].
type compiled struct {
	scalar          *ScalarCodec
	scalarValidator *ScalarValidator
	list            *ListCodec
	listValidator   *ListValidator
}

// NewParam builds a parameter from cfg. The same options are applied to the
// codec and the validator.
func NewParam(name string, cfg Config, opts ...Option) (*Param, error) {
	if name == "" {
		return nil, newConfigError("name", nil, fmt.Errorf("%w: empty parameter name", ErrDefinition))
	}
	c, err := compile(cfg, opts)
	if err != nil {
		return nil, err
	}

	return &Param{name: name, cfg: cfg, compiled: c}, nil
}

func compile(cfg Config, opts []Option) (*compiled, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		c   compiled
		err error
	)
	if cfg.IsList() {
		if c.list, err = cfg.List(opts...); err != nil {
			return nil, err
		}
		if c.listValidator, err = cfg.ListValidator(opts...); err != nil {
			return nil, err
		}
		return &c, nil
	}
	if c.scalar, err = cfg.Scalar(opts...); err != nil {
		return nil, err
	}
	if c.scalarValidator, err = cfg.ScalarValidator(opts...); err != nil {
		return nil, err
	}

	return &c, nil
}

// Name returns the parameter name.
func (p *Param) Name() string {
	return p.name
}

// Config returns the parameter definition.
func (p *Param) Config() Config {
	return p.cfg
}

// IsList reports whether the parameter is a list.
func (p *Param) IsList() bool {
	return p.cfg.IsList()
}

// Kind returns the scalar or item kind.
func (p *Param) Kind() Kind {
	return p.cfg.Kind
}

// Scheme returns the list scheme, or 0 for scalars.
func (p *Param) Scheme() Scheme {
	return p.cfg.Scheme
}

// MinItems returns the minimum item count.
func (p *Param) MinItems() int {
	return p.cfg.MinItems
}

// MaxItems returns the maximum item count and whether one is set.
func (p *Param) MaxItems() (int, bool) {
	return p.cfg.MaxItems, p.cfg.HasMax
}

// Strategy returns the extract/hydrate/merge adapter of the codec.
// It does not enforce item-count bounds.
func (p *Param) Strategy() Strategy {
	if p.list != nil {
		return p.list.Strategy()
	}

	return p.scalar.Strategy()
}

// Validate checks a transport value. Scalar transport values are strings;
// any other non-nil value is a type violation, as in Decode.
func (p *Param) Validate(wire any) Violations {
	if p.listValidator != nil {
		return p.listValidator.Validate(wire)
	}
	if _, isString := wire.(string); wire != nil && !isString {
		return scalarTypeError(p.cfg.Kind, wire).Violations
	}

	return p.scalarValidator.Validate(wire)
}

// Decode decodes a transport value to natives: bool, int64, float64 or
// string for scalars and []any for lists. nil decodes to nil.
func (p *Param) Decode(wire any) (any, error) {
	var out any
	if err := p.Strategy().Hydrate(wire, &out); err != nil {
		return nil, err
	}
	if items, ok := out.([]any); ok && !p.withinBounds(len(items)) {
		return nil, &DecodeError{
			Kind:       p.cfg.Kind,
			Scheme:     p.cfg.Scheme,
			Index:      -1,
			Input:      fmt.Sprintf("%d items", len(items)),
			Violations: single(CodeTypeInvalid, p.listValidator.message),
		}
	}

	return out, nil
}

// Extract encodes a native value to its transport value.
func (p *Param) Extract(native any) (any, error) {
	return p.Strategy().Extract(native)
}

func (p *Param) withinBounds(n int) bool {
	if n < p.cfg.MinItems {
		return false
	}

	return !p.cfg.HasMax || n <= p.cfg.MaxItems
}
