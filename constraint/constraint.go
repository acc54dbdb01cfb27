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

// Package constraint adds value constraints to query parameter items.
//
// An [Item] decodes with the built-in grammar of its kind and then checks the
// decoded value with a github.com/go-playground/validator/v10 tag. It
// implements [paramcodec.ItemCodec] and [paramcodec.ItemValidator], so the
// codec and the validator it is injected into keep agreeing:
//
//	positive := constraint.MustNew(paramcodec.KindInt, "gt=0")
//	ids := paramcodec.MustNewList(paramcodec.KindInt, paramcodec.SchemeCSV,
//	    paramcodec.WithItem(positive),
//	)
//	_, err := ids.Decode("1,0") // item 1 fails the constraint
package constraint

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"rivaas.dev/paramcodec"
)

// Code is the violation code reported when a value fails its constraint.
const Code = "constraint"

var (
	// ErrEmptyTag is returned by [New] for an empty tag.
	ErrEmptyTag = errors.New("constraint: empty tag")

	// ErrInvalidTag is returned by [New] for a tag the validator cannot run
	// against the kind.
	ErrInvalidTag = errors.New("constraint: invalid tag")

	// ErrConstraint is returned by EncodeItem for a value that fails the constraint.
	ErrConstraint = errors.New("constraint: value fails constraint")
)

// Option configures an [Item].
type Option func(*config)

type config struct {
	validate   *validator.Validate
	customTags []customTag
}

type customTag struct {
	name string
	fn   validator.Func
}

// WithValidator uses v instead of a new validator instance.
func WithValidator(v *validator.Validate) Option {
	return func(c *config) {
		c.validate = v
	}
}

// WithCustomTag registers a custom validation function under name.
func WithCustomTag(name string, fn validator.Func) Option {
	return func(c *config) {
		c.customTags = append(c.customTags, customTag{name: name, fn: fn})
	}
}

// Item is a scalar item strategy with a validator tag constraint.
// It is safe for concurrent use.
type Item struct {
	kind     paramcodec.Kind
	tag      string
	message  string
	validate *validator.Validate
}

// New returns an item of kind constrained by tag, for example "gt=0" or
// "oneof=asc desc".
func New(kind paramcodec.Kind, tag string, opts ...Option) (*Item, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("constraint: %w", paramcodec.ErrUnknownKind)
	}
	if tag == "" {
		return nil, ErrEmptyTag
	}
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.validate == nil {
		cfg.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	for _, ct := range cfg.customTags {
		if err := cfg.validate.RegisterValidation(ct.name, ct.fn); err != nil {
			return nil, fmt.Errorf("register custom tag %q: %w", ct.name, err)
		}
	}

	it := &Item{
		kind:     kind,
		tag:      tag,
		message:  fmt.Sprintf("Invalid query string parameter value: failed '%s' constraint.", tag),
		validate: cfg.validate,
	}
	if err := it.probe(); err != nil {
		return nil, err
	}

	return it, nil
}

// MustNew is like [New] but panics on error.
func MustNew(kind paramcodec.Kind, tag string, opts ...Option) *Item {
	it, err := New(kind, tag, opts...)
	if err != nil {
		panic(fmt.Sprintf("constraint.MustNew: %v", err))
	}

	return it
}

// Kind returns the item kind.
func (it *Item) Kind() paramcodec.Kind {
	return it.kind
}

// Tag returns the validator tag.
func (it *Item) Tag() string {
	return it.tag
}

// EncodeItem implements [paramcodec.ItemCodec]. Values failing the
// constraint are not encoded.
func (it *Item) EncodeItem(v paramcodec.Value) (string, error) {
	text, err := paramcodec.EncodeScalar(it.kind, v)
	if err != nil {
		return "", err
	}
	if !it.satisfied(v) {
		return "", fmt.Errorf("%w: %q fails '%s'", ErrConstraint, text, it.tag)
	}

	return text, nil
}

// DecodeItem implements [paramcodec.ItemCodec].
func (it *Item) DecodeItem(text string) (paramcodec.Value, error) {
	v, err := paramcodec.DecodeScalar(it.kind, text)
	if err != nil {
		return paramcodec.Value{}, err
	}
	if !it.satisfied(v) {
		return paramcodec.Value{}, &paramcodec.DecodeError{
			Kind:       it.kind,
			Index:      -1,
			Input:      text,
			Violations: paramcodec.Violations{{Code: Code, Message: it.message}},
		}
	}

	return v, nil
}

// ValidateItem implements [paramcodec.ItemValidator].
func (it *Item) ValidateItem(text string) paramcodec.Violations {
	if _, err := it.DecodeItem(text); err != nil {
		var decErr *paramcodec.DecodeError
		if errors.As(err, &decErr) {
			return decErr.Violations
		}
		return paramcodec.Violations{{Code: paramcodec.CodeTypeInvalid, Message: err.Error()}}
	}

	return nil
}

func (it *Item) satisfied(v paramcodec.Value) bool {
	return it.validate.Var(v.Any(), it.tag) == nil
}

// probe runs the tag once against the zero value of the kind. The validator
// panics on unknown tags and on tags that do not apply to the type.
func (it *Item) probe() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w %q for %s: %v", ErrInvalidTag, it.tag, it.kind, r)
		}
	}()
	_ = it.validate.Var(reflect.Zero(zeroType(it.kind)).Interface(), it.tag)

	return nil
}

func zeroType(kind paramcodec.Kind) reflect.Type {
	switch kind {
	case paramcodec.KindBool:
		return reflect.TypeFor[bool]()
	case paramcodec.KindInt:
		return reflect.TypeFor[int64]()
	case paramcodec.KindFloat:
		return reflect.TypeFor[float64]()
	default:
		return reflect.TypeFor[string]()
	}
}
