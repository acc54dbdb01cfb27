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
	"math"
)

// ScalarCodec encodes and decodes a single query string value of one [Kind].
//
// A ScalarCodec is immutable and safe for concurrent use.
// It implements [ItemCodec] and [ItemValidator], so it is also the default
// per-item strategy of list codecs.
type ScalarCodec struct {
	kind   Kind
	item   ItemCodec
	events Events
	logger *slog.Logger
}

// NewScalar returns a scalar codec for kind.
// [WithItem] replaces the built-in grammar with a custom item codec.
//
// Example:
//
//	limit, err := paramcodec.NewScalar(paramcodec.KindInt)
//	if err != nil {
//	    return err
//	}
//	v, err := limit.Decode("25")
func NewScalar(kind Kind, opts ...Option) (*ScalarCodec, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	return &ScalarCodec{
		kind:   kind,
		item:   o.item,
		events: o.events,
		logger: o.logger,
	}, nil
}

// MustNewScalar is like [NewScalar] but panics on error.
// Use it for package-level codecs initialized at program start.
func MustNewScalar(kind Kind, opts ...Option) *ScalarCodec {
	c, err := NewScalar(kind, opts...)
	if err != nil {
		panic(fmt.Sprintf("paramcodec.MustNewScalar: %v", err))
	}

	return c
}

// Kind returns the codec kind.
func (c *ScalarCodec) Kind() Kind {
	return c.kind
}

// Encode returns the canonical query string form of v.
// It fails with [ErrNullValue] for the null Value, [ErrKindMismatch] if v is
// of another kind and [ErrNonFiniteFloat] for NaN or infinite floats.
func (c *ScalarCodec) Encode(v Value) (string, error) {
	s, err := c.EncodeItem(v)
	c.events.encoded(Event{Kind: c.kind, Err: err})

	return s, err
}

// Decode parses text. On failure it returns a [*DecodeError] carrying one
// violation with the kind-specific code.
func (c *ScalarCodec) Decode(text string) (Value, error) {
	v, err := c.DecodeItem(text)
	if err != nil {
		c.logger.Debug("query parameter rejected",
			"kind", c.kind.String(),
			"code", errorCode(err),
		)
	}
	c.events.decoded(Event{Kind: c.kind, Err: err})

	return v, err
}

// EncodeItem implements [ItemCodec]. It does not emit events.
func (c *ScalarCodec) EncodeItem(v Value) (string, error) {
	if c.item != nil {
		if err := checkEncodable(c.kind, v); err != nil {
			return "", err
		}
		return c.item.EncodeItem(v)
	}

	return encodeScalar(c.kind, v)
}

// DecodeItem implements [ItemCodec]. It does not emit events.
func (c *ScalarCodec) DecodeItem(text string) (Value, error) {
	if c.item != nil {
		return c.item.DecodeItem(text)
	}

	return decodeScalar(c.kind, text)
}

// ValidateItem implements [ItemValidator]. It accepts exactly the strings
// DecodeItem accepts.
func (c *ScalarCodec) ValidateItem(text string) Violations {
	if c.item != nil {
		if iv, ok := c.item.(ItemValidator); ok {
			return iv.ValidateItem(text)
		}
		if _, err := c.item.DecodeItem(text); err != nil {
			return violationsOf(err)
		}
		return nil
	}

	return ValidateScalar(c.kind, text)
}

// Strategy returns the extract/hydrate/merge adapter for c.
func (c *ScalarCodec) Strategy() Strategy {
	return scalarStrategy{codec: c}
}

// EncodeScalar encodes v with the built-in grammar for kind.
func EncodeScalar(kind Kind, v Value) (string, error) {
	if err := checkKind(kind); err != nil {
		return "", err
	}

	return encodeScalar(kind, v)
}

// DecodeScalar decodes text with the built-in grammar for kind.
func DecodeScalar(kind Kind, text string) (Value, error) {
	if err := checkKind(kind); err != nil {
		return Value{}, err
	}

	return decodeScalar(kind, text)
}

func encodeScalar(kind Kind, v Value) (string, error) {
	if err := checkEncodable(kind, v); err != nil {
		return "", err
	}

	return formatScalar(v), nil
}

// checkEncodable rejects values that have no query string form for kind.
func checkEncodable(kind Kind, v Value) error {
	if v.IsNull() {
		return ErrNullValue
	}
	if v.kind != kind {
		return fmt.Errorf("%w: expecting %s, got %s", ErrKindMismatch, kind, v.kind)
	}
	if kind == KindFloat && (math.IsNaN(v.f) || math.IsInf(v.f, 0)) {
		return ErrNonFiniteFloat
	}

	return nil
}

func decodeScalar(kind Kind, text string) (Value, error) {
	v, ok := parseScalar(kind, text)
	if !ok {
		return Value{}, &DecodeError{
			Kind:       kind,
			Index:      -1,
			Input:      text,
			Violations: single(scalarCode(kind), scalarMessage(kind)),
		}
	}

	return v, nil
}

// violationsOf returns the violations carried by err. Errors that are not a
// [*DecodeError] become a single typeInvalid violation.
func violationsOf(err error) Violations {
	if de, ok := err.(*DecodeError); ok {
		return de.Violations
	}

	return single(CodeTypeInvalid, err.Error())
}

// errorCode returns the violation code of err for log attributes.
func errorCode(err error) string {
	if de, ok := err.(*DecodeError); ok {
		return de.Code()
	}

	return "error"
}
