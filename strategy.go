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
	"reflect"
)

// Strategy is the three-operation contract a hydration framework uses to move
// values between native Go data and query string transport values.
//
// Strategies are stateless and safe for concurrent use.
type Strategy interface {
	// Extract maps a native value to its transport value. nil maps to nil.
	Extract(native any) (any, error)

	// Hydrate decodes wire and stores the native result in *dst.
	// nil stores nil. On failure *dst is left untouched and the decoder's
	// [*DecodeError] is returned.
	Hydrate(wire any, dst *any) error

	// Merge decodes wire and unconditionally replaces *dst.
	// Scalars and flat lists have nothing to merge field by field.
	Merge(wire any, dst *any) error
}

// scalarStrategy adapts a ScalarCodec. Hydrated values are bool, int64,
// float64 or string.
type scalarStrategy struct {
	codec *ScalarCodec
}

func (s scalarStrategy) Extract(native any) (any, error) {
	v, err := ValueOf(native)
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return nil, nil
	}
	text, err := s.codec.Encode(v)
	if err != nil {
		return nil, err
	}

	return text, nil
}

func (s scalarStrategy) Hydrate(wire any, dst *any) error {
	if dst == nil {
		return ErrNilDestination
	}
	if wire == nil {
		*dst = nil
		return nil
	}
	text, ok := wire.(string)
	if !ok {
		return scalarTypeError(s.codec.kind, wire)
	}
	v, err := s.codec.Decode(text)
	if err != nil {
		return err
	}
	*dst = v.Any()

	return nil
}

func (s scalarStrategy) Merge(wire any, dst *any) error {
	return s.Hydrate(wire, dst)
}

// scalarTypeError reports a scalar transport value that is not a string.
func scalarTypeError(kind Kind, wire any) *DecodeError {
	actual := describeType(wire)

	return &DecodeError{
		Kind:       kind,
		Index:      -1,
		Input:      actual,
		Violations: single(CodeTypeInvalid, typeMessage("string", actual)),
	}
}

// listStrategy adapts a ListCodec. Hydrated values are []any of scalar natives.
type listStrategy struct {
	codec *ListCodec
}

func (s listStrategy) Extract(native any) (any, error) {
	items, isNil, err := listValues(native)
	if err != nil {
		return nil, err
	}
	if isNil {
		return nil, nil
	}
	if s.codec.scheme == SchemeMulti {
		values, err := s.codec.EncodeValues(items)
		if err != nil {
			return nil, err
		}
		return values, nil
	}
	text, err := s.codec.Encode(items)
	if err != nil {
		return nil, err
	}

	return text, nil
}

func (s listStrategy) Hydrate(wire any, dst *any) error {
	if dst == nil {
		return ErrNilDestination
	}
	if wire == nil {
		*dst = nil
		return nil
	}
	values, err := s.codec.DecodeAny(wire)
	if err != nil {
		return err
	}
	*dst = natives(values)

	return nil
}

func (s listStrategy) Merge(wire any, dst *any) error {
	return s.Hydrate(wire, dst)
}

// listValues converts a native slice or array to Values. isNil is true for
// nil and nil slices.
func listValues(native any) (items []Value, isNil bool, err error) {
	switch n := native.(type) {
	case nil:
		return nil, true, nil
	case []Value:
		return n, n == nil, nil
	}

	rv := reflect.ValueOf(native)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return nil, true, nil
		}
	case reflect.Array:
	default:
		return nil, false, fmt.Errorf("%w: %T is not a list", ErrUnsupportedType, native)
	}

	items = make([]Value, rv.Len())
	for i := range items {
		v, err := ValueOf(rv.Index(i).Interface())
		if err != nil {
			return nil, false, fmt.Errorf("list item %d: %w", i, err)
		}
		items[i] = v
	}

	return items, false, nil
}
