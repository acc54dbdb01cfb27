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
	"math"
)

// Value is a decoded scalar: a bool, int64, float64 or string tagged with its [Kind].
//
// The zero Value is the explicit "no value" produced for absent input. It is
// distinct from false, 0, 0.0 and "".
//
// Values are comparable with ==.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// NullValue returns the "no value" Value. It is equal to Value{}.
func NullValue() Value {
	return Value{}
}

// BoolValue returns a [KindBool] Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// IntValue returns a [KindInt] Value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// FloatValue returns a [KindFloat] Value.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// StringValue returns a [KindString] Value.
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// Kind returns the kind of the value, or 0 for the null Value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the "no value" Value.
func (v Value) IsNull() bool {
	return v.kind == 0
}

// Bool returns the boolean payload. It returns false for other kinds.
func (v Value) Bool() bool {
	return v.b
}

// Int returns the integer payload. It returns 0 for other kinds.
func (v Value) Int() int64 {
	return v.i
}

// Float returns the float payload. It returns 0 for other kinds.
func (v Value) Float() float64 {
	return v.f
}

// Str returns the string payload. It returns "" for other kinds.
func (v Value) Str() string {
	return v.s
}

// Any returns the payload as a native Go value: bool, int64, float64, string,
// or nil for the null Value.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

// ValueOf converts a native Go value to a [Value].
//
// Supported inputs are nil, [Value], bool, every signed and unsigned integer
// type (unsigned values must fit in int64), float32, float64 and string.
// Anything else returns [ErrUnsupportedType].
func ValueOf(native any) (Value, error) {
	switch n := native.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return n, nil
	case bool:
		return BoolValue(n), nil
	case int:
		return IntValue(int64(n)), nil
	case int8:
		return IntValue(int64(n)), nil
	case int16:
		return IntValue(int64(n)), nil
	case int32:
		return IntValue(int64(n)), nil
	case int64:
		return IntValue(n), nil
	case uint:
		return uintValue(uint64(n))
	case uint8:
		return IntValue(int64(n)), nil
	case uint16:
		return IntValue(int64(n)), nil
	case uint32:
		return IntValue(int64(n)), nil
	case uint64:
		return uintValue(n)
	case float32:
		return FloatValue(float64(n)), nil
	case float64:
		return FloatValue(n), nil
	case string:
		return StringValue(n), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, native)
	}
}

// uintValue converts an unsigned integer, rejecting values above math.MaxInt64.
func uintValue(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedType, u)
	}

	return IntValue(int64(u)), nil
}

// natives converts decoded values to a slice of native Go values.
func natives(values []Value) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v.Any()
	}

	return out
}
