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
	"strings"
)

// Kind identifies one of the scalar types a parameter can carry.
// The zero value is not a valid kind.
type Kind uint8

const (
	// KindBool is a boolean encoded as the literals "true" and "false".
	KindBool Kind = iota + 1

	// KindInt is a signed 64-bit integer in canonical decimal form.
	KindInt

	// KindFloat is a 64-bit float in plain decimal notation.
	KindFloat

	// KindString is an arbitrary string, passed through unchanged.
	KindString
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the four defined kinds.
func (k Kind) Valid() bool {
	return k >= KindBool && k <= KindString
}

// ParseKind converts a kind name to a [Kind].
// It accepts the canonical names (bool, int, float, string) and the aliases
// boolean, integer, double and number. Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bool", "boolean":
		return KindBool, nil
	case "int", "integer":
		return KindInt, nil
	case "float", "double", "number":
		return KindFloat, nil
	case "string":
		return KindString, nil
	case "":
		return 0, ErrMissingKind
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed

	return nil
}
