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
	"regexp"
	"strconv"
)

// floatPattern is the plain decimal grammar: optional sign, digits, and an
// optional fraction. Exponents, "inf" and "nan" are not part of it.
var floatPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// parseScalar is the acceptance grammar shared by the scalar decoder and the
// scalar validator. Both call it, so they cannot disagree.
func parseScalar(kind Kind, text string) (Value, bool) {
	switch kind {
	case KindBool:
		switch text {
		case "true":
			return BoolValue(true), true
		case "false":
			return BoolValue(false), true
		}
		return Value{}, false

	case KindInt:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, false
		}
		// Only the canonical spelling is accepted: no "+5", "007" or "-0".
		if strconv.FormatInt(i, 10) != text {
			return Value{}, false
		}
		return IntValue(i), true

	case KindFloat:
		if !floatPattern.MatchString(text) {
			return Value{}, false
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			// ErrRange: the literal overflows to ±Inf.
			return Value{}, false
		}
		return FloatValue(f), true

	case KindString:
		return StringValue(text), true

	default:
		return Value{}, false
	}
}

// formatScalar is the canonical encoding for each kind.
func formatScalar(v Value) string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return v.s
	}
}

// scalarCode returns the violation code reported when text is not a valid kind.
func scalarCode(kind Kind) string {
	switch kind {
	case KindBool:
		return CodeInvalidBool
	case KindInt:
		return CodeInvalidInt
	case KindFloat:
		return CodeInvalidFloat
	default:
		return CodeTypeInvalid
	}
}

// scalarMessage is the human message for a rejected query string value.
func scalarMessage(kind Kind) string {
	return fmt.Sprintf("Invalid query string parameter type: expecting %s.", kind)
}

// typeMessage is the human message for a transport value of the wrong shape.
func typeMessage(expected, actual string) string {
	return fmt.Sprintf("Invalid query string parameter type: expecting %s, not %s.", expected, actual)
}

// describeType names the shape of a transport value for type error messages.
func describeType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case []string, []any:
		return "array"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float32, float64:
		return "float"
	case map[string]any, map[string]string:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
