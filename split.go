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
	"strings"
)

// splitText splits a delimited list. The empty string is the empty list,
// not a list holding one empty item.
func splitText(text string, delim byte) []string {
	if text == "" {
		return []string{}
	}

	return strings.Split(text, string(delim))
}

// rawItems turns a transport value into item strings for scheme.
// Delimited schemes take a string; multi takes []string or a []any holding
// only strings. On a shape mismatch ok is false and expected/actual name the
// wanted and the received shapes for the type error message.
func rawItems(scheme Scheme, wire any) (items []string, expected, actual string, ok bool) {
	delim, delimited := scheme.Delimiter()
	if delimited {
		s, isString := wire.(string)
		if !isString {
			return nil, "string", describeType(wire), false
		}
		return splitText(s, delim), "", "", true
	}

	switch w := wire.(type) {
	case []string:
		return w, "", "", true
	case []any:
		out := make([]string, len(w))
		for i, item := range w {
			s, isString := item.(string)
			if !isString {
				return nil, "array of strings", "array containing " + describeType(item), false
			}
			out[i] = s
		}
		return out, "", "", true
	default:
		return nil, "array", describeType(wire), false
	}
}
