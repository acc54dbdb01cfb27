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
	"bytes"
	"encoding/json"
	"fmt"
)

// Violation codes produced by the built-in codecs and validators.
const (
	// CodeInvalidBool is reported for a string that is not "true" or "false".
	CodeInvalidBool = "invalidBool"

	// CodeInvalidInt is reported for a string that is not a canonical int64.
	CodeInvalidInt = "invalidInt"

	// CodeInvalidFloat is reported for a string that is not a plain decimal number.
	CodeInvalidFloat = "invalidFloat"

	// CodeTypeInvalid is reported by native-value validation and by list validation.
	CodeTypeInvalid = "typeInvalid"
)

// Violation is a single machine-readable code with a human-readable message.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Violations is an ordered mapping from violation code to message.
// An empty Violations means the value is valid.
//
// Violations marshals to a JSON object ({"code": "message"}) that keeps
// insertion order.
type Violations []Violation

// Empty reports whether there are no violations.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// Has reports whether a violation with the given code is present.
func (v Violations) Has(code string) bool {
	for _, item := range v {
		if item.Code == code {
			return true
		}
	}

	return false
}

// Message returns the message for code, or "" if the code is absent.
func (v Violations) Message(code string) string {
	for _, item := range v {
		if item.Code == code {
			return item.Message
		}
	}

	return ""
}

// Codes returns the violation codes in order.
func (v Violations) Codes() []string {
	codes := make([]string, 0, len(v))
	for _, item := range v {
		codes = append(codes, item.Code)
	}

	return codes
}

// Map returns the violations as a plain {code: message} map.
// It returns nil when there are no violations.
func (v Violations) Map() map[string]string {
	if len(v) == 0 {
		return nil
	}
	m := make(map[string]string, len(v))
	for _, item := range v {
		m[item.Code] = item.Message
	}

	return m
}

// With returns a copy of v with the violation added, replacing the message of
// an existing entry with the same code.
func (v Violations) With(code, message string) Violations {
	out := make(Violations, 0, len(v)+1)
	replaced := false
	for _, item := range v {
		if item.Code == code {
			item.Message = message
			replaced = true
		}
		out = append(out, item)
	}
	if !replaced {
		out = append(out, Violation{Code: code, Message: message})
	}

	return out
}

// MarshalJSON renders the violations as an ordered JSON object.
func (v Violations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item.Code)
		if err != nil {
			return nil, err
		}
		msg, err := json.Marshal(item.Message)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msg)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON parses a {"code": "message"} object, keeping key order.
func (v *Violations) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*v = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("violations: expected object, got %v", tok)
	}

	out := Violations{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("violations: expected string key, got %v", keyTok)
		}
		var msg string
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("violations: code %q: %w", key, err)
		}
		out = out.With(key, msg)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*v = out

	return nil
}

// single returns a one-entry Violations.
func single(code, message string) Violations {
	return Violations{{Code: code, Message: message}}
}
