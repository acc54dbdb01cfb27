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

// Scheme defines how the items of a list are carried in a transport field.
// The zero value is not a valid scheme; scalar codecs report it as "none".
type Scheme uint8

const (
	// SchemeCSV joins items with a comma: ?ids=1,2,3
	SchemeCSV Scheme = iota + 1

	// SchemeSSV joins items with a single space: ?ids=1%202%203
	SchemeSSV

	// SchemeTSV joins items with a horizontal tab.
	SchemeTSV

	// SchemePipes joins items with a vertical bar: ?ids=1|2|3
	SchemePipes

	// SchemeMulti carries items as repeated values: ?ids=1&ids=2&ids=3
	// There is no join or split step.
	SchemeMulti
)

// String returns the configuration name of the scheme.
func (s Scheme) String() string {
	switch s {
	case SchemeCSV:
		return "csv"
	case SchemeSSV:
		return "ssv"
	case SchemeTSV:
		return "tsv"
	case SchemePipes:
		return "pipes"
	case SchemeMulti:
		return "multi"
	default:
		return "none"
	}
}

// Valid reports whether s is one of the five defined schemes.
func (s Scheme) Valid() bool {
	return s >= SchemeCSV && s <= SchemeMulti
}

// Delimiter returns the byte that separates items and whether the scheme has one.
// [SchemeMulti] has no delimiter.
func (s Scheme) Delimiter() (byte, bool) {
	switch s {
	case SchemeCSV:
		return ',', true
	case SchemeSSV:
		return ' ', true
	case SchemeTSV:
		return '\t', true
	case SchemePipes:
		return '|', true
	default:
		return 0, false
	}
}

// ParseScheme converts a scheme name (csv, ssv, tsv, pipes, multi) to a [Scheme].
// Matching is case-insensitive.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return SchemeCSV, nil
	case "ssv":
		return SchemeSSV, nil
	case "tsv":
		return SchemeTSV, nil
	case "pipes":
		return SchemePipes, nil
	case "multi":
		return SchemeMulti, nil
	case "":
		return 0, ErrMissingScheme
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (s Scheme) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, s)
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed

	return nil
}
