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

// ItemCodec encodes and decodes one scalar item.
// List codecs call it once per item. [*ScalarCodec] is the default implementation;
// a custom ItemCodec can be injected with [WithItem].
//
// Implementations must be safe for concurrent use. DecodeItem should return a
// [*DecodeError] so that the failure carries a violation.
type ItemCodec interface {
	EncodeItem(v Value) (string, error)
	DecodeItem(text string) (Value, error)
}

// ItemValidator decides whether one item string is acceptable.
// It must accept exactly the strings the matching [ItemCodec] decodes.
type ItemValidator interface {
	ValidateItem(text string) Violations
}

// itemError converts an item codec failure into a list-level [DecodeError].
func itemError(kind Kind, scheme Scheme, index int, text string, err error) error {
	if de, ok := err.(*DecodeError); ok {
		return &DecodeError{
			Kind:       kind,
			Scheme:     scheme,
			Index:      index,
			Input:      text,
			Violations: de.Violations,
		}
	}

	return &DecodeError{
		Kind:       kind,
		Scheme:     scheme,
		Index:      index,
		Input:      text,
		Violations: single(CodeTypeInvalid, err.Error()),
	}
}
