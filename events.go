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

// Op names the operation an [Event] describes.
type Op string

const (
	OpEncode   Op = "encode"
	OpDecode   Op = "decode"
	OpValidate Op = "validate"
)

// Event describes one completed codec or validator call.
type Event struct {
	Op         Op
	Kind       Kind
	Scheme     Scheme     // 0 for scalar codecs
	List       bool       // true for list codecs and validators
	Items      int        // number of list items seen (0 for scalars)
	Err        error      // encode/decode error, nil on success
	Violations Violations // validate result
}

// Failed reports whether the call was rejected.
func (e Event) Failed() bool {
	return e.Err != nil || len(e.Violations) > 0
}

// Events provides hooks for observability without coupling.
// Hooks run synchronously on the calling goroutine and must be safe for
// concurrent use. Nil hooks are skipped.
type Events struct {
	// Encoded is called after every Encode/EncodeValues/Extract.
	Encoded func(Event)

	// Decoded is called after every Decode/DecodeValues/DecodeAny/Hydrate.
	Decoded func(Event)

	// Validated is called after every Validate call on a validator.
	Validated func(Event)
}

func (e Events) encoded(ev Event) {
	if e.Encoded != nil {
		ev.Op = OpEncode
		e.Encoded(ev)
	}
}

func (e Events) decoded(ev Event) {
	if e.Decoded != nil {
		ev.Op = OpDecode
		e.Decoded(ev)
	}
}

func (e Events) validated(ev Event) {
	if e.Validated != nil {
		ev.Op = OpValidate
		e.Validated(ev)
	}
}
