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
)

// ScalarValidator decides whether a value is acceptable for one [Kind] without
// decoding it.
//
// Strings are checked against the same grammar as [ScalarCodec.Decode]; any
// other Go value is checked natively (a bool for [KindBool], any integer that
// fits int64 for [KindInt], and so on). nil always passes.
type ScalarValidator struct {
	kind   Kind
	item   ItemValidator
	events Events
	logger *slog.Logger
}

// NewScalarValidator returns a validator for kind.
// If a custom item codec is injected with [WithItem] or [WithItemValidator],
// string mode delegates to it.
func NewScalarValidator(kind Kind, opts ...Option) (*ScalarValidator, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	return &ScalarValidator{
		kind:   kind,
		item:   o.resolveItemValidator(&ScalarCodec{kind: kind, item: o.item, logger: discardLogger}),
		events: o.events,
		logger: o.logger,
	}, nil
}

// MustNewScalarValidator is like [NewScalarValidator] but panics on error.
func MustNewScalarValidator(kind Kind, opts ...Option) *ScalarValidator {
	v, err := NewScalarValidator(kind, opts...)
	if err != nil {
		panic(fmt.Sprintf("paramcodec.MustNewScalarValidator: %v", err))
	}

	return v
}

// Kind returns the validator kind.
func (v *ScalarValidator) Kind() Kind {
	return v.kind
}

// Validate checks value. nil and the null [Value] pass, a string is checked
// in string mode and anything else in native mode.
func (v *ScalarValidator) Validate(value any) Violations {
	var out Violations
	switch val := value.(type) {
	case nil:
	case string:
		out = v.validateString(val)
	case Value:
		if !val.IsNull() {
			out = ValidateNative(v.kind, val)
		}
	default:
		out = ValidateNative(v.kind, val)
	}
	v.finish(out)

	return out
}

// ValidateString checks s against the query string grammar.
func (v *ScalarValidator) ValidateString(s string) Violations {
	out := v.validateString(s)
	v.finish(out)

	return out
}

// ValidateNative checks an in-memory Go value. nil passes.
func (v *ScalarValidator) ValidateNative(value any) Violations {
	out := ValidateNative(v.kind, value)
	v.finish(out)

	return out
}

func (v *ScalarValidator) validateString(s string) Violations {
	return v.item.ValidateItem(s)
}

func (v *ScalarValidator) finish(out Violations) {
	if len(out) > 0 {
		v.logger.Debug("query parameter invalid",
			"kind", v.kind.String(),
			"code", out[0].Code,
		)
	}
	v.events.validated(Event{Kind: v.kind, Violations: out})
}

// ValidateScalar checks s against the query string grammar for kind.
// It returns no violations exactly when [DecodeScalar] succeeds.
func ValidateScalar(kind Kind, s string) Violations {
	if _, ok := parseScalar(kind, s); ok {
		return nil
	}

	return single(scalarCode(kind), scalarMessage(kind))
}

// ValidateNative checks that value is an in-memory Go value of kind.
// nil passes. A failure is one typeInvalid violation.
func ValidateNative(kind Kind, value any) Violations {
	if value == nil {
		return nil
	}
	val, err := ValueOf(value)
	if err == nil && (val.IsNull() || checkEncodable(kind, val) == nil) {
		return nil
	}

	return single(CodeTypeInvalid, nativeMessage(kind))
}

// nativeMessage is the human message for a native value of the wrong kind.
func nativeMessage(kind Kind) string {
	return fmt.Sprintf("Invalid type: expecting %s.", kind)
}
