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
	"strings"
)

// ListValidator decides whether a transport value is an acceptable list
// without decoding it.
//
// It splits exactly like [ListCodec], then checks the item count against the
// configured bounds and every item against the item validator. Any failure is
// reported as one typeInvalid violation whose message names the scheme, the
// kind and the bounds. nil always passes.
type ListValidator struct {
	kind     Kind
	scheme   Scheme
	minItems int
	maxItems int
	hasMax   bool
	item     ItemValidator
	message  string
	events   Events
	logger   *slog.Logger
}

// NewListValidator returns a list validator.
// Use [WithMinItems] and [WithMaxItems] to bound the item count.
//
// Example:
//
//	pair, err := paramcodec.NewListValidator(paramcodec.KindInt, paramcodec.SchemeCSV,
//	    paramcodec.WithMinItems(2),
//	    paramcodec.WithMaxItems(2),
//	)
func NewListValidator(kind Kind, scheme Scheme, opts ...Option) (*ListValidator, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := checkScheme(scheme); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	if err := o.validateBounds(); err != nil {
		return nil, err
	}

	v := &ListValidator{
		kind:     kind,
		scheme:   scheme,
		minItems: o.minItems,
		maxItems: o.maxItems,
		hasMax:   o.hasMax,
		item:     o.resolveItemValidator(&ScalarCodec{kind: kind, item: o.item, logger: discardLogger}),
		events:   o.events,
		logger:   o.logger,
	}
	v.message = listMessage(scheme, kind, v.minItems, v.maxItems, v.hasMax)

	return v, nil
}

// MustNewListValidator is like [NewListValidator] but panics on error.
func MustNewListValidator(kind Kind, scheme Scheme, opts ...Option) *ListValidator {
	v, err := NewListValidator(kind, scheme, opts...)
	if err != nil {
		panic(fmt.Sprintf("paramcodec.MustNewListValidator: %v", err))
	}

	return v
}

// Kind returns the item kind.
func (v *ListValidator) Kind() Kind {
	return v.kind
}

// Scheme returns the delimiter scheme.
func (v *ListValidator) Scheme() Scheme {
	return v.scheme
}

// MinItems returns the minimum item count.
func (v *ListValidator) MinItems() int {
	return v.minItems
}

// MaxItems returns the maximum item count and whether one is set.
func (v *ListValidator) MaxItems() (int, bool) {
	return v.maxItems, v.hasMax
}

// Validate checks a transport value of any shape.
func (v *ListValidator) Validate(wire any) Violations {
	if wire == nil {
		v.events.validated(Event{Kind: v.kind, Scheme: v.scheme, List: true})
		return nil
	}

	return v.validate(wire)
}

// ValidateString checks a single string transport value.
func (v *ListValidator) ValidateString(s string) Violations {
	return v.validate(s)
}

// ValidateValues checks an already split transport value.
func (v *ListValidator) ValidateValues(values []string) Violations {
	return v.validate(values)
}

func (v *ListValidator) validate(wire any) Violations {
	raw, _, _, ok := rawItems(v.scheme, wire)
	var out Violations
	if !ok || !v.accepts(raw) {
		out = single(CodeTypeInvalid, v.message)
		v.logger.Debug("query parameter invalid",
			"kind", v.kind.String(),
			"scheme", v.scheme.String(),
			"code", CodeTypeInvalid,
			"items", len(raw),
		)
	}
	v.events.validated(Event{Kind: v.kind, Scheme: v.scheme, List: true, Items: len(raw), Violations: out})

	return out
}

func (v *ListValidator) accepts(raw []string) bool {
	if len(raw) < v.minItems {
		return false
	}
	if v.hasMax && len(raw) > v.maxItems {
		return false
	}
	for _, text := range raw {
		if len(v.item.ValidateItem(text)) > 0 {
			return false
		}
	}

	return true
}

// listMessage builds the list violation message. Bound clauses are omitted
// when min is 0 or no max is set.
func listMessage(scheme Scheme, kind Kind, minItems, maxItems int, hasMax bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invalid query string parameter type: %s format, expecting list of %s", scheme, kind)
	if minItems > 0 {
		fmt.Fprintf(&b, ", at least %d elements", minItems)
	}
	if hasMax {
		fmt.Fprintf(&b, ", at most %d elements", maxItems)
	}
	b.WriteByte('.')

	return b.String()
}
