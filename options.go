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
	"log/slog"
)

// Option configures a codec or validator at construction time.
// Options that do not apply to the instance being built are ignored; for
// example item-count bounds only affect list validators.
type Option func(*options)

// options holds construction settings shared by every constructor.
type options struct {
	item          ItemCodec
	itemValidator ItemValidator

	minItems int
	maxItems int
	hasMax   bool

	events Events
	logger *slog.Logger
}

// discardLogger drops everything. It is the default logger.
var discardLogger = slog.New(slog.DiscardHandler)

// WithItem injects a custom per-item codec used instead of the scalar codec.
// If item also implements [ItemValidator], validators use it as well, so the
// codec and the validator keep accepting the same strings.
//
// Example:
//
//	ids, err := paramcodec.NewList(paramcodec.KindInt, paramcodec.SchemeCSV,
//	    paramcodec.WithItem(positiveIDs),
//	)
func WithItem(item ItemCodec) Option {
	return func(o *options) {
		o.item = item
	}
}

// WithItemValidator injects a custom per-item validator.
// It takes precedence over an [ItemValidator] provided through [WithItem].
func WithItemValidator(v ItemValidator) Option {
	return func(o *options) {
		o.itemValidator = v
	}
}

// WithMinItems sets the minimum number of list items accepted by a list validator.
// The default is 0.
func WithMinItems(n int) Option {
	return func(o *options) {
		o.minItems = n
	}
}

// WithMaxItems sets the maximum number of list items accepted by a list validator.
// By default there is no maximum.
func WithMaxItems(n int) Option {
	return func(o *options) {
		o.maxItems = n
		o.hasMax = true
	}
}

// WithEvents sets observability hooks.
//
// Example:
//
//	paramcodec.WithEvents(paramcodec.Events{
//	    Decoded: func(ev paramcodec.Event) {
//	        if ev.Failed() {
//	            log.Printf("bad %s parameter: %v", ev.Kind, ev.Err)
//	        }
//	    },
//	})
func WithEvents(events Events) Option {
	return func(o *options) {
		o.events = events
	}
}

// WithLogger sets the logger used for decode failure diagnostics.
// Failures are logged at debug level; successful calls are never logged.
// The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// applyOptions applies options to defaults.
func applyOptions(opts []Option) *options {
	o := &options{logger: discardLogger}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// validateBounds checks the item-count bounds.
func (o *options) validateBounds() error {
	if o.minItems < 0 {
		return newConfigError("min_items", o.minItems, ErrInvalidBound)
	}
	if o.hasMax {
		if o.maxItems < 0 {
			return newConfigError("max_items", o.maxItems, ErrInvalidBound)
		}
		if o.maxItems < o.minItems {
			return newConfigError("max_items", o.maxItems, ErrBoundsOrder)
		}
	}

	return nil
}

// resolveItemValidator picks the item validator: explicit, then the item codec
// if it validates, then fallback.
func (o *options) resolveItemValidator(fallback ItemValidator) ItemValidator {
	if o.itemValidator != nil {
		return o.itemValidator
	}
	if iv, ok := o.item.(ItemValidator); ok {
		return iv
	}

	return fallback
}

// checkKind validates the kind option.
func checkKind(kind Kind) error {
	if kind == 0 {
		return newConfigError("type", nil, ErrMissingKind)
	}
	if !kind.Valid() {
		return newConfigError("type", int(kind), ErrUnknownKind)
	}

	return nil
}

// checkScheme validates the scheme option of list variants.
func checkScheme(scheme Scheme) error {
	if scheme == 0 {
		return newConfigError("format", nil, ErrMissingScheme)
	}
	if !scheme.Valid() {
		return newConfigError("format", int(scheme), ErrUnknownScheme)
	}

	return nil
}
