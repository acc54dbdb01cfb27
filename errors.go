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
	"errors"
	"fmt"
	"strings"
)

// Construction errors. They are wrapped in a [ConfigError].
var (
	ErrMissingKind    = errors.New("missing type")
	ErrUnknownKind    = errors.New("unknown type")
	ErrMissingScheme  = errors.New("missing format")
	ErrUnknownScheme  = errors.New("unknown format")
	ErrInvalidBound   = errors.New("item count bound must be a non-negative integer")
	ErrBoundsOrder    = errors.New("max_items must not be less than min_items")
	ErrUnknownOption  = errors.New("unknown option")
	ErrOptionConflict = errors.New("option given under more than one name")
	ErrDefinition     = errors.New("invalid parameter definition")
)

// Per-call errors.
var (
	// ErrDecode is wrapped by every [DecodeError].
	ErrDecode = errors.New("decode failed")

	// ErrDelimiterCollision is wrapped by [DelimiterCollisionError].
	ErrDelimiterCollision = errors.New("list item contains the delimiter")

	ErrKindMismatch    = errors.New("value kind does not match codec kind")
	ErrNullValue       = errors.New("null value cannot be encoded")
	ErrNonFiniteFloat  = errors.New("NaN and infinite floats cannot be encoded")
	ErrMultiScheme     = errors.New("multi format has no single-string form")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrNilDestination  = errors.New("hydrate destination is nil")
)

// ConfigError reports an invalid construction option.
// Construction errors are fatal: the instance is never created.
//
// Use [errors.As] to inspect it:
//
//	var cfgErr *ConfigError
//	if errors.As(err, &cfgErr) {
//	    fmt.Println(cfgErr.Option)
//	}
type ConfigError struct {
	Option string // Option name as given (e.g., "type", "maxItems")
	Value  any    // Offending value, if any
	Err    error  // Underlying sentinel error
}

// Error returns a formatted error message.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("paramcodec: option %q (%v): %v", e.Option, e.Value, e.Err)
	}

	return fmt.Sprintf("paramcodec: option %q: %v", e.Option, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError.
func newConfigError(option string, value any, err error) error {
	return &ConfigError{Option: option, Value: value, Err: err}
}

// DecodeError is returned when a transport value cannot be decoded.
// It always carries exactly one violation.
type DecodeError struct {
	Kind       Kind       // Expected scalar kind
	Scheme     Scheme     // List scheme, or 0 for scalar codecs
	Index      int        // Index of the failing list item, or -1
	Input      string     // Offending text, or the actual type for type errors
	Violations Violations // Single-entry violation map
}

// Error returns a formatted error message.
func (e *DecodeError) Error() string {
	msg := ""
	if len(e.Violations) > 0 {
		msg = e.Violations[0].Message
	}
	if e.Scheme.Valid() {
		if e.Index >= 0 {
			return fmt.Sprintf("decode %s list of %s: item %d: %s", e.Scheme, e.Kind, e.Index, msg)
		}
		return fmt.Sprintf("decode %s list of %s: %s", e.Scheme, e.Kind, msg)
	}

	return fmt.Sprintf("decode %s: %s", e.Kind, msg)
}

// Unwrap returns [ErrDecode].
func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// HTTPStatus returns the HTTP status used by the problem package.
func (e *DecodeError) HTTPStatus() int {
	return 400 // Bad Request
}

// Code returns the code of the first violation.
func (e *DecodeError) Code() string {
	if len(e.Violations) == 0 {
		return "decode_error"
	}

	return e.Violations[0].Code
}

// Details returns structured error details.
func (e *DecodeError) Details() any {
	return e.Violations
}

// DelimiterCollisionError is returned when an encoded list item contains the
// scheme delimiter. The delimited schemes have no escaping, so joining such an
// item would silently change the list.
type DelimiterCollisionError struct {
	Index  int    // Index of the offending item
	Scheme Scheme // Scheme whose delimiter collided
	Item   string // Encoded item text
}

// Error returns a formatted error message.
func (e *DelimiterCollisionError) Error() string {
	d, _ := e.Scheme.Delimiter()
	return fmt.Sprintf("encode %s list: item %d %q contains the delimiter %q", e.Scheme, e.Index, e.Item, string(d))
}

// Unwrap returns [ErrDelimiterCollision].
func (e *DelimiterCollisionError) Unwrap() error {
	return ErrDelimiterCollision
}

// ParamError ties a decode failure to a parameter name.
type ParamError struct {
	Name string
	Err  error
}

// Error returns a formatted error message.
func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParamError) Unwrap() error {
	return e.Err
}

// Violations returns the violations of the underlying [DecodeError], if any.
func (e *ParamError) Violations() Violations {
	var decErr *DecodeError
	if errors.As(e.Err, &decErr) {
		return decErr.Violations
	}

	return nil
}

// SetError aggregates decode failures for several named parameters.
// It is returned by [Set.DecodeAll].
type SetError struct {
	Errors []*ParamError
}

// Error returns a formatted error message.
func (e *SetError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	names := make([]string, 0, len(e.Errors))
	for _, pe := range e.Errors {
		names = append(names, pe.Name)
	}

	return fmt.Sprintf("%d parameters failed to decode: %s", len(e.Errors), strings.Join(names, ", "))
}

// Unwrap returns all errors for errors.Is/As compatibility.
func (e *SetError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, pe := range e.Errors {
		errs = append(errs, pe)
	}

	return errs
}

// HTTPStatus returns the HTTP status used by the problem package.
func (e *SetError) HTTPStatus() int {
	return 400 // Bad Request
}

// Code returns the problem code.
func (e *SetError) Code() string {
	return "multiple_param_errors"
}

// Details returns structured error details.
// It returns a map from parameter name to violations.
func (e *SetError) Details() any {
	details := make(map[string]Violations, len(e.Errors))
	for _, pe := range e.Errors {
		details[pe.Name] = pe.Violations()
	}

	return details
}

// add appends a parameter error.
func (e *SetError) add(name string, err error) {
	e.Errors = append(e.Errors, &ParamError{Name: name, Err: err})
}

// errorOrNil returns nil if there are no errors.
func (e *SetError) errorOrNil() error {
	if len(e.Errors) == 0 {
		return nil
	}

	return e
}
