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

// Package problem renders query parameter errors as RFC 9457 Problem Details.
//
// Decode failures ([*paramcodec.DecodeError], [*paramcodec.SetError]) and
// validation results ([FieldViolations]) become application/problem+json
// responses with an "errors" extension listing one entry per violation:
//
//	formatter := problem.New("https://api.example.com/problems")
//	values, err := set.DecodeAll(query)
//	if err != nil {
//	    formatter.Format(r.URL.Path, err).Write(w)
//	    return
//	}
package problem

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"rivaas.dev/paramcodec"
)

// ContentType is the media type of problem responses.
const ContentType = "application/problem+json; charset=utf-8"

// Formatter formats errors as RFC 9457 Problem Details.
type Formatter struct {
	// BaseURL is prepended to error codes to build the problem type URI.
	BaseURL string

	// ErrorIDGenerator generates IDs for error correlation.
	// If nil, a random ID is used.
	ErrorIDGenerator func() string

	// DisableErrorID disables the error_id extension.
	DisableErrorID bool
}

// New returns a formatter using baseURL for problem types.
func New(baseURL string) *Formatter {
	return &Formatter{BaseURL: baseURL}
}

// Detail is an RFC 9457 problem detail. Extensions are marshaled inline.
type Detail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"`
}

// MarshalJSON merges the extensions into the object. Extensions cannot
// replace the standard members.
func (d Detail) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   d.Type,
		"title":  d.Title,
		"status": d.Status,
	}
	if d.Detail != "" {
		m["detail"] = d.Detail
	}
	if d.Instance != "" {
		m["instance"] = d.Instance
	}
	for k, v := range d.Extensions {
		if _, reserved := m[k]; !reserved && k != "detail" && k != "instance" {
			m[k] = v
		}
	}

	return json.Marshal(m)
}

// FieldError is one entry of the "errors" extension.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response is a formatted problem response.
type Response struct {
	Status      int
	ContentType string
	Body        Detail
}

// Write writes the response to w.
func (r Response) Write(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", r.ContentType)
	w.WriteHeader(r.Status)

	return json.NewEncoder(w).Encode(r.Body)
}

// Format converts err into a problem response. instance is usually the
// request path.
//
// Errors exposing HTTPStatus() choose the status; anything else is 500.
// Errors exposing Code() choose the problem type and the "code" extension.
func (f *Formatter) Format(instance string, err error) Response {
	status := statusOf(err)
	d := Detail{
		Type:       f.typeOf(err),
		Title:      http.StatusText(status),
		Status:     status,
		Detail:     err.Error(),
		Instance:   instance,
		Extensions: make(map[string]any),
	}

	if !f.DisableErrorID {
		if f.ErrorIDGenerator != nil {
			d.Extensions["error_id"] = f.ErrorIDGenerator()
		} else {
			d.Extensions["error_id"] = generateErrorID()
		}
	}
	if fields := fieldErrors(err); len(fields) > 0 {
		d.Extensions["errors"] = fields
	}
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		d.Extensions["code"] = coded.Code()
	}

	return Response{Status: status, ContentType: ContentType, Body: d}
}

func statusOf(err error) int {
	var typed interface{ HTTPStatus() int }
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	return http.StatusInternalServerError
}

func (f *Formatter) typeOf(err error) string {
	var coded interface{ Code() string }
	if !errors.As(err, &coded) {
		return "about:blank"
	}
	if f.BaseURL != "" {
		return f.BaseURL + "/" + coded.Code()
	}

	return coded.Code()
}

// fieldErrors flattens the violations carried by err.
func fieldErrors(err error) []FieldError {
	var (
		setErr   *paramcodec.SetError
		fv       FieldViolations
		paramErr *paramcodec.ParamError
		decErr   *paramcodec.DecodeError
	)
	switch {
	case errors.As(err, &setErr):
		var out []FieldError
		for _, pe := range setErr.Errors {
			out = append(out, flatten(pe.Name, pe.Violations())...)
		}
		return out
	case errors.As(err, &fv):
		var out []FieldError
		for _, name := range fv.names() {
			out = append(out, flatten(name, fv[name])...)
		}
		return out
	case errors.As(err, &paramErr):
		return flatten(paramErr.Name, paramErr.Violations())
	case errors.As(err, &decErr):
		return flatten("", decErr.Violations)
	default:
		return nil
	}
}

func flatten(field string, violations paramcodec.Violations) []FieldError {
	out := make([]FieldError, 0, len(violations))
	for _, v := range violations {
		out = append(out, FieldError{Field: field, Code: v.Code, Message: v.Message})
	}

	return out
}

// FieldViolations is a validation result keyed by parameter name, as
// returned by [paramcodec.Set.ValidateAll]. A non-empty FieldViolations is an
// error.
type FieldViolations map[string]paramcodec.Violations

// Error returns a formatted error message.
func (fv FieldViolations) Error() string {
	names := fv.names()
	if len(names) == 1 {
		return fmt.Sprintf("parameter %q is invalid", names[0])
	}

	return fmt.Sprintf("%d parameters are invalid", len(names))
}

// HTTPStatus returns 400.
func (fv FieldViolations) HTTPStatus() int {
	return http.StatusBadRequest
}

// Code returns "validation_error".
func (fv FieldViolations) Code() string {
	return "validation_error"
}

// Err returns fv as an error, or nil when there are no violations.
func (fv FieldViolations) Err() error {
	if len(fv) == 0 {
		return nil
	}

	return fv
}

func (fv FieldViolations) names() []string {
	names := make([]string, 0, len(fv))
	for name := range fv {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// generateErrorID returns a random correlation ID, falling back to a
// timestamp if the random source fails.
func generateErrorID() string {
	b := make([]byte, 16) //nolint:makezero // crypto/rand.Read requires pre-allocated buffer
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("err-%d", time.Now().UnixNano())
	}

	return "err-" + hex.EncodeToString(b)
}
