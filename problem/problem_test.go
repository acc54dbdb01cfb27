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

//go:build !integration

package problem

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/paramcodec"
)

func fixedID() string { return "err-test" }

func TestFormat_DecodeError(t *testing.T) {
	t.Parallel()

	_, err := paramcodec.MustNewList(paramcodec.KindInt, paramcodec.SchemeCSV).Decode("1,x")
	require.Error(t, err)

	f := &Formatter{BaseURL: "https://api.example.com/problems", ErrorIDGenerator: fixedID}
	resp := f.Format("/items", err)

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, ContentType, resp.ContentType)
	assert.Equal(t, "https://api.example.com/problems/invalidInt", resp.Body.Type)
	assert.Equal(t, "Bad Request", resp.Body.Title)
	assert.Equal(t, "/items", resp.Body.Instance)
	assert.Equal(t, "err-test", resp.Body.Extensions["error_id"])
	assert.Equal(t, "invalidInt", resp.Body.Extensions["code"])
	assert.Equal(t, []FieldError{{
		Code:    paramcodec.CodeInvalidInt,
		Message: "Invalid query string parameter type: expecting int.",
	}}, resp.Body.Extensions["errors"])
}

func TestFormat_SetError(t *testing.T) {
	t.Parallel()

	set := paramcodec.MustNewSet(map[string]any{
		"params": map[string]any{
			"flag":  map[string]any{"type": "bool"},
			"limit": map[string]any{"type": "int"},
		},
	})
	_, err := set.DecodeAll(map[string]any{"flag": "yes", "limit": "1.5"})
	require.Error(t, err)

	resp := New("").Format("/search", err)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "multiple_param_errors", resp.Body.Type)
	assert.Equal(t, []FieldError{
		{Field: "flag", Code: paramcodec.CodeInvalidBool, Message: "Invalid query string parameter type: expecting bool."},
		{Field: "limit", Code: paramcodec.CodeInvalidInt, Message: "Invalid query string parameter type: expecting int."},
	}, resp.Body.Extensions["errors"])
	assert.NotEmpty(t, resp.Body.Extensions["error_id"])
}

func TestFormat_FieldViolations(t *testing.T) {
	t.Parallel()

	set := paramcodec.MustNewSet(map[string]any{
		"params": map[string]any{
			"ids": map[string]any{"type": "int", "format": "csv", "max_items": 1},
		},
	})
	fv := FieldViolations(set.ValidateAll(map[string]any{"ids": "1,2"}))
	require.Error(t, fv.Err())
	assert.Equal(t, `parameter "ids" is invalid`, fv.Error())

	f := &Formatter{DisableErrorID: true}
	resp := f.Format("", fv.Err())
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "validation_error", resp.Body.Type)
	assert.NotContains(t, resp.Body.Extensions, "error_id")

	fields, ok := resp.Body.Extensions["errors"].([]FieldError)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "ids", fields[0].Field)
	assert.Equal(t, paramcodec.CodeTypeInvalid, fields[0].Code)

	assert.NoError(t, FieldViolations(nil).Err())
	assert.Equal(t, "2 parameters are invalid", FieldViolations{"a": nil, "b": nil}.Error())
}

func TestFormat_PlainError(t *testing.T) {
	t.Parallel()

	resp := New("https://x").Format("", errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "about:blank", resp.Body.Type)
	assert.NotContains(t, resp.Body.Extensions, "errors")
	assert.NotContains(t, resp.Body.Extensions, "code")
}

func TestResponse_Write(t *testing.T) {
	t.Parallel()

	_, err := paramcodec.MustNewScalar(paramcodec.KindBool).Decode("1")
	require.Error(t, err)

	f := &Formatter{ErrorIDGenerator: fixedID}
	rec := httptest.NewRecorder()
	require.NoError(t, f.Format("/x", err).Write(rec))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"type": "invalidBool",
		"title": "Bad Request",
		"status": 400,
		"detail": "decode bool: Invalid query string parameter type: expecting bool.",
		"instance": "/x",
		"error_id": "err-test",
		"code": "invalidBool",
		"errors": [{"code": "invalidBool", "message": "Invalid query string parameter type: expecting bool."}]
	}`, rec.Body.String())
}

func TestDetail_ReservedExtensions(t *testing.T) {
	t.Parallel()

	d := Detail{
		Type:       "about:blank",
		Title:      "Bad Request",
		Status:     400,
		Extensions: map[string]any{"status": 500, "detail": "hidden", "extra": true},
	}
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"about:blank","title":"Bad Request","status":400,"extra":true}`, string(data))
}

func TestGenerateErrorID(t *testing.T) {
	t.Parallel()

	a, b := generateErrorID(), generateErrorID()
	assert.True(t, strings.HasPrefix(a, "err-"))
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
