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

package paramcodec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarStrategy_Extract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    Kind
		native  any
		want    any
		wantErr error
	}{
		{name: "nil", kind: KindInt, native: nil, want: nil},
		{name: "null value", kind: KindInt, native: NullValue(), want: nil},
		{name: "int", kind: KindInt, native: 42, want: "42"},
		{name: "uint8", kind: KindInt, native: uint8(7), want: "7"},
		{name: "bool", kind: KindBool, native: true, want: "true"},
		{name: "float", kind: KindFloat, native: 2.5, want: "2.5"},
		{name: "string", kind: KindString, native: "x y", want: "x y"},
		{name: "value", kind: KindString, native: StringValue("v"), want: "v"},
		{name: "kind mismatch", kind: KindInt, native: "42", wantErr: ErrKindMismatch},
		{name: "nan", kind: KindFloat, native: math.NaN(), wantErr: ErrNonFiniteFloat},
		{name: "unsupported", kind: KindString, native: struct{}{}, wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := MustNewScalar(tt.kind).Strategy().Extract(tt.native)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScalarStrategy_Hydrate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    Kind
		wire    any
		want    any
		message string
	}{
		{name: "bool", kind: KindBool, wire: "true", want: true},
		{name: "int", kind: KindInt, wire: "-5", want: int64(-5)},
		{name: "float", kind: KindFloat, wire: "0.25", want: 0.25},
		{name: "string", kind: KindString, wire: "", want: ""},
		{name: "nil", kind: KindInt, wire: nil, want: nil},
		{name: "invalid", kind: KindInt, wire: "5.0", message: "Invalid query string parameter type: expecting int."},
		{name: "array", kind: KindInt, wire: []string{"5"}, message: "Invalid query string parameter type: expecting string, not array."},
		{name: "number", kind: KindInt, wire: 5, message: "Invalid query string parameter type: expecting string, not int."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var dst any = "untouched"
			err := MustNewScalar(tt.kind).Strategy().Hydrate(tt.wire, &dst)
			if tt.message != "" {
				var decErr *DecodeError
				require.ErrorAs(t, err, &decErr)
				assert.Equal(t, tt.message, decErr.Violations[0].Message)
				assert.Equal(t, "untouched", dst)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dst)
		})
	}
}

func TestListStrategy_Extract(t *testing.T) {
	t.Parallel()

	csv := MustNewList(KindInt, SchemeCSV).Strategy()
	multi := MustNewList(KindInt, SchemeMulti).Strategy()

	got, err := csv.Extract([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "1,2,3", got)

	got, err = csv.Extract([2]int64{4, 5})
	require.NoError(t, err)
	assert.Equal(t, "4,5", got)

	got, err = csv.Extract([]any{1, int8(2)})
	require.NoError(t, err)
	assert.Equal(t, "1,2", got)

	got, err = csv.Extract([]int{})
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = csv.Extract([]int(nil))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = multi.Extract([]Value{IntValue(1), IntValue(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, got)

	_, err = csv.Extract(7)
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = csv.Extract([]any{1, "2"})
	require.ErrorIs(t, err, ErrKindMismatch)

	_, err = csv.Extract([]any{1, struct{}{}})
	require.ErrorIs(t, err, ErrUnsupportedType)

	got, err = MustNewList(KindString, SchemeCSV).Strategy().Extract([]string{"a,b"})
	require.ErrorIs(t, err, ErrDelimiterCollision)
	assert.Nil(t, got)
}

func TestListStrategy_Hydrate(t *testing.T) {
	t.Parallel()

	var dst any
	s := MustNewList(KindFloat, SchemeSSV).Strategy()

	require.NoError(t, s.Hydrate("1.5 -2", &dst))
	assert.Equal(t, []any{1.5, float64(-2)}, dst)

	require.NoError(t, s.Merge("", &dst))
	assert.Equal(t, []any{}, dst)

	require.NoError(t, s.Hydrate(nil, &dst))
	assert.Nil(t, dst)

	dst = "keep"
	err := s.Hydrate("1.5 x", &dst)
	require.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, "keep", dst)

	require.ErrorIs(t, s.Hydrate("1", nil), ErrNilDestination)
	require.ErrorIs(t, MustNewScalar(KindInt).Strategy().Merge("1", nil), ErrNilDestination)
}

func TestStrategy_MergeReplaces(t *testing.T) {
	t.Parallel()

	var dst any = []any{"old", "values"}
	s := MustNewList(KindString, SchemeMulti).Strategy()
	require.NoError(t, s.Merge([]any{"new"}, &dst))
	assert.Equal(t, []any{"new"}, dst)
}
