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

func TestDecodeConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   map[string]any
		want Config
	}{
		{
			name: "scalar",
			in:   map[string]any{"type": "int"},
			want: Config{Kind: KindInt},
		},
		{
			name: "list with bounds",
			in:   map[string]any{"type": "float", "format": "pipes", "min_items": 1, "max_items": 3},
			want: Config{Kind: KindFloat, Scheme: SchemePipes, MinItems: 1, MaxItems: 3, HasMax: true},
		},
		{
			name: "aliases",
			in:   map[string]any{"type": "integer", "scheme": "multi", "minItems": 2, "maxItems": 2},
			want: Config{Kind: KindInt, Scheme: SchemeMulti, MinItems: 2, MaxItems: 2, HasMax: true},
		},
		{
			name: "integral float bound",
			in:   map[string]any{"type": "string", "format": "csv", "max_items": 4.0},
			want: Config{Kind: KindString, Scheme: SchemeCSV, MaxItems: 4, HasMax: true},
		},
		{
			name: "string bound",
			in:   map[string]any{"type": "string", "format": "csv", "min_items": " 10 "},
			want: Config{Kind: KindString, Scheme: SchemeCSV, MinItems: 10},
		},
		{
			name: "leading zero string bound is decimal",
			in:   map[string]any{"type": "string", "format": "csv", "max_items": "010"},
			want: Config{Kind: KindString, Scheme: SchemeCSV, MaxItems: 10, HasMax: true},
		},
		{
			name: "int64 bound",
			in:   map[string]any{"type": "bool", "format": "ssv", "max_items": int64(0)},
			want: Config{Kind: KindBool, Scheme: SchemeSSV, HasMax: true},
		},
		{
			name: "nil bound is absent",
			in:   map[string]any{"type": "bool", "format": "ssv", "max_items": nil},
			want: Config{Kind: KindBool, Scheme: SchemeSSV},
		},
		{
			name: "scalar keeps bounds",
			in:   map[string]any{"type": "int", "max_items": 1},
			want: Config{Kind: KindInt, MaxItems: 1, HasMax: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeConfig(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      map[string]any
		wantErr error
		option  string
	}{
		{"missing type", map[string]any{"format": "csv"}, ErrMissingKind, "type"},
		{"empty type", map[string]any{"type": ""}, ErrMissingKind, "type"},
		{"unknown type", map[string]any{"type": "date"}, ErrUnknownKind, "type"},
		{"non-string type", map[string]any{"type": 1}, ErrUnknownKind, "type"},
		{"unknown format", map[string]any{"type": "int", "format": "semicolon"}, ErrUnknownScheme, "format"},
		{"unknown scheme alias", map[string]any{"type": "int", "scheme": "xml"}, ErrUnknownScheme, "scheme"},
		{"empty format", map[string]any{"type": "int", "format": ""}, ErrMissingScheme, "format"},
		{"non-string format", map[string]any{"type": "int", "format": true}, ErrUnknownScheme, "format"},
		{"unknown key", map[string]any{"type": "int", "delimiter": ","}, ErrUnknownOption, "delimiter"},
		{"format conflict", map[string]any{"type": "int", "format": "csv", "scheme": "csv"}, ErrOptionConflict, "scheme"},
		{"max conflict", map[string]any{"type": "int", "maxItems": 1, "max_items": 1}, ErrOptionConflict, "max_items"},
		{"negative bound", map[string]any{"type": "int", "min_items": -1}, ErrInvalidBound, "min_items"},
		{"fractional bound", map[string]any{"type": "int", "maxItems": 1.5}, ErrInvalidBound, "maxItems"},
		{"infinite bound", map[string]any{"type": "int", "max_items": math.Inf(1)}, ErrInvalidBound, "max_items"},
		{"bool bound", map[string]any{"type": "int", "max_items": true}, ErrInvalidBound, "max_items"},
		{"text bound", map[string]any{"type": "int", "max_items": "ten"}, ErrInvalidBound, "max_items"},
		{"signed text bound", map[string]any{"type": "int", "max_items": "-1"}, ErrInvalidBound, "max_items"},
		{"slice bound", map[string]any{"type": "int", "min_items": []int{1}}, ErrInvalidBound, "min_items"},
		{"bounds order", map[string]any{"type": "int", "minItems": 3, "maxItems": 2}, ErrBoundsOrder, "maxItems"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeConfig(tt.in)
			require.ErrorIs(t, err, tt.wantErr)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.option, cfgErr.Option)
		})
	}
}

func TestConfig_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "type=int", Config{Kind: KindInt}.String())
	assert.Equal(t, "type=int;format=csv", Config{Kind: KindInt, Scheme: SchemeCSV}.String())
	assert.Equal(t, "type=string;format=multi;min_items=1;max_items=0",
		Config{Kind: KindString, Scheme: SchemeMulti, MinItems: 1, HasMax: true}.String())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Config{Kind: KindBool}.Validate())
	require.ErrorIs(t, Config{}.Validate(), ErrMissingKind)
	require.ErrorIs(t, Config{Kind: KindBool, Scheme: Scheme(40)}.Validate(), ErrUnknownScheme)
	require.ErrorIs(t, Config{Kind: KindBool, Scheme: SchemeCSV, MinItems: -2}.Validate(), ErrInvalidBound)
	require.ErrorIs(t, Config{Kind: KindBool, Scheme: SchemeCSV, MinItems: 2, MaxItems: 1, HasMax: true}.Validate(), ErrBoundsOrder)
}

func TestConfig_Builders(t *testing.T) {
	t.Parallel()

	cfg := Config{Kind: KindInt, Scheme: SchemeCSV, MinItems: 1, MaxItems: 2, HasMax: true}

	list, err := cfg.List()
	require.NoError(t, err)
	assert.Equal(t, SchemeCSV, list.Scheme())

	validator, err := cfg.ListValidator(WithMaxItems(10))
	require.NoError(t, err)
	maxItems, ok := validator.MaxItems()
	assert.True(t, ok)
	assert.Equal(t, 2, maxItems)
	assert.Equal(t, 1, validator.MinItems())

	scalar, err := cfg.Scalar()
	require.NoError(t, err)
	assert.Equal(t, KindInt, scalar.Kind())

	_, err = Config{Kind: KindInt}.List()
	require.ErrorIs(t, err, ErrMissingScheme)
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	scalar, err := ScalarFromMap(map[string]any{"type": "bool"})
	require.NoError(t, err)
	assert.Equal(t, KindBool, scalar.Kind())

	sv, err := ScalarValidatorFromMap(map[string]any{"type": "float"})
	require.NoError(t, err)
	assert.Empty(t, sv.Validate("1.5"))

	list, err := ListFromMap(map[string]any{"type": "int", "format": "ssv"})
	require.NoError(t, err)
	items, err := list.Decode("1 2")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	lv, err := ListValidatorFromMap(map[string]any{"type": "int", "format": "ssv", "max_items": 1})
	require.NoError(t, err)
	assert.NotEmpty(t, lv.Validate("1 2"))

	_, err = ListFromMap(map[string]any{"type": "int"})
	require.ErrorIs(t, err, ErrMissingScheme)

	_, err = ScalarFromMap(map[string]any{"kind": "int"})
	require.ErrorIs(t, err, ErrUnknownOption)

	_, err = ListValidatorFromMap(map[string]any{"type": "int", "format": "csv", "min_items": -3})
	require.ErrorIs(t, err, ErrInvalidBound)
}
