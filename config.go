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
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// Config is a validated parameter definition.
//
// A Config with a zero Scheme describes a scalar parameter; any other Scheme
// describes a list. Bounds only apply to list validators.
type Config struct {
	Kind     Kind
	Scheme   Scheme
	MinItems int
	MaxItems int
	HasMax   bool
}

// Recognized option keys, with their aliases.
const (
	keyType     = "type"
	keyFormat   = "format"
	keyScheme   = "scheme"
	keyMinItems = "min_items"
	keyMinAlias = "minItems"
	keyMaxItems = "max_items"
	keyMaxAlias = "maxItems"
)

// canonicalKeys maps every accepted key to its canonical name.
var canonicalKeys = map[string]string{
	keyType:     keyType,
	keyFormat:   keyFormat,
	keyScheme:   keyFormat,
	keyMinItems: keyMinItems,
	keyMinAlias: keyMinItems,
	keyMaxItems: keyMaxItems,
	keyMaxAlias: keyMaxItems,
}

// rawConfig is the canonical option map after alias resolution.
type rawConfig struct {
	Type     string `mapstructure:"type"`
	Format   string `mapstructure:"format"`
	MinItems *int   `mapstructure:"min_items"`
	MaxItems *int   `mapstructure:"max_items"`
}

// DecodeConfig validates a construction options map.
//
// Recognized keys are type, format (alias scheme), min_items (alias minItems)
// and max_items (alias maxItems). Bounds may be integers, integral floats or
// strings of digits. Unknown keys, an option given under two names, a
// non-string type or format and invalid bounds are rejected with a
// [*ConfigError] naming the option as given.
//
// Example:
//
//	cfg, err := paramcodec.DecodeConfig(map[string]any{
//	    "type":     "int",
//	    "format":   "csv",
//	    "maxItems": 5,
//	})
func DecodeConfig(m map[string]any) (Config, error) {
	canonical, given, err := canonicalize(m)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &raw,
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(canonical); err != nil {
		return Config{}, newConfigError("", nil, fmt.Errorf("%w: %w", ErrDefinition, err))
	}

	var cfg Config
	if cfg.Kind, err = ParseKind(raw.Type); err != nil {
		return Config{}, newConfigError(given[keyType], m[given[keyType]], err)
	}
	if raw.Format != "" {
		if cfg.Scheme, err = ParseScheme(raw.Format); err != nil {
			return Config{}, newConfigError(given[keyFormat], raw.Format, err)
		}
	}
	if raw.MinItems != nil {
		cfg.MinItems = *raw.MinItems
	}
	if raw.MaxItems != nil {
		cfg.MaxItems = *raw.MaxItems
		cfg.HasMax = true
		if cfg.MaxItems < cfg.MinItems {
			return Config{}, newConfigError(given[keyMaxItems], cfg.MaxItems, ErrBoundsOrder)
		}
	}

	return cfg, nil
}

// canonicalize resolves aliases and coerces values. given maps each canonical
// key to the name used in m.
func canonicalize(m map[string]any) (canonical map[string]any, given map[string]string, err error) {
	canonical = make(map[string]any, len(m))
	given = map[string]string{keyType: keyType, keyFormat: keyFormat}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		name, ok := canonicalKeys[key]
		if !ok {
			return nil, nil, newConfigError(key, nil, ErrUnknownOption)
		}
		if prev, dup := given[name]; dup && prev != key && hasKey(m, prev) {
			return nil, nil, newConfigError(key, nil, fmt.Errorf("%w: %q and %q", ErrOptionConflict, prev, key))
		}
		given[name] = key

		val := m[key]
		switch name {
		case keyType:
			s, isString := val.(string)
			if !isString {
				return nil, nil, newConfigError(key, val, ErrUnknownKind)
			}
			canonical[name] = s
		case keyFormat:
			s, isString := val.(string)
			if !isString {
				return nil, nil, newConfigError(key, val, ErrUnknownScheme)
			}
			if s == "" {
				return nil, nil, newConfigError(key, nil, ErrMissingScheme)
			}
			canonical[name] = s
		case keyMinItems, keyMaxItems:
			if val == nil {
				continue
			}
			n, err := boundValue(val)
			if err != nil {
				return nil, nil, newConfigError(key, val, err)
			}
			canonical[name] = n
		}
	}

	return canonical, given, nil
}

// boundValue coerces an item-count bound to a non-negative int.
func boundValue(val any) (int, error) {
	switch v := val.(type) {
	case bool:
		return 0, ErrInvalidBound
	case float32:
		if f := float64(v); f != math.Trunc(f) {
			return 0, ErrInvalidBound
		}
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, ErrInvalidBound
		}
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 31)
		if err != nil {
			return 0, ErrInvalidBound
		}
		return int(n), nil
	}
	n, err := cast.ToIntE(val)
	if err != nil || n < 0 {
		return 0, ErrInvalidBound
	}

	return n, nil
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

// IsList reports whether the config describes a list parameter.
func (c Config) IsList() bool {
	return c.Scheme != 0
}

// Validate checks the config the same way the constructors do.
func (c Config) Validate() error {
	if err := checkKind(c.Kind); err != nil {
		return err
	}
	if c.Scheme != 0 {
		if err := checkScheme(c.Scheme); err != nil {
			return err
		}
	}
	o := options{minItems: c.MinItems, maxItems: c.MaxItems, hasMax: c.HasMax}

	return o.validateBounds()
}

// String returns a canonical description, usable as a cache key.
func (c Config) String() string {
	var b strings.Builder
	b.WriteString("type=")
	b.WriteString(c.Kind.String())
	if c.Scheme != 0 {
		b.WriteString(";format=")
		b.WriteString(c.Scheme.String())
	}
	if c.MinItems != 0 {
		fmt.Fprintf(&b, ";min_items=%d", c.MinItems)
	}
	if c.HasMax {
		fmt.Fprintf(&b, ";max_items=%d", c.MaxItems)
	}

	return b.String()
}

// boundOptions returns the bound options for a list validator.
func (c Config) boundOptions() []Option {
	opts := []Option{WithMinItems(c.MinItems)}
	if c.HasMax {
		opts = append(opts, WithMaxItems(c.MaxItems))
	}

	return opts
}

// Scalar builds a scalar codec. The scheme and bounds are ignored.
func (c Config) Scalar(opts ...Option) (*ScalarCodec, error) {
	return NewScalar(c.Kind, opts...)
}

// ScalarValidator builds a scalar validator.
func (c Config) ScalarValidator(opts ...Option) (*ScalarValidator, error) {
	return NewScalarValidator(c.Kind, opts...)
}

// List builds a list codec.
func (c Config) List(opts ...Option) (*ListCodec, error) {
	return NewList(c.Kind, c.Scheme, opts...)
}

// ListValidator builds a list validator enforcing the configured bounds.
// Bound options in opts are overridden by the config.
func (c Config) ListValidator(opts ...Option) (*ListValidator, error) {
	return NewListValidator(c.Kind, c.Scheme, append(slices.Clone(opts), c.boundOptions()...)...)
}

// Param builds a named parameter.
func (c Config) Param(name string, opts ...Option) (*Param, error) {
	return NewParam(name, c, opts...)
}

// ScalarFromMap decodes m and builds a scalar codec.
func ScalarFromMap(m map[string]any, opts ...Option) (*ScalarCodec, error) {
	cfg, err := DecodeConfig(m)
	if err != nil {
		return nil, err
	}

	return cfg.Scalar(opts...)
}

// ScalarValidatorFromMap decodes m and builds a scalar validator.
func ScalarValidatorFromMap(m map[string]any, opts ...Option) (*ScalarValidator, error) {
	cfg, err := DecodeConfig(m)
	if err != nil {
		return nil, err
	}

	return cfg.ScalarValidator(opts...)
}

// ListFromMap decodes m and builds a list codec. The format key is required.
func ListFromMap(m map[string]any, opts ...Option) (*ListCodec, error) {
	cfg, err := DecodeConfig(m)
	if err != nil {
		return nil, err
	}

	return cfg.List(opts...)
}

// ListValidatorFromMap decodes m and builds a list validator. The format key
// is required.
func ListValidatorFromMap(m map[string]any, opts ...Option) (*ListValidator, error) {
	cfg, err := DecodeConfig(m)
	if err != nil {
		return nil, err
	}

	return cfg.ListValidator(opts...)
}
