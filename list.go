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
	"log/slog"
	"strings"
)

// ListCodec encodes and decodes an ordered list of scalars carried in one
// query parameter.
//
// The delimited schemes ([SchemeCSV], [SchemeSSV], [SchemeTSV], [SchemePipes])
// join items into a single string. They have no escaping, so an item that
// contains the delimiter cannot be encoded. [SchemeMulti] carries the items as
// an already split list of strings.
//
// Decoding is all-or-nothing: one bad item fails the whole list.
//
// Two empty-string conventions apply to delimited schemes: "" decodes to the
// empty list, while a leading delimiter yields an empty first item, so
// ["", "abc"] and ",abc" round-trip for [SchemeCSV] but [""] encodes to "".
type ListCodec struct {
	kind   Kind
	scheme Scheme
	item   ItemCodec
	events Events
	logger *slog.Logger
}

// NewList returns a list codec for items of kind joined with scheme.
// Item-count bounds are not enforced by the codec; see [NewListValidator].
//
// Example:
//
//	tags, err := paramcodec.NewList(paramcodec.KindString, paramcodec.SchemeCSV)
//	if err != nil {
//	    return err
//	}
//	items, err := tags.Decode("red,green")
func NewList(kind Kind, scheme Scheme, opts ...Option) (*ListCodec, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := checkScheme(scheme); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	return &ListCodec{
		kind:   kind,
		scheme: scheme,
		item:   &ScalarCodec{kind: kind, item: o.item, logger: discardLogger},
		events: o.events,
		logger: o.logger,
	}, nil
}

// MustNewList is like [NewList] but panics on error.
func MustNewList(kind Kind, scheme Scheme, opts ...Option) *ListCodec {
	c, err := NewList(kind, scheme, opts...)
	if err != nil {
		panic(fmt.Sprintf("paramcodec.MustNewList: %v", err))
	}

	return c
}

// Kind returns the item kind.
func (c *ListCodec) Kind() Kind {
	return c.kind
}

// Scheme returns the delimiter scheme.
func (c *ListCodec) Scheme() Scheme {
	return c.scheme
}

// Encode joins the encoded items with the scheme delimiter.
// The empty list encodes to "". It fails with [ErrMultiScheme] for
// [SchemeMulti] and with a [*DelimiterCollisionError] if an encoded item
// contains the delimiter.
func (c *ListCodec) Encode(items []Value) (string, error) {
	s, err := c.encode(items)
	c.events.encoded(Event{Kind: c.kind, Scheme: c.scheme, List: true, Items: len(items), Err: err})

	return s, err
}

// EncodeValues returns the transport values for items: one entry per item
// for [SchemeMulti], otherwise a single joined entry.
func (c *ListCodec) EncodeValues(items []Value) ([]string, error) {
	var (
		out []string
		err error
	)
	if c.scheme == SchemeMulti {
		out, err = c.encodeItems(items)
	} else {
		var s string
		if s, err = c.encode(items); err == nil {
			out = []string{s}
		}
	}
	c.events.encoded(Event{Kind: c.kind, Scheme: c.scheme, List: true, Items: len(items), Err: err})

	return out, err
}

// Decode splits text on the scheme delimiter and decodes every item.
// "" decodes to the empty list. For [SchemeMulti] a string is a type error.
func (c *ListCodec) Decode(text string) ([]Value, error) {
	return c.decode(text)
}

// DecodeValues decodes an already split list. Only [SchemeMulti] accepts it;
// the delimited schemes report a type error.
func (c *ListCodec) DecodeValues(values []string) ([]Value, error) {
	return c.decode(values)
}

// DecodeAny decodes a transport value of any shape: a string for the
// delimited schemes, or a []string or []any of strings for [SchemeMulti].
// nil decodes to a nil list.
func (c *ListCodec) DecodeAny(wire any) ([]Value, error) {
	if wire == nil {
		return nil, nil
	}

	return c.decode(wire)
}

// Strategy returns the extract/hydrate/merge adapter for c.
func (c *ListCodec) Strategy() Strategy {
	return listStrategy{codec: c}
}

func (c *ListCodec) encode(items []Value) (string, error) {
	delim, ok := c.scheme.Delimiter()
	if !ok {
		return "", ErrMultiScheme
	}
	parts, err := c.encodeItems(items)
	if err != nil {
		return "", err
	}
	for i, part := range parts {
		if strings.IndexByte(part, delim) >= 0 {
			return "", &DelimiterCollisionError{Index: i, Scheme: c.scheme, Item: part}
		}
	}

	return strings.Join(parts, string(delim)), nil
}

func (c *ListCodec) encodeItems(items []Value) ([]string, error) {
	parts := make([]string, len(items))
	for i, item := range items {
		s, err := c.item.EncodeItem(item)
		if err != nil {
			return nil, fmt.Errorf("encode %s list item %d: %w", c.scheme, i, err)
		}
		parts[i] = s
	}

	return parts, nil
}

func (c *ListCodec) decode(wire any) ([]Value, error) {
	raw, expected, actual, ok := rawItems(c.scheme, wire)
	var (
		out []Value
		err error
	)
	if !ok {
		err = &DecodeError{
			Kind:       c.kind,
			Scheme:     c.scheme,
			Index:      -1,
			Input:      actual,
			Violations: single(CodeTypeInvalid, typeMessage(expected, actual)),
		}
	} else {
		out, err = c.decodeItems(raw)
	}

	if err != nil {
		var decErr *DecodeError
		if errors.As(err, &decErr) {
			c.logger.Debug("query parameter rejected",
				"kind", c.kind.String(),
				"scheme", c.scheme.String(),
				"code", decErr.Code(),
				"index", decErr.Index,
			)
		}
	}
	c.events.decoded(Event{Kind: c.kind, Scheme: c.scheme, List: true, Items: len(raw), Err: err})

	return out, err
}

func (c *ListCodec) decodeItems(raw []string) ([]Value, error) {
	out := make([]Value, len(raw))
	for i, text := range raw {
		v, err := c.item.DecodeItem(text)
		if err != nil {
			return nil, itemError(c.kind, c.scheme, i, text, err)
		}
		out[i] = v
	}

	return out, nil
}
