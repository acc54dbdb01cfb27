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

// Package paramcodec encodes, decodes and validates typed query string
// parameters.
//
// A parameter holds a scalar of one [Kind] (bool, int, float or string), or
// an ordered list of such scalars joined with a delimiter [Scheme] (csv, ssv,
// tsv, pipes) or carried as repeated values (multi).
//
// Each shape has a codec and a validator. The validator answers "is this
// acceptable?" without producing a value; the codec produces the value or
// fails with a [*DecodeError]. The two always agree: a validator reports no
// violations exactly when the matching codec decodes the input.
//
// # Quick Start
//
//	ids, err := paramcodec.NewList(paramcodec.KindInt, paramcodec.SchemeCSV)
//	if err != nil {
//	    return err
//	}
//	values, err := ids.Decode("1,2,3")
//
//	check, err := paramcodec.NewListValidator(paramcodec.KindInt, paramcodec.SchemeCSV,
//	    paramcodec.WithMaxItems(2),
//	)
//	violations := check.Validate("1,2,3")
//	// {"typeInvalid": "Invalid query string parameter type: csv format, expecting list of int, at most 2 elements."}
//
// # Grammar
//
// Bool accepts exactly "true" and "false". Int accepts the canonical decimal
// form of an int64 only: "007", "+5", "-0" and "5.0" are rejected. Float
// accepts an optional sign, digits and an optional fraction; exponents, "inf"
// and "nan" are rejected. String accepts anything.
//
// The delimited schemes have no escaping. Encoding an item that contains the
// delimiter fails with a [*DelimiterCollisionError] instead of producing a
// string that decodes to a different list. The empty string is the empty
// list.
//
// # Violations
//
// Validators return [Violations], an ordered {code: message} map that
// marshals to a JSON object. A decode failure carries exactly one violation.
//
// # Configuration
//
// Instances can be built from option maps with [DecodeConfig], or in bulk
// from a definitions document with [NewSet]. The yaml and toml sub-packages
// load such documents from files.
//
// # Strategy
//
// [Strategy] is the extract/hydrate/merge contract used by hydration
// frameworks. Hydrate stores bool, int64, float64 and string natives, and
// []any for lists.
package paramcodec
