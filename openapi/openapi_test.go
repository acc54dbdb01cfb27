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

package openapi_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/paramcodec"
	"rivaas.dev/paramcodec/openapi"
)

func mustParam(name string, cfg paramcodec.Config) *paramcodec.Param {
	p, err := paramcodec.NewParam(name, cfg)
	Expect(err).NotTo(HaveOccurred())

	return p
}

var _ = Describe("Describe", func() {
	It("describes a scalar with its kind schema only", func() {
		param := openapi.Describe(mustParam("limit", paramcodec.Config{Kind: paramcodec.KindInt}))

		Expect(param.Name).To(Equal("limit"))
		Expect(param.In).To(Equal("query"))
		Expect(param.Style).To(BeEmpty())
		Expect(param.Explode).To(BeNil())
		Expect(param.Schema).To(Equal(&openapi.Schema{Type: "integer", Format: "int64"}))
	})

	DescribeTable("list styles",
		func(scheme paramcodec.Scheme, style string, explode bool, delimiter string) {
			param := openapi.Describe(mustParam("ids", paramcodec.Config{Kind: paramcodec.KindString, Scheme: scheme}))

			Expect(param.Style).To(Equal(style))
			Expect(param.Explode).NotTo(BeNil())
			Expect(*param.Explode).To(Equal(explode))
			Expect(param.Delimiter).To(Equal(delimiter))
			Expect(param.Swagger().CollectionFormat).To(Equal(scheme.String()))
		},
		Entry("csv", paramcodec.SchemeCSV, "form", false, ""),
		Entry("ssv", paramcodec.SchemeSSV, "spaceDelimited", false, ""),
		Entry("tsv", paramcodec.SchemeTSV, "form", false, "tab"),
		Entry("pipes", paramcodec.SchemePipes, "pipeDelimited", false, ""),
		Entry("multi", paramcodec.SchemeMulti, "form", true, ""),
	)

	DescribeTable("kind schemas",
		func(kind paramcodec.Kind, typ, format string) {
			param := openapi.Describe(mustParam("p", paramcodec.Config{Kind: kind, Scheme: paramcodec.SchemeCSV}))

			Expect(param.Schema.Type).To(Equal("array"))
			Expect(param.Schema.Items).To(Equal(&openapi.Schema{Type: typ, Format: format}))
		},
		Entry("bool", paramcodec.KindBool, "boolean", ""),
		Entry("int", paramcodec.KindInt, "integer", "int64"),
		Entry("float", paramcodec.KindFloat, "number", "double"),
		Entry("string", paramcodec.KindString, "string", ""),
	)

	It("carries item-count bounds", func() {
		param := openapi.Describe(mustParam("ids", paramcodec.Config{
			Kind: paramcodec.KindInt, Scheme: paramcodec.SchemeCSV, MinItems: 1, MaxItems: 5, HasMax: true,
		}))

		Expect(*param.Schema.MinItems).To(Equal(1))
		Expect(*param.Schema.MaxItems).To(Equal(5))

		data, err := param.JSON()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(MatchJSON(`{
			"name": "ids",
			"in": "query",
			"style": "form",
			"explode": false,
			"schema": {
				"type": "array",
				"items": {"type": "integer", "format": "int64"},
				"minItems": 1,
				"maxItems": 5
			}
		}`))
	})

	It("omits a zero minimum and keeps a zero maximum", func() {
		param := openapi.Describe(mustParam("none", paramcodec.Config{
			Kind: paramcodec.KindInt, Scheme: paramcodec.SchemeMulti, HasMax: true,
		}))

		Expect(param.Schema.MinItems).To(BeNil())
		Expect(*param.Schema.MaxItems).To(BeZero())
	})

	It("renders YAML", func() {
		param := openapi.Describe(mustParam("tags", paramcodec.Config{Kind: paramcodec.KindString, Scheme: paramcodec.SchemeTSV}))

		data, err := param.YAML()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("x-delimiter: tab"))
		Expect(string(data)).To(ContainSubstring("in: query"))
	})

	It("renders the Swagger 2 form", func() {
		param := openapi.Describe(mustParam("ids", paramcodec.Config{
			Kind: paramcodec.KindInt, Scheme: paramcodec.SchemePipes, MaxItems: 3, HasMax: true,
		}))

		swagger := param.Swagger()
		Expect(swagger.Type).To(Equal("array"))
		Expect(swagger.Items.Type).To(Equal("integer"))
		Expect(swagger.CollectionFormat).To(Equal("pipes"))
		Expect(*swagger.MaxItems).To(Equal(3))

		data, err := json.Marshal(openapi.Describe(mustParam("n", paramcodec.Config{Kind: paramcodec.KindBool})).Swagger())
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(MatchJSON(`{"name":"n","in":"query","type":"boolean"}`))
	})

	It("describes a set in name order", func() {
		set := paramcodec.MustNewSet(map[string]any{
			"params": map[string]any{
				"b": map[string]any{"type": "int"},
				"a": map[string]any{"type": "bool", "format": "multi"},
			},
		})

		params := openapi.DescribeSet(set)
		Expect(params).To(HaveLen(2))
		Expect(params[0].Name).To(Equal("a"))
		Expect(params[1].Name).To(Equal("b"))
	})
})

var _ = Describe("Checker", func() {
	It("rejects a parameter without schema", func() {
		_, err := openapi.Compile(openapi.Parameter{Name: "x"})
		Expect(err).To(MatchError(openapi.ErrNoSchema))
	})

	It("accepts every value the parameter decodes", func() {
		p := mustParam("ids", paramcodec.Config{
			Kind: paramcodec.KindInt, Scheme: paramcodec.SchemeCSV, MinItems: 1, MaxItems: 3, HasMax: true,
		})
		checker, err := openapi.Compile(openapi.Describe(p))
		Expect(err).NotTo(HaveOccurred())

		for _, wire := range []string{"1", "1,2", "-5,0,9223372036854775807"} {
			Expect(p.Validate(wire)).To(BeEmpty())
			decoded, err := p.Decode(wire)
			Expect(err).NotTo(HaveOccurred())
			Expect(checker.Check(decoded)).To(Succeed())
		}
		Expect(checker.Check(nil)).To(Succeed())
	})

	It("rejects values outside the schema", func() {
		p := mustParam("ids", paramcodec.Config{
			Kind: paramcodec.KindInt, Scheme: paramcodec.SchemeCSV, MaxItems: 2, HasMax: true,
		})
		checker, err := openapi.Compile(openapi.Describe(p))
		Expect(err).NotTo(HaveOccurred())

		Expect(checker.Check([]any{int64(1), int64(2), int64(3)})).NotTo(Succeed())
		Expect(checker.Check([]any{"1"})).NotTo(Succeed())
		Expect(checker.Check(int64(1))).NotTo(Succeed())
	})

	It("checks scalar kinds", func() {
		for _, tc := range []struct {
			kind paramcodec.Kind
			good any
			bad  any
		}{
			{paramcodec.KindBool, true, "true"},
			{paramcodec.KindInt, int64(3), 3.5},
			{paramcodec.KindFloat, 3.5, "3.5"},
			{paramcodec.KindString, "x", false},
		} {
			checker, err := openapi.Compile(openapi.Describe(mustParam("s", paramcodec.Config{Kind: tc.kind})))
			Expect(err).NotTo(HaveOccurred())
			Expect(checker.Check(tc.good)).To(Succeed())
			Expect(checker.Check(tc.bad)).To(MatchError(ContainSubstring(`parameter "s"`)))
		}
	})
})
