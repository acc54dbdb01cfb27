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

// Package metrics records codec and validator calls as OpenTelemetry metrics.
//
// A [Recorder] turns [paramcodec.Events] into counters and a histogram:
//
//	recorder, err := metrics.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids, err := paramcodec.NewList(paramcodec.KindInt, paramcodec.SchemeCSV,
//	    paramcodec.WithEvents(recorder.Events()),
//	)
//	handler, err := recorder.Handler()
//	if err == nil {
//	    http.Handle("/metrics", handler)
//	}
//
// By default the recorder owns a Prometheus registry fed by the OpenTelemetry
// Prometheus exporter. Use [WithMeterProvider] to report through an existing
// provider instead.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/paramcodec"
)

// Instrument names.
const (
	EncodeCounter   = "paramcodec.encode"
	DecodeCounter   = "paramcodec.decode"
	ValidateCounter = "paramcodec.validate"
	ItemsHistogram  = "paramcodec.items"
)

// Attribute keys.
const (
	AttrKind    = "kind"
	AttrScheme  = "scheme"
	AttrOutcome = "outcome"
)

// ErrNoPrometheus is returned by [Recorder.Handler] when the recorder reports
// through a custom meter provider.
var ErrNoPrometheus = errors.New("metrics: recorder has no Prometheus registry")

// defaultItemBuckets are the histogram bucket boundaries for list lengths.
var defaultItemBuckets = []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000}

// Option configures a [Recorder].
type Option func(*Recorder)

// WithMeterProvider reports through mp instead of a built-in Prometheus provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Recorder) {
		r.meterProvider = mp
	}
}

// WithPrometheusRegistry registers the Prometheus exporter with reg instead
// of a new private registry.
func WithPrometheusRegistry(reg *promclient.Registry) Option {
	return func(r *Recorder) {
		r.registry = reg
	}
}

// WithItemBuckets sets the bucket boundaries of the list length histogram.
func WithItemBuckets(buckets ...float64) Option {
	return func(r *Recorder) {
		r.itemBuckets = buckets
	}
}

// WithLogger sets the logger used for instrument errors.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Recorder records paramcodec events. It is safe for concurrent use.
type Recorder struct {
	meterProvider metric.MeterProvider
	sdkProvider   *sdkmetric.MeterProvider
	registry      *promclient.Registry
	itemBuckets   []float64
	logger        *slog.Logger

	encodeCount   metric.Int64Counter
	decodeCount   metric.Int64Counter
	validateCount metric.Int64Counter
	items         metric.Int64Histogram
}

// New creates a recorder.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		itemBuckets: defaultItemBuckets,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.meterProvider == nil {
		if err := r.initPrometheusProvider(); err != nil {
			return nil, err
		}
	} else {
		r.registry = nil
	}
	if err := r.initializeMetrics(r.meterProvider.Meter("rivaas.dev/paramcodec")); err != nil {
		return nil, err
	}

	return r, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics.MustNew: %v", err))
	}

	return r
}

func (r *Recorder) initPrometheusProvider() error {
	if r.registry == nil {
		r.registry = promclient.NewRegistry()
	}
	exporter, err := prometheus.New(
		prometheus.WithRegisterer(r.registry),
	)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	r.sdkProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	r.meterProvider = r.sdkProvider

	return nil
}

func (r *Recorder) initializeMetrics(meter metric.Meter) error {
	var err error

	r.encodeCount, err = meter.Int64Counter(
		EncodeCounter,
		metric.WithDescription("Number of query parameter encode calls"),
	)
	if err != nil {
		return fmt.Errorf("failed to create encode counter: %w", err)
	}

	r.decodeCount, err = meter.Int64Counter(
		DecodeCounter,
		metric.WithDescription("Number of query parameter decode calls"),
	)
	if err != nil {
		return fmt.Errorf("failed to create decode counter: %w", err)
	}

	r.validateCount, err = meter.Int64Counter(
		ValidateCounter,
		metric.WithDescription("Number of query parameter validate calls"),
	)
	if err != nil {
		return fmt.Errorf("failed to create validate counter: %w", err)
	}

	r.items, err = meter.Int64Histogram(
		ItemsHistogram,
		metric.WithDescription("Number of items in decoded list parameters"),
		metric.WithUnit("{item}"),
		metric.WithExplicitBucketBoundaries(r.itemBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create items histogram: %w", err)
	}

	return nil
}

// Events returns hooks that record every codec and validator call.
func (r *Recorder) Events() paramcodec.Events {
	return paramcodec.Events{
		Encoded: func(ev paramcodec.Event) {
			r.encodeCount.Add(context.Background(), 1, metric.WithAttributes(attributes(ev)...))
		},
		Decoded: func(ev paramcodec.Event) {
			ctx := context.Background()
			attrs := metric.WithAttributes(attributes(ev)...)
			r.decodeCount.Add(ctx, 1, attrs)
			if ev.List && !ev.Failed() {
				r.items.Record(ctx, int64(ev.Items), attrs)
			}
		},
		Validated: func(ev paramcodec.Event) {
			r.validateCount.Add(context.Background(), 1, metric.WithAttributes(attributes(ev)...))
		},
	}
}

// Handler returns the Prometheus metrics handler.
// It fails with [ErrNoPrometheus] when a custom meter provider is used.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.registry == nil {
		return nil, ErrNoPrometheus
	}

	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}), nil
}

// Registry returns the Prometheus registry, or nil with a custom meter provider.
func (r *Recorder) Registry() *promclient.Registry {
	return r.registry
}

// Shutdown flushes and stops the built-in meter provider.
// It is a no-op with a custom meter provider.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.sdkProvider == nil {
		return nil
	}
	if err := r.sdkProvider.Shutdown(ctx); err != nil {
		r.logger.Warn("metrics shutdown failed", "error", err)
		return err
	}

	return nil
}

func attributes(ev paramcodec.Event) []attribute.KeyValue {
	outcome := "ok"
	if ev.Failed() {
		outcome = "error"
	}
	scheme := "none"
	if ev.List {
		scheme = ev.Scheme.String()
	}

	return []attribute.KeyValue{
		attribute.String(AttrKind, ev.Kind.String()),
		attribute.String(AttrScheme, scheme),
		attribute.String(AttrOutcome, outcome),
	}
}
