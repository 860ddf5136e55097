// Copyright 2026 The Waypost Authors
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

package waypost

import (
	"context"
	"fmt"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// meterName identifies the router's instruments to the meter provider.
const meterName = "waypost.dev/waypost"

// DefaultDurationBuckets are histogram boundaries for lookup duration in
// seconds. Lookups are in-memory and fast, so the buckets cover hundreds of
// nanoseconds to one millisecond.
var DefaultDurationBuckets = []float64{
	0.0000005, 0.000001, 0.0000025, 0.000005, 0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.001,
}

// Provider represents the available metrics providers.
type Provider string

const (
	// PrometheusProvider uses the Prometheus exporter for metrics (default).
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider uses the OTLP HTTP exporter for metrics.
	OTLPProvider Provider = "otlp"
	// StdoutProvider uses the stdout exporter for metrics (development/testing).
	StdoutProvider Provider = "stdout"
)

// metricsConfig carries metrics options from New into the Recorder.
type metricsConfig struct {
	enabled       bool
	provider      Provider
	custom        bool
	meterProvider metric.MeterProvider
	otlpEndpoint  string
}

// Recorder owns the router's metric instruments and, for built-in
// providers, the meter provider lifecycle.
//
// Instruments:
//   - waypost.router.lookups: counter of lookups by method and outcome
//   - waypost.router.lookup.duration: histogram of lookup latency, seconds
//   - waypost.router.routes: number of registered routes, set at freeze
type Recorder struct {
	meterProvider metric.MeterProvider
	sdkProvider   *sdkmetric.MeterProvider // nil when the provider is caller-owned
	meter         metric.Meter

	lookups    metric.Int64Counter
	duration   metric.Float64Histogram
	routeCount metric.Int64Gauge

	prometheusRegistry *promclient.Registry
	prometheusHandler  http.Handler

	events EventHandler
}

// newRecorder builds the recorder for the configured provider.
func newRecorder(cfg metricsConfig, events EventHandler) (*Recorder, error) {
	rec := &Recorder{events: events}

	if cfg.custom {
		rec.meterProvider = cfg.meterProvider
	} else {
		var err error
		switch cfg.provider {
		case PrometheusProvider:
			err = rec.initPrometheusProvider()
		case OTLPProvider:
			err = rec.initOTLPProvider(cfg.otlpEndpoint)
		case StdoutProvider:
			err = rec.initStdoutProvider()
		default:
			err = fmt.Errorf("%w: %q", ErrUnsupportedMetricsProvider, cfg.provider)
		}
		if err != nil {
			return nil, err
		}
	}

	rec.meter = rec.meterProvider.Meter(meterName)
	if err := rec.initInstruments(); err != nil {
		return nil, err
	}

	rec.emitDebug("metrics recorder initialized", "provider", string(cfg.provider), "custom", cfg.custom)

	return rec, nil
}

func (rec *Recorder) initInstruments() error {
	var err error

	rec.lookups, err = rec.meter.Int64Counter(
		"waypost.router.lookups",
		metric.WithDescription("Route lookups performed, by method and outcome."),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return fmt.Errorf("create lookup counter: %w", err)
	}

	rec.duration, err = rec.meter.Float64Histogram(
		"waypost.router.lookup.duration",
		metric.WithDescription("Route lookup latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultDurationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("create lookup duration histogram: %w", err)
	}

	rec.routeCount, err = rec.meter.Int64Gauge(
		"waypost.router.routes",
		metric.WithDescription("Routes registered in the frozen index."),
		metric.WithUnit("{route}"),
	)
	if err != nil {
		return fmt.Errorf("create route count gauge: %w", err)
	}

	return nil
}

// recordLookup records one lookup. The context is background because
// lookups are in-process and the instruments carry no baggage.
func (rec *Recorder) recordLookup(method string, matched bool, elapsed time.Duration) {
	outcome := "match"
	if !matched {
		outcome = "no_match"
	}

	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("waypost.lookup.outcome", outcome),
	)

	ctx := context.Background()
	rec.lookups.Add(ctx, 1, attrs)
	rec.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// setRouteCount records the size of the frozen route index.
func (rec *Recorder) setRouteCount(n int) {
	rec.routeCount.Record(context.Background(), int64(n))
}

// MetricsHandler returns the Prometheus scrape handler, or nil for other
// providers.
func (rec *Recorder) MetricsHandler() http.Handler {
	return rec.prometheusHandler
}

// Shutdown flushes and stops the built-in meter provider. It is a no-op
// for caller-owned providers.
func (rec *Recorder) Shutdown(ctx context.Context) error {
	if rec.sdkProvider == nil {
		return nil
	}

	if err := rec.sdkProvider.Shutdown(ctx); err != nil {
		rec.emitError("metrics provider shutdown failed", "error", err)

		return fmt.Errorf("metrics provider shutdown: %w", err)
	}

	return nil
}

func (rec *Recorder) emitDebug(message string, args ...any) {
	if rec.events != nil {
		rec.events(Event{Type: EventDebug, Message: message, Args: args})
	}
}

func (rec *Recorder) emitError(message string, args ...any) {
	if rec.events != nil {
		rec.events(Event{Type: EventError, Message: message, Args: args})
	}
}
