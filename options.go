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
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/metric"
)

// Option configures a Router. Options are applied by New and validated
// together once all of them have run.
type Option func(*Router)

// WithNotFoundHandler sets the handler ServeHTTP invokes when no route
// matches. The default writes a plain 404.
//
// Example:
//
//	r := waypost.MustNew(waypost.WithNotFoundHandler(apiNotFound))
func WithNotFoundHandler(h http.Handler) Option {
	return func(r *Router) {
		if h != nil {
			r.notFound = h
		}
	}
}

// WithDiagnostics sets a diagnostic handler for the router.
//
// Diagnostic events are optional informational events that may indicate
// configuration issues (e.g. a shadowed route). The router functions
// correctly whether diagnostics are collected or not.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := waypost.DiagnosticHandlerFunc(func(e waypost.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := waypost.MustNew(waypost.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

// WithEventHandler sets the handler for internal operational events.
// Overrides WithLogger.
func WithEventHandler(h EventHandler) Option {
	return func(r *Router) {
		r.events = h
	}
}

// WithLogger routes internal operational events to the given slog logger.
// Shorthand for WithEventHandler(DefaultEventHandler(logger)).
//
// Example:
//
//	r := waypost.MustNew(waypost.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.events = DefaultEventHandler(logger)
	}
}

// WithBloomFilterSize sets the bloom filter size (in bits) for the literal
// fast-path tables. The bloom filter is used for negative lookups. Larger
// sizes reduce false positives.
//
// Default: auto-sized from the literal route count (10 bits per route).
// Must be > 0 or validation will fail.
func WithBloomFilterSize(size uint64) Option {
	return func(r *Router) {
		r.bloomFilterSize = size
	}
}

// WithBloomFilterHashFunctions sets the number of hash functions used by
// the fast-path bloom filters. More hash functions reduce false positives.
//
// Default: 3. Values are clamped to [1, 10].
func WithBloomFilterHashFunctions(numFuncs int) Option {
	return func(r *Router) {
		r.bloomHashFunctions = max(1, min(numFuncs, 10))
	}
}

// WithoutStaticTable disables the literal fast-path tables; every lookup
// uses the ordered scan. Lookup outcomes are identical either way - this
// exists for debugging and for benchmarking the scan.
func WithoutStaticTable() Option {
	return func(r *Router) {
		r.useStaticTable = false
	}
}

// WithMetrics enables lookup metrics with the default Prometheus provider.
// Expose the scrape endpoint via Router.MetricsHandler.
//
// Example:
//
//	r := waypost.MustNew(waypost.WithMetrics())
//	mux.Handle("/metrics", r.MetricsHandler())
func WithMetrics() Option {
	return func(r *Router) {
		r.metrics.enabled = true
	}
}

// WithMetricsProvider enables lookup metrics with the given provider
// (PrometheusProvider, OTLPProvider, or StdoutProvider).
func WithMetricsProvider(p Provider) Option {
	return func(r *Router) {
		r.metrics.enabled = true
		r.metrics.provider = p
	}
}

// WithMeterProvider enables lookup metrics on a caller-owned OpenTelemetry
// meter provider. The router creates its instruments on it but does not
// manage its lifecycle; Router.Shutdown becomes a no-op.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Router) {
		r.metrics.enabled = true
		r.metrics.custom = true
		r.metrics.meterProvider = mp
	}
}

// WithOTLPEndpoint sets the collector endpoint (host:port) used by the OTLP
// metrics provider. Defaults to the exporter's standard environment-based
// configuration when empty.
func WithOTLPEndpoint(endpoint string) Option {
	return func(r *Router) {
		r.metrics.otlpEndpoint = endpoint
	}
}

// WithoutSpanAnnotation stops ServeHTTP from annotating the active trace
// span with the matched route pattern. Annotation is on by default and is
// a no-op when no span is recording.
func WithoutSpanAnnotation() Option {
	return func(r *Router) {
		r.annotateSpans = false
	}
}
