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
	"sync"
	"sync/atomic"
	"time"

	"waypost.dev/waypost/pattern"
)

const (
	defaultBloomFilterSize    = 1000
	defaultBloomHashFunctions = 3

	// highParamCountThreshold is the binding count above which a route
	// triggers a DiagHighParamCount diagnostic.
	highParamCountThreshold = 8
)

// Router is the route index: a registration-order collection of compiled
// routes grouped by HTTP method.
//
// Lifecycle: routes are registered during a single-threaded configuration
// phase. The first lookup (or an explicit Freeze) transitions the router to
// its immutable serving state; from then on the index is read-only and safe
// for unsynchronized concurrent reads from any number of goroutines. Hot
// reloading is done by building a fresh Router and swapping it in via
// HotSwap, never by mutating a live one.
//
// Precedence contract: lookups try routes in registration order and the
// first matching route wins, even when a later route is more specific.
// Registering "/users/:id" before "/users/admin" means "/users/admin"
// resolves to the parameter route with id="admin". This is deliberate,
// documented behavior; the literal fast path below never changes it.
type Router struct {
	mu       sync.Mutex // Guards registration and freeze
	byMethod map[string][]*Route
	ordered  []*Route

	frozen     atomic.Bool
	freezeOnce sync.Once

	// Literal fast path, built at freeze: per method, an exact-path table
	// holding the lookup outcome the ordered scan would produce for that
	// path, guarded by a bloom filter for cheap negative answers.
	static         map[string]map[string]staticEntry
	blooms         map[string]*bloomFilter
	useStaticTable bool

	notFound      http.Handler
	diagnostics   DiagnosticHandler
	events        EventHandler
	recorder      *Recorder
	metrics       metricsConfig
	annotateSpans bool

	bloomFilterSize    uint64
	bloomHashFunctions int
}

// staticEntry is the pre-resolved outcome for one exact literal path.
type staticEntry struct {
	route  *Route
	params pattern.Params
}

// New creates a router and applies the given options.
//
// Router construction allocates data structures and applies configuration;
// it performs no I/O unless a metrics provider is enabled, in which case
// exporter initialization may fail and is reported here.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		byMethod:           make(map[string][]*Route),
		useStaticTable:     true,
		annotateSpans:      true,
		notFound:           http.NotFoundHandler(),
		metrics:            metricsConfig{provider: PrometheusProvider},
		bloomFilterSize:    defaultBloomFilterSize,
		bloomHashFunctions: defaultBloomHashFunctions,
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("router configuration validation failed: %w", err)
	}

	if r.metrics.enabled {
		rec, err := newRecorder(r.metrics, r.events)
		if err != nil {
			return nil, fmt.Errorf("metrics initialization failed: %w", err)
		}
		r.recorder = rec
	}

	return r, nil
}

// MustNew is like New but panics on error. Router configuration is fixed at
// startup, so a configuration error is a programming error best caught
// during development.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return r
}

// validate checks option combinations after they are applied.
func (r *Router) validate() error {
	if r.bloomFilterSize == 0 {
		return ErrBloomFilterSizeZero
	}
	if r.bloomHashFunctions <= 0 {
		return ErrBloomHashFunctionsInvalid
	}
	if r.metrics.custom && r.metrics.meterProvider == nil {
		return ErrMeterProviderNil
	}

	return nil
}

// Handle registers a route for the given HTTP method and pattern. It
// returns the new Route, or an error when the pattern is malformed or the
// router has already frozen. Method comparison at lookup time is exact, so
// register methods in the casing requests use (net/http constants).
//
// Handle must only be called during the configuration phase, before the
// router serves its first request.
func (r *Router) Handle(method, pat string, h http.Handler, mw ...Middleware) (*Route, error) {
	if method == "" {
		return nil, ErrEmptyMethod
	}
	if h == nil {
		return nil, ErrNilHandler
	}

	tokens, err := pattern.Compile(pat)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return nil, fmt.Errorf("cannot register %s %s: %w", method, pat, ErrRouterFrozen)
	}

	rt := newRoute(method, tokens, h, mw, len(r.ordered))
	r.byMethod[method] = append(r.byMethod[method], rt)
	r.ordered = append(r.ordered, rt)

	if n := len(tokens.ParamNames()); n > highParamCountThreshold {
		r.emitDiagnostic(DiagHighParamCount, "route binds an unusually high number of parameters", map[string]any{
			"method":  method,
			"pattern": rt.Pattern(),
			"params":  n,
		})
	}

	return rt, nil
}

// GET registers a handler for GET requests. It panics on a malformed
// pattern; see Handle for the error-returning form.
func (r *Router) GET(pat string, h http.Handler, mw ...Middleware) *Route {
	return r.mustHandle(http.MethodGet, pat, h, mw)
}

// POST registers a handler for POST requests.
func (r *Router) POST(pat string, h http.Handler, mw ...Middleware) *Route {
	return r.mustHandle(http.MethodPost, pat, h, mw)
}

// PUT registers a handler for PUT requests.
func (r *Router) PUT(pat string, h http.Handler, mw ...Middleware) *Route {
	return r.mustHandle(http.MethodPut, pat, h, mw)
}

// PATCH registers a handler for PATCH requests.
func (r *Router) PATCH(pat string, h http.Handler, mw ...Middleware) *Route {
	return r.mustHandle(http.MethodPatch, pat, h, mw)
}

// DELETE registers a handler for DELETE requests.
func (r *Router) DELETE(pat string, h http.Handler, mw ...Middleware) *Route {
	return r.mustHandle(http.MethodDelete, pat, h, mw)
}

// HEAD registers a handler for HEAD requests.
func (r *Router) HEAD(pat string, h http.Handler, mw ...Middleware) *Route {
	return r.mustHandle(http.MethodHead, pat, h, mw)
}

// OPTIONS registers a handler for OPTIONS requests.
func (r *Router) OPTIONS(pat string, h http.Handler, mw ...Middleware) *Route {
	return r.mustHandle(http.MethodOptions, pat, h, mw)
}

func (r *Router) mustHandle(method, pat string, h http.Handler, mw []Middleware) *Route {
	rt, err := r.Handle(method, pat, h, mw...)
	if err != nil {
		panic(err)
	}

	return rt
}

// Freeze transitions the router to its immutable serving state: it builds
// the literal fast-path tables, emits freeze-time diagnostics, and rejects
// further registration. Freeze is idempotent and implied by the first
// Lookup or ServeHTTP call; calling it explicitly at the end of startup
// moves the build cost out of the first request.
func (r *Router) Freeze() {
	r.freezeOnce.Do(r.doFreeze)
}

func (r *Router) doFreeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frozen.Store(true)

	if r.useStaticTable {
		r.buildStaticTables()
	}

	if r.recorder != nil {
		r.recorder.setRouteCount(len(r.ordered))
	}

	r.emitEvent(EventInfo, "router frozen", "routes", len(r.ordered))
}

// Frozen reports whether the router has entered its serving state.
func (r *Router) Frozen() bool {
	return r.frozen.Load()
}

// Lookup resolves a method and request path to a route and its extracted
// parameters. The boolean is false when no registered route matches; that
// is a normal outcome, not an error.
//
// Lookup is pure given the frozen index and safe for unsynchronized
// concurrent use.
func (r *Router) Lookup(method, path string) (Match, bool) {
	r.Freeze()

	if r.recorder == nil {
		return r.lookup(method, path)
	}

	start := time.Now()
	m, ok := r.lookup(method, path)
	r.recorder.recordLookup(method, ok, time.Since(start))

	return m, ok
}

func (r *Router) lookup(method, path string) (Match, bool) {
	segments := pattern.Split(path)

	// Literal fast path. The table stores the outcome the ordered scan
	// would produce, so a hit is always authoritative.
	if table := r.static[method]; table != nil {
		key := canonicalKey(segments)
		if r.blooms[method].test(key) {
			if e, hit := table[key]; hit {
				return Match{Route: e.route, Params: e.params}, true
			}
		}
	}

	return r.scanLookup(method, segments)
}

// scanLookup is the authoritative matcher: first registered route of the
// method that matches the segments wins.
func (r *Router) scanLookup(method string, segments []string) (Match, bool) {
	for _, rt := range r.byMethod[method] {
		// A route starting with a literal cannot match a path whose first
		// segment differs; skip it without running the matcher.
		if rt.firstLiteral != "" && (len(segments) == 0 || segments[0] != rt.firstLiteral) {
			continue
		}

		if params, ok := pattern.Match(rt.tokens, segments); ok {
			return Match{Route: rt, Params: params}, true
		}
	}

	return Match{}, false
}

// Routes returns the registered routes in registration order. The slice is
// a copy; the routes it points to are shared and immutable.
func (r *Router) Routes() []*Route {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Route, len(r.ordered))
	copy(out, r.ordered)

	return out
}

// MetricsHandler returns the scrape endpoint handler when the Prometheus
// metrics provider is enabled, or nil otherwise.
func (r *Router) MetricsHandler() http.Handler {
	if r.recorder == nil {
		return nil
	}

	return r.recorder.MetricsHandler()
}

// Shutdown flushes and stops the metrics provider, if one was started by
// the router. It is a no-op when metrics are disabled or a custom meter
// provider was supplied.
func (r *Router) Shutdown(ctx context.Context) error {
	if r.recorder == nil {
		return nil
	}

	return r.recorder.Shutdown(ctx)
}

// canonicalKey renders pre-split segments as the canonical path string used
// to key the literal fast-path tables.
func canonicalKey(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}

	n := 0
	for _, s := range segments {
		n += len(s) + 1
	}

	b := make([]byte, 0, n)
	for _, s := range segments {
		b = append(b, '/')
		b = append(b, s...)
	}

	return string(b)
}
