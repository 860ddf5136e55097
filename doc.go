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

// Package waypost maps HTTP requests to handlers in bounded time.
//
// Waypost is a route index and dispatcher built on the pattern subpackage:
// route patterns (literals, :params, * and ** wildcards, *.ext extension
// patterns) are compiled once at registration; every request then costs one
// path split and one match against the frozen index.
//
// # Precedence
//
// Routes are tried in registration order and the first match wins - a later,
// more specific route never overtakes an earlier general one. The literal
// fast path (exact-path table plus bloom filter, built at freeze) is a pure
// performance refactor on top of that contract and can never change an
// outcome.
//
// # Lifecycle and concurrency
//
// Register routes during startup, then Freeze (implicit on first request).
// A frozen router is immutable and safe for unsynchronized concurrent
// reads. Reload by building a new Router and swapping it in via HotSwap.
//
// # Quick start
//
//	r := waypost.MustNew(waypost.WithLogger(slog.Default()))
//	r.GET("/users/:id", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
//	    fmt.Fprintln(w, "user", waypost.PathParam(req, "id"))
//	}))
//	r.GET("/files/**path", fileHandler)
//	r.Freeze()
//
//	http.ListenAndServe(":8080", r)
//
// # Observability
//
// WithMetrics enables OpenTelemetry lookup metrics (Prometheus, OTLP, or
// stdout providers); ServeHTTP annotates the active trace span with the
// matched route pattern. Both are optional and add nothing to the request
// path when disabled.
package waypost
