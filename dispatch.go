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
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"waypost.dev/waypost/pattern"
)

// contextKey is a private type for request context values.
type contextKey int

const (
	paramsKey contextKey = iota
	routeKey
)

// ParamsFromContext returns the path parameters extracted for the matched
// route, in pattern order. Returns nil outside a routed request.
func ParamsFromContext(ctx context.Context) pattern.Params {
	p, _ := ctx.Value(paramsKey).(pattern.Params)

	return p
}

// RouteFromContext returns the matched route. Returns nil outside a routed
// request.
func RouteFromContext(ctx context.Context) *Route {
	rt, _ := ctx.Value(routeKey).(*Route)

	return rt
}

// PathParam returns the named path parameter from a routed request, or ""
// when absent.
func PathParam(req *http.Request, name string) string {
	return ParamsFromContext(req.Context()).Value(name)
}

// ServeHTTP resolves the request to a route and dispatches to its handler.
//
// The router's job ends at resolution: it stores the match in the request
// context, annotates the active trace span with the matched pattern (so
// trace backends aggregate by route, not by raw path), and hands off to
// the route's middleware chain and handler. Unmatched requests go to the
// NotFound handler; an unmatched path is a normal outcome, not an error.
//
// The first request freezes the router; see Freeze.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	m, ok := r.Lookup(req.Method, req.URL.Path)
	if !ok {
		r.notFound.ServeHTTP(w, req)

		return
	}

	if r.annotateSpans {
		if span := trace.SpanFromContext(req.Context()); span.IsRecording() {
			span.SetAttributes(attribute.String("http.route", m.Route.Pattern()))
		}
	}

	ctx := context.WithValue(req.Context(), paramsKey, m.Params)
	ctx = context.WithValue(ctx, routeKey, m.Route)

	m.Route.endpoint.ServeHTTP(w, req.WithContext(ctx))
}
