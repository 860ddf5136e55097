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
	"net/http"

	"waypost.dev/waypost/pattern"
)

// Middleware wraps an http.Handler with cross-cutting behavior. Route
// middleware runs after the router has resolved the route, so wrapped
// handlers can read the extracted parameters from the request context.
type Middleware func(http.Handler) http.Handler

// Route is one registered route: an HTTP method, a compiled pattern, the
// handler, and the route's middleware chain. Routes are created by
// Router.Handle and are immutable afterwards; a live Route is safe for
// unsynchronized concurrent reads.
type Route struct {
	method   string
	pattern  string // Canonical pattern string
	tokens   pattern.Pattern
	handler  http.Handler // Handler as registered, without middleware
	endpoint http.Handler // Handler wrapped in the middleware chain
	seq      int          // Registration order, router-wide

	// firstLiteral is the leading literal segment when the pattern starts
	// with one. The lookup scan uses it to skip routes that cannot match
	// without running the matcher.
	firstLiteral string
}

func newRoute(method string, tokens pattern.Pattern, handler http.Handler, mw []Middleware, seq int) *Route {
	rt := &Route{
		method:  method,
		pattern: tokens.String(),
		tokens:  tokens,
		handler: handler,
		seq:     seq,
	}

	if len(tokens) > 0 && tokens[0].Kind == pattern.KindLiteral {
		rt.firstLiteral = tokens[0].Text
	}

	// Wrap once at registration: middleware listed first runs outermost.
	rt.endpoint = handler
	for i := len(mw) - 1; i >= 0; i-- {
		rt.endpoint = mw[i](rt.endpoint)
	}

	return rt
}

// Method returns the HTTP method the route is registered under.
func (rt *Route) Method() string {
	return rt.method
}

// Pattern returns the canonical pattern string (e.g. "/users/:id").
// Redundant slashes from the registered spelling are normalized away.
func (rt *Route) Pattern() string {
	return rt.pattern
}

// Tokens returns the compiled pattern. The returned slice is shared and
// must not be modified.
func (rt *Route) Tokens() pattern.Pattern {
	return rt.tokens
}

// Handler returns the handler as registered, without route middleware.
func (rt *Route) Handler() http.Handler {
	return rt.handler
}

// Match is the outcome of a successful lookup: the winning route and the
// parameters extracted from the path, in pattern order.
type Match struct {
	Route  *Route
	Params pattern.Params
}
