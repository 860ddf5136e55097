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
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// RouterTestSuite tests route registration and lookup.
type RouterTestSuite struct {
	suite.Suite

	router *Router
}

func (suite *RouterTestSuite) SetupTest() {
	suite.router = MustNew()
}

func (suite *RouterTestSuite) TestLookup() {
	suite.router.GET("/", okHandler())
	suite.router.GET("/users", okHandler())
	suite.router.GET("/users/:id", okHandler())
	suite.router.GET("/users/:id/posts/:post_id", okHandler())
	suite.router.GET("/files/**path", okHandler())
	suite.router.GET("/img/*.{jpg,png}", okHandler())
	suite.router.POST("/users", okHandler())

	tests := []struct {
		method   string
		path     string
		expected bool
		pattern  string
		params   map[string]string
	}{
		{http.MethodGet, "/", true, "/", map[string]string{}},
		{http.MethodGet, "/users", true, "/users", map[string]string{}},
		{http.MethodGet, "/users/42", true, "/users/:id", map[string]string{"id": "42"}},
		{http.MethodGet, "/users/42/posts/7", true, "/users/:id/posts/:post_id", map[string]string{"id": "42", "post_id": "7"}},
		{http.MethodGet, "/files/a/b/c", true, "/files/**path", map[string]string{"path": "a/b/c"}},
		{http.MethodGet, "/files", true, "/files/**path", map[string]string{"path": ""}},
		{http.MethodGet, "/img/photo.png", true, "/img/*.{jpg,png}", map[string]string{}},
		{http.MethodGet, "/img/photo.gif", false, "", nil},
		{http.MethodGet, "/nonexistent", false, "", nil},
		{http.MethodPost, "/users", true, "/users", map[string]string{}},
		{http.MethodPost, "/users/42", false, "", nil},
		{http.MethodDelete, "/users", false, "", nil},
	}

	for _, tt := range tests {
		suite.Run(tt.method+" "+tt.path, func() {
			m, ok := suite.router.Lookup(tt.method, tt.path)

			if !tt.expected {
				suite.False(ok, "expected no route for %s %s", tt.method, tt.path)

				return
			}

			suite.Require().True(ok, "expected a route for %s %s", tt.method, tt.path)
			suite.Equal(tt.pattern, m.Route.Pattern())
			suite.Equal(tt.params, m.Params.Map())
		})
	}
}

// TestFirstRegisteredWins pins the precedence contract: routes are tried in
// registration order, so an earlier parameter route beats a later literal
// route for the same path.
func (suite *RouterTestSuite) TestFirstRegisteredWins() {
	suite.router.GET("/users/:id", okHandler())
	suite.router.GET("/users/admin", okHandler())

	m, ok := suite.router.Lookup(http.MethodGet, "/users/admin")
	suite.Require().True(ok)
	suite.Equal("/users/:id", m.Route.Pattern(), "first-registered route must win over a later literal")
	suite.Equal("admin", m.Params.Value("id"))
}

// TestLiteralWinsWhenRegisteredFirst is the mirror case: registration order
// decides, not route shape.
func (suite *RouterTestSuite) TestLiteralWinsWhenRegisteredFirst() {
	suite.router.GET("/users/admin", okHandler())
	suite.router.GET("/users/:id", okHandler())

	m, ok := suite.router.Lookup(http.MethodGet, "/users/admin")
	suite.Require().True(ok)
	suite.Equal("/users/admin", m.Route.Pattern())
	suite.Empty(m.Params)

	m, ok = suite.router.Lookup(http.MethodGet, "/users/42")
	suite.Require().True(ok)
	suite.Equal("/users/:id", m.Route.Pattern())
}

func (suite *RouterTestSuite) TestMessyPathsNormalized() {
	suite.router.GET("/users/:id", okHandler())

	m, ok := suite.router.Lookup(http.MethodGet, "//users///42/")
	suite.Require().True(ok)
	suite.Equal("42", m.Params.Value("id"))
}

func (suite *RouterTestSuite) TestFrozenRejectsRegistration() {
	suite.router.GET("/users", okHandler())
	suite.router.Freeze()

	_, err := suite.router.Handle(http.MethodGet, "/posts", okHandler())
	suite.Require().Error(err)
	suite.ErrorIs(err, ErrRouterFrozen)
	suite.True(suite.router.Frozen())
}

func (suite *RouterTestSuite) TestLookupImpliesFreeze() {
	suite.router.GET("/users", okHandler())

	suite.False(suite.router.Frozen())
	suite.router.Lookup(http.MethodGet, "/users")
	suite.True(suite.router.Frozen())
}

func (suite *RouterTestSuite) TestHandleValidation() {
	_, err := suite.router.Handle("", "/users", okHandler())
	suite.ErrorIs(err, ErrEmptyMethod)

	_, err = suite.router.Handle(http.MethodGet, "/users", nil)
	suite.ErrorIs(err, ErrNilHandler)

	_, err = suite.router.Handle(http.MethodGet, "/img/*.{}", okHandler())
	suite.Error(err)

	suite.Panics(func() { suite.router.GET("/img/*.{}", okHandler()) })
}

func (suite *RouterTestSuite) TestRoutesSnapshot() {
	suite.router.GET("/a", okHandler())
	suite.router.POST("/b", okHandler())
	suite.router.GET("/c/:id", okHandler())

	routes := suite.router.Routes()
	suite.Require().Len(routes, 3)
	suite.Equal("/a", routes[0].Pattern())
	suite.Equal(http.MethodPost, routes[1].Method())
	suite.Equal("/c/:id", routes[2].Pattern())
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

// TestStaticTableEquivalence verifies the literal fast path is a pure
// performance refactor: for every probe, a router with the exact-path table
// enabled and one without produce identical routes and bindings.
func TestStaticTableEquivalence(t *testing.T) {
	build := func(opts ...Option) *Router {
		r := MustNew(opts...)
		r.GET("/", okHandler())
		r.GET("/users/:id", okHandler())
		r.GET("/users/admin", okHandler()) // shadowed by the param route
		r.GET("/users", okHandler())
		r.GET("/files/**path/*.{jpg,png}", okHandler())
		r.GET("/files/manifest", okHandler())
		r.GET("/api/v1/health", okHandler())
		r.Freeze()

		return r
	}

	fast := build()
	slow := build(WithoutStaticTable())

	probes := []string{
		"/", "/users", "/users/42", "/users/admin", "/files/manifest",
		"/files/a/b/photo.jpg", "/api/v1/health", "/api/v1/missing", "/nope",
	}

	for _, path := range probes {
		t.Run(path, func(t *testing.T) {
			fm, fok := fast.Lookup(http.MethodGet, path)
			sm, sok := slow.Lookup(http.MethodGet, path)

			require.Equal(t, sok, fok, "match outcome diverged for %s", path)
			if !fok {
				return
			}
			assert.Equal(t, sm.Route.Pattern(), fm.Route.Pattern())
			assert.Equal(t, sm.Params, fm.Params)
		})
	}
}

// TestShadowedRouteDiagnostic verifies freeze-time shadow detection.
func TestShadowedRouteDiagnostic(t *testing.T) {
	var events []DiagnosticEvent
	r := MustNew(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		events = append(events, e)
	})))

	r.GET("/users/:id", okHandler())
	r.GET("/users/admin", okHandler())
	r.GET("/health", okHandler())
	r.Freeze()

	require.Len(t, events, 1)
	assert.Equal(t, DiagRouteShadowed, events[0].Kind)
	assert.Equal(t, "/users/admin", events[0].Fields["pattern"])
	assert.Equal(t, "/users/:id", events[0].Fields["matched_by"])
}

func TestHighParamCountDiagnostic(t *testing.T) {
	var events []DiagnosticEvent
	r := MustNew(WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		events = append(events, e)
	})))

	r.GET("/:a/:b/:c/:d/:e/:f/:g/:h/:i", okHandler())

	require.Len(t, events, 1)
	assert.Equal(t, DiagHighParamCount, events[0].Kind)
	assert.Equal(t, 9, events[0].Fields["params"])
}

// TestConcurrentLookups exercises unsynchronized reads on a frozen router.
// Meaningful under -race.
func TestConcurrentLookups(t *testing.T) {
	r := MustNew()
	for i := range 50 {
		r.GET(fmt.Sprintf("/static/%d", i), okHandler())
	}
	r.GET("/users/:id", okHandler())
	r.Freeze()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				if _, ok := r.Lookup(http.MethodGet, fmt.Sprintf("/static/%d", i%50)); !ok {
					t.Error("expected static route to match")

					return
				}
				if _, ok := r.Lookup(http.MethodGet, "/users/42"); !ok {
					t.Error("expected param route to match")

					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestValidateOptions(t *testing.T) {
	_, err := New(WithBloomFilterSize(0))
	assert.ErrorIs(t, err, ErrBloomFilterSizeZero)

	_, err = New(WithMeterProvider(nil))
	assert.ErrorIs(t, err, ErrMeterProviderNil)

	assert.Panics(t, func() { MustNew(WithBloomFilterSize(0)) })
}

func registerLiteralRoutes(r *Router, n int) {
	for i := range n {
		r.GET(fmt.Sprintf("/resources/r%04d", i), okHandler())
	}
	r.Freeze()
}

// Lookup cost for the last-registered literal route should stay flat as the
// table grows when the fast path is on; the scan variant is the baseline.
func BenchmarkLookupLastLiteral(b *testing.B) {
	for _, n := range []int{100, 1000} {
		path := fmt.Sprintf("/resources/r%04d", n-1)

		b.Run(fmt.Sprintf("static_n%d", n), func(b *testing.B) {
			r := MustNew()
			registerLiteralRoutes(r, n)

			b.ReportAllocs()
			for b.Loop() {
				r.Lookup(http.MethodGet, path)
			}
		})

		b.Run(fmt.Sprintf("scan_n%d", n), func(b *testing.B) {
			r := MustNew(WithoutStaticTable())
			registerLiteralRoutes(r, n)

			b.ReportAllocs()
			for b.Loop() {
				r.Lookup(http.MethodGet, path)
			}
		})
	}
}

func BenchmarkLookupMiss(b *testing.B) {
	r := MustNew()
	registerLiteralRoutes(r, 1000)

	b.ReportAllocs()
	for b.Loop() {
		r.Lookup(http.MethodGet, "/resources/absent")
	}
}
