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

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		matched bool
		params  map[string]string
	}{
		// Root and literals
		{"root matches empty", "/", "/", true, nil},
		{"root rejects segment", "/", "/x", false, nil},
		{"literal match", "/users", "/users", true, nil},
		{"literal mismatch", "/users", "/posts", false, nil},
		{"literal case sensitive", "/Users", "/users", false, nil},
		{"path too long", "/users", "/users/42", false, nil},
		{"path too short", "/users/list", "/users", false, nil},
		{"redundant slashes in path", "/users/42", "//users//42/", true, nil},

		// Params
		{"single param", "/users/:id", "/users/42", true, map[string]string{"id": "42"}},
		{"param binds literal-looking value", "/users/:id", "/users/admin", true, map[string]string{"id": "admin"}},
		{"two params", "/users/:id/posts/:pid", "/users/1/posts/2", true, map[string]string{"id": "1", "pid": "2"}},
		{"param needs a segment", "/users/:id", "/users", false, nil},

		// Single wildcards
		{"anonymous wildcard", "/files/*", "/files/a", true, map[string]string{}},
		{"anonymous wildcard needs segment", "/files/*", "/files", false, nil},
		{"named wildcard", "/files/*name", "/files/a", true, map[string]string{"name": "a"}},
		{"wildcard consumes one segment only", "/files/*", "/files/a/b", false, nil},

		// Multi wildcards
		{"trailing multi absorbs rest", "/files/**", "/files/a/b/c", true, map[string]string{}},
		{"trailing multi absorbs nothing", "/files/**", "/files", true, map[string]string{}},
		{"trailing named multi", "/files/**path", "/files/a/b", true, map[string]string{"path": "a/b"}},
		{"trailing named multi empty capture", "/files/**path", "/files", true, map[string]string{"path": ""}},
		{"inner multi", "/a/**/b", "/a/x/y/b", true, map[string]string{}},
		{"inner multi zero capture", "/a/**/b", "/a/b", true, map[string]string{}},
		{"inner named multi", "/a/**mid/b", "/a/x/y/b", true, map[string]string{"mid": "x/y"}},
		{"inner multi no terminator", "/a/**/b", "/a/x/y", false, nil},
		{"double multi", "/a/**x/b/**y", "/a/1/b/2/3", true, map[string]string{"x": "1", "y": "2/3"}},

		// Extensions
		{"extension match", "/img/*.jpg", "/img/photo.jpg", true, nil},
		{"extension mismatch", "/img/*.jpg", "/img/photo.png", false, nil},
		{"extension alternation first", "/img/*.{jpg,png}", "/img/photo.jpg", true, nil},
		{"extension alternation second", "/img/*.{jpg,png}", "/img/photo.png", true, nil},
		{"extension alternation miss", "/img/*.{jpg,png}", "/img/photo.gif", false, nil},
		{"extension needs dot", "/img/*.jpg", "/img/jpg", false, nil},
		{"extension compound", "/dl/*.tar.gz", "/dl/build.tar.gz", true, nil},
		{"extension case sensitive", "/img/*.jpg", "/img/photo.JPG", false, nil},

		// Multi wildcard followed by extension (the lazy-growth case)
		{"multi then extension", "/files/**/*.{jpg,png}", "/files/a/b/c/photo.jpg", true, nil},
		{"multi then extension zero capture", "/files/**/*.png", "/files/photo.png", true, nil},
		{"multi then extension miss", "/files/**/*.jpg", "/files/a/b/photo.gif", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustCompile(tt.pattern)
			params, ok := Match(p, Split(tt.path))

			if !tt.matched {
				assert.False(t, ok)
				assert.Nil(t, params)

				return
			}

			require.True(t, ok, "expected %q to match %q", tt.pattern, tt.path)
			if tt.params != nil {
				assert.Equal(t, tt.params, params.Map())
			}
		})
	}
}

// TestMatchLazyCaptureGrowth pins the lazy policy: the multi wildcard takes
// the smallest capture that lets the remainder match, not the largest.
func TestMatchLazyCaptureGrowth(t *testing.T) {
	// Both "x" and "x/b" would satisfy "**mid" if matching were greedy,
	// because the path repeats the terminator segment. Lazy matching stops
	// at the first workable capture.
	p := MustCompile("/a/**mid/b/**tail")
	params, ok := Match(p, Split("/a/x/b/y/b"))
	require.True(t, ok)
	assert.Equal(t, "x", params.Value("mid"))
	assert.Equal(t, "y/b", params.Value("tail"))
}

// TestMatchBindingOrder verifies that bindings preserve pattern order.
func TestMatchBindingOrder(t *testing.T) {
	p := MustCompile("/:zulu/:alpha/**mike")
	params, ok := Match(p, Split("/1/2/3/4"))
	require.True(t, ok)

	require.Len(t, params, 3)
	assert.Equal(t, Binding{Name: "zulu", Value: "1"}, params[0])
	assert.Equal(t, Binding{Name: "alpha", Value: "2"}, params[1])
	assert.Equal(t, Binding{Name: "mike", Value: "3/4"}, params[2])
}

// TestMatchEmptyCaptureNotExposed verifies anonymous wildcards never appear
// in the binding list.
func TestMatchAnonymousNotExposed(t *testing.T) {
	p := MustCompile("/a/*/b/**")
	params, ok := Match(p, Split("/a/x/b/y/z"))
	require.True(t, ok)
	assert.Empty(t, params)
	assert.NotNil(t, params)
}

func TestMatchPath(t *testing.T) {
	p := MustCompile("/users/:id")
	params, ok := MatchPath(p, "/users/42")
	require.True(t, ok)
	assert.Equal(t, "42", params.Value("id"))
}

func TestParamsAccessors(t *testing.T) {
	params := Params{{Name: "id", Value: "42"}, {Name: "rest", Value: ""}}

	v, ok := params.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "42", v)

	v, ok = params.Get("rest")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = params.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, params.Value("missing"))
}

func BenchmarkMatchStatic(b *testing.B) {
	p := MustCompile("/api/v1/users")
	segs := Split("/api/v1/users")

	b.ReportAllocs()
	for b.Loop() {
		Match(p, segs)
	}
}

func BenchmarkMatchBacktracking(b *testing.B) {
	p := MustCompile("/files/**/*.{jpg,png}")
	segs := Split("/files/a/b/c/d/e/photo.png")

	b.ReportAllocs()
	for b.Loop() {
		Match(p, segs)
	}
}
