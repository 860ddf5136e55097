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

// Package routefile loads declarative route manifests and applies them to a
// router.
//
// A manifest is a YAML document mapping route patterns to handler names:
//
//	routes:
//	  - method: GET
//	    path: /users/:id
//	    handler: users.show
//	  - method: GET
//	    path: /static/**path
//	    handler: static.files
//	    middleware: [cache]
//
// Handler and middleware names are bound through a Registry populated by
// the application. Patterns are compiled during validation, so a malformed
// manifest fails at load time rather than at the first request.
package routefile

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"waypost.dev/waypost"
	"waypost.dev/waypost/pattern"
)

var (
	// ErrMissingMethod indicates a manifest route without a method.
	ErrMissingMethod = errors.New("route has no method")

	// ErrMissingPath indicates a manifest route without a path.
	ErrMissingPath = errors.New("route has no path")

	// ErrMissingHandler indicates a manifest route without a handler name.
	ErrMissingHandler = errors.New("route has no handler")

	// ErrUnknownHandler indicates a handler name absent from the registry.
	ErrUnknownHandler = errors.New("unknown handler")

	// ErrUnknownMiddleware indicates a middleware name absent from the registry.
	ErrUnknownMiddleware = errors.New("unknown middleware")
)

// Manifest is a parsed route manifest.
type Manifest struct {
	Routes []Route `yaml:"routes"`
}

// Route is one declarative route entry.
type Route struct {
	Method     string   `yaml:"method"`
	Path       string   `yaml:"path"`
	Handler    string   `yaml:"handler"`
	Middleware []string `yaml:"middleware,omitempty"`
}

// Parse reads and validates a manifest. Unknown YAML fields are rejected so
// typos fail loudly.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &Manifest{}, nil
		}

		return nil, fmt.Errorf("parse route manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open route manifest: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Validate checks every route entry, including compiling its pattern.
func (m *Manifest) Validate() error {
	for i, rt := range m.Routes {
		switch {
		case rt.Method == "":
			return fmt.Errorf("route %d: %w", i, ErrMissingMethod)
		case rt.Path == "":
			return fmt.Errorf("route %d: %w", i, ErrMissingPath)
		case rt.Handler == "":
			return fmt.Errorf("route %d (%s %s): %w", i, rt.Method, rt.Path, ErrMissingHandler)
		}

		if _, err := pattern.Compile(rt.Path); err != nil {
			return fmt.Errorf("route %d: %w", i, err)
		}
	}

	return nil
}

// Registry binds the handler and middleware names used in manifests to
// implementations.
type Registry struct {
	handlers   map[string]http.Handler
	middleware map[string]waypost.Middleware
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers:   make(map[string]http.Handler),
		middleware: make(map[string]waypost.Middleware),
	}
}

// Handler registers a named handler. Returns the registry for chaining.
func (reg *Registry) Handler(name string, h http.Handler) *Registry {
	reg.handlers[name] = h

	return reg
}

// HandlerFunc registers a named handler function.
func (reg *Registry) HandlerFunc(name string, h http.HandlerFunc) *Registry {
	return reg.Handler(name, h)
}

// Middleware registers a named middleware. Returns the registry for chaining.
func (reg *Registry) Middleware(name string, mw waypost.Middleware) *Registry {
	reg.middleware[name] = mw

	return reg
}

// Apply registers every manifest route on the router, resolving handler and
// middleware names through the registry. Manifest order becomes
// registration order, so it is also lookup precedence order.
func (m *Manifest) Apply(r *waypost.Router, reg *Registry) error {
	for i, rt := range m.Routes {
		h, ok := reg.handlers[rt.Handler]
		if !ok {
			return fmt.Errorf("route %d (%s %s): %w %q", i, rt.Method, rt.Path, ErrUnknownHandler, rt.Handler)
		}

		mws := make([]waypost.Middleware, 0, len(rt.Middleware))
		for _, name := range rt.Middleware {
			mw, ok := reg.middleware[name]
			if !ok {
				return fmt.Errorf("route %d (%s %s): %w %q", i, rt.Method, rt.Path, ErrUnknownMiddleware, name)
			}
			mws = append(mws, mw)
		}

		if _, err := r.Handle(strings.ToUpper(rt.Method), rt.Path, h, mws...); err != nil {
			return fmt.Errorf("route %d: %w", i, err)
		}
	}

	return nil
}
