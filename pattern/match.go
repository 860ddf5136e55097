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

import "strings"

// Binding is one name/value pair extracted from a matched path.
type Binding struct {
	Name  string
	Value string
}

// Params is the ordered list of bindings produced by a match. Order follows
// the appearance of captures in the pattern, not the alphabet.
type Params []Binding

// Get returns the value bound to name and whether it exists.
func (p Params) Get(name string) (string, bool) {
	for _, b := range p {
		if b.Name == name {
			return b.Value, true
		}
	}

	return "", false
}

// Value returns the value bound to name, or "" when absent.
func (p Params) Value(name string) string {
	v, _ := p.Get(name)

	return v
}

// Map returns the bindings as a map. Intended for tests and diagnostics;
// the hot path should index Params directly to avoid the allocation.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, b := range p {
		m[b.Name] = b.Value
	}

	return m
}

// Match tests a compiled pattern against pre-split path segments and
// extracts parameter bindings. It reports (bindings, true) on a match and
// (nil, false) otherwise. A successful match with no captures returns an
// empty, non-nil Params.
//
// Matching is a recursive descent over (remaining tokens, remaining
// segments). Single-segment tokens consume exactly one token and one
// segment. The multi-segment wildcard is the only construct that
// backtracks, and it is lazy: the rest of the pattern is first tried with
// the wildcard capturing zero segments, then one, then two, growing the
// capture only after downstream failure. A trailing multi wildcard absorbs
// the whole remainder without searching. The search branches once per multi
// wildcard, so cost is bounded by O(len(tokens) * len(segments)) per such
// token rather than exponential.
//
// The pattern and segments are read-only; Match is pure and safe for
// concurrent use.
func Match(p Pattern, segments []string) (Params, bool) {
	params, ok := matchTokens(p, segments, make(Params, 0, len(p)))
	if !ok {
		return nil, false
	}

	return params, true
}

// MatchPath is a convenience wrapper that splits path and calls Match.
func MatchPath(p Pattern, path string) (Params, bool) {
	return Match(p, Split(path))
}

func matchTokens(tokens Pattern, segments []string, params Params) (Params, bool) {
	// Success requires simultaneous exhaustion of tokens and segments.
	if len(tokens) == 0 {
		return params, len(segments) == 0
	}

	t := tokens[0]

	if t.Kind == KindMultiWildcard {
		return matchMulti(t, tokens[1:], segments, params)
	}

	// Every other token consumes exactly one segment.
	if len(segments) == 0 || !t.matchesSegment(segments[0]) {
		return nil, false
	}

	if (t.Kind == KindParam || t.Kind == KindSingleWildcard) && t.Name != "" {
		params = append(params, Binding{Name: t.Name, Value: segments[0]})
	}

	return matchTokens(tokens[1:], segments[1:], params)
}

// matchMulti handles one multi-segment wildcard with lazy backtracking.
func matchMulti(t Token, rest Pattern, segments []string, params Params) (Params, bool) {
	// Trailing wildcard: unconditionally absorb the remainder, including
	// the zero-segment remainder.
	if len(rest) == 0 {
		if t.Name != "" {
			params = append(params, Binding{Name: t.Name, Value: strings.Join(segments, "/")})
		}

		return params, true
	}

	// Lazy search: try the shortest capture first and grow one segment at a
	// time. The zero-segment capture is a legal outcome ("/a/**/b" matches
	// "/a/b").
	for take := 0; take <= len(segments); take++ {
		branch := params
		if t.Name != "" {
			// Cap the base slice so sibling branches never share the
			// appended element's backing array.
			branch = append(params[:len(params):len(params)],
				Binding{Name: t.Name, Value: strings.Join(segments[:take], "/")})
		}

		if out, ok := matchTokens(rest, segments[take:], branch); ok {
			return out, true
		}
	}

	return nil, false
}
