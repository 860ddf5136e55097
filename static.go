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

import "waypost.dev/waypost/pattern"

// buildStaticTables builds the per-method literal fast path.
//
// For every fully-literal route, the canonical pattern string is also the
// one path it can match. The table entry for that path stores whatever the
// ordered scan resolves it to - which is the literal route itself unless an
// earlier-registered route (literal or dynamic) also matches the path. The
// table therefore caches the authoritative answer rather than shortcutting
// past it: a hit can never disagree with the first-registered-wins
// contract, and the fast path stays a pure performance refactor.
//
// Shadowed literal routes are reported through diagnostics here, since this
// is the one place the shadowing is computed anyway.
//
// Called under r.mu during freeze, before any concurrent reads exist.
func (r *Router) buildStaticTables() {
	r.static = make(map[string]map[string]staticEntry, len(r.byMethod))
	r.blooms = make(map[string]*bloomFilter, len(r.byMethod))

	for method, routes := range r.byMethod {
		var literals []*Route
		for _, rt := range routes {
			if rt.tokens.IsLiteral() {
				literals = append(literals, rt)
			}
		}
		if len(literals) == 0 {
			continue
		}

		// Auto-size the bloom filter unless the user pinned a size.
		size := r.bloomFilterSize
		if size == defaultBloomFilterSize {
			size = optimalBloomSize(len(literals))
		}

		table := make(map[string]staticEntry, len(literals))
		bloom := newBloomFilter(size, r.bloomHashFunctions)

		for _, rt := range literals {
			key := rt.Pattern() // canonical path for a literal route

			if _, dup := table[key]; !dup {
				winner, ok := r.scanLookup(method, pattern.Split(key))
				if !ok {
					// Unreachable: the route itself matches its own path.
					continue
				}
				table[key] = staticEntry{route: winner.Route, params: winner.Params}
				bloom.add(key)
			}

			if table[key].route != rt {
				r.emitDiagnostic(DiagRouteShadowed, "literal route is unreachable", map[string]any{
					"method":     method,
					"pattern":    rt.Pattern(),
					"matched_by": table[key].route.Pattern(),
				})
			}
		}

		r.static[method] = table
		r.blooms[method] = bloom
	}
}
