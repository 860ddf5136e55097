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
	"sync/atomic"
)

// HotSwap serves requests from a replaceable Router snapshot.
//
// A Router is immutable once frozen, so route reloading is modeled as
// building a complete new Router and swapping it in atomically. In-flight
// requests keep the snapshot they started with; new requests see the new
// one. There is no locking on the request path and never any in-place
// mutation visible to readers.
type HotSwap struct {
	current atomic.Pointer[Router]
}

// NewHotSwap creates a holder serving from the given router, freezing it
// first.
func NewHotSwap(r *Router) *HotSwap {
	r.Freeze()

	h := &HotSwap{}
	h.current.Store(r)

	return h
}

// Swap replaces the serving router with next (freezing it first) and
// returns the previous one, e.g. for Shutdown.
func (h *HotSwap) Swap(next *Router) *Router {
	next.Freeze()

	return h.current.Swap(next)
}

// Router returns the current serving snapshot.
func (h *HotSwap) Router() *Router {
	return h.current.Load()
}

// ServeHTTP dispatches to the current snapshot.
func (h *HotSwap) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.current.Load().ServeHTTP(w, req)
}
