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

// Split breaks a request path into its non-empty segments. Leading,
// trailing, and duplicate slashes are collapsed, so Split("/a//b///") and
// Split("/a/b") both yield ["a", "b"]. The root path ("/" or "") yields nil.
//
// Segments are sliced from the input string; no per-segment copies are made.
func Split(path string) []string {
	// Count segments first so the result is allocated exactly once.
	// Paths are hot-path input; strings.Split would allocate for the
	// empty segments we immediately discard.
	n := 0
	inSegment := false
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			inSegment = false
		} else if !inSegment {
			inSegment = true
			n++
		}
	}

	if n == 0 {
		return nil
	}

	segments := make([]string, 0, n)
	start := -1
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			if start >= 0 {
				segments = append(segments, path[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		segments = append(segments, path[start:])
	}

	return segments
}
