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

// Package pattern compiles route pattern strings into token sequences and
// matches request paths against them.
//
// # Grammar
//
// A pattern is a "/"-separated list of segments. Each segment is one of:
//
//	segment          literal, exact match
//	:name            named single-segment capture
//	*                anonymous single-segment wildcard
//	*name            named single-segment wildcard
//	**               anonymous multi-segment capture (lazy)
//	**name           named multi-segment capture (lazy)
//	*.ext            single segment ending in ".ext"
//	*.{ext1,ext2}    single segment ending in any listed extension
//
// Leading, trailing, and duplicate slashes are insignificant in both
// patterns and paths. All matching is case-sensitive.
//
// # Matching
//
// Compile runs once per route at registration time; Split and Match run per
// request. All three are pure functions over immutable inputs, so they are
// safe for unsynchronized concurrent use and never block.
//
// The multi-segment wildcard is lazy: it captures as few segments as
// possible, growing its capture only when the rest of the pattern cannot
// match. "/files/**/*.{jpg,png}" therefore matches
// "/files/a/b/photo.jpg" by trying captures "", "a", "a/b" in that order.
// A pattern ending in "**" always matches, absorbing the whole remainder.
//
// # Errors
//
// Malformed patterns (empty parameter names, unterminated or empty brace
// lists, duplicate capture names) are rejected by Compile. There is no
// degraded mode: a pattern either compiles to exactly the semantics written
// or registration fails.
package pattern
