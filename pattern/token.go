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

// Kind identifies the variant of a Token. The set is closed: every compiled
// pattern segment is exactly one of these five kinds.
type Kind uint8

const (
	// KindLiteral matches a path segment by exact, case-sensitive equality.
	KindLiteral Kind = iota

	// KindParam matches any single non-empty path segment and binds it to
	// the token's Name.
	KindParam

	// KindSingleWildcard matches exactly one path segment. A named single
	// wildcard ("*name") binds the segment; an anonymous one ("*") discards it.
	KindSingleWildcard

	// KindMultiWildcard matches a contiguous run of zero or more path
	// segments. Matching is lazy: the shortest capture that allows the rest
	// of the pattern to match wins. A named multi wildcard ("**name") binds
	// the captured segments joined with "/".
	KindMultiWildcard

	// KindExtension matches one path segment whose value ends with "." plus
	// one of the token's Extensions.
	KindExtension
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindParam:
		return "param"
	case KindSingleWildcard:
		return "wildcard"
	case KindMultiWildcard:
		return "multi-wildcard"
	case KindExtension:
		return "extension"
	default:
		return "unknown"
	}
}

// Token is one compiled unit of a route pattern. Tokens are plain values;
// the meaningful fields depend on Kind:
//
//   - KindLiteral: Text holds the literal segment.
//   - KindParam: Name holds the parameter name.
//   - KindSingleWildcard, KindMultiWildcard: Name holds the capture name,
//     empty for anonymous wildcards.
//   - KindExtension: Extensions holds the ordered suffix alternatives,
//     stored without the leading dot.
type Token struct {
	Kind       Kind
	Text       string
	Name       string
	Extensions []string
}

// String renders the token in route pattern syntax. Compile(p.String())
// yields a pattern structurally equal to the original for every valid input.
func (t Token) String() string {
	switch t.Kind {
	case KindLiteral:
		return t.Text
	case KindParam:
		return ":" + t.Name
	case KindSingleWildcard:
		return "*" + t.Name
	case KindMultiWildcard:
		return "**" + t.Name
	case KindExtension:
		if len(t.Extensions) == 1 {
			return "*." + t.Extensions[0]
		}
		return "*.{" + strings.Join(t.Extensions, ",") + "}"
	default:
		return ""
	}
}

// equal reports structural equality of two tokens.
func (t Token) equal(other Token) bool {
	if t.Kind != other.Kind || t.Text != other.Text || t.Name != other.Name {
		return false
	}
	if len(t.Extensions) != len(other.Extensions) {
		return false
	}
	for i := range t.Extensions {
		if t.Extensions[i] != other.Extensions[i] {
			return false
		}
	}

	return true
}

// matchesSegment reports whether a single-segment token accepts the given
// non-empty path segment. Multi wildcards are handled by the matcher, not here.
func (t Token) matchesSegment(segment string) bool {
	switch t.Kind {
	case KindLiteral:
		return segment == t.Text
	case KindParam, KindSingleWildcard:
		return true
	case KindExtension:
		for _, ext := range t.Extensions {
			if strings.HasSuffix(segment, "."+ext) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// Pattern is an ordered sequence of tokens compiled from a route pattern
// string. Patterns are immutable after compilation and safe for concurrent
// use. Equality is structural: two patterns with the same token sequence
// have identical matching semantics.
type Pattern []Token

// String renders the pattern in canonical route syntax. The empty pattern
// renders as "/".
func (p Pattern) String() string {
	if len(p) == 0 {
		return "/"
	}

	var b strings.Builder
	for _, t := range p {
		b.WriteByte('/')
		b.WriteString(t.String())
	}

	return b.String()
}

// Equal reports structural equality of two patterns.
func (p Pattern) Equal(other Pattern) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !p[i].equal(other[i]) {
			return false
		}
	}

	return true
}

// ParamNames returns the capture names bound by the pattern, in order of
// appearance. Anonymous wildcards contribute nothing.
func (p Pattern) ParamNames() []string {
	var names []string
	for _, t := range p {
		switch t.Kind {
		case KindParam, KindSingleWildcard, KindMultiWildcard:
			if t.Name != "" {
				names = append(names, t.Name)
			}
		}
	}

	return names
}

// HasMultiWildcard reports whether the pattern contains a multi-segment
// wildcard. Patterns without one match a fixed segment count.
func (p Pattern) HasMultiWildcard() bool {
	for _, t := range p {
		if t.Kind == KindMultiWildcard {
			return true
		}
	}

	return false
}

// IsLiteral reports whether every token in the pattern is a literal.
// Literal patterns match exactly one path.
func (p Pattern) IsLiteral() bool {
	for _, t := range p {
		if t.Kind != KindLiteral {
			return false
		}
	}

	return true
}
