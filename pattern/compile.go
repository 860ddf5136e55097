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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyParamName indicates a parameter segment with no name (":").
	ErrEmptyParamName = errors.New("parameter has no name")

	// ErrDuplicateParam indicates that the same capture name appears more
	// than once in a single pattern.
	ErrDuplicateParam = errors.New("duplicate parameter name")

	// ErrUnterminatedBrace indicates an extension list opened with "{" but
	// never closed (e.g. "*.{jpg,png").
	ErrUnterminatedBrace = errors.New("unterminated extension list")

	// ErrEmptyExtensionList indicates an extension pattern with no
	// alternatives (e.g. "*." or "*.{}").
	ErrEmptyExtensionList = errors.New("empty extension list")

	// ErrEmptyExtension indicates a blank alternative inside an extension
	// list (e.g. "*.{jpg,,png}").
	ErrEmptyExtension = errors.New("empty extension alternative")
)

// Compile parses a route pattern string into a Pattern.
//
// The pattern is split on "/" with empty segments discarded, so leading,
// trailing, and duplicate slashes are insignificant: "/users/:id" and
// "users/:id/" compile identically. Each segment is classified by its
// structural prefix, first match winning:
//
//	":"  named parameter
//	"**" multi-segment wildcard (optionally named)
//	"*." filename extension pattern
//	"*"  single-segment wildcard (optionally named)
//	else literal
//
// Compilation is pure and deterministic: compiling the same string twice
// yields structurally equal patterns. The empty pattern ("" or "/")
// compiles to the empty Pattern, which matches only the empty path.
//
// Malformed patterns are rejected rather than silently degraded: an
// unterminated or empty brace list, a blank extension alternative, a bare
// ":" parameter, and a capture name used twice all return an error wrapping
// one of the sentinel errors in this package. A pattern that compiles is
// guaranteed never to match everything by accident.
func Compile(pat string) (Pattern, error) {
	segments := Split(pat)
	if len(segments) == 0 {
		return Pattern{}, nil
	}

	tokens := make(Pattern, 0, len(segments))
	seen := make(map[string]struct{}, len(segments))

	for _, seg := range segments {
		tok, err := classify(seg)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: segment %q: %w", pat, seg, err)
		}

		if tok.Name != "" {
			if _, dup := seen[tok.Name]; dup {
				return nil, fmt.Errorf("pattern %q: segment %q: %w", pat, seg, ErrDuplicateParam)
			}
			seen[tok.Name] = struct{}{}
		}

		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// MustCompile is like Compile but panics on error. Route patterns are
// application configuration fixed at startup, so a malformed pattern is a
// programming error best caught during development.
func MustCompile(pat string) Pattern {
	p, err := Compile(pat)
	if err != nil {
		panic(err)
	}

	return p
}

// classify turns one pattern segment into a token. Prefix checks are ordered
// by priority: ":" then "**" then "*." then "*", falling through to literal.
func classify(seg string) (Token, error) {
	switch {
	case strings.HasPrefix(seg, ":"):
		name := seg[1:]
		if name == "" {
			return Token{}, ErrEmptyParamName
		}

		return Token{Kind: KindParam, Name: name}, nil

	case strings.HasPrefix(seg, "**"):
		// Anonymous when nothing follows the marker.
		return Token{Kind: KindMultiWildcard, Name: seg[2:]}, nil

	case strings.HasPrefix(seg, "*."):
		exts, err := parseExtensions(seg[2:])
		if err != nil {
			return Token{}, err
		}

		return Token{Kind: KindExtension, Extensions: exts}, nil

	case strings.HasPrefix(seg, "*"):
		return Token{Kind: KindSingleWildcard, Name: seg[1:]}, nil

	default:
		return Token{Kind: KindLiteral, Text: seg}, nil
	}
}

// parseExtensions parses the suffix after "*.". A braced suffix such as
// "{jpg, png}" is split on "," with whitespace trimmed per alternative;
// anything else is a single extension. The leading dot is implied by the
// "*." marker and never stored.
func parseExtensions(suffix string) ([]string, error) {
	if suffix == "" {
		return nil, ErrEmptyExtensionList
	}

	if !strings.HasPrefix(suffix, "{") {
		return []string{suffix}, nil
	}

	if !strings.HasSuffix(suffix, "}") {
		return nil, ErrUnterminatedBrace
	}

	inner := suffix[1 : len(suffix)-1]
	if strings.TrimSpace(inner) == "" {
		return nil, ErrEmptyExtensionList
	}

	parts := strings.Split(inner, ",")
	exts := make([]string, 0, len(parts))
	for _, part := range parts {
		ext := strings.TrimSpace(part)
		if ext == "" {
			return nil, ErrEmptyExtension
		}
		exts = append(exts, ext)
	}

	return exts, nil
}
