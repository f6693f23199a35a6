// Copyright 2026 The Authors (see AUTHORS file)
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

// Package glob matches repository relative paths against shell style
// patterns.
package glob

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var _ Matcher = (*Doublestar)(nil)

// Options control how a pattern is matched against a path.
type Options struct {
	// MatchBase also matches a pattern that contains no slash against the last
	// segment of the path.
	MatchBase bool

	// Dot allows wildcards to match path segments that start with a period.
	// When false, a hidden segment is only matched by a pattern segment that
	// itself starts with a literal period.
	Dot bool
}

// Matcher matches a single pattern against a single path.
type Matcher interface {
	Match(pattern, name string, opts *Options) bool
}

// Doublestar is the default Matcher. Patterns support "**" to span
// directories.
type Doublestar struct{}

// Match reports whether name matches pattern. Malformed patterns never match.
func (d *Doublestar) Match(pattern, name string, opts *Options) bool {
	if opts == nil {
		opts = &Options{}
	}

	if match(pattern, name, opts.Dot) {
		return true
	}

	if opts.MatchBase && !strings.Contains(pattern, "/") {
		return match(pattern, path.Base(name), opts.Dot)
	}
	return false
}

func match(pattern, name string, dot bool) bool {
	if dot {
		ok, err := doublestar.Match(pattern, name)
		return err == nil && ok
	}

	if !doublestar.ValidatePattern(pattern) {
		return false
	}

	nameSegs := strings.Split(name, "/")
	for _, alt := range expandBraces(pattern) {
		if matchSegments(strings.Split(alt, "/"), nameSegs) {
			return true
		}
	}
	return false
}

// matchSegments matches pattern segments against name segments by position.
// A "**" segment consumes zero or more name segments, none of them hidden. Any
// other segment matches exactly one name segment, and a hidden name segment
// only when the pattern segment starts with a literal period.
func matchSegments(pattern, name []string) bool {
	if len(pattern) == 0 {
		return len(name) == 0
	}

	if pattern[0] == "**" {
		if matchSegments(pattern[1:], name) {
			return true
		}
		for i, seg := range name {
			if isHidden(seg) {
				return false
			}
			if matchSegments(pattern[1:], name[i+1:]) {
				return true
			}
		}
		return false
	}

	if len(name) == 0 {
		return false
	}
	if isHidden(name[0]) && !strings.HasPrefix(pattern[0], ".") {
		return false
	}
	if ok, err := doublestar.Match(pattern[0], name[0]); err != nil || !ok {
		return false
	}
	return matchSegments(pattern[1:], name[1:])
}

func isHidden(seg string) bool {
	return strings.HasPrefix(seg, ".")
}

// expandBraces rewrites a pattern containing {a,b} alternations into the
// list of patterns without them, so alternatives that contain a slash can be
// split into segments.
func expandBraces(pattern string) []string {
	open, closing := -1, -1
	depth := 0
	var commas []int

scan:
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '{':
			if depth == 0 {
				open = i
			}
			depth++
		case ',':
			if depth == 1 {
				commas = append(commas, i)
			}
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				closing = i
				break scan
			}
		}
	}

	if open < 0 || closing < 0 {
		return []string{pattern}
	}

	prefix, suffix := pattern[:open], pattern[closing+1:]
	bounds := append(append([]int{open}, commas...), closing)

	var out []string
	for i := 0; i < len(bounds)-1; i++ {
		alt := pattern[bounds[i]+1 : bounds[i+1]]
		out = append(out, expandBraces(prefix+alt+suffix)...)
	}
	return out
}

// MatchAny reports whether pattern matches at least one of names. It stops at
// the first match.
func MatchAny(m Matcher, pattern string, names []string, opts *Options) bool {
	for _, name := range names {
		if m.Match(pattern, name, opts) {
			return true
		}
	}
	return false
}

// Validate returns an error if pattern is malformed.
func Validate(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("glob pattern cannot be empty")
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return nil
}
