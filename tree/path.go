// Copyright 2026 The JPP Authors
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

package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsedPath is the result of parsing a ref path string: a count
// of leading dots (0 means "anchor at the primary root"; N>=1 means
// "anchor at the ref call node, then climb N-1 more parents") plus the
// remaining steps to apply in order.
type ParsedPath struct {
	LeadingDots int
	Steps       []Step
}

// RootAnchored reports whether the path has no leading dots, in which
// case it is resolved against the primary root rather than the ref call.
func (p ParsedPath) RootAnchored() bool { return p.LeadingDots == 0 }

// Up returns the number of parent links to climb from the ref call node
// to find the anchor, valid only when !RootAnchored().
func (p ParsedPath) Up() int { return p.LeadingDots - 1 }

// ParsePath parses a ref path string per the grammar:
//
//	path   := step*
//	step   := '.' | '[' sint ']' | '(' uint ')' | ident
//
// A run of '.' at the very start of the string counts as parent-anchor
// shifts; once any other step has been consumed, further '.' characters
// are pure (optional) separators between steps and are skipped.
func ParsePath(s string) (ParsedPath, error) {
	i := 0
	leading := 0
	for i < len(s) && s[i] == '.' {
		leading++
		i++
	}

	var steps []Step
	for i < len(s) {
		if s[i] == '.' {
			i++ // separator between steps, ignored
			continue
		}
		step, next, err := parseStep(s, i)
		if err != nil {
			return ParsedPath{}, err
		}
		steps = append(steps, step)
		i = next
	}

	return ParsedPath{LeadingDots: leading, Steps: steps}, nil
}

func parseStep(s string, i int) (Step, int, error) {
	switch s[i] {
	case '[':
		close := strings.IndexByte(s[i:], ']')
		if close < 0 {
			return Step{}, 0, fmt.Errorf("unterminated '[' in path %q", s)
		}
		inner := s[i+1 : i+close]
		if inner == "_" {
			return Step{Kind: WildcardStep}, i + close + 1, nil
		}
		n, err := strconv.Atoi(inner)
		if err != nil {
			return Step{}, 0, fmt.Errorf("invalid array index %q in path %q", inner, s)
		}
		return Step{Kind: IndexStep, Index: n}, i + close + 1, nil

	case '(':
		close := strings.IndexByte(s[i:], ')')
		if close < 0 {
			return Step{}, 0, fmt.Errorf("unterminated '(' in path %q", s)
		}
		inner := s[i+1 : i+close]
		n, err := strconv.Atoi(inner)
		if err != nil || n < 0 {
			return Step{}, 0, fmt.Errorf("invalid call-arg index %q in path %q", inner, s)
		}
		return Step{Kind: ArgStep, Index: n}, i + close + 1, nil

	default:
		j := i
		for j < len(s) && (s[j] == '_' || 'a' <= s[j] && s[j] <= 'z' || 'A' <= s[j] && s[j] <= 'Z' || '0' <= s[j] && s[j] <= '9') {
			j++
		}
		if j == i {
			return Step{}, 0, fmt.Errorf("unexpected character %q in path %q", s[i], s)
		}
		return Step{Kind: KeyStep, Key: s[i:j]}, j, nil
	}
}
