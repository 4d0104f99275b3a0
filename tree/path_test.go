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
	"testing"

	"github.com/go-quicktest/qt"
)

func TestParsePathRootAnchored(t *testing.T) {
	pp, err := ParsePath("a.b[0](1)")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(pp.RootAnchored()))
	qt.Assert(t, qt.DeepEquals(pp.Steps, []Step{
		{Kind: KeyStep, Key: "a"},
		{Kind: KeyStep, Key: "b"},
		{Kind: IndexStep, Index: 0},
		{Kind: ArgStep, Index: 1},
	}))
}

func TestParsePathLeadingDots(t *testing.T) {
	pp, err := ParsePath("..a")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(pp.RootAnchored()))
	qt.Assert(t, qt.Equals(pp.Up(), 1))
	qt.Assert(t, qt.DeepEquals(pp.Steps, []Step{{Kind: KeyStep, Key: "a"}}))
}

func TestParsePathSingleDotIsSelf(t *testing.T) {
	pp, err := ParsePath(".")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(pp.Up(), 0))
	qt.Assert(t, qt.Equals(len(pp.Steps), 0))
}

func TestParsePathWildcard(t *testing.T) {
	pp, err := ParsePath("items[_]")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(pp.Steps, []Step{
		{Kind: KeyStep, Key: "items"},
		{Kind: WildcardStep},
	}))
}

func TestParsePathNegativeIndex(t *testing.T) {
	pp, err := ParsePath("[-1]")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(pp.Steps, []Step{{Kind: IndexStep, Index: -1}}))
}

func TestParsePathErrors(t *testing.T) {
	cases := []string{
		"[1",
		"[x]",
		"(x)",
		"(-1)",
		"#",
	}
	for _, c := range cases {
		if _, err := ParsePath(c); err == nil {
			t.Errorf("ParsePath(%q): expected an error, got nil", c)
		}
	}
}

func TestPathStringRendering(t *testing.T) {
	n := &Node{Path: Path{
		{Kind: KeyStep, Key: "a"},
		{Kind: IndexStep, Index: 2},
		{Kind: ArgStep, Index: 1},
	}}
	qt.Assert(t, qt.Equals(n.PathString(), "$.a[2](1)"))

	root := &Node{}
	qt.Assert(t, qt.Equals(root.PathString(), "$"))
}
