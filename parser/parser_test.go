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

package parser

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/jsonpp-lang/jsonpp/tree"
)

func parse(t *testing.T, src string) *tree.Node {
	t.Helper()
	mod, err := ParseFile("test", ".", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	return mod.Root
}

func TestParseScalars(t *testing.T) {
	root := parse(t, `{"a": 1, "b": 1.5, "c": true, "d": false, "e": null, "f": undefined, "g": "x"}`)
	qt.Assert(t, qt.Equals(root.Kind, tree.ObjectKind))
	qt.Assert(t, qt.Equals(root.Fields["a"].Kind, tree.IntKind))
	qt.Assert(t, qt.Equals(root.Fields["a"].IntVal, int64(1)))
	qt.Assert(t, qt.Equals(root.Fields["b"].Kind, tree.FloatKind))
	qt.Assert(t, qt.Equals(root.Fields["c"].Kind, tree.BoolKind))
	qt.Assert(t, qt.IsTrue(root.Fields["c"].BoolVal))
	qt.Assert(t, qt.Equals(root.Fields["d"].Kind, tree.BoolKind))
	qt.Assert(t, qt.IsFalse(root.Fields["d"].BoolVal))
	qt.Assert(t, qt.Equals(root.Fields["e"].Kind, tree.NullKind))
	qt.Assert(t, qt.Equals(root.Fields["f"].Kind, tree.UndefinedKind))
	qt.Assert(t, qt.Equals(root.Fields["g"].StringVal, "x"))
}

func TestParseArrayPaths(t *testing.T) {
	root := parse(t, `[1, 2, 3]`)
	qt.Assert(t, qt.Equals(len(root.Elems), 3))
	qt.Assert(t, qt.DeepEquals(root.Elems[1].Path, tree.Path{{Kind: tree.IndexStep, Index: 1}}))
	qt.Assert(t, qt.Equals(root.Elems[1].Parent, root))
}

func TestParseObjectDuplicateKey(t *testing.T) {
	_, err := ParseFile("test", ".", []byte(`{"a": 1, "a": 2}`))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseCallHeadAndArgs(t *testing.T) {
	root := parse(t, `(sum 1 2 3)`)
	qt.Assert(t, qt.Equals(root.Kind, tree.CallKind))
	qt.Assert(t, qt.Equals(root.Head.Ident, "sum"))
	qt.Assert(t, qt.Equals(len(root.Args), 3))
	qt.Assert(t, qt.DeepEquals(root.Head.Path, tree.Path{{Kind: tree.ArgStep, Index: 0}}))
	qt.Assert(t, qt.DeepEquals(root.Args[1].Path, tree.Path{{Kind: tree.ArgStep, Index: 2}}))
}

func TestParseCallWithCommas(t *testing.T) {
	root := parse(t, `(sum, 1, 2,)`)
	qt.Assert(t, qt.Equals(root.Kind, tree.CallKind))
	qt.Assert(t, qt.Equals(len(root.Args), 2))
}

func TestParseEmptyCallIsError(t *testing.T) {
	_, err := ParseFile("test", ".", []byte(`()`))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseTrailingCommaInArray(t *testing.T) {
	root := parse(t, `[1, 2,]`)
	qt.Assert(t, qt.Equals(len(root.Elems), 2))
}

func TestParseNestedCallInObject(t *testing.T) {
	root := parse(t, `{"total": (sum 1 (sum 2 3))}`)
	total := root.Fields["total"]
	qt.Assert(t, qt.Equals(total.Kind, tree.CallKind))
	qt.Assert(t, qt.Equals(total.Args[1].Kind, tree.CallKind))
	qt.Assert(t, qt.DeepEquals(total.Args[1].Path, tree.Path{
		{Kind: tree.KeyStep, Key: "total"},
		{Kind: tree.ArgStep, Index: 2},
	}))
}

func TestParseUnterminatedObjectIsError(t *testing.T) {
	_, err := ParseFile("test", ".", []byte(`{"a": 1`))
	qt.Assert(t, qt.IsNotNil(err))
}
