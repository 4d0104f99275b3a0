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

package serialize

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/jsonpp-lang/jsonpp/tree"
)

func TestMarshalScalars(t *testing.T) {
	cases := []struct {
		v    tree.Value
		want string
	}{
		{tree.Int(42), `42`},
		{tree.Int(-7), `-7`},
		{tree.Float(1.5), `1.5`},
		{tree.Bool(true), `true`},
		{tree.Bool(false), `false`},
		{tree.Null{}, `null`},
		{tree.Str("hi"), `"hi"`},
	}
	for _, c := range cases {
		got, err := Marshal(c.v)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(string(got), c.want))
	}
}

func TestMarshalArrayAndObject(t *testing.T) {
	v := tree.Obj{
		Keys: []string{"a", "b"},
		Fields: map[string]tree.Value{
			"a": tree.Int(1),
			"b": tree.Arr{Elems: []tree.Value{tree.Int(1), tree.Str("x")}},
		},
	}
	got, err := Marshal(v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(got), `{"a":1,"b":[1,"x"]}`))
}

func TestMarshalObjectPreservesKeyOrder(t *testing.T) {
	v := tree.Obj{
		Keys:   []string{"z", "a", "m"},
		Fields: map[string]tree.Value{"z": tree.Int(1), "a": tree.Int(2), "m": tree.Int(3)},
	}
	got, err := Marshal(v)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(got), `{"z":1,"a":2,"m":3}`))
}

func TestMarshalStringEscaping(t *testing.T) {
	got, err := Marshal(tree.Str("a\n\t\"\\\x01"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(got), "\"a\\n\\t\\\"\\\\\\u0001\""))
}

func TestMarshalUndefinedIsRejected(t *testing.T) {
	_, err := Marshal(tree.Undefined{})
	qt.Assert(t, qt.IsNotNil(err))
}

func TestMarshalFunctionValuesRejected(t *testing.T) {
	_, err := Marshal(tree.Def{})
	qt.Assert(t, qt.IsNotNil(err))

	_, err = Marshal(tree.Builtin{})
	qt.Assert(t, qt.IsNotNil(err))
}

func TestMarshalEmptyArrayAndObject(t *testing.T) {
	got, err := Marshal(tree.Arr{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(got), `[]`))

	got, err = Marshal(tree.Obj{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(got), `{}`))
}
