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

package builtin

import (
	"github.com/jsonpp-lang/jsonpp/errors"
	"github.com/jsonpp-lang/jsonpp/tree"
)

// merge concatenates strings, concatenates arrays, or performs a
// right-biased union of objects (a later argument's field overrides an
// earlier one of the same key, keeping the earliest position it was
// first seen at). Mixing kinds is a TypeError.
func merge(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "merge", args, 1)
	if err != nil {
		return nil, err
	}

	switch vals[0].(type) {
	case tree.Str:
		s := ""
		for _, v := range vals {
			str, ok := v.(tree.Str)
			if !ok {
				return nil, errors.Newf(errors.Type, tree.Pos(call), "merge: cannot mix %s with string", v.Kind())
			}
			s += string(str)
		}
		return tree.Str(s), nil

	case tree.Arr:
		var elems []tree.Value
		for _, v := range vals {
			arr, ok := v.(tree.Arr)
			if !ok {
				return nil, errors.Newf(errors.Type, tree.Pos(call), "merge: cannot mix %s with array", v.Kind())
			}
			elems = append(elems, arr.Elems...)
		}
		return tree.Arr{Elems: elems}, nil

	case tree.Obj:
		var keys []string
		fields := map[string]tree.Value{}
		for _, v := range vals {
			obj, ok := v.(tree.Obj)
			if !ok {
				return nil, errors.Newf(errors.Type, tree.Pos(call), "merge: cannot mix %s with object", v.Kind())
			}
			for _, k := range obj.Keys {
				if _, seen := fields[k]; !seen {
					keys = append(keys, k)
				}
				fields[k] = obj.Fields[k]
			}
		}
		return tree.Obj{Keys: keys, Fields: fields}, nil

	default:
		return nil, errors.Newf(errors.Type, tree.Pos(call), "merge: expected a string, array, or object, got %s", vals[0].Kind())
	}
}
