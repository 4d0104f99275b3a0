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

// rangeFn returns [a, b) as an Array of Int.
func rangeFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "range", args, 2)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, errors.Newf(errors.Type, tree.Pos(call), "range: expected exactly 2 arguments, got %d", len(vals))
	}
	a, aok := isInt(vals[0])
	b, bok := isInt(vals[1])
	if !aok || !bok {
		return nil, errors.Newf(errors.Type, tree.Pos(call), "range: both bounds must be int")
	}
	var elems []tree.Value
	for i := a; i < b; i++ {
		elems = append(elems, tree.Int(i))
	}
	return tree.Arr{Elems: elems}, nil
}
