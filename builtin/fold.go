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

// asArray forces n and requires the result to be an Array.
func asArray(ctx tree.BuiltinContext, name string, n *tree.Node) (tree.Arr, error) {
	v, err := ctx.Force(n)
	if err != nil {
		return tree.Arr{}, err
	}
	arr, ok := v.(tree.Arr)
	if !ok {
		return tree.Arr{}, errors.Newf(errors.Type, tree.Pos(n), "%s: expected an array, got %s", name, v.Kind())
	}
	return arr, nil
}

// asCallable forces n and requires the result to be a Def or Builtin.
func asCallable(ctx tree.BuiltinContext, name string, n *tree.Node) (tree.Value, error) {
	v, err := ctx.Force(n)
	if err != nil {
		return nil, err
	}
	switch v.(type) {
	case tree.Def, tree.Builtin:
		return v, nil
	default:
		return nil, errors.Newf(errors.Type, tree.Pos(n), "%s: expected a function, got %s", name, v.Kind())
	}
}

func mapFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	if len(args) != 2 {
		return nil, errors.Newf(errors.Type, pos0(args), "map: expected exactly 2 arguments (f, xs), got %d", len(args))
	}
	f, err := asCallable(ctx, "map", args[0])
	if err != nil {
		return nil, err
	}
	xs, err := asArray(ctx, "map", args[1])
	if err != nil {
		return nil, err
	}
	out := make([]tree.Value, len(xs.Elems))
	for i, e := range xs.Elems {
		v, err := ctx.Invoke(f, call, []tree.Value{e})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return tree.Arr{Elems: out}, nil
}

func filterFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	if len(args) != 2 {
		return nil, errors.Newf(errors.Type, pos0(args), "filter: expected exactly 2 arguments (f, xs), got %d", len(args))
	}
	f, err := asCallable(ctx, "filter", args[0])
	if err != nil {
		return nil, err
	}
	xs, err := asArray(ctx, "filter", args[1])
	if err != nil {
		return nil, err
	}
	var out []tree.Value
	for _, e := range xs.Elems {
		v, err := ctx.Invoke(f, call, []tree.Value{e})
		if err != nil {
			return nil, err
		}
		if tree.Truthy(v) {
			out = append(out, e)
		}
	}
	return tree.Arr{Elems: out}, nil
}

func reduceFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, errors.Newf(errors.Type, pos0(args), "reduce: expected 2 or 3 arguments (f, xs[, init]), got %d", len(args))
	}
	f, err := asCallable(ctx, "reduce", args[0])
	if err != nil {
		return nil, err
	}
	xs, err := asArray(ctx, "reduce", args[1])
	if err != nil {
		return nil, err
	}

	var acc tree.Value
	rest := xs.Elems
	if len(args) == 3 {
		acc, err = ctx.Force(args[2])
		if err != nil {
			return nil, err
		}
	} else {
		if len(xs.Elems) == 0 {
			return nil, errors.Newf(errors.Type, tree.Pos(call), "reduce: empty array requires an init value")
		}
		acc = xs.Elems[0]
		rest = xs.Elems[1:]
	}

	for _, e := range rest {
		acc, err = ctx.Invoke(f, call, []tree.Value{acc, e})
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
