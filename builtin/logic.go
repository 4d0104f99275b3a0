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

// ifFn is non-strict: it forces only cond and exactly one of a/b, so
// that the untaken branch's errors (e.g. a division by zero guarded by
// the condition) never surface.
func ifFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	if len(args) != 3 {
		return nil, errors.Newf(errors.Type, pos0(args), "if: expected exactly 3 arguments (cond, a, b), got %d", len(args))
	}
	cond, err := ctx.Force(args[0])
	if err != nil {
		return nil, err
	}
	if tree.Truthy(cond) {
		return ctx.Force(args[1])
	}
	return ctx.Force(args[2])
}

// equalValues implements eq's structural, cross-numeric-aware equality.
func equalValues(a, b tree.Value) bool {
	if af, aok := asFloat64(a); aok {
		if bf, bok := asFloat64(b); bok {
			return af == bf
		}
	}
	switch x := a.(type) {
	case tree.Bool:
		y, ok := b.(tree.Bool)
		return ok && x == y
	case tree.Null:
		_, ok := b.(tree.Null)
		return ok
	case tree.Undefined:
		_, ok := b.(tree.Undefined)
		return ok
	case tree.Str:
		y, ok := b.(tree.Str)
		return ok && x == y
	case tree.Arr:
		y, ok := b.(tree.Arr)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !equalValues(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case tree.Obj:
		y, ok := b.(tree.Obj)
		if !ok || len(x.Keys) != len(y.Keys) {
			return false
		}
		for _, k := range x.Keys {
			yv, ok := y.Lookup(k)
			if !ok || !equalValues(x.Fields[k], yv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func eq(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "eq", args, 2)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, errors.Newf(errors.Type, tree.Pos(call), "eq: expected exactly 2 arguments, got %d", len(vals))
	}
	return tree.Bool(equalValues(vals[0], vals[1])), nil
}

// compare implements the strict ordering used by lt/gt/lte/gte: numeric
// operands compare by value; two strings compare lexicographically.
// Anything else is a TypeError.
func compare(name string, call *tree.Node, a, b tree.Value) (int, error) {
	if af, aok := asFloat64(a); aok {
		if bf, bok := asFloat64(b); bok {
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	as, aok := a.(tree.Str)
	bs, bok := b.(tree.Str)
	if aok && bok {
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, errors.Newf(errors.Type, tree.Pos(call), "%s: operands must both be numbers or both be strings", name)
}

func comparisonBuiltin(name string, ok func(cmp int) bool) tree.BuiltinFunc {
	return func(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
		vals, err := forceAll(ctx, name, args, 2)
		if err != nil {
			return nil, err
		}
		if len(vals) != 2 {
			return nil, errors.Newf(errors.Type, tree.Pos(call), "%s: expected exactly 2 arguments, got %d", name, len(vals))
		}
		cmp, err := compare(name, call, vals[0], vals[1])
		if err != nil {
			return nil, err
		}
		return tree.Bool(ok(cmp)), nil
	}
}

var (
	lt  = comparisonBuiltin("lt", func(cmp int) bool { return cmp < 0 })
	gt  = comparisonBuiltin("gt", func(cmp int) bool { return cmp > 0 })
	lte = comparisonBuiltin("lte", func(cmp int) bool { return cmp <= 0 })
	gte = comparisonBuiltin("gte", func(cmp int) bool { return cmp >= 0 })
)
