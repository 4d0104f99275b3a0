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
	"math"

	"github.com/jsonpp-lang/jsonpp/errors"
	"github.com/jsonpp-lang/jsonpp/tree"
)

// foldNumeric folds intOp across vals (int64, reporting overflow) when
// every operand is an Int, or widens to floatOp the moment any operand
// is a Float. vals must have at least one element.
func foldNumeric(name string, call *tree.Node, vals []tree.Value,
	intOp func(a, b int64) (int64, bool),
	floatOp func(a, b float64) float64) (tree.Value, error) {

	allInt := true
	for _, v := range vals {
		if _, ok := v.(tree.Int); !ok {
			allInt = false
			break
		}
	}

	if allInt {
		acc, _ := isInt(vals[0])
		for _, v := range vals[1:] {
			n, _ := isInt(v)
			r, ok := intOp(acc, n)
			if !ok {
				return nil, errors.Newf(errors.Math, tree.Pos(call), "%s: integer overflow", name)
			}
			acc = r
		}
		return tree.Int(acc), nil
	}

	var acc float64
	if len(vals) > 0 {
		f, ok := asFloat64(vals[0])
		if !ok {
			return nil, numTypeErr(name, call, vals[0])
		}
		acc = f
	}
	for i, v := range vals[1:] {
		f, ok := asFloat64(v)
		if !ok {
			return nil, numTypeErr(name, call, vals[i+1])
		}
		acc = floatOp(acc, f)
	}
	if math.IsNaN(acc) || math.IsInf(acc, 0) {
		return nil, errors.Newf(errors.Math, tree.Pos(call), "%s: result is not finite", name)
	}
	return tree.Float(acc), nil
}

func sum(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "sum", args, 1)
	if err != nil {
		return nil, err
	}
	return foldNumeric("sum", call, vals,
		func(a, b int64) (int64, bool) {
			if addOverflows(a, b) {
				return 0, false
			}
			return a + b, true
		},
		func(a, b float64) float64 { return a + b })
}

func sub(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "sub", args, 1)
	if err != nil {
		return nil, err
	}
	if len(vals) == 1 {
		// unary negation
		switch x := vals[0].(type) {
		case tree.Int:
			if x == math.MinInt64 {
				return nil, errors.Newf(errors.Math, tree.Pos(call), "sub: integer overflow")
			}
			return -x, nil
		case tree.Float:
			return -x, nil
		default:
			return nil, numTypeErr("sub", call, vals[0])
		}
	}
	return foldNumeric("sub", call, vals,
		func(a, b int64) (int64, bool) {
			if subOverflows(a, b) {
				return 0, false
			}
			return a - b, true
		},
		func(a, b float64) float64 { return a - b })
}

func mul(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "mul", args, 1)
	if err != nil {
		return nil, err
	}
	return foldNumeric("mul", call, vals,
		func(a, b int64) (int64, bool) {
			if mulOverflows(a, b) {
				return 0, false
			}
			return a * b, true
		},
		func(a, b float64) float64 { return a * b })
}

// div always yields Float, unless both operands are Int and the first
// is an exact multiple of the second, in which case Int.
func div(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "div", args, 2)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, errors.Newf(errors.Type, tree.Pos(call), "div: expected exactly 2 arguments, got %d", len(vals))
	}
	ai, aIsInt := isInt(vals[0])
	bi, bIsInt := isInt(vals[1])
	if aIsInt && bIsInt {
		if bi == 0 {
			return nil, errors.Newf(errors.Math, tree.Pos(call), "div: division by zero")
		}
		if ai%bi == 0 {
			return tree.Int(ai / bi), nil
		}
		return tree.Float(float64(ai) / float64(bi)), nil
	}
	af, ok := asFloat64(vals[0])
	if !ok {
		return nil, numTypeErr("div", call, vals[0])
	}
	bf, ok := asFloat64(vals[1])
	if !ok {
		return nil, numTypeErr("div", call, vals[1])
	}
	if bf == 0 {
		return nil, errors.Newf(errors.Math, tree.Pos(call), "div: division by zero")
	}
	r := af / bf
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, errors.Newf(errors.Math, tree.Pos(call), "div: result is not finite")
	}
	return tree.Float(r), nil
}

func pow(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "pow", args, 2)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, errors.Newf(errors.Type, tree.Pos(call), "pow: expected exactly 2 arguments, got %d", len(vals))
	}
	base, bok := isInt(vals[0])
	exp, eok := isInt(vals[1])
	if bok && eok && exp >= 0 {
		acc := int64(1)
		overflow := false
		for i := int64(0); i < exp; i++ {
			if mulOverflows(acc, base) {
				overflow = true
				break
			}
			acc *= base
		}
		if !overflow {
			return tree.Int(acc), nil
		}
	}
	bf, ok := asFloat64(vals[0])
	if !ok {
		return nil, numTypeErr("pow", call, vals[0])
	}
	ef, ok := asFloat64(vals[1])
	if !ok {
		return nil, numTypeErr("pow", call, vals[1])
	}
	r := math.Pow(bf, ef)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, errors.Newf(errors.Math, tree.Pos(call), "pow: result is not finite")
	}
	return tree.Float(r), nil
}

func logFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "log", args, 2)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, errors.Newf(errors.Type, tree.Pos(call), "log: expected exactly 2 arguments (x, base), got %d", len(vals))
	}
	x, ok := asFloat64(vals[0])
	if !ok {
		return nil, numTypeErr("log", call, vals[0])
	}
	base, ok := asFloat64(vals[1])
	if !ok {
		return nil, numTypeErr("log", call, vals[1])
	}
	if base <= 0 || base == 1 {
		return nil, errors.Newf(errors.Math, tree.Pos(call), "log: base must be positive and not 1")
	}
	if x <= 0 {
		return nil, errors.Newf(errors.Math, tree.Pos(call), "log: operand must be positive")
	}
	r := math.Log(x) / math.Log(base)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, errors.Newf(errors.Math, tree.Pos(call), "log: result is not finite")
	}
	return tree.Float(r), nil
}

func mod(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "mod", args, 2)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2 {
		return nil, errors.Newf(errors.Type, tree.Pos(call), "mod: expected exactly 2 arguments, got %d", len(vals))
	}
	ai, aIsInt := isInt(vals[0])
	bi, bIsInt := isInt(vals[1])
	if aIsInt && bIsInt {
		if bi == 0 {
			return nil, errors.Newf(errors.Math, tree.Pos(call), "mod: division by zero")
		}
		return tree.Int(ai % bi), nil
	}
	af, ok := asFloat64(vals[0])
	if !ok {
		return nil, numTypeErr("mod", call, vals[0])
	}
	bf, ok := asFloat64(vals[1])
	if !ok {
		return nil, numTypeErr("mod", call, vals[1])
	}
	if bf == 0 {
		return nil, errors.Newf(errors.Math, tree.Pos(call), "mod: division by zero")
	}
	return tree.Float(math.Mod(af, bf)), nil
}

func max_(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	return extremum("max", ctx, call, args, func(cmp int) bool { return cmp > 0 })
}

func min_(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	return extremum("min", ctx, call, args, func(cmp int) bool { return cmp < 0 })
}

// extremum folds vals keeping whichever operand wins under better(cmp),
// where cmp is sign(candidate - current best). All-Int input yields the
// winning Int; if any operand is a Float, the winner is returned as a
// Float, even when it was an Int operand.
func extremum(name string, ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node, better func(cmp int) bool) (tree.Value, error) {
	vals, err := forceAll(ctx, name, args, 1)
	if err != nil {
		return nil, err
	}
	allInt := true
	best := vals[0]
	bestF, ok := asFloat64(best)
	if !ok {
		return nil, numTypeErr(name, call, best)
	}
	if _, ok := best.(tree.Int); !ok {
		allInt = false
	}
	for _, v := range vals[1:] {
		f, ok := asFloat64(v)
		if !ok {
			return nil, numTypeErr(name, call, v)
		}
		if _, ok := v.(tree.Int); !ok {
			allInt = false
		}
		cmp := 0
		switch {
		case f < bestF:
			cmp = -1
		case f > bestF:
			cmp = 1
		}
		if better(cmp) {
			best, bestF = v, f
		}
	}
	if allInt {
		return best, nil
	}
	return tree.Float(bestF), nil
}
