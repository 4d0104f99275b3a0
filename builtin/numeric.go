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
	"github.com/jsonpp-lang/jsonpp/token"
	"github.com/jsonpp-lang/jsonpp/tree"
)

// asFloat64 widens any numeric Value to float64 for a uniform pass
// through math functions; ok is false for non-numeric operands.
func asFloat64(v tree.Value) (float64, bool) {
	switch x := v.(type) {
	case tree.Int:
		return float64(x), true
	case tree.Float:
		return float64(x), true
	}
	return 0, false
}

// isInt reports whether v is an Int.
func isInt(v tree.Value) (int64, bool) {
	if x, ok := v.(tree.Int); ok {
		return int64(x), true
	}
	return 0, false
}

// pos0 returns the position of the first argument, or the zero Pos if
// there are none, for arity errors raised before any arg is forced.
func pos0(args []*tree.Node) token.Pos {
	if len(args) == 0 {
		return token.Pos{}
	}
	return tree.Pos(args[0])
}

// forceAll forces every arg in order, requiring at least min of them.
func forceAll(ctx tree.BuiltinContext, name string, args []*tree.Node, min int) ([]tree.Value, error) {
	if len(args) < min {
		return nil, errors.Newf(errors.Type, pos0(args), "%s: expected at least %d argument(s), got %d", name, min, len(args))
	}
	vals := make([]tree.Value, len(args))
	for i, a := range args {
		v, err := ctx.Force(a)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func numTypeErr(name string, n *tree.Node, v tree.Value) error {
	return errors.Newf(errors.Type, tree.Pos(n), "%s: expected a number, got %s", name, v.Kind())
}

func addOverflows(a, b int64) bool {
	s := a + b
	return (b > 0 && s < a) || (b < 0 && s > a)
}

func subOverflows(a, b int64) bool {
	if b == math.MinInt64 {
		return a >= 0
	}
	return addOverflows(a, -b)
}

func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	if b == -1 {
		return a == math.MinInt64
	}
	p := a * b
	return p/b != a
}
