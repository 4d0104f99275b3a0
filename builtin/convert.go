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
	"strconv"
	"unicode/utf8"

	"github.com/jsonpp-lang/jsonpp/errors"
	"github.com/jsonpp-lang/jsonpp/tree"
)

func lenFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "len", args, 1)
	if err != nil {
		return nil, err
	}
	switch v := vals[0].(type) {
	case tree.Str:
		return tree.Int(utf8.RuneCountInString(string(v))), nil
	case tree.Arr:
		return tree.Int(len(v.Elems)), nil
	case tree.Obj:
		return tree.Int(len(v.Keys)), nil
	default:
		return nil, errors.Newf(errors.Type, tree.Pos(call), "len: expected a string, array, or object, got %s", v.Kind())
	}
}

func strFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "str", args, 1)
	if err != nil {
		return nil, err
	}
	return tree.Str(valueString(vals[0])), nil
}

// valueString renders v as a JSON-like text form for the `str` built-in.
// It does not need to be strict output-grade JSON (the serialize
// package, not this, owns the program's actual output): `str` is a
// preprocessing convenience for building string values, so a compact,
// deterministic rendering is enough.
func valueString(v tree.Value) string {
	switch x := v.(type) {
	case tree.Null:
		return "null"
	case tree.Undefined:
		return "undefined"
	case tree.Bool:
		if x {
			return "true"
		}
		return "false"
	case tree.Int:
		return strconv.FormatInt(int64(x), 10)
	case tree.Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case tree.Str:
		return string(x)
	case tree.Arr:
		s := "["
		for i, e := range x.Elems {
			if i > 0 {
				s += ","
			}
			s += valueString(e)
		}
		return s + "]"
	case tree.Obj:
		s := "{"
		for i, k := range x.Keys {
			if i > 0 {
				s += ","
			}
			s += strconv.Quote(k) + ":" + valueString(x.Fields[k])
		}
		return s + "}"
	case tree.Def, tree.Builtin:
		return "<function>"
	default:
		return ""
	}
}

// roundHalfAwayFromZero rounds f to the nearest integer, breaking ties
// away from zero: 0.5 -> 1, -0.5 -> -1.
func roundHalfAwayFromZero(f float64) int64 {
	if f >= 0 {
		return int64(math.Floor(f + 0.5))
	}
	return int64(math.Ceil(f - 0.5))
}

func intFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "int", args, 1)
	if err != nil {
		return nil, err
	}
	switch x := vals[0].(type) {
	case tree.Int:
		return x, nil
	case tree.Float:
		return tree.Int(roundHalfAwayFromZero(float64(x))), nil
	case tree.Str:
		f, perr := strconv.ParseFloat(string(x), 64)
		if perr != nil {
			return nil, errors.Newf(errors.Type, tree.Pos(call), "int: cannot parse %q as a number", string(x))
		}
		return tree.Int(roundHalfAwayFromZero(f)), nil
	default:
		return nil, errors.Newf(errors.Type, tree.Pos(call), "int: expected a string, int, or float, got %s", x.Kind())
	}
}

func floatFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	vals, err := forceAll(ctx, "float", args, 1)
	if err != nil {
		return nil, err
	}
	switch x := vals[0].(type) {
	case tree.Float:
		return x, nil
	case tree.Int:
		return tree.Float(x), nil
	case tree.Str:
		f, perr := strconv.ParseFloat(string(x), 64)
		if perr != nil {
			return nil, errors.Newf(errors.Type, tree.Pos(call), "float: cannot parse %q as a number", string(x))
		}
		return tree.Float(f), nil
	default:
		return nil, errors.Newf(errors.Type, tree.Pos(call), "float: expected a string, int, or float, got %s", x.Kind())
	}
}
