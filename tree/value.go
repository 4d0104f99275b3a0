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

import "github.com/jsonpp-lang/jsonpp/token"

// Value is the runtime result domain: what a forced Node reduces to, what
// Scope bindings hold, and what the serializer walks. It is distinct from
// the parsed Node shape (see node.go) because a Call's result bears no
// structural relationship to the Call expression that produced it.
//
// Go has no tagged unions, so Value follows the same pattern as CUE's
// internal/core/adt.Value: an interface with an unexported marker method,
// implemented by one concrete struct per variant.
type Value interface {
	Kind() Kind
	value()
}

// Int is a 64-bit integer value.
type Int int64

func (Int) Kind() Kind { return IntKind }
func (Int) value()     {}

// Float is an IEEE-754 double value. NaN and +/-Inf are never constructed;
// builtins that would produce one raise MathError instead (see builtin pkg).
type Float float64

func (Float) Kind() Kind { return FloatKind }
func (Float) value()     {}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return BoolKind }
func (Bool) value()     {}

// Null is the JSON null value.
type Null struct{}

func (Null) Kind() Kind { return NullKind }
func (Null) value()     {}

// Str is a UTF-8 string value.
type Str string

func (Str) Kind() Kind { return StringKind }
func (Str) value()     {}

// Undefined marks a value that is dropped from its enclosing array or
// object during serialization. It is never itself serialized.
type Undefined struct{}

func (Undefined) Kind() Kind { return UndefinedKind }
func (Undefined) value()     {}

// Arr is a forced array: each element has already been reduced to a Value.
type Arr struct {
	Elems []Value
}

func (Arr) Kind() Kind { return ArrayKind }
func (Arr) value()     {}

// Obj is a forced object, preserving the key order of the surviving
// (non-Undefined, non-Definition) fields.
type Obj struct {
	Keys   []string
	Fields map[string]Value
}

func (Obj) Kind() Kind { return ObjectKind }
func (Obj) value()     {}

// Lookup returns the value bound to key and whether it was present.
func (o Obj) Lookup(key string) (Value, bool) {
	v, ok := o.Fields[key]
	return v, ok
}

// Def is a user function value produced by `def`, capturing the scope
// visible at its definition site.
type Def struct {
	Params []string
	Body   *Node
	Scope  *Scope
}

func (Def) Kind() Kind { return DefinitionKind }
func (Def) value()     {}

// BuiltinContext is the slice of evaluator functionality a built-in needs:
// forcing nodes, invoking first-class function values, resolving ref
// paths, and reading include/import targets. Defined here (rather than in
// the builtin package) so that tree.Value can reference BuiltinFunc
// without importing the package that implements the built-ins, and the
// builtin package can in turn import tree without a cycle.
type BuiltinContext interface {
	// Force reduces node to a Value, memoizing the result on the Node
	// except for Nodes inside the Definition body currently being invoked.
	Force(node *Node) (Value, error)
	// Invoke calls fn (a Def or Builtin Value) with already-forced
	// argument values, at the source position of call (used for any
	// resulting diagnostics).
	Invoke(fn Value, call *Node, args []Value) (Value, error)
	// ResolvePath resolves a ref path string against anchor (the `ref`
	// call node) or the primary root.
	ResolvePath(anchor *Node, path string) (Value, error)
	// ReadFile resolves path relative to the directory containing call's
	// source file and returns its contents.
	ReadFile(call *Node, path string) (string, error)
	// ImportFile resolves, tokenizes, parses, and attaches path as a
	// subtree rooted at call.
	ImportFile(call *Node, path string) (Value, error)
	// CurrentScope returns the Scope active at the point of the current
	// call, so that `def` can capture it as a closure.
	CurrentScope() *Scope
}

// BuiltinFunc implements one named built-in. It receives the unforced
// argument Nodes and the Context so it can choose its own strictness:
// strict built-ins force every argument immediately; non-strict ones
// (if, def, map, filter, reduce, ref) force selectively.
type BuiltinFunc func(ctx BuiltinContext, call *Node, args []*Node) (Value, error)

// Builtin is a first-class reference to a named built-in function, bound
// in the root Scope and usable anywhere a Definition is, e.g. as the `f`
// argument to map/filter/reduce.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

func (Builtin) Kind() Kind { return BuiltinKind }
func (Builtin) value()     {}

// Truthy implements JPP's truthiness rules, used by `if` and `filter`:
// false, null, undefined, 0, 0.0, "", [], and {} are falsy;
// everything else is truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Bool:
		return bool(x)
	case Null, Undefined:
		return false
	case Int:
		return x != 0
	case Float:
		return x != 0
	case Str:
		return x != ""
	case Arr:
		return len(x.Elems) != 0
	case Obj:
		return len(x.Keys) != 0
	default:
		return true
	}
}

// Pos reports the source position to blame for an error about v, when
// known; it is a convenience for built-ins that only hold a Value and the
// call Node, to avoid needing separate position plumbing. Scalar values
// carry no independent position.
func Pos(n *Node) token.Pos {
	if n == nil {
		return token.Pos{}
	}
	return n.Pos
}
