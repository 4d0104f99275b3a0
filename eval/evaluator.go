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

// Package eval implements the demand-driven, memoized evaluator: it
// drives a tree.Module's Nodes from Raw to Done, dispatches Calls to
// built-ins or user Definitions, and resolves ref paths and
// include/import targets against the Module's filesystem.
package eval

import (
	"github.com/jsonpp-lang/jsonpp/builtin"
	"github.com/jsonpp-lang/jsonpp/errors"
	"github.com/jsonpp-lang/jsonpp/tree"
)

// DefaultMaxDepth is the evaluator's hard recursion-depth limit when none
// is configured: comfortably above the required-supported 1024.
const DefaultMaxDepth = 10000

// invocation is one active call of a user Definition: the Body Node
// Invoke descended into, the Scope binding its params, and a per-call
// visiting set used for cycle detection local to this one invocation.
//
// Body Nodes are deliberately NOT run through the Raw/InProgress/Done
// state machine on tree.Node: the same Body literal is forced anew on
// every invocation (once per map/filter/reduce element, for instance),
// so memoizing it at the Node would leak one call's result into the
// next. invocation.stack instead plays the InProgress role, but scoped
// to this one call.
type invocation struct {
	body  *tree.Node
	scope *tree.Scope
	stack map[*tree.Node]bool
}

// Evaluator drives evaluation of one primary Module, including any
// Modules reached transitively via `import`.
type Evaluator struct {
	root      *tree.Node
	rootScope *tree.Scope
	fs        FileSystem
	maxDepth  int

	depth       int
	invStack    []*invocation
	importStack []string

	// pathStack holds every Node currently being forced, in the order
	// forceGlobal/forceEphemeral entered them, regardless of which of
	// the two is forcing any given one. On cycle detection it lets us
	// slice out the actual sub-chain from the repeated Node's first
	// occurrence through the point of re-entry, the same way
	// importStack does for import cycles.
	pathStack []*tree.Node
}

// NewEvaluator builds an Evaluator for mod, with the built-in table bound
// into its root Scope. fs resolves include/import paths; maxDepth <= 0
// selects DefaultMaxDepth.
func NewEvaluator(mod *tree.Module, fs FileSystem, maxDepth int) *Evaluator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	scope := tree.NewRootScope()
	for name, fn := range builtin.Table {
		scope.Bind(name, tree.Builtin{Name: name, Fn: fn})
	}
	return &Evaluator{
		root:      mod.Root,
		rootScope: scope,
		fs:        fs,
		maxDepth:  maxDepth,
	}
}

// EvaluateRoot forces the primary root Node and returns its Value.
func (e *Evaluator) EvaluateRoot() (tree.Value, error) {
	return e.Force(e.root)
}

// currentScope returns the Scope in effect for whatever is currently
// being evaluated: the innermost active invocation's Scope, or the root
// Scope outside any Definition call.
func (e *Evaluator) currentScope() *tree.Scope {
	if len(e.invStack) > 0 {
		return e.invStack[len(e.invStack)-1].scope
	}
	return e.rootScope
}

// CurrentScope implements tree.BuiltinContext, used by the `def` built-in
// to capture a closure.
func (e *Evaluator) CurrentScope() *tree.Scope {
	return e.currentScope()
}

// Force implements tree.BuiltinContext and is the single entry point used
// to reduce any Node to a Value, from the top-level root, from container
// iteration, from built-ins, and from ref resolution. It routes each Node
// to whichever memoization discipline applies to it: the global
// Raw/InProgress/Done state machine for Nodes outside any Definition
// body, or the current invocation's ephemeral, unmemoized evaluation for
// Nodes within the body currently being invoked.
func (e *Evaluator) Force(n *tree.Node) (tree.Value, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.maxDepth {
		return nil, errors.Newf(errors.Stack, n.Pos, "evaluation depth exceeds limit of %d", e.maxDepth)
	}

	if len(e.invStack) > 0 {
		top := e.invStack[len(e.invStack)-1]
		if isDescendant(n, top.body) {
			return e.forceEphemeral(n, top)
		}
	}
	return e.forceGlobal(n)
}

// forceGlobal is the memoized Raw/InProgress/Done/Failed state machine,
// used for every Node that is not part of the Definition body currently
// being invoked.
func (e *Evaluator) forceGlobal(n *tree.Node) (tree.Value, error) {
	switch n.State() {
	case tree.Done:
		return n.Result()
	case tree.Failed:
		_, err := n.Result()
		return nil, err
	case tree.InProgress:
		return nil, e.cycleError(n)
	}

	n.SetInProgress()
	e.pathStack = append(e.pathStack, n)
	v, err := e.dispatch(n)
	e.pathStack = e.pathStack[:len(e.pathStack)-1]
	if err != nil {
		n.SetFailed(err)
		return nil, err
	}
	n.SetDone(v)
	return v, nil
}

// cycleError builds a CycleError naming the full chain of Node paths from
// n's first occurrence in pathStack through to n again, mirroring how
// include.go slices importStack to name an import cycle's full chain. If n
// is not found on pathStack (should not happen, but guards against a
// caller bug), it falls back to naming n alone.
func (e *Evaluator) cycleError(n *tree.Node) error {
	for i, p := range e.pathStack {
		if p != n {
			continue
		}
		chain := make([]string, 0, len(e.pathStack)-i+1)
		for _, q := range e.pathStack[i:] {
			chain = append(chain, q.PathString())
		}
		chain = append(chain, n.PathString())
		return errors.NewCycle(n.Pos, chain)
	}
	return errors.NewCycle(n.Pos, []string{n.PathString()})
}

// forceEphemeral evaluates n, a descendant of (or equal to) the body
// inv is currently invoking, freshly: it never consults or sets n's
// persistent tree.Node state, since the same n is revisited on every
// invocation with a different Scope. Cycle detection is instead
// per-invocation, via inv.stack acting as a DFS recursion-stack.
func (e *Evaluator) forceEphemeral(n *tree.Node, inv *invocation) (tree.Value, error) {
	if inv.stack[n] {
		return nil, e.cycleError(n)
	}
	inv.stack[n] = true
	e.pathStack = append(e.pathStack, n)
	v, err := e.dispatch(n)
	e.pathStack = e.pathStack[:len(e.pathStack)-1]
	delete(inv.stack, n)
	return v, err
}

// isDescendant reports whether n is ancestor, or a descendant of it
// reached by following Parent links.
func isDescendant(n, ancestor *tree.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// dispatch implements the per-Kind evaluate() step. It is shared
// by forceGlobal and forceEphemeral; both have already decided the
// memoization discipline, so dispatch need only recurse via e.Force
// (which will itself route each child through the correct discipline)
// and consult e.currentScope() for identifiers.
func (e *Evaluator) dispatch(n *tree.Node) (tree.Value, error) {
	switch n.Kind {
	case tree.IntKind:
		return tree.Int(n.IntVal), nil
	case tree.FloatKind:
		return tree.Float(n.FloatVal), nil
	case tree.BoolKind:
		return tree.Bool(n.BoolVal), nil
	case tree.NullKind:
		return tree.Null{}, nil
	case tree.StringKind:
		return tree.Str(n.StringVal), nil
	case tree.UndefinedKind:
		return tree.Undefined{}, nil

	case tree.ArrayKind:
		var elems []tree.Value
		for _, c := range n.Elems {
			v, err := e.Force(c)
			if err != nil {
				return nil, err
			}
			switch v.(type) {
			case tree.Undefined, tree.Def, tree.Builtin:
				continue
			}
			elems = append(elems, v)
		}
		return tree.Arr{Elems: elems}, nil

	case tree.ObjectKind:
		var keys []string
		fields := map[string]tree.Value{}
		for _, k := range n.Keys {
			v, err := e.Force(n.Fields[k])
			if err != nil {
				return nil, err
			}
			switch v.(type) {
			case tree.Undefined, tree.Def, tree.Builtin:
				continue
			}
			keys = append(keys, k)
			fields[k] = v
		}
		return tree.Obj{Keys: keys, Fields: fields}, nil

	case tree.IdentKind:
		// A Definition is a legitimate value here: passing a function
		// bound to a parameter name through to map/filter/reduce/ref
		// relies on exactly this (S3). It can never leak into output,
		// since the enclosing Array/Object cases above strip any
		// Definition- or Builtin-valued element or field before
		// serialization; any
		// built-in that needs a non-function operand rejects a
		// Definition itself with TypeError.
		v, ok := e.currentScope().Lookup(n.Ident)
		if !ok {
			return nil, errors.Newf(errors.Name, n.Pos, "undefined name %q", n.Ident)
		}
		return v, nil

	case tree.CallKind:
		return e.evalCall(n)

	default:
		return nil, errors.Newf(errors.Type, n.Pos, "cannot evaluate node of kind %s", n.Kind)
	}
}

// evalCall evaluates the call head (which may resolve to a Builtin or a
// Definition), then dispatches to a
// Builtin (which receives the raw argument Nodes and chooses its own
// strictness) or a Definition (whose arguments are always forced eagerly
// before the call).
func (e *Evaluator) evalCall(n *tree.Node) (tree.Value, error) {
	head, err := e.evalHead(n.Head)
	if err != nil {
		return nil, err
	}

	switch h := head.(type) {
	case tree.Builtin:
		return h.Fn(e, n, n.Args)

	case tree.Def:
		if len(n.Args) != len(h.Params) {
			return nil, errors.Newf(errors.Type, n.Pos, "function expects %d argument(s), got %d", len(h.Params), len(n.Args))
		}
		args := make([]tree.Value, len(n.Args))
		for i, a := range n.Args {
			v, err := e.Force(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return e.invokeDef(h, n, args)

	default:
		return nil, errors.Newf(errors.Type, tree.Pos(n.Head), "call head is not callable (got %s)", head.Kind())
	}
}

// evalHead evaluates a call's head position: an identifier head is looked
// up directly in the current Scope, any other head is forced.
func (e *Evaluator) evalHead(head *tree.Node) (tree.Value, error) {
	if head.Kind == tree.IdentKind {
		v, ok := e.currentScope().Lookup(head.Ident)
		if !ok {
			return nil, errors.Newf(errors.Name, head.Pos, "undefined name %q", head.Ident)
		}
		return v, nil
	}
	return e.Force(head)
}

// Invoke implements tree.BuiltinContext: it calls fn, a Def or Builtin
// Value already forced by the caller, with already-forced args. This is
// the path folds (map/filter/reduce) and `ref` (indirectly, via the
// Evaluator) use to apply a first-class function value.
func (e *Evaluator) Invoke(fn tree.Value, call *tree.Node, args []tree.Value) (tree.Value, error) {
	switch f := fn.(type) {
	case tree.Builtin:
		nodes := make([]*tree.Node, len(args))
		for i, a := range args {
			nodes[i] = tree.DoneNode(a, tree.Pos(call))
		}
		return f.Fn(e, call, nodes)
	case tree.Def:
		return e.invokeDef(f, call, args)
	default:
		return nil, errors.Newf(errors.Type, tree.Pos(call), "value of kind %s is not callable", fn.Kind())
	}
}

// invokeDef runs one call of def's body with params bound to args in a
// fresh child of its captured Scope, pushing an invocation frame so that
// Force routes the body's Nodes through the ephemeral (unmemoized) path.
func (e *Evaluator) invokeDef(def tree.Def, call *tree.Node, args []tree.Value) (tree.Value, error) {
	if len(args) != len(def.Params) {
		return nil, errors.Newf(errors.Type, tree.Pos(call), "function expects %d argument(s), got %d", len(def.Params), len(args))
	}
	vars := make(map[string]tree.Value, len(def.Params))
	for i, p := range def.Params {
		vars[p] = args[i]
	}
	inv := &invocation{
		body:  def.Body,
		scope: def.Scope.Child(vars),
		stack: map[*tree.Node]bool{},
	}
	e.invStack = append(e.invStack, inv)
	defer func() { e.invStack = e.invStack[:len(e.invStack)-1] }()

	return e.Force(def.Body)
}
