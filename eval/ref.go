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

package eval

import (
	"github.com/jsonpp-lang/jsonpp/errors"
	"github.com/jsonpp-lang/jsonpp/token"
	"github.com/jsonpp-lang/jsonpp/tree"
)

// navTarget is one position reached while walking a parsed ref path.
// Navigation starts and stays in "node mode" (node != nil) for as
// long as the raw parsed tree already has the shape a step expects: no
// forcing needed, so `(n)` ArgStep navigation never forces a Call's Head
// or Args. The moment a step needs a shape a Call or Identifier Node
// doesn't literally have (its Array/Object result has to be computed,
// e.g. past a `merge` or `map` call), the target is forced once and
// navigation continues in "value mode" (val set, node nil) over the
// resulting tree.Value instead.
type navTarget struct {
	node *tree.Node
	val  tree.Value
}

// ResolvePath implements tree.BuiltinContext.ResolvePath, the `ref`
// built-in's path resolution. anchor is the `ref` call Node itself, used
// as the climb origin for relative (leading-dot) paths.
func (e *Evaluator) ResolvePath(anchor *tree.Node, pathStr string) (tree.Value, error) {
	pp, err := tree.ParsePath(pathStr)
	if err != nil {
		return nil, errors.Newf(errors.Ref, tree.Pos(anchor), "invalid ref path %q: %s", pathStr, err)
	}

	var start *tree.Node
	if pp.RootAnchored() {
		start = e.root
	} else {
		start = anchor.Ancestor(pp.Up())
		if start == nil {
			return nil, errors.Newf(errors.Ref, tree.Pos(anchor), "ref path %q climbs above the primary root", pathStr)
		}
	}

	targets := []navTarget{{node: start}}
	vector := false
	for _, step := range pp.Steps {
		if step.Kind == tree.WildcardStep {
			vector = true
		}
		var next []navTarget
		for _, t := range targets {
			r, err := e.applyStep(t, step, pathStr, tree.Pos(anchor))
			if err != nil {
				return nil, err
			}
			next = append(next, r...)
		}
		targets = next
	}

	vals := make([]tree.Value, len(targets))
	for i, t := range targets {
		if t.node != nil {
			v, err := e.Force(t.node)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		} else {
			vals[i] = t.val
		}
	}
	if vector {
		return tree.Arr{Elems: vals}, nil
	}
	return vals[0], nil
}

// applyStep advances one navTarget by one Step, forcing it first if its
// raw Kind doesn't already offer the shape the step needs.
func (e *Evaluator) applyStep(t navTarget, step tree.Step, pathStr string, pos token.Pos) ([]navTarget, error) {
	if t.node != nil {
		return e.applyStepToNode(t.node, step, pathStr, pos)
	}
	return e.applyStepToValue(t.val, step, pathStr, pos)
}

// applyStepToNode applies step while still in node mode: it can navigate
// an ArgStep against a Call's raw Head/Args, or a Key/Index/Wildcard step
// against a literal Object/Array, without forcing anything. A Call or
// Identifier Node encountering a Key/Index/Wildcard step must first be
// forced to learn its shape, then continues in value mode.
func (e *Evaluator) applyStepToNode(n *tree.Node, step tree.Step, pathStr string, pos token.Pos) ([]navTarget, error) {
	switch step.Kind {
	case tree.ArgStep:
		if n.Kind != tree.CallKind {
			return nil, errors.Newf(errors.Ref, pos, "ref path %q: call-arg step on a non-call node", pathStr)
		}
		if step.Index == 0 {
			return []navTarget{{node: n.Head}}, nil
		}
		idx := step.Index - 1
		if idx < 0 || idx >= len(n.Args) {
			return nil, errors.Newf(errors.Ref, pos, "ref path %q: call-arg index %d out of range", pathStr, step.Index)
		}
		return []navTarget{{node: n.Args[idx]}}, nil

	case tree.KeyStep:
		switch n.Kind {
		case tree.ObjectKind:
			child, ok := n.Fields[step.Key]
			if !ok {
				return nil, errors.Newf(errors.Ref, pos, "ref path %q: no field %q", pathStr, step.Key)
			}
			return []navTarget{{node: child}}, nil
		case tree.CallKind, tree.IdentKind:
			v, err := e.Force(n)
			if err != nil {
				return nil, err
			}
			return e.applyStepToValue(v, step, pathStr, pos)
		default:
			return nil, errors.Newf(errors.Ref, pos, "ref path %q: key step on a non-object value", pathStr)
		}

	case tree.IndexStep:
		switch n.Kind {
		case tree.ArrayKind:
			idx := step.Index
			if idx < 0 {
				idx += len(n.Elems)
			}
			if idx < 0 || idx >= len(n.Elems) {
				return nil, errors.Newf(errors.Ref, pos, "ref path %q: array index %d out of range", pathStr, step.Index)
			}
			return []navTarget{{node: n.Elems[idx]}}, nil
		case tree.CallKind, tree.IdentKind:
			v, err := e.Force(n)
			if err != nil {
				return nil, err
			}
			return e.applyStepToValue(v, step, pathStr, pos)
		default:
			return nil, errors.Newf(errors.Ref, pos, "ref path %q: index step on a non-array value", pathStr)
		}

	case tree.WildcardStep:
		switch n.Kind {
		case tree.ArrayKind:
			out := make([]navTarget, len(n.Elems))
			for i, c := range n.Elems {
				out[i] = navTarget{node: c}
			}
			return out, nil
		case tree.CallKind, tree.IdentKind:
			v, err := e.Force(n)
			if err != nil {
				return nil, err
			}
			return e.applyStepToValue(v, step, pathStr, pos)
		default:
			return nil, errors.Newf(errors.Ref, pos, "ref path %q: wildcard step on a non-array value", pathStr)
		}
	}
	return nil, errors.Newf(errors.Ref, pos, "ref path %q: unsupported step", pathStr)
}

// applyStepToValue applies step once navigation has had to cross into a
// forced tree.Value with no backing Node (e.g. past a `merge` call).
func (e *Evaluator) applyStepToValue(v tree.Value, step tree.Step, pathStr string, pos token.Pos) ([]navTarget, error) {
	switch step.Kind {
	case tree.ArgStep:
		return nil, errors.Newf(errors.Ref, pos, "ref path %q: call-arg step on a non-call value", pathStr)

	case tree.KeyStep:
		obj, ok := v.(tree.Obj)
		if !ok {
			return nil, errors.Newf(errors.Ref, pos, "ref path %q: key step on a non-object value", pathStr)
		}
		fv, ok := obj.Lookup(step.Key)
		if !ok {
			return nil, errors.Newf(errors.Ref, pos, "ref path %q: no field %q", pathStr, step.Key)
		}
		return []navTarget{{val: fv}}, nil

	case tree.IndexStep:
		arr, ok := v.(tree.Arr)
		if !ok {
			return nil, errors.Newf(errors.Ref, pos, "ref path %q: index step on a non-array value", pathStr)
		}
		idx := step.Index
		if idx < 0 {
			idx += len(arr.Elems)
		}
		if idx < 0 || idx >= len(arr.Elems) {
			return nil, errors.Newf(errors.Ref, pos, "ref path %q: array index %d out of range", pathStr, step.Index)
		}
		return []navTarget{{val: arr.Elems[idx]}}, nil

	case tree.WildcardStep:
		arr, ok := v.(tree.Arr)
		if !ok {
			return nil, errors.Newf(errors.Ref, pos, "ref path %q: wildcard step on a non-array value", pathStr)
		}
		out := make([]navTarget, len(arr.Elems))
		for i, ev := range arr.Elems {
			out[i] = navTarget{val: ev}
		}
		return out, nil
	}
	return nil, errors.Newf(errors.Ref, pos, "ref path %q: unsupported step", pathStr)
}
