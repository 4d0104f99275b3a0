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

import (
	"strconv"

	"github.com/jsonpp-lang/jsonpp/token"
)

// State is a Node's place in the demand-driven evaluation lifecycle. A
// Node transitions Raw -> InProgress -> {Done|Failed} and never regresses.
type State int

const (
	Raw State = iota
	InProgress
	Done
	Failed
)

// StepKind classifies one element of a parsed ref path.
type StepKind int

const (
	KeyStep StepKind = iota
	IndexStep
	ArgStep
	WildcardStep
)

// Step is one element of a Node's tree-path, used both as the
// memoization key (conceptually; this implementation keys on Node
// identity instead, see node.go doc) and as an element of a resolved ref
// path.
type Step struct {
	Kind  StepKind
	Key   string // KeyStep
	Index int    // IndexStep, ArgStep
}

// Path is a Node's address from the primary root: a sequence of Steps.
type Path []Step

// Node is one position in the parsed JPP tree. Rather than the
// suggested arena-of-indices model of the original design notes, this
// implementation gives every Node a stable heap identity (a *Node) and
// links parents directly; the InProgress/Done/Failed transition lives on
// that identity, which provides the same guarantees (a Node's identity
// survives independent of its evaluated Value) with plainer Go.
//
// The fields below describe the Node's *raw*, parsed shape; it never
// changes after parsing. The result of forcing a Node (its reduction to
// a Value) is cached in result/err/state instead of mutating
// this shape, which keeps path resolution (eval/ref.go) able to navigate the
// original literal structure even after portions of it have been forced.
type Node struct {
	Kind Kind
	Path Path
	Pos  token.Pos

	Parent *Node

	// scalars
	IntVal    int64
	FloatVal  float64
	BoolVal   bool
	StringVal string

	// ArrayKind
	Elems []*Node

	// ObjectKind
	Keys   []string
	Fields map[string]*Node

	// CallKind
	Head *Node
	Args []*Node

	// IdentKind
	Ident string

	// File is set on every Node parsed from the file's tokens; it is
	// used to resolve include/import paths relative to that file's
	// own directory.
	File *Module

	state  State
	result Value
	err    error
}

// Module is a parsed source file: its root Node plus the directory used
// to resolve relative include/import paths found within it.
type Module struct {
	Root *Node
	Dir  string
	Path string // filename passed to parser.ParseFile ("<stdin>" from the CLI's stdin)
}

// State reports the Node's current evaluation state.
func (n *Node) State() State { return n.state }

// SetInProgress transitions a Raw Node to InProgress. It panics if the
// Node is not Raw, since the engine must never call this twice per Node;
// callers should use Evaluator.Force instead of this directly.
func (n *Node) SetInProgress() {
	if n.state != Raw {
		panic("tree: SetInProgress on non-Raw node")
	}
	n.state = InProgress
}

// SetDone records the forced Value and transitions to Done.
func (n *Node) SetDone(v Value) {
	if n.state != InProgress {
		panic("tree: SetDone on non-InProgress node")
	}
	n.result = v
	n.state = Done
}

// SetFailed records the evaluation error and transitions to Failed.
func (n *Node) SetFailed(err error) {
	if n.state != InProgress {
		panic("tree: SetFailed on non-InProgress node")
	}
	n.err = err
	n.state = Failed
}

// Result returns the memoized Value and error for a Done/Failed Node.
func (n *Node) Result() (Value, error) { return n.result, n.err }

// Depth returns the number of Parent links from n to the primary root.
// The Evaluator's recursion-depth limit does not use it; it counts nested
// Force calls instead.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Ancestor climbs n's Parent chain up times, returning nil if it runs off
// the root before completing the climb.
func (n *Node) Ancestor(up int) *Node {
	cur := n
	for i := 0; i < up; i++ {
		if cur == nil {
			return nil
		}
		cur = cur.Parent
	}
	return cur
}

// DoneNode wraps an already-forced Value as a Node in the Done state, so
// that code holding a Value (e.g. Evaluator.Invoke, handed Values by a
// fold built-in) can hand it to a BuiltinFunc, which always receives
// Nodes: forcing a DoneNode just returns v, never touching the Kind
// dispatch in evaluate.
func DoneNode(v Value, pos token.Pos) *Node {
	return &Node{Pos: pos, state: Done, result: v}
}

// PathString renders n's Path for diagnostics (e.g. CycleError's chain).
func (n *Node) PathString() string {
	if len(n.Path) == 0 {
		return "$"
	}
	s := "$"
	for _, step := range n.Path {
		switch step.Kind {
		case KeyStep:
			s += "." + step.Key
		case IndexStep:
			s += "[" + strconv.Itoa(step.Index) + "]"
		case ArgStep:
			s += "(" + strconv.Itoa(step.Index) + ")"
		case WildcardStep:
			s += "[_]"
		}
	}
	return s
}
