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

// Scope is a parent-linked mapping from identifier name to Value.
// The root Scope holds the built-in bindings; each Definition invocation
// pushes a fresh child binding its params to argument Values. Scopes are
// immutable once built: extension always creates a new child rather than
// mutating a shared parent, so a Definition's captured Scope can never be
// invalidated by a later, unrelated call.
type Scope struct {
	parent *Scope
	vars   map[string]Value
}

// NewRootScope creates an empty root Scope with no parent.
func NewRootScope() *Scope {
	return &Scope{vars: make(map[string]Value)}
}

// Child creates a new Scope binding vars, chained to s.
func (s *Scope) Child(vars map[string]Value) *Scope {
	return &Scope{parent: s, vars: vars}
}

// Bind sets name to v directly in s. Used only to populate the root
// Scope with built-ins during setup, never after evaluation begins.
func (s *Scope) Bind(name string, v Value) {
	s.vars[name] = v
}

// Lookup searches s and its ancestors for name.
func (s *Scope) Lookup(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}
