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

// defFn is non-strict: it never forces any argument. It validates that
// every parameter is a bare identifier, then captures the body Node
// (unevaluated until invocation) and the Scope active right now, so the
// resulting Definition is a proper closure.
func defFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	if len(args) < 2 {
		return nil, errors.Newf(errors.Type, tree.Pos(call), "def: requires at least one parameter and a body")
	}
	params := make([]string, len(args)-1)
	for i, a := range args[:len(args)-1] {
		if a.Kind != tree.IdentKind {
			return nil, errors.Newf(errors.Type, tree.Pos(a), "def: parameter %d must be a bare identifier", i+1)
		}
		params[i] = a.Ident
	}
	body := args[len(args)-1]
	return tree.Def{
		Params: params,
		Body:   body,
		Scope:  ctx.CurrentScope(),
	}, nil
}
