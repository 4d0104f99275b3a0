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

// ref is non-strict beyond its path string: it forces args[0] to a
// string, then resolves the parsed path against the Evaluator. The extra
// arguments (ref's own arity >= 1) are never forced directly here; they
// become addressable through a `(i)` step, resolved relative to the ref
// call Node itself by Evaluator.ResolvePath (which navigates call's raw
// Head/Args without needing them pre-forced).
func ref(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	if len(args) < 1 {
		return nil, errors.Newf(errors.Type, tree.Pos(call), "ref: requires a path argument")
	}
	pv, err := ctx.Force(args[0])
	if err != nil {
		return nil, err
	}
	path, ok := pv.(tree.Str)
	if !ok {
		return nil, errors.Newf(errors.Type, tree.Pos(args[0]), "ref: path must be a string, got %s", pv.Kind())
	}
	return ctx.ResolvePath(call, string(path))
}
