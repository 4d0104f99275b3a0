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

func include(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	if len(args) != 1 {
		return nil, errors.Newf(errors.Type, pos0(args), "include: expected exactly 1 argument (path), got %d", len(args))
	}
	pv, err := ctx.Force(args[0])
	if err != nil {
		return nil, err
	}
	path, ok := pv.(tree.Str)
	if !ok {
		return nil, errors.Newf(errors.Type, tree.Pos(args[0]), "include: path must be a string, got %s", pv.Kind())
	}
	contents, err := ctx.ReadFile(call, string(path))
	if err != nil {
		return nil, err
	}
	return tree.Str(contents), nil
}

func importFn(ctx tree.BuiltinContext, call *tree.Node, args []*tree.Node) (tree.Value, error) {
	if len(args) != 1 {
		return nil, errors.Newf(errors.Type, pos0(args), "import: expected exactly 1 argument (path), got %d", len(args))
	}
	pv, err := ctx.Force(args[0])
	if err != nil {
		return nil, err
	}
	path, ok := pv.(tree.Str)
	if !ok {
		return nil, errors.Newf(errors.Type, tree.Pos(args[0]), "import: path must be a string, got %s", pv.Kind())
	}
	return ctx.ImportFile(call, string(path))
}
