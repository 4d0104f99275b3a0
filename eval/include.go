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
	"path/filepath"

	"github.com/jsonpp-lang/jsonpp/errors"
	"github.com/jsonpp-lang/jsonpp/parser"
	"github.com/jsonpp-lang/jsonpp/tree"
)

// callDir returns the directory relative include/import paths in call
// are resolved against: the directory of the source file call was parsed
// from, or "." when call has no Module or its Module has no Dir.
func callDir(call *tree.Node) string {
	if call.File == nil || call.File.Dir == "" {
		return "."
	}
	return call.File.Dir
}

// ReadFile implements tree.BuiltinContext.ReadFile, the `include`
// built-in: it returns path's contents as a string, resolved relative to
// the file containing call.
func (e *Evaluator) ReadFile(call *tree.Node, path string) (string, error) {
	abs, err := e.fs.Resolve(callDir(call), path)
	if err != nil {
		return "", errors.Newf(errors.IO, tree.Pos(call), "include %q: %s", path, err)
	}
	data, err := e.fs.ReadFile(abs)
	if err != nil {
		return "", errors.Newf(errors.IO, tree.Pos(call), "include %q: %s", path, err)
	}
	return string(data), nil
}

// ImportFile implements tree.BuiltinContext.ImportFile, the `import`
// built-in: it resolves, reads, tokenizes, and parses path, attaches the
// result's root Node as a child of call (so that relative refs within
// the imported file resolve relative to call's position in the outer
// tree, while root-anchored refs still resolve against the Evaluator's
// fixed primary root), and forces it.
//
// Import cycles are tracked with a stack of absolute paths rather than a
// cache of already-imported Modules: the same file imported from two
// different call sites is parsed and evaluated independently each time,
// not shared.
func (e *Evaluator) ImportFile(call *tree.Node, path string) (tree.Value, error) {
	abs, err := e.fs.Resolve(callDir(call), path)
	if err != nil {
		return nil, errors.Newf(errors.IO, tree.Pos(call), "import %q: %s", path, err)
	}

	for i, p := range e.importStack {
		if p == abs {
			chain := append(append([]string{}, e.importStack[i:]...), abs)
			return nil, errors.NewCycle(tree.Pos(call), chain)
		}
	}

	data, err := e.fs.ReadFile(abs)
	if err != nil {
		return nil, errors.Newf(errors.IO, tree.Pos(call), "import %q: %s", path, err)
	}

	mod, err := parser.ParseFile(abs, filepath.Dir(abs), data)
	if err != nil {
		return nil, errors.Newf(errors.Parse, tree.Pos(call), "import %q: %s", path, err)
	}
	mod.Root.Parent = call

	e.importStack = append(e.importStack, abs)
	defer func() { e.importStack = e.importStack[:len(e.importStack)-1] }()

	return e.Force(mod.Root)
}
