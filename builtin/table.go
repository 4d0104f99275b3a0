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

// Package builtin implements JPP's named built-in functions:
// arithmetic, conversions, the aggregate merge, logic and comparisons,
// ranges, user functions (`def`), folds, and the `ref`/`include`/`import`
// family. It depends only on tree, not on eval, so that eval (which
// implements tree.BuiltinContext) can in turn depend on builtin to
// populate the root Scope without an import cycle.
package builtin

import "github.com/jsonpp-lang/jsonpp/tree"

// Table maps every built-in name to its implementation. eval.NewEvaluator
// binds each entry into the root Scope as a tree.Builtin.
var Table = map[string]tree.BuiltinFunc{
	"sum": sum,
	"sub": sub,
	"mul": mul,
	"div": div,
	"pow": pow,
	"log": logFn,
	"mod": mod,
	"max": max_,
	"min": min_,

	"len":   lenFn,
	"str":   strFn,
	"int":   intFn,
	"float": floatFn,

	"merge": merge,

	"if":  ifFn,
	"eq":  eq,
	"lt":  lt,
	"gt":  gt,
	"lte": lte,
	"gte": gte,

	"range": rangeFn,

	"def": defFn,

	"map":    mapFn,
	"filter": filterFn,
	"reduce": reduceFn,

	"ref":     ref,
	"include": include,
	"import":  importFn,
}
