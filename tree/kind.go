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

// Kind classifies the shape of a Node or a Value: a small closed enum
// used both for dispatch and for diagnostics.
type Kind int

const (
	IntKind Kind = iota
	FloatKind
	BoolKind
	NullKind
	StringKind
	UndefinedKind
	ArrayKind
	ObjectKind
	CallKind
	IdentKind
	DefinitionKind
	BuiltinKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case BoolKind:
		return "bool"
	case NullKind:
		return "null"
	case StringKind:
		return "string"
	case UndefinedKind:
		return "undefined"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	case CallKind:
		return "call"
	case IdentKind:
		return "identifier"
	case DefinitionKind:
		return "definition"
	case BuiltinKind:
		return "builtin"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether k is Int or Float.
func (k Kind) IsNumeric() bool { return k == IntKind || k == FloatKind }
