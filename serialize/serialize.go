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

// Package serialize walks a forced tree.Value and renders it as strict
// JSON text: Int without a fraction, Float with the shortest
// round-trip decimal, UTF-8, no trailing comma or comments, object key
// order preserved. Undefined/Definition/Builtin values are rejected with
// an error wherever they appear; the Evaluator already strips them from
// every Array/Object it forces, so in practice only a bare Undefined or
// function root reaches that error.
package serialize

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jsonpp-lang/jsonpp/tree"
)

// Write appends v's JSON rendering to buf.
func Write(buf *bytes.Buffer, v tree.Value) error {
	switch x := v.(type) {
	case tree.Int:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
		return nil

	case tree.Float:
		f := float64(x)
		s := strconv.FormatFloat(f, 'g', -1, 64)
		buf.WriteString(s)
		return nil

	case tree.Bool:
		if x {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil

	case tree.Null:
		buf.WriteString("null")
		return nil

	case tree.Str:
		writeQuoted(buf, string(x))
		return nil

	case tree.Arr:
		buf.WriteByte('[')
		for i, e := range x.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := Write(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case tree.Obj:
		buf.WriteByte('{')
		first := true
		for _, k := range x.Keys {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			writeQuoted(buf, k)
			buf.WriteByte(':')
			if err := Write(buf, x.Fields[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case tree.Undefined:
		return fmt.Errorf("serialize: undefined value cannot appear in JSON output")

	case tree.Def, tree.Builtin:
		return fmt.Errorf("serialize: function value cannot appear in JSON output")

	default:
		return fmt.Errorf("serialize: unhandled value kind %s", v.Kind())
	}
}

// Marshal renders v as a standalone JSON document.
func Marshal(v tree.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
