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

package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsonpp-lang/jsonpp/token"
)

type elt struct {
	kind token.Kind
	lit  string
}

func scanAll(t *testing.T, src string) []elt {
	t.Helper()
	var s Scanner
	s.Init(token.NewFile("test", len(src)), []byte(src), func(pos token.Pos, msg string) {
		t.Fatalf("unexpected scanner error at %v: %s", pos, msg)
	})
	var got []elt
	for {
		_, kind, lit := s.Scan()
		if kind == token.EOF {
			break
		}
		got = append(got, elt{kind, lit})
	}
	return got
}

func TestScanPunctuationAndLiterals(t *testing.T) {
	src := `{"a": [1, -2.5e1, true, false, null, undefined], "b": (sum 1 2)}`
	want := []elt{
		{token.LBRACE, "{"},
		{token.STRING, "a"},
		{token.COLON, ":"},
		{token.LBRACK, "["},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.FLOAT, "-2.5e1"},
		{token.COMMA, ","},
		{token.TRUE, "true"},
		{token.COMMA, ","},
		{token.FALSE, "false"},
		{token.COMMA, ","},
		{token.NULL, "null"},
		{token.COMMA, ","},
		{token.UNDEFINED, "undefined"},
		{token.RBRACK, "]"},
		{token.COMMA, ","},
		{token.STRING, "b"},
		{token.COLON, ":"},
		{token.LPAREN, "("},
		{token.IDENT, "sum"},
		{token.INT, "1"},
		{token.INT, "2"},
		{token.RPAREN, ")"},
		{token.RBRACE, "}"},
	}
	got := scanAll(t, src)
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(elt{})); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanComments(t *testing.T) {
	src := "{ // line comment\n  /* block */ \"x\": 1 }"
	want := []elt{
		{token.LBRACE, "{"},
		{token.STRING, "x"},
		{token.COLON, ":"},
		{token.INT, "1"},
		{token.RBRACE, "}"},
	}
	got := scanAll(t, src)
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(elt{})); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanTrailingComma(t *testing.T) {
	src := `[1, 2,]`
	want := []elt{
		{token.LBRACK, "["},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.INT, "2"},
		{token.COMMA, ","},
		{token.RBRACK, "]"},
	}
	got := scanAll(t, src)
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(elt{})); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanStringEscapes(t *testing.T) {
	got := scanAll(t, `"a\n\t\"\\A"`)
	want := []elt{{token.STRING, "a\n\t\"\\A"}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(elt{})); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanIllegalInput(t *testing.T) {
	var s Scanner
	src := `{"a": @}`
	var gotErr bool
	s.Init(token.NewFile("test", len(src)), []byte(src), func(pos token.Pos, msg string) {
		gotErr = true
	})
	for {
		_, kind, _ := s.Scan()
		if kind == token.EOF {
			break
		}
	}
	if !gotErr {
		t.Fatalf("expected a scanner error for illegal character")
	}
}
