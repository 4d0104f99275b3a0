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

// Package parser turns JPP source text into a tree.Module: tokenizing
// with scanner.Scanner and building a tree.Node for every value, call,
// and identifier, each tagged with its tree-path.
package parser

import (
	"strconv"

	"github.com/jsonpp-lang/jsonpp/errors"
	"github.com/jsonpp-lang/jsonpp/scanner"
	"github.com/jsonpp-lang/jsonpp/token"
	"github.com/jsonpp-lang/jsonpp/tree"
)

// ParseFile tokenizes and parses src, producing a Module whose Dir is
// used to resolve relative include/import paths found within it.
func ParseFile(filename, dir string, src []byte) (*tree.Module, error) {
	p := &parser{
		file: token.NewFile(filename, len(src)),
		mod:  &tree.Module{Dir: dir, Path: filename},
	}
	p.scan.Init(p.file, src, scanner.NewErrorList(&p.errors))
	p.next()

	root := p.parseValue(nil, nil)
	p.expect(token.EOF)

	if len(p.errors) > 0 {
		return nil, p.errors.Err()
	}
	p.mod.Root = root
	return p.mod, nil
}

type parser struct {
	file   *token.File
	mod    *tree.Module
	scan   scanner.Scanner
	errors errors.List

	pos  token.Pos
	kind token.Kind
	lit  string
}

func (p *parser) next() {
	p.pos, p.kind, p.lit = p.scan.Scan()
}

func (p *parser) errorf(pos token.Pos, format string, args ...interface{}) {
	p.errors.Add(errors.Newf(errors.Parse, pos, format, args...))
}

// expect consumes the current token if it has kind k, else records a
// ParseError and leaves the cursor in place so callers can try to
// recover by treating the rest of the input as absent.
func (p *parser) expect(k token.Kind) token.Pos {
	pos := p.pos
	if p.kind != k {
		p.errorf(p.pos, "expected %s, found %s %q", k, p.kind, p.lit)
		return pos
	}
	p.next()
	return pos
}

// parseValue parses one value (object, array, call, literal, or
// identifier) and tags it with path, a child of parent.
func (p *parser) parseValue(path tree.Path, parent *tree.Node) *tree.Node {
	switch p.kind {
	case token.LBRACE:
		return p.parseObject(path, parent)
	case token.LBRACK:
		return p.parseArray(path, parent)
	case token.LPAREN:
		return p.parseCall(path, parent)
	case token.STRING:
		n := p.leaf(tree.StringKind, path, parent)
		n.StringVal = p.lit
		p.next()
		return n
	case token.INT:
		n := p.leaf(tree.IntKind, path, parent)
		v, err := strconv.ParseInt(p.lit, 10, 64)
		if err != nil {
			p.errorf(p.pos, "invalid integer literal %q: %s", p.lit, err)
		}
		n.IntVal = v
		p.next()
		return n
	case token.FLOAT:
		n := p.leaf(tree.FloatKind, path, parent)
		v, err := strconv.ParseFloat(p.lit, 64)
		if err != nil {
			p.errorf(p.pos, "invalid float literal %q: %s", p.lit, err)
		}
		n.FloatVal = v
		p.next()
		return n
	case token.TRUE, token.FALSE:
		n := p.leaf(tree.BoolKind, path, parent)
		n.BoolVal = p.kind == token.TRUE
		p.next()
		return n
	case token.NULL:
		n := p.leaf(tree.NullKind, path, parent)
		p.next()
		return n
	case token.UNDEFINED:
		n := p.leaf(tree.UndefinedKind, path, parent)
		p.next()
		return n
	case token.IDENT:
		n := p.leaf(tree.IdentKind, path, parent)
		n.Ident = p.lit
		p.next()
		return n
	default:
		p.errorf(p.pos, "unexpected token %s %q; expected a value", p.kind, p.lit)
		n := p.leaf(tree.NullKind, path, parent)
		p.next()
		return n
	}
}

func (p *parser) leaf(kind tree.Kind, path tree.Path, parent *tree.Node) *tree.Node {
	return &tree.Node{
		Kind:   kind,
		Path:   path,
		Pos:    p.pos,
		Parent: parent,
		File:   p.mod,
	}
}

func (p *parser) parseObject(path tree.Path, parent *tree.Node) *tree.Node {
	n := &tree.Node{
		Kind:   tree.ObjectKind,
		Path:   path,
		Pos:    p.pos,
		Parent: parent,
		File:   p.mod,
		Fields: map[string]*tree.Node{},
	}
	p.expect(token.LBRACE)
	for p.kind != token.RBRACE && p.kind != token.EOF {
		if p.kind != token.STRING {
			p.errorf(p.pos, "expected object key (string), found %s %q", p.kind, p.lit)
			p.next()
			continue
		}
		key := p.lit
		p.next()
		p.expect(token.COLON)

		if _, dup := n.Fields[key]; dup {
			p.errorf(p.pos, "duplicate object key %q", key)
		} else {
			n.Keys = append(n.Keys, key)
		}
		childPath := append(append(tree.Path{}, path...), tree.Step{Kind: tree.KeyStep, Key: key})
		n.Fields[key] = p.parseValue(childPath, n)

		if p.kind == token.COMMA {
			p.next()
		} else if p.kind != token.RBRACE {
			p.errorf(p.pos, "expected ',' or '}', found %s %q", p.kind, p.lit)
			break
		}
	}
	p.expect(token.RBRACE)
	return n
}

func (p *parser) parseArray(path tree.Path, parent *tree.Node) *tree.Node {
	n := &tree.Node{
		Kind:   tree.ArrayKind,
		Path:   path,
		Pos:    p.pos,
		Parent: parent,
		File:   p.mod,
	}
	p.expect(token.LBRACK)
	idx := 0
	for p.kind != token.RBRACK && p.kind != token.EOF {
		childPath := append(append(tree.Path{}, path...), tree.Step{Kind: tree.IndexStep, Index: idx})
		n.Elems = append(n.Elems, p.parseValue(childPath, n))
		idx++

		if p.kind == token.COMMA {
			p.next()
		} else if p.kind != token.RBRACK {
			p.errorf(p.pos, "expected ',' or ']', found %s %q", p.kind, p.lit)
			break
		}
	}
	p.expect(token.RBRACK)
	return n
}

// parseCall parses '(' value value* ')'. Commas between arguments
// (including the head) are accepted but optional.
func (p *parser) parseCall(path tree.Path, parent *tree.Node) *tree.Node {
	n := &tree.Node{
		Kind:   tree.CallKind,
		Path:   path,
		Pos:    p.pos,
		Parent: parent,
		File:   p.mod,
	}
	p.expect(token.LPAREN)

	if p.kind == token.RPAREN {
		p.errorf(p.pos, "empty call expression")
		p.next()
		return n
	}

	headPath := append(append(tree.Path{}, path...), tree.Step{Kind: tree.ArgStep, Index: 0})
	n.Head = p.parseValue(headPath, n)

	argIdx := 1
	for p.kind != token.RPAREN && p.kind != token.EOF {
		if p.kind == token.COMMA {
			p.next()
			if p.kind == token.RPAREN {
				break // trailing comma
			}
		}
		if p.kind == token.RPAREN {
			break
		}
		argPath := append(append(tree.Path{}, path...), tree.Step{Kind: tree.ArgStep, Index: argIdx})
		n.Args = append(n.Args, p.parseValue(argPath, n))
		argIdx++
	}
	p.expect(token.RPAREN)
	return n
}

