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

// Package scanner implements a tokenizer for JSON++ source text: an
// offset-based character reader feeding a hand-rolled Scan loop, with
// comments and whitespace skipped between tokens.
package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/jsonpp-lang/jsonpp/errors"
	"github.com/jsonpp-lang/jsonpp/token"
)

// ErrorHandler receives a scanner error at the given source position.
type ErrorHandler func(pos token.Pos, msg string)

// Scanner tokenizes one source file. Init must be called before Scan.
type Scanner struct {
	file *token.File
	src  []byte
	err  ErrorHandler

	ch       rune // current character, -1 at EOF
	offset   int  // offset of ch
	rdOffset int  // offset after ch

	ErrorCount int
}

const eof = -1

// Init prepares s to scan src, associating positions with file.
func (s *Scanner) Init(file *token.File, src []byte, err ErrorHandler) {
	s.file = file
	s.src = src
	s.err = err
	s.ch = ' '
	s.offset = 0
	s.rdOffset = 0
	s.ErrorCount = 0
	s.next()
}

func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		r, w := rune(s.src[s.rdOffset]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.offset, "illegal UTF-8 encoding")
			}
		}
		s.rdOffset += w
		s.ch = r
	} else {
		s.offset = len(s.src)
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		s.ch = eof
	}
}

func (s *Scanner) pos(offset int) token.Pos { return token.Pos{File: s.file, Offset: offset} }

func (s *Scanner) error(offset int, msg string) {
	s.ErrorCount++
	if s.err != nil {
		s.err(s.pos(offset), msg)
	}
}

func (s *Scanner) errorf(offset int, format string, args ...interface{}) {
	s.error(offset, fmt.Sprintf(format, args...))
}

func isLetter(ch rune) bool {
	return ch == '_' || 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9' || ch >= utf8.RuneSelf && unicode.IsDigit(ch)
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch s.ch {
		case ' ', '\t', '\r', '\n':
			s.next()
			continue
		case '/':
			switch peek := s.peek(); {
			case peek == '/':
				s.skipLineComment()
				continue
			case peek == '*':
				s.skipBlockComment()
				continue
			}
		}
		return
	}
}

func (s *Scanner) peek() rune {
	if s.rdOffset < len(s.src) {
		return rune(s.src[s.rdOffset])
	}
	return eof
}

func (s *Scanner) skipLineComment() {
	s.next() // consume second '/'
	s.next()
	for s.ch != '\n' && s.ch != eof {
		s.next()
	}
}

func (s *Scanner) skipBlockComment() {
	offs := s.offset
	s.next() // consume '*'
	s.next()
	for {
		if s.ch == eof {
			s.error(offs, "comment not terminated")
			return
		}
		if s.ch == '*' && s.peek() == '/' {
			s.next()
			s.next()
			return
		}
		s.next()
	}
}

func (s *Scanner) scanIdentifier() string {
	offs := s.offset
	for isLetter(s.ch) || isDigit(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

// scanNumber scans a JSON-grammar number: -?(0|[1-9]\d*)(\.\d+)?([eE][+-]?\d+)?
// and reports whether it saw a '.' or exponent (making it a FLOAT).
func (s *Scanner) scanNumber() (token.Kind, string) {
	offs := s.offset
	isFloat := false

	if s.ch == '-' {
		s.next()
	}
	if s.ch == '0' {
		s.next()
	} else if s.ch >= '1' && s.ch <= '9' {
		for isDigit(s.ch) {
			s.next()
		}
	} else {
		s.error(offs, "illegal number")
	}
	if s.ch == '.' {
		isFloat = true
		s.next()
		if !isDigit(s.ch) {
			s.error(s.offset, "illegal number: expected digit after '.'")
		}
		for isDigit(s.ch) {
			s.next()
		}
	}
	if s.ch == 'e' || s.ch == 'E' {
		isFloat = true
		s.next()
		if s.ch == '+' || s.ch == '-' {
			s.next()
		}
		if !isDigit(s.ch) {
			s.error(s.offset, "illegal number: expected digit in exponent")
		}
		for isDigit(s.ch) {
			s.next()
		}
	}

	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}
	return kind, string(s.src[offs:s.offset])
}

func digitVal(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'F':
		return int(ch-'A') + 10
	}
	return 16
}

// scanString scans the body of a string literal; the opening quote has
// already been consumed by the caller, so s.ch is the first content byte.
func (s *Scanner) scanString(offs int) string {
	var buf []byte
	for {
		ch := s.ch
		if ch == '\n' || ch == eof {
			s.error(offs, "string literal not terminated")
			break
		}
		s.next()
		if ch == '"' {
			break
		}
		if ch == '\\' {
			buf = append(buf, s.scanEscape()...)
			continue
		}
		buf = appendRune(buf, ch)
	}
	return string(buf)
}

func appendRune(buf []byte, ch rune) []byte {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], ch)
	return append(buf, tmp[:n]...)
}

func (s *Scanner) scanEscape() []byte {
	ch := s.ch
	switch ch {
	case '"', '\\', '/':
		s.next()
		return []byte{byte(ch)}
	case 'n':
		s.next()
		return []byte{'\n'}
	case 't':
		s.next()
		return []byte{'\t'}
	case 'r':
		s.next()
		return []byte{'\r'}
	case 'b':
		s.next()
		return []byte{'\b'}
	case 'f':
		s.next()
		return []byte{'\f'}
	case 'u':
		s.next()
		r := s.scanHex4()
		if utf16IsHighSurrogate(r) && s.ch == '\\' && s.peek() == 'u' {
			s.next()
			s.next()
			r2 := s.scanHex4()
			if utf16IsLowSurrogate(r2) {
				r = utf16DecodeSurrogatePair(r, r2)
			} else {
				return append(appendRune(nil, r), appendRune(nil, r2)...)
			}
		}
		return appendRune(nil, r)
	default:
		s.errorf(s.offset, "illegal escape sequence '\\%c'", ch)
		s.next()
		return nil
	}
}

func (s *Scanner) scanHex4() rune {
	var v rune
	for i := 0; i < 4; i++ {
		d := digitVal(s.ch)
		if d >= 16 {
			s.error(s.offset, "illegal unicode escape")
			return v
		}
		v = v*16 + rune(d)
		s.next()
	}
	return v
}

func utf16IsHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }
func utf16IsLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }

func utf16DecodeSurrogatePair(hi, lo rune) rune {
	return ((hi - 0xD800) << 10) + (lo - 0xDC00) + 0x10000
}

// Scan returns the position, kind, and literal text of the next token.
// Trailing commas before '}', ']', ')' are consumed by the caller (the
// parser), not filtered here; Scan reports every comma it sees.
func (s *Scanner) Scan() (pos token.Pos, kind token.Kind, lit string) {
	s.skipWhitespaceAndComments()
	pos = s.pos(s.offset)

	switch ch := s.ch; {
	case isLetter(ch):
		lit = s.scanIdentifier()
		kind = token.Lookup(lit)
	case isDigit(ch):
		kind, lit = s.scanNumber()
	case ch == '-' && isDigit(s.peek()):
		kind, lit = s.scanNumber()
	default:
		s.next()
		switch ch {
		case eof:
			kind = token.EOF
		case '"':
			lit = s.scanString(s.offset - 1)
			kind = token.STRING
		case '{':
			kind = token.LBRACE
		case '}':
			kind = token.RBRACE
		case '[':
			kind = token.LBRACK
		case ']':
			kind = token.RBRACK
		case '(':
			kind = token.LPAREN
		case ')':
			kind = token.RPAREN
		case ',':
			kind = token.COMMA
		case ':':
			kind = token.COLON
		default:
			s.errorf(s.offset-1, "illegal character %#U", ch)
			kind = token.ILLEGAL
		}
		if kind >= token.LBRACE && kind <= token.COLON {
			lit = string(ch)
		}
	}
	return pos, kind, lit
}

// NewErrorList returns an ErrorHandler that appends ParseErrors to list.
func NewErrorList(list *errors.List) ErrorHandler {
	return func(pos token.Pos, msg string) {
		list.Add(errors.Newf(errors.Parse, pos, "%s", msg))
	}
}
