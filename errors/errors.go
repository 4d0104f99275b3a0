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

// Package errors defines the fatal error kinds JPP evaluation can raise,
// all implementing a common Error interface carrying a source position.
//
// Message is an embeddable for printf-style, future-localizable text; List
// collects multiple errors while still satisfying the error interface.
package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsonpp-lang/jsonpp/token"
)

// Message carries a printf-style format and its arguments so that text can
// be produced lazily and, in principle, localized later.
type Message struct {
	format string
	args   []interface{}
}

// NewMessagef builds a Message from a format string and arguments.
func NewMessagef(format string, args ...interface{}) Message {
	return Message{format: format, args: args}
}

func (m *Message) Error() string { return fmt.Sprintf(m.format, m.args...) }

// Msg returns the unformatted message and its arguments.
func (m *Message) Msg() (string, []interface{}) { return m.format, m.args }

// Kind identifies one of JPP's fatal error categories.
type Kind int

const (
	Parse Kind = iota
	Ref
	Cycle
	Name
	Type
	Math
	IO
	Stack
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "ParseError"
	case Ref:
		return "RefError"
	case Cycle:
		return "CycleError"
	case Name:
		return "NameError"
	case Type:
		return "TypeError"
	case Math:
		return "MathError"
	case IO:
		return "IOError"
	case Stack:
		return "StackError"
	default:
		return "Error"
	}
}

// ExitCode returns the process exit code associated with errors of this
// kind: 1 for evaluation/parse errors, 2 for I/O.
func (k Kind) ExitCode() int {
	if k == IO {
		return 2
	}
	return 1
}

// Error is the common interface implemented by every JPP error kind.
type Error interface {
	error
	Kind() Kind
	Position() token.Pos
}

// posError is the concrete type behind Newf/the Kind-specific constructors.
type posError struct {
	kind Kind
	pos  token.Pos
	Message
	path []string // populated for CycleError
}

func (e *posError) Kind() Kind         { return e.kind }
func (e *posError) Position() token.Pos { return e.pos }

// Path returns the cycle's Node paths, non-nil only for CycleError.
func (e *posError) Path() []string { return e.path }

func (e *posError) Error() string {
	msg := e.Message.Error()
	loc := e.pos.Position()
	if !loc.IsValid() {
		return fmt.Sprintf("%s: %s", e.kind, msg)
	}
	return fmt.Sprintf("%s: %s: %s", loc, e.kind, msg)
}

// Newf constructs an Error of the given kind at pos with a formatted message.
func Newf(kind Kind, pos token.Pos, format string, args ...interface{}) Error {
	return &posError{kind: kind, pos: pos, Message: NewMessagef(format, args...)}
}

// NewCycle constructs a CycleError naming the Node paths that form the cycle.
func NewCycle(pos token.Pos, path []string) Error {
	return &posError{
		kind:    Cycle,
		pos:     pos,
		Message: NewMessagef("cycle detected: %s", strings.Join(path, " -> ")),
		path:    path,
	}
}

// List collects zero or more Errors and itself satisfies error.
type List []Error

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
	}
}

// Add appends err to the list, flattening any nested List.
func (l *List) Add(err error) {
	switch e := err.(type) {
	case nil:
		return
	case List:
		*l = append(*l, e...)
	case Error:
		*l = append(*l, e)
	default:
		*l = append(*l, &posError{kind: Parse, pos: token.Pos{}, Message: NewMessagef("%s", err.Error())})
	}
}

// Err returns l as an error, or nil if l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Printf is the signature Print uses to render each line, matching both
// fmt.Fprintf and (*message.Printer).Fprintf, so a caller can route error
// output through a locale-aware golang.org/x/text/message.Printer the way
// CUE's CLI does rather than a plain fmt.Fprintf.
type Printf func(w io.Writer, format string, args ...interface{}) (int, error)

// Print writes a one-line-per-error rendering of err to w, one line per
// Error in a List, using printf to render each line (nil defaults to
// fmt.Fprintf). Non-Error errors are printed using their plain Error()
// text.
func Print(w io.Writer, err error, printf Printf) {
	if err == nil {
		return
	}
	if printf == nil {
		printf = fmt.Fprintf
	}
	if l, ok := err.(List); ok {
		for _, e := range l {
			printf(w, "%s\n", e.Error())
		}
		return
	}
	printf(w, "%s\n", err.Error())
}

// As reports whether err (or any error it wraps) is a JPP Error, and if so
// sets *target to it.
func As(err error, target *Error) bool {
	for err != nil {
		if e, ok := err.(Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
