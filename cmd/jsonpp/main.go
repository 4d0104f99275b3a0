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

// Command jsonpp evaluates a JSON++ (JPP) source document and emits
// strict JSON.
package main

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jsonpp-lang/jsonpp/errors"
)

func main() {
	os.Exit(Main())
}

// Main runs the jsonpp CLI and returns the process exit code, without
// calling os.Exit itself, so that it can also be driven from a
// testscript-based integration test in the same binary.
func Main() int {
	if err := newRootCmd().Execute(); err != nil {
		p := message.NewPrinter(getLang())
		errors.Print(os.Stderr, err, p.Fprintf)
		return exitCodeFor(err)
	}
	return 0
}

// getLang reports the process locale from LC_ALL/LANG, the same
// environment variables CUE's CLI reads, so error output can be run
// through a locale-aware printer.
func getLang() language.Tag {
	loc := os.Getenv("LC_ALL")
	if loc == "" {
		loc = os.Getenv("LANG")
	}
	loc = strings.Split(loc, ".")[0]
	return language.Make(loc)
}
