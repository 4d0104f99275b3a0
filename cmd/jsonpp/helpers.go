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

package main

import (
	"path/filepath"

	"github.com/jsonpp-lang/jsonpp/token"
)

func dirOf(path string) string {
	return filepath.Dir(path)
}

// noPos is used for errors raised by the CLI driver itself (I/O around
// the pipeline), which have no source position to blame.
func noPos() token.Pos {
	return token.Pos{}
}
