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

import "github.com/jsonpp-lang/jsonpp/errors"

// exitCodeFor maps a top-level error to the process exit code contract:
// 0 success (unreachable here, Execute only returns non-nil on error), 1
// evaluation/parse error, 2 I/O error, 3 usage error. Any error that
// isn't one of JPP's own Error kinds came from cobra's own flag parsing,
// which only ever rejects bad CLI usage.
func exitCodeFor(err error) int {
	var jppErr errors.Error
	if errors.As(err, &jppErr) {
		return jppErr.Kind().ExitCode()
	}
	return 3
}
