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
	"fmt"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/jsonpp-lang/jsonpp/parser"
)

// newASTCmd is a debug aid, not load-bearing for the evaluation
// pipeline: it dumps the parsed (pre-evaluation) tree so the parser's
// output can be inspected directly.
func newASTCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "ast",
		Short: "Dump the parsed tree without evaluating it",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, filename, dir, err := readSource(input)
			if err != nil {
				return err
			}
			mod, err := parser.ParseFile(filename, dir, src)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.Sprint(mod.Root))
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "read source from PATH (default: stdin)")
	return cmd
}
