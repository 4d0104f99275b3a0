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
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsonpp-lang/jsonpp/errors"
	"github.com/jsonpp-lang/jsonpp/eval"
	"github.com/jsonpp-lang/jsonpp/parser"
	"github.com/jsonpp-lang/jsonpp/serialize"
)

type rootOptions struct {
	input      string
	output     string
	force      bool
	configPath string
	maxDepth   int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "jsonpp",
		Short:         "Evaluate a JSON++ document and emit strict JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "read source from PATH (default: stdin)")
	cmd.Flags().StringVar(&opts.output, "output", "", "write JSON to PATH (default: stdout)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing --output file")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "optional YAML config file")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", eval.DefaultMaxDepth, "evaluation depth limit before StackError")

	cmd.AddCommand(newASTCmd())
	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	if opts.configPath != "" {
		cfg, err := loadConfig(opts.configPath)
		if err != nil {
			return errors.Newf(errors.IO, noPos(), "reading config %q: %s", opts.configPath, err)
		}
		if opts.output == "" {
			opts.output = cfg.Output
		}
		if !cmd.Flags().Changed("force") {
			opts.force = cfg.Force
		}
	}

	src, filename, dir, err := readSource(opts.input)
	if err != nil {
		return err
	}

	mod, err := parser.ParseFile(filename, dir, src)
	if err != nil {
		return err
	}

	fs := eval.FileSystem(eval.OSFileSystem{})
	if opts.configPath != "" {
		if cfg, cerr := loadConfig(opts.configPath); cerr == nil && len(cfg.IncludeSearch) > 0 {
			fs = eval.SearchPathFileSystem{Roots: cfg.IncludeSearch}
		}
	}

	e := eval.NewEvaluator(mod, fs, opts.maxDepth)
	v, err := e.EvaluateRoot()
	if err != nil {
		return err
	}

	out, err := serialize.Marshal(v)
	if err != nil {
		return errors.Newf(errors.Type, noPos(), "%s", err)
	}

	return writeOutput(opts.output, opts.force, out)
}

func readSource(input string) (src []byte, filename, dir string, err error) {
	if input == "" {
		data, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			return nil, "", "", errors.Newf(errors.IO, noPos(), "reading stdin: %s", rerr)
		}
		wd, werr := os.Getwd()
		if werr != nil {
			return nil, "", "", errors.Newf(errors.IO, noPos(), "getting working directory: %s", werr)
		}
		return data, "<stdin>", wd, nil
	}
	data, rerr := os.ReadFile(input)
	if rerr != nil {
		return nil, "", "", errors.Newf(errors.IO, noPos(), "reading %q: %s", input, rerr)
	}
	return data, input, dirOf(input), nil
}

func writeOutput(output string, force bool, data []byte) error {
	if output == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		if err != nil {
			return errors.Newf(errors.IO, noPos(), "writing stdout: %s", err)
		}
		return nil
	}
	if !force {
		if _, statErr := os.Stat(output); statErr == nil {
			return errors.Newf(errors.IO, noPos(), "output %q already exists; use --force to overwrite", output)
		}
	}
	var buf bytes.Buffer
	buf.Write(data)
	buf.WriteByte('\n')
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return errors.Newf(errors.IO, noPos(), "writing %q: %s", output, err)
	}
	return nil
}
