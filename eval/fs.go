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

package eval

import (
	"os"
	"path/filepath"
)

// FileSystem resolves and reads include/import targets. The default
// OSFileSystem reads the local disk; tests substitute an in-memory
// implementation.
type FileSystem interface {
	// Resolve returns the cleaned path denoted by path when resolved
	// relative to dir (the directory of the file containing the
	// include/import call); the result is absolute whenever dir is. An
	// absolute path is returned cleaned as-is.
	Resolve(dir, path string) (string, error)
	// ReadFile returns the contents at an absolute path produced by Resolve.
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem resolves paths against the local filesystem using
// filepath for CWD-relative resolution.
type OSFileSystem struct{}

func (OSFileSystem) Resolve(dir, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Clean(filepath.Join(dir, path)), nil
}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// SearchPathFileSystem resolves against the calling file's own directory
// first, then falls back to each of Roots in order (the `--config` file's
// optional extra include search roots). Roots are never consulted for an
// absolute path.
type SearchPathFileSystem struct {
	Roots []string
}

func (fs SearchPathFileSystem) Resolve(dir, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	candidate := filepath.Clean(filepath.Join(dir, path))
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	for _, root := range fs.Roots {
		c := filepath.Clean(filepath.Join(root, path))
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return candidate, nil
}

func (fs SearchPathFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
