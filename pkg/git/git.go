// Copyright 2023 The Authors (see AUTHORS file)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package git defines the functionality to interact with the git CLI.
package git

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/abcxyz/assign-reviewers/pkg/child"
	"github.com/abcxyz/pkg/logging"
)

var _ Git = (*GitClient)(nil)

// newline is a regexp to split strings at line breaks.
var newline = regexp.MustCompile("\r?\n")

// Git defines the common git functionality.
type Git interface {
	// DiffFiles returns the files changed on headRef since it diverged from
	// baseRef.
	DiffFiles(ctx context.Context, baseRef, headRef string) ([]string, error)
}

// GitClient implements the git interface.
type GitClient struct {
	workingDir string
}

// NewGitClient creates a new git client.
func NewGitClient(workingDir string) *GitClient {
	return &GitClient{
		workingDir: workingDir,
	}
}

// DiffFiles runs a git diff against the merge base of the two revisions, the
// same comparison a pull request shows, and returns the changed repository
// relative paths.
func (g *GitClient) DiffFiles(ctx context.Context, baseRef, headRef string) ([]string, error) {
	logger := logging.FromContext(ctx).With("working_dir", g.workingDir)

	var stdout, stderr bytes.Buffer

	_, err := child.Run(ctx, &child.RunConfig{
		Stdout:     &stdout,
		Stderr:     &stderr,
		WorkingDir: g.workingDir,
		Command:    "git",
		Args:       []string{"diff", "--name-only", "--no-renames", fmt.Sprintf("%s...%s", baseRef, headRef)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run git diff command: %w\n\n%s", err, stderr.String())
	}

	logger.DebugContext(ctx, "git diff output", "output", stdout.String())

	return parseDiffFiles(stdout.String()), nil
}

// parseDiffFiles splits git output at newlines and returns the unique,
// slash separated file paths in the order git printed them.
func parseDiffFiles(stdout string) []string {
	seen := make(map[string]struct{})
	files := make([]string, 0)

	for _, line := range newline.Split(stdout, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		p := path.Clean(strings.ReplaceAll(line, "\\", "/"))
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}
	return files
}
