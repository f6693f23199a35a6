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

package child

import (
	"bytes"
	"context"
	"testing"

	"github.com/abcxyz/pkg/logging"
	"github.com/abcxyz/pkg/testutil"
)

func TestRun(t *testing.T) {
	t.Parallel()

	ctx := logging.WithLogger(context.Background(), logging.TestLogger(t))

	cases := []struct {
		name        string
		command     string
		args        []string
		workingDir  string
		expStdout   string
		expStderr   string
		expExitCode int
		err         string
	}{
		{
			name:      "success",
			command:   "bash",
			args:      []string{"-c", "echo \"this is a test\""},
			expStdout: "this is a test\n",
		},
		{
			name:       "working_dir",
			command:    "bash",
			args:       []string{"-c", "pwd"},
			workingDir: "/",
			expStdout:  "/\n",
		},
		{
			name:        "returns_stderr",
			command:     "bash",
			args:        []string{"-c", "echo stdout && echo stderr >&2 && exit 3"},
			expStdout:   "stdout\n",
			expStderr:   "stderr\n",
			expExitCode: 3,
			err:         "failed to run command: exit status 3",
		},
		{
			name:        "unknown_command",
			command:     "thisisnotacommand",
			expExitCode: -1,
			err:         "failed to locate command exec path: exec: \"thisisnotacommand\"",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer

			exitCode, err := Run(ctx, &RunConfig{
				Stdout:     &stdout,
				Stderr:     &stderr,
				WorkingDir: tc.workingDir,
				Command:    tc.command,
				Args:       tc.args,
			})
			if diff := testutil.DiffErrString(err, tc.err); diff != "" {
				t.Error(diff)
			}

			if got, want := exitCode, tc.expExitCode; got != want {
				t.Errorf("expected exit code %d to be %d", got, want)
			}
			if got, want := stdout.String(), tc.expStdout; got != want {
				t.Errorf("expected stdout %q to be %q", got, want)
			}
			if got, want := stderr.String(), tc.expStderr; got != want {
				t.Errorf("expected stderr %q to be %q", got, want)
			}
		})
	}
}
