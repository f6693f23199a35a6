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

// Package child executes child command line processes.
package child

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/abcxyz/pkg/logging"
)

// waitDelay bounds how long Wait blocks on a canceled process whose
// descendants still hold its output pipes open.
const waitDelay = 2 * time.Second

// RunConfig are the inputs for a run operation.
type RunConfig struct {
	Stdout     io.Writer
	Stderr     io.Writer
	WorkingDir string
	Command    string
	Args       []string
}

// Run executes a child process with the provided arguments and returns its
// exit code. A non-zero exit code is also returned as an error.
func Run(ctx context.Context, cfg *RunConfig) (int, error) {
	logger := logging.FromContext(ctx).
		With("command", cfg.Command).
		With("working_dir", cfg.WorkingDir)

	path, err := exec.LookPath(cfg.Command)
	if err != nil {
		return -1, fmt.Errorf("failed to locate command exec path: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, cfg.Args...)
	cmd.Dir = cfg.WorkingDir
	cmd.Stdout = cfg.Stdout
	cmd.Stderr = cfg.Stderr
	cmd.WaitDelay = waitDelay

	logger.DebugContext(ctx, "running child process", "args", cfg.Args)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), fmt.Errorf("failed to run command: %w", err)
		}
		return -1, fmt.Errorf("failed to run command: %w", err)
	}
	return 0, nil
}
