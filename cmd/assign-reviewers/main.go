// Copyright 2026 The Authors (see AUTHORS file)
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

// Package main is the main entrypoint to the application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abcxyz/assign-reviewers/pkg/cli"
	"github.com/abcxyz/pkg/logging"
)

const (
	envPrefix = "ASSIGN_REVIEWERS_"

	defaultLogLevel  = "warn"
	defaultLogFormat = "json"
	defaultLogDebug  = "false"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer done()

	if err := realMain(ctx); err != nil {
		done()
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func realMain(ctx context.Context) error {
	setLogEnvVars()
	ctx = logging.WithLogger(ctx, logging.NewFromEnv(envPrefix))

	return cli.Run(ctx, os.Args[1:]) //nolint:wrapcheck // Want passthrough
}

// setLogEnvVars set the logging environment variables to their default
// values if not provided.
func setLogEnvVars() {
	if os.Getenv(envPrefix+"LOG_FORMAT") == "" {
		os.Setenv(envPrefix+"LOG_FORMAT", defaultLogFormat)
	}

	if os.Getenv(envPrefix+"LOG_LEVEL") == "" {
		os.Setenv(envPrefix+"LOG_LEVEL", defaultLogLevel)
	}

	if os.Getenv(envPrefix+"LOG_DEBUG") == "" {
		os.Setenv(envPrefix+"LOG_DEBUG", defaultLogDebug)
	}
}
