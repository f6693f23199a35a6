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

// Package validate implements the command that checks a reviewer
// configuration file.
package validate

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/abcxyz/assign-reviewers/pkg/config"
	"github.com/abcxyz/assign-reviewers/pkg/flags"
	"github.com/abcxyz/assign-reviewers/pkg/util"
	"github.com/abcxyz/pkg/cli"
	"github.com/abcxyz/pkg/logging"
)

var _ cli.Command = (*ValidateCommand)(nil)

type ValidateCommand struct {
	cli.BaseCommand

	flags.ConfigFlags
}

func (c *ValidateCommand) Desc() string {
	return `Validate a reviewer configuration file`
}

func (c *ValidateCommand) Help() string {
	return `
Usage: {{ COMMAND }} [options] [<path>]

	Load and validate a reviewer configuration file and print the rules it
	defines. The path argument takes precedence over the -config flag.
`
}

func (c *ValidateCommand) Flags() *cli.FlagSet {
	set := c.NewFlagSet()
	c.ConfigFlags.Register(set)
	return set
}

func (c *ValidateCommand) Run(ctx context.Context, args []string) error {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	parsedArgs := f.Args()
	if len(parsedArgs) > 1 {
		return flag.ErrHelp
	}
	if len(parsedArgs) == 1 {
		c.ConfigFlags.FlagConfig = strings.TrimSpace(parsedArgs[0])
	}

	return c.Process(ctx)
}

// Process loads the configuration and prints a summary of it.
func (c *ValidateCommand) Process(ctx context.Context) error {
	path := c.ConfigFlags.FlagConfig
	logger := logging.FromContext(ctx).With("path", path)

	cfg, err := config.Load(path)
	if err != nil {
		return err //nolint:wrapcheck // Want passthrough
	}
	logger.DebugContext(ctx, "configuration is valid", "reviewer_rules", len(cfg.Reviewers))

	c.Outf("%s is valid", path)

	c.Outf("")
	c.Outf("reviewers:")
	if len(cfg.Reviewers) == 0 {
		c.Outf("  (none)")
	}
	for _, r := range cfg.Reviewers {
		kind := "user"
		if r.Team {
			kind = "team"
		}
		c.Outf("  %s (%s): %s", r.Name, kind, describePaths(r))
	}

	if cfg.Ignore != nil {
		c.Outf("")
		c.Outf("ignore:")
		if authors := util.JoinSorted(cfg.Ignore.Authors, ", "); authors != "" {
			c.Outf("  authors: %s", authors)
		}
		if titles := util.JoinSorted(cfg.Ignore.Titles, ", "); titles != "" {
			c.Outf("  titles: %s", titles)
		}
	}

	return nil
}

func describePaths(r *config.ReviewerRule) string {
	switch {
	case r.Unconditional():
		return "always requested"
	case len(r.Paths) == 0:
		return "never requested"
	default:
		return strings.Join(r.Paths, ", ")
	}
}
