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

// Package preview implements the command that shows which reviewers would be
// requested for local changes.
package preview

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/abcxyz/assign-reviewers/pkg/config"
	"github.com/abcxyz/assign-reviewers/pkg/flags"
	"github.com/abcxyz/assign-reviewers/pkg/git"
	"github.com/abcxyz/assign-reviewers/pkg/reviewers"
	"github.com/abcxyz/pkg/cli"
	"github.com/abcxyz/pkg/logging"
)

var _ cli.Command = (*PreviewCommand)(nil)

type PreviewCommand struct {
	cli.BaseCommand

	flags.ConfigFlags

	flagDir              string
	flagBaseRef          string
	flagHeadRef          string
	flagFiles            []string
	flagActor            string
	flagTitle            string
	flagMatchHiddenFiles bool

	gitClient git.Git
}

func (c *PreviewCommand) Desc() string {
	return `Show the reviewers that would be requested for local changes`
}

func (c *PreviewCommand) Help() string {
	return `
Usage: {{ COMMAND }} [options]

	Resolve reviewers for the files changed between two git revisions, or for
	an explicit list of files, without calling the GitHub API.
`
}

func (c *PreviewCommand) Flags() *cli.FlagSet {
	set := c.NewFlagSet()

	c.ConfigFlags.Register(set)

	f := set.NewSection("COMMAND OPTIONS")

	f.StringVar(&cli.StringVar{
		Name:    "dir",
		Target:  &c.flagDir,
		Default: ".",
		Usage:   "The git working directory to diff.",
	})

	f.StringVar(&cli.StringVar{
		Name:    "base-ref",
		Target:  &c.flagBaseRef,
		Default: "origin/main",
		Usage:   "The revision the changes will be merged into.",
	})

	f.StringVar(&cli.StringVar{
		Name:    "head-ref",
		Target:  &c.flagHeadRef,
		Default: "HEAD",
		Usage:   "The revision containing the changes.",
	})

	f.StringSliceVar(&cli.StringSliceVar{
		Name:    "file",
		Target:  &c.flagFiles,
		Example: "src/main.go",
		Usage:   "A changed file path. When set, git is not consulted. Can be repeated.",
	})

	f.StringVar(&cli.StringVar{
		Name:    "actor",
		Target:  &c.flagActor,
		Example: "octocat",
		Usage:   "The user opening the pull request. Rules with this name are skipped.",
	})

	f.StringVar(&cli.StringVar{
		Name:    "title",
		Target:  &c.flagTitle,
		Example: "feat: add widgets",
		Usage:   "The pull request title checked against the ignore rules.",
	})

	f.BoolVar(&cli.BoolVar{
		Name:    "match-hidden-files",
		Target:  &c.flagMatchHiddenFiles,
		Default: false,
		Usage:   "Allow wildcards in path patterns to match files and directories that start with a period.",
	})

	return set
}

func (c *PreviewCommand) Run(ctx context.Context, args []string) error {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	parsedArgs := f.Args()
	if len(parsedArgs) > 0 {
		return flag.ErrHelp
	}

	c.gitClient = git.NewGitClient(c.flagDir)

	return c.Process(ctx)
}

// Process resolves and prints the reviewers for the changed files.
func (c *PreviewCommand) Process(ctx context.Context) error {
	logger := logging.FromContext(ctx).
		With("actor", c.flagActor).
		With("base_ref", c.flagBaseRef).
		With("head_ref", c.flagHeadRef)

	cfg, err := config.Load(c.ConfigFlags.FlagConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if reason, ignored := reviewers.IgnoreReason(cfg.Ignore, c.flagActor, c.flagTitle); ignored {
		c.Outf("Pull request would be skipped: %s", reason)
		return nil
	}

	files := c.flagFiles
	if len(files) == 0 {
		files, err = c.gitClient.DiffFiles(ctx, c.flagBaseRef, c.flagHeadRef)
		if err != nil {
			return fmt.Errorf("failed to find changed files: %w", err)
		}
	}
	logger.DebugContext(ctx, "found changed files", "files", files)

	if len(files) == 0 {
		c.Outf("No files changed")
		return nil
	}

	resolver := reviewers.NewResolver(nil, c.flagMatchHiddenFiles)
	for _, rule := range cfg.Reviewers {
		if rule == nil {
			continue
		}
		if rule.Name == c.flagActor {
			c.Outf("- %s: skipped, author of the pull request", rule.Name)
			continue
		}
		if rule.Unconditional() {
			c.Outf("- %s: always requested", rule.Name)
			continue
		}

		var matched []string
		for p := range resolver.MatchedPatterns(rule, files) {
			matched = append(matched, p)
		}
		if len(matched) == 0 {
			c.Outf("- %s: no match", rule.Name)
			continue
		}
		c.Outf("- %s: matched %s", rule.Name, strings.Join(matched, ", "))
	}

	assignment := resolver.Resolve(cfg.Reviewers, files, c.flagActor)
	if assignment.Empty() {
		c.Outf("No reviewers would be requested")
		return nil
	}

	c.Outf("Users: %s", strings.Join(assignment.SortedUsers(), ", "))
	c.Outf("Teams: %s", strings.Join(assignment.SortedTeams(), ", "))
	return nil
}
