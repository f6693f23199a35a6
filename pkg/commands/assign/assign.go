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

// Package assign implements the command that requests reviewers for a pull
// request.
package assign

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/sethvargo/go-githubactions"

	"github.com/abcxyz/assign-reviewers/pkg/config"
	"github.com/abcxyz/assign-reviewers/pkg/flags"
	"github.com/abcxyz/assign-reviewers/pkg/github"
	"github.com/abcxyz/assign-reviewers/pkg/reviewers"
	"github.com/abcxyz/pkg/cli"
	"github.com/abcxyz/pkg/logging"
)

var _ cli.Command = (*AssignCommand)(nil)

// ErrUnsupportedEvent is returned when the workflow was not triggered by a
// pull request event.
var ErrUnsupportedEvent = errors.New("unsupported event")

const pullRequestEvent = "pull_request"

// tokenPermissions are the GitHub App permissions needed to read a pull
// request and request user and team reviews on it.
var tokenPermissions = map[string]string{
	"contents":      "read",
	"members":       "read",
	"pull_requests": "write",
}

type AssignCommand struct {
	cli.BaseCommand

	flags.GitHubFlags
	flags.ConfigFlags

	flagMatchHiddenFiles bool

	actions      *githubactions.Action
	gitHubClient github.GitHub
}

func (c *AssignCommand) Desc() string {
	return `Request reviewers for a pull request based on the changed files`
}

func (c *AssignCommand) Help() string {
	return `
Usage: {{ COMMAND }} [options]

	Request reviews from the users and teams whose configured path patterns
	match the files changed by the current pull request.
`
}

func (c *AssignCommand) Flags() *cli.FlagSet {
	set := c.NewFlagSet()

	c.GitHubFlags.Register(set)
	c.ConfigFlags.Register(set)

	f := set.NewSection("COMMAND OPTIONS")

	f.BoolVar(&cli.BoolVar{
		Name:    "match-hidden-files",
		EnvVar:  "INPUT_MATCH_HIDDEN_FILES",
		Target:  &c.flagMatchHiddenFiles,
		Default: false,
		Usage:   "Allow wildcards in path patterns to match files and directories that start with a period.",
	})

	return set
}

func (c *AssignCommand) Run(ctx context.Context, args []string) error {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	parsedArgs := f.Args()
	if len(parsedArgs) > 0 {
		return flag.ErrHelp
	}

	c.actions = githubactions.New(githubactions.WithWriter(c.Stdout()))
	actionsCtx, err := c.actions.Context()
	if err != nil {
		return fmt.Errorf("failed to load github context: %w", err)
	}
	c.GitHubFlags.FromGitHubContext(actionsCtx)

	var merr error
	if c.GitHubFlags.FlagGitHubOwner == "" {
		merr = errors.Join(merr, fmt.Errorf("missing flag: github-owner is required"))
	}
	if c.GitHubFlags.FlagGitHubRepo == "" {
		merr = errors.Join(merr, fmt.Errorf("missing flag: github-repo is required"))
	}
	if merr != nil {
		return merr
	}

	tokenSource, err := c.GitHubFlags.TokenSource(ctx, tokenPermissions)
	if err != nil {
		return fmt.Errorf("failed to get token source: %w", err)
	}

	c.gitHubClient, err = github.NewClient(
		ctx,
		tokenSource,
		github.WithServerURL(c.GitHubFlags.FlagGitHubServerURL),
	)
	if err != nil {
		return fmt.Errorf("failed to create github client: %w", err)
	}

	return c.Process(ctx)
}

// Process handles the main logic for assigning reviewers to a pull request.
func (c *AssignCommand) Process(ctx context.Context) error {
	owner := c.GitHubFlags.FlagGitHubOwner
	repo := c.GitHubFlags.FlagGitHubRepo
	number := c.GitHubFlags.FlagGitHubPullRequestNumber
	actor := c.GitHubFlags.FlagGitHubActor

	logger := logging.FromContext(ctx).
		With("github_owner", owner).
		With("github_repo", repo).
		With("pull_request_number", number).
		With("actor", actor)

	if event := c.GitHubFlags.FlagGitHubEventName; event != pullRequestEvent {
		return fmt.Errorf("%w %q: reviewers can only be assigned on %q events", ErrUnsupportedEvent, event, pullRequestEvent)
	}

	cfg, err := config.Load(c.ConfigFlags.FlagConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.DebugContext(ctx, "loaded configuration",
		"path", c.ConfigFlags.FlagConfig,
		"reviewer_rules", len(cfg.Reviewers))

	if number <= 0 {
		return fmt.Errorf("missing flag: github-pull-request-number is required")
	}

	pr, err := c.gitHubClient.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return fmt.Errorf("failed to get pull request: %w", err)
	}
	logger.DebugContext(ctx, "found pull request",
		"state", pr.State,
		"author", pr.Author,
		"base_ref", pr.BaseRef,
		"head_ref", pr.HeadRef)

	if pr.State != github.StateOpen {
		logger.InfoContext(ctx, "pull request is not open, skipping", "state", pr.State)
		return nil
	}

	if reason, ignored := reviewers.IgnoreReason(cfg.Ignore, actor, pr.Title); ignored {
		logger.InfoContext(ctx, "pull request is ignored, skipping", "reason", reason)
		return nil
	}

	files, err := c.gitHubClient.ListPullRequestFiles(ctx, owner, repo, number)
	if err != nil {
		return fmt.Errorf("failed to list changed files: %w", err)
	}
	if len(files) == 0 {
		logger.InfoContext(ctx, "no files changed, skipping")
		return nil
	}
	logger.DebugContext(ctx, "found changed files", "count", len(files))

	assignment := reviewers.NewResolver(nil, c.flagMatchHiddenFiles).Resolve(cfg.Reviewers, files, actor)
	users, teams := assignment.SortedUsers(), assignment.SortedTeams()
	logger.InfoContext(ctx, "resolved reviewers",
		"users", users,
		"teams", teams)

	if assignment.Empty() {
		logger.InfoContext(ctx, "no reviewers matched the changed files, skipping")
		return nil
	}

	if err := c.gitHubClient.RequestReviewers(ctx, owner, repo, number, users, teams); err != nil {
		return fmt.Errorf("failed to assign reviewers: %w", err)
	}

	// Step outputs need the file named by GITHUB_OUTPUT, which only exists
	// inside a workflow run.
	if c.actions != nil && c.actions.Getenv("GITHUB_OUTPUT") != "" {
		c.actions.SetOutput("users", strings.Join(users, ","))
		c.actions.SetOutput("teams", strings.Join(teams, ","))
	}

	c.Outf("Requested reviews on %s/%s#%d from %s", owner, repo, number, describe(users, teams))
	return nil
}

func describe(users, teams []string) string {
	parts := make([]string, 0, 2)
	if len(users) > 0 {
		parts = append(parts, fmt.Sprintf("users %q", users))
	}
	if len(teams) > 0 {
		parts = append(parts, fmt.Sprintf("teams %q", teams))
	}
	return strings.Join(parts, " and ")
}
