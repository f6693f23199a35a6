// Copyright 2023 The Authors (see AUTHORS file)
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

// Package flags contains flag sections shared between commands.
package flags

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-githubactions"
	"golang.org/x/oauth2"

	"github.com/abcxyz/pkg/cli"
	"github.com/abcxyz/pkg/githubauth"
)

// GitHubFlags represent the shared GitHub flags among all commands.
// Embed this struct into any commands that interact with GitHub.
type GitHubFlags struct {
	FlagGitHubToken             string
	FlagGitHubOwner             string
	FlagGitHubRepo              string
	FlagGitHubAppID             string
	FlagGitHubAppInstallationID string
	FlagGitHubAppPrivateKeyPEM  string
	FlagGitHubServerURL         string
	FlagGitHubPullRequestNumber int
	FlagGitHubEventName         string
	FlagGitHubActor             string
}

func (g *GitHubFlags) Register(set *cli.FlagSet) {
	f := set.NewSection("GITHUB OPTIONS")

	f.StringVar(&cli.StringVar{
		Name:   "github-token",
		EnvVar: "GITHUB_TOKEN",
		Target: &g.FlagGitHubToken,
		Usage:  "The GitHub access token to make GitHub API calls.",
		Hidden: true,
	})

	f.StringVar(&cli.StringVar{
		Name:    "github-owner",
		Target:  &g.FlagGitHubOwner,
		Example: "organization-name",
		Usage:   "The GitHub repository owner.",
		Hidden:  true,
	})

	f.StringVar(&cli.StringVar{
		Name:    "github-repo",
		Target:  &g.FlagGitHubRepo,
		Example: "repository-name",
		Usage:   "The GitHub repository name.",
		Hidden:  true,
	})

	f.StringVar(&cli.StringVar{
		Name:   "github-app-id",
		EnvVar: "GITHUB_APP_ID",
		Target: &g.FlagGitHubAppID,
		Usage:  "The ID of GitHub App to use for requesting tokens to make GitHub API calls.",
		Hidden: true,
	})

	f.StringVar(&cli.StringVar{
		Name:   "github-app-installation-id",
		EnvVar: "GITHUB_APP_INSTALLATION_ID",
		Target: &g.FlagGitHubAppInstallationID,
		Usage:  "The Installation ID of GitHub App to use for requesting tokens to make GitHub API calls.",
		Hidden: true,
	})

	f.StringVar(&cli.StringVar{
		Name:   "github-app-private-key-pem",
		EnvVar: "GITHUB_APP_PRIVATE_KEY_PEM",
		Target: &g.FlagGitHubAppPrivateKeyPEM,
		Usage:  "The PEM formatted private key to use with the GitHub App.",
		Hidden: true,
	})

	f.StringVar(&cli.StringVar{
		Name:   "github-server-url",
		EnvVar: "GITHUB_SERVER_URL",
		Target: &g.FlagGitHubServerURL,
		Usage:  "The GitHub server URL.",
		Hidden: true,
	})

	f.IntVar(&cli.IntVar{
		Name:   "github-pull-request-number",
		Target: &g.FlagGitHubPullRequestNumber,
		Usage:  "The GitHub pull request number.",
		Hidden: true,
	})

	f.StringVar(&cli.StringVar{
		Name:   "github-event-name",
		EnvVar: "GITHUB_EVENT_NAME",
		Target: &g.FlagGitHubEventName,
		Usage:  "The name of the event that triggered the workflow.",
		Hidden: true,
	})

	f.StringVar(&cli.StringVar{
		Name:   "github-actor",
		EnvVar: "GITHUB_ACTOR",
		Target: &g.FlagGitHubActor,
		Usage:  "The login of the user that triggered the workflow.",
		Hidden: true,
	})

	set.AfterParse(func(merr error) error {
		if g.FlagGitHubToken != "" && g.FlagGitHubAppID != "" {
			return errors.Join(merr, fmt.Errorf("only one of github token or github app id are allowed"))
		}

		if g.FlagGitHubToken == "" && g.FlagGitHubAppID == "" {
			return errors.Join(merr, fmt.Errorf("one of github token or github app id are required"))
		}

		if g.FlagGitHubAppID != "" {
			if g.FlagGitHubAppInstallationID == "" {
				merr = errors.Join(merr, fmt.Errorf("a github app installation id is required when using a github app id"))
			}
			if g.FlagGitHubAppPrivateKeyPEM == "" {
				merr = errors.Join(merr, fmt.Errorf("a github app private key is required when using a github app id"))
			}
		}

		return merr
	})
}

// FromGitHubContext maps missing GitHub flag values from the GitHub context.
func (g *GitHubFlags) FromGitHubContext(gctx *githubactions.GitHubContext) {
	owner, repo := gctx.Repo()

	if g.FlagGitHubOwner == "" {
		g.FlagGitHubOwner = owner
	}

	if g.FlagGitHubRepo == "" {
		g.FlagGitHubRepo = repo
	}

	if g.FlagGitHubServerURL == "" {
		g.FlagGitHubServerURL = gctx.ServerURL
	}

	if g.FlagGitHubEventName == "" {
		g.FlagGitHubEventName = gctx.EventName
	}

	if g.FlagGitHubActor == "" {
		g.FlagGitHubActor = gctx.Actor
	}

	if g.FlagGitHubPullRequestNumber <= 0 {
		g.FlagGitHubPullRequestNumber = eventNumber(gctx.Event)
	}
}

// eventNumber reads the pull request number from the event payload. Payloads
// decoded from JSON hold numbers as float64.
func eventNumber(event map[string]any) int {
	number, ok := event["number"]
	if !ok {
		if pr, isMap := event["pull_request"].(map[string]any); isMap {
			number = pr["number"]
		}
	}

	switch v := number.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// TokenSource creates a token source for a github client to call the GitHub API.
func (g *GitHubFlags) TokenSource(ctx context.Context, permissions map[string]string) (oauth2.TokenSource, error) {
	if g.FlagGitHubToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: g.FlagGitHubToken,
		}), nil
	}

	signer, err := githubauth.NewPrivateKeySigner(g.FlagGitHubAppPrivateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse github app private key: %w", err)
	}

	app, err := githubauth.NewApp(g.FlagGitHubAppID, signer)
	if err != nil {
		return nil, fmt.Errorf("failed to create github app token source: %w", err)
	}

	installation, err := app.InstallationForID(ctx, g.FlagGitHubAppInstallationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get github app installation: %w", err)
	}

	return installation.SelectedReposOAuth2TokenSource(ctx, permissions, g.FlagGitHubRepo), nil
}
