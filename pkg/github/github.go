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

// Package github provides the functionality to send requests to the GitHub API.
package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v53/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

const (
	// DefaultServerURL is the server URL of github.com.
	DefaultServerURL = "https://github.com"

	// maxFilesPerPage is the largest page size the pull request files API
	// accepts.
	maxFilesPerPage = 100
)

// Pull request states.
const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateMerged = "merged"
)

// Config is the config values for the GitHub client.
type Config struct {
	serverURL    string
	filesPerPage int
}

// PullRequest is the GitHub pull request metadata needed to assign reviewers.
type PullRequest struct {
	Number  int
	State   string
	Title   string
	Author  string
	BaseRef string
	HeadRef string
}

// GitHub provides the minimum interface for sending requests to the GitHub API.
type GitHub interface {
	// GetPullRequest returns the metadata of a pull request.
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error)

	// ListPullRequestFiles returns the paths of every file changed by a pull
	// request.
	ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]string, error)

	// RequestReviewers requests reviews from users and teams in a single call.
	RequestReviewers(ctx context.Context, owner, repo string, number int, users, teams []string) error
}

var _ GitHub = (*GitHubClient)(nil)

// GitHubClient implements the GitHub interface.
type GitHubClient struct {
	cfg           *Config
	client        *github.Client
	graphqlClient *githubv4.Client
}

// NewClient creates a new GitHub client.
func NewClient(ctx context.Context, ts oauth2.TokenSource, opts ...Option) (*GitHubClient, error) {
	cfg := &Config{
		serverURL:    DefaultServerURL,
		filesPerPage: maxFilesPerPage,
	}

	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	if cfg.filesPerPage <= 0 || cfg.filesPerPage > maxFilesPerPage {
		cfg.filesPerPage = maxFilesPerPage
	}

	tc := oauth2.NewClient(ctx, ts)

	client := github.NewClient(tc)
	graphqlClient := githubv4.NewClient(tc)

	serverURL := strings.TrimSuffix(strings.TrimSpace(cfg.serverURL), "/")
	if serverURL != "" && serverURL != DefaultServerURL {
		var err error
		client, err = github.NewEnterpriseClient(serverURL+"/api/v3/", serverURL+"/api/uploads/", tc)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise server url %s: %w", serverURL, err)
		}
		graphqlClient = githubv4.NewEnterpriseClient(serverURL+"/api/graphql", tc)
	}

	return &GitHubClient{
		cfg:           cfg,
		client:        client,
		graphqlClient: graphqlClient,
	}, nil
}

type pullRequestQuery struct {
	Repository struct {
		PullRequest struct {
			Number      int
			State       githubv4.PullRequestState
			Title       string
			BaseRefName string
			HeadRefName string
			Author      struct {
				Login string
			}
		} `graphql:"pullRequest(number: $number)"`
	} `graphql:"repository(owner: $owner, name: $repo)"`
}

// GetPullRequest queries the pull request metadata through the GraphQL API.
func (g *GitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	var q pullRequestQuery
	if err := g.graphqlClient.Query(ctx, &q, map[string]any{
		"owner":  githubv4.String(owner),
		"repo":   githubv4.String(repo),
		"number": githubv4.Int(number),
	}); err != nil {
		return nil, fmt.Errorf("failed to query pull request: %w", err)
	}

	pr := q.Repository.PullRequest
	if pr.Number == 0 {
		return nil, fmt.Errorf("pull request %s/%s#%d not found", owner, repo, number)
	}

	return &PullRequest{
		Number:  pr.Number,
		State:   strings.ToLower(string(pr.State)),
		Title:   pr.Title,
		Author:  pr.Author.Login,
		BaseRef: pr.BaseRefName,
		HeadRef: pr.HeadRefName,
	}, nil
}

// ListPullRequestFiles lists the changed file paths of a pull request,
// following pagination until the last page.
func (g *GitHubClient) ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]string, error) {
	opts := &github.ListOptions{PerPage: g.cfg.filesPerPage}

	var files []string
	for {
		page, resp, err := g.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull request files: %w", err)
		}

		for _, f := range page {
			files = append(files, f.GetFilename())
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

// RequestReviewers requests reviews for a pull request from users and teams.
func (g *GitHubClient) RequestReviewers(ctx context.Context, owner, repo string, number int, users, teams []string) error {
	if _, _, err := g.client.PullRequests.RequestReviewers(ctx, owner, repo, number, github.ReviewersRequest{
		Reviewers:     users,
		TeamReviewers: teams,
	}); err != nil {
		return fmt.Errorf("failed to request reviewers: %w", err)
	}
	return nil
}
