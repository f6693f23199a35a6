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

package github

import (
	"context"
	"sync"
)

var _ GitHub = (*MockGitHubClient)(nil)

type Request struct {
	Name   string
	Params []any
}

type MockGitHubClient struct {
	reqMu sync.Mutex
	Reqs  []*Request

	PullRequest *PullRequest
	Files       []string

	GetPullRequestErr       error
	ListPullRequestFilesErr error
	RequestReviewersErr     error
}

func (m *MockGitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	m.reqMu.Lock()
	defer m.reqMu.Unlock()
	m.Reqs = append(m.Reqs, &Request{
		Name:   "GetPullRequest",
		Params: []any{owner, repo, number},
	})

	if m.GetPullRequestErr != nil {
		return nil, m.GetPullRequestErr
	}

	if m.PullRequest != nil {
		return m.PullRequest, nil
	}
	return &PullRequest{Number: number, State: StateOpen}, nil
}

func (m *MockGitHubClient) ListPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]string, error) {
	m.reqMu.Lock()
	defer m.reqMu.Unlock()
	m.Reqs = append(m.Reqs, &Request{
		Name:   "ListPullRequestFiles",
		Params: []any{owner, repo, number},
	})

	if m.ListPullRequestFilesErr != nil {
		return nil, m.ListPullRequestFilesErr
	}
	return m.Files, nil
}

func (m *MockGitHubClient) RequestReviewers(ctx context.Context, owner, repo string, number int, users, teams []string) error {
	m.reqMu.Lock()
	defer m.reqMu.Unlock()
	m.Reqs = append(m.Reqs, &Request{
		Name:   "RequestReviewers",
		Params: []any{owner, repo, number, users, teams},
	})

	if m.RequestReviewersErr != nil {
		return m.RequestReviewersErr
	}
	return nil
}
