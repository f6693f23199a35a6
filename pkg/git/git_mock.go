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

package git

import (
	"context"
	"sync"
)

var _ Git = (*MockGitClient)(nil)

type Request struct {
	Name   string
	Params []any
}

// MockGitClient implements the git interface.
type MockGitClient struct {
	reqMu sync.Mutex
	Reqs  []*Request

	DiffResp []string
	DiffErr  error
}

// DiffFiles records the request and returns the configured response.
func (m *MockGitClient) DiffFiles(ctx context.Context, baseRef, headRef string) ([]string, error) {
	m.reqMu.Lock()
	defer m.reqMu.Unlock()
	m.Reqs = append(m.Reqs, &Request{
		Name:   "DiffFiles",
		Params: []any{baseRef, headRef},
	})

	return m.DiffResp, m.DiffErr
}
