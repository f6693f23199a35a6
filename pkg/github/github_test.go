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

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/oauth2"

	"github.com/abcxyz/pkg/testutil"
)

func testClient(t *testing.T, mux *http.ServeMux, opts ...Option) *GitHubClient {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	opts = append([]Option{WithServerURL(srv.URL)}, opts...)
	client, err := NewClient(context.Background(), ts, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestGitHubClient_GetPullRequest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		response string
		status   int
		want     *PullRequest
		wantErr  string
	}{
		{
			name: "open_pull_request",
			response: `{"data": {"repository": {"pullRequest": {
				"number": 7,
				"state": "OPEN",
				"title": "Add feature",
				"baseRefName": "main",
				"headRefName": "feature",
				"author": {"login": "bob"}
			}}}}`,
			want: &PullRequest{
				Number:  7,
				State:   StateOpen,
				Title:   "Add feature",
				Author:  "bob",
				BaseRef: "main",
				HeadRef: "feature",
			},
		},
		{
			name: "merged_pull_request",
			response: `{"data": {"repository": {"pullRequest": {
				"number": 7,
				"state": "MERGED",
				"title": "Add feature",
				"baseRefName": "main",
				"headRefName": "feature",
				"author": {"login": "bob"}
			}}}}`,
			want: &PullRequest{
				Number:  7,
				State:   StateMerged,
				Title:   "Add feature",
				Author:  "bob",
				BaseRef: "main",
				HeadRef: "feature",
			},
		},
		{
			name:     "not_found",
			response: `{"data": {"repository": {"pullRequest": null}}}`,
			wantErr:  "pull request test-owner/test-repo#7 not found",
		},
		{
			name:     "graphql_errors",
			response: `{"data": null, "errors": [{"message": "Could not resolve to a Repository"}]}`,
			wantErr:  "failed to query pull request: Could not resolve to a Repository",
		},
		{
			name:     "server_error",
			response: `boom`,
			status:   http.StatusInternalServerError,
			wantErr:  "failed to query pull request",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mux := http.NewServeMux()
			mux.HandleFunc("/api/graphql", func(w http.ResponseWriter, r *http.Request) {
				var body struct {
					Variables map[string]any `json:"variables"`
				}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode graphql request: %v", err)
				}
				if got, want := body.Variables["owner"], "test-owner"; got != want {
					t.Errorf("owner = %v, want %v", got, want)
				}
				if got, want := body.Variables["number"], float64(7); got != want {
					t.Errorf("number = %v, want %v", got, want)
				}

				if tc.status != 0 {
					w.WriteHeader(tc.status)
				}
				fmt.Fprint(w, tc.response)
			})

			client := testClient(t, mux)
			got, err := client.GetPullRequest(context.Background(), "test-owner", "test-repo", 7)
			if diff := testutil.DiffErrString(err, tc.wantErr); diff != "" {
				t.Error(diff)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("pull request not as expected; (-got,+want): %s", diff)
			}
		})
	}
}

func TestGitHubClient_ListPullRequestFiles(t *testing.T) {
	t.Parallel()

	t.Run("follows_pagination", func(t *testing.T) {
		t.Parallel()

		var pages []string
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v3/repos/test-owner/test-repo/pulls/1/files", func(w http.ResponseWriter, r *http.Request) {
			if got, want := r.URL.Query().Get("per_page"), "2"; got != want {
				t.Errorf("per_page = %q, want %q", got, want)
			}

			page := r.URL.Query().Get("page")
			pages = append(pages, page)

			switch page {
			case "", "1":
				w.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=2&per_page=2>; rel="next"`, r.Host, r.URL.Path))
				fmt.Fprint(w, `[{"filename": "src/a.ts"}, {"filename": "src/b.ts"}]`)
			case "2":
				fmt.Fprint(w, `[{"filename": ".github/workflows/ci.yml"}]`)
			default:
				t.Errorf("unexpected page %q", page)
			}
		})

		client := testClient(t, mux, WithFilesPerPage(2))
		got, err := client.ListPullRequestFiles(context.Background(), "test-owner", "test-repo", 1)
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(got, []string{"src/a.ts", "src/b.ts", ".github/workflows/ci.yml"}); diff != "" {
			t.Errorf("files not as expected; (-got,+want): %s", diff)
		}
		if diff := cmp.Diff(pages, []string{"", "2"}); diff != "" {
			t.Errorf("pages not as expected; (-got,+want): %s", diff)
		}
	})

	t.Run("returns_errors", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/api/v3/repos/test-owner/test-repo/pulls/1/files", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		})

		client := testClient(t, mux)
		_, err := client.ListPullRequestFiles(context.Background(), "test-owner", "test-repo", 1)
		if diff := testutil.DiffErrString(err, "failed to list pull request files"); diff != "" {
			t.Error(diff)
		}
	})
}

func TestGitHubClient_RequestReviewers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		users    []string
		teams    []string
		status   int
		wantBody map[string][]string
		wantErr  string
	}{
		{
			name:   "users_and_teams_in_one_request",
			users:  []string{"alice", "carol"},
			teams:  []string{"core-team"},
			status: http.StatusCreated,
			wantBody: map[string][]string{
				"reviewers":      {"alice", "carol"},
				"team_reviewers": {"core-team"},
			},
		},
		{
			name:   "only_teams",
			teams:  []string{"core-team"},
			status: http.StatusCreated,
			wantBody: map[string][]string{
				"team_reviewers": {"core-team"},
			},
		},
		{
			name:   "rejected",
			users:  []string{"mallory"},
			status: http.StatusUnprocessableEntity,
			wantBody: map[string][]string{
				"reviewers": {"mallory"},
			},
			wantErr: "failed to request reviewers",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var calls int
			mux := http.NewServeMux()
			mux.HandleFunc("/api/v3/repos/test-owner/test-repo/pulls/3/requested_reviewers", func(w http.ResponseWriter, r *http.Request) {
				calls++
				if got, want := r.Method, http.MethodPost; got != want {
					t.Errorf("method = %q, want %q", got, want)
				}

				var body map[string][]string
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if diff := cmp.Diff(body, tc.wantBody); diff != "" {
					t.Errorf("request body not as expected; (-got,+want): %s", diff)
				}

				w.WriteHeader(tc.status)
				if tc.status >= 400 {
					fmt.Fprint(w, `{"message": "Reviews may only be requested from collaborators."}`)
					return
				}
				fmt.Fprint(w, `{"number": 3}`)
			})

			client := testClient(t, mux)
			err := client.RequestReviewers(context.Background(), "test-owner", "test-repo", 3, tc.users, tc.teams)
			if diff := testutil.DiffErrString(err, tc.wantErr); diff != "" {
				t.Error(diff)
			}
			if calls != 1 {
				t.Errorf("expected exactly one request, got %d", calls)
			}
		})
	}
}
