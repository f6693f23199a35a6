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

package reviewers

import (
	"testing"

	"github.com/abcxyz/assign-reviewers/pkg/config"
)

func TestShouldProceed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		ignore     *config.IgnoreRule
		actor      string
		title      string
		want       bool
		wantReason string
	}{
		{
			name:  "no_ignore_rule",
			actor: "bob",
			title: "wip: anything",
			want:  true,
		},
		{
			name:   "empty_ignore_rule",
			ignore: &config.IgnoreRule{},
			actor:  "bob",
			title:  "wip",
			want:   true,
		},
		{
			name:       "ignored_author",
			ignore:     &config.IgnoreRule{Authors: []string{"dependabot", "bob"}},
			actor:      "bob",
			title:      "Fix bug",
			want:       false,
			wantReason: `author "bob" is ignored`,
		},
		{
			name:   "author_not_listed",
			ignore: &config.IgnoreRule{Authors: []string{"dependabot"}},
			actor:  "bob",
			title:  "Fix bug",
			want:   true,
		},
		{
			name:       "title_contains_substring",
			ignore:     &config.IgnoreRule{Titles: []string{"wip"}},
			actor:      "bob",
			title:      "fix: wip bug",
			want:       false,
			wantReason: `title contains "wip"`,
		},
		{
			name:   "title_match_is_case_sensitive",
			ignore: &config.IgnoreRule{Titles: []string{"wip"}},
			actor:  "bob",
			title:  "WIP: fix bug",
			want:   true,
		},
		{
			name:       "first_title_wins",
			ignore:     &config.IgnoreRule{Titles: []string{"draft", "WIP"}},
			actor:      "bob",
			title:      "WIP draft",
			want:       false,
			wantReason: `title contains "draft"`,
		},
		{
			name:   "empty_title_entry_is_skipped",
			ignore: &config.IgnoreRule{Titles: []string{""}},
			actor:  "bob",
			title:  "Fix bug",
			want:   true,
		},
		{
			name: "author_checked_before_title",
			ignore: &config.IgnoreRule{
				Authors: []string{"bob"},
				Titles:  []string{"wip"},
			},
			actor:      "bob",
			title:      "wip",
			want:       false,
			wantReason: `author "bob" is ignored`,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := ShouldProceed(tc.ignore, tc.actor, tc.title); got != tc.want {
				t.Errorf("ShouldProceed() = %t, want %t", got, tc.want)
			}

			reason, ignored := IgnoreReason(tc.ignore, tc.actor, tc.title)
			if ignored == tc.want {
				t.Errorf("IgnoreReason() ignored = %t, want %t", ignored, !tc.want)
			}
			if reason != tc.wantReason {
				t.Errorf("IgnoreReason() reason = %q, want %q", reason, tc.wantReason)
			}
		})
	}
}
