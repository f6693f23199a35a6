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

package util

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUtil_SortedMapKeys(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		m    map[string]struct{}
		exp  []string
	}{
		{
			name: "sorts",
			m:    map[string]struct{}{"d": {}, "a": {}, "c": {}},
			exp:  []string{"a", "c", "d"},
		},
		{
			name: "handles_empty",
			m:    map[string]struct{}{},
			exp:  nil,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v := SortedMapKeys(tc.m)
			if diff := cmp.Diff(v, tc.exp); diff != "" {
				t.Errorf("got %#v, want %#v, diff (-got, +want): %v", v, tc.exp, diff)
			}
		})
	}
}

func TestUtil_JoinSorted(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		values []string
		exp    string
	}{
		{
			name:   "sorts",
			values: []string{"bob", "alice"},
			exp:    "alice,bob",
		},
		{
			name:   "exclude_duplicates",
			values: []string{"bob", "alice", "bob"},
			exp:    "alice,bob",
		},
		{
			name:   "drops_empty",
			values: []string{"", " ", "alice"},
			exp:    "alice",
		},
		{
			name: "handles_nil",
			exp:  "",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := JoinSorted(tc.values, ","); got != tc.exp {
				t.Errorf("got %q, want %q", got, tc.exp)
			}
		})
	}
}
