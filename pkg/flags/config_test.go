// Copyright 2026 The Authors (see AUTHORS file)
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

package flags

import (
	"testing"

	"github.com/abcxyz/pkg/cli"
)

func TestConfigFlags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		env  map[string]string
		want string
	}{
		{
			name: "default",
			want: ".github/reviewers.yml",
		},
		{
			name: "flag",
			args: []string{"-config=reviewers.yaml"},
			want: "reviewers.yaml",
		},
		{
			name: "action_input",
			env:  map[string]string{"INPUT_CONFIG": "config/reviewers.yml"},
			want: "config/reviewers.yml",
		},
		{
			name: "empty_action_input_uses_default",
			env:  map[string]string{"INPUT_CONFIG": " "},
			want: ".github/reviewers.yml",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := tc.env
			if env == nil {
				env = map[string]string{}
			}

			var c ConfigFlags
			set := cli.NewFlagSet(cli.WithLookupEnv(cli.MapLookuper(env)))
			c.Register(set)
			if err := set.Parse(tc.args); err != nil {
				t.Fatal(err)
			}
			if got := c.FlagConfig; got != tc.want {
				t.Errorf("config = %q, want %q", got, tc.want)
			}
		})
	}
}
