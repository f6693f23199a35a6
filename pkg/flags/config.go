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

package flags

import (
	"path/filepath"
	"strings"

	"github.com/posener/complete/v2"

	"github.com/abcxyz/assign-reviewers/pkg/config"
	"github.com/abcxyz/pkg/cli"
)

// ConfigFlags represent the reviewer configuration flags.
type ConfigFlags struct {
	FlagConfig string
}

func (c *ConfigFlags) Register(set *cli.FlagSet) {
	f := set.NewSection("CONFIG OPTIONS")

	f.StringVar(&cli.StringVar{
		Name:    "config",
		EnvVar:  "INPUT_CONFIG",
		Target:  &c.FlagConfig,
		Default: config.DefaultPath,
		Example: ".github/reviewers.yml",
		Usage:   "The path to the reviewer configuration file.",
		Predict: complete.PredictFunc(func(prefix string) []string {
			return predictYAMLFiles(prefix)
		}),
	})

	// An action input that is declared but not set arrives as an empty
	// environment variable.
	set.AfterParse(func(merr error) error {
		c.FlagConfig = strings.TrimSpace(c.FlagConfig)
		if c.FlagConfig == "" {
			c.FlagConfig = config.DefaultPath
		}
		return merr
	})
}

func predictYAMLFiles(prefix string) []string {
	var matches []string
	for _, ext := range []string{"*.yml", "*.yaml"} {
		m, err := filepath.Glob(prefix + ext)
		if err != nil {
			continue
		}
		matches = append(matches, m...)
	}
	return matches
}
