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

// Package config loads the reviewer configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abcxyz/assign-reviewers/pkg/glob"
)

// DefaultPath is the configuration file location used when none is given.
const DefaultPath = ".github/reviewers.yml"

// Config is the root of the reviewer configuration file.
type Config struct {
	Reviewers []*ReviewerRule `yaml:"reviewers"`
	Ignore    *IgnoreRule     `yaml:"ignore,omitempty"`
}

// ReviewerRule is one configured reviewer or team.
//
// A nil Paths means the rule always matches. A non-nil, empty Paths never
// matches.
type ReviewerRule struct {
	Name  string
	Paths []string
	Team  bool
}

// rawReviewerRule keeps the distinction between an absent and an empty paths
// key, which a plain slice loses.
type rawReviewerRule struct {
	Name  string    `yaml:"name"`
	Paths *[]string `yaml:"paths"`
	Team  bool      `yaml:"team"`
}

var reviewerRuleKeys = map[string]struct{}{
	"name":  {},
	"paths": {},
	"team":  {},
}

// UnmarshalYAML implements yaml.Unmarshaler. Node.Decode does not inherit
// the strict decoder settings, so unknown keys are checked here.
func (r *ReviewerRule) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			k := value.Content[i]
			if _, ok := reviewerRuleKeys[k.Value]; !ok {
				return fmt.Errorf("line %d: field %s not found in reviewer", k.Line, k.Value)
			}
		}
	}

	var raw rawReviewerRule
	if err := value.Decode(&raw); err != nil {
		return err //nolint:wrapcheck // Want passthrough
	}

	r.Name = raw.Name
	r.Team = raw.Team
	r.Paths = nil
	if raw.Paths != nil {
		r.Paths = append(make([]string, 0, len(*raw.Paths)), *raw.Paths...)
	}
	return nil
}

// Unconditional reports whether the rule matches regardless of the changed
// files.
func (r *ReviewerRule) Unconditional() bool {
	return r.Paths == nil
}

// IgnoreRule skips a pull request based on its author or title.
type IgnoreRule struct {
	Authors []string `yaml:"authors,omitempty"`
	Titles  []string `yaml:"titles,omitempty"`
}

// ConfigurationError is returned when the configuration file cannot be read,
// parsed or validated.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Load reads, parses and validates the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	cfg, err := Parse(b)
	if err != nil {
		var cerr *ConfigurationError
		if errors.As(err, &cerr) {
			cerr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes and validates configuration bytes. Unknown keys are
// rejected.
func Parse(b []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ConfigurationError{Err: fmt.Errorf("file is empty")}
		}
		return nil, &ConfigurationError{Err: fmt.Errorf("failed to parse yaml: %w", err)}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{Err: err}
	}
	return &cfg, nil
}

// Validate checks the configuration and joins every problem found.
func (c *Config) Validate() error {
	var merr error
	for i, r := range c.Reviewers {
		if r == nil || r.Name == "" {
			merr = errors.Join(merr, fmt.Errorf("reviewers[%d]: name is required", i))
			continue
		}

		for j, p := range r.Paths {
			if err := glob.Validate(p); err != nil {
				merr = errors.Join(merr, fmt.Errorf("reviewers[%d].paths[%d]: %w", i, j, err))
			}
		}
	}

	return merr
}
