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

// Package reviewers decides which users and teams review a pull request.
package reviewers

import (
	"iter"

	"github.com/abcxyz/assign-reviewers/pkg/config"
	"github.com/abcxyz/assign-reviewers/pkg/glob"
	"github.com/abcxyz/assign-reviewers/pkg/util"
)

// Assignment is the set of users and teams to request reviews from.
type Assignment struct {
	Users map[string]struct{}
	Teams map[string]struct{}
}

// NewAssignment creates an empty Assignment.
func NewAssignment() *Assignment {
	return &Assignment{
		Users: make(map[string]struct{}),
		Teams: make(map[string]struct{}),
	}
}

func (a *Assignment) add(r *config.ReviewerRule) {
	if r.Team {
		a.Teams[r.Name] = struct{}{}
		return
	}
	a.Users[r.Name] = struct{}{}
}

// Empty reports whether the assignment has no users and no teams.
func (a *Assignment) Empty() bool {
	return len(a.Users) == 0 && len(a.Teams) == 0
}

// SortedUsers returns the users in lexical order.
func (a *Assignment) SortedUsers() []string {
	return util.SortedMapKeys(a.Users)
}

// SortedTeams returns the teams in lexical order.
func (a *Assignment) SortedTeams() []string {
	return util.SortedMapKeys(a.Teams)
}

// Resolver computes reviewer assignments from configured rules.
type Resolver struct {
	matcher glob.Matcher
	opts    *glob.Options
}

// NewResolver creates a Resolver. A nil matcher uses glob.Doublestar.
// Patterns without a slash always fall back to the base name of a path;
// matchHiddenFiles controls whether wildcards match dotfiles.
func NewResolver(matcher glob.Matcher, matchHiddenFiles bool) *Resolver {
	if matcher == nil {
		matcher = &glob.Doublestar{}
	}
	return &Resolver{
		matcher: matcher,
		opts: &glob.Options{
			MatchBase: true,
			Dot:       matchHiddenFiles,
		},
	}
}

// Resolve returns the users and teams whose rules match the changed files.
// Rules named after actor are skipped so authors never review their own pull
// requests. A rule without paths always matches; a rule with an empty list of
// paths never does.
func (r *Resolver) Resolve(rules []*config.ReviewerRule, changedFiles []string, actor string) *Assignment {
	result := NewAssignment()
	for _, rule := range rules {
		if rule == nil || rule.Name == actor {
			continue
		}
		if r.matches(rule, changedFiles) {
			result.add(rule)
		}
	}
	return result
}

func (r *Resolver) matches(rule *config.ReviewerRule, changedFiles []string) bool {
	if rule.Unconditional() {
		return true
	}

	for range r.MatchedPatterns(rule, changedFiles) {
		return true
	}
	return false
}

// MatchedPatterns yields, in order, the patterns of rule that match at least
// one changed file. Stopping the iteration stops evaluating patterns.
func (r *Resolver) MatchedPatterns(rule *config.ReviewerRule, changedFiles []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range rule.Paths {
			if !glob.MatchAny(r.matcher, p, changedFiles, r.opts) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}
