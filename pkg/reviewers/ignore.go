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
	"fmt"
	"slices"
	"strings"

	"github.com/abcxyz/assign-reviewers/pkg/config"
)

// ShouldProceed reports whether reviewers should be assigned to a pull
// request opened by actor with the given title.
func ShouldProceed(ignore *config.IgnoreRule, actor, title string) bool {
	_, ignored := IgnoreReason(ignore, actor, title)
	return !ignored
}

// IgnoreReason returns why the pull request is ignored. The second value is
// false when the pull request should proceed.
func IgnoreReason(ignore *config.IgnoreRule, actor, title string) (string, bool) {
	if ignore == nil {
		return "", false
	}

	if slices.Contains(ignore.Authors, actor) {
		return fmt.Sprintf("author %q is ignored", actor), true
	}

	for _, t := range ignore.Titles {
		// an empty entry would match every title
		if t == "" {
			continue
		}
		if strings.Contains(title, t) {
			return fmt.Sprintf("title contains %q", t), true
		}
	}

	return "", false
}
