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

package github

// Option is an optional config value for the GitHubClient.
type Option func(*Config) *Config

// WithServerURL configures the GitHub server the client talks to. Any value
// other than https://github.com is treated as a GitHub Enterprise Server.
func WithServerURL(serverURL string) Option {
	return func(c *Config) *Config {
		c.serverURL = serverURL
		return c
	}
}

// WithFilesPerPage configures the page size used when listing the files of a
// pull request.
func WithFilesPerPage(perPage int) Option {
	return func(c *Config) *Config {
		c.filesPerPage = perPage
		return c
	}
}
