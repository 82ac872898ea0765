/*
 * Copyright 2025 The Go-Spring Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfiles(t *testing.T) {

	t.Run("no expression", func(t *testing.T) {
		_, err := ParseProfiles()
		assert.ErrorContains(t, err, "at least one profile expression")
	})

	t.Run("blank expression", func(t *testing.T) {
		_, err := ParseProfiles("  ")
		assert.ErrorContains(t, err, "invalid profile expression")
	})

	t.Run("operators only", func(t *testing.T) {
		_, err := ParseProfiles("!&")
		assert.ErrorContains(t, err, "invalid profile expression")
	})

	t.Run("dangling operator", func(t *testing.T) {
		_, err := ParseProfiles("a &")
		assert.ErrorContains(t, err, "invalid profile expression")
	})

	t.Run("quote in name", func(t *testing.T) {
		_, err := ParseProfiles(`a"b`)
		assert.ErrorContains(t, err, "invalid profile name")
	})
}

func TestProfilesMatches(t *testing.T) {
	active := func(names ...string) func(string) bool {
		return func(name string) bool {
			for _, s := range names {
				if s == name {
					return true
				}
			}
			return false
		}
	}

	match := func(t *testing.T, expr string, isActive func(string) bool) bool {
		p, err := ParseProfiles(expr)
		require.NoError(t, err)
		return p.Matches(isActive)
	}

	t.Run("bare name", func(t *testing.T) {
		assert.True(t, match(t, "dev", active("dev")))
		assert.False(t, match(t, "dev", active("prod")))
	})

	t.Run("negation", func(t *testing.T) {
		assert.True(t, match(t, "!dev", active()))
		assert.False(t, match(t, "!dev", active("dev")))
	})

	t.Run("and", func(t *testing.T) {
		assert.True(t, match(t, "a & b", active("a", "b")))
		assert.False(t, match(t, "a & b", active("a")))
		assert.True(t, match(t, "a && b", active("a", "b")))
	})

	t.Run("or", func(t *testing.T) {
		assert.True(t, match(t, "a | b", active("b")))
		assert.False(t, match(t, "a | b", active()))
	})

	t.Run("grouping", func(t *testing.T) {
		assert.True(t, match(t, "a & (b | c)", active("a", "c")))
		assert.False(t, match(t, "a & (b | c)", active("a")))
		assert.True(t, match(t, "!(a | b)", active("c")))
	})

	t.Run("names with dash and dot", func(t *testing.T) {
		assert.True(t, match(t, "cloud-gcp & v1.2", active("cloud-gcp", "v1.2")))
	})

	t.Run("any expression matches", func(t *testing.T) {
		p, err := ParseProfiles("a", "b")
		require.NoError(t, err)
		assert.True(t, p.Matches(active("b")))
		assert.False(t, p.Matches(active("c")))
	})
}
