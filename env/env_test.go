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

func TestSources(t *testing.T) {

	t.Run("add and order", func(t *testing.T) {
		s := NewSources()
		s.AddLast(NewPropertySource("a", nil))
		s.AddLast(NewPropertySource("b", nil))
		s.AddFirst(NewPropertySource("c", nil))
		assert.Equal(t, []string{"c", "a", "b"}, s.Names())
		assert.Equal(t, 3, s.Len())
		assert.True(t, s.Contains("b"))
		assert.False(t, s.Contains("x"))
	})

	t.Run("add replaces same name", func(t *testing.T) {
		s := NewSources()
		s.AddLast(NewPropertySource("a", map[string]string{"k": "1"}))
		s.AddLast(NewPropertySource("b", nil))
		s.AddLast(NewPropertySource("a", map[string]string{"k": "2"}))
		assert.Equal(t, []string{"b", "a"}, s.Names())
		v, _ := s.Get("a").Property("k")
		assert.Equal(t, "2", v)
	})

	t.Run("insert before and after", func(t *testing.T) {
		s := NewSources()
		s.AddLast(NewPropertySource("a", nil))
		s.AddLast(NewPropertySource("b", nil))
		require.NoError(t, s.InsertBefore("b", NewPropertySource("x", nil)))
		require.NoError(t, s.InsertAfter("b", NewPropertySource("y", nil)))
		assert.Equal(t, []string{"a", "x", "b", "y"}, s.Names())
	})

	t.Run("insert relative missing", func(t *testing.T) {
		s := NewSources()
		err := s.InsertBefore("nope", NewPropertySource("x", nil))
		assert.ErrorContains(t, err, `property source "nope" not exist`)
		err = s.InsertAfter("nope", NewPropertySource("x", nil))
		assert.ErrorContains(t, err, `property source "nope" not exist`)
	})

	t.Run("remove", func(t *testing.T) {
		s := NewSources()
		s.AddLast(NewPropertySource("a", nil))
		ps := s.Remove("a")
		require.NotNil(t, ps)
		assert.Equal(t, "a", ps.Name())
		assert.Nil(t, s.Remove("a"))
		assert.Equal(t, 0, s.Len())
	})
}

func TestEnvironmentProperty(t *testing.T) {

	t.Run("first source wins", func(t *testing.T) {
		e := New()
		e.Sources().AddLast(NewPropertySource("high", map[string]string{"a": "1"}))
		e.Sources().AddLast(NewPropertySource("low", map[string]string{"a": "2", "b": "3"}))
		assert.Equal(t, "1", e.Property("a"))
		assert.Equal(t, "3", e.Property("b"))
		assert.True(t, e.Has("b"))
		assert.False(t, e.Has("c"))
	})

	t.Run("default value", func(t *testing.T) {
		e := New()
		assert.Equal(t, "", e.Property("missing"))
		assert.Equal(t, "x", e.Property("missing", "x"))
	})
}

func TestEnvironmentResolve(t *testing.T) {
	e := New()
	e.Sources().AddLast(NewPropertySource("test", map[string]string{
		"host":  "localhost",
		"port":  "3306",
		"addr":  "${host}:${port}",
		"loop":  "literal",
		"empty": "",
	}))

	t.Run("no placeholder", func(t *testing.T) {
		s, err := e.Resolve("plain")
		require.NoError(t, err)
		assert.Equal(t, "plain", s)
	})

	t.Run("simple", func(t *testing.T) {
		s, err := e.Resolve("${host}")
		require.NoError(t, err)
		assert.Equal(t, "localhost", s)
	})

	t.Run("value resolved recursively", func(t *testing.T) {
		s, err := e.Resolve("db=${addr}")
		require.NoError(t, err)
		assert.Equal(t, "db=localhost:3306", s)
	})

	t.Run("default used", func(t *testing.T) {
		s, err := e.Resolve("${missing:=fallback}")
		require.NoError(t, err)
		assert.Equal(t, "fallback", s)
	})

	t.Run("default ignored when key exists", func(t *testing.T) {
		s, err := e.Resolve("${host:=other}")
		require.NoError(t, err)
		assert.Equal(t, "localhost", s)
	})

	t.Run("chained default", func(t *testing.T) {
		s, err := e.Resolve("${a:=${b:=c}}")
		require.NoError(t, err)
		assert.Equal(t, "c", s)
	})

	t.Run("empty value is a value", func(t *testing.T) {
		s, err := e.Resolve("${empty:=d}")
		require.NoError(t, err)
		assert.Equal(t, "", s)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := e.Resolve("${missing}")
		assert.ErrorContains(t, err, `property "missing" not exist`)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := e.Resolve("${unclosed")
		assert.ErrorContains(t, err, "invalid syntax")
	})
}

func TestEnvironmentProfiles(t *testing.T) {

	t.Run("add and set", func(t *testing.T) {
		e := New()
		e.AddActiveProfile("dev")
		e.AddActiveProfile("dev")
		e.AddActiveProfile(" ")
		e.AddActiveProfile("db")
		assert.Equal(t, []string{"dev", "db"}, e.ActiveProfiles())
		e.SetActiveProfiles("prod")
		assert.Equal(t, []string{"prod"}, e.ActiveProfiles())
		e.SetActiveProfiles()
		assert.Empty(t, e.ActiveProfiles())
	})

	t.Run("default profiles", func(t *testing.T) {
		e := New()
		assert.Equal(t, []string{"default"}, e.DefaultProfiles())
		e.SetDefaultProfiles("base", "local")
		assert.Equal(t, []string{"base", "local"}, e.DefaultProfiles())
	})

	t.Run("accepts active", func(t *testing.T) {
		e := New()
		e.SetActiveProfiles("dev")
		assert.True(t, e.AcceptsProfiles("dev"))
		assert.False(t, e.AcceptsProfiles("prod"))
		assert.True(t, e.AcceptsProfiles("prod", "dev"))
	})

	t.Run("accepts default when nothing active", func(t *testing.T) {
		e := New()
		assert.True(t, e.AcceptsProfiles("default"))
		e.SetActiveProfiles("dev")
		assert.False(t, e.AcceptsProfiles("default"))
	})

	t.Run("malformed expression matches nothing", func(t *testing.T) {
		e := New()
		e.SetActiveProfiles("dev")
		assert.False(t, e.AcceptsProfiles("dev &"))
	})
}
