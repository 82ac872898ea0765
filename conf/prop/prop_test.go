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

package prop_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-spring/spring-boot/conf/prop"
	"github.com/go-spring/spring-boot/resource"
)

func propResource(data string) resource.Resource {
	l := resource.NewFSLoader(fstest.MapFS{
		"application.properties": {Data: []byte(data)},
	})
	return l.Resource("classpath:/application.properties")
}

func TestPropLoader(t *testing.T) {
	l := prop.New()

	t.Run("extensions", func(t *testing.T) {
		assert.Equal(t, []string{"properties"}, l.FileExtensions())
	})

	t.Run("simple", func(t *testing.T) {
		sources, err := l.Load("test", propResource("a=1\nb.c=2\n"))
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "test", sources[0].Name())
		assert.Equal(t, map[string]string{"a": "1", "b.c": "2"}, sources[0].Data())
	})

	t.Run("no expansion", func(t *testing.T) {
		sources, err := l.Load("test", propResource("a=${b}\nb=2\n"))
		require.NoError(t, err)
		v, _ := sources[0].Property("a")
		assert.Equal(t, "${b}", v)
	})

	t.Run("empty file", func(t *testing.T) {
		sources, err := l.Load("test", propResource(""))
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Empty(t, sources[0].Data())
	})

	t.Run("comments and blanks", func(t *testing.T) {
		sources, err := l.Load("test", propResource("# comment\n\na=1\n"))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1"}, sources[0].Data())
	})
}
