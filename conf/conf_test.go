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

package conf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-spring/spring-boot/conf"
)

func TestLoaders(t *testing.T) {
	loaders := conf.Loaders()
	require.GreaterOrEqual(t, len(loaders), 4)

	var extensions []string
	for _, l := range loaders {
		extensions = append(extensions, l.FileExtensions()...)
	}
	assert.Equal(t, []string{"properties", "yml", "yaml", "toml", "tml", "json"}, extensions)
}
