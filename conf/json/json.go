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

// Package json loads JSON files.
package json

import (
	"encoding/json"
	"io"

	"github.com/go-spring/stdlib/errutil"
	"github.com/go-spring/stdlib/flatten"

	"github.com/go-spring/spring-boot/env"
	"github.com/go-spring/spring-boot/resource"
)

// Loader parses JSON files into a single property source.
type Loader struct{}

// New creates a JSON loader.
func New() *Loader {
	return &Loader{}
}

// FileExtensions returns the extensions this loader claims.
func (l *Loader) FileExtensions() []string {
	return []string{"json"}
}

// Load parses the resource into a single property source.
func (l *Loader) Load(name string, res resource.Resource) ([]*env.PropertySource, error) {
	f, err := res.Open()
	if err != nil {
		return nil, errutil.Explain(err, "open %s error", res.URI())
	}
	defer f.Close() // nolint: errcheck
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errutil.Explain(err, "read %s error", res.URI())
	}
	var m map[string]any
	if err = json.Unmarshal(b, &m); err != nil {
		return nil, errutil.Explain(err, "parse %s error", res.URI())
	}
	data := flatten.Flatten(m)
	return []*env.PropertySource{env.NewPropertySource(name, data)}, nil
}
