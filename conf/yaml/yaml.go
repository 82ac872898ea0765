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

// Package yaml loads YAML files. A file may contain several documents
// separated by ---; each document becomes its own property source.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-spring/stdlib/errutil"
	"github.com/go-spring/stdlib/flatten"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"

	"github.com/go-spring/spring-boot/env"
	"github.com/go-spring/spring-boot/resource"
)

// Loader parses YAML files, one property source per document.
type Loader struct{}

// New creates a YAML loader.
func New() *Loader {
	return &Loader{}
}

// FileExtensions returns the extensions this loader claims.
func (l *Loader) FileExtensions() []string {
	return []string{"yml", "yaml"}
}

// Load parses the resource. Single-document files keep the given name;
// multi-document files get a " (document #i)" suffix per document.
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

	var docs []map[string]string
	d := yaml.NewDecoder(bytes.NewReader(b))
	for {
		var doc map[string]any
		if err = d.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errutil.Explain(err, "parse %s error", res.URI())
		}
		if doc == nil {
			continue
		}
		docs = append(docs, flatten.Flatten(stringifyKeys(doc)))
	}

	var ret []*env.PropertySource
	for i, data := range docs {
		docName := name
		if len(docs) > 1 {
			docName = fmt.Sprintf("%s (document #%d)", name, i)
		}
		ret = append(ret, env.NewPropertySource(docName, data))
	}
	return ret, nil
}

// stringifyKeys rewrites the map[any]any nodes yaml.v2 produces into
// map[string]any so the tree can be flattened.
func stringifyKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = stringifyValue(v)
	}
	return out
}

func stringifyValue(v any) any {
	switch x := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[cast.ToString(k)] = stringifyValue(e)
		}
		return out
	case map[string]any:
		return stringifyKeys(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = stringifyValue(e)
		}
		return out
	default:
		return v
	}
}
