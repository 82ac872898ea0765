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

// PropertySource is one named key/value layer inside the environment.
// Keys are flat, dot-separated paths (list elements use the [i] form),
// values are plain strings. A source never resolves placeholders itself;
// resolution happens at the environment level across all sources.
type PropertySource struct {
	name string
	data map[string]string
}

// NewPropertySource creates a property source with the given name and data.
// The data map is used as-is; callers hand over ownership.
func NewPropertySource(name string, data map[string]string) *PropertySource {
	if data == nil {
		data = map[string]string{}
	}
	return &PropertySource{name: name, data: data}
}

// Name returns the name that identifies this source in the environment.
func (s *PropertySource) Name() string {
	return s.name
}

// Has checks whether the source contains the given key.
func (s *PropertySource) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Property returns the value for key and whether it exists.
func (s *PropertySource) Property(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

// Data returns the underlying key/value map.
func (s *PropertySource) Data() map[string]string {
	return s.data
}
