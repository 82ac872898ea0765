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
	"slices"

	"github.com/go-spring/stdlib/errutil"
)

// Sources is the ordered, named list of property sources consulted during
// property lookup. Earlier sources take precedence over later ones.
type Sources struct {
	list []*PropertySource
}

// NewSources creates an empty source list.
func NewSources() *Sources {
	return &Sources{}
}

// Len returns the number of sources.
func (s *Sources) Len() int {
	return len(s.list)
}

// Names returns the source names in precedence order.
func (s *Sources) Names() []string {
	names := make([]string, 0, len(s.list))
	for _, ps := range s.list {
		names = append(names, ps.Name())
	}
	return names
}

// Contains checks whether a source with the given name is present.
func (s *Sources) Contains(name string) bool {
	return s.indexOf(name) >= 0
}

// Get returns the source with the given name, or nil.
func (s *Sources) Get(name string) *PropertySource {
	if i := s.indexOf(name); i >= 0 {
		return s.list[i]
	}
	return nil
}

// AddFirst inserts the source at the highest-precedence position,
// removing any existing source with the same name first.
func (s *Sources) AddFirst(ps *PropertySource) {
	s.Remove(ps.Name())
	s.list = slices.Insert(s.list, 0, ps)
}

// AddLast appends the source at the lowest-precedence position,
// removing any existing source with the same name first.
func (s *Sources) AddLast(ps *PropertySource) {
	s.Remove(ps.Name())
	s.list = append(s.list, ps)
}

// InsertBefore inserts the source immediately before the named one.
func (s *Sources) InsertBefore(relative string, ps *PropertySource) error {
	i := s.indexOf(relative)
	if i < 0 {
		return errutil.Explain(nil, "property source %q not exist", relative)
	}
	s.list = slices.Insert(s.list, i, ps)
	return nil
}

// InsertAfter inserts the source immediately after the named one.
func (s *Sources) InsertAfter(relative string, ps *PropertySource) error {
	i := s.indexOf(relative)
	if i < 0 {
		return errutil.Explain(nil, "property source %q not exist", relative)
	}
	s.list = slices.Insert(s.list, i+1, ps)
	return nil
}

// Remove removes the named source and returns it, or nil if absent.
func (s *Sources) Remove(name string) *PropertySource {
	i := s.indexOf(name)
	if i < 0 {
		return nil
	}
	ps := s.list[i]
	s.list = slices.Delete(s.list, i, i+1)
	return ps
}

func (s *Sources) indexOf(name string) int {
	return slices.IndexFunc(s.list, func(ps *PropertySource) bool {
		return ps.Name() == name
	})
}
