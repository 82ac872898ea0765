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

// Package env provides the process-wide configuration environment: an
// ordered collection of named property sources, the active and default
// profile sets, property lookup with ${key:=default} placeholder
// resolution, and profile expression matching.
//
// The environment is mutable only during the bootstrap load pass; once
// loading has finished it is read concurrently by downstream subsystems.
package env

import (
	"slices"
	"strings"
)

// DefaultProfileName is the profile implicitly active when no explicit
// profile has been set.
const DefaultProfileName = "default"

// Environment is the configuration façade read by later subsystems.
// Property lookup walks the source list in order; the first source that
// contains the key wins.
type Environment struct {
	sources         *Sources
	activeProfiles  []string
	defaultProfiles []string
}

// New creates an environment with no sources, no active profiles, and
// the built-in default profile set.
func New() *Environment {
	return &Environment{
		sources:         NewSources(),
		defaultProfiles: []string{DefaultProfileName},
	}
}

// Sources returns the mutable source list.
func (e *Environment) Sources() *Sources {
	return e.sources
}

// Has checks whether any source contains the given key.
func (e *Environment) Has(key string) bool {
	for _, ps := range e.sources.list {
		if ps.Has(key) {
			return true
		}
	}
	return false
}

// Property returns the value for a given key, with an optional default.
func (e *Environment) Property(key string, def ...string) string {
	for _, ps := range e.sources.list {
		if v, ok := ps.Property(key); ok {
			return v
		}
	}
	if len(def) > 0 {
		return def[0]
	}
	return ""
}

// Resolve resolves placeholders inside a string (e.g. ${key:=default})
// against the current source list.
func (e *Environment) Resolve(s string) (string, error) {
	return resolveString(e, s)
}

// ActiveProfiles returns the explicitly activated profiles in order.
func (e *Environment) ActiveProfiles() []string {
	return slices.Clone(e.activeProfiles)
}

// SetActiveProfiles replaces the active profile set.
func (e *Environment) SetActiveProfiles(names ...string) {
	e.activeProfiles = nil
	for _, name := range names {
		e.AddActiveProfile(name)
	}
}

// AddActiveProfile appends a profile to the active set. Blank names and
// names already present are ignored.
func (e *Environment) AddActiveProfile(name string) {
	if name = strings.TrimSpace(name); name == "" {
		return
	}
	if !slices.Contains(e.activeProfiles, name) {
		e.activeProfiles = append(e.activeProfiles, name)
	}
}

// DefaultProfiles returns the profiles considered active when no profile
// has been explicitly set.
func (e *Environment) DefaultProfiles() []string {
	return slices.Clone(e.defaultProfiles)
}

// SetDefaultProfiles replaces the default profile set.
func (e *Environment) SetDefaultProfiles(names ...string) {
	e.defaultProfiles = slices.Clone(names)
}

// AcceptsProfiles reports whether at least one of the given profile
// expressions matches the current state of the environment. A bare name
// matches if it is active, or, when no profile is active, if it is one of
// the default profiles. Expressions may use !, &, | and parentheses.
// Malformed expressions match nothing.
func (e *Environment) AcceptsProfiles(expressions ...string) bool {
	p, err := ParseProfiles(expressions...)
	if err != nil {
		return false
	}
	return p.Matches(e.isProfileActive)
}

func (e *Environment) isProfileActive(name string) bool {
	if slices.Contains(e.activeProfiles, name) {
		return true
	}
	return len(e.activeProfiles) == 0 && slices.Contains(e.defaultProfiles, name)
}
