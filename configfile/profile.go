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

package configfile

import (
	"slices"
	"strings"
)

// Profile is a named profile value on the loader's work-list. Profiles
// created from the environment's default profile set carry the default
// flag so they can be dropped once any real profile activates. Identity
// is the name alone; the flag never participates in equality.
type Profile struct {
	name           string
	defaultProfile bool
}

func newProfile(name string) *Profile {
	return &Profile{name: name}
}

func newDefaultProfile(name string) *Profile {
	return &Profile{name: name, defaultProfile: true}
}

// Name returns the profile name.
func (p *Profile) Name() string {
	return p.name
}

// DefaultProfile reports whether this profile came from the default set.
func (p *Profile) DefaultProfile() bool {
	return p.defaultProfile
}

func (p *Profile) String() string {
	if p == nil {
		return ""
	}
	return p.name
}

// sameProfile compares two work-list entries; either side may be the nil
// sentinel of the unprofiled pass.
func sameProfile(a, b *Profile) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.name == b.name
}

func containsProfile(list []*Profile, p *Profile) bool {
	return slices.ContainsFunc(list, func(e *Profile) bool {
		return sameProfile(e, p)
	})
}

// toProfiles converts names into profiles, dropping blanks so anonymous
// profiles are never manufactured.
func toProfiles(names []string) []*Profile {
	var ret []*Profile
	for _, name := range names {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		p := newProfile(name)
		if !containsProfile(ret, p) {
			ret = append(ret, p)
		}
	}
	return ret
}

func profileNames(list []*Profile) []string {
	var ret []string
	for _, p := range list {
		if p != nil {
			ret = append(ret, p.name)
		}
	}
	return ret
}
