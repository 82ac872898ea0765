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
	"fmt"
	"slices"
	"strings"

	"github.com/go-spring/spring-boot/conf"
	"github.com/go-spring/spring-boot/env"
)

// Document is one parsed configuration unit: a property source plus the
// profile metadata declared inside it. A document with no declared
// profiles is unprofiled.
type Document struct {
	source          *env.PropertySource
	profiles        []string   // spring.profiles
	activeProfiles  []*Profile // spring.profiles.active
	includeProfiles []*Profile // spring.profiles.include
}

// Source returns the document's property source.
func (d *Document) Source() *env.PropertySource {
	return d.source
}

// Profiles returns the profile expressions declared via spring.profiles.
func (d *Document) Profiles() []string {
	return d.profiles
}

func newDocument(source *env.PropertySource) *Document {
	return &Document{
		source:          source,
		profiles:        sourceStringList(source, "spring.profiles"),
		activeProfiles:  toProfiles(sourceStringList(source, ActiveProfilesProperty)),
		includeProfiles: toProfiles(sourceStringList(source, IncludeProfilesProperty)),
	}
}

// sourceStringList reads a key that may be a comma-separated scalar or an
// indexed list (key[0], key[1], ...).
func sourceStringList(source *env.PropertySource, key string) []string {
	if v, ok := source.Property(key); ok {
		return splitCSV(v)
	}
	var ret []string
	for i := 0; ; i++ {
		v, ok := source.Property(fmt.Sprintf("%s[%d]", key, i))
		if !ok {
			break
		}
		if v = strings.TrimSpace(v); v != "" {
			ret = append(ret, v)
		}
	}
	return ret
}

func splitCSV(s string) []string {
	var ret []string
	for e := range strings.SplitSeq(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			ret = append(ret, e)
		}
	}
	return ret
}

// documentFilter decides whether a parsed document applies to the pass
// currently running.
type documentFilter func(*Document) bool

// documentConsumer receives an accepted document together with the
// profile the current pass runs under.
type documentConsumer func(*Profile, *Document)

// documentFilterFactory builds the filter for a given profile; the nil
// profile stands for the unprofiled pass.
type documentFilterFactory func(*Profile) documentFilter

// positiveFilter selects documents owned by the given profile: unprofiled
// documents when profile is nil, otherwise profiled documents that name
// the profile and whose declared expression is accepted by the current
// active set.
func (l *Loader) positiveFilter(profile *Profile) documentFilter {
	return func(d *Document) bool {
		if profile == nil {
			return len(d.profiles) == 0
		}
		return slices.Contains(d.profiles, profile.name) &&
			l.environment.AcceptsProfiles(d.profiles...)
	}
}

// negativeFilter selects, in the final unprofiled pass, profiled
// documents whose declared expression evaluates true under the final
// active set.
func (l *Loader) negativeFilter(profile *Profile) documentFilter {
	return func(d *Document) bool {
		return profile == nil && len(d.profiles) > 0 &&
			l.environment.AcceptsProfiles(d.profiles...)
	}
}

// documentsCacheKey memoizes parse results per (loader, resource).
type documentsCacheKey struct {
	loader conf.Loader
	uri    string
}
