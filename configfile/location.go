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
	"path"
	"slices"
	"strings"

	"github.com/go-spring/stdlib/errutil"

	"github.com/go-spring/spring-boot/resource"
)

// searchLocations resolves the ordered set of locations to scan.
// spring.config.location replaces the defaults entirely;
// spring.config.additional-location is merged in front of them.
// Entries are comma-split, trimmed and reversed before deduplication, so
// the most specific location sorts first.
func (l *Loader) searchLocations() ([]string, error) {
	var locations []string
	if l.environment.Has(ConfigLocationProperty) {
		locations = l.locationsFromProperty(ConfigLocationProperty)
	} else {
		locations = l.locationsFromProperty(ConfigAdditionalLocationProperty)
		for _, s := range l.asResolvedSet(l.searchLocationsOverride, DefaultSearchLocations) {
			if !slices.Contains(locations, s) {
				locations = append(locations, s)
			}
		}
	}
	if len(locations) == 0 {
		return nil, errutil.Explain(nil, "config file search locations must not be empty")
	}
	return locations, nil
}

func (l *Loader) locationsFromProperty(name string) []string {
	if !l.environment.Has(name) {
		return nil
	}
	var locations []string
	for _, s := range l.asResolvedSet(l.environment.Property(name), "") {
		if !strings.Contains(s, "$") {
			s = normalizePath(s)
			if !isURL(s) {
				s = resource.FilePrefix + s
			}
		}
		if !slices.Contains(locations, s) {
			locations = append(locations, s)
		}
	}
	return locations
}

// searchNames resolves the ordered set of base file names, using the
// same comma-split-and-reverse rule as the locations.
func (l *Loader) searchNames() ([]string, error) {
	var names []string
	if l.environment.Has(ConfigNameProperty) {
		names = l.asResolvedSet(l.environment.Property(ConfigNameProperty), "")
	} else {
		names = l.asResolvedSet(l.searchNamesOverride, DefaultNames)
	}
	if len(names) == 0 {
		return nil, errutil.Explain(nil, "config file names must not be empty")
	}
	return names, nil
}

// asResolvedSet resolves placeholders, comma-splits, trims, reverses and
// deduplicates. Unresolvable placeholders keep the raw value.
func (l *Loader) asResolvedSet(value, fallback string) []string {
	s := value
	if s == "" {
		s = fallback
	}
	if resolved, err := l.environment.Resolve(s); err == nil {
		s = resolved
	}
	var parts []string
	for e := range strings.SplitSeq(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			parts = append(parts, e)
		}
	}
	slices.Reverse(parts)
	var set []string
	for _, e := range parts {
		if !slices.Contains(set, e) {
			set = append(set, e)
		}
	}
	return set
}

// normalizePath cleans a path while preserving a scheme prefix and the
// trailing slash that marks a folder location.
func normalizePath(p string) string {
	scheme := ""
	if i := strings.Index(p, ":"); i > 1 {
		scheme, p = p[:i+1], p[i+1:]
	}
	if p == "" {
		return scheme
	}
	folder := strings.HasSuffix(p, "/")
	cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if folder && !strings.HasSuffix(cleaned, "/") {
		cleaned += "/"
	}
	return scheme + cleaned
}

// isURL reports whether the path already carries a scheme prefix.
// Single-letter prefixes are Windows drive letters, not schemes.
func isURL(p string) bool {
	i := strings.Index(p, ":")
	return i > 1
}
