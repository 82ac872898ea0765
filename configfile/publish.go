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

	"github.com/go-spring/spring-boot/env"
)

// loadedBuckets holds the per-profile merged source lists built during
// loading, keyed by the profile a document was accepted under. Bucket
// order is the order in which buckets received their first source. A
// profile's bucket is only filled during that profile's pass, so this
// follows the work-list order, except that the nil bucket is created by
// the final negative pass when the first pass accepted no unprofiled
// document.
type loadedBuckets struct {
	order   []*Profile
	buckets map[string]*env.Sources
}

func newLoadedBuckets() *loadedBuckets {
	return &loadedBuckets{buckets: map[string]*env.Sources{}}
}

// profile names are non-empty, so the empty key is the nil sentinel
func bucketKey(p *Profile) string {
	if p == nil {
		return ""
	}
	return p.name
}

// bucket returns the profile's bucket, creating it on first use.
func (b *loadedBuckets) bucket(p *Profile) *env.Sources {
	key := bucketKey(p)
	s, ok := b.buckets[key]
	if !ok {
		s = env.NewSources()
		b.buckets[key] = s
		b.order = append(b.order, p)
	}
	return s
}

// containsSource checks whether any bucket holds a source with the name.
func (b *loadedBuckets) containsSource(name string) bool {
	for _, s := range b.buckets {
		if s.Contains(name) {
			return true
		}
	}
	return false
}

// reversed returns the buckets in reverse insertion order.
func (b *loadedBuckets) reversed() []*env.Sources {
	ret := make([]*env.Sources, 0, len(b.order))
	for _, p := range b.order {
		ret = append(ret, b.buckets[bucketKey(p)])
	}
	slices.Reverse(ret)
	return ret
}

// publish drains the buckets into the environment's source list. Buckets
// are walked in reverse insertion order, so the sources of the
// last-processed profile are inserted first and end up with the highest
// precedence once the chained insert-after walk has finished. A source
// name is published at most once; the very first source lands before an
// existing defaultProperties source, or at the end of the list.
func (l *Loader) publish() error {
	destination := l.environment.Sources()
	lastAdded := ""
	added := map[string]bool{}
	for _, bucket := range l.loaded.reversed() {
		for _, name := range bucket.Names() {
			if added[name] {
				continue
			}
			added[name] = true
			source := bucket.Get(name)
			if lastAdded == "" {
				if destination.Contains(DefaultPropertiesName) {
					if err := destination.InsertBefore(DefaultPropertiesName, source); err != nil {
						return err
					}
				} else {
					destination.AddLast(source)
				}
			} else {
				if err := destination.InsertAfter(lastAdded, source); err != nil {
					return err
				}
			}
			lastAdded = name
		}
	}
	return nil
}

// ReorderDefaultProperties moves the defaultProperties source back to the
// end of the environment's source list. The host calls this at container
// refresh so developer-supplied defaults stay at lowest precedence no
// matter where loading inserted sources around them.
func ReorderDefaultProperties(e *env.Environment) {
	if ps := e.Sources().Remove(DefaultPropertiesName); ps != nil {
		e.Sources().AddLast(ps)
	}
}
