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

// Package configfile discovers, parses and publishes the application's
// configuration files during bootstrap.
//
// Given an environment, a resource loader and a set of property-source
// loaders, the Loader expands {locations × names × profile suffixes ×
// extensions} into file candidates, parses the ones that exist, decides
// per document whether it applies under the currently-declared profiles,
// and publishes the accepted property sources into the environment in
// precedence order. Profile membership is itself discovered inside the
// loaded documents (spring.profiles.active / spring.profiles.include), so
// the profile work-list grows while it is being drained.
package configfile

import (
	"path"
	"slices"
	"strings"

	"github.com/go-spring/stdlib/errutil"

	"github.com/go-spring/spring-boot/conf"
	"github.com/go-spring/spring-boot/env"
	"github.com/go-spring/spring-boot/resource"
)

const (
	// ActiveProfilesProperty lists the explicitly activated profiles.
	ActiveProfilesProperty = "spring.profiles.active"

	// IncludeProfilesProperty lists profiles pulled in transitively.
	IncludeProfilesProperty = "spring.profiles.include"

	// ConfigNameProperty overrides the base file names to search for.
	ConfigNameProperty = "spring.config.name"

	// ConfigLocationProperty replaces the search locations entirely.
	ConfigLocationProperty = "spring.config.location"

	// ConfigAdditionalLocationProperty adds search locations in front of
	// the defaults.
	ConfigAdditionalLocationProperty = "spring.config.additional-location"

	// DefaultPropertiesName is the reserved name of the source holding
	// developer-supplied defaults; it stays at lowest precedence.
	DefaultPropertiesName = "defaultProperties"

	// DefaultSearchLocations are scanned when no override is given,
	// listed least specific first.
	DefaultSearchLocations = "classpath:/,classpath:/config/,file:./,file:./config/"

	// DefaultNames is the base file name searched by default.
	DefaultNames = "application"
)

// Option configures a Loader.
type Option func(*Loader)

// WithSearchLocations sets the programmatic search-location override, a
// comma-separated list used when spring.config.location is absent.
func WithSearchLocations(locations string) Option {
	return func(l *Loader) {
		l.searchLocationsOverride = locations
	}
}

// WithSearchNames sets the programmatic file-name override, a
// comma-separated list used when spring.config.name is absent.
func WithSearchNames(names string) Option {
	return func(l *Loader) {
		l.searchNamesOverride = names
	}
}

// WithLoaders replaces the registered property-source loaders.
func WithLoaders(loaders ...conf.Loader) Option {
	return func(l *Loader) {
		l.loaders = loaders
	}
}

// Loader runs one configuration load pass. All traversal state lives for
// a single Load call; the environment it mutates is owned exclusively by
// the bootstrap thread for the duration of the pass.
type Loader struct {
	environment *env.Environment
	resources   resource.Loader
	loaders     []conf.Loader
	logger      *DeferredLog

	searchLocationsOverride string
	searchNamesOverride     string

	profiles          []*Profile // FIFO work-list, may hold the nil sentinel once
	processedProfiles []*Profile
	activatedProfiles bool
	loaded            *loadedBuckets
	cache             map[documentsCacheKey][]*Document
}

// New creates a Loader over the given environment and resource loader,
// using the registered property-source loaders unless overridden.
func New(e *env.Environment, resources resource.Loader, opts ...Option) *Loader {
	l := &Loader{
		environment: e,
		resources:   resources,
		loaders:     conf.Loaders(),
		logger:      NewDeferredLog(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Logger returns the deferred log buffer; the host replays it once the
// logging subsystem is configured.
func (l *Loader) Logger() *DeferredLog {
	return l.logger
}

// Load runs the full load pass: the positive per-profile loop, the final
// negative pass, and publication into the environment. On a parse error
// the pass aborts; active profiles added before the failure stay on the
// environment.
func (l *Loader) Load() error {
	if l.environment == nil {
		return errutil.Explain(nil, "environment must not be nil")
	}
	if l.resources == nil {
		return errutil.Explain(nil, "resource loader must not be nil")
	}

	l.profiles = nil
	l.processedProfiles = nil
	l.activatedProfiles = false
	l.loaded = newLoadedBuckets()
	l.cache = map[documentsCacheKey][]*Document{}

	l.initializeProfiles()
	for len(l.profiles) > 0 {
		profile := l.profiles[0]
		l.profiles = l.profiles[1:]
		if profile != nil && !profile.defaultProfile {
			l.environment.AddActiveProfile(profile.name)
		}
		if err := l.loadProfile(profile, l.positiveFilter, l.bucketAppend()); err != nil {
			return err
		}
		l.processedProfiles = append(l.processedProfiles, profile)
	}
	l.resetEnvironmentProfiles()
	if err := l.loadProfile(nil, l.negativeFilter, l.bucketPrependIfNew()); err != nil {
		return err
	}
	return l.publish()
}

// initializeProfiles seeds the work-list: the nil sentinel first, then
// profiles activated via properties and the environment's current active
// list. When nothing is found, the environment's default profiles are
// queued with the default flag set.
func (l *Loader) initializeProfiles() {
	l.profiles = append(l.profiles, nil)
	activatedViaProperty := l.profilesActivatedViaProperty()
	l.profiles = append(l.profiles, l.otherActiveProfiles(activatedViaProperty)...)
	l.addActiveProfiles(activatedViaProperty)
	if len(l.profiles) == 1 { // only the sentinel, no profiles found
		for _, name := range l.environment.DefaultProfiles() {
			p := newDefaultProfile(name)
			if !containsProfile(l.profiles, p) {
				l.profiles = append(l.profiles, p)
			}
		}
	}
}

// profilesActivatedViaProperty reads spring.profiles.include and
// spring.profiles.active, include first, as an insertion-ordered set.
func (l *Loader) profilesActivatedViaProperty() []*Profile {
	if !l.environment.Has(ActiveProfilesProperty) && !l.environment.Has(IncludeProfilesProperty) {
		return nil
	}
	names := splitCSV(l.environment.Property(IncludeProfilesProperty))
	names = append(names, splitCSV(l.environment.Property(ActiveProfilesProperty))...)
	return toProfiles(names)
}

// otherActiveProfiles returns the environment's active profiles that were
// not already activated via property.
func (l *Loader) otherActiveProfiles(activatedViaProperty []*Profile) []*Profile {
	var ret []*Profile
	for _, name := range l.environment.ActiveProfiles() {
		p := newProfile(name)
		if !containsProfile(activatedViaProperty, p) {
			ret = append(ret, p)
		}
	}
	return ret
}

// addActiveProfiles appends newly activated profiles to the work-list.
// The first non-empty call latches; later activations are ignored so a
// single load pass cannot cascade activations from multiple documents.
func (l *Loader) addActiveProfiles(profiles []*Profile) {
	if len(profiles) == 0 {
		return
	}
	if l.activatedProfiles {
		l.logger.Debugf("profiles already activated, %v will not be applied", profileNames(profiles))
		return
	}
	l.profiles = append(l.profiles, profiles...)
	l.logger.Debugf("activated profiles %v", profileNames(profiles))
	l.activatedProfiles = true
	l.removeUnprocessedDefaultProfiles()
}

func (l *Loader) removeUnprocessedDefaultProfiles() {
	l.profiles = slices.DeleteFunc(l.profiles, func(p *Profile) bool {
		return p != nil && p.defaultProfile
	})
}

// addIncludedProfiles prepends include-discovered profiles so they are
// processed next, keeping the existing tail and skipping profiles that
// were already processed.
func (l *Loader) addIncludedProfiles(profiles []*Profile) {
	if len(profiles) == 0 {
		return
	}
	existing := l.profiles
	head := slices.Clone(profiles)
	head = slices.DeleteFunc(head, func(p *Profile) bool {
		return containsProfile(l.processedProfiles, p)
	})
	l.profiles = append(head, existing...)
}

// resetEnvironmentProfiles replaces the environment's active set with the
// processed profiles, dropping the nil sentinel and default profiles.
func (l *Loader) resetEnvironmentProfiles() {
	var names []string
	for _, p := range l.processedProfiles {
		if p != nil && !p.defaultProfile {
			names = append(names, p.name)
		}
	}
	l.environment.SetActiveProfiles(names...)
}

// loadProfile expands all (location, name) pairs for one work-list entry.
func (l *Loader) loadProfile(profile *Profile, filterFactory documentFilterFactory, consumer documentConsumer) error {
	locations, err := l.searchLocations()
	if err != nil {
		return err
	}
	for _, location := range locations {
		if strings.HasSuffix(location, "/") {
			names, err := l.searchNames()
			if err != nil {
				return err
			}
			for _, name := range names {
				if err = l.loadLocation(location, name, profile, filterFactory, consumer); err != nil {
					return err
				}
			}
		} else {
			// a concrete file, the extension comes from the location
			if err = l.loadLocation(location, "", profile, filterFactory, consumer); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadLocation expands one (location, name) pair across the supported
// file extensions. Extensions claimed by several loaders are parsed once.
func (l *Loader) loadLocation(location, name string, profile *Profile, filterFactory documentFilterFactory, consumer documentConsumer) error {
	if name == "" {
		for _, loader := range l.loaders {
			if canLoadFileExtension(loader, location) {
				return l.loadResource(loader, location, profile, filterFactory(profile), consumer)
			}
		}
		return errutil.Explain(nil, "file extension of config file location %q is not known to any property source loader", location)
	}
	seen := map[string]bool{}
	for _, loader := range l.loaders {
		for _, ext := range loader.FileExtensions() {
			if seen[ext] {
				continue
			}
			seen[ext] = true
			if err := l.loadForFileExtension(loader, location+name, "."+ext, profile, filterFactory, consumer); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadForFileExtension emits the candidates for one (prefix, extension):
// the profile-specific file under both the default and the profile
// filter, files of already-processed profiles under the profile filter
// (a later profile may own documents inside an earlier profile's file),
// and finally the base file under the profile filter.
func (l *Loader) loadForFileExtension(loader conf.Loader, prefix, ext string, profile *Profile, filterFactory documentFilterFactory, consumer documentConsumer) error {
	defaultFilter := filterFactory(nil)
	profileFilter := filterFactory(profile)
	if profile != nil {
		profileSpecific := prefix + "-" + profile.name + ext
		if err := l.loadResource(loader, profileSpecific, profile, defaultFilter, consumer); err != nil {
			return err
		}
		if err := l.loadResource(loader, profileSpecific, profile, profileFilter, consumer); err != nil {
			return err
		}
		for _, processed := range l.processedProfiles {
			if processed != nil {
				previouslyLoaded := prefix + "-" + processed.name + ext
				if err := l.loadResource(loader, previouslyLoaded, profile, profileFilter, consumer); err != nil {
					return err
				}
			}
		}
	}
	return l.loadResource(loader, prefix+ext, profile, profileFilter, consumer)
}

// loadResource parses one candidate and feeds the accepted documents to
// the consumer. Missing files, extension-less resources and empty parse
// results are skipped, not errors. Accepted documents first contribute
// their active/include profiles to the work-list, then the accepted list
// is reversed so that, with the appending consumer of the positive pass,
// later documents in a file override earlier ones. With the prepending
// consumer of the negative pass, earlier documents come out on top.
func (l *Loader) loadResource(loader conf.Loader, location string, profile *Profile, filter documentFilter, consumer documentConsumer) error {
	res := l.resources.Resource(location)
	if res == nil || !res.Exists() {
		l.logger.Debugf("skipped missing config file %q", location)
		return nil
	}
	if path.Ext(res.Filename()) == "" {
		l.logger.Debugf("skipped config file %q without extension", location)
		return nil
	}
	name := "applicationConfig: [" + location + "]"
	docs, err := l.documents(loader, name, res)
	if err != nil {
		return errutil.Stack(err, "failed to load property source from location %q", location)
	}
	if len(docs) == 0 {
		l.logger.Debugf("skipped unloaded config file %q", location)
		return nil
	}
	var accepted []*Document
	for _, doc := range docs {
		if filter(doc) {
			l.addActiveProfiles(doc.activeProfiles)
			l.addIncludedProfiles(doc.includeProfiles)
			accepted = append(accepted, doc)
		}
	}
	slices.Reverse(accepted)
	if len(accepted) > 0 {
		for _, doc := range accepted {
			consumer(profile, doc)
		}
		l.logger.Debugf("loaded config file %q (%d document(s)) for profile %q", location, len(accepted), profile)
	}
	return nil
}

// documents parses a resource through the per-load cache.
func (l *Loader) documents(loader conf.Loader, name string, res resource.Resource) ([]*Document, error) {
	key := documentsCacheKey{loader: loader, uri: res.URI()}
	if docs, ok := l.cache[key]; ok {
		return docs, nil
	}
	sources, err := loader.Load(name, res)
	if err != nil {
		return nil, err
	}
	var docs []*Document
	for _, s := range sources {
		docs = append(docs, newDocument(s))
	}
	l.cache[key] = docs
	return docs, nil
}

func canLoadFileExtension(loader conf.Loader, location string) bool {
	lower := strings.ToLower(location)
	return slices.ContainsFunc(loader.FileExtensions(), func(ext string) bool {
		return strings.HasSuffix(lower, "."+ext)
	})
}

// bucketAppend is the positive-pass consumer: documents append to their
// profile's bucket without a duplicate check, the same source name may
// legitimately appear under different profile buckets.
func (l *Loader) bucketAppend() documentConsumer {
	return func(profile *Profile, doc *Document) {
		l.loaded.bucket(profile).AddLast(doc.source)
	}
}

// bucketPrependIfNew is the negative-pass consumer: a source whose name
// is already present in any bucket is skipped, otherwise it is prepended
// and so takes the highest precedence inside its bucket.
func (l *Loader) bucketPrependIfNew() documentConsumer {
	return func(profile *Profile, doc *Document) {
		if l.loaded.containsSource(doc.source.Name()) {
			return
		}
		l.loaded.bucket(profile).AddFirst(doc.source)
	}
}
