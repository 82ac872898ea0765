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

// Package resource abstracts configuration file lookup behind location
// strings. Locations use the classpath: scheme for resources resolved
// against a set of fs.FS roots, and the file: scheme (or no scheme) for
// the operating system filesystem.
package resource

import (
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

const (
	// ClasspathPrefix marks locations resolved against the loader's
	// classpath roots.
	ClasspathPrefix = "classpath:"

	// FilePrefix marks locations resolved against the OS filesystem.
	FilePrefix = "file:"
)

// Resource is a handle to a configuration file candidate. A resource may
// point at a file that does not exist; callers check Exists before Open.
type Resource interface {
	// Exists reports whether the underlying file is present.
	Exists() bool
	// Filename returns the base name of the file.
	Filename() string
	// URI returns the location string that produced this resource.
	URI() string
	// Open opens the file for reading.
	Open() (io.ReadCloser, error)
}

// Loader resolves a location string into a Resource.
type Loader interface {
	Resource(location string) Resource
}

// FSLoader resolves classpath: locations against an ordered list of fs.FS
// roots (first root containing the file wins) and file: locations against
// the OS filesystem. An embed.FS works as a classpath root.
type FSLoader struct {
	classpath []fs.FS
}

var _ Loader = (*FSLoader)(nil)

// NewFSLoader creates a loader with the given classpath roots.
func NewFSLoader(classpath ...fs.FS) *FSLoader {
	return &FSLoader{classpath: classpath}
}

// Resource resolves a location string. Unknown schemes produce a resource
// that does not exist.
func (l *FSLoader) Resource(location string) Resource {
	if s, ok := strings.CutPrefix(location, ClasspathPrefix); ok {
		name := path.Clean(strings.TrimPrefix(s, "/"))
		for _, root := range l.classpath {
			if info, err := fs.Stat(root, name); err == nil && !info.IsDir() {
				return &fsResource{uri: location, name: name, root: root}
			}
		}
		return &fsResource{uri: location, name: name}
	}
	s := strings.TrimPrefix(location, FilePrefix)
	if i := strings.Index(s, ":"); i > 1 { // unknown scheme, not a drive letter
		return &fsResource{uri: location, name: s}
	}
	return &osResource{uri: location, path: s}
}

// fsResource is a classpath resource; root is nil when no classpath root
// contains the file.
type fsResource struct {
	uri  string
	name string
	root fs.FS
}

func (r *fsResource) Exists() bool     { return r.root != nil }
func (r *fsResource) Filename() string { return path.Base(r.name) }
func (r *fsResource) URI() string      { return r.uri }

func (r *fsResource) Open() (io.ReadCloser, error) {
	if r.root == nil {
		return nil, fs.ErrNotExist
	}
	return r.root.Open(r.name)
}

// osResource is a file: resource on the OS filesystem.
type osResource struct {
	uri  string
	path string
}

func (r *osResource) Exists() bool {
	info, err := os.Stat(r.path)
	return err == nil && !info.IsDir()
}

func (r *osResource) Filename() string {
	return path.Base(strings.ReplaceAll(r.path, "\\", "/"))
}

func (r *osResource) URI() string { return r.uri }

func (r *osResource) Open() (io.ReadCloser, error) {
	return os.Open(r.path)
}
