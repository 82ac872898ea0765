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

// Package conf defines the property-source loader contract and the
// registry of file formats the configuration system understands.
//
// A loader claims a set of file extensions and parses one resource into
// one or more property sources; formats with document separators (YAML)
// may return several sources per file. Built-in loaders cover properties,
// YAML, TOML and JSON files. Register custom loaders with Register.
package conf

import (
	"github.com/go-spring/spring-boot/conf/json"
	"github.com/go-spring/spring-boot/conf/prop"
	"github.com/go-spring/spring-boot/conf/toml"
	"github.com/go-spring/spring-boot/conf/yaml"
	"github.com/go-spring/spring-boot/env"
	"github.com/go-spring/spring-boot/resource"
)

var loaders []Loader

func init() {
	Register(prop.New())
	Register(yaml.New())
	Register(toml.New())
	Register(json.New())
}

// Loader parses one kind of configuration file into property sources.
type Loader interface {
	// FileExtensions returns the extensions (without dot) this loader
	// claims, most specific first.
	FileExtensions() []string
	// Load parses the resource into property sources. The given name is
	// the base name of each returned source; multi-document files append
	// a document suffix.
	Load(name string, res resource.Resource) ([]*env.PropertySource, error)
}

// Register appends a loader to the registry.
func Register(l Loader) {
	loaders = append(loaders, l)
}

// Loaders returns the registered loaders in registration order.
func Loaders() []Loader {
	return loaders
}
