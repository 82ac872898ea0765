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
	"strings"

	"github.com/go-spring/stdlib/errutil"
)

// propertyLookup is the read surface placeholder resolution needs.
type propertyLookup interface {
	Has(key string) bool
	Property(key string, def ...string) string
}

// resolveString replaces every ${key:=default} reference in s with the
// looked-up value. Defaults may nest further references, and looked-up
// values are themselves resolved. A missing key without a default is an
// error.
func resolveString(p propertyLookup, s string) (string, error) {
	n := strings.Index(s, "${")
	if n < 0 {
		return s, nil
	}

	// find the matching brace, placeholders may nest inside defaults
	depth := 1
	end := -1
	for i := n + 2; i < len(s); i++ {
		if strings.HasPrefix(s[i:], "${") {
			depth++
		} else if s[i] == '}' {
			if depth--; depth == 0 {
				end = i
				break
			}
		}
	}
	if end < 0 {
		return "", errutil.Explain(nil, "resolve string %q error, invalid syntax", s)
	}

	key := s[n+2 : end]
	def, hasDef := "", false
	if i := strings.Index(key, ":="); i >= 0 {
		key, def, hasDef = key[:i], key[i+2:], true
	}

	var val string
	switch {
	case p.Has(key):
		val = p.Property(key)
	case hasDef:
		val = def
	default:
		err := errutil.Explain(nil, "property %q not exist", key)
		return "", errutil.Explain(err, "resolve string %q error", s)
	}

	val, err := resolveString(p, val)
	if err != nil {
		return "", err
	}

	rest, err := resolveString(p, s[end+1:])
	if err != nil {
		return "", err
	}
	return s[:n] + val + rest, nil
}
