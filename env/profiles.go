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

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/go-spring/stdlib/errutil"
)

// Profiles is a compiled set of profile expressions. The set matches when
// at least one expression matches.
type Profiles struct {
	programs []*vm.Program
}

// ParseProfiles compiles profile expressions such as "dev", "!prod" or
// "a & (b | c)". Profile names may contain '-' and '.', so each name is
// rewritten to a quoted lookup call and the boolean skeleton is compiled
// as an expression.
func ParseProfiles(expressions ...string) (*Profiles, error) {
	if len(expressions) == 0 {
		return nil, errutil.Explain(nil, "must specify at least one profile expression")
	}
	p := &Profiles{}
	for _, s := range expressions {
		code, err := rewriteExpression(s)
		if err != nil {
			return nil, err
		}
		program, err := expr.Compile(code, expr.Env(profileExprEnv(nil)), expr.AsBool())
		if err != nil {
			return nil, errutil.Explain(err, "invalid profile expression %q", s)
		}
		p.programs = append(p.programs, program)
	}
	return p, nil
}

// Matches reports whether any expression evaluates to true, with profile
// activity decided by the given predicate.
func (p *Profiles) Matches(isActive func(name string) bool) bool {
	for _, program := range p.programs {
		out, err := expr.Run(program, profileExprEnv(isActive))
		if err != nil {
			continue
		}
		if b, ok := out.(bool); ok && b {
			return true
		}
	}
	return false
}

func profileExprEnv(isActive func(string) bool) map[string]any {
	if isActive == nil {
		isActive = func(string) bool { return false }
	}
	return map[string]any{"has": isActive}
}

// rewriteExpression converts a profile expression into expr syntax:
// names become has("name"), single & and | become && and ||.
func rewriteExpression(s string) (string, error) {
	var b strings.Builder
	runes := []rune(s)
	sawName := false
	for i := 0; i < len(runes); {
		switch c := runes[i]; c {
		case ' ', '\t':
			i++
		case '(', ')', '!':
			b.WriteRune(c)
			i++
		case '&', '|':
			b.WriteRune(c)
			b.WriteRune(c)
			i++
			if i < len(runes) && runes[i] == c {
				i++
			}
		default:
			j := i
			for j < len(runes) && !strings.ContainsRune(" \t()!&|", runes[j]) {
				j++
			}
			name := string(runes[i:j])
			if strings.ContainsAny(name, `"\`) {
				return "", errutil.Explain(nil, "invalid profile name %q in expression %q", name, s)
			}
			b.WriteString(`has("`)
			b.WriteString(name)
			b.WriteString(`")`)
			sawName = true
			i = j
		}
	}
	if !sawName {
		return "", errutil.Explain(nil, "invalid profile expression %q", s)
	}
	return b.String(), nil
}
