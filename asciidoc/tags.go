// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package asciidoc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gardener/docforge-catalog/catalog"
)

var tagDirective = regexp.MustCompile(`^\s*(?:<!--\s*|/\*\s*|\(\*\s*|//\s*|#\s*)?(tag|end)::([\w.$-]+)\[\](?:\s*-->|\s*\*/|\s*\*\))?\s*$`)

// applyTagsFilter implements the `tag=`/`tags=` include option: named
// regions delimited by tag::name[] ... end::name[] markers (optionally
// wrapped in a line or block comment) are kept when requested, dropped
// otherwise. "*" selects every tagged region; "**" selects every line
// except the directive lines themselves; "!name" excludes a region even
// when a wildcard would otherwise include it.
func (p *Processor) applyTagsFilter(body, opts string, file *catalog.File, ctx IncludeContext) string {
	spec, ok := optValue(opts, "tags")
	if !ok {
		spec, ok = optValue(opts, "tag")
	}
	if !ok || spec == "" {
		return body
	}

	wanted := map[string]bool{}
	excluded := map[string]bool{}
	all, everything := false, false
	for _, tok := range splitOnCommaOrSemicolon(spec) {
		tok = strings.TrimSpace(tok)
		switch {
		case tok == "**":
			everything = true
		case tok == "*":
			all = true
		case strings.HasPrefix(tok, "!"):
			excluded[strings.TrimPrefix(tok, "!")] = true
		case tok != "":
			wanted[tok] = true
		}
	}

	// A spec made up only of negations ("!hello") has no positive selector
	// to anchor on; it implicitly means "everything except the named
	// regions", the same as "**;!hello".
	if !all && !everything && len(wanted) == 0 && len(excluded) > 0 {
		everything = true
	}

	lines := strings.Split(body, "\n")
	var out []string
	var stack []string
	var openedAt []int

	for i, line := range lines {
		lineNum := i + 1
		if m := tagDirective.FindStringSubmatch(line); m != nil {
			kind, name := m[1], m[2]
			if kind == "tag" {
				stack = append(stack, name)
				openedAt = append(openedAt, lineNum)
			} else if len(stack) == 0 || stack[len(stack)-1] != name {
				p.diagWarn("mismatched-end-tag", fmt.Sprintf("end::%s[] does not match the innermost open tag", name), file.Path, lineNum, ctx)
			} else {
				stack = stack[:len(stack)-1]
				openedAt = openedAt[:len(openedAt)-1]
			}
			continue
		}
		if everything {
			if !tagsExcluded(stack, excluded) {
				out = append(out, line)
			}
			continue
		}
		include := false
		for _, t := range stack {
			if excluded[t] {
				include = false
				break
			}
			if all || wanted[t] {
				include = true
			}
		}
		if include {
			out = append(out, line)
		}
	}

	for i, t := range stack {
		p.diagWarn("unclosed-tag", fmt.Sprintf("tag::%s[] is never closed", t), file.Path, openedAt[i], ctx)
	}

	return strings.Join(out, "\n")
}

// tagsExcluded reports whether any tag currently open on stack is named in
// excluded.
func tagsExcluded(stack []string, excluded map[string]bool) bool {
	for _, t := range stack {
		if excluded[t] {
			return true
		}
	}
	return false
}
