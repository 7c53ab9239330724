// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package asciidoc is the Markup Adapter: it resolves include directives and
// inline xref/image macros against the content catalog before handing the
// remaining markup to goldmark for HTML rendering.
package asciidoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gardener/docforge-catalog/catalog"
	"github.com/gardener/docforge-catalog/diagnostics"
	"github.com/gardener/docforge-catalog/internal/resourceid"
)

var includeDirective = regexp.MustCompile(`^include::([^\[]+)\[([^\]]*)\]\s*$`)

// IncludeContext is the current-file context an include is resolved
// against: the issuing file and how deep the include chain already is.
type IncludeContext struct {
	File  *catalog.File
	Dir   string
	Depth int
	Stack []diagnostics.Location
}

// ResolveIncludes expands every include::target[opts] line in src,
// recursively, up to MaxIncludeDepth. Unresolved required includes become a
// placeholder line; unresolved optional includes (opts=optional) are
// dropped.
func (p *Processor) ResolveIncludes(ctx IncludeContext, src []byte) []byte {
	lines := strings.Split(string(src), "\n")
	var out []string

	for _, line := range lines {
		m := includeDirective.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			out = append(out, line)
			continue
		}
		out = append(out, p.expandInclude(ctx, m[1], m[2])...)
	}
	return []byte(strings.Join(out, "\n"))
}

func (p *Processor) expandInclude(ctx IncludeContext, target, opts string) []string {
	if ctx.Depth >= p.maxIncludeDepth() {
		p.diagError("max-include-depth", fmt.Sprintf("max-include-depth reached resolving %s", target), ctx.File.Path, ctx)
		return nil
	}

	optional := hasOpt(opts, "optional")
	resolved, family := p.resolveIncludeTarget(ctx, target)
	if resolved == nil {
		if optional {
			p.diagInfo("unresolved-include", fmt.Sprintf("optional include dropped: %s", target), ctx.File.Path, ctx)
			return nil
		}
		p.diagError("unresolved-include", fmt.Sprintf("Unresolved include directive in %s - include::%s[%s]", ctx.File.Path, target, opts), ctx.File.Path, ctx)
		return []string{fmt.Sprintf("Unresolved include directive in %s - include::%s[%s]", ctx.File.Path, target, opts)}
	}

	// Raw source lives in Src.Contents; File.Contents of an already
	// converted page holds rendered HTML.
	body := string(resolved.Src.Contents)
	if resolved.Src.Contents == nil {
		body = string(resolved.Contents)
	}
	nestedCtx := IncludeContext{
		File:  resolved,
		Dir:   dirOf(resolved.Src.Relative),
		Depth: ctx.Depth + 1,
		Stack: append(append([]diagnostics.Location{}, ctx.Stack...), diagnostics.Location{Path: ctx.File.Path}),
	}
	body = applyLinesFilter(body, opts)
	// Tag warnings name the include file; their stack ends at the including file.
	body = p.applyTagsFilter(body, opts, resolved, nestedCtx)
	_ = family
	expanded := p.ResolveIncludes(nestedCtx, []byte(body))
	return strings.Split(string(expanded), "\n")
}

// resolveIncludeTarget implements the target-resolution contract: a
// {partialsdir}/ or {examplesdir}/ prefix, or an explicit family$ marker,
// names a family; a fully-qualified resource id goes through the Resource
// Resolver; anything else is resolved relative to the current (issuing)
// file, not the top-level page.
func (p *Processor) resolveIncludeTarget(ctx IncludeContext, target string) (*catalog.File, resourceid.Family) {
	family := resourceid.FamilyPartial
	spec := target

	switch {
	case strings.HasPrefix(target, "{partialsdir}/"):
		spec = strings.TrimPrefix(target, "{partialsdir}/")
		family = resourceid.FamilyPartial
	case strings.HasPrefix(target, "{examplesdir}/"):
		spec = strings.TrimPrefix(target, "{examplesdir}/")
		family = resourceid.FamilyExample
	case strings.HasPrefix(target, "./"):
		rel := strings.TrimPrefix(target, "./")
		if ctx.Dir != "" {
			rel = ctx.Dir + "/" + rel
		}
		f := p.Catalog.GetByPath(ctx.File.Src.Component, ctx.File.Src.Version, ctx.File.Src.Module, ctx.File.Src.Family, rel)
		return f, ctx.File.Src.Family
	}

	rctx := catalog.ResolveContext{
		Component: ctx.File.Src.Component,
		Version:   ctx.File.Src.Version,
		Module:    ctx.File.Src.Module,
		Dir:       ctx.Dir,
	}
	f, err := p.Resolver.Resolve(spec, rctx, family, []resourceid.Family{resourceid.FamilyPartial, resourceid.FamilyExample, resourceid.FamilyPage})
	if err != nil || f == nil {
		return nil, family
	}
	return f, f.EffectiveFamily()
}

func (p *Processor) maxIncludeDepth() int {
	if p.MaxIncludeDepth > 0 {
		return p.MaxIncludeDepth
	}
	return 64
}

func hasOpt(opts, name string) bool {
	for _, part := range strings.Split(opts, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 && strings.TrimSpace(kv[0]) == name && strings.TrimSpace(kv[1]) == "optional" {
			return true
		}
		if strings.TrimSpace(part) == name {
			return true
		}
	}
	return false
}

func optValue(opts, name string) (string, bool) {
	for _, part := range strings.Split(opts, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 && strings.TrimSpace(kv[0]) == name {
			return strings.TrimSpace(kv[1]), true
		}
	}
	return "", false
}

// applyLinesFilter implements the `lines=` option: a comma/semicolon list of
// line numbers or A..B ranges (B omitted or -1 means "to EOF"). An empty or
// absent list disables filtering.
func applyLinesFilter(body, opts string) string {
	spec, ok := optValue(opts, "lines")
	if !ok || spec == "" {
		return body
	}
	lines := strings.Split(body, "\n")
	selected := map[int]bool{}
	for _, tok := range splitOnCommaOrSemicolon(spec) {
		if tok == "" {
			continue
		}
		if strings.Contains(tok, "..") {
			parts := strings.SplitN(tok, "..", 2)
			from, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
			to := len(lines)
			if strings.TrimSpace(parts[1]) != "" && strings.TrimSpace(parts[1]) != "-1" {
				to, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
			}
			for i := from; i <= to && i <= len(lines); i++ {
				selected[i] = true
			}
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(tok)); err == nil {
			selected[n] = true
		}
	}
	var out []string
	for i, line := range lines {
		if selected[i+1] {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func splitOnCommaOrSemicolon(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
}

func dirOf(relative string) string {
	if i := strings.LastIndex(relative, "/"); i >= 0 {
		return relative[:i]
	}
	return ""
}
