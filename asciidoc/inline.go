// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package asciidoc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gardener/docforge-catalog/catalog"
	"github.com/gardener/docforge-catalog/internal/resourceid"
)

var (
	xrefDirective = regexp.MustCompile(`xref:([^\[]+)\[([^\]]*)\]`)
	imageBlock    = regexp.MustCompile(`(?m)^image::([^\[]+)\[([^\]]*)\]\s*$`)
	imageInline   = regexp.MustCompile(`image:([^\[]+)\[([^\]]*)\]`)
)

// PageContext is the current page whose source is being processed.
type PageContext struct {
	File *catalog.File
}

// ResolveInlineRefs rewrites xref:/image:/image:: macros in src into HTML,
// resolving each target through the Resource Resolver and relativizing
// successful page/image URLs against the current page's own Pub.URL.
func (p *Processor) ResolveInlineRefs(pc PageContext, src []byte) []byte {
	s := string(src)
	s = imageBlock.ReplaceAllStringFunc(s, func(m string) string {
		return p.renderImage(pc, imageBlock.FindStringSubmatch(m), true)
	})
	s = imageInline.ReplaceAllStringFunc(s, func(m string) string {
		return p.renderImage(pc, imageInline.FindStringSubmatch(m), false)
	})
	s = xrefDirective.ReplaceAllStringFunc(s, func(m string) string {
		return p.renderXref(pc, xrefDirective.FindStringSubmatch(m))
	})
	return []byte(s)
}

func (p *Processor) renderXref(pc PageContext, m []string) string {
	target, content := m[1], m[2]

	if strings.HasPrefix(target, "#") {
		frag := strings.TrimPrefix(target, "#")
		text := content
		if text == "" {
			text = frag
		}
		return fmt.Sprintf(`<a href="#%s" class="xref page">%s</a>`, frag, text)
	}

	targetPath, fragment := splitFragment(target)

	rctx := catalog.ResolveContext{Component: pc.File.Src.Component, Version: pc.File.Src.Version, Module: pc.File.Src.Module, Dir: dirOf(pc.File.Src.Relative)}
	resolved, err := p.Resolver.Resolve(targetPath, rctx, resourceid.FamilyPage, nil)
	if err != nil || resolved == nil {
		p.diagError("unresolved-xref", fmt.Sprintf("target of xref:%s[] not found", target), pc.File.Path, IncludeContext{File: pc.File})
		return fmt.Sprintf(`<a href="#%s" class="xref unresolved">%s</a>`, target, fallbackText(content, target))
	}

	fam := resolved.EffectiveFamily()
	text := content
	if text == "" {
		if resolved.Asciidoc.Xreftext != "" {
			text = resolved.Asciidoc.Xreftext
		} else {
			text = target
		}
	}

	// A reference back to the current page is always a pure fragment link,
	// never a cross-page URL, even when the spec gave no #fragment.
	if resolved == pc.File {
		return fmt.Sprintf(`<a href="#%s" class="xref %s">%s</a>`, fragment, fam, text)
	}

	href := p.relativize(pc.File, resolved)
	if fragment != "" {
		href += "#" + fragment
	}
	return fmt.Sprintf(`<a href="%s" class="xref %s">%s</a>`, href, fam, text)
}

// splitFragment splits a resource-id spec on its first "#", mirroring
// resourceid.ParseID's own fragment handling, so renderXref can special-
// case a self-reference without threading Fragment back out of Resolve.
func splitFragment(spec string) (target, fragment string) {
	if i := strings.Index(spec, "#"); i >= 0 {
		return spec[:i], spec[i+1:]
	}
	return spec, ""
}

func (p *Processor) renderImage(pc PageContext, m []string, block bool) string {
	target, opts := m[1], m[2]
	rctx := catalog.ResolveContext{Component: pc.File.Src.Component, Version: pc.File.Src.Version, Module: pc.File.Src.Module, Dir: dirOf(pc.File.Src.Relative)}
	resolved, err := p.Resolver.Resolve(target, rctx, resourceid.FamilyImage, []resourceid.Family{resourceid.FamilyImage})

	class := "image"
	if block {
		class = "imageblock"
	}
	src := target
	if err != nil || resolved == nil {
		class += " unresolved"
		p.diagError("unresolved-image", fmt.Sprintf("target of image:%s[] not found", target), pc.File.Path, IncludeContext{File: pc.File})
	} else {
		src = p.relativize(pc.File, resolved)
	}

	// A link attribute takes precedence over xref: it is not a resource
	// reference, so it is not resolved and adds no xref-* class.
	xrefClass := ""
	if link, ok := optValue(opts, "link"); ok && link != "" {
		xrefClass = ""
	} else if xref, ok := optValue(opts, "xref"); ok && xref != "" {
		xrefClass = p.resolveXrefClass(pc, xref)
	}

	tag := fmt.Sprintf(`<img src="%s" class="%s%s"/>`, src, class, xrefClass)
	if block {
		return fmt.Sprintf(`<div class="%s%s">%s</div>`, class, xrefClass, tag)
	}
	return tag
}

func (p *Processor) resolveXrefClass(pc PageContext, xref string) string {
	rctx := catalog.ResolveContext{Component: pc.File.Src.Component, Version: pc.File.Src.Version, Module: pc.File.Src.Module}
	resolved, err := p.Resolver.Resolve(xref, rctx, resourceid.FamilyPage, nil)
	if err != nil || resolved == nil {
		return " xref-unresolved"
	}
	return " xref-" + string(resolved.EffectiveFamily())
}

// relativize computes the href current should use to reach target, honoring
// RelativizeResourceRefs and the site's html extension style.
func (p *Processor) relativize(current, target *catalog.File) string {
	if target.Pub == nil {
		return ""
	}
	if !p.RelativizeResourceRefs {
		return target.Pub.URL
	}
	return current.RelativePath(target)
}

func fallbackText(content, target string) string {
	if content != "" {
		return content
	}
	return target
}
