// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package asciidoc

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/gardener/docforge-catalog/catalog"
)

var (
	docTitlePattern  = regexp.MustCompile(`(?m)^=\s+(.+)$`)
	attrEntryPattern = regexp.MustCompile(`(?m)^:([A-Za-z0-9_.-]+):\s*(.*)$`)

	// WithUnsafe lets raw HTML passthrough blocks survive rendering, so
	// rewriteRawHTMLRefs has something to rewrite; the markup here is
	// already trusted aggregated content, not third-party user input.
	renderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM, meta.Meta),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(ghtml.WithUnsafe()),
	)
)

// ConvertPage implements §4.8 steps a-e for one page: setting page-partial,
// resolving includes and inline refs, extracting metadata, registering
// page-aliases, and rendering to HTML.
func (p *Processor) ConvertPage(file *catalog.File, cv *catalog.ComponentVersion) error {
	if file.Src.MediaType != "text/asciidoc" || file.MediaType == "text/html" {
		return nil
	}

	src := string(file.Src.Contents)

	attrs, bodyAfterAttrs := extractAttributeEntries(src)
	if file.Asciidoc.Attributes == nil {
		file.Asciidoc.Attributes = map[string]interface{}{}
	}
	for k, v := range attrs {
		file.Asciidoc.Attributes[k] = v
	}
	file.Asciidoc.Attributes["page-partial"] = ""

	if title := firstDocTitle(bodyAfterAttrs); title != "" {
		file.Asciidoc.Doctitle = title
	}
	if v, ok := attrs["navtitle"]; ok {
		file.Asciidoc.Navtitle = v
	}
	if v, ok := attrs["xreftext"]; ok {
		file.Asciidoc.Xreftext = v
	}

	if aliases, ok := attrs["page-aliases"]; ok {
		for _, spec := range strings.Split(aliases, ",") {
			spec = strings.TrimSpace(spec)
			if spec == "" {
				continue
			}
			if _, err := p.Catalog.RegisterPageAlias(spec, file); err != nil {
				p.diagWarn("page-alias-registration-failed", err.Error(), file.Path, 0, IncludeContext{File: file})
			}
		}
	}

	expanded := p.ResolveIncludes(IncludeContext{File: file, Dir: dirOf(file.Src.Relative)}, []byte(bodyAfterAttrs))
	expanded = p.ResolveInlineRefs(PageContext{File: file}, expanded)
	expanded = []byte(stripAttributeEntries(string(expanded)))

	var buf bytes.Buffer
	ctx := parser.NewContext()
	doc := renderer.Parser().Parse(text.NewReader(expanded), parser.WithContext(ctx))
	if err := renderer.Renderer().Render(&buf, expanded, doc); err != nil {
		return err
	}

	file.Contents = rewriteRawHTMLRefs(buf.Bytes())
	file.MediaType = "text/html"
	if file.Asciidoc.Doctitle != "" {
		file.Title = file.Asciidoc.Doctitle
	}
	return nil
}

func firstDocTitle(src string) string {
	m := docTitlePattern.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractAttributeEntries collects ":name: value" attribute entries
// (supporting a trailing " \" line-continuation marker) and returns them
// alongside the body unchanged but for continuation joins, so the caller
// can re-extract doctitle against a normalized body.
func extractAttributeEntries(src string) (map[string]string, string) {
	lines := strings.Split(src, "\n")
	attrs := map[string]string{}
	var out []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		m := attrEntryPattern.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}
		name, value := m[1], m[2]
		for strings.HasSuffix(value, ` \`) && i+1 < len(lines) {
			i++
			value = strings.TrimSuffix(value, `\`)
			value = strings.TrimRight(value, " ") + strings.TrimSpace(lines[i])
		}
		attrs[name] = value
		out = append(out, line)
	}
	return attrs, strings.Join(out, "\n")
}

func stripAttributeEntries(src string) string {
	return attrEntryPattern.ReplaceAllString(src, "")
}
