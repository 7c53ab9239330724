// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package asciidoc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gardener/docforge-catalog/asciidoc"
	"github.com/gardener/docforge-catalog/catalog"
	"github.com/gardener/docforge-catalog/internal/resourceid"
)

func addImage(t *testing.T, c *catalog.Catalog, cv *catalog.ComponentVersion, relative string) *catalog.File {
	t.Helper()
	src := catalog.NewSrc("comp", "1.0", "ROOT", resourceid.FamilyImage, relative)
	f := &catalog.File{Path: "modules/ROOT/images/" + relative, Src: src}
	_, err := c.AddFile(f, cv)
	require.NoError(t, err)
	return f
}

func TestResolveInlineRefsXrefResolved(t *testing.T) {
	p, c, cv, _ := newProcessor(t)
	addPage(t, c, cv, "other.adoc", "= Other\n")
	page := addPage(t, c, cv, "index.adoc", "see xref:other.adoc[Other Page]\n")

	out := p.ResolveInlineRefs(asciidoc.PageContext{File: page}, []byte("see xref:other.adoc[Other Page]\n"))
	require.Contains(t, string(out), `<a href="other.html" class="xref page">Other Page</a>`)
}

func TestResolveInlineRefsXrefUnresolvedEmitsError(t *testing.T) {
	p, c, cv, diag := newProcessor(t)
	page := addPage(t, c, cv, "index.adoc", "see xref:missing.adoc[]\n")

	out := p.ResolveInlineRefs(asciidoc.PageContext{File: page}, []byte("see xref:missing.adoc[]\n"))
	require.Contains(t, string(out), `class="xref unresolved"`)

	found := false
	for _, rec := range diag.Records() {
		if rec.Name == "unresolved-xref" {
			found = true
		}
	}
	require.True(t, found)
}

func TestResolveInlineRefsXrefSelfReferenceIsPureFragment(t *testing.T) {
	p, c, cv, _ := newProcessor(t)
	page := addPage(t, c, cv, "index.adoc", "see xref:index.adoc#section[Section]\n")

	out := p.ResolveInlineRefs(asciidoc.PageContext{File: page}, page.Src.Contents)
	require.Contains(t, string(out), `<a href="#section" class="xref page">Section</a>`)
}

func TestResolveInlineRefsXrefSelfReferenceNoFragment(t *testing.T) {
	p, c, cv, _ := newProcessor(t)
	page := addPage(t, c, cv, "index.adoc", "see xref:index.adoc[Here]\n")

	out := p.ResolveInlineRefs(asciidoc.PageContext{File: page}, page.Src.Contents)
	require.Contains(t, string(out), `<a href="#" class="xref page">Here</a>`)
}

func TestResolveInlineRefsXrefCrossPageFragmentPreserved(t *testing.T) {
	p, c, cv, _ := newProcessor(t)
	addPage(t, c, cv, "other.adoc", "= Other\n")
	page := addPage(t, c, cv, "index.adoc", "see xref:other.adoc#section[Other Section]\n")

	out := p.ResolveInlineRefs(asciidoc.PageContext{File: page}, page.Src.Contents)
	require.Contains(t, string(out), `<a href="other.html#section" class="xref page">Other Section</a>`)
}

func TestResolveInlineRefsImageBlock(t *testing.T) {
	p, c, cv, _ := newProcessor(t)
	addImage(t, c, cv, "diagram.png")
	page := addPage(t, c, cv, "index.adoc", "image::diagram.png[Diagram]\n")

	out := p.ResolveInlineRefs(asciidoc.PageContext{File: page}, []byte("image::diagram.png[Diagram]\n"))
	require.Contains(t, string(out), `<img src="`)
	require.Contains(t, string(out), `imageblock`)
}
