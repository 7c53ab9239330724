// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package asciidoc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gardener/docforge-catalog/asciidoc"
)

func TestResolveIncludesTagFilterSelectsNamedRegion(t *testing.T) {
	p, c, cv, _ := newProcessor(t)
	addPartial(t, c, cv, "snippet.adoc", "intro\n// tag::keep[]\nkept line\n// end::keep[]\noutro\n")
	page := addPage(t, c, cv, "index.adoc", "include::partial$snippet.adoc[tag=keep]\n")

	out := p.ResolveIncludes(asciidoc.IncludeContext{File: page}, page.Src.Contents)
	require.Contains(t, string(out), "kept line")
	require.NotContains(t, string(out), "intro")
	require.NotContains(t, string(out), "outro")
}

func TestResolveIncludesTagFilterNegation(t *testing.T) {
	p, c, cv, _ := newProcessor(t)
	addPartial(t, c, cv, "snippet.adoc", "// tag::a[]\nkeep a\n// end::a[]\n// tag::b[]\ndrop b\n// end::b[]\n")
	page := addPage(t, c, cv, "index.adoc", "include::partial$snippet.adoc[tags=**;!b]\n")

	out := p.ResolveIncludes(asciidoc.IncludeContext{File: page}, page.Src.Contents)
	require.Contains(t, string(out), "keep a")
	require.NotContains(t, string(out), "drop b")
}

func TestResolveIncludesTagFilterNegationOnlyImpliesEverything(t *testing.T) {
	p, c, cv, _ := newProcessor(t)
	addPartial(t, c, cv, "snippet.adoc", "intro\n// tag::hello[]\ngreeting\n// end::hello[]\noutro\n")
	page := addPage(t, c, cv, "index.adoc", "include::partial$snippet.adoc[tags=!hello]\n")

	out := p.ResolveIncludes(asciidoc.IncludeContext{File: page}, page.Src.Contents)
	require.Contains(t, string(out), "intro")
	require.Contains(t, string(out), "outro")
	require.NotContains(t, string(out), "greeting")
}

func TestResolveIncludesTagFilterNegationOnlyUnknownTagReturnsEverything(t *testing.T) {
	p, c, cv, diag := newProcessor(t)
	addPartial(t, c, cv, "snippet.adoc", "intro\n// tag::hello[]\ngreeting\n// end::hello[]\noutro\n")
	page := addPage(t, c, cv, "index.adoc", "include::partial$snippet.adoc[tags=!no-such-tag]\n")

	out := p.ResolveIncludes(asciidoc.IncludeContext{File: page}, page.Src.Contents)
	require.Contains(t, string(out), "intro")
	require.Contains(t, string(out), "greeting")
	require.Contains(t, string(out), "outro")
	require.Empty(t, diag.Records())
}

func TestResolveIncludesUnclosedTagWarns(t *testing.T) {
	p, c, cv, diag := newProcessor(t)
	addPartial(t, c, cv, "snippet.adoc", "// tag::keep[]\nkept line\n")
	page := addPage(t, c, cv, "index.adoc", "include::partial$snippet.adoc[tag=keep]\n")

	p.ResolveIncludes(asciidoc.IncludeContext{File: page}, page.Src.Contents)

	found := false
	for _, rec := range diag.Records() {
		if rec.Name == "unclosed-tag" {
			found = true
		}
	}
	require.True(t, found)
}
