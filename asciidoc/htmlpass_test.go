// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package asciidoc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gardener/docforge-catalog/asciidoc"
)

func TestConvertPageRewritesRawHTMLAdocHref(t *testing.T) {
	p, c, cv, _ := newProcessor(t)
	addPage(t, c, cv, "other.adoc", "= Other\n")
	page := addPage(t, c, cv, "index.adoc", "= Index\n\n<a href=\"other.adoc\">raw link</a>\n")
	page.Src.MediaType = "text/asciidoc"

	require.NoError(t, p.ConvertPage(page, cv))
	require.Contains(t, string(page.Contents), `href="other.html"`)
}
