// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package asciidoc

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// rewriteRawHTMLRefs walks rendered HTML looking for raw passthrough anchors
// and images an author wrote by hand (not through xref:/image:, so they
// never went through the Resource Resolver) whose href/src still names a
// page's source extension, and rewrites that extension to .html. This
// complements the macro-level rewriting in inline.go, which only sees
// xref:/image: macros, not raw HTML blocks the markup processor passes
// through untouched.
func rewriteRawHTMLRefs(src []byte) []byte {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return src
	}

	changed := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			attrName := ""
			switch n.Data {
			case "a":
				attrName = "href"
			case "img":
				attrName = "src"
			}
			if attrName != "" {
				for i := range n.Attr {
					if n.Attr[i].Key != attrName {
						continue
					}
					if rewritten, ok := rewriteAdocExtension(n.Attr[i].Val); ok {
						n.Attr[i].Val = rewritten
						changed = true
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if !changed {
		return src
	}

	var buf bytes.Buffer
	if err := renderBody(&buf, doc); err != nil {
		return src
	}
	return buf.Bytes()
}

func rewriteAdocExtension(ref string) (string, bool) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "#") {
		return ref, false
	}
	frag := ""
	if i := strings.Index(ref, "#"); i >= 0 {
		frag = ref[i:]
		ref = ref[:i]
	}
	if !strings.HasSuffix(ref, ".adoc") {
		return ref, false
	}
	return strings.TrimSuffix(ref, ".adoc") + ".html" + frag, true
}

// renderBody re-serializes doc's <body> contents, since html.Parse always
// wraps a fragment in a full document tree.
func renderBody(buf *bytes.Buffer, doc *html.Node) error {
	body := findBody(doc)
	if body == nil {
		return html.Render(buf, doc)
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(buf, c); err != nil {
			return err
		}
	}
	return nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
