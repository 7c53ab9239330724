// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/gardener/docforge-catalog/catalog"
	"github.com/gardener/docforge-catalog/diagnostics"
	"github.com/gardener/docforge-catalog/internal/resourceid"
)

// Classifier turns raw aggregate buckets into catalog Files.
type Classifier struct {
	Catalog        *catalog.Catalog
	Resolver       catalog.Resolver
	SiteAttributes map[string]interface{}
	Diag           *diagnostics.Sink

	implicitRoot map[*catalog.Origin]bool
}

// New builds a Classifier writing into cat via resolver (used for start-page
// resolution) and reporting through diag.
func New(cat *catalog.Catalog, resolver catalog.Resolver, siteAttributes map[string]interface{}, diag *diagnostics.Sink) *Classifier {
	return &Classifier{
		Catalog:        cat,
		Resolver:       resolver,
		SiteAttributes: siteAttributes,
		Diag:           diag,
		implicitRoot:   map[*catalog.Origin]bool{},
	}
}

// ClassifyAll runs the per-bucket algorithm over every bucket, in order,
// then registers the site start page.
func (cl *Classifier) ClassifyAll(buckets []Bucket, siteStartPageSpec string) error {
	cl.computeImplicitRootFlags(buckets)

	for i := range buckets {
		if err := cl.classifyBucket(&buckets[i]); err != nil {
			return err
		}
	}

	if siteStartPageSpec != "" {
		if err := cl.Catalog.RegisterSiteStartPage(cl.Resolver, siteStartPageSpec); err != nil {
			return err
		}
	}

	return cl.Catalog.ApplyVersionSegmentRedirects()
}

// computeImplicitRootFlags applies step 3: an origin defaults to implicit
// ROOT-module treatment unless some file under any bucket that shares it
// lives under modules/ROOT/, in which case the origin loses that treatment
// everywhere it is used.
func (cl *Classifier) computeImplicitRootFlags(buckets []Bucket) {
	for i := range buckets {
		b := &buckets[i]
		if b.Origin == nil {
			continue
		}
		if _, seen := cl.implicitRoot[b.Origin]; !seen {
			cl.implicitRoot[b.Origin] = true
		}
		for _, f := range b.Files {
			if strings.HasPrefix(f.Path, "modules/ROOT/") {
				cl.implicitRoot[b.Origin] = false
			}
		}
	}
}

func (cl *Classifier) classifyBucket(b *Bucket) error {
	mergedAttrs := mergeAsciidocAttributes(cl.SiteAttributes, b.Asciidoc)
	mergedAttrs = resolveAttributeReferences(mergedAttrs, func(name string) {
		cl.warn("attribute-missing", fmt.Sprintf("component %s@%s: attribute reference {%s} could not be resolved", b.Name, b.Version, name))
	})

	cv, err := cl.Catalog.RegisterComponentVersion(b.Name, b.Version, catalog.ComponentVersionDescriptor{
		Title:      b.Title,
		Prerelease: b.Prerelease,
		Asciidoc:   catalog.AsciidocMeta{Attributes: mergedAttrs},
	})
	if err != nil {
		return err
	}

	implicitRoot := b.Origin == nil || cl.implicitRoot[b.Origin]

	matchedNav := map[string]bool{}
	for i := range b.Files {
		raw := b.Files[i]
		module, relative, family, ok := classifyPath(raw.Path, implicitRoot, b.Nav)
		if !ok {
			continue
		}
		if family == resourceid.FamilyNav {
			matchedNav[raw.Path] = true
		}

		src := catalog.NewSrc(b.Name, b.Version, module, family, relative)
		src.MediaType = mediaType(relative)
		src.Contents = raw.Contents
		f := &catalog.File{
			Path:     raw.Path,
			Contents: raw.Contents,
			Src:      src,
		}
		if _, err := cl.Catalog.AddFile(f, cv); err != nil {
			return err
		}
		// Drop the bucket's own reference to this slot once the file has
		// been inserted; the bytes stay reachable through the catalog File,
		// whose Contents and Src.Contents share them.
		b.Files[i] = RawFile{}
	}

	for _, entry := range b.Nav {
		if !matchedNav[entry] {
			cl.warn("unmatched-nav-entry", fmt.Sprintf("component %s@%s: antora.yml lists nav entry %q with no matching file", b.Name, b.Version, entry))
		}
	}

	return cl.Catalog.RegisterComponentVersionStartPage(cl.Resolver, cv, b.StartPage)
}

func (cl *Classifier) warn(name, msg string) {
	if cl.Diag != nil {
		cl.Diag.Warn(name, msg, diagnostics.Location{})
	}
}

// classifyPath implements step 4: deciding a raw aggregate path's module,
// relative path and family, or reporting ok = false when the path is not
// classifiable content.
func classifyPath(p string, implicitRoot bool, nav []string) (module, relative string, family resourceid.Family, ok bool) {
	if isNavEntry(p, nav) {
		mod, rel, navOK := navLocation(p)
		if navOK {
			return mod, rel, resourceid.FamilyNav, true
		}
	}

	if p == "modules/nav.adoc" {
		return "", "nav.adoc", resourceid.FamilyNav, true
	}

	if strings.HasPrefix(p, "modules/") {
		return classifyModulePath(strings.TrimPrefix(p, "modules/"))
	}

	if implicitRoot {
		return classifyModulePath("ROOT/" + p)
	}

	return "", "", "", false
}

func isNavEntry(p string, nav []string) bool {
	if path.Ext(p) != ".adoc" {
		return false
	}
	for _, n := range nav {
		if n == p {
			return true
		}
	}
	return false
}

func navLocation(p string) (module, relative string, ok bool) {
	rest := strings.TrimPrefix(p, "modules/")
	segs := strings.SplitN(rest, "/", 2)
	if len(segs) != 2 {
		return "", "", false
	}
	return segs[0], segs[1], true
}

func classifyModulePath(rest string) (module, relative string, family resourceid.Family, ok bool) {
	segs := strings.SplitN(rest, "/", 2)
	if len(segs) != 2 {
		return "", "", "", false
	}
	module, tail := segs[0], segs[1]

	switch {
	case strings.HasPrefix(tail, "pages/_partials/"):
		return module, strings.TrimPrefix(tail, "pages/_partials/"), resourceid.FamilyPartial, true
	case strings.HasPrefix(tail, "pages/"):
		rel := strings.TrimPrefix(tail, "pages/")
		if path.Ext(rel) == ".adoc" {
			return module, rel, resourceid.FamilyPage, true
		}
		return "", "", "", false
	case strings.HasPrefix(tail, "partials/"):
		return module, strings.TrimPrefix(tail, "partials/"), resourceid.FamilyPartial, true
	case strings.HasPrefix(tail, "examples/"):
		return module, strings.TrimPrefix(tail, "examples/"), resourceid.FamilyExample, true
	case strings.HasPrefix(tail, "images/"):
		rel := strings.TrimPrefix(tail, "images/")
		if path.Ext(rel) != "" {
			return module, rel, resourceid.FamilyImage, true
		}
		return "", "", "", false
	case strings.HasPrefix(tail, "attachments/"):
		rel := strings.TrimPrefix(tail, "attachments/")
		if path.Ext(rel) != "" {
			return module, rel, resourceid.FamilyAttachment, true
		}
		return "", "", "", false
	case strings.HasPrefix(tail, "assets/images/"):
		rel := strings.TrimPrefix(tail, "assets/images/")
		if path.Ext(rel) != "" {
			return module, rel, resourceid.FamilyImage, true
		}
		return "", "", "", false
	case strings.HasPrefix(tail, "assets/attachments/"):
		rel := strings.TrimPrefix(tail, "assets/attachments/")
		if path.Ext(rel) != "" {
			return module, rel, resourceid.FamilyAttachment, true
		}
		return "", "", "", false
	default:
		return "", "", "", false
	}
}

func mediaType(relative string) string {
	if path.Ext(relative) == ".adoc" {
		return "text/asciidoc"
	}
	return ""
}

var attrRefPattern = regexp.MustCompile(`\{([A-Za-z0-9_-]+)\}`)

// mergeAsciidocAttributes merges scoped over site using the hard-set/
// soft-set override rule: a site key ending in "@" is soft-set and yields to
// scoped; any other site key (including one whose value is nil) is hard-set
// and cannot be overridden.
func mergeAsciidocAttributes(site, scoped map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	locked := map[string]bool{}
	for k, v := range site {
		if strings.HasSuffix(k, "@") {
			out[strings.TrimSuffix(k, "@")] = v
			continue
		}
		out[k] = v
		locked[k] = true
	}
	for k, v := range scoped {
		key := strings.TrimSuffix(k, "@")
		if locked[key] {
			continue
		}
		out[key] = v
	}
	return out
}

// resolveAttributeReferences substitutes "{name}" references against attrs
// itself, reporting onMissing for any reference that does not resolve.
func resolveAttributeReferences(attrs map[string]interface{}, onMissing func(string)) map[string]interface{} {
	strs := map[string]string{}
	for k, v := range attrs {
		if s, ok := v.(string); ok {
			strs[k] = s
		}
	}
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		s, ok := v.(string)
		if !ok {
			out[k] = v
			continue
		}
		out[k] = attrRefPattern.ReplaceAllStringFunc(s, func(m string) string {
			name := m[1 : len(m)-1]
			if val, ok := strs[name]; ok {
				return val
			}
			onMissing(name)
			return m
		})
	}
	return out
}
