// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package catalog implements the Content Catalog: the in-memory index of
// every aggregated File, keyed by resource identity, plus the Component and
// ComponentVersion records a catalog groups files under.
package catalog

import (
	"path"
	"strings"

	"github.com/gardener/docforge-catalog/internal/pathurl"
	"github.com/gardener/docforge-catalog/internal/resourceid"
)

// Origin records the repository provenance of an aggregated file, when the
// aggregate carries one.
type Origin struct {
	Type      string
	URL       string
	Refname   string
	Reftype   string
	Branch    string
	Tag       string
	Refhash   string
	StartPath string
	Worktree  string
	Remote    string
	Gitdir    string
	Private   bool
}

// Src is a file's resource identity plus the derived coordinates the
// Classifier fills in once it has decided the file's family.
type Src struct {
	Component      string
	Version        string
	Module         string
	Family         resourceid.Family
	Relative       string
	Basename       string
	Stem           string
	Extname        string
	MediaType      string
	ModuleRootPath string
	Origin         *Origin
	Abspath        string
	// Contents holds the raw source bytes separately from File.Contents so
	// that a later page can still include::-reference this page's tagged
	// regions after File.Contents has been overwritten with rendered HTML.
	// Cleared after the Document Converter driver's pass, unless keepSource
	// is set.
	Contents []byte
}

// NewSrc derives Basename/Stem/Extname from relative and returns the Src.
func NewSrc(component, version, module string, family resourceid.Family, relative string) Src {
	id := resourceid.ID{Component: component, Version: version, Module: module, Family: family, Relative: relative}
	return Src{
		Component: component,
		Version:   version,
		Module:    module,
		Family:    family,
		Relative:  relative,
		Basename:  id.Basename(),
		Stem:      id.Stem(),
		Extname:   id.Extname(),
	}
}

// Key is the catalog index key for this identity: version@component:module:relative.
func (s Src) Key() string {
	return resourceid.GenerateKey(resourceid.ID{Component: s.Component, Version: s.Version, Module: s.Module, Relative: s.Relative})
}

// NavInfo carries the navigation-specific metadata of a nav family file.
type NavInfo struct {
	Index int
}

// AsciidocMeta is the metadata the Markup Adapter extracts from a document.
type AsciidocMeta struct {
	Doctitle   string
	Xreftext   string
	Navtitle   string
	Attributes map[string]interface{}
}

// File is an aggregated virtual document tracked by the catalog.
type File struct {
	Path      string
	Contents  []byte
	Src       Src
	Out       *pathurl.Out
	Pub       *pathurl.Pub
	Rel       *File
	Synthetic bool
	Nav       *NavInfo
	Asciidoc  AsciidocMeta
	Title     string
	MediaType string
}

// Key returns the file's catalog index key.
func (f *File) Key() string {
	return f.Src.Key()
}

// EffectiveFamily is the family a consumer should treat this file as: an
// alias masquerades as whatever family its target ultimately resolves to.
func (f *File) EffectiveFamily() resourceid.Family {
	if f.Src.Family == resourceid.FamilyAlias && f.Rel != nil {
		return f.Rel.EffectiveFamily()
	}
	return f.Src.Family
}

// RelativePath computes the posix-relative path from f's published directory
// to to's published location, the way a Markup Adapter needs it to
// relativize a cross-reference URL. Both files must already carry a Pub
// record; the common-prefix elimination mirrors the reference tool's
// Node.RelativePath, applied to URL path segments rather than a parent-
// pointer tree since catalog files have no tree structure of their own.
func (f *File) RelativePath(to *File) string {
	if f.Pub == nil || to.Pub == nil {
		return to.urlPath()
	}
	fromDir := dirSegments(f.Pub.URL)
	toDir, toBase := path.Split(strings.TrimPrefix(to.Pub.URL, "/"))
	toDir = strings.TrimSuffix(toDir, "/")
	var toSegs []string
	if toDir != "" {
		toSegs = strings.Split(toDir, "/")
	}

	common := 0
	for common < len(fromDir) && common < len(toSegs) && fromDir[common] == toSegs[common] {
		common++
	}

	var parts []string
	for i := common; i < len(fromDir); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, toSegs[common:]...)
	if toBase != "" {
		parts = append(parts, toBase)
	}
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func (f *File) urlPath() string {
	if f.Pub == nil {
		return ""
	}
	return f.Pub.URL
}

func dirSegments(url string) []string {
	dir := path.Dir(strings.TrimPrefix(url, "/"))
	if dir == "." || dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}
