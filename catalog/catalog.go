// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/gardener/docforge-catalog/diagnostics"
	"github.com/gardener/docforge-catalog/internal/pathurl"
	"github.com/gardener/docforge-catalog/internal/resourceid"
	"github.com/gardener/docforge-catalog/playbook"
)

// ResolveContext is the current-file context a Resolver fills unspecified
// resource-id coordinates from. It mirrors the Resource Resolver's ctx
// parameter without importing the resolver package, which itself depends on
// Catalog.
type ResolveContext struct {
	Component string
	Version   string
	Module    string
	Dir       string // directory of the current file, relative to its module, for "./" resolution
}

//counterfeiter:generate . Resolver

// Resolver is the collaborator RegisterComponentVersionStartPage and
// RegisterSiteStartPage use to turn a start-page spec into a File. The
// concrete implementation lives in package resolver; Catalog only depends on
// this narrow interface to avoid an import cycle.
type Resolver interface {
	Resolve(spec string, ctx ResolveContext, defaultFamily resourceid.Family, permitted []resourceid.Family) (*File, error)
}

// ComponentVersionDescriptor carries the fields RegisterComponentVersion
// needs beyond name and version.
type ComponentVersionDescriptor struct {
	Title          string
	DisplayVersion string
	Prerelease     interface{}
	Asciidoc       AsciidocMeta
}

// Catalog is the in-memory index of every aggregated File, grouped by
// family and component version.
type Catalog struct {
	mu sync.RWMutex

	cfg   playbook.Config
	style pathurl.Style

	files         map[resourceid.Family]map[string]*File
	components    map[string]*Component
	siteStartPage *File

	diag *diagnostics.Sink
}

// New builds an empty Catalog configured from cfg. diag may be nil, in
// which case the Catalog's own warnings (start-page resolution) are
// dropped; a Classifier reports its warnings through its own sink.
func New(cfg playbook.Config, diag *diagnostics.Sink) *Catalog {
	c := &Catalog{
		cfg:        cfg,
		style:      cfg.URLs.HTMLExtensionStyle,
		files:      map[resourceid.Family]map[string]*File{},
		components: map[string]*Component{},
		diag:       diag,
	}
	for _, f := range resourceid.Families {
		c.files[f] = map[string]*File{}
	}
	return c
}

// RegisterComponentVersion registers a new (name, version) pair and returns
// its ComponentVersion. Fails when the pair already exists.
func (c *Catalog) RegisterComponentVersion(name, version string, descriptor ComponentVersionDescriptor) (*ComponentVersion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	comp, ok := c.components[name]
	if !ok {
		comp = &Component{Name: name}
		c.components[name] = comp
	}
	for _, existing := range comp.versions {
		if existing.Version == version {
			return nil, fmt.Errorf("component %q version %q: %w", name, version, ErrComponentVersionExists)
		}
	}

	cv := &ComponentVersion{
		Name:           name,
		Version:        version,
		Title:          descriptor.Title,
		Prerelease:     descriptor.Prerelease,
		Asciidoc:       descriptor.Asciidoc,
		VersionSegment: version,
	}
	cv.DisplayVersion = computeDisplayVersion(version, descriptor.Prerelease, descriptor.DisplayVersion)

	comp.insertSorted(cv)
	comp.recomputeActiveSegments(c.cfg)
	return cv, nil
}

// AddFile registers file in the catalog under cv (nil for files with no
// owning component version, e.g. the synthesized site start-page alias).
func (c *Catalog) AddFile(file *File, cv *ComponentVersion) (*File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addFileLocked(file, cv)
}

func (c *Catalog) addFileLocked(file *File, cv *ComponentVersion) (*File, error) {
	family := file.Src.Family
	key := file.Src.Key()

	bucket := c.files[family]
	if bucket == nil {
		bucket = map[string]*File{}
		c.files[family] = bucket
	}
	if existing, ok := bucket[key]; ok {
		return nil, &DuplicateError{Family: family, Key: key, Existing: existing, New: file}
	}
	bucket[key] = file

	if cv != nil {
		cv.files = append(cv.files, file)
	}

	segment := ""
	if cv != nil {
		segment = cv.ActiveVersionSegment
	}

	switch {
	case isPublishable(file):
		out, pub := pathurl.Compute(pathurl.Input{
			Component:      file.Src.Component,
			Module:         file.Src.Module,
			Family:         file.EffectiveFamily(),
			Relative:       file.Src.Relative,
			VersionSegment: segment,
			Style:          c.style,
		})
		file.Out = &out
		file.Pub = &pub
	case family == resourceid.FamilyNav:
		pub := pathurl.Pub{URL: pathurl.NavURL(file.Src.Component, file.Src.Module, segment)}
		file.Pub = &pub
	}

	return file, nil
}

// isPublishable reports whether family ∈ {page, image, attachment} and no
// path segment of relative begins with "_".
func isPublishable(f *File) bool {
	fam := f.EffectiveFamily()
	if fam != resourceid.FamilyPage && fam != resourceid.FamilyImage && fam != resourceid.FamilyAttachment {
		return false
	}
	for _, seg := range strings.Split(f.Src.Relative, "/") {
		if strings.HasPrefix(seg, "_") {
			return false
		}
	}
	return true
}

// RegisterPageAlias registers an alias of family page at spec (resolved in
// target's context), redirecting to target. Returns (nil, nil) when spec is
// syntactically invalid, matching the Resource Resolver's own convention of
// not raising for input the caller does not control (e.g. a page-aliases
// attribute straight from document text).
func (c *Catalog) RegisterPageAlias(spec string, target *File) (*File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := resourceid.ParseID(spec, []resourceid.Family{resourceid.FamilyPage})
	if err != nil {
		return nil, nil
	}
	if id.Component == "" {
		id.Component = target.Src.Component
	}
	if id.Version == "" {
		id.Version = target.Src.Version
	}
	if id.Module == "" {
		id.Module = target.Src.Module
	}
	id.Family = resourceid.FamilyPage
	if id.Relative == "" {
		return nil, nil
	}
	if path.Ext(id.Relative) == "" {
		id.Relative += ".adoc"
	}

	key := resourceid.GenerateKey(id)
	if key == target.Src.Key() {
		return nil, fmt.Errorf("page alias %q: %w", spec, ErrAliasSelfReference)
	}
	if _, ok := c.files[resourceid.FamilyPage][key]; ok {
		return nil, fmt.Errorf("page alias %q: %w", spec, ErrAliasCollidesWithPage)
	}
	if _, ok := c.files[resourceid.FamilyAlias][key]; ok {
		return nil, fmt.Errorf("page alias %q: %w", spec, ErrAliasCollidesWithAlias)
	}

	alias := &File{
		Src:       Src{Component: id.Component, Version: id.Version, Module: id.Module, Family: resourceid.FamilyAlias, Relative: id.Relative, MediaType: "text/asciidoc"},
		Rel:       target,
		Synthetic: true,
		MediaType: "text/html",
	}
	cv := c.componentVersionOfLocked(target)
	if _, err := c.addFileLocked(alias, cv); err != nil {
		return nil, err
	}
	if target.Rel == nil {
		target.Rel = alias
	}
	return alias, nil
}

// AddSplatAlias registers a directory-level redirect: an alias File whose
// Pub.Splat is true, sitting at from's published directory and pointing at
// to. Used to implement the latest-version-segment strategies, where from
// and to are lightweight synthetic marker files carrying only the Pub.URL
// of the two candidate directories.
func (c *Catalog) AddSplatAlias(from, to *File) (*File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := resourceid.GenerateKey(resourceid.ID{
		Component: from.Src.Component, Version: from.Src.Version, Module: from.Src.Module,
	})
	bucket := c.files[resourceid.FamilyAlias]
	if bucket == nil {
		bucket = map[string]*File{}
		c.files[resourceid.FamilyAlias] = bucket
	}

	alias := &File{
		Src:       Src{Component: from.Src.Component, Version: from.Src.Version, Module: from.Src.Module, Family: resourceid.FamilyAlias, MediaType: "text/asciidoc"},
		Rel:       to,
		Synthetic: true,
		MediaType: "text/html",
	}
	if existing, ok := bucket[key]; ok {
		return nil, &DuplicateError{Family: resourceid.FamilyAlias, Key: key, Existing: existing, New: alias}
	}
	url := from.Pub.URL
	if to.Pub != nil {
		alias.Pub = &pathurl.Pub{URL: url, Splat: true}
	}
	bucket[key] = alias
	return alias, nil
}

func (c *Catalog) componentVersionOfLocked(f *File) *ComponentVersion {
	comp, ok := c.components[f.Src.Component]
	if !ok {
		return nil
	}
	for _, cv := range comp.versions {
		if cv.Version == f.Src.Version {
			return cv
		}
	}
	return nil
}

// RegisterComponentVersionStartPage resolves spec (if non-empty) as cv's
// start page. When the resolved page belongs to the same component version,
// is not its canonical ROOT/index.adoc, and no canonical index page exists,
// a synthetic alias at that canonical location is created so that
// "/component/version/" always has something to serve.
func (c *Catalog) RegisterComponentVersionStartPage(resolver Resolver, cv *ComponentVersion, spec string) error {
	canonical := c.GetByID(cv.Name, cv.Version, resourceid.RootModule, resourceid.FamilyPage, "index.adoc")

	var start *File
	if spec != "" {
		ctx := ResolveContext{Component: cv.Name, Version: cv.Version, Module: resourceid.RootModule}
		resolved, err := resolver.Resolve(spec, ctx, resourceid.FamilyPage, []resourceid.Family{resourceid.FamilyPage})
		switch {
		case err != nil:
			c.warn("start-page-invalid-syntax", fmt.Sprintf("component %s@%s: start page spec %q has invalid syntax", cv.Name, cv.Version, spec))
		case resolved == nil:
			c.warn("start-page-not-found", fmt.Sprintf("component %s@%s: start page spec %q not found", cv.Name, cv.Version, spec))
		default:
			start = resolved
		}
	}
	if start == nil {
		start = canonical
	}
	if start == nil {
		return nil
	}

	if canonical == nil && start.Src.Component == cv.Name && start.Src.Version == cv.Version &&
		!(start.Src.Module == resourceid.RootModule && start.Src.Relative == "index.adoc") {
		alias := &File{
			Src:       Src{Component: cv.Name, Version: cv.Version, Module: resourceid.RootModule, Family: resourceid.FamilyAlias, Relative: "index.adoc", MediaType: "text/asciidoc"},
			Rel:       start,
			Synthetic: true,
			MediaType: "text/html",
		}
		if _, err := c.AddFile(alias, cv); err != nil {
			return err
		}
	}

	c.mu.Lock()
	cv.StartPage = start
	if start.Pub != nil {
		cv.URL = start.Pub.URL
	}
	c.mu.Unlock()
	return nil
}

// RegisterSiteStartPage resolves spec as the site-wide start page and
// synthesizes a root "/" alias to it, unless a literal root index already
// exists or the resolved page already publishes at the site root.
func (c *Catalog) RegisterSiteStartPage(resolver Resolver, spec string) error {
	if spec == "" {
		return nil
	}
	resolved, err := resolver.Resolve(spec, ResolveContext{Component: resourceid.RootComponent, Module: resourceid.RootModule}, resourceid.FamilyPage, []resourceid.Family{resourceid.FamilyPage})
	if err != nil || resolved == nil {
		return nil
	}

	rootIndex := c.GetByID(resourceid.RootComponent, "", resourceid.RootModule, resourceid.FamilyPage, "index.adoc")
	if rootIndex != nil {
		return nil
	}
	if resolved.Pub != nil && (resolved.Pub.URL == "/index.html" || resolved.Pub.URL == "/") {
		return nil
	}

	alias := &File{
		Src:       Src{Component: resourceid.RootComponent, Module: resourceid.RootModule, Family: resourceid.FamilyAlias, Relative: "index.adoc", MediaType: "text/asciidoc"},
		Rel:       resolved,
		Synthetic: true,
		MediaType: "text/html",
	}
	if _, err := c.AddFile(alias, nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.siteStartPage = resolved
	c.mu.Unlock()
	return nil
}

func (c *Catalog) warn(name, msg string) {
	if c.diag != nil {
		c.diag.Warn(name, msg, diagnostics.Location{})
	}
}

// GetByID looks up a file by its full identity.
func (c *Catalog) GetByID(component, version, module string, family resourceid.Family, relative string) *File {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := resourceid.GenerateKey(resourceid.ID{Component: component, Version: version, Module: module, Relative: relative})
	return c.files[family][key]
}

// GetByPath looks up a file by component, version, module, and its relative
// path within family's own namespace. A "./"-relative include or xref is
// resolved within the issuing file's own family - a relative include issued
// from a partial must find its target among the partials, not the pages -
// so callers pass that family through rather than assuming FamilyPage.
func (c *Catalog) GetByPath(component, version, module string, family resourceid.Family, relative string) *File {
	return c.GetByID(component, version, module, family, relative)
}

// FindByCriteria is a subset of Src fields FindBy matches on; zero-valued
// fields are wildcards.
type FindByCriteria struct {
	Component string
	Version   string
	Module    string
	Family    resourceid.Family
	Relative  string
}

// FindBy returns every file matching the non-zero fields of criteria.
func (c *Catalog) FindBy(criteria FindByCriteria) []*File {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var families []resourceid.Family
	if criteria.Family != "" {
		families = []resourceid.Family{criteria.Family}
	} else {
		families = resourceid.Families
	}

	var out []*File
	for _, fam := range families {
		for _, f := range c.files[fam] {
			if criteria.Component != "" && f.Src.Component != criteria.Component {
				continue
			}
			if criteria.Version != "" && f.Src.Version != criteria.Version {
				continue
			}
			if criteria.Module != "" && f.Src.Module != criteria.Module {
				continue
			}
			if criteria.Relative != "" && f.Src.Relative != criteria.Relative {
				continue
			}
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// GetPages returns every page file (optionally narrowed by filter, applied
// as a FindByCriteria against family page), in a stable order suitable for
// the Document Converter driver's strict forward walk.
func (c *Catalog) GetPages(filter FindByCriteria) []*File {
	filter.Family = resourceid.FamilyPage
	return c.FindBy(filter)
}

// GetComponents returns every registered component, unordered.
func (c *Catalog) GetComponents() []*Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Component, 0, len(c.components))
	for _, comp := range c.components {
		out = append(out, comp)
	}
	return out
}

// GetComponentsSortedBy returns every component sorted ascending by the
// named field of its Latest version: "name" or "title".
func (c *Catalog) GetComponentsSortedBy(prop string) []*Component {
	out := c.GetComponents()
	sort.Slice(out, func(i, j int) bool {
		switch prop {
		case "title":
			return out[i].Title() < out[j].Title()
		default:
			return out[i].Name < out[j].Name
		}
	})
	return out
}

// GetSiteStartPage returns the site-wide start page, or nil if none was
// registered.
func (c *Catalog) GetSiteStartPage() *File {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.siteStartPage
}

// ApplyVersionSegmentRedirects implements the three LatestVersionSegmentStrategy
// behaviors for every component version whose ActiveVersionSegment differs
// from its literal VersionSegment: replace publishes only the active-segment
// URL (there is nothing more to add, since no other code path ever publishes
// the literal segment), redirect:from adds a splat alias at the literal
// segment pointing at the active one, redirect:to does the reverse.
func (c *Catalog) ApplyVersionSegmentRedirects() error {
	if c.cfg.URLs.LatestVersionSegmentStrategy == playbook.StrategyReplace {
		return nil
	}

	c.mu.RLock()
	comps := make([]*Component, 0, len(c.components))
	for _, comp := range c.components {
		comps = append(comps, comp)
	}
	c.mu.RUnlock()

	var errs *multierror.Error
	for _, comp := range comps {
		for _, cv := range comp.Versions() {
			if cv.ActiveVersionSegment == cv.VersionSegment {
				continue
			}
			literal := segmentMarker(cv, cv.VersionSegment)
			active := segmentMarker(cv, cv.ActiveVersionSegment)

			var err error
			switch c.cfg.URLs.LatestVersionSegmentStrategy {
			case playbook.StrategyRedirectFrom:
				_, err = c.AddSplatAlias(literal, active)
			case playbook.StrategyRedirectTo:
				_, err = c.AddSplatAlias(active, literal)
			}
			if err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}
	return errs.ErrorOrNil()
}

// segmentMarker builds the lightweight synthetic File AddSplatAlias needs to
// describe one candidate directory: its Pub.URL, with no content of its own.
func segmentMarker(cv *ComponentVersion, segment string) *File {
	return &File{
		Src: Src{Component: cv.Name, Version: cv.Version, Module: resourceid.RootModule},
		Pub: &pathurl.Pub{URL: pathurl.NavURL(cv.Name, resourceid.RootModule, segment)},
	}
}
