// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"sort"
	"strings"

	"github.com/gardener/docforge-catalog/internal/semver"
	"github.com/gardener/docforge-catalog/playbook"
)

// ComponentVersion is one published version of a component.
type ComponentVersion struct {
	Name                 string
	Version              string
	DisplayVersion       string
	Title                string
	Prerelease           interface{}
	Asciidoc             AsciidocMeta
	URL                  string
	VersionSegment       string
	ActiveVersionSegment string
	StartPage            *File

	files []*File
}

// Files returns the files registered under this component version. Safe for
// read access once classification has finished populating the catalog; see
// the package-level concurrency note on Component.
func (cv *ComponentVersion) Files() []*File {
	return cv.files
}

// IsPrerelease reports whether this version is flagged or heuristically
// detected as a prerelease, the same verdict the version comparator uses.
func (cv *ComponentVersion) IsPrerelease() bool {
	return entryOf(cv).IsPrerelease()
}

// Component groups every registered version of one named component. Its
// versions slice is mutated only during the single-threaded classification
// phase (§5); once classification finishes, reads are safe without locking,
// matching the cooperative scheduling model the rest of the pipeline
// assumes.
type Component struct {
	Name string

	versions []*ComponentVersion
}

// Versions returns the component's versions in descending order (§4.2).
func (c *Component) Versions() []*ComponentVersion {
	return c.versions
}

// Latest returns the first non-prerelease version, or the first version if
// every one of them is a prerelease. Returns nil for a component with no
// versions.
func (c *Component) Latest() *ComponentVersion {
	if len(c.versions) == 0 {
		return nil
	}
	return c.versions[semver.LatestIndex(c.entries())]
}

// LatestPrerelease returns the leading version when it sits ahead of Latest
// in the sorted order (i.e. it is itself a prerelease).
func (c *Component) LatestPrerelease() (*ComponentVersion, bool) {
	if len(c.versions) == 0 {
		return nil, false
	}
	idx, ok := semver.LatestPrereleaseIndex(c.entries())
	if !ok {
		return nil, false
	}
	return c.versions[idx], true
}

// Title is a live view of Latest's Title.
func (c *Component) Title() string {
	if l := c.Latest(); l != nil {
		return l.Title
	}
	return ""
}

// URL is a live view of Latest's URL.
func (c *Component) URL() string {
	if l := c.Latest(); l != nil {
		return l.URL
	}
	return ""
}

// Asciidoc is a live view of Latest's Asciidoc metadata.
func (c *Component) Asciidoc() AsciidocMeta {
	if l := c.Latest(); l != nil {
		return l.Asciidoc
	}
	return AsciidocMeta{}
}

func (c *Component) entries() []semver.Entry {
	entries := make([]semver.Entry, len(c.versions))
	for i, cv := range c.versions {
		entries[i] = entryOf(cv)
	}
	return entries
}

func entryOf(cv *ComponentVersion) semver.Entry {
	e := semver.Entry{Version: cv.Version}
	if forced, ok := prereleaseFlag(cv.Prerelease); ok {
		e.Forced = &forced
	}
	return e
}

func prereleaseFlag(v interface{}) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		return t != "", true
	default:
		return false, false
	}
}

func (c *Component) insertSorted(cv *ComponentVersion) {
	c.versions = append(c.versions, cv)
	sort.SliceStable(c.versions, func(i, j int) bool {
		return semver.Less(entryOf(c.versions[i]), entryOf(c.versions[j]))
	})
}

// recomputeActiveSegments assigns ActiveVersionSegment to every version:
// the version's own segment, except Latest/LatestPrerelease are overridden
// by the playbook's configured latest segment aliases when one is set.
func (c *Component) recomputeActiveSegments(cfg playbook.Config) {
	latest := c.Latest()
	latestPre, hasPre := c.LatestPrerelease()
	for _, cv := range c.versions {
		cv.ActiveVersionSegment = cv.VersionSegment
		if latest != nil && cv == latest && cfg.URLs.LatestVersionSegment != "" {
			cv.ActiveVersionSegment = cfg.URLs.LatestVersionSegment
		}
		if hasPre && cv == latestPre && cfg.URLs.LatestPrereleaseVersionSegment != "" {
			cv.ActiveVersionSegment = cfg.URLs.LatestPrereleaseVersionSegment
		}
	}
}

// computeDisplayVersion implements the prerelease-suffix composition rule:
// when prerelease is a non-empty string and no explicit display version was
// given, display is version + separator + prerelease, with the separator
// omitted when the prerelease string already starts with '-' or '.'.
func computeDisplayVersion(version string, prerelease interface{}, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if str, ok := prerelease.(string); ok && str != "" {
		sep := " "
		if strings.HasPrefix(str, "-") || strings.HasPrefix(str, ".") {
			sep = ""
		}
		return version + sep + str
	}
	return version
}
