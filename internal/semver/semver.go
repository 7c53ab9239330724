// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package semver orders component versions the way the catalog's sorted
// version list requires: a three-tier comparison (non-semantic prerelease,
// non-semantic stable, semantic) rather than a strict semver precedence
// comparator, since the version string attached to a component is operator
// chosen and need not be a valid semantic version at all.
package semver

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var semanticPattern = regexp.MustCompile(`^\d+(\.\d+)*(-.*)?$`)

// Entry is one version to be placed in a component's sorted version list.
type Entry struct {
	// Version is the raw version string as registered.
	Version string
	// Forced, when non-nil, overrides the suffix-based prerelease heuristic
	// - this is how an explicit `prerelease: true` (or a non-empty prerelease
	// string) component descriptor field takes precedence over whatever the
	// version string itself looks like.
	Forced *bool
}

func (e Entry) isSemantic() bool {
	return semanticPattern.MatchString(e.Version)
}

func (e Entry) isPrerelease() bool {
	if e.Forced != nil {
		return *e.Forced
	}
	if e.isSemantic() {
		return strings.Contains(stripNumericPrefix(e.Version), "-")
	}
	return strings.Contains(e.Version, "-")
}

// stripNumericPrefix returns the "-suffix" part of a semantic version, or ""
// when there is none.
func stripNumericPrefix(v string) string {
	if i := strings.Index(v, "-"); i >= 0 {
		return v[i:]
	}
	return ""
}

func numericParts(v string) []int {
	base := v
	if i := strings.Index(base, "-"); i >= 0 {
		base = base[:i]
	}
	segments := strings.Split(base, ".")
	parts := make([]int, len(segments))
	for i, s := range segments {
		n, _ := strconv.Atoi(s)
		parts[i] = n
	}
	return parts
}

// tier buckets: lower sorts first (most recent/preferred) in the final
// descending list, per §4.2: non-semantic prereleases precede non-semantic
// stable versions precede semantic versions.
func (e Entry) tier() int {
	switch {
	case !e.isSemantic() && e.isPrerelease():
		return 0
	case !e.isSemantic():
		return 1
	default:
		return 2
	}
}

// Less reports whether a should sort before b in the descending version
// list - i.e. whether a is "newer"/preferred over b.
func Less(a, b Entry) bool {
	ta, tb := a.tier(), b.tier()
	if ta != tb {
		return ta < tb
	}
	switch ta {
	case 0, 1:
		// lexicographically descending within the non-semantic tiers
		return a.Version > b.Version
	default:
		return lessSemantic(a, b)
	}
}

// lessSemantic compares two semantic entries: numeric parts first
// (descending), then - for equal numeric parts - a release outranks its own
// prerelease, and two prereleases of the same base compare by suffix string.
func lessSemantic(a, b Entry) bool {
	pa, pb := numericParts(a.Version), numericParts(b.Version)
	n := len(pa)
	if len(pb) > n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		var va, vb int
		if i < len(pa) {
			va = pa[i]
		}
		if i < len(pb) {
			vb = pb[i]
		}
		if va != vb {
			return va > vb
		}
	}
	sa, sb := stripNumericPrefix(a.Version), stripNumericPrefix(b.Version)
	if sa == sb {
		return false
	}
	if sa == "" {
		// a has no prerelease suffix, b does: a (the release) outranks b.
		return true
	}
	if sb == "" {
		return false
	}
	return sa > sb
}

// Sort orders entries in-place per the descending version order (index 0 is
// the "most recent"/preferred entry per the tiering rule above).
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
}

// Insert returns entries with e placed at its sorted position.
func Insert(entries []Entry, e Entry) []Entry {
	out := append(append([]Entry{}, entries...), e)
	Sort(out)
	return out
}

// IsPrerelease exposes the prerelease classification used for sorting, for
// callers (the catalog's Component.Latest/LatestPrerelease) that need the
// same verdict without re-deriving it.
func (e Entry) IsPrerelease() bool {
	return e.isPrerelease()
}

// LatestIndex returns the index of the first non-prerelease entry in a
// sorted (descending) list, or 0 when every entry is a prerelease.
func LatestIndex(sorted []Entry) int {
	for i, e := range sorted {
		if !e.isPrerelease() {
			return i
		}
	}
	return 0
}

// LatestPrereleaseIndex returns the index of the leading entry when it is a
// prerelease ahead of Latest, i.e. index 0 of a list whose first entry is
// itself a prerelease. It reports false when the list is empty or its first
// entry is not a prerelease (in which case Latest already refers to it).
func LatestPrereleaseIndex(sorted []Entry) (int, bool) {
	if len(sorted) == 0 || !sorted[0].isPrerelease() {
		return 0, false
	}
	return 0, true
}
