// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resourceid

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ID is the canonical coordinate of a catalog resource.
type ID struct {
	Component string
	Version   string
	Module    string
	Family    Family
	Relative  string
	Fragment  string
}

// Basename returns the final path segment of Relative.
func (id ID) Basename() string {
	return path.Base(id.Relative)
}

// Extname returns the extension (with leading dot) of Relative's basename,
// or "" when there is none.
func (id ID) Extname() string {
	return path.Ext(id.Basename())
}

// Stem returns the basename of Relative with its extension removed.
func (id ID) Stem() string {
	base := id.Basename()
	return strings.TrimSuffix(base, id.Extname())
}

// GenerateKey returns the catalog key for id: version@component:module:relative.
// Family is deliberately excluded - pages and partials sharing the other four
// coordinates are still distinct because they never coexist in the same family
// bucket. Relative is NFC-normalized first so that visually identical paths
// that arrived under different Unicode decompositions collapse to one key.
func GenerateKey(id ID) string {
	return fmt.Sprintf("%s@%s:%s:%s", id.Version, id.Component, id.Module, norm.NFC.String(id.Relative))
}

// GenerateResourceSpec renders id as the user-facing resource spec string.
// When shorthand is true and the module is ROOT, the module segment is
// omitted (component::relative rather than component:ROOT:relative).
func GenerateResourceSpec(id ID, shorthand bool) string {
	module := id.Module
	if module == RootModule && shorthand {
		module = ""
	}
	familyPrefix := ""
	if id.Family != FamilyPage && id.Family != FamilyAlias && id.Family != "" {
		familyPrefix = string(id.Family) + "$"
	}
	spec := fmt.Sprintf("%s@%s:%s:%s%s", id.Version, id.Component, module, familyPrefix, id.Relative)
	if id.Fragment != "" {
		spec += "#" + id.Fragment
	}
	return spec
}
