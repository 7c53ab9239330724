// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package resolver implements the Resource Resolver: turning a resource-id
// spec plus a current-file context into a concrete catalog File.
package resolver

import (
	"path"
	"strings"

	"github.com/gardener/docforge-catalog/catalog"
	"github.com/gardener/docforge-catalog/internal/resourceid"
)

// Resolver resolves resource-id specs against a Catalog. It implements
// catalog.Resolver so Catalog's start-page registration methods can accept
// it without importing this package.
type Resolver struct {
	Catalog *catalog.Catalog
}

// New builds a Resolver bound to cat.
func New(cat *catalog.Catalog) *Resolver {
	return &Resolver{Catalog: cat}
}

// Resolve implements catalog.Resolver. It returns (nil, err) when spec is
// syntactically invalid, (nil, nil) when spec is well-formed but names no
// registered file, and (file, nil) on success.
func (r *Resolver) Resolve(spec string, ctx catalog.ResolveContext, defaultFamily resourceid.Family, permitted []resourceid.Family) (*catalog.File, error) {
	id, err := resourceid.ParseID(spec, permitted)
	if err != nil {
		return nil, err
	}

	if id.Component == "" {
		id.Component = ctx.Component
	} else if id.Component != ctx.Component && id.Family == "" {
		// a spec naming a different component without a family marker
		// defaults to page, per §4.6 step 6.
		id.Family = resourceid.FamilyPage
	}

	if id.Version == "" {
		if id.Component != ctx.Component {
			if other := r.componentByName(id.Component); other != nil {
				if latest := other.Latest(); latest != nil {
					id.Version = latest.Version
				}
			}
		} else {
			id.Version = ctx.Version
		}
	}

	if id.Module == "" {
		id.Module = ctx.Module
	}
	if id.Family == "" {
		id.Family = defaultFamily
	}

	if strings.HasPrefix(id.Relative, "./") {
		rel := strings.TrimPrefix(id.Relative, "./")
		if ctx.Dir != "" {
			rel = path.Join(ctx.Dir, rel)
		}
		if file := r.Catalog.GetByPath(id.Component, id.Version, id.Module, id.Family, rel); file != nil {
			return file, nil
		}
		return nil, nil
	}

	if file := r.Catalog.GetByID(id.Component, id.Version, id.Module, id.Family, id.Relative); file != nil {
		return file, nil
	}

	if id.Family == resourceid.FamilyPage {
		if alias := r.Catalog.GetByID(id.Component, id.Version, id.Module, resourceid.FamilyAlias, id.Relative); alias != nil {
			if alias.Rel != nil {
				return alias.Rel, nil
			}
			return alias, nil
		}
	}

	return nil, nil
}

func (r *Resolver) componentByName(name string) *catalog.Component {
	for _, comp := range r.Catalog.GetComponents() {
		if comp.Name == name {
			return comp
		}
	}
	return nil
}
