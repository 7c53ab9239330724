// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package catalog

import "github.com/gardener/docforge-catalog/internal/resourceid"

// Model is the restricted façade ExportToModel hands to extension code: the
// read/resolve surface of Catalog with every mutating method left off, so
// an extension cannot register files or components behind the pipeline's
// back.
type Model interface {
	GetByID(component, version, module string, family resourceid.Family, relative string) *File
	GetByPath(component, version, module string, family resourceid.Family, relative string) *File
	FindBy(criteria FindByCriteria) []*File
	GetPages(filter FindByCriteria) []*File
	GetComponents() []*Component
	GetComponentsSortedBy(prop string) []*Component
	GetSiteStartPage() *File
}

// ExportToModel returns the Model façade over c.
func (c *Catalog) ExportToModel() Model {
	return c
}
