// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package convert implements the Document Converter driver (§4.8): it walks
// every page in the catalog in a stable forward order, hands each one to the
// Markup Adapter for conversion, and releases raw source bytes once the walk
// is done.
package convert

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/gardener/docforge-catalog/asciidoc"
	"github.com/gardener/docforge-catalog/catalog"
	"github.com/gardener/docforge-catalog/diagnostics"
	"github.com/gardener/docforge-catalog/internal/resourceid"
)

// Driver runs the Document Converter over every page of a Catalog.
type Driver struct {
	Catalog    *catalog.Catalog
	Processor  *asciidoc.Processor
	Diag       *diagnostics.Sink
	KeepSource bool
}

// New builds a Driver converting pages in cat with processor.
func New(cat *catalog.Catalog, processor *asciidoc.Processor, diag *diagnostics.Sink) *Driver {
	return &Driver{Catalog: cat, Processor: processor, Diag: diag}
}

// pageJob pairs a page with the component version it belongs to, so
// ConvertPage can see sibling-version context (e.g. display version) without
// the catalog having to expose a reverse index.
type pageJob struct {
	file *catalog.File
	cv   *catalog.ComponentVersion
}

// Run converts every page across every component version, in strict
// ascending key order (§4.8 step 1-3), then clears Src.Contents on every
// converted page unless KeepSource is set (step 4). Conversion errors are
// aggregated; the walk does not stop at the first failure so a single bad
// page doesn't hide diagnostics about the rest of the site.
func (d *Driver) Run() error {
	jobs := d.collectJobs()

	var errs *multierror.Error
	for _, job := range jobs {
		if err := d.Processor.ConvertPage(job.file, job.cv); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", job.file.Path, err))
			if d.Diag != nil {
				d.Diag.Error("convert-failed", err.Error(), diagnostics.Location{Path: job.file.Path})
			}
		}
	}

	if !d.KeepSource {
		for _, job := range jobs {
			job.file.Src.Contents = nil
		}
	}

	return errs.ErrorOrNil()
}

func (d *Driver) collectJobs() []pageJob {
	var jobs []pageJob
	for _, comp := range d.Catalog.GetComponentsSortedBy("name") {
		for _, cv := range comp.Versions() {
			for _, f := range cv.Files() {
				if f.Src.Family != resourceid.FamilyPage || f.Synthetic {
					continue
				}
				jobs = append(jobs, pageJob{file: f, cv: cv})
			}
		}
	}
	sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].file.Key() < jobs[j].file.Key() })
	return jobs
}
