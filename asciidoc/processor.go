// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package asciidoc

import (
	"github.com/gardener/docforge-catalog/catalog"
	"github.com/gardener/docforge-catalog/diagnostics"
	"github.com/gardener/docforge-catalog/internal/pathurl"
)

// Processor is the Markup Adapter: it resolves includes and inline macros
// against cat via resolver, reporting through diag, then hands the
// remaining markup to goldmark for rendering.
type Processor struct {
	Catalog                *catalog.Catalog
	Resolver               catalog.Resolver
	Diag                   *diagnostics.Sink
	Style                  pathurl.Style
	MaxIncludeDepth        int
	RelativizeResourceRefs bool
}

// New builds a Processor. RelativizeResourceRefs defaults to true (the
// common case); pass an already-configured Processor literal to override.
func New(cat *catalog.Catalog, resolver catalog.Resolver, diag *diagnostics.Sink, style pathurl.Style) *Processor {
	return &Processor{
		Catalog:                cat,
		Resolver:               resolver,
		Diag:                   diag,
		Style:                  style,
		RelativizeResourceRefs: true,
	}
}

func (p *Processor) report(level diagnostics.Level, name, msg, filePath string, line int, ctx IncludeContext) {
	if p.Diag == nil {
		return
	}
	p.Diag.Report(diagnostics.Record{
		Level: level,
		Name:  name,
		Msg:   msg,
		File:  diagnostics.Location{Path: filePath, Line: line},
		Stack: ctx.Stack,
	})
}

func (p *Processor) diagError(name, msg, filePath string, ctx IncludeContext) {
	p.report(diagnostics.LevelError, name, msg, filePath, 0, ctx)
}

func (p *Processor) diagWarn(name, msg, filePath string, line int, ctx IncludeContext) {
	p.report(diagnostics.LevelWarn, name, msg, filePath, line, ctx)
}

func (p *Processor) diagInfo(name, msg, filePath string, ctx IncludeContext) {
	p.report(diagnostics.LevelInfo, name, msg, filePath, 0, ctx)
}
