// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package pathurl computes the output path and publish URL of a catalog
// file from its resource identity, mirroring the segment-dropping and
// extension-rewriting rules a static site needs to support ROOT components/
// modules and the three HTML extension styles.
package pathurl

import (
	"path"
	"strings"

	"github.com/gardener/docforge-catalog/internal/link"
	"github.com/gardener/docforge-catalog/internal/must"
	"github.com/gardener/docforge-catalog/internal/resourceid"
)

// Style is the site-wide HTML extension/URL strategy.
type Style string

const (
	// StyleDefault keeps the ".html" extension in both Out.Path and the URL.
	StyleDefault Style = "default"
	// StyleDrop strips the ".html" extension from URLs (not from Out.Path),
	// collapsing a trailing "/index.html" to "/".
	StyleDrop Style = "drop"
	// StyleIndexify rewrites every page to an "index.html" under a directory
	// named after its stem, so the URL needs no extension or basename at all.
	StyleIndexify Style = "indexify"
)

// Out is the computed output-path record of a publishable file.
type Out struct {
	Dirname        string
	Basename       string
	Path           string
	ModuleRootPath string
	RootPath       string
}

// Pub is the computed publish record of a publishable file.
type Pub struct {
	URL            string
	ModuleRootPath string
	RootPath       string
	Splat          bool
}

// Input carries everything Compute needs to derive Out and Pub for one file.
type Input struct {
	Component      string
	Module         string
	Family         resourceid.Family
	Relative       string
	VersionSegment string
	Style          Style
}

// Compute derives the output path and publish URL for in. Callers are
// expected to have already checked that the file is publishable (family in
// {page, image, attachment} with no "_"-prefixed path segment, or nav) -
// Compute itself does not apply that filter.
func Compute(in Input) (Out, Pub) {
	must.BeTrue(in.Relative != "", "pathurl.Compute: Input.Relative must not be empty")

	var prefix []string
	if in.Component != resourceid.RootComponent {
		prefix = append(prefix, in.Component)
	}
	if in.VersionSegment != "" {
		prefix = append(prefix, in.VersionSegment)
	}
	if in.Module != resourceid.RootModule {
		prefix = append(prefix, in.Module)
	}

	var inModule []string
	switch in.Family {
	case resourceid.FamilyImage:
		inModule = append(inModule, "_images")
	case resourceid.FamilyAttachment:
		inModule = append(inModule, "_attachments")
	}

	relDir, base := path.Split(in.Relative)
	relDir = strings.TrimSuffix(relDir, "/")
	if relDir != "" {
		inModule = append(inModule, strings.Split(relDir, "/")...)
	}

	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	if in.Family == resourceid.FamilyPage {
		switch {
		case in.Style == StyleIndexify && stem != "index":
			inModule = append(inModule, stem)
			base = "index.html"
		case ext == ".adoc":
			base = stem + ".html"
		}
	}

	segments := append(append([]string{}, prefix...), inModule...)
	dirname := strings.Join(segments, "/")
	outPath := path.Join(dirname, base)

	depthInModule := len(inModule)
	depthFromRoot := len(prefix) + len(inModule)

	out := Out{
		Dirname:        dirname,
		Basename:       base,
		Path:           outPath,
		ModuleRootPath: upDirs(depthInModule),
		RootPath:       upDirs(depthFromRoot),
	}

	pub := Pub{
		URL:            computeURL(out.Path, in.Family, in.Style),
		ModuleRootPath: out.ModuleRootPath,
		RootPath:       out.RootPath,
	}

	return out, pub
}

// NavURL synthesizes the URL for a nav file, which has no Out record.
func NavURL(component, module, versionSegment string) string {
	var segments []string
	if component != resourceid.RootComponent {
		segments = append(segments, component)
	}
	if versionSegment != "" {
		segments = append(segments, versionSegment)
	}
	if module != resourceid.RootModule {
		segments = append(segments, module)
	}
	u := must.Succeed(link.Build(append([]string{"/"}, segments...)...))
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

func upDirs(depth int) string {
	if depth == 0 {
		return "."
	}
	return strings.TrimSuffix(strings.Repeat("../", depth), "/")
}

func computeURL(outPath string, family resourceid.Family, style Style) string {
	u := outPath
	if family == resourceid.FamilyPage {
		switch style {
		case StyleDrop:
			switch {
			case u == "index.html":
				u = ""
			case strings.HasSuffix(u, "/index.html"):
				u = strings.TrimSuffix(u, "index.html")
			default:
				u = strings.TrimSuffix(u, ".html")
			}
		case StyleIndexify:
			u = strings.TrimSuffix(u, "index.html")
		}
	}
	full := must.Succeed(link.Build("/", u))
	if full == "/." {
		full = "/"
	}
	return full
}
