// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package playbook holds the subset of site-wide configuration the content
// pipeline consults: the HTML extension style, the latest-version-segment
// strategy, the redirect facility, and the site-wide AsciiDoc attribute
// defaults. It is parsed the way the reference tool's manifest descriptors
// are, with gopkg.in/yaml.v3.
package playbook

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gardener/docforge-catalog/internal/pathurl"
)

// VersionSegmentStrategy governs how a component version whose computed
// VersionSegment differs from its ActiveVersionSegment is exposed.
type VersionSegmentStrategy string

const (
	// StrategyReplace serves only the active-segment URL; the literal
	// version-segment URL does not exist.
	StrategyReplace VersionSegmentStrategy = "replace"
	// StrategyRedirectFrom adds an alias at the version segment redirecting
	// to the active segment.
	StrategyRedirectFrom VersionSegmentStrategy = "redirect:from"
	// StrategyRedirectTo adds an alias at the active segment redirecting to
	// the literal version segment.
	StrategyRedirectTo VersionSegmentStrategy = "redirect:to"
)

// RedirectFacility names the target platform for generated redirects.
type RedirectFacility string

const (
	RedirectFacilityStatic  RedirectFacility = "static"
	RedirectFacilityNetlify RedirectFacility = "netlify"
)

// Config is the parsed playbook subset this pipeline consumes.
type Config struct {
	URLs struct {
		HTMLExtensionStyle    pathurl.Style           `yaml:"html_extension_style"`
		LatestVersionSegment  string                  `yaml:"latest_version_segment"`
		LatestPrereleaseVersionSegment string         `yaml:"latest_prerelease_version_segment"`
		LatestVersionSegmentStrategy   VersionSegmentStrategy `yaml:"latest_version_segment_strategy"`
		RedirectFacility      RedirectFacility        `yaml:"redirect_facility"`
	} `yaml:"urls"`
	Asciidoc struct {
		Attributes map[string]interface{} `yaml:"attributes"`
	} `yaml:"asciidoc"`
}

// Default returns the zero-value-safe baseline: default HTML extension
// style, replace strategy, static redirects, no attribute defaults.
func Default() Config {
	cfg := Config{}
	cfg.URLs.HTMLExtensionStyle = pathurl.StyleDefault
	cfg.URLs.LatestVersionSegmentStrategy = StrategyReplace
	cfg.URLs.RedirectFacility = RedirectFacilityStatic
	return cfg
}

// Parse decodes a playbook document, filling unset fields from Default().
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing playbook: %w", err)
	}
	if cfg.URLs.HTMLExtensionStyle == "" {
		cfg.URLs.HTMLExtensionStyle = pathurl.StyleDefault
	}
	if cfg.URLs.LatestVersionSegmentStrategy == "" {
		cfg.URLs.LatestVersionSegmentStrategy = StrategyReplace
	}
	if cfg.URLs.RedirectFacility == "" {
		cfg.URLs.RedirectFacility = RedirectFacilityStatic
	}
	return cfg, nil
}
