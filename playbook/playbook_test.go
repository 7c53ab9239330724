// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package playbook_test

import (
	"testing"

	"github.com/gardener/docforge-catalog/internal/pathurl"
	"github.com/gardener/docforge-catalog/playbook"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := playbook.Default()
	require.Equal(t, pathurl.StyleDefault, cfg.URLs.HTMLExtensionStyle)
	require.Equal(t, playbook.StrategyReplace, cfg.URLs.LatestVersionSegmentStrategy)
	require.Equal(t, playbook.RedirectFacilityStatic, cfg.URLs.RedirectFacility)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := playbook.Parse([]byte(`
urls:
  html_extension_style: drop
  latest_version_segment: latest
  latest_version_segment_strategy: "redirect:from"
asciidoc:
  attributes:
    foo: bar
`))
	require.NoError(t, err)
	require.Equal(t, pathurl.StyleDrop, cfg.URLs.HTMLExtensionStyle)
	require.Equal(t, "latest", cfg.URLs.LatestVersionSegment)
	require.Equal(t, playbook.StrategyRedirectFrom, cfg.URLs.LatestVersionSegmentStrategy)
	require.Equal(t, "bar", cfg.Asciidoc.Attributes["foo"])
}

func TestParseEmptyDocumentKeepsDefaults(t *testing.T) {
	cfg, err := playbook.Parse([]byte(``))
	require.NoError(t, err)
	require.Equal(t, playbook.Default(), cfg)
}
