// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package diagnostics_test

import (
	"testing"

	"github.com/gardener/docforge-catalog/diagnostics"
	"github.com/stretchr/testify/require"
)

func TestSinkTracksFailOnExitAtFailureLevel(t *testing.T) {
	sink := diagnostics.NewSink(diagnostics.LevelError)
	sink.Warn("unresolved-include", "optional include dropped", diagnostics.Location{Path: "a.adoc"})
	require.False(t, sink.FailOnExit())

	sink.Error("unresolved-include", "include not found", diagnostics.Location{Path: "a.adoc", Line: 4})
	require.True(t, sink.FailOnExit())
	require.Len(t, sink.Records(), 2)
}

func TestSinkFailureLevelWarn(t *testing.T) {
	sink := diagnostics.NewSink(diagnostics.LevelWarn)
	sink.Warn("unmatched-nav-entry", "antora.yml lists an entry with no matching file", diagnostics.Location{Path: "antora.yml"})
	require.True(t, sink.FailOnExit())
}
