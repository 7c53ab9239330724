// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resourceid_test

import (
	"testing"

	"github.com/gardener/docforge-catalog/internal/resourceid"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		permitted []resourceid.Family
		want      resourceid.ID
		wantErr   bool
	}{
		{
			name: "bare relative",
			spec: "index.adoc",
			want: resourceid.ID{Relative: "index.adoc"},
		},
		{
			name: "family marker",
			spec: "partial$snippets/foo.adoc",
			want: resourceid.ID{Family: resourceid.FamilyPartial, Relative: "snippets/foo.adoc"},
		},
		{
			name: "component root module shorthand",
			spec: "component-b::outer.adoc",
			want: resourceid.ID{Component: "component-b", Module: resourceid.RootModule, Relative: "outer.adoc"},
		},
		{
			name: "component and module",
			spec: "component-b:module-a:outer.adoc",
			want: resourceid.ID{Component: "component-b", Module: "module-a", Relative: "outer.adoc"},
		},
		{
			name: "module only",
			spec: ":module-a:outer.adoc",
			want: resourceid.ID{Module: "module-a", Relative: "outer.adoc"},
		},
		{
			name: "version with extension",
			spec: "v1.2.3@index.adoc",
			want: resourceid.ID{Version: "v1.2.3", Relative: "index.adoc"},
		},
		{
			name: "version without extension is not split (ambiguity, §9)",
			spec: "2.0@the-page",
			want: resourceid.ID{Relative: "2.0@the-page"},
		},
		{
			name: "fragment",
			spec: "index.adoc#intro",
			want: resourceid.ID{Relative: "index.adoc", Fragment: "intro"},
		},
		{
			name:      "full form",
			spec:      "v4.5@the-component:the-module:partial$dir/file.adoc#frag",
			permitted: []resourceid.Family{resourceid.FamilyPartial},
			want: resourceid.ID{
				Version: "v4.5", Component: "the-component", Module: "the-module",
				Family: resourceid.FamilyPartial, Relative: "dir/file.adoc", Fragment: "frag",
			},
		},
		{
			name:    "double dollar is invalid",
			spec:    "page$foo$bar.adoc",
			wantErr: true,
		},
		{
			name:    "bare adoc pseudo extension empty stem is invalid",
			spec:    "dir/.adoc",
			wantErr: true,
		},
		{
			name:    "empty spec is invalid",
			spec:    "",
			wantErr: true,
		},
		{
			name: "unrecognized family token is treated as literal relative",
			spec: "notafamily$foo.adoc",
			want: resourceid.ID{Relative: "notafamily$foo.adoc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resourceid.ParseID(tt.spec, tt.permitted)
			if tt.wantErr {
				require.ErrorIs(t, err, resourceid.ErrInvalidSyntax)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateResourceSpecRoundTrip(t *testing.T) {
	ids := []resourceid.ID{
		{Version: "v1.2.3", Component: "the-component", Module: resourceid.RootModule, Family: resourceid.FamilyPage, Relative: "index.adoc"},
		{Version: "v1.2.3", Component: "the-component", Module: "the-module", Family: resourceid.FamilyPartial, Relative: "dir/file.adoc"},
		{Version: "", Component: "c", Module: resourceid.RootModule, Family: resourceid.FamilyImage, Relative: "a/b.png"},
	}
	for _, id := range ids {
		spec := resourceid.GenerateResourceSpec(id, true)
		parsed, err := resourceid.ParseID(spec, nil)
		require.NoError(t, err)
		require.Equal(t, id.Version, parsed.Version)
		require.Equal(t, id.Component, parsed.Component)
		if id.Module == resourceid.RootModule {
			require.Equal(t, resourceid.RootModule, parsed.Module)
		} else {
			require.Equal(t, id.Module, parsed.Module)
		}
		require.Equal(t, id.Relative, parsed.Relative)
		if id.Family != resourceid.FamilyPage && id.Family != resourceid.FamilyAlias {
			require.Equal(t, id.Family, parsed.Family)
		}
	}
}

func TestGenerateKey(t *testing.T) {
	id := resourceid.ID{Version: "v1", Component: "c", Module: "m", Relative: "a/b.adoc"}
	require.Equal(t, "v1@c:m:a/b.adoc", resourceid.GenerateKey(id))
}
