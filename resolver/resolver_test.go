// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resolver_test

import (
	"testing"

	"github.com/gardener/docforge-catalog/catalog"
	"github.com/gardener/docforge-catalog/internal/resourceid"
	"github.com/gardener/docforge-catalog/playbook"
	"github.com/gardener/docforge-catalog/resolver"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*catalog.Catalog, *catalog.ComponentVersion) {
	t.Helper()
	c := catalog.New(playbook.Default(), nil)
	cv, err := c.RegisterComponentVersion("comp", "1.0", catalog.ComponentVersionDescriptor{})
	require.NoError(t, err)
	return c, cv
}

func TestResolveDefaultsFromContext(t *testing.T) {
	c, cv := setup(t)
	_, err := c.AddFile(&catalog.File{Src: catalog.NewSrc("comp", "1.0", "mod", resourceid.FamilyPage, "foo.adoc")}, cv)
	require.NoError(t, err)

	r := resolver.New(c)
	ctx := catalog.ResolveContext{Component: "comp", Version: "1.0", Module: "mod"}
	f, err := r.Resolve("foo.adoc", ctx, resourceid.FamilyPage, nil)
	require.NoError(t, err)
	require.NotNil(t, f)
	require.Equal(t, "foo.adoc", f.Src.Relative)
}

func TestResolveFallsBackToAlias(t *testing.T) {
	c, cv := setup(t)
	target, err := c.AddFile(&catalog.File{Src: catalog.NewSrc("comp", "1.0", "mod", resourceid.FamilyPage, "foo.adoc")}, cv)
	require.NoError(t, err)
	_, err = c.RegisterPageAlias("old-foo.adoc", target)
	require.NoError(t, err)

	r := resolver.New(c)
	ctx := catalog.ResolveContext{Component: "comp", Version: "1.0", Module: "mod"}
	f, err := r.Resolve("old-foo.adoc", ctx, resourceid.FamilyPage, nil)
	require.NoError(t, err)
	require.Equal(t, target, f)
}

func TestResolveDotSlashIsPathRelative(t *testing.T) {
	c, cv := setup(t)
	_, err := c.AddFile(&catalog.File{Src: catalog.NewSrc("comp", "1.0", "mod", resourceid.FamilyPage, "sub/foo.adoc")}, cv)
	require.NoError(t, err)

	r := resolver.New(c)
	ctx := catalog.ResolveContext{Component: "comp", Version: "1.0", Module: "mod", Dir: "sub"}
	f, err := r.Resolve("./foo.adoc", ctx, resourceid.FamilyPage, nil)
	require.NoError(t, err)
	require.NotNil(t, f)
	require.Equal(t, "sub/foo.adoc", f.Src.Relative)
}

func TestResolveUnresolvedReturnsNilNil(t *testing.T) {
	c, _ := setup(t)
	r := resolver.New(c)
	ctx := catalog.ResolveContext{Component: "comp", Version: "1.0", Module: "mod"}
	f, err := r.Resolve("missing.adoc", ctx, resourceid.FamilyPage, nil)
	require.NoError(t, err)
	require.Nil(t, f)
}

func TestResolveInvalidSyntaxReturnsError(t *testing.T) {
	c, _ := setup(t)
	r := resolver.New(c)
	ctx := catalog.ResolveContext{Component: "comp", Version: "1.0", Module: "mod"}
	_, err := r.Resolve("page$foo$bar.adoc", ctx, resourceid.FamilyPage, nil)
	require.ErrorIs(t, err, resourceid.ErrInvalidSyntax)
}
