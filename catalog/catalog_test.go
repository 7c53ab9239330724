// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package catalog_test

import (
	"errors"
	"testing"

	"github.com/gardener/docforge-catalog/catalog"
	"github.com/gardener/docforge-catalog/internal/resourceid"
	"github.com/gardener/docforge-catalog/playbook"
	"github.com/stretchr/testify/require"
)

func newTestCatalog() *catalog.Catalog {
	return catalog.New(playbook.Default(), nil)
}

func pageFile(component, version, module, relative string) *catalog.File {
	return &catalog.File{
		Path: relative,
		Src:  catalog.NewSrc(component, version, module, resourceid.FamilyPage, relative),
	}
}

func TestRegisterComponentVersionRejectsDuplicate(t *testing.T) {
	c := newTestCatalog()
	_, err := c.RegisterComponentVersion("comp", "1.0.0", catalog.ComponentVersionDescriptor{Title: "Comp"})
	require.NoError(t, err)
	_, err = c.RegisterComponentVersion("comp", "1.0.0", catalog.ComponentVersionDescriptor{})
	require.ErrorIs(t, err, catalog.ErrComponentVersionExists)
}

func TestRegisterComponentVersionKeepsSortedOrderAndLatest(t *testing.T) {
	c := newTestCatalog()
	for _, v := range []string{"5.7.1", "5.8.1-SNAPSHOT", "5.8.0", "5.7.2-SNAPSHOT", "5.6.6", "6.0.0-SNAPSHOT"} {
		_, err := c.RegisterComponentVersion("comp", v, catalog.ComponentVersionDescriptor{})
		require.NoError(t, err)
	}
	comps := c.GetComponents()
	require.Len(t, comps, 1)
	comp := comps[0]

	var got []string
	for _, cv := range comp.Versions() {
		got = append(got, cv.Version)
	}
	require.Equal(t, []string{"6.0.0-SNAPSHOT", "5.8.1-SNAPSHOT", "5.8.0", "5.7.2-SNAPSHOT", "5.7.1", "5.6.6"}, got)

	require.Equal(t, "5.8.0", comp.Latest().Version)
	pre, ok := comp.LatestPrerelease()
	require.True(t, ok)
	require.Equal(t, "6.0.0-SNAPSHOT", pre.Version)
}

func TestAddFileComputesOutAndPubForPublishableFamily(t *testing.T) {
	c := newTestCatalog()
	cv, err := c.RegisterComponentVersion("comp", "1.0", catalog.ComponentVersionDescriptor{})
	require.NoError(t, err)

	f := pageFile("comp", "1.0", resourceid.RootModule, "index.adoc")
	added, err := c.AddFile(f, cv)
	require.NoError(t, err)
	require.NotNil(t, added.Out)
	require.NotNil(t, added.Pub)
	require.Equal(t, "comp/1.0/index.html", added.Out.Path)
	require.Equal(t, "/comp/1.0/index.html", added.Pub.URL)
}

func TestAddFileSkipsOutPubForUnderscorePrefixedSegment(t *testing.T) {
	c := newTestCatalog()
	cv, _ := c.RegisterComponentVersion("comp", "1.0", catalog.ComponentVersionDescriptor{})
	f := pageFile("comp", "1.0", resourceid.RootModule, "_fragments/foo.adoc")
	added, err := c.AddFile(f, cv)
	require.NoError(t, err)
	require.Nil(t, added.Out)
	require.Nil(t, added.Pub)
}

func TestAddFileDuplicateKeyFails(t *testing.T) {
	c := newTestCatalog()
	cv, _ := c.RegisterComponentVersion("comp", "1.0", catalog.ComponentVersionDescriptor{})
	_, err := c.AddFile(pageFile("comp", "1.0", resourceid.RootModule, "index.adoc"), cv)
	require.NoError(t, err)

	_, err = c.AddFile(pageFile("comp", "1.0", resourceid.RootModule, "index.adoc"), cv)
	var dup *catalog.DuplicateError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, resourceid.FamilyPage, dup.Family)
}

func TestRegisterPageAliasFailsOnSelfReference(t *testing.T) {
	c := newTestCatalog()
	cv, _ := c.RegisterComponentVersion("comp", "1.0", catalog.ComponentVersionDescriptor{})
	target, err := c.AddFile(pageFile("comp", "1.0", resourceid.RootModule, "foo.adoc"), cv)
	require.NoError(t, err)

	_, err = c.RegisterPageAlias("foo.adoc", target)
	require.ErrorIs(t, err, catalog.ErrAliasSelfReference)
}

func TestRegisterPageAliasFailsOnCollisionWithExistingPage(t *testing.T) {
	c := newTestCatalog()
	cv, _ := c.RegisterComponentVersion("comp", "1.0", catalog.ComponentVersionDescriptor{})
	target, _ := c.AddFile(pageFile("comp", "1.0", resourceid.RootModule, "foo.adoc"), cv)
	_, err := c.AddFile(pageFile("comp", "1.0", resourceid.RootModule, "bar.adoc"), cv)
	require.NoError(t, err)

	_, err = c.RegisterPageAlias("bar.adoc", target)
	require.ErrorIs(t, err, catalog.ErrAliasCollidesWithPage)
}

func TestRegisterPageAliasSucceedsAndSetsTargetRel(t *testing.T) {
	c := newTestCatalog()
	cv, _ := c.RegisterComponentVersion("comp", "1.0", catalog.ComponentVersionDescriptor{})
	target, _ := c.AddFile(pageFile("comp", "1.0", resourceid.RootModule, "foo.adoc"), cv)

	alias, err := c.RegisterPageAlias("old-foo.adoc", target)
	require.NoError(t, err)
	require.Equal(t, target, alias.Rel)
	require.Equal(t, target.Rel, alias)
	require.Equal(t, resourceid.FamilyPage, alias.EffectiveFamily())
}

func TestGetByIDAndFindBy(t *testing.T) {
	c := newTestCatalog()
	cv, _ := c.RegisterComponentVersion("comp", "1.0", catalog.ComponentVersionDescriptor{})
	_, err := c.AddFile(pageFile("comp", "1.0", "mod-a", "a.adoc"), cv)
	require.NoError(t, err)
	_, err = c.AddFile(pageFile("comp", "1.0", "mod-b", "b.adoc"), cv)
	require.NoError(t, err)

	got := c.GetByID("comp", "1.0", "mod-a", resourceid.FamilyPage, "a.adoc")
	require.NotNil(t, got)
	require.Equal(t, "a.adoc", got.Src.Relative)

	found := c.FindBy(catalog.FindByCriteria{Component: "comp", Module: "mod-b"})
	require.Len(t, found, 1)
	require.Equal(t, "b.adoc", found[0].Src.Relative)
}

func TestApplyVersionSegmentRedirectsRedirectFrom(t *testing.T) {
	cfg := playbook.Default()
	cfg.URLs.LatestVersionSegment = "latest"
	cfg.URLs.LatestVersionSegmentStrategy = playbook.StrategyRedirectFrom
	c := catalog.New(cfg, nil)

	_, err := c.RegisterComponentVersion("comp", "2.0", catalog.ComponentVersionDescriptor{})
	require.NoError(t, err)

	require.NoError(t, c.ApplyVersionSegmentRedirects())

	alias := c.GetByID("comp", "2.0", resourceid.RootModule, resourceid.FamilyAlias, "")
	require.NotNil(t, alias)
	require.True(t, alias.Pub.Splat)
	require.Equal(t, "/comp/2.0/", alias.Pub.URL)
	require.Equal(t, "/comp/latest/", alias.Rel.Pub.URL)
}

func TestApplyVersionSegmentRedirectsReplaceAddsNothing(t *testing.T) {
	cfg := playbook.Default()
	cfg.URLs.LatestVersionSegment = "latest"
	c := catalog.New(cfg, nil)

	_, err := c.RegisterComponentVersion("comp", "2.0", catalog.ComponentVersionDescriptor{})
	require.NoError(t, err)

	require.NoError(t, c.ApplyVersionSegmentRedirects())
	require.Empty(t, c.FindBy(catalog.FindByCriteria{Family: resourceid.FamilyAlias}))
}
