// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package catalog_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gardener/docforge-catalog/catalog"
	"github.com/gardener/docforge-catalog/internal/resourceid"
	"github.com/gardener/docforge-catalog/playbook"
)

func TestCatalog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Catalog Suite")
}

var _ = Describe("Component versions", func() {
	var c *catalog.Catalog

	BeforeEach(func() {
		c = catalog.New(playbook.Default(), nil)
	})

	DescribeTable("Latest resolves to the highest non-prerelease version",
		func(versions []string, wantLatest string) {
			for _, v := range versions {
				_, err := c.RegisterComponentVersion("comp", v, catalog.ComponentVersionDescriptor{})
				Expect(err).NotTo(HaveOccurred())
			}
			comps := c.GetComponents()
			Expect(comps).To(HaveLen(1))
			Expect(comps[0].Latest().Version).To(Equal(wantLatest))
		},
		Entry("stable beats later-registered prerelease", []string{"1.0.0", "2.0.0-rc1"}, "1.0.0"),
		Entry("highest stable wins among several", []string{"1.0.0", "1.2.0", "1.1.0"}, "1.2.0"),
		Entry("falls back to the newest prerelease when nothing is stable", []string{"1.0.0-alpha", "1.1.0-beta"}, "1.1.0-beta"),
	)

	It("registers a page alias that masquerades as its target's family", func() {
		cv, err := c.RegisterComponentVersion("comp", "1.0", catalog.ComponentVersionDescriptor{})
		Expect(err).NotTo(HaveOccurred())

		target, err := c.AddFile(&catalog.File{
			Src: catalog.NewSrc("comp", "1.0", resourceid.RootModule, resourceid.FamilyPage, "foo.adoc"),
		}, cv)
		Expect(err).NotTo(HaveOccurred())

		alias, err := c.RegisterPageAlias("old-foo.adoc", target)
		Expect(err).NotTo(HaveOccurred())
		Expect(alias.EffectiveFamily()).To(Equal(resourceid.FamilyPage))
		Expect(target.Rel).To(Equal(alias))
	})
})
