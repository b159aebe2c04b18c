package catalog_test

import (
	"os"
	"path/filepath"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/catalog"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Catalog", func() {
	var items []auctiontypes.Item

	BeforeEach(func() {
		items = []auctiontypes.Item{
			{Name: "chalice", Quality: 80, IsRequired: true},
			{Name: "crown", Quality: 65, IsRequired: true},
			{Name: "rubber-duck", Quality: 0, IsRequired: false},
		}
	})

	Describe("New", func() {
		It("freezes items in construction order", func() {
			cat, err := catalog.New(items, 2)
			Ω(err).ShouldNot(HaveOccurred())

			ordered := cat.ItemsInAuctionOrder()
			Ω(ordered).Should(HaveLen(3))
			Ω(ordered[0].Name).Should(Equal("chalice"))
			Ω(ordered[2].Name).Should(Equal("rubber-duck"))
		})

		It("does not share the caller's slice", func() {
			cat, err := catalog.New(items, 2)
			Ω(err).ShouldNot(HaveOccurred())

			items[0].Name = "mutated"
			Ω(cat.ItemsInAuctionOrder()[0].Name).Should(Equal("chalice"))
		})

		It("normalizes non-required items to quality zero", func() {
			items[2].Quality = 42
			cat, err := catalog.New(items, 2)
			Ω(err).ShouldNot(HaveOccurred())
			Ω(cat.ItemsInAuctionOrder()[2].Quality).Should(Equal(0))
		})

		Context("when there are fewer required items than the completion set needs", func() {
			It("fails with an invalid catalog error", func() {
				_, err := catalog.New(items, 3)
				Ω(err).Should(MatchError(auctiontypes.ErrInvalidCatalog))
			})
		})

		Context("when an item's quality is out of range", func() {
			It("fails with an invalid catalog error", func() {
				items[0].Quality = auctiontypes.MaxQuality + 1
				_, err := catalog.New(items, 2)
				Ω(err).Should(MatchError(auctiontypes.ErrInvalidCatalog))
			})
		})

		Context("when item names collide", func() {
			It("fails with an invalid catalog error", func() {
				items[1].Name = "chalice"
				_, err := catalog.New(items, 2)
				Ω(err).Should(MatchError(auctiontypes.ErrInvalidCatalog))
			})
		})

		Context("when the catalog is empty", func() {
			It("fails with an invalid catalog error", func() {
				_, err := catalog.New(nil, 0)
				Ω(err).Should(MatchError(auctiontypes.ErrInvalidCatalog))
			})
		})
	})

	Describe("LoadFile", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "catalog")
			Ω(err).ShouldNot(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(dir)
		})

		write := func(name, content string) string {
			path := filepath.Join(dir, name)
			Ω(os.WriteFile(path, []byte(content), 0644)).Should(Succeed())
			return path
		}

		It("loads a bare item array", func() {
			path := write("array.json", `[
				{"name": "chalice", "quality": 80, "is_required": true},
				{"name": "rubber-duck", "quality": 0, "is_required": false}
			]`)

			cat, err := catalog.LoadFile(path, 1)
			Ω(err).ShouldNot(HaveOccurred())
			Ω(cat.Len()).Should(Equal(2))
			Ω(cat.RequiredCount()).Should(Equal(1))
		})

		It("loads an object with an items key", func() {
			path := write("wrapped.json", `{"items": [
				{"name": "chalice", "quality": 80, "is_required": true}
			]}`)

			cat, err := catalog.LoadFile(path, 1)
			Ω(err).ShouldNot(HaveOccurred())
			Ω(cat.Len()).Should(Equal(1))
		})

		It("tolerates capitalized keys", func() {
			path := write("caps.json", `[
				{"Name": "chalice", "Quality": 80, "IsRequired": true}
			]`)

			cat, err := catalog.LoadFile(path, 1)
			Ω(err).ShouldNot(HaveOccurred())

			item := cat.ItemsInAuctionOrder()[0]
			Ω(item.Name).Should(Equal("chalice"))
			Ω(item.Quality).Should(Equal(80))
			Ω(item.IsRequired).Should(BeTrue())
		})

		It("rejects anything that is not an array or items object", func() {
			path := write("bogus.json", `{"stuff": 12}`)
			_, err := catalog.LoadFile(path, 0)
			Ω(err).Should(MatchError(auctiontypes.ErrInvalidCatalog))
		})

		It("fails when the file does not exist", func() {
			_, err := catalog.LoadFile(filepath.Join(dir, "missing.json"), 0)
			Ω(err).Should(HaveOccurred())
		})
	})
})
