package catalog

import (
	"fmt"
	"math/rand/v2"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/slug"
)

type syntheticCategory struct {
	name   string
	weight float64
	nouns  []string
	brands []string
	// price range in cents
	minPrice, maxPrice int64
}

var syntheticCategories = []syntheticCategory{
	{"Home", 0.20, []string{"Lamp", "Clock", "Rug", "Vase", "Shelf", "Armchair"}, []string{"TimeCraft", "FurniturePro", "ComfortLux", "Nordhaus"}, 1499, 79999},
	{"Electronics", 0.25, []string{"Speaker", "Monitor", "Keyboard", "Router", "Tablet", "Earbuds"}, []string{"TechPro", "AudioMax", "MobileTech", "CoolAir"}, 1999, 149999},
	{"Fashion", 0.35, []string{"Jacket", "Kurta", "Sneakers", "Scarf", "Jeans", "Hoodie"}, []string{"StyleWear", "EthnicWear", "SportFlex", "OfficeWear"}, 799, 19999},
	{"Essentials", 0.20, []string{"Bottle", "Umbrella", "Lunchbox", "Towel", "Mug"}, []string{"HydratePro", "TravelGear", "DailyCo"}, 299, 4999},
}

var syntheticAdjectives = []string{"Classic", "Compact", "Premium", "Everyday", "Eco", "Deluxe", "Urban", "Vintage"}

// Synthetic generates n products for load testing. The same seed always
// yields the same catalog; ids are gen-00001, gen-00002 and so on.
func Synthetic(n int, seed uint64) []domain.Product {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]domain.Product, 0, max(n, 0))

	for i := 1; i <= n; i++ {
		cat := pickCategory(rng.Float64())
		adj := syntheticAdjectives[rng.IntN(len(syntheticAdjectives))]
		noun := cat.nouns[rng.IntN(len(cat.nouns))]
		brand := cat.brands[rng.IntN(len(cat.brands))]

		id := fmt.Sprintf("gen-%05d", i)
		name := adj + " " + noun
		price := cat.minPrice + rng.Int64N(cat.maxPrice-cat.minPrice+1)
		// round to x99 cents the way shelf prices usually are
		price = price/100*100 + 99

		out = append(out, domain.Product{
			ID:          id,
			Name:        name,
			Slug:        slug.Generate(name + " " + id),
			Price:       price,
			ImageURL:    "/images/" + slug.Generate(noun) + ".jpg",
			Brand:       brand,
			Category:    cat.name,
			Rating:      float64(30+rng.IntN(21)) / 10,
			Details:     fmt.Sprintf("%s %s by %s.", adj, noun, brand),
			Description: fmt.Sprintf("%s %s from %s, part of our %s range.", adj, noun, brand, cat.name),
		})
	}
	return out
}

func pickCategory(r float64) syntheticCategory {
	for _, c := range syntheticCategories {
		if r < c.weight {
			return c
		}
		r -= c.weight
	}
	return syntheticCategories[len(syntheticCategories)-1]
}
