// Copyright 2025 savora Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/samber/lo"
)

var (
	categories = []string{"Món chính", "Món khai vị", "Món tráng miệng", "Đồ uống", "Món đặc biệt"}
	cuisines   = []string{"Việt Nam", "Trung Hoa", "Nhật Bản", "Ý", "Pháp", "Ấn Độ", "Thái Lan", "Hàn Quốc"}
	flavors    = []string{"cay", "ngọt", "mặn", "chua", "đắng", "béo", "thơm"}
	components = []string{"thịt bò", "thịt gà", "thịt heo", "hải sản", "rau củ", "gạo", "mì", "nấm", "đậu", "trứng"}
)

// Generator produces a coherent sample dataset: a menu catalog, customers
// with cuisine and flavor preferences, and preference-biased ratings.
type Generator struct {
	faker      faker.Faker
	rng        *rand.Rand
	popularity map[string]float64
}

// NewGenerator creates a generator with a fixed seed for reproducible output.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		faker:      faker.NewWithSeed(rand.NewSource(seed)),
		rng:        rand.New(rand.NewSource(seed)),
		popularity: make(map[string]float64),
	}
}

// Items generates n menu items.
func (g *Generator) Items(n int) []Item {
	items := make([]Item, 0, n)
	for i := 1; i <= n; i++ {
		category := g.choice(categories)
		cuisine := g.choice(cuisines)
		item := Item{
			ItemId:      fmt.Sprintf("food-%d", i),
			Name:        fmt.Sprintf("Món %s #%d", cuisine, i),
			Category:    category,
			Cuisine:     cuisine,
			Flavors:     g.sample(flavors, g.faker.IntBetween(1, 3)),
			Ingredients: g.sample(components, g.faker.IntBetween(1, 4)),
			Price:       float64(g.faker.IntBetween(2, 30)) * 10000,
		}
		items = append(items, item)
		// popularity drives the base rating later
		g.popularity[item.ItemId] = g.uniform(2.5, 5.0)
	}
	return items
}

// Customers generates n customers with random preferences.
func (g *Generator) Customers(n int) []Customer {
	customers := make([]Customer, 0, n)
	for i := 1; i <= n; i++ {
		customers = append(customers, Customer{
			CustomerId:        fmt.Sprintf("customer-%d", i),
			Name:              g.faker.Person().Name(),
			Age:               g.faker.IntBetween(18, 70),
			Gender:            g.choice([]string{"Nam", "Nữ", "Khác"}),
			PreferredCuisines: g.sample(cuisines, g.faker.IntBetween(1, 3)),
			PreferredFlavors:  g.sample(flavors, g.faker.IntBetween(1, 4)),
			PriceSensitivity:  g.uniform(0.2, 1.0),
		})
	}
	return customers
}

// Ratings generates ratings with the given sparsity. A customer rates a
// random subset of the catalog; ratings are biased towards preferred
// cuisines and flavors and against expensive items for price-sensitive
// customers.
func (g *Generator) Ratings(customers []Customer, items []Item, sparsity float64) []Rating {
	var ratings []Rating
	now := time.Now()
	for _, customer := range customers {
		count := int(float64(len(items)) * sparsity * g.uniform(0.5, 1.5))
		count = min(max(count, 1), len(items))
		for _, index := range g.rng.Perm(len(items))[:count] {
			item := items[index]
			score := g.popularity[item.ItemId] * g.uniform(0.7, 1.3)
			if len(lo.Intersect(customer.PreferredFlavors, item.Flavors)) > 0 {
				score += g.uniform(0.2, 0.8)
			}
			if lo.Contains(customer.PreferredCuisines, item.Cuisine) {
				score += g.uniform(0.2, 0.8)
			}
			if item.Price > 150000 && customer.PriceSensitivity < 0.5 {
				score -= g.uniform(0.2, 0.8)
			}
			ratings = append(ratings, Rating{
				CustomerId: customer.CustomerId,
				ItemId:     item.ItemId,
				Rating:     min(5.0, max(1.0, score)),
				Timestamp:  now.AddDate(0, 0, -g.faker.IntBetween(1, 180)),
			})
		}
	}
	return ratings
}

func (g *Generator) choice(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *Generator) sample(values []string, n int) []string {
	perm := g.rng.Perm(len(values))
	picked := make([]string, 0, n)
	for _, index := range perm[:min(n, len(values))] {
		picked = append(picked, values[index])
	}
	return picked
}

func (g *Generator) uniform(low, high float64) float64 {
	return low + g.rng.Float64()*(high-low)
}
