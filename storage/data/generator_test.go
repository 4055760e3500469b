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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator(t *testing.T) {
	g := NewGenerator(42)
	items := g.Items(50)
	assert.Len(t, items, 50)
	for _, item := range items {
		assert.NotEmpty(t, item.ItemId)
		assert.NotEmpty(t, item.Flavors)
		assert.NotEmpty(t, item.Ingredients)
		assert.Greater(t, item.Price, 0.0)
		assert.NotEmpty(t, item.FeatureString())
	}

	customers := g.Customers(20)
	assert.Len(t, customers, 20)
	for _, customer := range customers {
		assert.GreaterOrEqual(t, customer.Age, 18)
		assert.LessOrEqual(t, customer.Age, 70)
		assert.GreaterOrEqual(t, customer.PriceSensitivity, 0.2)
		assert.LessOrEqual(t, customer.PriceSensitivity, 1.0)
	}

	ratings := g.Ratings(customers, items, 0.1)
	assert.NotEmpty(t, ratings)
	for _, rating := range ratings {
		assert.GreaterOrEqual(t, rating.Rating, 1.0)
		assert.LessOrEqual(t, rating.Rating, 5.0)
	}
}

func TestGeneratorDeterminism(t *testing.T) {
	a := NewGenerator(1).Items(10)
	b := NewGenerator(1).Items(10)
	assert.Equal(t, a, b)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"cay", "ngọt"}, SplitTags("cay, ngọt"))
	assert.Empty(t, SplitTags(""))
	assert.Equal(t, "cay, ngọt", JoinTags([]string{"cay", "ngọt"}))
}
