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
	"strings"
	"time"

	"github.com/samber/lo"
)

// Item is a menu item. Items are immutable inside the engine for the
// duration of a fit cycle.
type Item struct {
	ItemId      string
	Name        string
	Category    string
	Cuisine     string
	Flavors     []string
	Ingredients []string
	Price       float64
}

// FeatureString concatenates category, cuisine, flavor tags and ingredient
// tags into the document used for text indexing.
func (item *Item) FeatureString() string {
	fields := make([]string, 0, 2+len(item.Flavors)+len(item.Ingredients))
	fields = append(fields, item.Category, item.Cuisine)
	fields = append(fields, item.Flavors...)
	fields = append(fields, item.Ingredients...)
	return strings.Join(lo.Filter(fields, func(s string, _ int) bool {
		return s != ""
	}), " ")
}

// Customer is read-only to the engine. Preference attributes are consumed by
// the presentation layer for post filtering.
type Customer struct {
	CustomerId        string
	Name              string
	Age               int
	Gender            string
	PreferredCuisines []string
	PreferredFlavors  []string
	PriceSensitivity  float64
}

// Rating is a customer's score for an item, in [1, 5]. A later rating for the
// same (customer, item) pair supersedes the earlier one; the store enforces
// upsert semantics, not the engine.
type Rating struct {
	CustomerId string
	ItemId     string
	Rating     float64
	Timestamp  time.Time
}

// SplitTags splits a comma-separated tag string into trimmed tags.
func SplitTags(s string) []string {
	if s == "" {
		return nil
	}
	tags := strings.Split(s, ",")
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}
	return lo.Filter(tags, func(tag string, _ int) bool {
		return tag != ""
	})
}

// JoinTags joins tags into the comma-separated form stored in the database.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
