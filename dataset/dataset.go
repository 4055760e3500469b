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

package dataset

import (
	"time"

	"github.com/savora-io/savora/base/log"
	"github.com/savora-io/savora/storage/data"
	"go.uber.org/zap"
)

// IndexedRating is a rating against the opposite side of the matrix,
// addressed by dense index.
type IndexedRating struct {
	Index  int32
	Rating float32
}

// Dataset is an immutable snapshot of the catalog and the rating matrix,
// re-indexed to dense indices. It is built once before fit and shared for
// concurrent reads afterwards.
type Dataset struct {
	timestamp       time.Time
	items           []data.Item
	customers       []data.Customer
	itemDict        *FreqDict
	customerDict    *FreqDict
	customerRatings [][]IndexedRating
	itemRatings     [][]IndexedRating
	ratingSum       float64
	ratingCount     int
}

func NewDataset(timestamp time.Time, itemCount, customerCount int) *Dataset {
	return &Dataset{
		timestamp:       timestamp,
		items:           make([]data.Item, 0, itemCount),
		customers:       make([]data.Customer, 0, customerCount),
		itemDict:        NewFreqDict(),
		customerDict:    NewFreqDict(),
		customerRatings: make([][]IndexedRating, 0, customerCount),
		itemRatings:     make([][]IndexedRating, 0, itemCount),
	}
}

// Build creates a dataset from complete snapshots. Ratings referencing items
// outside the catalog are dropped with a warning.
func Build(timestamp time.Time, items []data.Item, customers []data.Customer, ratings []data.Rating) *Dataset {
	d := NewDataset(timestamp, len(items), len(customers))
	for _, item := range items {
		d.AddItem(item)
	}
	for _, customer := range customers {
		d.AddCustomer(customer)
	}
	for _, rating := range ratings {
		d.AddRating(rating.CustomerId, rating.ItemId, rating.Rating)
	}
	return d
}

func (d *Dataset) GetTimestamp() time.Time {
	return d.timestamp
}

func (d *Dataset) GetItems() []data.Item {
	return d.items
}

func (d *Dataset) CountItems() int {
	return len(d.items)
}

func (d *Dataset) GetCustomers() []data.Customer {
	return d.customers
}

func (d *Dataset) CountCustomers() int {
	return len(d.customers)
}

func (d *Dataset) GetItemDict() *FreqDict {
	return d.itemDict
}

func (d *Dataset) GetCustomerDict() *FreqDict {
	return d.customerDict
}

// GetCustomerRatings returns the ratings of each customer keyed by item
// index.
func (d *Dataset) GetCustomerRatings() [][]IndexedRating {
	return d.customerRatings
}

// GetItemRatings returns the ratings of each item keyed by customer index.
func (d *Dataset) GetItemRatings() [][]IndexedRating {
	return d.itemRatings
}

func (d *Dataset) CountRatings() int {
	return d.ratingCount
}

// GlobalMean returns the mean of all ratings, or zero for an empty matrix.
func (d *Dataset) GlobalMean() float32 {
	if d.ratingCount == 0 {
		return 0
	}
	return float32(d.ratingSum / float64(d.ratingCount))
}

func (d *Dataset) AddItem(item data.Item) {
	index := d.itemDict.NotCount(item.ItemId)
	if int(index) < len(d.items) {
		// replace on duplicate identifier
		d.items[index] = item
		return
	}
	d.items = append(d.items, item)
	d.itemRatings = append(d.itemRatings, nil)
}

func (d *Dataset) AddCustomer(customer data.Customer) {
	index := d.customerDict.NotCount(customer.CustomerId)
	if int(index) < len(d.customers) {
		d.customers[index] = customer
		return
	}
	d.customers = append(d.customers, customer)
	d.customerRatings = append(d.customerRatings, nil)
}

// AddRating records a rating. The item must already exist in the catalog;
// unknown customers are registered on the fly since the rating matrix is the
// only source of customer identifiers the models need.
func (d *Dataset) AddRating(customerId, itemId string, rating float64) {
	itemIndex, ok := d.itemDict.Lookup(itemId)
	if !ok {
		log.Logger().Warn("rating references unknown item",
			zap.String("customer_id", customerId), zap.String("item_id", itemId))
		return
	}
	customerIndex := d.customerDict.NotCount(customerId)
	if int(customerIndex) >= len(d.customerRatings) {
		d.customers = append(d.customers, data.Customer{CustomerId: customerId})
		d.customerRatings = append(d.customerRatings, nil)
	}
	d.customerRatings[customerIndex] = append(d.customerRatings[customerIndex],
		IndexedRating{Index: itemIndex, Rating: float32(rating)})
	d.itemRatings[itemIndex] = append(d.itemRatings[itemIndex],
		IndexedRating{Index: customerIndex, Rating: float32(rating)})
	d.ratingSum += rating
	d.ratingCount++
}
