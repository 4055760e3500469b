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

package logics

import (
	"time"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	"github.com/savora-io/savora/base/log"
	"github.com/savora-io/savora/dataset"
	"github.com/savora-io/savora/model/rating"
	"github.com/savora-io/savora/storage/data"
)

// Collaborative scores items by predicted rating from a model fit over the
// customer-item rating matrix. The model choice is pluggable behind the
// rating.Model contract.
type Collaborative struct {
	model    rating.Model
	trainSet *dataset.Dataset
}

// NewCollaborative wraps a rating model. A nil model defaults to SVD with
// default hyper-parameters.
func NewCollaborative(model rating.Model) *Collaborative {
	if model == nil {
		model = rating.NewSVD(nil)
	}
	return &Collaborative{model: model}
}

// Fit trains the model from catalog and rating snapshots. Customers are
// registered from the ratings themselves. An empty rating store is not an
// error; every later query just returns no evidence.
func (c *Collaborative) Fit(items []data.Item, ratings []data.Rating) {
	start := time.Now()
	c.trainSet = dataset.Build(time.Now(), items, nil, ratings)
	c.model.Fit(c.trainSet, rating.NewFitConfig().SetVerbose(10))
	log.Logger().Info("fit collaborative scorer",
		zap.Int("n_customers", c.trainSet.CountCustomers()),
		zap.Int("n_items", c.trainSet.CountItems()),
		zap.Int("n_ratings", c.trainSet.CountRatings()),
		zap.Duration("duration", time.Since(start)))
}

// Predict estimates the rating a customer would give to an item.
func (c *Collaborative) Predict(customerId, itemId string) float32 {
	if c.trainSet == nil {
		return 0
	}
	return c.model.Predict(customerId, itemId)
}

// RecommendForCustomer predicts a rating for every item the customer has not
// rated yet and returns the n best, ties broken by ascending item identifier.
// Unknown customers and customers without history get an empty result.
func (c *Collaborative) RecommendForCustomer(customerId string, n int) []Score {
	if c.trainSet == nil {
		return nil
	}
	customerIndex, found := c.trainSet.GetCustomerDict().Lookup(customerId)
	if !found {
		return nil
	}
	history := c.trainSet.GetCustomerRatings()[customerIndex]
	if len(history) == 0 {
		return nil
	}
	rated := bitset.New(uint(c.trainSet.CountItems()))
	for _, r := range history {
		rated.Set(uint(r.Index))
	}
	var scores []Score
	for _, item := range c.trainSet.GetItems() {
		itemIndex, _ := c.trainSet.GetItemDict().Lookup(item.ItemId)
		if rated.Test(uint(itemIndex)) {
			continue
		}
		scores = append(scores, Score{
			ItemId: item.ItemId,
			Type:   ScorePredicted,
			Value:  float64(c.model.InternalPredict(customerIndex, itemIndex)),
		})
	}
	sortScores(scores)
	return head(scores, n)
}
