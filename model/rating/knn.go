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

package rating

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/savora-io/savora/base/heap"
	"github.com/savora-io/savora/dataset"
)

// KNN is a neighborhood model. The prediction for (customer, item) is the
// similarity-weighted mean of the ratings given to the item by the
// customer's k most similar raters, falling back to the global mean when no
// neighbor rated the item.
type KNN struct {
	BaseModel
	CustomerDict *dataset.FreqDict
	ItemDict     *dataset.FreqDict
	GlobalMean   float32

	customerRatings [][]dataset.IndexedRating // sorted by item index
	itemRatings     [][]dataset.IndexedRating
	norms           []float32
	k               int
}

// NewKNN creates a KNN model with the given hyper-parameters.
func NewKNN(params Params) *KNN {
	knn := new(KNN)
	knn.SetParams(params)
	return knn
}

func (knn *KNN) SetParams(params Params) {
	knn.BaseModel.SetParams(params)
	knn.k = knn.Params.GetInt(K, 40)
}

func (knn *KNN) Clear() {
	knn.CustomerDict = nil
	knn.ItemDict = nil
	knn.customerRatings = nil
	knn.itemRatings = nil
	knn.norms = nil
	knn.GlobalMean = 0
}

func (knn *KNN) Fit(trainSet *dataset.Dataset, config *FitConfig) {
	_ = config.LoadDefaultIfNil()
	knn.Clear()
	knn.CustomerDict = trainSet.GetCustomerDict()
	knn.ItemDict = trainSet.GetItemDict()
	knn.GlobalMean = trainSet.GlobalMean()
	knn.itemRatings = trainSet.GetItemRatings()
	// sort each customer's ratings by item index for sparse dot products
	knn.customerRatings = make([][]dataset.IndexedRating, trainSet.CountCustomers())
	knn.norms = make([]float32, trainSet.CountCustomers())
	for customerIndex, ratings := range trainSet.GetCustomerRatings() {
		sorted := make([]dataset.IndexedRating, len(ratings))
		copy(sorted, ratings)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Index < sorted[j].Index
		})
		knn.customerRatings[customerIndex] = sorted
		var norm float32
		for _, rating := range sorted {
			norm += rating.Rating * rating.Rating
		}
		knn.norms[customerIndex] = math32.Sqrt(norm)
	}
}

// similarity is the cosine between two customers' rating vectors.
func (knn *KNN) similarity(a, b int32) float32 {
	if knn.norms[a] == 0 || knn.norms[b] == 0 {
		return 0
	}
	var sum float32
	x, y := knn.customerRatings[a], knn.customerRatings[b]
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		switch {
		case x[i].Index == y[j].Index:
			sum += x[i].Rating * y[j].Rating
			i++
			j++
		case x[i].Index < y[j].Index:
			i++
		default:
			j++
		}
	}
	return sum / knn.norms[a] / knn.norms[b]
}

func (knn *KNN) Predict(customerId, itemId string) float32 {
	if knn.CustomerDict == nil || knn.ItemDict == nil {
		return 0
	}
	customerIndex, customerFound := knn.CustomerDict.Lookup(customerId)
	itemIndex, itemFound := knn.ItemDict.Lookup(itemId)
	if !customerFound {
		customerIndex = -1
	}
	if !itemFound {
		itemIndex = -1
	}
	return knn.InternalPredict(customerIndex, itemIndex)
}

func (knn *KNN) InternalPredict(customerIndex, itemIndex int32) float32 {
	if customerIndex < 0 || itemIndex < 0 || int(itemIndex) >= len(knn.itemRatings) {
		return knn.GlobalMean
	}
	// rank raters of this item by similarity to the customer
	neighbors := heap.NewTopKFilter[dataset.IndexedRating, float32](knn.k)
	for _, rater := range knn.itemRatings[itemIndex] {
		if rater.Index == customerIndex {
			continue
		}
		if sim := knn.similarity(customerIndex, rater.Index); sim > 0 {
			neighbors.Push(rater, sim)
		}
	}
	raters, similarities := neighbors.PopAll()
	var weightedSum, weight float32
	for i, rater := range raters {
		weightedSum += similarities[i] * rater.Rating
		weight += similarities[i]
	}
	if weight == 0 {
		return knn.GlobalMean
	}
	return weightedSum / weight
}
