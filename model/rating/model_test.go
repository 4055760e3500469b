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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/savora-io/savora/dataset"
	"github.com/savora-io/savora/storage/data"
)

// newTrainSet builds a small two-taste world: even customers love spicy
// items and hate sweet items, odd customers the other way around.
func newTrainSet(t *testing.T) *dataset.Dataset {
	t.Helper()
	var items []data.Item
	for i := 0; i < 10; i++ {
		items = append(items, data.Item{ItemId: fmt.Sprintf("item%d", i)})
	}
	var customers []data.Customer
	var ratings []data.Rating
	for c := 0; c < 20; c++ {
		customerId := fmt.Sprintf("customer%d", c)
		customers = append(customers, data.Customer{CustomerId: customerId})
		for i := 0; i < 10; i++ {
			var score float64
			if (c+i)%2 == 0 {
				score = 5
			} else {
				score = 1
			}
			ratings = append(ratings, data.Rating{
				CustomerId: customerId,
				ItemId:     fmt.Sprintf("item%d", i),
				Rating:     score,
			})
		}
	}
	return dataset.Build(time.Now(), items, customers, ratings)
}

func baselineMSE(trainSet *dataset.Dataset) float32 {
	var sum float32
	var count float32
	mean := trainSet.GlobalMean()
	for _, ratings := range trainSet.GetCustomerRatings() {
		for _, rating := range ratings {
			diff := rating.Rating - mean
			sum += diff * diff
			count++
		}
	}
	return sum / count
}

func TestSVDFit(t *testing.T) {
	trainSet := newTrainSet(t)
	svd := NewSVD(Params{
		NFactors:    10,
		NEpochs:     100,
		Lr:          0.05,
		Reg:         0.01,
		RandomState: 42,
	})
	svd.Fit(trainSet, NewFitConfig().SetVerbose(0))
	rmse, mae := Evaluate(svd, trainSet)
	assert.Less(t, rmse*rmse, baselineMSE(trainSet))
	assert.Greater(t, mae, float32(0))
	// a loved combination predicts higher than a hated one
	assert.Greater(t, svd.Predict("customer0", "item0"), svd.Predict("customer0", "item1"))
}

func TestSVDUnknownEntities(t *testing.T) {
	trainSet := newTrainSet(t)
	svd := NewSVD(Params{NFactors: 4, NEpochs: 10, RandomState: 0})
	svd.Fit(trainSet, NewFitConfig().SetVerbose(0))
	// unknown entities fall back to the learned baseline
	assert.InDelta(t, trainSet.GlobalMean(), svd.Predict("nobody", "nothing"), 1e-3)
	// an unfitted model predicts zero
	unfitted := NewSVD(nil)
	assert.Zero(t, unfitted.Predict("customer0", "item0"))
}

func TestSVDDeterminism(t *testing.T) {
	trainSet := newTrainSet(t)
	params := Params{NFactors: 8, NEpochs: 20, RandomState: 7}
	a := NewSVD(params)
	a.Fit(trainSet, NewFitConfig().SetVerbose(0))
	b := NewSVD(params)
	b.Fit(trainSet, NewFitConfig().SetVerbose(0))
	assert.Equal(t, a.Predict("customer1", "item3"), b.Predict("customer1", "item3"))
}

func TestKNNFit(t *testing.T) {
	trainSet := newTrainSet(t)
	knn := NewKNN(Params{K: 5})
	knn.Fit(trainSet, NewFitConfig().SetVerbose(0))
	// customer0 agrees with customer2 and disagrees with customer1
	assert.Greater(t, knn.Predict("customer0", "item0"), knn.Predict("customer0", "item1"))
	rmse, _ := Evaluate(knn, trainSet)
	assert.Less(t, rmse*rmse, baselineMSE(trainSet))
}

func TestKNNUnknownEntities(t *testing.T) {
	trainSet := newTrainSet(t)
	knn := NewKNN(nil)
	knn.Fit(trainSet, nil)
	assert.Equal(t, trainSet.GlobalMean(), knn.Predict("nobody", "item0"))
	assert.Equal(t, trainSet.GlobalMean(), knn.Predict("customer0", "nothing"))
	unfitted := NewKNN(nil)
	assert.Zero(t, unfitted.Predict("customer0", "item0"))
}

func TestEvaluateEmpty(t *testing.T) {
	empty := dataset.Build(time.Now(), nil, nil, nil)
	svd := NewSVD(nil)
	svd.Fit(empty, NewFitConfig().SetVerbose(0))
	rmse, mae := Evaluate(svd, empty)
	assert.Zero(t, rmse)
	assert.Zero(t, mae)
}

func TestParams(t *testing.T) {
	params := Params{NFactors: 10, Lr: 0.1, RandomState: 3}
	assert.Equal(t, 10, params.GetInt(NFactors, 0))
	assert.Equal(t, int64(3), params.GetInt64(RandomState, 0))
	assert.Equal(t, float32(0.1), params.GetFloat32(Lr, 0))
	assert.Equal(t, 40, params.GetInt(K, 40))
	copied := params.Copy()
	copied[NFactors] = 20
	assert.Equal(t, 10, params.GetInt(NFactors, 0))
}
