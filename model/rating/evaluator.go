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
	"github.com/chewxy/math32"
	"github.com/savora-io/savora/dataset"
)

// Evaluate computes RMSE and MAE of a fitted model over a test set. The test
// set may index entities differently from the train set, so predictions go
// through string identifiers.
func Evaluate(model Model, testSet *dataset.Dataset) (rmse, mae float32) {
	var count float32
	customerDict := testSet.GetCustomerDict()
	itemDict := testSet.GetItemDict()
	for customerIndex, ratings := range testSet.GetCustomerRatings() {
		customerId, _ := customerDict.String(int32(customerIndex))
		for _, rating := range ratings {
			itemId, _ := itemDict.String(rating.Index)
			diff := model.Predict(customerId, itemId) - rating.Rating
			rmse += diff * diff
			mae += math32.Abs(diff)
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return math32.Sqrt(rmse / count), mae / count
}
