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
	"github.com/savora-io/savora/base/log"
	"github.com/savora-io/savora/common/floats"
	"github.com/savora-io/savora/dataset"
	"go.uber.org/zap"
)

// SVD is biased matrix factorization fit by stochastic gradient descent.
// The prediction is
//
//	\hat{r}_{ci} = mu + b_c + b_i + q_i^T p_c
//
// minimizing regularized squared error over observed ratings. Unknown
// customers or items fall back to the terms that remain.
type SVD struct {
	BaseModel
	CustomerDict   *dataset.FreqDict
	ItemDict       *dataset.FreqDict
	CustomerFactor [][]float32 // p_c
	ItemFactor     [][]float32 // q_i
	CustomerBias   []float32   // b_c
	ItemBias       []float32   // b_i
	GlobalMean     float32     // mu
	// Hyper-parameters
	nFactors   int
	nEpochs    int
	lr         float32
	reg        float32
	initMean   float32
	initStdDev float32
}

// NewSVD creates an SVD model with the given hyper-parameters.
func NewSVD(params Params) *SVD {
	svd := new(SVD)
	svd.SetParams(params)
	return svd
}

func (svd *SVD) SetParams(params Params) {
	svd.BaseModel.SetParams(params)
	svd.nFactors = svd.Params.GetInt(NFactors, 100)
	svd.nEpochs = svd.Params.GetInt(NEpochs, 20)
	svd.lr = svd.Params.GetFloat32(Lr, 0.005)
	svd.reg = svd.Params.GetFloat32(Reg, 0.02)
	svd.initMean = svd.Params.GetFloat32(InitMean, 0)
	svd.initStdDev = svd.Params.GetFloat32(InitStdDev, 0.1)
}

func (svd *SVD) Clear() {
	svd.CustomerDict = nil
	svd.ItemDict = nil
	svd.CustomerFactor = nil
	svd.ItemFactor = nil
	svd.CustomerBias = nil
	svd.ItemBias = nil
	svd.GlobalMean = 0
}

func (svd *SVD) Fit(trainSet *dataset.Dataset, config *FitConfig) {
	config = config.LoadDefaultIfNil()
	svd.Clear()
	svd.CustomerDict = trainSet.GetCustomerDict()
	svd.ItemDict = trainSet.GetItemDict()
	svd.GlobalMean = trainSet.GlobalMean()
	customerCount := trainSet.CountCustomers()
	itemCount := trainSet.CountItems()
	svd.CustomerBias = make([]float32, customerCount)
	svd.ItemBias = make([]float32, itemCount)
	svd.CustomerFactor = svd.rng.NormalMatrix(customerCount, svd.nFactors, svd.initMean, svd.initStdDev)
	svd.ItemFactor = svd.rng.NormalMatrix(itemCount, svd.nFactors, svd.initMean, svd.initStdDev)
	// Stochastic gradient descent
	buffer := make([]float32, svd.nFactors)
	for epoch := 1; epoch <= svd.nEpochs; epoch++ {
		var cost float32
		for customerIndex, ratings := range trainSet.GetCustomerRatings() {
			for _, rating := range ratings {
				itemIndex := rating.Index
				customerFactor := svd.CustomerFactor[customerIndex]
				itemFactor := svd.ItemFactor[itemIndex]
				prediction := svd.GlobalMean + svd.CustomerBias[customerIndex] + svd.ItemBias[itemIndex] +
					floats.Dot(customerFactor, itemFactor)
				diff := rating.Rating - prediction
				cost += diff * diff
				// update biases
				svd.CustomerBias[customerIndex] += svd.lr * (diff - svd.reg*svd.CustomerBias[customerIndex])
				svd.ItemBias[itemIndex] += svd.lr * (diff - svd.reg*svd.ItemBias[itemIndex])
				// update latent factors
				copy(buffer, customerFactor)
				floats.MulConstAdd(itemFactor, svd.lr*diff, customerFactor)
				floats.MulConstAdd(buffer, -svd.lr*svd.reg, customerFactor)
				floats.MulConstAdd(buffer, svd.lr*diff, itemFactor)
				floats.MulConstAdd(itemFactor, -svd.lr*svd.reg, itemFactor)
			}
		}
		if config.Verbose > 0 && epoch%config.Verbose == 0 {
			log.Logger().Info("fit svd",
				zap.Int("epoch", epoch),
				zap.Int("n_epochs", svd.nEpochs),
				zap.Float32("cost", cost))
		}
	}
}

func (svd *SVD) Predict(customerId, itemId string) float32 {
	if svd.CustomerDict == nil || svd.ItemDict == nil {
		return 0
	}
	customerIndex, customerFound := svd.CustomerDict.Lookup(customerId)
	itemIndex, itemFound := svd.ItemDict.Lookup(itemId)
	if !customerFound {
		customerIndex = -1
	}
	if !itemFound {
		itemIndex = -1
	}
	return svd.InternalPredict(customerIndex, itemIndex)
}

func (svd *SVD) InternalPredict(customerIndex, itemIndex int32) float32 {
	prediction := svd.GlobalMean
	if customerIndex >= 0 && int(customerIndex) < len(svd.CustomerBias) {
		prediction += svd.CustomerBias[customerIndex]
	}
	if itemIndex >= 0 && int(itemIndex) < len(svd.ItemBias) {
		prediction += svd.ItemBias[itemIndex]
	}
	if customerIndex >= 0 && itemIndex >= 0 &&
		int(customerIndex) < len(svd.CustomerFactor) && int(itemIndex) < len(svd.ItemFactor) {
		prediction += floats.Dot(svd.CustomerFactor[customerIndex], svd.ItemFactor[itemIndex])
	}
	return prediction
}
