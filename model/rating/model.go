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

// Package rating implements models predicting the rating a customer would
// give to an item. Estimates are real numbers, not guaranteed to lie in
// [1, 5]; callers requiring bounded scores must clamp.
package rating

import (
	"github.com/savora-io/savora/base"
	"github.com/savora-io/savora/dataset"
)

type FitConfig struct {
	Verbose int
}

func NewFitConfig() *FitConfig {
	return &FitConfig{Verbose: 10}
}

func (config *FitConfig) SetVerbose(verbose int) *FitConfig {
	config.Verbose = verbose
	return config
}

func (config *FitConfig) LoadDefaultIfNil() *FitConfig {
	if config == nil {
		return NewFitConfig()
	}
	return config
}

// Model is the interface for rating prediction models. The model choice is
// pluggable behind the Predict contract.
type Model interface {
	SetParams(params Params)
	GetParams() Params
	// Fit the model with a train set. Fitting replaces any previous state.
	Fit(trainSet *dataset.Dataset, config *FitConfig)
	// Predict the rating given by a customer to an item. Unknown customers
	// or items contribute nothing beyond the learned baseline.
	Predict(customerId, itemId string) float32
	// InternalPredict predicts a rating by dense indices. Negative indices
	// denote unknown entities.
	InternalPredict(customerIndex, itemIndex int32) float32
	// Clear model weights.
	Clear()
}

// BaseModel is embedded by every rating model. Hyper-parameters and the
// random generator are managed here.
type BaseModel struct {
	Params Params
	rng    base.RandomGenerator
}

func (model *BaseModel) SetParams(params Params) {
	model.Params = params
	model.rng = base.NewRandomGenerator(params.GetInt64(RandomState, 0))
}

func (model *BaseModel) GetParams() Params {
	return model.Params
}
