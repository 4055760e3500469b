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

package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalVector(t *testing.T) {
	rng := NewRandomGenerator(0)
	vector := rng.NormalVector(1000, 1, 2)
	assert.Len(t, vector, 1000)
	var sum float32
	for _, v := range vector {
		sum += v
	}
	assert.InDelta(t, 1.0, sum/1000, 0.2)
}

func TestNormalMatrix(t *testing.T) {
	rng := NewRandomGenerator(0)
	matrix := rng.NormalMatrix(10, 20, 0, 0.1)
	assert.Len(t, matrix, 10)
	assert.Len(t, matrix[0], 20)
}

func TestDeterminism(t *testing.T) {
	a := NewRandomGenerator(42).NormalVector(10, 0, 1)
	b := NewRandomGenerator(42).NormalVector(10, 0, 1)
	assert.Equal(t, a, b)
}
