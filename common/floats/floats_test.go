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

package floats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	a := []float32{1, 2, 3}
	Zero(a)
	assert.Equal(t, []float32{0, 0, 0}, a)
}

func TestMulConst(t *testing.T) {
	a := []float32{1, 2, 3}
	MulConst(a, 2)
	assert.Equal(t, []float32{2, 4, 6}, a)
}

func TestMulConstTo(t *testing.T) {
	a := []float32{1, 2, 3}
	dst := make([]float32, 3)
	MulConstTo(a, 3, dst)
	assert.Equal(t, []float32{3, 6, 9}, dst)
	assert.Panics(t, func() { MulConstTo(a, 3, make([]float32, 2)) })
}

func TestMulConstAdd(t *testing.T) {
	a := []float32{1, 2, 3}
	dst := []float32{1, 1, 1}
	MulConstAdd(a, 2, dst)
	assert.Equal(t, []float32{3, 5, 7}, dst)
	assert.Panics(t, func() { MulConstAdd(a, 2, make([]float32, 2)) })
}

func TestAddTo(t *testing.T) {
	dst := make([]float32, 3)
	AddTo([]float32{1, 2, 3}, []float32{4, 5, 6}, dst)
	assert.Equal(t, []float32{5, 7, 9}, dst)
	assert.Panics(t, func() { AddTo([]float32{1}, []float32{1, 2}, dst) })
}

func TestDot(t *testing.T) {
	assert.Equal(t, float32(32), Dot([]float32{1, 2, 3}, []float32{4, 5, 6}))
	assert.Panics(t, func() { Dot([]float32{1}, []float32{1, 2}) })
}

func TestNorm(t *testing.T) {
	assert.InDelta(t, 5.0, Norm([]float32{3, 4}), 1e-6)
}
