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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/savora-io/savora/model/rating"
	"github.com/savora-io/savora/storage/data"
)

func newFittedHybrid(t *testing.T) *Hybrid {
	t.Helper()
	items := []data.Item{
		{ItemId: "A", Flavors: []string{"cay", "ngon"}},
		{ItemId: "B", Flavors: []string{"cay", "ngon"}},
		{ItemId: "C", Flavors: []string{"ngot"}},
		{ItemId: "D", Flavors: []string{"ngot", "beo"}},
	}
	ratings := []data.Rating{
		{CustomerId: "cust1", ItemId: "A", Rating: 5},
		{CustomerId: "cust1", ItemId: "C", Rating: 2},
		{CustomerId: "cust2", ItemId: "A", Rating: 4},
		{CustomerId: "cust2", ItemId: "B", Rating: 5},
		{CustomerId: "cust2", ItemId: "D", Rating: 1},
	}
	hybrid := NewHybrid(NewContent(),
		NewCollaborative(rating.NewSVD(rating.Params{rating.RandomState: 1})), 0, 0)
	assert.NoError(t, hybrid.Fit(items, ratings))
	return hybrid
}

func TestHybridFitEmptyCatalog(t *testing.T) {
	hybrid := NewHybrid(NewContent(), NewCollaborative(nil), 0, 0)
	assert.Error(t, hybrid.Fit(nil, nil))
}

func TestHybridNoAnchor(t *testing.T) {
	hybrid := newFittedHybrid(t)
	result := hybrid.Recommend("cust1", "", "", 2)
	assert.Equal(t, []Source{SourceCollaborative}, result.Sources)
	assert.LessOrEqual(t, len(result.Scores), 2)
	for _, score := range result.Scores {
		assert.Equal(t, ScoreHybrid, score.Type)
		assert.GreaterOrEqual(t, score.Value, 0.0)
		assert.LessOrEqual(t, score.Value, 5.0)
		// already rated items are excluded
		assert.NotContains(t, []string{"A", "C"}, score.ItemId)
	}
}

func TestHybridSeedAnchor(t *testing.T) {
	hybrid := newFittedHybrid(t)
	result := hybrid.Recommend("cust1", "A", "", 3)
	assert.Equal(t, []Source{SourceContent, SourceCollaborative}, result.Sources)
	assert.NotEmpty(t, result.Scores)
	for _, score := range result.Scores {
		assert.Equal(t, ScoreHybrid, score.Type)
		assert.NotEqual(t, "A", score.ItemId)
		assert.GreaterOrEqual(t, score.Value, 0.0)
		assert.LessOrEqual(t, score.Value, 5.0)
	}
	// deterministic under the fixed tie-break
	assert.Equal(t, result, hybrid.Recommend("cust1", "A", "", 3))
}

func TestHybridTextAnchor(t *testing.T) {
	hybrid := newFittedHybrid(t)
	result := hybrid.Recommend("cust1", "", "cay ngon", 3)
	assert.Equal(t, []Source{SourceContent, SourceCollaborative}, result.Sources)
	assert.NotEmpty(t, result.Scores)
}

func TestHybridSingleSourceContent(t *testing.T) {
	hybrid := newFittedHybrid(t)
	// unknown customer: collaborative is empty, content carries the result
	result := hybrid.Recommend("nobody", "A", "", 2)
	assert.Equal(t, []Source{SourceContent}, result.Sources)
	assert.Equal(t, "B", result.Scores[0].ItemId)
	// the top similarity normalizes to exactly 5
	assert.InDelta(t, 5.0, result.Scores[0].Value, 1e-9)
}

func TestHybridNoEvidence(t *testing.T) {
	hybrid := newFittedHybrid(t)
	result := hybrid.Recommend("nobody", "unknown", "", 5)
	assert.Empty(t, result.Scores)
	assert.Empty(t, result.Sources)
}

func TestFuse(t *testing.T) {
	contentScores := []Score{
		{ItemId: "P", Value: 4.0},
		{ItemId: "Q", Value: 5.0},
	}
	collabScores := []Score{
		{ItemId: "P", Value: 2.0},
	}
	fused := fuse(contentScores, collabScores, 0.4, 0.6)
	assert.Equal(t, []string{"P", "Q"}, itemIds(fused))
	// dual-source item sums both weighted contributions
	assert.InDelta(t, 0.4*4.0+0.6*2.0, fused[0].Value, 1e-9)
	// single-source item keeps its weighted score alone
	assert.InDelta(t, 0.4*5.0, fused[1].Value, 1e-9)
}

func TestFuseTieBreak(t *testing.T) {
	fused := fuse(
		[]Score{{ItemId: "b", Value: 1}, {ItemId: "a", Value: 1}},
		nil, 1.0, 1.0)
	assert.Equal(t, []string{"a", "b"}, itemIds(fused))
}

func TestNormalize(t *testing.T) {
	scores := []Score{{ItemId: "a", Value: 2}, {ItemId: "b", Value: 4}}
	normalize(scores)
	assert.Equal(t, 2.5, scores[0].Value)
	assert.Equal(t, 5.0, scores[1].Value)
	// non-positive maximum leaves raw scores unchanged
	zeros := []Score{{ItemId: "a", Value: 0}, {ItemId: "b", Value: 0}}
	normalize(zeros)
	assert.Zero(t, zeros[0].Value)
	assert.Zero(t, zeros[1].Value)
}

func TestSafely(t *testing.T) {
	hybrid := newFittedHybrid(t)
	scores := hybrid.safely(SourceCollaborative, func() []Score {
		panic("model blew up")
	})
	assert.Empty(t, scores)
}
