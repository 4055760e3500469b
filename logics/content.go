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
	"sort"
	"time"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/savora-io/savora/base/log"
	"github.com/savora-io/savora/common/tfidf"
	"github.com/savora-io/savora/storage/data"
)

// ErrEmptyCatalog is returned when Fit is called without items.
var ErrEmptyCatalog = errors.New("empty item catalog")

// Content scores items by the similarity of their feature strings. Fit builds
// a TF-IDF vector space over the catalog and the full pairwise cosine matrix;
// queries are read-only lookups against that state.
type Content struct {
	vectorizer *tfidf.Vectorizer
	vectors    []tfidf.Vector
	similarity [][]float32
	items      []data.Item
	itemIndex  map[string]int
	timestamp  time.Time
}

func NewContent() *Content {
	return &Content{vectorizer: tfidf.NewVectorizer()}
}

// Fit builds the similarity index from a catalog snapshot. The snapshot is
// copied, so later mutation by the caller does not affect fitted state.
func (c *Content) Fit(items []data.Item) error {
	if len(items) == 0 {
		return errors.Trace(ErrEmptyCatalog)
	}
	start := time.Now()
	c.items = make([]data.Item, len(items))
	copy(c.items, items)
	c.itemIndex = make(map[string]int, len(items))
	for i, item := range c.items {
		c.itemIndex[item.ItemId] = i
	}
	documents := lo.Map(c.items, func(item data.Item, _ int) string {
		return item.FeatureString()
	})
	c.vectors = c.vectorizer.Fit(documents)
	c.similarity = make([][]float32, len(c.vectors))
	for i := range c.vectors {
		c.similarity[i] = make([]float32, len(c.vectors))
		c.similarity[i][i] = 1
	}
	for i := range c.vectors {
		for j := i + 1; j < len(c.vectors); j++ {
			sim := c.vectors[i].Dot(c.vectors[j])
			c.similarity[i][j] = sim
			c.similarity[j][i] = sim
		}
	}
	c.timestamp = time.Now()
	log.Logger().Info("fit content scorer",
		zap.Int("n_items", len(c.items)),
		zap.Int("n_terms", c.vectorizer.VocabularySize()),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// Items returns the fitted catalog snapshot.
func (c *Content) Items() []data.Item {
	return c.items
}

// Recommend returns up to n items most similar to the seed item, never
// including the seed itself. An unknown seed yields an empty result.
func (c *Content) Recommend(seedItemId string, n int) []Score {
	seed, ok := c.itemIndex[seedItemId]
	if !ok {
		return nil
	}
	scores := make([]Score, 0, len(c.items)-1)
	for i, item := range c.items {
		if i == seed {
			continue
		}
		scores = append(scores, Score{
			ItemId: item.ItemId,
			Type:   ScoreSimilarity,
			Value:  float64(c.similarity[seed][i]),
		})
	}
	// stable keeps catalog insertion order between equal similarities
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Value > scores[j].Value
	})
	return head(scores, n)
}

// RecommendByText projects free text into the fitted vector space and returns
// up to n items by descending similarity. Terms unseen during fit are
// ignored; ties keep catalog insertion order.
func (c *Content) RecommendByText(text string, n int) []Score {
	if len(c.vectors) == 0 {
		return nil
	}
	query := c.vectorizer.Transform(text)
	scores := make([]Score, 0, len(c.items))
	for i, item := range c.items {
		scores = append(scores, Score{
			ItemId: item.ItemId,
			Type:   ScoreSimilarity,
			Value:  float64(query.Dot(c.vectors[i])),
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Value > scores[j].Value
	})
	return head(scores, n)
}
