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
	"go.uber.org/zap"

	"github.com/savora-io/savora/base/log"
	"github.com/savora-io/savora/storage/data"
)

const (
	DefaultContentWeight       = 0.4
	DefaultCollaborativeWeight = 0.6
)

// Hybrid fuses content and collaborative scores into one ranked list. Each
// non-empty source is rescaled to a common 0-5 range, weighted, and summed
// over the union of items, so an item endorsed by both sources outranks one
// endorsed by a single source. Weights are caller tuning knobs; their sum is
// not enforced.
type Hybrid struct {
	content             *Content
	collaborative       *Collaborative
	contentWeight       float64
	collaborativeWeight float64
}

// NewHybrid wires the two scorers together. Non-positive weights fall back to
// the defaults.
func NewHybrid(content *Content, collaborative *Collaborative, contentWeight, collaborativeWeight float64) *Hybrid {
	if contentWeight <= 0 {
		contentWeight = DefaultContentWeight
	}
	if collaborativeWeight <= 0 {
		collaborativeWeight = DefaultCollaborativeWeight
	}
	return &Hybrid{
		content:             content,
		collaborative:       collaborative,
		contentWeight:       contentWeight,
		collaborativeWeight: collaborativeWeight,
	}
}

// Fit trains both scorers from the same snapshots. A fit must complete before
// the instance is published for queries; refitting live instances is not
// supported, callers fit a fresh instance and swap it in.
func (h *Hybrid) Fit(items []data.Item, ratings []data.Rating) error {
	if err := h.content.Fit(items); err != nil {
		return err
	}
	h.collaborative.Fit(items, ratings)
	return nil
}

// Content exposes the fitted content scorer.
func (h *Hybrid) Content() *Content {
	return h.content
}

// Collaborative exposes the fitted collaborative scorer.
func (h *Hybrid) Collaborative() *Collaborative {
	return h.collaborative
}

// Recommend produces up to n items for a customer. A seed item anchors the
// content side; failing that, free text does; with no anchor only the
// collaborative side contributes. An empty result means neither source had
// evidence and the caller falls back to popularity.
func (h *Hybrid) Recommend(customerId, seedItemId, text string, n int) Result {
	// over-fetch to leave room for exclusion and de-duplication
	collabScores := h.safely(SourceCollaborative, func() []Score {
		return h.collaborative.RecommendForCustomer(customerId, n*2)
	})
	var contentScores []Score
	anchored := seedItemId != "" || text != ""
	if seedItemId != "" {
		contentScores = h.safely(SourceContent, func() []Score {
			return h.content.Recommend(seedItemId, n*2)
		})
	} else if text != "" {
		contentScores = h.safely(SourceContent, func() []Score {
			return h.content.RecommendByText(text, n*2)
		})
	}
	if !anchored && len(collabScores) > 0 {
		return Result{
			Scores:  head(clamp(retag(collabScores)), n),
			Sources: []Source{SourceCollaborative},
		}
	}
	if len(contentScores) == 0 && len(collabScores) == 0 {
		return Result{}
	}
	normalize(contentScores)
	normalize(collabScores)
	if len(collabScores) == 0 {
		return Result{Scores: head(retag(contentScores), n), Sources: []Source{SourceContent}}
	}
	if len(contentScores) == 0 {
		return Result{Scores: head(retag(collabScores), n), Sources: []Source{SourceCollaborative}}
	}
	return Result{
		Scores:  head(fuse(contentScores, collabScores, h.contentWeight, h.collaborativeWeight), n),
		Sources: []Source{SourceContent, SourceCollaborative},
	}
}

// fuse sums weighted scores over the union of both sources. An item present
// in both sources accumulates both contributions.
func fuse(contentScores, collabScores []Score, contentWeight, collaborativeWeight float64) []Score {
	fused := make(map[string]float64, len(contentScores)+len(collabScores))
	for _, score := range contentScores {
		fused[score.ItemId] += score.Value * contentWeight
	}
	for _, score := range collabScores {
		fused[score.ItemId] += score.Value * collaborativeWeight
	}
	scores := make([]Score, 0, len(fused))
	for itemId, value := range fused {
		scores = append(scores, Score{ItemId: itemId, Type: ScoreHybrid, Value: value})
	}
	sortScores(scores)
	return scores
}

// safely runs one scorer and converts a panic into an empty contribution, so
// fusion proceeds with whatever sources remain.
func (h *Hybrid) safely(source Source, f func() []Score) (scores []Score) {
	defer func() {
		if r := recover(); r != nil {
			log.Logger().Error("scorer failed, dropping its contribution",
				zap.String("source", string(source)),
				zap.Any("panic", r))
			scores = nil
		}
	}()
	return f()
}

// normalize rescales scores to [0, 5] in place. A non-positive maximum keeps
// the raw scores unchanged.
func normalize(scores []Score) {
	var max float64
	for _, score := range scores {
		if score.Value > max {
			max = score.Value
		}
	}
	if max <= 0 {
		return
	}
	for i := range scores {
		scores[i].Value = scores[i].Value / max * 5
	}
}

func retag(scores []Score) []Score {
	tagged := make([]Score, len(scores))
	for i, score := range scores {
		tagged[i] = Score{ItemId: score.ItemId, Type: ScoreHybrid, Value: score.Value}
	}
	return tagged
}

// clamp bounds values to [0, 5] for the direct collaborative path, whose raw
// predictions are unbounded.
func clamp(scores []Score) []Score {
	for i := range scores {
		if scores[i].Value < 0 {
			scores[i].Value = 0
		} else if scores[i].Value > 5 {
			scores[i].Value = 5
		}
	}
	return scores
}
