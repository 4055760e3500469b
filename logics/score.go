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

// Package logics implements the recommendation engine: a content scorer over
// item feature text, a collaborative scorer over the rating matrix, a hybrid
// engine fusing both, and a non-personalized popularity ranking.
package logics

import "sort"

// ScoreType tags which strategy produced a score, so callers dispatch on the
// tag instead of guessing from the value's scale.
type ScoreType string

const (
	// ScoreSimilarity is a cosine similarity in [0, 1].
	ScoreSimilarity ScoreType = "similarity_score"
	// ScorePredicted is an estimated rating, not guaranteed to lie in [1, 5].
	ScorePredicted ScoreType = "predicted_rating"
	// ScoreHybrid is a fused score in [0, 5].
	ScoreHybrid ScoreType = "hybrid_score"
	// ScorePlain carries no personalized evidence, e.g. a popularity mean.
	ScorePlain ScoreType = "plain"
)

// Score is one ranked item.
type Score struct {
	ItemId string
	Type   ScoreType
	Value  float64
}

// Source names a score source contributing to a fused result.
type Source string

const (
	SourceContent       Source = "content"
	SourceCollaborative Source = "collaborative"
)

// Result is a ranked item list together with the sources that contributed to
// it. An empty Scores slice means "no evidence"; callers fall back to
// MostPopular, they never retry.
type Result struct {
	Scores  []Score
	Sources []Source
}

// sortScores orders scores by descending value, breaking ties by ascending
// item identifier.
func sortScores(scores []Score) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Value != scores[j].Value {
			return scores[i].Value > scores[j].Value
		}
		return scores[i].ItemId < scores[j].ItemId
	})
}

// head truncates scores to at most n entries.
func head(scores []Score, n int) []Score {
	if len(scores) > n {
		return scores[:n]
	}
	return scores
}
