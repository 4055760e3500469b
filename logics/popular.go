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

import "github.com/savora-io/savora/storage/data"

// DefaultMinSupport is the minimum number of ratings an item needs before its
// mean is trusted for popularity ranking.
const DefaultMinSupport = 5

// MostPopular ranks items by mean rating, excluding items with fewer than
// minSupport ratings. It is a stateless aggregate over the rating snapshot,
// used as the fallback whenever personalized scoring has no evidence.
func MostPopular(ratings []data.Rating, minSupport, n int) []Score {
	if minSupport <= 0 {
		minSupport = DefaultMinSupport
	}
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rating := range ratings {
		sums[rating.ItemId] += rating.Rating
		counts[rating.ItemId]++
	}
	scores := make([]Score, 0, len(sums))
	for itemId, count := range counts {
		if count < minSupport {
			continue
		}
		scores = append(scores, Score{
			ItemId: itemId,
			Type:   ScorePlain,
			Value:  sums[itemId] / float64(count),
		})
	}
	sortScores(scores)
	return head(scores, n)
}
