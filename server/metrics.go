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

package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "savora",
		Subsystem: "server",
		Name:      "fit_seconds",
	})
	HybridRecommendSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "savora",
		Subsystem: "server",
		Name:      "hybrid_recommend_seconds",
	})
	ContentRecommendSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "savora",
		Subsystem: "server",
		Name:      "content_recommend_seconds",
	})
	CollaborativeRecommendSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "savora",
		Subsystem: "server",
		Name:      "collaborative_recommend_seconds",
	})
	PopularSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "savora",
		Subsystem: "server",
		Name:      "popular_seconds",
	})
)

// MeasureTime observes the elapsed time since start.
func MeasureTime(histogram prometheus.Histogram, start time.Time) {
	histogram.Observe(time.Since(start).Seconds())
}
