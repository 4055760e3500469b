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
	"context"
	"sync"
	"time"

	"github.com/juju/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/savora-io/savora/base/log"
	"github.com/savora-io/savora/config"
	"github.com/savora-io/savora/logics"
	"github.com/savora-io/savora/storage/data"
)

// engine owns the fitted recommendation engine. Queries read through an
// atomic pointer, so a fit in progress is never observed mid-update: a fresh
// instance is fitted aside and swapped in only after fit completes.
// Concurrent fits are serialized.
type engine struct {
	fitMutex sync.Mutex
	current  atomic.Pointer[logics.Hybrid]
}

// Engine returns the fitted engine, or nil before the first successful fit.
func (e *engine) Engine() *logics.Hybrid {
	return e.current.Load()
}

// Fit loads snapshots from the database, fits a fresh engine and publishes
// it. On failure the previously published engine stays in place.
func (e *engine) Fit(ctx context.Context, dataClient data.Database, cfg *config.Config) error {
	e.fitMutex.Lock()
	defer e.fitMutex.Unlock()
	start := time.Now()
	items, err := dataClient.GetItems(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	ratings, err := dataClient.GetRatings(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	next := logics.NewHybrid(
		logics.NewContent(),
		logics.NewCollaborative(cfg.Recommend.Collaborative.NewModel()),
		cfg.Recommend.ContentWeight,
		cfg.Recommend.CollaborativeWeight)
	if err = next.Fit(items, ratings); err != nil {
		return errors.Trace(err)
	}
	e.current.Store(next)
	log.Logger().Info("fit recommendation engine",
		zap.Int("n_items", len(items)),
		zap.Int("n_ratings", len(ratings)),
		zap.Duration("duration", time.Since(start)))
	return nil
}
