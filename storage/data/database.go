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

package data

import (
	"context"
	"strings"

	"github.com/juju/errors"
)

const sqlitePrefix = "sqlite://"

// Database stores the menu catalog, the customers and the rating matrix. The
// engine never talks to a Database directly; snapshots are loaded before fit.
type Database interface {
	Init() error
	Close() error
	Purge() error
	BatchInsertItems(ctx context.Context, items []Item) error
	GetItems(ctx context.Context) ([]Item, error)
	BatchInsertCustomers(ctx context.Context, customers []Customer) error
	GetCustomers(ctx context.Context) ([]Customer, error)
	// UpsertRating inserts a rating. A rating for an existing
	// (customer, item) pair replaces the previous one.
	UpsertRating(ctx context.Context, rating Rating) error
	GetRatings(ctx context.Context) ([]Rating, error)
	GetCustomerRatings(ctx context.Context, customerId string) ([]Rating, error)
}

// Open a database specified by the path. Only "sqlite://" paths are
// supported.
func Open(path string) (Database, error) {
	if strings.HasPrefix(path, sqlitePrefix) {
		name := path[len(sqlitePrefix):]
		return openSQLite(name)
	}
	return nil, errors.NotSupportedf("database %s", path)
}
