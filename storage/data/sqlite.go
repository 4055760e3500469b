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
	"database/sql"
	"time"

	"github.com/juju/errors"
	_ "modernc.org/sqlite"
)

// SQLite implements Database on a local SQLite file.
type SQLite struct {
	client *sql.DB
}

func openSQLite(name string) (*SQLite, error) {
	client, err := sql.Open("sqlite", name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &SQLite{client: client}, nil
}

// Init creates tables if they do not exist.
func (db *SQLite) Init() error {
	if _, err := db.client.Exec(`CREATE TABLE IF NOT EXISTS items (
		item_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		cuisine TEXT,
		flavors TEXT,
		ingredients TEXT,
		price REAL
	)`); err != nil {
		return errors.Trace(err)
	}
	if _, err := db.client.Exec(`CREATE TABLE IF NOT EXISTS customers (
		customer_id TEXT PRIMARY KEY,
		name TEXT,
		age INTEGER,
		gender TEXT,
		preferred_cuisines TEXT,
		preferred_flavors TEXT,
		price_sensitivity REAL
	)`); err != nil {
		return errors.Trace(err)
	}
	if _, err := db.client.Exec(`CREATE TABLE IF NOT EXISTS ratings (
		customer_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		rating REAL NOT NULL,
		timestamp DATETIME,
		PRIMARY KEY (customer_id, item_id)
	)`); err != nil {
		return errors.Trace(err)
	}
	return nil
}

func (db *SQLite) Close() error {
	return db.client.Close()
}

// Purge removes all rows from all tables.
func (db *SQLite) Purge() error {
	for _, table := range []string{"items", "customers", "ratings"} {
		if _, err := db.client.Exec("DELETE FROM " + table); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func (db *SQLite) BatchInsertItems(ctx context.Context, items []Item) error {
	tx, err := db.client.BeginTx(ctx, nil)
	if err != nil {
		return errors.Trace(err)
	}
	defer func() { _ = tx.Rollback() }()
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO items
		(item_id, name, category, cuisine, flavors, ingredients, price)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Trace(err)
	}
	defer stmt.Close()
	for _, item := range items {
		if _, err = stmt.ExecContext(ctx, item.ItemId, item.Name, item.Category, item.Cuisine,
			JoinTags(item.Flavors), JoinTags(item.Ingredients), item.Price); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(tx.Commit())
}

func (db *SQLite) GetItems(ctx context.Context) ([]Item, error) {
	rows, err := db.client.QueryContext(ctx, `SELECT item_id, name, category, cuisine,
		flavors, ingredients, price FROM items ORDER BY item_id`)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var item Item
		var flavors, ingredients string
		if err = rows.Scan(&item.ItemId, &item.Name, &item.Category, &item.Cuisine,
			&flavors, &ingredients, &item.Price); err != nil {
			return nil, errors.Trace(err)
		}
		item.Flavors = SplitTags(flavors)
		item.Ingredients = SplitTags(ingredients)
		items = append(items, item)
	}
	return items, errors.Trace(rows.Err())
}

func (db *SQLite) BatchInsertCustomers(ctx context.Context, customers []Customer) error {
	tx, err := db.client.BeginTx(ctx, nil)
	if err != nil {
		return errors.Trace(err)
	}
	defer func() { _ = tx.Rollback() }()
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO customers
		(customer_id, name, age, gender, preferred_cuisines, preferred_flavors, price_sensitivity)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Trace(err)
	}
	defer stmt.Close()
	for _, customer := range customers {
		if _, err = stmt.ExecContext(ctx, customer.CustomerId, customer.Name, customer.Age, customer.Gender,
			JoinTags(customer.PreferredCuisines), JoinTags(customer.PreferredFlavors), customer.PriceSensitivity); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(tx.Commit())
}

func (db *SQLite) GetCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := db.client.QueryContext(ctx, `SELECT customer_id, name, age, gender,
		preferred_cuisines, preferred_flavors, price_sensitivity FROM customers ORDER BY customer_id`)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()
	var customers []Customer
	for rows.Next() {
		var customer Customer
		var cuisines, flavors string
		if err = rows.Scan(&customer.CustomerId, &customer.Name, &customer.Age, &customer.Gender,
			&cuisines, &flavors, &customer.PriceSensitivity); err != nil {
			return nil, errors.Trace(err)
		}
		customer.PreferredCuisines = SplitTags(cuisines)
		customer.PreferredFlavors = SplitTags(flavors)
		customers = append(customers, customer)
	}
	return customers, errors.Trace(rows.Err())
}

func (db *SQLite) UpsertRating(ctx context.Context, rating Rating) error {
	timestamp := rating.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	_, err := db.client.ExecContext(ctx, `INSERT OR REPLACE INTO ratings
		(customer_id, item_id, rating, timestamp) VALUES (?, ?, ?, ?)`,
		rating.CustomerId, rating.ItemId, rating.Rating, timestamp)
	return errors.Trace(err)
}

func (db *SQLite) GetRatings(ctx context.Context) ([]Rating, error) {
	rows, err := db.client.QueryContext(ctx, `SELECT customer_id, item_id, rating, timestamp
		FROM ratings ORDER BY customer_id, item_id`)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()
	return scanRatings(rows)
}

func (db *SQLite) GetCustomerRatings(ctx context.Context, customerId string) ([]Rating, error) {
	rows, err := db.client.QueryContext(ctx, `SELECT customer_id, item_id, rating, timestamp
		FROM ratings WHERE customer_id = ? ORDER BY rating DESC, item_id`, customerId)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()
	return scanRatings(rows)
}

func scanRatings(rows *sql.Rows) ([]Rating, error) {
	var ratings []Rating
	for rows.Next() {
		var rating Rating
		if err := rows.Scan(&rating.CustomerId, &rating.ItemId, &rating.Rating, &rating.Timestamp); err != nil {
			return nil, errors.Trace(err)
		}
		ratings = append(ratings, rating)
	}
	return ratings, errors.Trace(rows.Err())
}
