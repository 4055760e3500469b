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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SQLiteTestSuite struct {
	suite.Suite
	Database
}

func (suite *SQLiteTestSuite) SetupSuite() {
	var err error
	suite.Database, err = Open(fmt.Sprintf("sqlite://%s/data.db", suite.T().TempDir()))
	suite.NoError(err)
	suite.NoError(suite.Database.Init())
}

func (suite *SQLiteTestSuite) TearDownSuite() {
	suite.NoError(suite.Database.Close())
}

func (suite *SQLiteTestSuite) SetupTest() {
	suite.NoError(suite.Database.Purge())
}

func (suite *SQLiteTestSuite) TestItems() {
	ctx := context.Background()
	items := []Item{
		{ItemId: "1", Name: "Phở bò", Category: "Món chính", Cuisine: "Việt Nam",
			Flavors: []string{"mặn", "thơm"}, Ingredients: []string{"thịt bò", "mì"}, Price: 50000},
		{ItemId: "2", Name: "Trà sữa", Category: "Đồ uống", Cuisine: "Việt Nam",
			Flavors: []string{"ngọt"}, Ingredients: []string{"đậu"}, Price: 30000},
	}
	suite.NoError(suite.Database.BatchInsertItems(ctx, items))
	returned, err := suite.Database.GetItems(ctx)
	suite.NoError(err)
	suite.Equal(items, returned)
	// insert again replaces
	suite.NoError(suite.Database.BatchInsertItems(ctx, items[:1]))
	returned, err = suite.Database.GetItems(ctx)
	suite.NoError(err)
	suite.Len(returned, 2)
}

func (suite *SQLiteTestSuite) TestCustomers() {
	ctx := context.Background()
	customers := []Customer{
		{CustomerId: "1", Name: "An", Age: 30, Gender: "Nam",
			PreferredCuisines: []string{"Việt Nam"}, PreferredFlavors: []string{"cay"}, PriceSensitivity: 0.5},
	}
	suite.NoError(suite.Database.BatchInsertCustomers(ctx, customers))
	returned, err := suite.Database.GetCustomers(ctx)
	suite.NoError(err)
	suite.Equal(customers, returned)
}

func (suite *SQLiteTestSuite) TestRatingUpsert() {
	ctx := context.Background()
	suite.NoError(suite.Database.UpsertRating(ctx, Rating{CustomerId: "1", ItemId: "10", Rating: 3}))
	suite.NoError(suite.Database.UpsertRating(ctx, Rating{CustomerId: "1", ItemId: "11", Rating: 4}))
	// the later rating supersedes the earlier one
	suite.NoError(suite.Database.UpsertRating(ctx, Rating{CustomerId: "1", ItemId: "10", Rating: 5}))
	ratings, err := suite.Database.GetRatings(ctx)
	suite.NoError(err)
	suite.Len(ratings, 2)
	suite.Equal(5.0, ratings[0].Rating)

	history, err := suite.Database.GetCustomerRatings(ctx, "1")
	suite.NoError(err)
	suite.Len(history, 2)
	suite.Equal("10", history[0].ItemId)
	history, err = suite.Database.GetCustomerRatings(ctx, "unknown")
	suite.NoError(err)
	suite.Empty(history)
}

func TestSQLite(t *testing.T) {
	suite.Run(t, new(SQLiteTestSuite))
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open("mysql://root@localhost/savora")
	assert.Error(t, err)
}
