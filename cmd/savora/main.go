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

package main

import (
	"context"
	_ "net/http/pprof"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/savora-io/savora/base/log"
	"github.com/savora-io/savora/config"
	"github.com/savora-io/savora/server"
	"github.com/savora-io/savora/storage/data"
)

var rootCommand = &cobra.Command{
	Use:   "savora",
	Short: "The savora menu recommender system.",
}

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the RESTful API server.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		dataClient, err := data.Open(cfg.Database.DataStore)
		if err != nil {
			log.Logger().Fatal("failed to open database", zap.Error(err))
		}
		if err = dataClient.Init(); err != nil {
			log.Logger().Fatal("failed to init database", zap.Error(err))
		}
		s := server.NewRestServer(dataClient, cfg)
		// fit from whatever data already exists; an empty database is fine,
		// the server starts without a fitted engine
		if err = s.Fit(context.Background(), dataClient, cfg); err != nil {
			log.Logger().Warn("engine not fitted yet", zap.Error(err))
		}
		s.StartHttpServer()
	},
}

var initCommand = &cobra.Command{
	Use:   "init",
	Short: "Create database tables and optionally seed synthetic data.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		dataClient, err := data.Open(cfg.Database.DataStore)
		if err != nil {
			log.Logger().Fatal("failed to open database", zap.Error(err))
		}
		defer dataClient.Close()
		if err = dataClient.Init(); err != nil {
			log.Logger().Fatal("failed to init database", zap.Error(err))
		}
		numItems, _ := cmd.Flags().GetInt("items")
		numCustomers, _ := cmd.Flags().GetInt("customers")
		if numItems <= 0 || numCustomers <= 0 {
			log.Logger().Info("database initialized")
			return
		}
		seed, _ := cmd.Flags().GetInt64("seed")
		sparsity, _ := cmd.Flags().GetFloat64("sparsity")
		generator := data.NewGenerator(seed)
		items := generator.Items(numItems)
		customers := generator.Customers(numCustomers)
		ratings := generator.Ratings(customers, items, sparsity)
		ctx := context.Background()
		if err = dataClient.BatchInsertItems(ctx, items); err != nil {
			log.Logger().Fatal("failed to insert items", zap.Error(err))
		}
		if err = dataClient.BatchInsertCustomers(ctx, customers); err != nil {
			log.Logger().Fatal("failed to insert customers", zap.Error(err))
		}
		for _, rating := range ratings {
			if err = dataClient.UpsertRating(ctx, rating); err != nil {
				log.Logger().Fatal("failed to insert rating", zap.Error(err))
			}
		}
		log.Logger().Info("database seeded",
			zap.Int("n_items", len(items)),
			zap.Int("n_customers", len(customers)),
			zap.Int("n_ratings", len(ratings)))
	},
}

func loadConfig(cmd *cobra.Command) *config.Config {
	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		log.SetDevelopmentLogger()
	}
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		return config.GetDefaultConfig()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Logger().Fatal("failed to load config", zap.Error(err))
	}
	return cfg
}

func init() {
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	initCommand.Flags().Int("items", 0, "number of synthetic items to seed")
	initCommand.Flags().Int("customers", 0, "number of synthetic customers to seed")
	initCommand.Flags().Float64("sparsity", 0.3, "fraction of the rating matrix to fill")
	initCommand.Flags().Int64("seed", 42, "seed of the synthetic data generator")
	rootCommand.AddCommand(serveCommand, initCommand)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
