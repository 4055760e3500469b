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

package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/viper"

	"github.com/savora-io/savora/model/rating"
)

// Config is the configuration for the recommender service.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Server    ServerConfig    `mapstructure:"server"`
	Recommend RecommendConfig `mapstructure:"recommend"`
}

type DatabaseConfig struct {
	// path to the data store, e.g. sqlite://savora.db
	DataStore string `mapstructure:"data_store" validate:"required"`
}

type ServerConfig struct {
	HttpHost string `mapstructure:"http_host"`
	HttpPort int    `mapstructure:"http_port" validate:"gte=0,lte=65535"`
	// default number of returned recommendations
	DefaultN int `mapstructure:"default_n" validate:"gt=0"`
}

type RecommendConfig struct {
	ContentWeight       float64             `mapstructure:"content_weight" validate:"gt=0"`
	CollaborativeWeight float64             `mapstructure:"collaborative_weight" validate:"gt=0"`
	MinSupport          int                 `mapstructure:"min_support" validate:"gt=0"`
	Collaborative       CollaborativeConfig `mapstructure:"collaborative"`
}

type CollaborativeConfig struct {
	Model       string  `mapstructure:"model" validate:"oneof=svd knn"`
	NFactors    int     `mapstructure:"n_factors" validate:"gt=0"`
	NEpochs     int     `mapstructure:"n_epochs" validate:"gt=0"`
	Lr          float64 `mapstructure:"lr" validate:"gt=0"`
	Reg         float64 `mapstructure:"reg" validate:"gte=0"`
	RandomState int64   `mapstructure:"random_state"`
	K           int     `mapstructure:"k" validate:"gt=0"`
}

// GetDefaultConfig returns a configuration with default values.
func GetDefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DataStore: "sqlite://savora.db",
		},
		Server: ServerConfig{
			HttpHost: "127.0.0.1",
			HttpPort: 8087,
			DefaultN: 10,
		},
		Recommend: RecommendConfig{
			ContentWeight:       0.4,
			CollaborativeWeight: 0.6,
			MinSupport:          5,
			Collaborative: CollaborativeConfig{
				Model:       "svd",
				NFactors:    100,
				NEpochs:     20,
				Lr:          0.005,
				Reg:         0.02,
				RandomState: 0,
				K:           40,
			},
		},
	}
}

// NewModel builds the configured rating model.
func (c *CollaborativeConfig) NewModel() rating.Model {
	params := rating.Params{
		rating.NFactors:    c.NFactors,
		rating.NEpochs:     c.NEpochs,
		rating.Lr:          float32(c.Lr),
		rating.Reg:         float32(c.Reg),
		rating.RandomState: c.RandomState,
		rating.K:           c.K,
	}
	if c.Model == "knn" {
		return rating.NewKNN(params)
	}
	return rating.NewSVD(params)
}

func (config *Config) Validate() error {
	return errors.Trace(validator.New().Struct(config))
}

func setDefault() {
	defaultConfig := GetDefaultConfig()
	viper.SetDefault("database.data_store", defaultConfig.Database.DataStore)
	viper.SetDefault("server.http_host", defaultConfig.Server.HttpHost)
	viper.SetDefault("server.http_port", defaultConfig.Server.HttpPort)
	viper.SetDefault("server.default_n", defaultConfig.Server.DefaultN)
	viper.SetDefault("recommend.content_weight", defaultConfig.Recommend.ContentWeight)
	viper.SetDefault("recommend.collaborative_weight", defaultConfig.Recommend.CollaborativeWeight)
	viper.SetDefault("recommend.min_support", defaultConfig.Recommend.MinSupport)
	viper.SetDefault("recommend.collaborative.model", defaultConfig.Recommend.Collaborative.Model)
	viper.SetDefault("recommend.collaborative.n_factors", defaultConfig.Recommend.Collaborative.NFactors)
	viper.SetDefault("recommend.collaborative.n_epochs", defaultConfig.Recommend.Collaborative.NEpochs)
	viper.SetDefault("recommend.collaborative.lr", defaultConfig.Recommend.Collaborative.Lr)
	viper.SetDefault("recommend.collaborative.reg", defaultConfig.Recommend.Collaborative.Reg)
	viper.SetDefault("recommend.collaborative.random_state", defaultConfig.Recommend.Collaborative.RandomState)
	viper.SetDefault("recommend.collaborative.k", defaultConfig.Recommend.Collaborative.K)
}

// LoadConfig loads configuration from a TOML file. Environment variables
// prefixed with SAVORA_ override file values.
func LoadConfig(path string) (*Config, error) {
	setDefault()
	viper.SetConfigType("toml")
	viper.SetConfigFile(path)
	viper.SetEnvPrefix("savora")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.Trace(err)
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &config, nil
}
