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
	"fmt"
	"net/http"
	"strconv"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/savora-io/savora/base/log"
	"github.com/savora-io/savora/config"
	"github.com/savora-io/savora/logics"
	"github.com/savora-io/savora/storage/data"
)

// RestServer implements the RESTful API server.
type RestServer struct {
	engine

	DataClient data.Database
	Config     *config.Config
	HttpHost   string
	HttpPort   int
	WebService *restful.WebService
}

// NewRestServer creates a server on top of an opened database.
func NewRestServer(dataClient data.Database, cfg *config.Config) *RestServer {
	return &RestServer{
		DataClient: dataClient,
		Config:     cfg,
		HttpHost:   cfg.Server.HttpHost,
		HttpPort:   cfg.Server.HttpPort,
		WebService: new(restful.WebService),
	}
}

// StartHttpServer starts the RESTful API server.
func (s *RestServer) StartHttpServer() {
	s.CreateWebService()
	restful.DefaultContainer.Add(s.WebService)
	// register swagger UI
	specConfig := restfulspec.Config{
		WebServices: restful.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
	}
	restful.DefaultContainer.Add(restfulspec.NewOpenAPIService(specConfig))
	// register prometheus
	http.Handle("/metrics", promhttp.Handler())

	log.Logger().Info("start http server",
		zap.String("url", fmt.Sprintf("http://%s:%d", s.HttpHost, s.HttpPort)))
	log.Logger().Fatal("failed to start http server",
		zap.Error(http.ListenAndServe(fmt.Sprintf("%s:%d", s.HttpHost, s.HttpPort), nil)))
}

func LogFilter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	chain.ProcessFilter(req, resp)
	log.Logger().Info(fmt.Sprintf("%s %s", req.Request.Method, req.Request.URL),
		zap.Int("status_code", resp.StatusCode()))
}

// CreateWebService registers the API routes.
func (s *RestServer) CreateWebService() {
	ws := s.WebService
	ws.Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	ws.Path("/api/")
	ws.Filter(LogFilter)

	/* Interactions with the data store */

	// Insert an item
	ws.Route(ws.POST("/item").To(s.insertItem).
		Doc("Insert an item.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"item"}).
		Reads(data.Item{}))
	// Insert items
	ws.Route(ws.POST("/items").To(s.insertItems).
		Doc("Insert items.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"item"}).
		Reads([]data.Item{}))
	// Get items
	ws.Route(ws.GET("/items").To(s.getItems).
		Doc("Get items.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"item"}).
		Writes([]data.Item{}))
	// Insert a customer
	ws.Route(ws.POST("/customer").To(s.insertCustomer).
		Doc("Insert a customer.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"customer"}).
		Reads(data.Customer{}))
	// Insert customers
	ws.Route(ws.POST("/customers").To(s.insertCustomers).
		Doc("Insert customers.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"customer"}).
		Reads([]data.Customer{}))
	// Get customers
	ws.Route(ws.GET("/customers").To(s.getCustomers).
		Doc("Get customers.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"customer"}).
		Writes([]data.Customer{}))
	// Insert a rating
	ws.Route(ws.POST("/rating").To(s.insertRating).
		Doc("Insert a rating. A rating for an existing (customer, item) pair replaces the previous one.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"rating"}).
		Reads(data.Rating{}))
	// Get a customer's rating history
	ws.Route(ws.GET("/ratings/{customer-id}").To(s.getCustomerRatings).
		Doc("Get ratings submitted by a customer.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"rating"}).
		Param(ws.PathParameter("customer-id", "identifier of the customer").DataType("string")).
		Writes([]data.Rating{}))

	/* Recommendation */

	// Fit the engine
	ws.Route(ws.POST("/fit").To(s.fit).
		Doc("Fit the recommendation engine from the current database snapshot.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommendation"}))
	// Content recommendation by seed item
	ws.Route(ws.GET("/recommend/content/{item-id}").To(s.getContentRecommend).
		Doc("Get items similar to a seed item.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommendation"}).
		Param(ws.PathParameter("item-id", "identifier of the seed item").DataType("string")).
		Param(ws.QueryParameter("n", "number of returned items").DataType("integer")).
		Writes([]logics.Score{}))
	// Content recommendation by free text
	ws.Route(ws.GET("/recommend/text").To(s.getTextRecommend).
		Doc("Get items similar to a free-text feature description.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommendation"}).
		Param(ws.QueryParameter("q", "free-text feature description").DataType("string")).
		Param(ws.QueryParameter("n", "number of returned items").DataType("integer")).
		Writes([]logics.Score{}))
	// Collaborative recommendation
	ws.Route(ws.GET("/recommend/collaborative/{customer-id}").To(s.getCollaborativeRecommend).
		Doc("Get items with the highest predicted ratings for a customer.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommendation"}).
		Param(ws.PathParameter("customer-id", "identifier of the customer").DataType("string")).
		Param(ws.QueryParameter("n", "number of returned items").DataType("integer")).
		Writes([]logics.Score{}))
	// Hybrid recommendation
	ws.Route(ws.GET("/recommend/hybrid/{customer-id}").To(s.getHybridRecommend).
		Doc("Get hybrid recommendations, falling back to popular items without evidence.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommendation"}).
		Param(ws.PathParameter("customer-id", "identifier of the customer").DataType("string")).
		Param(ws.QueryParameter("item-id", "optional seed item").DataType("string")).
		Param(ws.QueryParameter("text", "optional free-text feature description").DataType("string")).
		Param(ws.QueryParameter("cuisine", "only return items of this cuisine").DataType("string")).
		Param(ws.QueryParameter("max-price", "only return items at or below this price").DataType("number")).
		Param(ws.QueryParameter("n", "number of returned items").DataType("integer")).
		Writes(RecommendResponse{}))
	// Popular items
	ws.Route(ws.GET("/popular").To(s.getPopular).
		Doc("Get popular items by mean rating.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommendation"}).
		Param(ws.QueryParameter("n", "number of returned items").DataType("integer")).
		Writes([]logics.Score{}))
}

// RowAffected reports how many rows an insert touched.
type RowAffected struct {
	RowAffected int
}

// RecommendResponse is the hybrid recommendation payload. Fallback is set
// when the engine had no evidence and popular items are returned instead.
type RecommendResponse struct {
	Scores   []logics.Score
	Sources  []logics.Source
	Fallback bool
	Message  string `json:",omitempty"`
}

func ParseInt(request *restful.Request, name string, fallback int) (value int, err error) {
	valueString := request.QueryParameter(name)
	value, err = strconv.Atoi(valueString)
	if err != nil && valueString == "" {
		value = fallback
		err = nil
	}
	return
}

func (s *RestServer) insertItem(request *restful.Request, response *restful.Response) {
	var item data.Item
	if err := request.ReadEntity(&item); err != nil {
		BadRequest(response, err)
		return
	}
	if err := s.DataClient.BatchInsertItems(request.Request.Context(), []data.Item{item}); err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, RowAffected{RowAffected: 1})
}

func (s *RestServer) insertItems(request *restful.Request, response *restful.Response) {
	var items []data.Item
	if err := request.ReadEntity(&items); err != nil {
		BadRequest(response, err)
		return
	}
	if err := s.DataClient.BatchInsertItems(request.Request.Context(), items); err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, RowAffected{RowAffected: len(items)})
}

func (s *RestServer) getItems(request *restful.Request, response *restful.Response) {
	items, err := s.DataClient.GetItems(request.Request.Context())
	if err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, items)
}

func (s *RestServer) insertCustomer(request *restful.Request, response *restful.Response) {
	var customer data.Customer
	if err := request.ReadEntity(&customer); err != nil {
		BadRequest(response, err)
		return
	}
	if err := s.DataClient.BatchInsertCustomers(request.Request.Context(), []data.Customer{customer}); err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, RowAffected{RowAffected: 1})
}

func (s *RestServer) insertCustomers(request *restful.Request, response *restful.Response) {
	var customers []data.Customer
	if err := request.ReadEntity(&customers); err != nil {
		BadRequest(response, err)
		return
	}
	if err := s.DataClient.BatchInsertCustomers(request.Request.Context(), customers); err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, RowAffected{RowAffected: len(customers)})
}

func (s *RestServer) getCustomers(request *restful.Request, response *restful.Response) {
	customers, err := s.DataClient.GetCustomers(request.Request.Context())
	if err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, customers)
}

func (s *RestServer) insertRating(request *restful.Request, response *restful.Response) {
	var rating data.Rating
	if err := request.ReadEntity(&rating); err != nil {
		BadRequest(response, err)
		return
	}
	if rating.Rating < 1 || rating.Rating > 5 {
		BadRequest(response, fmt.Errorf("rating %v out of range [1, 5]", rating.Rating))
		return
	}
	if rating.Timestamp.IsZero() {
		rating.Timestamp = time.Now()
	}
	// a new rating is reflected by collaborative scoring after the next fit
	if err := s.DataClient.UpsertRating(request.Request.Context(), rating); err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, RowAffected{RowAffected: 1})
}

func (s *RestServer) getCustomerRatings(request *restful.Request, response *restful.Response) {
	customerId := request.PathParameter("customer-id")
	ratings, err := s.DataClient.GetCustomerRatings(request.Request.Context(), customerId)
	if err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, ratings)
}

func (s *RestServer) fit(request *restful.Request, response *restful.Response) {
	start := time.Now()
	if err := s.Fit(request.Request.Context(), s.DataClient, s.Config); err != nil {
		InternalServerError(response, err)
		return
	}
	FitSeconds.Observe(time.Since(start).Seconds())
	Ok(response, struct{ Fitted bool }{Fitted: true})
}

func (s *RestServer) getContentRecommend(request *restful.Request, response *restful.Response) {
	n, err := ParseInt(request, "n", s.Config.Server.DefaultN)
	if err != nil {
		BadRequest(response, err)
		return
	}
	defer MeasureTime(ContentRecommendSeconds, time.Now())
	engine := s.Engine()
	if engine == nil {
		Ok(response, []logics.Score{})
		return
	}
	Ok(response, orEmpty(engine.Content().Recommend(request.PathParameter("item-id"), n)))
}

func (s *RestServer) getTextRecommend(request *restful.Request, response *restful.Response) {
	n, err := ParseInt(request, "n", s.Config.Server.DefaultN)
	if err != nil {
		BadRequest(response, err)
		return
	}
	defer MeasureTime(ContentRecommendSeconds, time.Now())
	engine := s.Engine()
	if engine == nil {
		Ok(response, []logics.Score{})
		return
	}
	Ok(response, orEmpty(engine.Content().RecommendByText(request.QueryParameter("q"), n)))
}

func (s *RestServer) getCollaborativeRecommend(request *restful.Request, response *restful.Response) {
	n, err := ParseInt(request, "n", s.Config.Server.DefaultN)
	if err != nil {
		BadRequest(response, err)
		return
	}
	defer MeasureTime(CollaborativeRecommendSeconds, time.Now())
	engine := s.Engine()
	if engine == nil {
		Ok(response, []logics.Score{})
		return
	}
	Ok(response, orEmpty(engine.Collaborative().RecommendForCustomer(request.PathParameter("customer-id"), n)))
}

func (s *RestServer) getHybridRecommend(request *restful.Request, response *restful.Response) {
	n, err := ParseInt(request, "n", s.Config.Server.DefaultN)
	if err != nil {
		BadRequest(response, err)
		return
	}
	defer MeasureTime(HybridRecommendSeconds, time.Now())
	customerId := request.PathParameter("customer-id")
	seedItemId := request.QueryParameter("item-id")
	text := request.QueryParameter("text")
	engine := s.Engine()
	var result logics.Result
	if engine != nil {
		result = engine.Recommend(customerId, seedItemId, text, n)
		result.Scores = s.filterScores(engine, result.Scores, request)
	}
	if len(result.Scores) > 0 {
		Ok(response, RecommendResponse{Scores: result.Scores, Sources: result.Sources})
		return
	}
	// no evidence: fall back to popular items
	ratings, err := s.DataClient.GetRatings(request.Request.Context())
	if err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, RecommendResponse{
		Scores:   orEmpty(logics.MostPopular(ratings, s.Config.Recommend.MinSupport, n)),
		Fallback: true,
		Message:  "insufficient data, showing popular items instead",
	})
}

// filterScores applies optional cuisine and price constraints using the
// fitted catalog snapshot.
func (s *RestServer) filterScores(engine *logics.Hybrid, scores []logics.Score, request *restful.Request) []logics.Score {
	cuisine := request.QueryParameter("cuisine")
	maxPriceString := request.QueryParameter("max-price")
	if cuisine == "" && maxPriceString == "" {
		return scores
	}
	maxPrice, err := strconv.ParseFloat(maxPriceString, 64)
	if err != nil {
		maxPrice = 0
	}
	catalog := make(map[string]data.Item)
	for _, item := range engine.Content().Items() {
		catalog[item.ItemId] = item
	}
	filtered := make([]logics.Score, 0, len(scores))
	for _, score := range scores {
		item, ok := catalog[score.ItemId]
		if !ok {
			continue
		}
		if cuisine != "" && item.Cuisine != cuisine {
			continue
		}
		if maxPriceString != "" && item.Price > maxPrice {
			continue
		}
		filtered = append(filtered, score)
	}
	return filtered
}

func (s *RestServer) getPopular(request *restful.Request, response *restful.Response) {
	n, err := ParseInt(request, "n", s.Config.Server.DefaultN)
	if err != nil {
		BadRequest(response, err)
		return
	}
	defer MeasureTime(PopularSeconds, time.Now())
	ratings, err := s.DataClient.GetRatings(request.Request.Context())
	if err != nil {
		InternalServerError(response, err)
		return
	}
	Ok(response, orEmpty(logics.MostPopular(ratings, s.Config.Recommend.MinSupport, n)))
}

// orEmpty keeps empty results serializing as [] instead of null.
func orEmpty(scores []logics.Score) []logics.Score {
	if scores == nil {
		return []logics.Score{}
	}
	return scores
}

// BadRequest returns a bad request error.
func BadRequest(response *restful.Response, err error) {
	log.Logger().Error("bad request", zap.Error(err))
	if err = response.WriteError(http.StatusBadRequest, err); err != nil {
		log.Logger().Error("failed to write error", zap.Error(err))
	}
}

// InternalServerError returns an internal server error.
func InternalServerError(response *restful.Response, err error) {
	log.Logger().Error("internal server error", zap.Error(err))
	if err = response.WriteError(http.StatusInternalServerError, err); err != nil {
		log.Logger().Error("failed to write error", zap.Error(err))
	}
}

// Ok sends the content as JSON to the client.
func Ok(response *restful.Response, content interface{}) {
	if err := response.WriteAsJson(content); err != nil {
		log.Logger().Error("failed to write json", zap.Error(err))
	}
}
