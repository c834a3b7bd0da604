package di

import (
	"context"
	"fmt"
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"counts-server/analytics"
	"counts-server/api"
	"counts-server/api/countfeed"
	"counts-server/config"
	"counts-server/dao/redis"
	"counts-server/db"
	"counts-server/server"
	"counts-server/server/handlers"
	services "counts-server/service"
	"counts-server/util"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient            db.RedisClient
	RedisSiteDao           *redis.RedisSiteDAO
	FactorCache            *analytics.FactorCache
	ExpansionService       *analytics.ExpansionService
	CountFeedAPI           countfeed.CountFeedAPI
	AnalyticsService       *services.AnalyticsService
	SiteHandler            *handlers.SiteHandler
	MuxRouter              *mux.Router
	Router                 *server.Router
	ActiveCountsHttpServer *server.ActiveCountsHttpServer
	CountsRefresherService *services.CountsRefresherService
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     config.REDIS_DB_ADDRESS,
		Password: config.REDIS_DB_PASSWORD,
		DB:       config.REDIS_DB,
	})

	// Initialize Redis client
	redisClient, err := db.NewGeoRedisClient(ctx, redisInternalClient)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	// Initialize Redis Site DAO
	redisSiteDao := redis.NewRedisSiteDAO(redisClient)

	// Load the factor tables into an explicitly owned cache
	factorCache := analytics.NewFactorCache()
	expansionTables, err := util.ReadFactorTableFromJSON(config.GetResourcePath(config.EXPANSION_PROFILES_RESOURCE))
	if err != nil {
		panic(fmt.Sprintf("Failed to load expansion profiles: %v", err))
	}
	normalizationTables, err := util.ReadFactorTableFromJSON(config.GetResourcePath(config.NORMALIZATION_FACTORS_RESOURCE))
	if err != nil {
		panic(fmt.Sprintf("Failed to load normalization factors: %v", err))
	}
	if err := factorCache.Initialize(expansionTables, normalizationTables); err != nil {
		panic(fmt.Sprintf("Failed to initialize factor cache: %v", err))
	}

	expansionService := analytics.NewExpansionService(factorCache)

	// Initialize the count feed client - mock outside prod
	var countFeedClient countfeed.CountFeedAPI
	if env != "prod" {
		countFeedClient = countfeed.NewCountFeedApiClientMock()
		log.Printf("Using mock count feed api")
	} else {
		log.Printf("Using prod count feed api")
		httpClient := api.NewHTTPClient(config.COUNT_FEED_ENDPOINT_BASE_V1)
		countFeedClient = countfeed.NewCountFeedApiClient(httpClient)
	}

	// Initialize service layer
	analyticsService := services.NewAnalyticsService(redisSiteDao, countFeedClient, expansionService)

	// Initialize site handler
	siteHandler := handlers.NewSiteHandler(analyticsService)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(siteHandler, muxRouter)

	// initialize active counts server
	activeCountsHttpServer := server.NewActiveCountsHttpServer(router, muxRouter)

	countsRefresherService := services.NewCountsRefresherService(redisSiteDao, countFeedClient, analyticsService)

	return &Container{
		RedisClient:            redisClient,
		RedisSiteDao:           redisSiteDao,
		FactorCache:            factorCache,
		ExpansionService:       expansionService,
		CountFeedAPI:           countFeedClient,
		AnalyticsService:       analyticsService,
		SiteHandler:            siteHandler,
		MuxRouter:              muxRouter,
		Router:                 router,
		ActiveCountsHttpServer: activeCountsHttpServer,
		CountsRefresherService: countsRefresherService,
	}
}
