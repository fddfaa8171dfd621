package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/equza-living-co/go-services/handlers"
	"github.com/equza-living-co/go-services/internal/admin"
	"github.com/equza-living-co/go-services/internal/catalog"
	"github.com/equza-living-co/go-services/internal/catalog/repository"
	"github.com/equza-living-co/go-services/internal/config"
	"github.com/equza-living-co/go-services/internal/content"
	"github.com/equza-living-co/go-services/internal/database"
	"github.com/equza-living-co/go-services/internal/leads"
	"github.com/equza-living-co/go-services/internal/oidc"
	"github.com/equza-living-co/go-services/internal/storage"
	"github.com/equza-living-co/go-services/pkg/logger"
	"github.com/equza-living-co/go-services/pkg/metrics"
	"github.com/equza-living-co/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("SERVER_ENVIRONMENT"))
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v oidc=%v",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "", cfg.OIDC.Issuer != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond
	// to OPTIONS. Production should front this with a stricter policy.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter, sessions and the token
	// blacklist can use it when configured.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Rate limiting applies to form submissions; a Redis-backed fixed window
	// when available, an in-process token bucket otherwise.
	var formLimit gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			formLimit = middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			formLimit = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Connect to MongoDB with retry/backoff to tolerate startup races.
	ctx := context.Background()
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		var errConn error
		mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB: %v", errConn)
			mongoClient = nil
		} else {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
		}
	}

	// Repositories: Mongo-backed when connected, in-memory otherwise so the
	// API stays usable for local development.
	var (
		productRepo    catalog.ProductRepository
		collectionRepo catalog.CollectionRepository
		weaveTypeRepo  catalog.WeaveTypeRepository
		contentRepo    content.Repository
		leadRepo       leads.Repository
		accountRepo    admin.AccountRepository
		sessionRepo    admin.SessionRepository
	)
	if mongoClient != nil {
		db := mongoClient.Database(cfg.MongoDB.Database)
		productRepo = repository.NewMongoProductRepository(db.Collection("products"))
		collectionRepo = repository.NewMongoCollectionRepository(db.Collection("collections"))
		weaveTypeRepo = repository.NewMongoWeaveTypeRepository(db.Collection("weaveTypes"))
		contentRepo = repository.NewMongoCollectionRepository(db.Collection("content"))
		leadRepo = leads.NewMongoRepository(db.Collection("leads"))
		accountRepo = admin.NewMongoAccountRepository(db.Collection("adminAccounts"))
		sessionRepo = admin.NewMongoSessionRepository(db.Collection("adminSessions"))
	} else {
		logger.Warn("MongoDB unavailable; falling back to in-memory stores")
		productRepo = repository.NewMemoryProductRepository()
		collectionRepo = repository.NewMemoryCollectionRepository()
		weaveTypeRepo = repository.NewMemoryWeaveTypeRepository()
		contentRepo = repository.NewMemoryCollectionRepository()
		leadRepo = leads.NewMemoryRepository()
		accountRepo = admin.NewMemoryAccountRepository()
		sessionRepo = admin.NewMemorySessionRepository()
	}

	// Prefer Redis-backed refresh sessions when available.
	if redisClient != nil {
		sessionRepo = admin.NewRedisSessionRepository(redisClient, "session:")
		logger.Infof("using Redis for admin session storage")
	}

	catalogSvc := catalog.NewService(productRepo, collectionRepo, weaveTypeRepo)
	contentSvc := content.NewService(contentRepo)
	leadSvc := leads.NewService(leadRepo)
	adminSvc := admin.NewService(cfg.Admin, accountRepo, sessionRepo)
	blacklist := admin.NewRedisBlacklist(redisClient)

	// OIDC verifier for the alternative admin login path.
	var oidcVerifier middleware.Verifier
	if cfg.OIDC.Issuer != "" && cfg.OIDC.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			oidcVerifier = ver
		}
	}
	if oidcVerifier == nil {
		if strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
			logger.Warn("enabling insecure OIDC verifier (integration mode)")
			oidcVerifier = oidc.NewInsecureVerifier()
		}
	}

	// Media storage is optional; admin uploads report unavailable without it.
	var media *storage.MediaStore
	if cfg.MinIO.Endpoint != "" {
		media, err = storage.NewMediaStore(cfg.MinIO)
		if err != nil {
			logger.Warnf("media storage unavailable: %v", err)
			media = nil
		}
	}

	// Readiness reflects the state of the hard dependencies only: the store
	// behind the catalog, plus Redis when the limiter requires it.
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["mongodb"] = mongoClient != nil
		if cfg.MongoDB.URI != "" && mongoClient == nil {
			ready = false
		}
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if redisClient == nil {
				ready = false
			}
		} else {
			deps["redis"] = true
		}
		deps["media"] = media != nil || cfg.MinIO.Endpoint == ""

		status := gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()}
		if !ready {
			status["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	})

	handlers.NewStorefrontHandler(catalogSvc, contentSvc).Register(r)
	handlers.NewFormsHandler(leadSvc).Register(r, formLimit)
	handlers.NewAuthHandler(adminSvc, oidcVerifier, blacklist, cfg.Admin.AccessTokenTTL).Register(r)
	handlers.NewAdminHandler(catalogSvc, contentSvc, leadSvc, media).
		Register(r, admin.NewJWTVerifier(cfg.Admin.JWTSecret), blacklist)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting equza API on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
