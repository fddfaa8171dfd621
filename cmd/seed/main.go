// Command seed populates the store with a sample catalog, pages and settings.
// It talks to the same MongoDB the API serves from; with PEXELS_API_KEY set it
// pulls real stock photo URLs, otherwise it seeds placeholder images.
package main

import (
	"context"
	"os"
	"time"

	"github.com/equza-living-co/go-services/internal/catalog"
	"github.com/equza-living-co/go-services/internal/catalog/repository"
	"github.com/equza-living-co/go-services/internal/config"
	"github.com/equza-living-co/go-services/internal/content"
	"github.com/equza-living-co/go-services/internal/database"
	"github.com/equza-living-co/go-services/internal/seed"
	"github.com/equza-living-co/go-services/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("SERVER_ENVIRONMENT"))
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		logger.Fatalf("MONGODB_URI is required for seeding")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 3)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.MongoDB.Database)
	catalogSvc := catalog.NewService(
		repository.NewMongoProductRepository(db.Collection("products")),
		repository.NewMongoCollectionRepository(db.Collection("collections")),
		repository.NewMongoWeaveTypeRepository(db.Collection("weaveTypes")),
	)
	contentSvc := content.NewService(repository.NewMongoCollectionRepository(db.Collection("content")))
	photos := seed.NewPhotoClient(cfg.Pexels.APIKey, cfg.Pexels.BaseURL)
	if photos == nil {
		logger.Warn("PEXELS_API_KEY not set; seeding placeholder images")
	}

	if err := seed.NewSeeder(catalogSvc, contentSvc, photos).Run(ctx); err != nil {
		logger.Fatalf("seeding failed: %v", err)
	}
	logger.Info("seeding complete")
}
