package seed

import (
	"context"
	"fmt"

	"github.com/equza-living-co/go-services/internal/catalog"
	"github.com/equza-living-co/go-services/internal/content"
	"github.com/equza-living-co/go-services/pkg/logger"
)

// Seeder writes the sample catalog into the store. Documents are upserted by
// slug, so reseeding is idempotent and never duplicates.
type Seeder struct {
	catalog *catalog.Service
	content *content.Service
	photos  *PhotoClient
}

func NewSeeder(cat *catalog.Service, cnt *content.Service, photos *PhotoClient) *Seeder {
	return &Seeder{catalog: cat, content: cnt, photos: photos}
}

// Run seeds collections, products, weave types, pages, settings and the hero.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedCollections(ctx); err != nil {
		return err
	}
	if err := s.seedProducts(ctx); err != nil {
		return err
	}
	if err := s.seedWeaveTypes(ctx); err != nil {
		return err
	}
	return s.seedContent(ctx)
}

// images builds an image field list from stock photos, or a single placeholder
// when no photo API is configured. The first image is flagged main.
func (s *Seeder) images(ctx context.Context, query, alt string, count int) []interface{} {
	urls, err := s.photos.Search(ctx, query, count)
	if err != nil {
		logger.Warnf("seed: photo search %q failed: %v", query, err)
	}
	if len(urls) == 0 {
		urls = []string{catalog.FallbackImageURL}
	}
	out := make([]interface{}, 0, len(urls))
	for i, u := range urls {
		out = append(out, map[string]interface{}{
			"url":       u,
			"alt":       alt,
			"isMain":    i == 0,
			"sortOrder": i,
		})
	}
	return out
}

func (s *Seeder) seedCollections(ctx context.Context) error {
	for _, c := range sampleCollections {
		fields := map[string]interface{}{
			"name":        c.Name,
			"type":        c.Type,
			"description": c.Description,
			"isActive":    true,
			"sortOrder":   c.SortOrder,
			"heroImage":   s.images(ctx, c.PhotoQuery, c.Name, 1)[0],
		}
		if err := s.catalog.UpsertCollectionBySlug(ctx, c.Slug, fields); err != nil {
			return fmt.Errorf("seed collection %q: %w", c.Slug, err)
		}
		logger.Infof("seeded collection %s", c.Slug)
	}
	return nil
}

func (s *Seeder) seedProducts(ctx context.Context) error {
	// products reference collections by store id, not slug; resolve the ids
	// the upserts above ended up with before writing any product
	collectionIDs := make(map[string]string, len(sampleCollections))
	for _, c := range sampleCollections {
		col, err := s.catalog.CollectionBySlug(ctx, c.Slug)
		if err != nil {
			return fmt.Errorf("resolve collection %q: %w", c.Slug, err)
		}
		collectionIDs[c.Slug] = col.ID
	}
	for _, p := range sampleProducts {
		collections := make([]string, 0, len(p.Collections))
		for _, slug := range p.Collections {
			id, ok := collectionIDs[slug]
			if !ok {
				return fmt.Errorf("seed product %q: unknown collection %q", p.Slug, slug)
			}
			collections = append(collections, id)
		}
		sizes := make([]interface{}, 0, len(p.Sizes))
		for _, d := range p.Sizes {
			sizes = append(sizes, map[string]interface{}{"dimensions": d, "isCustom": false})
		}
		fields := map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"story":       p.Story,
			"collections": collections,
			"images":      s.images(ctx, p.PhotoQuery, p.Name, 3),
			"specifications": map[string]interface{}{
				"materials":      p.Materials,
				"weaveType":      p.WeaveType,
				"availableSizes": sizes,
				"origin":         p.Origin,
				"craftTime":      p.CraftTime,
			},
			"price": map[string]interface{}{
				"isVisible":    p.PriceFrom > 0,
				"startingFrom": p.PriceFrom,
				"currency":     "USD",
			},
			"isActive":   true,
			"isFeatured": p.Featured,
			"sortOrder":  p.SortOrder,
		}
		if err := s.catalog.UpsertProductBySlug(ctx, p.Slug, fields); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Slug, err)
		}
		logger.Infof("seeded product %s", p.Slug)
	}
	return nil
}

func (s *Seeder) seedWeaveTypes(ctx context.Context) error {
	for _, w := range sampleWeaveTypes {
		fields := map[string]interface{}{
			"name":      w.Name,
			"image":     s.images(ctx, w.PhotoQuery, w.Name, 1)[0],
			"isActive":  true,
			"sortOrder": w.SortOrder,
		}
		if err := s.catalog.UpsertWeaveTypeBySlug(ctx, w.Slug, fields); err != nil {
			return fmt.Errorf("seed weave type %q: %w", w.Slug, err)
		}
		logger.Infof("seeded weave type %s", w.Slug)
	}
	return nil
}

func (s *Seeder) seedContent(ctx context.Context) error {
	for _, page := range samplePages {
		slug, _ := page["slug"].(string)
		if err := s.content.UpsertPage(ctx, slug, page); err != nil {
			return fmt.Errorf("seed page %q: %w", slug, err)
		}
	}
	if err := s.content.UpdateSiteSettings(ctx, content.Settings{
		SiteName:     sampleSettings["siteName"].(string),
		ContactEmail: sampleSettings["contactEmail"].(string),
		ContactPhone: sampleSettings["contactPhone"].(string),
		SocialLinks: map[string]string{
			"instagram": "https://instagram.com/equzalivingco",
			"pinterest": "https://pinterest.com/equzalivingco",
		},
	}); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	hero := map[string]interface{}{}
	for k, v := range sampleHero {
		hero[k] = v
	}
	hero["images"] = s.images(ctx, "handwoven rug artisan", "Crafted Calm", 3)
	if err := s.content.UpdateHomepageHero(ctx, hero); err != nil {
		return fmt.Errorf("seed hero: %w", err)
	}
	logger.Info("seeded content documents")
	return nil
}
