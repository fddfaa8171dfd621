package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/equza-living-co/go-services/pkg/logger"
	"github.com/equza-living-co/go-services/pkg/metrics"
)

// Repository contracts are defined here, where they are consumed; Mongo and
// in-memory implementations live in the repository subpackage. Repositories
// return raw documents and loose field maps because the backing store is
// schema-less; normalization happens in this package.

type ProductRepository interface {
	Find(ctx context.Context, f ProductFilter) ([]RawDocument, error)
	FindBySlug(ctx context.Context, slug string) (RawDocument, error)
	Create(ctx context.Context, id string, fields map[string]interface{}) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	UpsertBySlug(ctx context.Context, slug string, fields map[string]interface{}) error
}

type CollectionRepository interface {
	Find(ctx context.Context, f CollectionFilter) ([]RawDocument, error)
	FindBySlug(ctx context.Context, slug string) (RawDocument, error)
	Create(ctx context.Context, id string, fields map[string]interface{}) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	UpsertBySlug(ctx context.Context, slug string, fields map[string]interface{}) error
}

type WeaveTypeRepository interface {
	Find(ctx context.Context, f WeaveTypeFilter) ([]RawDocument, error)
	Create(ctx context.Context, id string, fields map[string]interface{}) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	UpsertBySlug(ctx context.Context, slug string, fields map[string]interface{}) error
}

// Service is the safe accessor layer: it composes queries, batch-transforms
// the results, and absorbs every failure mode at this boundary. No raw store
// error or panic escapes to the HTTP layer.
type Service struct {
	products    ProductRepository
	collections CollectionRepository
	weaveTypes  WeaveTypeRepository
	tr          *Transformer
}

func NewService(p ProductRepository, c CollectionRepository, w WeaveTypeRepository) *Service {
	return &Service{products: p, collections: c, weaveTypes: w, tr: NewTransformer()}
}

// Transformer exposes the service's transformer, mainly for seeding and tests.
func (s *Service) Transformer() *Transformer { return s.tr }

// Products returns transformed products matching the filter.
func (s *Service) Products(ctx context.Context, f ProductFilter) ([]*Product, error) {
	docs, err := s.products.Find(ctx, f)
	if err != nil {
		metrics.AccessorFailures.WithLabelValues("products").Inc()
		return nil, fmt.Errorf("find products: %w", err)
	}
	return s.tr.Products(docs), nil
}

// ProductBySlug looks up a single product. The slug is validated before the
// query; a retrieved document that fails normalization is reported as
// ErrTransform, distinguishable from ErrNotFound.
func (s *Service) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidInput
	}
	doc, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			metrics.AccessorFailures.WithLabelValues("product_by_slug").Inc()
		}
		return nil, fmt.Errorf("find product %q: %w", slug, err)
	}
	p := s.tr.Product(doc.ID, doc.Fields)
	if p == nil {
		metrics.DocumentsDropped.WithLabelValues("product").Inc()
		return nil, fmt.Errorf("product %q: %w", slug, ErrTransform)
	}
	return p, nil
}

// Collections returns transformed collections matching the filter.
func (s *Service) Collections(ctx context.Context, f CollectionFilter) ([]*Collection, error) {
	docs, err := s.collections.Find(ctx, f)
	if err != nil {
		metrics.AccessorFailures.WithLabelValues("collections").Inc()
		return nil, fmt.Errorf("find collections: %w", err)
	}
	return s.tr.Collections(docs), nil
}

// CollectionBySlug looks up a single collection by slug.
func (s *Service) CollectionBySlug(ctx context.Context, slug string) (*Collection, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidInput
	}
	doc, err := s.collections.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			metrics.AccessorFailures.WithLabelValues("collection_by_slug").Inc()
		}
		return nil, fmt.Errorf("find collection %q: %w", slug, err)
	}
	c := s.tr.Collection(doc.ID, doc.Fields)
	if c == nil {
		metrics.DocumentsDropped.WithLabelValues("collection").Inc()
		return nil, fmt.Errorf("collection %q: %w", slug, ErrTransform)
	}
	return c, nil
}

// WeaveTypes returns transformed weave types matching the filter.
func (s *Service) WeaveTypes(ctx context.Context, f WeaveTypeFilter) ([]*WeaveType, error) {
	docs, err := s.weaveTypes.Find(ctx, f)
	if err != nil {
		metrics.AccessorFailures.WithLabelValues("weave_types").Inc()
		return nil, fmt.Errorf("find weave types: %w", err)
	}
	return s.tr.WeaveTypes(docs), nil
}

// CollectionProducts returns the active products of a collection.
func (s *Service) CollectionProducts(ctx context.Context, collectionID string, limit int64) ([]*Product, error) {
	active := true
	return s.Products(ctx, ProductFilter{Active: &active, Collection: collectionID, Limit: limit})
}

// RelatedProducts returns active products sharing a collection with the given
// product, excluding the product itself. A product with no collections yields
// an empty list.
func (s *Service) RelatedProducts(ctx context.Context, p *Product, limit int64) ([]*Product, error) {
	if p == nil || len(p.Collections) == 0 {
		return []*Product{}, nil
	}
	if limit <= 0 {
		limit = 4
	}
	// fetch one extra so the product itself can be filtered out
	candidates, err := s.CollectionProducts(ctx, p.Collections[0], limit+1)
	if err != nil {
		return nil, err
	}
	out := make([]*Product, 0, limit)
	for _, c := range candidates {
		if c.ID == p.ID || c.Slug == p.Slug {
			continue
		}
		out = append(out, c)
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

// Homepage aggregates the sections the homepage renders. Sub-queries run
// concurrently; a failed section degrades to an empty slice and is logged,
// the aggregate itself never fails.
func (s *Service) Homepage(ctx context.Context) *HomepageData {
	active := true
	featured := true
	data := &HomepageData{
		FeaturedProducts: []*Product{},
		StyleCollections: []*Collection{},
		SpaceCollections: []*Collection{},
		WeaveTypes:       []*WeaveType{},
	}

	var wg sync.WaitGroup
	section := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				logger.Warnf("homepage: %s section failed: %v", name, err)
			}
		}()
	}

	section("featured products", func() error {
		ps, err := s.Products(ctx, ProductFilter{Active: &active, Featured: &featured, Limit: 8})
		if err != nil {
			return err
		}
		data.FeaturedProducts = ps
		return nil
	})
	section("style collections", func() error {
		cs, err := s.Collections(ctx, CollectionFilter{Type: CollectionTypeStyle, Active: &active})
		if err != nil {
			return err
		}
		data.StyleCollections = cs
		return nil
	})
	section("space collections", func() error {
		cs, err := s.Collections(ctx, CollectionFilter{Type: CollectionTypeSpace, Active: &active})
		if err != nil {
			return err
		}
		data.SpaceCollections = cs
		return nil
	})
	section("weave types", func() error {
		ws, err := s.WeaveTypes(ctx, WeaveTypeFilter{Active: &active})
		if err != nil {
			return err
		}
		data.WeaveTypes = ws
		return nil
	})

	wg.Wait()
	return data
}

// Admin writes pass through unchanged apart from id stamping; the store is
// last-writer-wins and holds the source of truth.

func (s *Service) CreateProduct(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.products.Create(ctx, id, fields)
}

func (s *Service) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.products.Update(ctx, id, fields)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *Service) CreateCollection(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.collections.Create(ctx, id, fields)
}

func (s *Service) UpdateCollection(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.collections.Update(ctx, id, fields)
}

func (s *Service) DeleteCollection(ctx context.Context, id string) error {
	return s.collections.Delete(ctx, id)
}

func (s *Service) CreateWeaveType(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.weaveTypes.Create(ctx, id, fields)
}

func (s *Service) UpdateWeaveType(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.weaveTypes.Update(ctx, id, fields)
}

func (s *Service) DeleteWeaveType(ctx context.Context, id string) error {
	return s.weaveTypes.Delete(ctx, id)
}

// Slug-keyed upserts back the seeding CLI; reseeding the same slug twice
// updates in place instead of duplicating.

func (s *Service) UpsertProductBySlug(ctx context.Context, slug string, fields map[string]interface{}) error {
	return s.products.UpsertBySlug(ctx, slug, fields)
}

func (s *Service) UpsertCollectionBySlug(ctx context.Context, slug string, fields map[string]interface{}) error {
	return s.collections.UpsertBySlug(ctx, slug, fields)
}

func (s *Service) UpsertWeaveTypeBySlug(ctx context.Context, slug string, fields map[string]interface{}) error {
	return s.weaveTypes.UpsertBySlug(ctx, slug, fields)
}
