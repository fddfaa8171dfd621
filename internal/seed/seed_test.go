package seed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equza-living-co/go-services/internal/catalog"
	"github.com/equza-living-co/go-services/internal/catalog/repository"
	"github.com/equza-living-co/go-services/internal/content"
)

func newSeededServices(t *testing.T) (*catalog.Service, *content.Service) {
	t.Helper()
	catalogSvc := catalog.NewService(
		repository.NewMemoryProductRepository(),
		repository.NewMemoryCollectionRepository(),
		repository.NewMemoryWeaveTypeRepository(),
	)
	contentSvc := content.NewService(repository.NewMemoryCollectionRepository())
	require.NoError(t, NewSeeder(catalogSvc, contentSvc, nil).Run(context.Background()))
	return catalogSvc, contentSvc
}

func TestSeedProducesValidCatalog(t *testing.T) {
	catalogSvc, _ := newSeededServices(t)
	ctx := context.Background()

	// every seeded document survives transformation
	products, err := catalogSvc.Products(ctx, catalog.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, len(sampleProducts))
	for _, p := range products {
		assert.NotEmpty(t, p.Name)
		require.NotEmpty(t, p.Images)
		assert.True(t, p.Images[0].IsMain)
	}

	collections, err := catalogSvc.Collections(ctx, catalog.CollectionFilter{})
	require.NoError(t, err)
	require.Len(t, collections, len(sampleCollections))

	weaveTypes, err := catalogSvc.WeaveTypes(ctx, catalog.WeaveTypeFilter{})
	require.NoError(t, err)
	require.Len(t, weaveTypes, len(sampleWeaveTypes))
}

func TestSeedLinksProductsToCollections(t *testing.T) {
	catalogSvc, _ := newSeededServices(t)
	ctx := context.Background()

	// every seeded collection resolves to a non-empty product list via its
	// store id, the same lookup the collection products endpoint performs
	for _, c := range sampleCollections {
		col, err := catalogSvc.CollectionBySlug(ctx, c.Slug)
		require.NoError(t, err)
		products, err := catalogSvc.CollectionProducts(ctx, col.ID, 0)
		require.NoError(t, err)
		assert.NotEmpty(t, products, "collection %s has no products", c.Slug)
	}

	col, err := catalogSvc.CollectionBySlug(ctx, "modern")
	require.NoError(t, err)
	products, err := catalogSvc.CollectionProducts(ctx, col.ID, 0)
	require.NoError(t, err)
	slugs := make([]string, 0, len(products))
	for _, p := range products {
		slugs = append(slugs, p.Slug)
	}
	assert.Contains(t, slugs, "arctic-waves")
	assert.Contains(t, slugs, "saffron-field")

	// related products walk the same linkage
	p, err := catalogSvc.ProductBySlug(ctx, "arctic-waves")
	require.NoError(t, err)
	related, err := catalogSvc.RelatedProducts(ctx, p, 4)
	require.NoError(t, err)
	assert.NotEmpty(t, related)
}

func TestSeedIsIdempotent(t *testing.T) {
	catalogSvc, contentSvc := newSeededServices(t)
	ctx := context.Background()

	require.NoError(t, NewSeeder(catalogSvc, contentSvc, nil).Run(ctx))

	products, err := catalogSvc.Products(ctx, catalog.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, products, len(sampleProducts))
}

func TestSeedContent(t *testing.T) {
	_, contentSvc := newSeededServices(t)
	ctx := context.Background()

	page, err := contentSvc.PageBySlug(ctx, "our-story")
	require.NoError(t, err)
	assert.Equal(t, "Our Story", page.Title)

	settings, err := contentSvc.SiteSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Equza Living Co.", settings.SiteName)
	assert.NotEmpty(t, settings.SocialLinks["instagram"])

	hero, err := contentSvc.HomepageHero(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Crafted Calm for Modern Spaces", hero.Title)
	require.NotEmpty(t, hero.Images)
	assert.True(t, hero.Images[0].IsMain)
}

func TestPhotoClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "wool rug", r.URL.Query().Get("query"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"photos": []map[string]interface{}{
				{"id": 1, "src": map[string]string{"large": "https://img.example/1.jpg"}},
				{"id": 2, "src": map[string]string{"large": "https://img.example/2.jpg"}},
			},
		})
	}))
	defer srv.Close()

	client := NewPhotoClient("test-key", srv.URL)
	urls, err := client.Search(context.Background(), "wool rug", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example/1.jpg", "https://img.example/2.jpg"}, urls)
}

func TestPhotoClientNilSafe(t *testing.T) {
	var client *PhotoClient
	urls, err := client.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Nil(t, urls)

	assert.Nil(t, NewPhotoClient("", ""))
}
