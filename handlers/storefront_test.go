package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equza-living-co/go-services/internal/catalog"
	"github.com/equza-living-co/go-services/internal/catalog/repository"
	"github.com/equza-living-co/go-services/internal/content"
)

func newStorefrontRouter(t *testing.T) (*gin.Engine, *catalog.Service, *content.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := repository.NewMemoryProductRepository()
	collections := repository.NewMemoryCollectionRepository()
	weaveTypes := repository.NewMemoryWeaveTypeRepository()
	catalogSvc := catalog.NewService(products, collections, weaveTypes)
	contentSvc := content.NewService(repository.NewMemoryCollectionRepository())

	ctx := context.Background()
	require.NoError(t, collections.Create(ctx, "c1", map[string]interface{}{
		"name": "Modern", "slug": "modern", "type": "style", "isActive": true,
	}))
	require.NoError(t, products.Create(ctx, "p1", map[string]interface{}{
		"name": "Arctic Waves", "slug": "arctic-waves",
		"isActive": true, "isFeatured": true, "collections": []string{"c1"},
	}))
	require.NoError(t, weaveTypes.Create(ctx, "w1", map[string]interface{}{
		"name": "Flatweave", "slug": "flatweave", "isActive": true,
	}))

	r := gin.New()
	NewStorefrontHandler(catalogSvc, contentSvc).Register(r)
	return r, catalogSvc, contentSvc
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *string         `json:"error"`
}

func doGet(t *testing.T, r *gin.Engine, path string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestGetProduct(t *testing.T) {
	r, _, _ := newStorefrontRouter(t)

	code, env := doGet(t, r, "/api/products/arctic-waves")
	require.Equal(t, 200, code)
	assert.Nil(t, env.Error)

	var p catalog.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Arctic Waves", p.Name)
	require.Len(t, p.Images, 1)
	assert.True(t, p.Images[0].IsMain)
}

func TestGetProductNotFound(t *testing.T) {
	r, _, _ := newStorefrontRouter(t)

	code, env := doGet(t, r, "/api/products/nope")
	require.Equal(t, 404, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "The requested content was not found.", *env.Error)
	assert.Equal(t, "null", string(env.Data))
}

func TestListProducts(t *testing.T) {
	r, _, _ := newStorefrontRouter(t)

	code, env := doGet(t, r, "/api/products?featured=true")
	require.Equal(t, 200, code)
	var ps []catalog.Product
	require.NoError(t, json.Unmarshal(env.Data, &ps))
	require.Len(t, ps, 1)
	assert.Equal(t, "arctic-waves", ps[0].Slug)
}

func TestListCollections(t *testing.T) {
	r, _, _ := newStorefrontRouter(t)

	code, env := doGet(t, r, "/api/collections?type=style")
	require.Equal(t, 200, code)
	var cs []catalog.Collection
	require.NoError(t, json.Unmarshal(env.Data, &cs))
	require.Len(t, cs, 1)
	assert.Equal(t, "modern", cs[0].Slug)
}

func TestCollectionProducts(t *testing.T) {
	r, _, _ := newStorefrontRouter(t)

	code, env := doGet(t, r, "/api/collections/modern/products")
	require.Equal(t, 200, code)
	var ps []catalog.Product
	require.NoError(t, json.Unmarshal(env.Data, &ps))
	require.Len(t, ps, 1)
}

func TestHomepageEnvelope(t *testing.T) {
	r, _, _ := newStorefrontRouter(t)

	code, env := doGet(t, r, "/api/homepage")
	require.Equal(t, 200, code)
	assert.Nil(t, env.Error)

	var data struct {
		FeaturedProducts []catalog.Product    `json:"featuredProducts"`
		StyleCollections []catalog.Collection `json:"styleCollections"`
		WeaveTypes       []catalog.WeaveType  `json:"weaveTypes"`
		Hero             *content.Hero        `json:"hero"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.FeaturedProducts, 1)
	require.Len(t, data.StyleCollections, 1)
	require.Len(t, data.WeaveTypes, 1)
	require.NotNil(t, data.Hero)
	assert.NotEmpty(t, data.Hero.Images)
}

func TestGetPage(t *testing.T) {
	r, _, contentSvc := newStorefrontRouter(t)
	require.NoError(t, contentSvc.UpsertPage(context.Background(), "our-story", map[string]interface{}{
		"title": "Our Story", "isActive": true,
	}))

	code, env := doGet(t, r, "/api/pages/our-story")
	require.Equal(t, 200, code)
	var page content.Page
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, "Our Story", page.Title)

	code, _ = doGet(t, r, "/api/pages/missing")
	assert.Equal(t, 404, code)
}

func TestGetSettings(t *testing.T) {
	r, _, _ := newStorefrontRouter(t)

	code, env := doGet(t, r, "/api/settings")
	require.Equal(t, 200, code)
	var s content.Settings
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Equal(t, "Equza Living Co.", s.SiteName)
}
