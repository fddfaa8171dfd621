package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/equza-living-co/go-services/internal/catalog"
	"github.com/equza-living-co/go-services/internal/content"
)

// StorefrontHandler serves the public read-only API consumed by the website.
type StorefrontHandler struct {
	catalog *catalog.Service
	content *content.Service
}

func NewStorefrontHandler(cat *catalog.Service, cnt *content.Service) *StorefrontHandler {
	return &StorefrontHandler{catalog: cat, content: cnt}
}

func (h *StorefrontHandler) Register(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/homepage", h.Homepage)
	api.GET("/products", h.ListProducts)
	api.GET("/products/:slug", h.GetProduct)
	api.GET("/products/:slug/related", h.RelatedProducts)
	api.GET("/collections", h.ListCollections)
	api.GET("/collections/:slug", h.GetCollection)
	api.GET("/collections/:slug/products", h.CollectionProducts)
	api.GET("/weave-types", h.ListWeaveTypes)
	api.GET("/pages/:slug", h.GetPage)
	api.GET("/settings", h.GetSettings)
}

// Homepage returns every section the landing page renders in one call.
func (h *StorefrontHandler) Homepage(c *gin.Context) {
	data := h.catalog.Homepage(c.Request.Context())
	hero, err := h.content.HomepageHero(c.Request.Context())
	if err == nil {
		respondData(c, http.StatusOK, gin.H{
			"hero":             hero,
			"featuredProducts": data.FeaturedProducts,
			"styleCollections": data.StyleCollections,
			"spaceCollections": data.SpaceCollections,
			"weaveTypes":       data.WeaveTypes,
		})
		return
	}
	// hero failure degrades like any other section
	respondData(c, http.StatusOK, gin.H{
		"hero":             nil,
		"featuredProducts": data.FeaturedProducts,
		"styleCollections": data.StyleCollections,
		"spaceCollections": data.SpaceCollections,
		"weaveTypes":       data.WeaveTypes,
	})
}

func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	active := true
	f := catalog.ProductFilter{Active: &active}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		f.Featured = &featured
	}
	f.Collection = c.Query("collection")
	f.Search = c.Query("search")
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && v > 0 {
		f.Limit = v
	}
	products, err := h.catalog.Products(c.Request.Context(), f)
	if err != nil {
		respondClassified(c, err, "load products")
		return
	}
	respondData(c, http.StatusOK, products)
}

func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	p, err := h.catalog.ProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondClassified(c, err, "load product")
		return
	}
	respondData(c, http.StatusOK, p)
}

func (h *StorefrontHandler) RelatedProducts(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.catalog.ProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondClassified(c, err, "load product")
		return
	}
	related, err := h.catalog.RelatedProducts(ctx, p, 4)
	if err != nil {
		respondClassified(c, err, "load related products")
		return
	}
	respondData(c, http.StatusOK, related)
}

func (h *StorefrontHandler) ListCollections(c *gin.Context) {
	active := true
	f := catalog.CollectionFilter{Active: &active}
	if v := c.Query("type"); v == catalog.CollectionTypeStyle || v == catalog.CollectionTypeSpace {
		f.Type = v
	}
	collections, err := h.catalog.Collections(c.Request.Context(), f)
	if err != nil {
		respondClassified(c, err, "load collections")
		return
	}
	respondData(c, http.StatusOK, collections)
}

func (h *StorefrontHandler) GetCollection(c *gin.Context) {
	col, err := h.catalog.CollectionBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondClassified(c, err, "load collection")
		return
	}
	respondData(c, http.StatusOK, col)
}

func (h *StorefrontHandler) CollectionProducts(c *gin.Context) {
	ctx := c.Request.Context()
	col, err := h.catalog.CollectionBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondClassified(c, err, "load collection")
		return
	}
	products, err := h.catalog.CollectionProducts(ctx, col.ID, 0)
	if err != nil {
		respondClassified(c, err, "load collection products")
		return
	}
	respondData(c, http.StatusOK, products)
}

func (h *StorefrontHandler) ListWeaveTypes(c *gin.Context) {
	active := true
	weaveTypes, err := h.catalog.WeaveTypes(c.Request.Context(), catalog.WeaveTypeFilter{Active: &active})
	if err != nil {
		respondClassified(c, err, "load weave types")
		return
	}
	respondData(c, http.StatusOK, weaveTypes)
}

func (h *StorefrontHandler) GetPage(c *gin.Context) {
	page, err := h.content.PageBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondClassified(c, err, "load page")
		return
	}
	respondData(c, http.StatusOK, page)
}

func (h *StorefrontHandler) GetSettings(c *gin.Context) {
	settings, err := h.content.SiteSettings(c.Request.Context())
	if err != nil {
		respondClassified(c, err, "load settings")
		return
	}
	respondData(c, http.StatusOK, settings)
}
