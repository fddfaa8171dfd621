package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/equza-living-co/go-services/internal/admin"
	"github.com/equza-living-co/go-services/internal/catalog"
	"github.com/equza-living-co/go-services/internal/content"
	"github.com/equza-living-co/go-services/internal/leads"
	"github.com/equza-living-co/go-services/internal/storage"
	"github.com/equza-living-co/go-services/pkg/logger"
	"github.com/equza-living-co/go-services/pkg/middleware"
)

// AdminHandler serves the back-office API. Every route requires a verified
// admin token.
type AdminHandler struct {
	catalog *catalog.Service
	content *content.Service
	leads   *leads.Service
	media   *storage.MediaStore
}

func NewAdminHandler(cat *catalog.Service, cnt *content.Service, lds *leads.Service, media *storage.MediaStore) *AdminHandler {
	return &AdminHandler{catalog: cat, content: cnt, leads: lds, media: media}
}

func (h *AdminHandler) Register(r *gin.Engine, verifier middleware.Verifier, blacklist *admin.RedisBlacklist) {
	g := r.Group("/api/admin")
	var bl middleware.Blacklist
	if blacklist != nil {
		bl = blacklist
	}
	g.Use(middleware.AuthMiddleware(verifier, bl))

	g.POST("/products", h.CreateProduct)
	g.PUT("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)

	g.POST("/collections", h.CreateCollection)
	g.PUT("/collections/:id", h.UpdateCollection)
	g.DELETE("/collections/:id", h.DeleteCollection)

	g.POST("/weave-types", h.CreateWeaveType)
	g.PUT("/weave-types/:id", h.UpdateWeaveType)
	g.DELETE("/weave-types/:id", h.DeleteWeaveType)

	g.GET("/leads", h.ListLeads)
	g.GET("/leads/:id", h.GetLead)
	g.PATCH("/leads/:id/status", h.UpdateLeadStatus)
	g.POST("/leads/:id/notes", h.AddLeadNote)
	g.DELETE("/leads/:id", h.DeleteLead)

	g.PUT("/settings", h.UpdateSettings)
	g.PUT("/hero", h.UpdateHero)
	g.PUT("/pages/:slug", h.UpsertPage)

	g.POST("/uploads/:folder", h.Upload)
}

func (h *AdminHandler) bindFields(c *gin.Context) (map[string]interface{}, bool) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return nil, false
	}
	return fields, true
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}
	id := uuid.NewString()
	if err := h.catalog.CreateProduct(c.Request.Context(), id, fields); err != nil {
		respondClassified(c, err, "create product")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"id": id})
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}
	if err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondClassified(c, err, "update product")
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondClassified(c, err, "delete product")
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *AdminHandler) CreateCollection(c *gin.Context) {
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}
	id := uuid.NewString()
	if err := h.catalog.CreateCollection(c.Request.Context(), id, fields); err != nil {
		respondClassified(c, err, "create collection")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"id": id})
}

func (h *AdminHandler) UpdateCollection(c *gin.Context) {
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}
	if err := h.catalog.UpdateCollection(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondClassified(c, err, "update collection")
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *AdminHandler) DeleteCollection(c *gin.Context) {
	if err := h.catalog.DeleteCollection(c.Request.Context(), c.Param("id")); err != nil {
		respondClassified(c, err, "delete collection")
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *AdminHandler) CreateWeaveType(c *gin.Context) {
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}
	id := uuid.NewString()
	if err := h.catalog.CreateWeaveType(c.Request.Context(), id, fields); err != nil {
		respondClassified(c, err, "create weave type")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"id": id})
}

func (h *AdminHandler) UpdateWeaveType(c *gin.Context) {
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}
	if err := h.catalog.UpdateWeaveType(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondClassified(c, err, "update weave type")
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *AdminHandler) DeleteWeaveType(c *gin.Context) {
	if err := h.catalog.DeleteWeaveType(c.Request.Context(), c.Param("id")); err != nil {
		respondClassified(c, err, "delete weave type")
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *AdminHandler) ListLeads(c *gin.Context) {
	f := leads.Filter{
		Type:   leads.LeadType(c.Query("type")),
		Status: leads.LeadStatus(c.Query("status")),
	}
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && v > 0 {
		f.Limit = v
	}
	out, err := h.leads.List(c.Request.Context(), f)
	if err != nil {
		respondClassified(c, err, "list leads")
		return
	}
	respondData(c, http.StatusOK, out)
}

func (h *AdminHandler) GetLead(c *gin.Context) {
	lead, err := h.leads.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondClassified(c, err, "load lead")
		return
	}
	respondData(c, http.StatusOK, lead)
}

func (h *AdminHandler) UpdateLeadStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}
	if err := h.leads.UpdateStatus(c.Request.Context(), c.Param("id"), leads.LeadStatus(req.Status)); err != nil {
		respondClassified(c, err, "update lead")
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status})
}

func (h *AdminHandler) AddLeadNote(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}
	author := adminEmail(c)
	note, err := h.leads.AppendNote(c.Request.Context(), c.Param("id"), author, req.Text)
	if err != nil {
		respondClassified(c, err, "add note")
		return
	}
	respondData(c, http.StatusCreated, note)
}

func (h *AdminHandler) DeleteLead(c *gin.Context) {
	if err := h.leads.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondClassified(c, err, "delete lead")
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var in content.Settings
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}
	if err := h.content.UpdateSiteSettings(c.Request.Context(), in); err != nil {
		respondClassified(c, err, "update settings")
		return
	}
	respondData(c, http.StatusOK, gin.H{"updated": true})
}

func (h *AdminHandler) UpdateHero(c *gin.Context) {
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}
	if err := h.content.UpdateHomepageHero(c.Request.Context(), fields); err != nil {
		respondClassified(c, err, "update hero")
		return
	}
	respondData(c, http.StatusOK, gin.H{"updated": true})
}

func (h *AdminHandler) UpsertPage(c *gin.Context) {
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}
	if err := h.content.UpsertPage(c.Request.Context(), c.Param("slug"), fields); err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}
	respondData(c, http.StatusOK, gin.H{"slug": c.Param("slug")})
}

// Upload stores a multipart file in the media bucket and returns its storage
// key plus a presigned URL for immediate preview.
func (h *AdminHandler) Upload(c *gin.Context) {
	if h.media == nil {
		respondError(c, http.StatusServiceUnavailable, "Media storage is not configured.")
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}
	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}
	defer src.Close()

	key := storage.AdminUploadKey(c.Param("folder"), file.Filename)
	ref, err := h.media.Upload(c.Request.Context(), key, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		logger.Errorf("upload %q failed: %v", key, err)
		respondError(c, http.StatusInternalServerError, "Failed to store the file.")
		return
	}
	url, err := h.media.PresignedURL(c.Request.Context(), ref, 15*time.Minute)
	if err != nil {
		url = ""
	}
	respondData(c, http.StatusCreated, gin.H{"storageRef": ref, "url": url})
}

func adminEmail(c *gin.Context) string {
	if v, ok := c.Get("claims"); ok {
		if claims, ok := v.(map[string]interface{}); ok {
			if email, ok := claims["email"].(string); ok {
				return email
			}
		}
	}
	return "admin"
}
