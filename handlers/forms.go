package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/equza-living-co/go-services/internal/leads"
	"github.com/equza-living-co/go-services/pkg/logger"
)

// FormsHandler accepts the public lead forms. Validation failures return a
// generic message; field-level errors are left to client-side validation.
type FormsHandler struct {
	leads *leads.Service
}

func NewFormsHandler(svc *leads.Service) *FormsHandler {
	return &FormsHandler{leads: svc}
}

// Register mounts the form endpoints, optionally behind a rate limiter.
func (h *FormsHandler) Register(r *gin.Engine, limit gin.HandlerFunc) {
	forms := r.Group("/api/forms")
	if limit != nil {
		forms.Use(limit)
	}
	forms.POST("/contact", h.Contact)
	forms.POST("/customize", h.Customize)
	forms.POST("/enquiry", h.Enquiry)
	forms.POST("/trade", h.Trade)
}

func (h *FormsHandler) Contact(c *gin.Context) {
	var in leads.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}
	lead, err := h.leads.CreateContact(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "contact")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"id": lead.ID})
}

func (h *FormsHandler) Customize(c *gin.Context) {
	var in leads.CustomizeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}
	lead, err := h.leads.CreateCustomize(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "customize")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"id": lead.ID})
}

func (h *FormsHandler) Enquiry(c *gin.Context) {
	var in leads.EnquiryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}
	lead, err := h.leads.CreateProductEnquiry(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "enquiry")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"id": lead.ID})
}

func (h *FormsHandler) Trade(c *gin.Context) {
	var in leads.TradeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "The request was invalid.")
		return
	}
	lead, err := h.leads.CreateTrade(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "trade")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"id": lead.ID})
}

func (h *FormsHandler) fail(c *gin.Context, err error, form string) {
	logger.Warnf("form %s submission failed: %v", form, err)
	respondClassified(c, err, "submit form")
}
