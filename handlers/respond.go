package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/equza-living-co/go-services/internal/catalog"
	"github.com/equza-living-co/go-services/internal/content"
	"github.com/equza-living-co/go-services/internal/leads"
)

// Every storefront response carries the same envelope: {"data": ..., "error": ...}
// with exactly one side populated.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data, "error": nil})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"data": nil, "error": message})
}

// respondClassified maps an accessor error to a status code and a user-facing
// message. The operation name only shows up in the generic fallback message.
func respondClassified(c *gin.Context, err error, op string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, content.ErrNotFound), errors.Is(err, leads.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidInput), errors.Is(err, leads.ErrInvalidLead), errors.Is(err, leads.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, catalog.ErrTransform):
		status = http.StatusUnprocessableEntity
	}
	msg := catalog.Classify(err, op)
	if errors.Is(err, content.ErrNotFound) {
		msg = "The requested content was not found."
	}
	if errors.Is(err, leads.ErrInvalidLead) || errors.Is(err, leads.ErrInvalidStatus) {
		msg = "The request was invalid."
	}
	if errors.Is(err, leads.ErrNotFound) {
		msg = "The requested content was not found."
	}
	respondError(c, status, msg)
}
