package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equza-living-co/go-services/internal/leads"
)

func newFormsRouter(t *testing.T) (*gin.Engine, *leads.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := leads.NewService(leads.NewMemoryRepository())
	r := gin.New()
	NewFormsHandler(svc).Register(r, nil)
	return r, svc
}

func doPost(t *testing.T, r *gin.Engine, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestContactForm(t *testing.T) {
	r, svc := newFormsRouter(t)

	code, env := doPost(t, r, "/api/forms/contact", `{
		"name": "Asha", "email": "asha@example.com", "message": "Interested in rugs"
	}`)
	require.Equal(t, 201, code)
	assert.Nil(t, env.Error)

	created, err := svc.List(context.Background(), leads.Filter{Type: leads.TypeContact})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "asha@example.com", created[0].Email)
}

func TestContactFormValidation(t *testing.T) {
	r, _ := newFormsRouter(t)

	// missing required fields
	code, env := doPost(t, r, "/api/forms/contact", `{"name": "Asha"}`)
	require.Equal(t, 400, code)
	require.NotNil(t, env.Error)

	// malformed email
	code, _ = doPost(t, r, "/api/forms/contact", `{"name":"A","email":"not-an-email","message":"hi"}`)
	assert.Equal(t, 400, code)

	// invalid JSON
	code, _ = doPost(t, r, "/api/forms/contact", `{`)
	assert.Equal(t, 400, code)
}

func TestEnquiryFormRequiresProduct(t *testing.T) {
	r, _ := newFormsRouter(t)

	code, _ := doPost(t, r, "/api/forms/enquiry", `{
		"name": "A", "email": "a@example.com"
	}`)
	assert.Equal(t, 400, code)

	code, _ = doPost(t, r, "/api/forms/enquiry", `{
		"name": "A", "email": "a@example.com", "productId": "p1"
	}`)
	assert.Equal(t, 201, code)
}

func TestTradeAndCustomizeForms(t *testing.T) {
	r, svc := newFormsRouter(t)

	code, _ := doPost(t, r, "/api/forms/trade", `{
		"name": "B", "email": "b@example.com", "company": "Studio Nine"
	}`)
	require.Equal(t, 201, code)

	code, _ = doPost(t, r, "/api/forms/customize", `{
		"name": "C", "email": "c@example.com", "size": "8x10", "material": "wool"
	}`)
	require.Equal(t, 201, code)

	custom, err := svc.List(context.Background(), leads.Filter{Type: leads.TypeCustomize})
	require.NoError(t, err)
	require.Len(t, custom, 1)
	require.NotNil(t, custom[0].Customization)
	assert.Equal(t, "8x10", custom[0].Customization.Size)
}
