package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equza-living-co/go-services/internal/admin"
	"github.com/equza-living-co/go-services/internal/catalog"
	"github.com/equza-living-co/go-services/internal/catalog/repository"
	"github.com/equza-living-co/go-services/internal/content"
	"github.com/equza-living-co/go-services/internal/leads"
)

type adminFixture struct {
	router  *gin.Engine
	catalog *catalog.Service
	leads   *leads.Service
	token   string
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogSvc := catalog.NewService(
		repository.NewMemoryProductRepository(),
		repository.NewMemoryCollectionRepository(),
		repository.NewMemoryWeaveTypeRepository(),
	)
	contentSvc := content.NewService(repository.NewMemoryCollectionRepository())
	leadsSvc := leads.NewService(leads.NewMemoryRepository())

	const secret = "test-secret"
	access, err := admin.GenerateAccessToken(secret, &admin.Account{
		Email: "admin@equza.com", Name: "Administrator",
	}, 15*time.Minute)
	require.NoError(t, err)

	r := gin.New()
	NewAdminHandler(catalogSvc, contentSvc, leadsSvc, nil).Register(r, admin.NewJWTVerifier(secret), nil)
	return &adminFixture{router: r, catalog: catalogSvc, leads: leadsSvc, token: access}
}

func (f *adminFixture) do(t *testing.T, method, path, body string, authed bool) (int, envelope) {
	t.Helper()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if authed {
		r.Header.Set("Authorization", "Bearer "+f.token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

func TestAdminRequiresToken(t *testing.T) {
	f := newAdminFixture(t)

	code, _ := f.do(t, "POST", "/api/admin/products", `{"name":"Rug","slug":"rug"}`, false)
	assert.Equal(t, 401, code)

	f.token = "forged.token.value"
	code, _ = f.do(t, "POST", "/api/admin/products", `{"name":"Rug","slug":"rug"}`, true)
	assert.Equal(t, 401, code)
}

func TestAdminProductCRUD(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	code, env := f.do(t, "POST", "/api/admin/products", `{"name":"Rug","slug":"rug","isActive":true}`, true)
	require.Equal(t, 201, code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)

	p, err := f.catalog.ProductBySlug(ctx, "rug")
	require.NoError(t, err)
	assert.Equal(t, "Rug", p.Name)

	code, _ = f.do(t, "PUT", "/api/admin/products/"+created.ID, `{"name":"Better Rug"}`, true)
	require.Equal(t, 200, code)
	p, err = f.catalog.ProductBySlug(ctx, "rug")
	require.NoError(t, err)
	assert.Equal(t, "Better Rug", p.Name)

	code, _ = f.do(t, "DELETE", "/api/admin/products/"+created.ID, "", true)
	require.Equal(t, 200, code)
	_, err = f.catalog.ProductBySlug(ctx, "rug")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	code, _ = f.do(t, "DELETE", "/api/admin/products/"+created.ID, "", true)
	assert.Equal(t, 404, code)
}

func TestAdminRejectsEmptyBody(t *testing.T) {
	f := newAdminFixture(t)

	code, _ := f.do(t, "POST", "/api/admin/products", `{}`, true)
	assert.Equal(t, 400, code)
	code, _ = f.do(t, "POST", "/api/admin/collections", "", true)
	assert.Equal(t, 400, code)
}

func TestAdminLeadWorkflow(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	lead, err := f.leads.CreateContact(ctx, leads.ContactInput{
		Name: "Asha", Email: "asha@example.com", Message: "hi",
	})
	require.NoError(t, err)

	code, env := f.do(t, "GET", "/api/admin/leads", "", true)
	require.Equal(t, 200, code)
	var listed []leads.Lead
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)

	code, _ = f.do(t, "PATCH", "/api/admin/leads/"+lead.ID+"/status", `{"status":"contacted"}`, true)
	require.Equal(t, 200, code)

	code, _ = f.do(t, "PATCH", "/api/admin/leads/"+lead.ID+"/status", `{"status":"bogus"}`, true)
	assert.Equal(t, 400, code)

	code, env = f.do(t, "POST", "/api/admin/leads/"+lead.ID+"/notes", `{"text":"called them"}`, true)
	require.Equal(t, 201, code)
	var note leads.LeadNote
	require.NoError(t, json.Unmarshal(env.Data, &note))
	assert.Equal(t, "admin@equza.com", note.Author)

	got, err := f.leads.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, leads.StatusContacted, got.Status)
	require.Len(t, got.Notes, 1)

	code, _ = f.do(t, "DELETE", "/api/admin/leads/"+lead.ID, "", true)
	require.Equal(t, 200, code)
	code, _ = f.do(t, "GET", "/api/admin/leads/"+lead.ID, "", true)
	assert.Equal(t, 404, code)
}

func TestAdminContentEndpoints(t *testing.T) {
	f := newAdminFixture(t)

	code, _ := f.do(t, "PUT", "/api/admin/settings", `{"siteName":"Equza","contactEmail":"hello@equza.com"}`, true)
	require.Equal(t, 200, code)

	code, _ = f.do(t, "PUT", "/api/admin/hero", `{"title":"Crafted Calm"}`, true)
	require.Equal(t, 200, code)

	code, _ = f.do(t, "PUT", "/api/admin/pages/our-story", `{"title":"Our Story","isActive":true}`, true)
	require.Equal(t, 200, code)

	// reserved slugs cannot be written as pages
	code, _ = f.do(t, "PUT", "/api/admin/pages/site-settings", `{"title":"x"}`, true)
	assert.Equal(t, 400, code)
}

func TestUploadWithoutMediaStore(t *testing.T) {
	f := newAdminFixture(t)

	code, env := f.do(t, "POST", "/api/admin/uploads/banners", "", true)
	assert.Equal(t, 503, code)
	require.NotNil(t, env.Error)
}
