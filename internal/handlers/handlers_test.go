package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Varun5711/recipebook/internal/auth"
	"github.com/Varun5711/recipebook/internal/logger"
	"github.com/Varun5711/recipebook/internal/middleware"
	"github.com/Varun5711/recipebook/internal/models"
	usermodel "github.com/Varun5711/recipebook/internal/models/user"
	"github.com/Varun5711/recipebook/internal/service"
	"github.com/Varun5711/recipebook/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const password = "password123"

type apiClient struct {
	t      *testing.T
	server *httptest.Server
}

func newTestServer(t *testing.T) *apiClient {
	t.Helper()

	log := logger.New("test")
	log.SetOutput(io.Discard)

	store := storage.NewMemoryStorage()
	users := service.NewUserService(store, auth.NewPasswordHasher(bcrypt.MinCost), auth.NewJWTManager("test-secret", time.Hour))
	recipes := service.NewRecipeService(store, store)

	router := NewRouter(RouterConfig{
		Recipes:        NewRecipeHandler(recipes),
		Auth:           NewAuthHandler(users),
		Health:         NewHealthHandler(map[string]storage.Pinger{"storage": store}),
		AuthMiddleware: middleware.NewAuthMiddleware(users),
		Log:            log,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &apiClient{t: t, server: server}
}

func (c *apiClient) do(method, path, user string, body interface{}) *http.Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	if user != "" {
		req.SetBasicAuth(user, password)
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func (c *apiClient) register(email string) {
	c.t.Helper()
	resp := c.do(http.MethodPost, "/api/register", "", usermodel.RegisterRequest{Email: email, Password: password})
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
}

func (c *apiClient) createRecipe(user string, req models.RecipeRequest) int64 {
	c.t.Helper()

	resp := c.do(http.MethodPost, "/api/recipe/new", user, req)
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	var created models.CreateRecipeResponse
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&created))
	return created.ID
}

func mintTea() models.RecipeRequest {
	return models.RecipeRequest{
		Name:        "Fresh Mint Tea",
		Category:    "beverage",
		Description: "Light, aromatic and refreshing beverage, ...",
		Ingredients: []string{"boiled water", "honey", "fresh mint leaves"},
		Directions:  []string{"Boil water", "Pour boiling hot water into a mug", "Add fresh mint leaves"},
	}
}

func recipePath(id int64) string {
	return fmt.Sprintf("/api/recipe/%d", id)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRegister(t *testing.T) {
	c := newTestServer(t)

	c.register("alice@x.io")

	dup := c.do(http.MethodPost, "/api/register", "", usermodel.RegisterRequest{Email: "ALICE@x.io", Password: password})
	assert.Equal(t, http.StatusConflict, dup.StatusCode)

	bad := c.do(http.MethodPost, "/api/register", "", usermodel.RegisterRequest{Email: "alice", Password: password})
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)

	short := c.do(http.MethodPost, "/api/register", "", usermodel.RegisterRequest{Email: "bob@x.io", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, short.StatusCode)
}

func TestRegister_LongPassword(t *testing.T) {
	c := newTestServer(t)
	long := strings.Repeat("a", 80)

	resp := c.do(http.MethodPost, "/api/register", "", usermodel.RegisterRequest{Email: "carol@x.io", Password: long})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	login := c.do(http.MethodPost, "/api/login", "", usermodel.LoginRequest{Email: "carol@x.io", Password: long})
	assert.Equal(t, http.StatusOK, login.StatusCode)
}

func TestLoginAndBearerAuth(t *testing.T) {
	c := newTestServer(t)
	c.register("alice@x.io")

	resp := c.do(http.MethodPost, "/api/login", "", usermodel.LoginRequest{Email: "alice@x.io", Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login usermodel.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)

	payload, err := json.Marshal(mintTea())
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, c.server.URL+"/api/recipe/new", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)

	created, err := c.server.Client().Do(req)
	require.NoError(t, err)
	defer created.Body.Close()
	assert.Equal(t, http.StatusOK, created.StatusCode)

	wrong := c.do(http.MethodPost, "/api/login", "", usermodel.LoginRequest{Email: "alice@x.io", Password: "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, wrong.StatusCode)
}

func TestRecipeEndpoints_RequireAuth(t *testing.T) {
	c := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/recipe/1", "", nil).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/recipe/new", "", mintTea()).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/recipe/search?name=tea", "", nil).StatusCode)
}

func TestCreateAndGetRecipe(t *testing.T) {
	c := newTestServer(t)
	c.register("alice@x.io")

	id := c.createRecipe("alice@x.io", mintTea())

	resp := c.do(http.MethodGet, recipePath(id), "alice@x.io", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Fresh Mint Tea", body["name"])
	assert.Contains(t, body, "date")
	assert.NotContains(t, body, "id")
	assert.NotContains(t, body, "author")
	assert.NotContains(t, body, "author_email")

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/recipe/9999", "alice@x.io", nil).StatusCode)
}

func TestCreateRecipe_Invalid(t *testing.T) {
	c := newTestServer(t)
	c.register("alice@x.io")

	invalid := mintTea()
	invalid.Directions = nil
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/recipe/new", "alice@x.io", invalid).StatusCode)

	req, err := http.NewRequest(http.MethodPost, c.server.URL+"/api/recipe/new", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	req.SetBasicAuth("alice@x.io", password)
	resp, err := c.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateAndDeleteRecipe(t *testing.T) {
	c := newTestServer(t)
	c.register("alice@x.io")
	c.register("bob@x.io")

	id := c.createRecipe("alice@x.io", mintTea())

	update := mintTea()
	update.Name = "Mint Tea"

	assert.Equal(t, http.StatusForbidden, c.do(http.MethodPut, recipePath(id), "bob@x.io", update).StatusCode)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPut, "/api/recipe/9999", "alice@x.io", update).StatusCode)

	invalid := update
	invalid.Name = " "
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodPut, recipePath(id), "bob@x.io", invalid).StatusCode)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, recipePath(id), "alice@x.io", invalid).StatusCode)

	assert.Equal(t, http.StatusNoContent, c.do(http.MethodPut, recipePath(id), "alice@x.io", update).StatusCode)
	body := decodeBody(t, c.do(http.MethodGet, recipePath(id), "bob@x.io", nil))
	assert.Equal(t, "Mint Tea", body["name"])

	assert.Equal(t, http.StatusForbidden, c.do(http.MethodDelete, recipePath(id), "bob@x.io", nil).StatusCode)
	assert.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, recipePath(id), "alice@x.io", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, recipePath(id), "alice@x.io", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, recipePath(id), "alice@x.io", nil).StatusCode)
}

func TestSearchRecipes(t *testing.T) {
	c := newTestServer(t)
	c.register("alice@x.io")

	c.createRecipe("alice@x.io", mintTea())
	pancakes := mintTea()
	pancakes.Name = "Pancakes"
	pancakes.Category = "breakfast"
	c.createRecipe("alice@x.io", pancakes)

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/recipe/search", "alice@x.io", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/recipe/search?category=beverage&name=tea", "alice@x.io", nil).StatusCode)

	resp := c.do(http.MethodGet, "/api/recipe/search?category=BEVERAGE", "alice@x.io", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var byCategory []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&byCategory))
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Fresh Mint Tea", byCategory[0]["name"])

	resp = c.do(http.MethodGet, "/api/recipe/search?name=", "alice@x.io", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.Len(t, all, 2)
	assert.Equal(t, "Pancakes", all[0]["name"], "newest first")

	resp = c.do(http.MethodGet, "/api/recipe/search?name=waffle", "alice@x.io", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestHealthAndMetrics(t *testing.T) {
	c := newTestServer(t)

	health := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, health.StatusCode)
	assert.Equal(t, "up", decodeBody(t, health)["storage"])

	c.do(http.MethodGet, "/api/recipe/search?name=x", "", nil)

	metricsResp := c.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, metricsResp.StatusCode)
	raw, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `route="/api/recipe/search"`)
}

func TestDocs(t *testing.T) {
	c := newTestServer(t)

	ui := c.do(http.MethodGet, "/docs", "", nil)
	require.Equal(t, http.StatusOK, ui.StatusCode)
	assert.Contains(t, ui.Header.Get("Content-Type"), "text/html")

	doc := c.do(http.MethodGet, "/openapi.yaml", "", nil)
	require.Equal(t, http.StatusOK, doc.StatusCode)
	raw, err := io.ReadAll(doc.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "/api/recipe/search:")
}

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error {
	return errors.New("connection refused")
}

func TestHealth_Unavailable(t *testing.T) {
	h := NewHealthHandler(map[string]storage.Pinger{"storage": failingPinger{}})
	h.log.SetOutput(io.Discard)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWriteServiceError(t *testing.T) {
	log := logger.New("test")
	log.SetOutput(io.Discard)

	cases := []struct {
		err  error
		want int
	}{
		{service.ErrValidation, http.StatusBadRequest},
		{service.ErrBadRequest, http.StatusBadRequest},
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrConflict, http.StatusConflict},
		{service.ErrUnknownUser, http.StatusUnauthorized},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeServiceError(rec, log, tc.err)
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
	}
}
