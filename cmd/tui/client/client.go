package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Varun5711/recipebook/internal/models"
	usermodel "github.com/Varun5711/recipebook/internal/models/user"
)

// APIError is a non-2xx answer from the recipe API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("recipe api: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("recipe api: %s", e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
	email   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Email() string {
	return c.email
}

func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/register", nil, usermodel.RegisterRequest{Email: email, Password: password}, nil)
}

// Login stores the issued token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*usermodel.AuthResponse, error) {
	var resp usermodel.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", nil, usermodel.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	c.token = resp.Token
	c.email = resp.Email
	return &resp, nil
}

func (c *Client) SearchByCategory(ctx context.Context, category string) ([]*models.Recipe, error) {
	return c.search(ctx, url.Values{"category": {category}})
}

func (c *Client) SearchByName(ctx context.Context, name string) ([]*models.Recipe, error) {
	return c.search(ctx, url.Values{"name": {name}})
}

func (c *Client) search(ctx context.Context, query url.Values) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	if err := c.do(ctx, http.MethodGet, "/api/recipe/search", query, nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/recipe/%d", id), nil, nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) CreateRecipe(ctx context.Context, req *models.RecipeRequest) (int64, error) {
	var resp models.CreateRecipeResponse
	if err := c.do(ctx, http.MethodPost, "/api/recipe/new", nil, req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) DeleteRecipe(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/recipe/%d", id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	var req *http.Request
	var err error
	if payload != nil {
		req, err = http.NewRequestWithContext(ctx, method, target, payload)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, target, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach recipe api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&errResp)
		return &APIError{Status: resp.StatusCode, Message: errResp.Message}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
