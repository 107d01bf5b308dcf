package service

import (
	"context"
	"testing"
	"time"

	"github.com/Varun5711/recipebook/internal/auth"
	"github.com/Varun5711/recipebook/internal/models"
	"github.com/Varun5711/recipebook/internal/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	alice = "alice@x.io"
	bob   = "bob@x.io"
)

type fixture struct {
	store   *storage.MemoryStorage
	users   *UserService
	recipes *RecipeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := storage.NewMemoryStorage()
	users := NewUserService(store, auth.NewPasswordHasher(bcrypt.MinCost), auth.NewJWTManager("test-secret", time.Hour))
	recipes := NewRecipeService(store, store)

	return &fixture{store: store, users: users, recipes: recipes}
}

func (f *fixture) register(t *testing.T, emails ...string) {
	t.Helper()
	for _, email := range emails {
		_, err := f.users.Register(context.Background(), email, "password123")
		require.NoError(t, err)
	}
}

func (f *fixture) create(t *testing.T, identity string, req *models.RecipeRequest) int64 {
	t.Helper()
	id, err := f.recipes.CreateRecipe(context.Background(), identity, req)
	require.NoError(t, err)
	return id
}

func recipeRequest(name, category string) *models.RecipeRequest {
	return &models.RecipeRequest{
		Name:        name,
		Category:    category,
		Description: "tasty",
		Ingredients: []string{"ingredient"},
		Directions:  []string{"cook it"},
	}
}

func strPtr(s string) *string {
	return &s
}
