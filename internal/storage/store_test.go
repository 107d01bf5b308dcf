package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Varun5711/recipebook/internal/models"
	usermodel "github.com/Varun5711/recipebook/internal/models/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite exercises the RecipeStore and UserStore contracts. The
// memory and Postgres implementations both run it.
func runStoreSuite(t *testing.T, recipes RecipeStore, users UserStore) {
	ctx := context.Background()
	suffix := uuid.NewString()[:8]
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	newUser := func(t *testing.T, name string) *usermodel.User {
		t.Helper()
		user, err := users.CreateUser(ctx, &usermodel.User{
			ID:           uuid.NewString(),
			Email:        fmt.Sprintf("%s-%s@x.io", name, suffix),
			PasswordHash: "hash",
			CreatedAt:    base,
		})
		require.NoError(t, err)
		return user
	}

	newRecipe := func(t *testing.T, author *usermodel.User, name, category string, offset time.Duration) *models.Recipe {
		t.Helper()
		recipe := &models.Recipe{
			Name:        name,
			Category:    category,
			Date:        base.Add(offset),
			Description: "description",
			Ingredients: []string{"a", "b"},
			Directions:  []string{"step"},
			AuthorID:    author.ID,
		}
		require.NoError(t, recipes.CreateRecipe(ctx, recipe))
		require.NotZero(t, recipe.ID)
		return recipe
	}

	t.Run("users", func(t *testing.T) {
		alice := newUser(t, "alice")

		found, err := users.GetUserByEmail(ctx, "ALICE-"+suffix+"@X.IO")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, alice.ID, found.ID)
		assert.Equal(t, "hash", found.PasswordHash)

		_, err = users.CreateUser(ctx, &usermodel.User{ID: uuid.NewString(), Email: alice.Email, PasswordHash: "x", CreatedAt: base})
		assert.ErrorIs(t, err, ErrDuplicate)

		missing, err := users.GetUserByEmail(ctx, "missing-"+suffix+"@x.io")
		require.NoError(t, err)
		assert.Nil(t, missing)

		assert.ErrorIs(t, users.DeleteUser(ctx, uuid.NewString()), ErrUserNotFound)
	})

	t.Run("recipe lifecycle", func(t *testing.T) {
		bob := newUser(t, "bob")
		recipe := newRecipe(t, bob, "Soup", "Dinner-"+suffix, 0)

		exists, err := recipes.RecipeExists(ctx, recipe.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		got, err := recipes.GetRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, bob.Email, got.AuthorEmail)
		assert.Equal(t, []string{"a", "b"}, got.Ingredients)
		assert.True(t, got.Date.Equal(base))

		got.Name = "Tomato Soup"
		got.Directions = []string{"chop", "simmer"}
		require.NoError(t, recipes.UpdateRecipe(ctx, got))

		updated, err := recipes.GetRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tomato Soup", updated.Name)
		assert.Equal(t, []string{"chop", "simmer"}, updated.Directions)
		assert.True(t, updated.Date.Equal(base))

		require.NoError(t, recipes.DeleteRecipe(ctx, recipe.ID))
		assert.ErrorIs(t, recipes.DeleteRecipe(ctx, recipe.ID), ErrRecipeNotFound)

		gone, err := recipes.GetRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		exists, err = recipes.RecipeExists(ctx, recipe.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		got.ID = recipe.ID
		assert.ErrorIs(t, recipes.UpdateRecipe(ctx, got), ErrRecipeNotFound)
	})

	t.Run("search", func(t *testing.T) {
		carol := newUser(t, "carol")
		category := "Breakfast-" + suffix

		older := newRecipe(t, carol, "Pancakes "+suffix, category, time.Minute)
		newer := newRecipe(t, carol, "Waffles "+suffix, strings.ToUpper(category), 2*time.Minute)
		newRecipe(t, carol, "100% Rye "+suffix, "Bread-"+suffix, 3*time.Minute)

		byCategory, err := recipes.FindByCategory(ctx, category)
		require.NoError(t, err)
		require.Len(t, byCategory, 2)
		assert.Equal(t, newer.ID, byCategory[0].ID)
		assert.Equal(t, older.ID, byCategory[1].ID)

		byName, err := recipes.FindByNameContains(ctx, "CAKES "+suffix)
		require.NoError(t, err)
		require.Len(t, byName, 1)
		assert.Equal(t, older.ID, byName[0].ID)

		literal, err := recipes.FindByNameContains(ctx, "0% rye "+suffix)
		require.NoError(t, err)
		require.Len(t, literal, 1)

		none, err := recipes.FindByCategory(ctx, "nothing-"+suffix)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("delete user cascades", func(t *testing.T) {
		dave := newUser(t, "dave")
		recipe := newRecipe(t, dave, "Stew", "Dinner", 0)

		require.NoError(t, users.DeleteUser(ctx, dave.ID))

		gone, err := recipes.GetRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}
