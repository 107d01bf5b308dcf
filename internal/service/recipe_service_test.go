package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Varun5711/recipebook/internal/models"
	"github.com/Varun5711/recipebook/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipe(t *testing.T) {
	f := newFixture(t)
	f.register(t, alice)
	ctx := context.Background()

	before := time.Now()
	id := f.create(t, alice, recipeRequest("Tea", "beverage"))
	second := f.create(t, alice, recipeRequest("Coffee", "beverage"))
	assert.NotEqual(t, id, second)

	stored, err := f.store.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, alice, stored.AuthorEmail)
	assert.False(t, stored.Date.Before(before))
}

func TestCreateRecipe_UsesServerClock(t *testing.T) {
	f := newFixture(t)
	f.register(t, alice)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.recipes.now = func() time.Time { return fixed }

	id := f.create(t, alice, recipeRequest("Tea", "beverage"))

	recipe, err := f.recipes.GetRecipe(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, recipe.Date.Equal(fixed))
}

func TestCreateRecipe_Invalid(t *testing.T) {
	f := newFixture(t)
	f.register(t, alice)

	cases := map[string]func(r *models.RecipeRequest){
		"blank name":        func(r *models.RecipeRequest) { r.Name = "  " },
		"blank category":    func(r *models.RecipeRequest) { r.Category = "" },
		"blank description": func(r *models.RecipeRequest) { r.Description = "\t" },
		"no ingredients":    func(r *models.RecipeRequest) { r.Ingredients = nil },
		"no directions":     func(r *models.RecipeRequest) { r.Directions = []string{} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := recipeRequest("Tea", "beverage")
			mutate(req)

			_, err := f.recipes.CreateRecipe(context.Background(), alice, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	found, err := f.recipes.SearchRecipes(context.Background(), nil, strPtr(""))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestCreateRecipe_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.recipes.CreateRecipe(context.Background(), "ghost@x.io", recipeRequest("Tea", "beverage"))
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestGetRecipe(t *testing.T) {
	f := newFixture(t)
	f.register(t, alice)
	ctx := context.Background()

	id := f.create(t, alice, recipeRequest("Tea", "beverage"))

	recipe, err := f.recipes.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Tea", recipe.Name)

	body, err := json.Marshal(recipe)
	require.NoError(t, err)
	assert.NotContains(t, string(body), alice)
	assert.NotContains(t, string(body), "author")

	_, err = f.recipes.GetRecipe(ctx, id+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRecipe(t *testing.T) {
	f := newFixture(t)
	f.register(t, alice)
	ctx := context.Background()

	id := f.create(t, alice, recipeRequest("Tea", "beverage"))
	original, err := f.recipes.GetRecipe(ctx, id)
	require.NoError(t, err)

	update := recipeRequest("Green Tea", "drinks")
	update.Ingredients = []string{"leaves", "water"}
	require.NoError(t, f.recipes.UpdateRecipe(ctx, alice, id, update))

	updated, err := f.recipes.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", updated.Name)
	assert.Equal(t, "drinks", updated.Category)
	assert.Equal(t, []string{"leaves", "water"}, updated.Ingredients)
	assert.True(t, updated.Date.Equal(original.Date))
	assert.Equal(t, alice, updated.AuthorEmail)
}

func TestUpdateRecipe_OrderOfChecks(t *testing.T) {
	f := newFixture(t)
	f.register(t, alice, bob)
	ctx := context.Background()

	id := f.create(t, alice, recipeRequest("Tea", "beverage"))
	invalid := recipeRequest("", "beverage")

	err := f.recipes.UpdateRecipe(ctx, bob, id, invalid)
	assert.ErrorIs(t, err, ErrForbidden, "ownership is checked before the payload")

	err = f.recipes.UpdateRecipe(ctx, alice, id+100, invalid)
	assert.ErrorIs(t, err, ErrNotFound, "existence is checked first")

	err = f.recipes.UpdateRecipe(ctx, alice, id, invalid)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validation.ErrNameBlank)

	recipe, err := f.recipes.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Tea", recipe.Name)
}

func TestUpdateRecipe_OwnershipIsCaseSensitive(t *testing.T) {
	f := newFixture(t)
	f.register(t, alice)

	id := f.create(t, alice, recipeRequest("Tea", "beverage"))

	err := f.recipes.UpdateRecipe(context.Background(), "ALICE@X.IO", id, recipeRequest("Tea", "beverage"))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteRecipe(t *testing.T) {
	f := newFixture(t)
	f.register(t, alice, bob)
	ctx := context.Background()

	id := f.create(t, alice, recipeRequest("Tea", "beverage"))

	assert.ErrorIs(t, f.recipes.DeleteRecipe(ctx, bob, id), ErrForbidden)
	assert.ErrorIs(t, f.recipes.DeleteRecipe(ctx, alice, id+100), ErrNotFound)

	require.NoError(t, f.recipes.DeleteRecipe(ctx, alice, id))

	_, err := f.recipes.GetRecipe(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.recipes.DeleteRecipe(ctx, alice, id), ErrNotFound)
}

func TestSearchRecipes_RequiresExactlyOneFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.recipes.SearchRecipes(ctx, nil, nil)
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = f.recipes.SearchRecipes(ctx, strPtr("beverage"), strPtr("tea"))
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestSearchRecipes(t *testing.T) {
	f := newFixture(t)
	f.register(t, alice)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	f.recipes.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	f.create(t, alice, recipeRequest("Fresh Mint Tea", "beverage"))
	f.create(t, alice, recipeRequest("Warming Ginger Tea", "Beverage"))
	f.create(t, alice, recipeRequest("Pancakes", "breakfast"))

	byCategory, err := f.recipes.SearchRecipes(ctx, strPtr("BEVERAGE"), nil)
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	assert.Equal(t, "Warming Ginger Tea", byCategory[0].Name)
	assert.Equal(t, "Fresh Mint Tea", byCategory[1].Name)

	partial, err := f.recipes.SearchRecipes(ctx, strPtr("bev"), nil)
	require.NoError(t, err)
	assert.Empty(t, partial, "category must match exactly")

	byName, err := f.recipes.SearchRecipes(ctx, nil, strPtr("TEA"))
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, "Warming Ginger Tea", byName[0].Name)

	none, err := f.recipes.SearchRecipes(ctx, nil, strPtr("waffle"))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRecipeLifecycle_TwoUsers(t *testing.T) {
	f := newFixture(t)
	f.register(t, alice, bob)
	ctx := context.Background()

	id := f.create(t, alice, &models.RecipeRequest{
		Name:        "Fresh Mint Tea",
		Category:    "beverage",
		Description: "Light, aromatic and refreshing beverage, ...",
		Ingredients: []string{"boiled water", "honey", "fresh mint leaves"},
		Directions:  []string{"Boil water", "Pour boiling hot water into a mug", "Add fresh mint leaves", "Mix and let the mint leaves seep for 3-5 minutes", "Add honey and mix again"},
	})

	recipe, err := f.recipes.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Mint Tea", recipe.Name)

	update := recipeRequest("Mint Tea", "beverage")
	assert.ErrorIs(t, f.recipes.UpdateRecipe(ctx, bob, id, update), ErrForbidden)
	require.NoError(t, f.recipes.UpdateRecipe(ctx, alice, id, update))

	found, err := f.recipes.SearchRecipes(ctx, nil, strPtr("mint"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Mint Tea", found[0].Name)

	assert.ErrorIs(t, f.recipes.DeleteRecipe(ctx, bob, id), ErrForbidden)
	require.NoError(t, f.recipes.DeleteRecipe(ctx, alice, id))

	_, err = f.recipes.GetRecipe(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}
