package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Varun5711/recipebook/internal/logger"
	"github.com/Varun5711/recipebook/internal/models"
	"github.com/Varun5711/recipebook/internal/storage"
	"github.com/Varun5711/recipebook/internal/validation"
)

// RecipeService applies ownership and validation rules on top of the
// recipe store. Identities are emails already verified by the caller.
type RecipeService struct {
	recipes storage.RecipeStore
	users   storage.UserStore
	now     func() time.Time
	log     *logger.Logger
}

func NewRecipeService(recipes storage.RecipeStore, users storage.UserStore) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		users:   users,
		now:     time.Now,
		log:     logger.New("recipe-service"),
	}
}

func (s *RecipeService) CreateRecipe(ctx context.Context, identity string, req *models.RecipeRequest) (int64, error) {
	if err := validation.ValidateRecipe(req); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	author, err := s.users.GetUserByEmail(ctx, identity)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve author: %w", err)
	}
	if author == nil {
		return 0, ErrUnknownUser
	}

	recipe := &models.Recipe{
		Date:     s.now(),
		AuthorID: author.ID,
	}
	applyRequest(recipe, req)

	if err := s.recipes.CreateRecipe(ctx, recipe); err != nil {
		return 0, fmt.Errorf("failed to save recipe: %w", err)
	}

	s.log.Debug("recipe %d created by %s", recipe.ID, author.ID)
	return recipe.ID, nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	exists, err := s.recipes.RecipeExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check recipe: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil {
		return nil, ErrNotFound
	}

	return recipe, nil
}

// UpdateRecipe checks existence, then ownership, then the payload, so a
// non-owner is refused even when the payload is invalid.
func (s *RecipeService) UpdateRecipe(ctx context.Context, identity string, id int64, req *models.RecipeRequest) error {
	recipe, err := s.ownedRecipe(ctx, identity, id)
	if err != nil {
		return err
	}

	if err := validation.ValidateRecipe(req); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	applyRequest(recipe, req)

	if err := s.recipes.UpdateRecipe(ctx, recipe); err != nil {
		if errors.Is(err, storage.ErrRecipeNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	return nil
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, identity string, id int64) error {
	if _, err := s.ownedRecipe(ctx, identity, id); err != nil {
		return err
	}

	if err := s.recipes.DeleteRecipe(ctx, id); err != nil {
		if errors.Is(err, storage.ErrRecipeNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	s.log.Debug("recipe %d deleted by %s", id, identity)
	return nil
}

// SearchRecipes requires exactly one of category or name. A nil pointer
// means the filter was not supplied; an empty string is still a filter.
func (s *RecipeService) SearchRecipes(ctx context.Context, category, name *string) ([]*models.Recipe, error) {
	if (category == nil) == (name == nil) {
		return nil, fmt.Errorf("%w: exactly one of category or name is required", ErrBadRequest)
	}

	var (
		recipes []*models.Recipe
		err     error
	)
	if category != nil {
		recipes, err = s.recipes.FindByCategory(ctx, *category)
	} else {
		recipes, err = s.recipes.FindByNameContains(ctx, *name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}

	if recipes == nil {
		recipes = []*models.Recipe{}
	}
	return recipes, nil
}

func (s *RecipeService) ownedRecipe(ctx context.Context, identity string, id int64) (*models.Recipe, error) {
	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil {
		return nil, ErrNotFound
	}

	if recipe.AuthorEmail != identity {
		return nil, ErrForbidden
	}

	return recipe, nil
}

func applyRequest(recipe *models.Recipe, req *models.RecipeRequest) {
	recipe.Name = req.Name
	recipe.Category = req.Category
	recipe.Description = req.Description
	recipe.Ingredients = append([]string(nil), req.Ingredients...)
	recipe.Directions = append([]string(nil), req.Directions...)
}
