package storage

import (
	"context"
	"errors"

	"github.com/Varun5711/recipebook/internal/models"
	usermodel "github.com/Varun5711/recipebook/internal/models/user"
)

var (
	ErrDuplicate      = errors.New("duplicate key")
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrUserNotFound   = errors.New("user not found")
)

// RecipeStore persists recipes. Lookups return (nil, nil) when nothing
// matches. Recipes returned carry the author's email resolved from the
// author_id reference.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipe(ctx context.Context, id int64) (*models.Recipe, error)
	RecipeExists(ctx context.Context, id int64) (bool, error)
	UpdateRecipe(ctx context.Context, recipe *models.Recipe) error
	DeleteRecipe(ctx context.Context, id int64) error
	// FindByCategory matches case-insensitively, newest first.
	FindByCategory(ctx context.Context, category string) ([]*models.Recipe, error)
	// FindByNameContains matches a case-insensitive substring, newest first.
	FindByNameContains(ctx context.Context, fragment string) ([]*models.Recipe, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *usermodel.User) (*usermodel.User, error)
	// GetUserByEmail compares emails case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}
