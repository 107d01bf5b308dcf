package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Varun5711/recipebook/internal/database"
	"github.com/Varun5711/recipebook/internal/models"
	"github.com/jackc/pgx/v5"
)

const recipeColumns = `
	r.id, r.name, r.category, r.created_at, r.description,
	r.ingredients, r.directions, r.author_id, u.email
`

type PostgresStorage struct {
	db *database.DBManager
}

func NewPostgresStorage(db *database.DBManager) *PostgresStorage {
	return &PostgresStorage{
		db: db,
	}
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStorage) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	query := `
		INSERT INTO recipes (name, category, created_at, description, ingredients, directions, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := s.db.Write().QueryRow(ctx, query,
		recipe.Name,
		recipe.Category,
		recipe.Date,
		recipe.Description,
		recipe.Ingredients,
		recipe.Directions,
		recipe.AuthorID,
	).Scan(&recipe.ID)

	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}

	return nil
}

// GetRecipe reads from the primary: it backs the existence and ownership
// checks that precede writes.
func (s *PostgresStorage) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + `
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $1
	`

	recipe, err := scanRecipe(s.db.Write().QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	return recipe, nil
}

func (s *PostgresStorage) RecipeExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM recipes WHERE id = $1)`
	err := s.db.Write().QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check recipe: %w", err)
	}
	return exists, nil
}

func (s *PostgresStorage) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	query := `
		UPDATE recipes
		SET name = $1,
			category = $2,
			description = $3,
			ingredients = $4,
			directions = $5
		WHERE id = $6
	`

	cmdTag, err := s.db.Write().Exec(ctx, query,
		recipe.Name,
		recipe.Category,
		recipe.Description,
		recipe.Ingredients,
		recipe.Directions,
		recipe.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

func (s *PostgresStorage) DeleteRecipe(ctx context.Context, id int64) error {
	cmdTag, err := s.db.Write().Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

func (s *PostgresStorage) FindByCategory(ctx context.Context, category string) ([]*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + `
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		WHERE lower(r.category) = lower($1)
		ORDER BY r.created_at DESC, r.id DESC
	`

	return s.queryRecipes(ctx, query, category)
}

// FindByNameContains uses strpos rather than LIKE so that % and _ in the
// fragment are matched literally.
func (s *PostgresStorage) FindByNameContains(ctx context.Context, fragment string) ([]*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + `
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		WHERE strpos(lower(r.name), lower($1)) > 0
		ORDER BY r.created_at DESC, r.id DESC
	`

	return s.queryRecipes(ctx, query, fragment)
}

func (s *PostgresStorage) queryRecipes(ctx context.Context, query string, args ...any) ([]*models.Recipe, error) {
	rows, err := s.db.Read().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]*models.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return recipes, nil
}

func scanRecipe(row pgx.Row) (*models.Recipe, error) {
	var recipe models.Recipe
	err := row.Scan(
		&recipe.ID,
		&recipe.Name,
		&recipe.Category,
		&recipe.Date,
		&recipe.Description,
		&recipe.Ingredients,
		&recipe.Directions,
		&recipe.AuthorID,
		&recipe.AuthorEmail,
	)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}
