package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Varun5711/recipebook/internal/models"
	usermodel "github.com/Varun5711/recipebook/internal/models/user"
)

// MemoryStorage keeps users and recipes in process. It implements both
// RecipeStore and UserStore because recipes resolve their author
// through the user table, as the Postgres schema does with a join.
type MemoryStorage struct {
	mu      sync.RWMutex
	users   map[string]*usermodel.User
	recipes map[int64]*models.Recipe
	nextID  int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:   make(map[string]*usermodel.User),
		recipes: make(map[int64]*models.Recipe),
	}
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStorage) CreateUser(ctx context.Context, user *usermodel.User) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return nil, fmt.Errorf("failed to create user: %w", ErrDuplicate)
	}
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, fmt.Errorf("failed to create user: %w", ErrDuplicate)
		}
	}

	stored := *user
	s.users[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			out := *user
			return &out, nil
		}
	}

	return nil, nil
}

func (s *MemoryStorage) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[userID]; !exists {
		return ErrUserNotFound
	}

	delete(s.users, userID)
	for id, recipe := range s.recipes {
		if recipe.AuthorID == userID {
			delete(s.recipes, id)
		}
	}

	return nil
}

func (s *MemoryStorage) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[recipe.AuthorID]; !exists {
		return fmt.Errorf("failed to save recipe: author %s does not exist", recipe.AuthorID)
	}

	s.nextID++
	recipe.ID = s.nextID
	s.recipes[recipe.ID] = copyRecipe(recipe)

	return nil
}

func (s *MemoryStorage) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipe, exists := s.recipes[id]
	if !exists {
		return nil, nil
	}

	return s.resolve(recipe), nil
}

func (s *MemoryStorage) RecipeExists(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.recipes[id]
	return exists, nil
}

func (s *MemoryStorage) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.recipes[recipe.ID]
	if !exists {
		return ErrRecipeNotFound
	}

	updated := copyRecipe(recipe)
	updated.Date = stored.Date
	updated.AuthorID = stored.AuthorID
	s.recipes[recipe.ID] = updated

	return nil
}

func (s *MemoryStorage) DeleteRecipe(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.recipes[id]; !exists {
		return ErrRecipeNotFound
	}

	delete(s.recipes, id)
	return nil
}

func (s *MemoryStorage) FindByCategory(ctx context.Context, category string) ([]*models.Recipe, error) {
	return s.filter(func(r *models.Recipe) bool {
		return strings.EqualFold(r.Category, category)
	}), nil
}

func (s *MemoryStorage) FindByNameContains(ctx context.Context, fragment string) ([]*models.Recipe, error) {
	needle := strings.ToLower(fragment)
	return s.filter(func(r *models.Recipe) bool {
		return strings.Contains(strings.ToLower(r.Name), needle)
	}), nil
}

func (s *MemoryStorage) filter(match func(*models.Recipe) bool) []*models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipes := make([]*models.Recipe, 0)
	for _, recipe := range s.recipes {
		if match(recipe) {
			recipes = append(recipes, s.resolve(recipe))
		}
	}

	sort.Slice(recipes, func(i, j int) bool {
		if recipes[i].Date.Equal(recipes[j].Date) {
			return recipes[i].ID > recipes[j].ID
		}
		return recipes[i].Date.After(recipes[j].Date)
	})

	return recipes
}

// resolve returns a detached copy with the author email filled in. Callers
// must hold the read lock.
func (s *MemoryStorage) resolve(recipe *models.Recipe) *models.Recipe {
	out := copyRecipe(recipe)
	if author, ok := s.users[recipe.AuthorID]; ok {
		out.AuthorEmail = author.Email
	}
	return out
}

func copyRecipe(recipe *models.Recipe) *models.Recipe {
	out := *recipe
	out.Ingredients = append([]string(nil), recipe.Ingredients...)
	out.Directions = append([]string(nil), recipe.Directions...)
	out.AuthorEmail = ""
	return &out
}
