package validation

import (
	"errors"
	"strings"

	"github.com/Varun5711/recipebook/internal/models"
)

var (
	ErrNameBlank        = errors.New("name must not be blank")
	ErrCategoryBlank    = errors.New("category must not be blank")
	ErrDescriptionBlank = errors.New("description must not be blank")
	ErrIngredientsEmpty = errors.New("ingredients must contain at least one entry")
	ErrDirectionsEmpty  = errors.New("directions must contain at least one entry")
)

// ValidateRecipe reports every failed constraint of a create or update
// payload. The result wraps each failure, so errors.Is works per field.
func ValidateRecipe(req *models.RecipeRequest) error {
	if req == nil {
		return errors.Join(ErrNameBlank, ErrCategoryBlank, ErrDescriptionBlank, ErrIngredientsEmpty, ErrDirectionsEmpty)
	}

	var errs []error

	if isBlank(req.Name) {
		errs = append(errs, ErrNameBlank)
	}
	if isBlank(req.Category) {
		errs = append(errs, ErrCategoryBlank)
	}
	if isBlank(req.Description) {
		errs = append(errs, ErrDescriptionBlank)
	}
	if len(req.Ingredients) == 0 {
		errs = append(errs, ErrIngredientsEmpty)
	}
	if len(req.Directions) == 0 {
		errs = append(errs, ErrDirectionsEmpty)
	}

	return errors.Join(errs...)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
