package models

import "time"

// Recipe is both the stored entity and the read-facing representation.
// ID and author fields are never serialized.
type Recipe struct {
	ID          int64     `json:"-"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Ingredients []string  `json:"ingredients"`
	Directions  []string  `json:"directions"`
	AuthorID    string    `json:"-"`
	AuthorEmail string    `json:"-"`
}

// RecipeRequest is the payload for create and update.
type RecipeRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Directions  []string `json:"directions"`
}

type CreateRecipeResponse struct {
	ID int64 `json:"id"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
