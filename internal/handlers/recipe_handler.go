package handlers

import (
	"net/http"
	"strconv"

	"github.com/Varun5711/recipebook/internal/logger"
	"github.com/Varun5711/recipebook/internal/metrics"
	"github.com/Varun5711/recipebook/internal/middleware"
	"github.com/Varun5711/recipebook/internal/models"
	"github.com/Varun5711/recipebook/internal/service"
	"github.com/gorilla/mux"
)

type RecipeHandler struct {
	recipes *service.RecipeService
	log     *logger.Logger
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		log:     logger.New("recipe-handler"),
	}
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RecipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	id, err := h.recipes.CreateRecipe(r.Context(), middleware.GetIdentity(r.Context()), &req)
	if err != nil {
		metrics.RecordRecipeOperation("create", outcome(err))
		writeServiceError(w, h.log, err)
		return
	}

	metrics.RecordRecipeOperation("create", "ok")
	respondJSON(w, http.StatusOK, models.CreateRecipeResponse{ID: id})
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(r)
	if !ok {
		respondError(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}

	recipe, err := h.recipes.GetRecipe(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(r)
	if !ok {
		respondError(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}

	var req models.RecipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.recipes.UpdateRecipe(r.Context(), middleware.GetIdentity(r.Context()), id, &req); err != nil {
		metrics.RecordRecipeOperation("update", outcome(err))
		writeServiceError(w, h.log, err)
		return
	}

	metrics.RecordRecipeOperation("update", "ok")
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(r)
	if !ok {
		respondError(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}

	if err := h.recipes.DeleteRecipe(r.Context(), middleware.GetIdentity(r.Context()), id); err != nil {
		metrics.RecordRecipeOperation("delete", outcome(err))
		writeServiceError(w, h.log, err)
		return
	}

	metrics.RecordRecipeOperation("delete", "ok")
	w.WriteHeader(http.StatusNoContent)
}

// Search takes exactly one of ?category= or ?name=. A parameter that is
// present but empty still counts.
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	recipes, err := h.recipes.SearchRecipes(r.Context(), queryParam(query, "category"), queryParam(query, "name"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, recipes)
}

func queryParam(query map[string][]string, key string) *string {
	values, ok := query[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func recipeID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isClientError(err):
		return "rejected"
	default:
		return "error"
	}
}
