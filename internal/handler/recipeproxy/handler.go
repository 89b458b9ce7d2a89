// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package recipeproxy serves the unauthenticated GET endpoints that proxy
// the third-party recipe API. Responses are {"success": true, ...} or
// {"success": false, "error": ...}; upstream failures are uniform 500s and
// upstream status codes are never forwarded.
package recipeproxy

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/platefeed/server/internal/params"
	"github.com/platefeed/server/internal/spoonacular"
)

const (
	randomDefault = 10
	randomMax     = 20
	searchDefault = 10
	searchMax     = 50
)

func NewHandler(recipes *spoonacular.Client) *Handler {
	return &Handler{
		recipes: recipes,
	}
}

type Handler struct {
	recipes *spoonacular.Client
}

// Random handles GET /recipesRandom?cuisine=&mealType=&number=.
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	number := params.Number(r.URL.Query().Get("number"), randomDefault, 1, randomMax)
	cuisines := params.CuisineList(r.URL.Query().Get("cuisine"))
	mealType := r.URL.Query().Get("mealType")

	recipes, err := h.recipes.Random(r.Context(), number, cuisines, mealType)
	if err != nil {
		slog.ErrorContext(r.Context(), "recipeproxy: fetching random recipes", "error", err)
		writeFailure(w, http.StatusInternalServerError, "failed to fetch recipes")
		return
	}
	writeSuccess(w, map[string]any{"recipes": recipes})
}

// Search handles GET /recipesSearch?query=&cuisine=&number=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query().Get("query")
	if query == "" {
		writeFailure(w, http.StatusBadRequest, "query parameter is required")
		return
	}
	number := params.Number(r.URL.Query().Get("number"), searchDefault, 1, searchMax)
	cuisines := params.CuisineList(r.URL.Query().Get("cuisine"))

	recipes, err := h.recipes.Search(r.Context(), query, number, cuisines)
	if err != nil {
		slog.ErrorContext(r.Context(), "recipeproxy: searching recipes", "error", err)
		writeFailure(w, http.StatusInternalServerError, "failed to search recipes")
		return
	}
	writeSuccess(w, map[string]any{"recipes": recipes})
}

// Info handles GET /recipesInfo?recipeId=.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	recipeID, ok := params.PositiveID(r.URL.Query().Get("recipeId"))
	if !ok {
		writeFailure(w, http.StatusBadRequest, "recipeId parameter must be a positive integer")
		return
	}

	recipe, err := h.recipes.Info(r.Context(), recipeID)
	if err != nil {
		slog.ErrorContext(r.Context(), "recipeproxy: fetching recipe info", "recipeId", recipeID, "error", err)
		writeFailure(w, http.StatusInternalServerError, "failed to fetch recipe")
		return
	}
	writeSuccess(w, map[string]any{"recipe": recipe})
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	writeFailure(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func writeSuccess(w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeFailure(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, code int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("recipeproxy: encoding response", "error", err)
	}
}
