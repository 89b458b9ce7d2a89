// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package publishrecipe implements the publishRecipe callable.
package publishrecipe

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/platefeed/server/internal/auth"
	"github.com/platefeed/server/internal/images"
	"github.com/platefeed/server/internal/platedb"
)

func NewHandler(store *firestore.Client, uploader *images.Uploader) *Handler {
	return &Handler{
		store:    store,
		uploader: uploader,
	}
}

type Handler struct {
	store    *firestore.Client
	uploader *images.Uploader
}

type Request struct {
	Title          string            `json:"title"`
	ImageURL       string            `json:"imageUrl"`
	Ingredients    []string          `json:"ingredients"`
	Steps          []string          `json:"steps"`
	ReadyInMinutes int               `json:"readyInMinutes,omitempty"`
	Difficulty     string            `json:"difficulty,omitempty"`
	Nutrition      map[string]string `json:"nutrition,omitempty"`
}

type Response struct {
	RecipeID string `json:"recipeId"`
	ImageURL string `json:"imageUrl"`
}

// PublishRecipe validates the payload, re-hosts a data-URL image onto the
// public bucket, and creates the recipe document with all counters at zero
// and a server-assigned creation timestamp.
func (h *Handler) PublishRecipe(ctx context.Context, req *Request) (*Response, error) {
	recipe, err := validate(req)
	if err != nil {
		return nil, err
	}
	uid := auth.UID(ctx)
	recipe.AuthorID = uid
	recipe.AuthorName = h.authorName(ctx, uid)

	doc := h.store.Collection(platedb.CollectionPublishedRecipes).NewDoc()
	if images.IsDataURL(recipe.ImageURL) {
		url, err := h.uploader.SaveDataURL(ctx, fmt.Sprintf("public/recipes/%s/%s", uid, doc.ID), recipe.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("publishrecipe: saving image: %w", err)
		}
		recipe.ImageURL = url
	}

	if _, err := doc.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("publishrecipe: creating recipe: %w", err)
	}
	return &Response{
		RecipeID: doc.ID,
		ImageURL: recipe.ImageURL,
	}, nil
}

// authorName denormalizes the publisher's display name onto the recipe so
// feeds don't need a join. A missing profile falls back to an empty name.
func (h *Handler) authorName(ctx context.Context, uid string) string {
	doc, err := h.store.Collection(platedb.CollectionUsers).Doc(uid).Get(ctx)
	if err != nil {
		return ""
	}
	var user platedb.User
	if err := doc.DataTo(&user); err != nil {
		return ""
	}
	return user.DisplayName
}

// validate checks required fields and normalizes optional ones, returning
// the document to store. Optional fields stay zero-valued and are omitted
// from the stored document by their omitempty tags rather than written as
// null placeholders.
func validate(req *Request) (*platedb.PublishedRecipe, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, status.Error(codes.InvalidArgument, "title is required")
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return nil, status.Error(codes.InvalidArgument, "imageUrl is required")
	}
	if err := requireStringList("ingredients", req.Ingredients); err != nil {
		return nil, err
	}
	if err := requireStringList("steps", req.Steps); err != nil {
		return nil, err
	}

	recipe := &platedb.PublishedRecipe{
		Title:       strings.TrimSpace(req.Title),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Ingredients: trimList(req.Ingredients),
		Steps:       trimList(req.Steps),
	}
	if req.ReadyInMinutes < 0 {
		return nil, status.Error(codes.InvalidArgument, "readyInMinutes must be positive")
	}
	recipe.ReadyInMinutes = req.ReadyInMinutes
	if req.Difficulty != "" {
		d := platedb.Difficulty(strings.ToLower(strings.TrimSpace(req.Difficulty)))
		if !platedb.ValidDifficulty(d) {
			return nil, status.Error(codes.InvalidArgument, "difficulty must be easy, medium, or hard")
		}
		recipe.Difficulty = d
	}
	if len(req.Nutrition) > 0 {
		recipe.Nutrition = req.Nutrition
	}
	return recipe, nil
}

func requireStringList(field string, list []string) error {
	if len(list) == 0 {
		return status.Errorf(codes.InvalidArgument, "%s must be a non-empty list", field)
	}
	for _, s := range list {
		if strings.TrimSpace(s) == "" {
			return status.Errorf(codes.InvalidArgument, "%s entries must be non-empty strings", field)
		}
	}
	return nil
}

func trimList(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
