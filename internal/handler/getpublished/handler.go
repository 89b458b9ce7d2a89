// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package getpublished implements the getPublishedRecipe callable.
package getpublished

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/platefeed/server/internal/auth"
	"github.com/platefeed/server/internal/platedb"
)

func NewHandler(store *firestore.Client) *Handler {
	return &Handler{
		store: store,
	}
}

type Handler struct {
	store *firestore.Client
}

type Request struct {
	RecipeID string `json:"recipeId"`
}

// Recipe is the published recipe as returned to clients.
type Recipe struct {
	ID             string            `json:"id"`
	AuthorID       string            `json:"authorId"`
	AuthorName     string            `json:"authorName"`
	Title          string            `json:"title"`
	ImageURL       string            `json:"imageUrl"`
	Ingredients    []string          `json:"ingredients"`
	Steps          []string          `json:"steps"`
	ReadyInMinutes int               `json:"readyInMinutes,omitempty"`
	Difficulty     string            `json:"difficulty,omitempty"`
	Nutrition      map[string]string `json:"nutrition,omitempty"`
	LikesCount     int64             `json:"likesCount"`
	SavesCount     int64             `json:"savesCount"`
	SharesCount    int64             `json:"sharesCount"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type Response struct {
	Recipe  Recipe `json:"recipe"`
	IsLiked bool   `json:"isLiked"`
	IsSaved bool   `json:"isSaved"`
}

// GetRecipe returns one published recipe with the caller's like/save state.
func (h *Handler) GetRecipe(ctx context.Context, req *Request) (*Response, error) {
	if req.RecipeID == "" {
		return nil, status.Error(codes.InvalidArgument, "recipeId is required")
	}
	uid := auth.UID(ctx)

	ref := h.store.Collection(platedb.CollectionPublishedRecipes).Doc(req.RecipeID)
	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, status.Error(codes.NotFound, "recipe not found")
		}
		return nil, fmt.Errorf("getpublished: reading recipe: %w", err)
	}

	var recipe platedb.PublishedRecipe
	if err := doc.DataTo(&recipe); err != nil {
		return nil, fmt.Errorf("getpublished: unmarshalling recipe: %w", err)
	}

	res := &Response{Recipe: ToClient(doc.Ref.ID, &recipe)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.IsLiked = memberOf(gctx, ref, platedb.SubcollectionLikes, uid)
		return nil
	})
	g.Go(func() error {
		res.IsSaved = memberOf(gctx, ref, platedb.SubcollectionSaves, uid)
		return nil
	})
	_ = g.Wait()

	return res, nil
}

func memberOf(ctx context.Context, recipe *firestore.DocumentRef, sub string, uid string) bool {
	doc, err := recipe.Collection(sub).Doc(uid).Get(ctx)
	return err == nil && doc.Exists()
}

// ToClient converts a stored recipe to its client shape.
func ToClient(id string, recipe *platedb.PublishedRecipe) Recipe {
	return Recipe{
		ID:             id,
		AuthorID:       recipe.AuthorID,
		AuthorName:     recipe.AuthorName,
		Title:          recipe.Title,
		ImageURL:       recipe.ImageURL,
		Ingredients:    recipe.Ingredients,
		Steps:          recipe.Steps,
		ReadyInMinutes: recipe.ReadyInMinutes,
		Difficulty:     string(recipe.Difficulty),
		Nutrition:      recipe.Nutrition,
		LikesCount:     recipe.LikesCount,
		SavesCount:     recipe.SavesCount,
		SharesCount:    recipe.SharesCount,
		CreatedAt:      recipe.CreatedAt,
	}
}
