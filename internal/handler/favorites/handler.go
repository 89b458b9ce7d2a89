// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package favorites implements the per-user favorite recipe callables.
// Favorites use deterministic composite document IDs so saving is an
// idempotent upsert, never an append.
package favorites

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
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

func (h *Handler) favorites(ctx context.Context) *firestore.CollectionRef {
	return h.store.Collection(platedb.CollectionUsers).Doc(auth.UID(ctx)).Collection(platedb.SubcollectionFavorites)
}

type ToggleRequest struct {
	// RecipeID is the PublishedRecipes document ID.
	RecipeID string `json:"recipeId"`
}

type ToggleResponse struct {
	// Favorited is the membership state after the call.
	Favorited bool `json:"favorited"`
}

// TogglePublished flips the favorite state of a published recipe for the
// caller. The recipe content is denormalized into the favorite at save time
// so the favorite survives the publisher deleting the recipe or their
// account. The exists-check and the write run in one transaction; two rapid
// toggles cannot converge on a state that disagrees with the membership.
func (h *Handler) TogglePublished(ctx context.Context, req *ToggleRequest) (*ToggleResponse, error) {
	if req.RecipeID == "" {
		return nil, status.Error(codes.InvalidArgument, "recipeId is required")
	}

	recipeRef := h.store.Collection(platedb.CollectionPublishedRecipes).Doc(req.RecipeID)
	favRef := h.favorites(ctx).Doc(platedb.FavoriteKeyPublished(req.RecipeID))

	var favorited bool
	err := h.store.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		exists := true
		if _, err := tx.Get(favRef); err != nil {
			if status.Code(err) != codes.NotFound {
				return fmt.Errorf("favorites: reading favorite: %w", err)
			}
			exists = false
		}
		if exists {
			favorited = false
			return tx.Delete(favRef)
		}

		doc, err := tx.Get(recipeRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return status.Error(codes.NotFound, "recipe not found")
			}
			return fmt.Errorf("favorites: reading recipe: %w", err)
		}
		var recipe platedb.PublishedRecipe
		if err := doc.DataTo(&recipe); err != nil {
			return fmt.Errorf("favorites: unmarshalling recipe: %w", err)
		}

		favorited = true
		return tx.Set(favRef, platedb.FavoriteRecipe{
			Source:      platedb.FavoriteSourcePublished,
			SourceID:    req.RecipeID,
			Title:       recipe.Title,
			ImageURL:    recipe.ImageURL,
			Ingredients: recipe.Ingredients,
			Steps:       recipe.Steps,
		})
	})
	if err != nil {
		return nil, err
	}
	return &ToggleResponse{Favorited: favorited}, nil
}

type SaveRequest struct {
	// Source is "spoonacular" or "custom"; published recipes go through
	// TogglePublished.
	Source string `json:"source"`

	// SpoonacularID is the numeric recipe id for the spoonacular source.
	SpoonacularID int64 `json:"spoonacularId,omitempty"`

	// Denormalized display fields. Required for custom recipes; optional
	// for spoonacular ones (title/image make the list view self-contained).
	Title       string   `json:"title,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Steps       []string `json:"steps,omitempty"`

	// Category is an optional free-text category label.
	Category string `json:"category,omitempty"`
}

type SaveResponse struct {
	// FavoriteID is the composite document ID of the favorite.
	FavoriteID string `json:"favoriteId"`
}

// Save upserts a favorite for a spoonacular or custom recipe. Saving the
// same spoonacular id twice overwrites the existing document in place.
func (h *Handler) Save(ctx context.Context, req *SaveRequest) (*SaveResponse, error) {
	fav := platedb.FavoriteRecipe{
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		Category:    req.Category,
	}

	var key string
	switch platedb.FavoriteSource(req.Source) {
	case platedb.FavoriteSourceSpoonacular:
		if req.SpoonacularID <= 0 {
			return nil, status.Error(codes.InvalidArgument, "spoonacularId must be a positive integer")
		}
		fav.Source = platedb.FavoriteSourceSpoonacular
		fav.SourceID = fmt.Sprint(req.SpoonacularID)
		key = platedb.FavoriteKeySpoonacular(req.SpoonacularID)
	case platedb.FavoriteSourceCustom:
		if req.Title == "" {
			return nil, status.Error(codes.InvalidArgument, "title is required for custom recipes")
		}
		now := time.Now()
		fav.Source = platedb.FavoriteSourceCustom
		fav.SourceID = fmt.Sprint(now.UnixMilli())
		key = platedb.FavoriteKeyCustom(now)
	default:
		return nil, status.Error(codes.InvalidArgument, "source must be spoonacular or custom")
	}

	if _, err := h.favorites(ctx).Doc(key).Set(ctx, fav); err != nil {
		return nil, fmt.Errorf("favorites: saving favorite: %w", err)
	}
	return &SaveResponse{FavoriteID: key}, nil
}

type RemoveRequest struct {
	// FavoriteID is the composite document ID to remove.
	FavoriteID string `json:"favoriteId"`
}

type RemoveResponse struct{}

// Remove deletes a favorite. Removing an absent favorite is a no-op.
func (h *Handler) Remove(ctx context.Context, req *RemoveRequest) (*RemoveResponse, error) {
	if req.FavoriteID == "" {
		return nil, status.Error(codes.InvalidArgument, "favoriteId is required")
	}
	if _, err := h.favorites(ctx).Doc(req.FavoriteID).Delete(ctx); err != nil {
		return nil, fmt.Errorf("favorites: removing favorite: %w", err)
	}
	return &RemoveResponse{}, nil
}

type SetCategoryRequest struct {
	FavoriteID string `json:"favoriteId"`

	// Category is the new label; empty clears the category.
	Category string `json:"category"`
}

type SetCategoryResponse struct{}

// SetCategory updates the free-text category label of a favorite. The label
// is not validated against the Categories subcollection; deleting a
// category leaves labels dangling.
func (h *Handler) SetCategory(ctx context.Context, req *SetCategoryRequest) (*SetCategoryResponse, error) {
	if req.FavoriteID == "" {
		return nil, status.Error(codes.InvalidArgument, "favoriteId is required")
	}
	_, err := h.favorites(ctx).Doc(req.FavoriteID).Update(ctx, []firestore.Update{
		{Path: "category", Value: req.Category},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, status.Error(codes.NotFound, "favorite not found")
		}
		return nil, fmt.Errorf("favorites: updating category: %w", err)
	}
	return &SetCategoryResponse{}, nil
}

type ListRequest struct {
	// Category filters by label when set.
	Category string `json:"category,omitempty"`
}

// Favorite is a favorite as returned to clients.
type Favorite struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	SourceID    string    `json:"sourceId"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"imageUrl"`
	Ingredients []string  `json:"ingredients,omitempty"`
	Steps       []string  `json:"steps,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListResponse struct {
	Favorites []Favorite `json:"favorites"`
}

// List returns the caller's favorites, newest first.
func (h *Handler) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	q := h.favorites(ctx).Query
	if req.Category != "" {
		q = q.Where("category", "==", req.Category)
	}
	docs, err := q.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("favorites: listing favorites: %w", err)
	}

	favorites := make([]Favorite, len(docs))
	for i, doc := range docs {
		var fav platedb.FavoriteRecipe
		if err := doc.DataTo(&fav); err != nil {
			return nil, fmt.Errorf("favorites: unmarshalling favorite: %w", err)
		}
		favorites[i] = Favorite{
			ID:          doc.Ref.ID,
			Source:      string(fav.Source),
			SourceID:    fav.SourceID,
			Title:       fav.Title,
			ImageURL:    fav.ImageURL,
			Ingredients: fav.Ingredients,
			Steps:       fav.Steps,
			Category:    fav.Category,
			CreatedAt:   fav.CreatedAt,
		}
	}
	return &ListResponse{Favorites: favorites}, nil
}
