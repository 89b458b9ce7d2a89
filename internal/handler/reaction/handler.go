// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package reaction implements the membership-counter toggle for likes and
// saves on published recipes, and the share counter. A toggle writes the
// membership document and the counter delta in one Firestore transaction so
// the cached counter always equals the subcollection cardinality, and
// repeating a call in the same state never drifts the counter.
package reaction

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/platefeed/server/internal/auth"
	"github.com/platefeed/server/internal/platedb"
)

// Kind parametrizes the toggle over the two reaction subcollections.
type Kind struct {
	// Subcollection is the membership subcollection under the recipe.
	Subcollection string

	// CounterField is the cached counter field on the recipe document.
	CounterField string
}

var (
	// Like is the likes reaction.
	Like = Kind{Subcollection: platedb.SubcollectionLikes, CounterField: "likesCount"}

	// Save is the saves reaction.
	Save = Kind{Subcollection: platedb.SubcollectionSaves, CounterField: "savesCount"}
)

var errRecipeNotFound = errors.New("recipe not found")

func NewHandler(store *firestore.Client) *Handler {
	return &Handler{
		store: store,
	}
}

type Handler struct {
	store *firestore.Client
}

// SetRequest asks for the caller's reaction membership to be set to Active.
type SetRequest struct {
	RecipeID string `json:"recipeId"`
	Active   bool   `json:"active"`
}

// SetResponse reports the membership state after the call.
type SetResponse struct {
	Active bool `json:"active"`
}

// SetLike implements the setPublishedRecipeLike callable.
func (h *Handler) SetLike(ctx context.Context, req *SetRequest) (*SetResponse, error) {
	return h.set(ctx, req, Like)
}

// SetSave implements the setPublishedRecipeSave callable.
func (h *Handler) SetSave(ctx context.Context, req *SetRequest) (*SetResponse, error) {
	return h.set(ctx, req, Save)
}

func (h *Handler) set(ctx context.Context, req *SetRequest, kind Kind) (*SetResponse, error) {
	if req.RecipeID == "" {
		return nil, status.Error(codes.InvalidArgument, "recipeId is required")
	}
	uid := auth.UID(ctx)

	recipeRef := h.store.Collection(platedb.CollectionPublishedRecipes).Doc(req.RecipeID)
	memberRef := recipeRef.Collection(kind.Subcollection).Doc(uid)

	err := h.store.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// All reads before any write; the transaction retries on conflict.
		if _, err := tx.Get(recipeRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return status.Error(codes.NotFound, errRecipeNotFound.Error())
			}
			return fmt.Errorf("reaction: reading recipe: %w", err)
		}

		exists := true
		if _, err := tx.Get(memberRef); err != nil {
			if status.Code(err) != codes.NotFound {
				return fmt.Errorf("reaction: reading membership: %w", err)
			}
			exists = false
		}

		delta, changed := toggleDelta(exists, req.Active)
		if !changed {
			return nil
		}
		if req.Active {
			if err := tx.Create(memberRef, platedb.Reaction{UserID: uid}); err != nil {
				return fmt.Errorf("reaction: creating membership: %w", err)
			}
		} else {
			if err := tx.Delete(memberRef); err != nil {
				return fmt.Errorf("reaction: deleting membership: %w", err)
			}
		}
		return tx.Update(recipeRef, []firestore.Update{
			{Path: kind.CounterField, Value: firestore.Increment(delta)},
		})
	})
	if err != nil {
		return nil, err
	}
	return &SetResponse{Active: req.Active}, nil
}

// toggleDelta returns the counter delta to apply for bringing membership
// from exists to active, and whether any change is needed. The delta is
// derived from the observed state, not the requested one, so repeated
// identical calls are no-ops.
func toggleDelta(exists bool, active bool) (int64, bool) {
	if exists == active {
		return 0, false
	}
	if active {
		return 1, true
	}
	return -1, true
}

// ShareRequest asks for the share counter to be incremented.
type ShareRequest struct {
	RecipeID string `json:"recipeId"`
}

// ShareResponse is empty; the new count is not returned.
type ShareResponse struct{}

// IncrementShare implements the incrementPublishedRecipeShare callable.
// Shares have no membership subcollection and increment unconditionally.
func (h *Handler) IncrementShare(ctx context.Context, req *ShareRequest) (*ShareResponse, error) {
	if req.RecipeID == "" {
		return nil, status.Error(codes.InvalidArgument, "recipeId is required")
	}

	recipeRef := h.store.Collection(platedb.CollectionPublishedRecipes).Doc(req.RecipeID)
	if _, err := recipeRef.Update(ctx, []firestore.Update{
		{Path: "sharesCount", Value: firestore.Increment(1)},
	}); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, status.Error(codes.NotFound, errRecipeNotFound.Error())
		}
		return nil, fmt.Errorf("reaction: incrementing shares: %w", err)
	}
	return &ShareResponse{}, nil
}
