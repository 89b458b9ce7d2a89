// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package deleterecipe implements the deletePublishedRecipe callable.
package deleterecipe

import (
	"context"
	"fmt"

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

type Request struct {
	RecipeID string `json:"recipeId"`
}

type Response struct{}

// DeleteRecipe removes a published recipe after an ownership check. The
// likes/saves subcollections and other users' favorites of this recipe are
// left in place: readers treat a missing parent as "recipe no longer
// available".
func (h *Handler) DeleteRecipe(ctx context.Context, req *Request) (*Response, error) {
	if req.RecipeID == "" {
		return nil, status.Error(codes.InvalidArgument, "recipeId is required")
	}

	ref := h.store.Collection(platedb.CollectionPublishedRecipes).Doc(req.RecipeID)
	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, status.Error(codes.NotFound, "recipe not found")
		}
		return nil, fmt.Errorf("deleterecipe: reading recipe: %w", err)
	}

	var recipe platedb.PublishedRecipe
	if err := doc.DataTo(&recipe); err != nil {
		return nil, fmt.Errorf("deleterecipe: unmarshalling recipe: %w", err)
	}
	if !canDelete(&recipe, auth.UID(ctx)) {
		return nil, status.Error(codes.PermissionDenied, "only the author can delete a recipe")
	}

	if _, err := ref.Delete(ctx); err != nil {
		return nil, fmt.Errorf("deleterecipe: deleting recipe: %w", err)
	}
	return &Response{}, nil
}

// canDelete reports whether uid owns the recipe. Anonymized recipes have no
// owner left and cannot be deleted through this API.
func canDelete(recipe *platedb.PublishedRecipe, uid string) bool {
	return recipe.AuthorID == uid && recipe.AuthorID != platedb.AnonymousAuthor
}
