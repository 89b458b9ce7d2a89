// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package categories implements the user-owned favorite category callables.
package categories

import (
	"context"
	"fmt"
	"strings"
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

func (h *Handler) categories(ctx context.Context) *firestore.CollectionRef {
	return h.store.Collection(platedb.CollectionUsers).Doc(auth.UID(ctx)).Collection(platedb.SubcollectionCategories)
}

type AddRequest struct {
	Name string `json:"name"`
}

type AddResponse struct {
	CategoryID string `json:"categoryId"`
}

// Add creates a category. Names are free text; duplicates are allowed.
func (h *Handler) Add(ctx context.Context, req *AddRequest) (*AddResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}

	doc := h.categories(ctx).NewDoc()
	if _, err := doc.Create(ctx, platedb.Category{Name: name}); err != nil {
		return nil, fmt.Errorf("categories: creating category: %w", err)
	}
	return &AddResponse{CategoryID: doc.ID}, nil
}

type RenameRequest struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
}

type RenameResponse struct{}

// Rename changes a category's name. Favorites labelled with the old name
// keep the old label; labels are free text, not foreign keys.
func (h *Handler) Rename(ctx context.Context, req *RenameRequest) (*RenameResponse, error) {
	name := strings.TrimSpace(req.Name)
	if req.CategoryID == "" || name == "" {
		return nil, status.Error(codes.InvalidArgument, "categoryId and name are required")
	}

	_, err := h.categories(ctx).Doc(req.CategoryID).Update(ctx, []firestore.Update{
		{Path: "name", Value: name},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, status.Error(codes.NotFound, "category not found")
		}
		return nil, fmt.Errorf("categories: renaming category: %w", err)
	}
	return &RenameResponse{}, nil
}

type DeleteRequest struct {
	CategoryID string `json:"categoryId"`
}

type DeleteResponse struct{}

// Delete removes a category without touching favorites that carry its
// label.
func (h *Handler) Delete(ctx context.Context, req *DeleteRequest) (*DeleteResponse, error) {
	if req.CategoryID == "" {
		return nil, status.Error(codes.InvalidArgument, "categoryId is required")
	}
	if _, err := h.categories(ctx).Doc(req.CategoryID).Delete(ctx); err != nil {
		return nil, fmt.Errorf("categories: deleting category: %w", err)
	}
	return &DeleteResponse{}, nil
}

type ListRequest struct{}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListResponse struct {
	Categories []Category `json:"categories"`
}

// List returns the caller's categories in creation order.
func (h *Handler) List(ctx context.Context, _ *ListRequest) (*ListResponse, error) {
	docs, err := h.categories(ctx).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("categories: listing categories: %w", err)
	}

	cats := make([]Category, len(docs))
	for i, doc := range docs {
		var cat platedb.Category
		if err := doc.DataTo(&cat); err != nil {
			return nil, fmt.Errorf("categories: unmarshalling category: %w", err)
		}
		cats[i] = Category{ID: doc.Ref.ID, Name: cat.Name, CreatedAt: cat.CreatedAt}
	}
	return &ListResponse{Categories: cats}, nil
}
