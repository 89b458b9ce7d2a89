// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package listpublished implements the listPublishedRecipes callable.
package listpublished

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/platefeed/server/internal/handler/getpublished"
	"github.com/platefeed/server/internal/platedb"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
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
	// AuthorID limits the listing to one author when set.
	AuthorID string `json:"authorId,omitempty"`

	// PageSize is clamped to [1, 50].
	PageSize int `json:"pageSize,omitempty"`

	// Cursor identifies the last recipe of the previous page. Nil starts
	// from the newest.
	Cursor *Cursor `json:"cursor,omitempty"`
}

// Cursor is an opaque page position: the full-precision creation timestamp
// of the last recipe returned plus its document ID as a tiebreaker.
// Timestamps are not unique, so the ID is required to avoid skipping or
// repeating recipes that share one.
type Cursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
}

type Response struct {
	Recipes []getpublished.Recipe `json:"recipes"`

	// Cursor is the position for the next page, or nil when this was the
	// last page.
	Cursor *Cursor `json:"cursor,omitempty"`
}

// ListRecipes returns a page of published recipes, newest first.
func (h *Handler) ListRecipes(ctx context.Context, req *Request) (*Response, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	q := h.store.Collection(platedb.CollectionPublishedRecipes).Query
	if req.AuthorID != "" {
		q = q.Where("authorId", "==", req.AuthorID)
	}
	q = q.OrderBy("createdAt", firestore.Desc).OrderBy(firestore.DocumentID, firestore.Desc)
	if req.Cursor != nil {
		q = q.StartAfter(req.Cursor.CreatedAt, req.Cursor.ID)
	}
	q = q.Limit(pageSize)

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listpublished: querying recipes: %w", err)
	}
	if len(docs) == 0 {
		return &Response{Recipes: []getpublished.Recipe{}}, nil
	}

	recipes := make([]getpublished.Recipe, len(docs))
	for i, doc := range docs {
		var recipe platedb.PublishedRecipe
		if err := doc.DataTo(&recipe); err != nil {
			return nil, fmt.Errorf("listpublished: unmarshalling recipe: %w", err)
		}
		recipes[i] = getpublished.ToClient(doc.Ref.ID, &recipe)
	}

	return &Response{
		Recipes: recipes,
		Cursor:  nextCursor(recipes, pageSize),
	}, nil
}

// nextCursor returns the position after the last recipe of a full page, or
// nil for a partial page. The timestamp is carried at full precision; server
// timestamps are finer than a millisecond, and rounding one would drop
// recipes falling inside the rounded window.
func nextCursor(recipes []getpublished.Recipe, pageSize int) *Cursor {
	if len(recipes) < pageSize {
		return nil
	}
	last := recipes[len(recipes)-1]
	return &Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
}
