// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package reportrecipe implements the reportRecipe callable. Reports are
// append-only; nothing reads them back through this API.
package reportrecipe

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
	Source   string `json:"source"`
	Reason   string `json:"reason"`
}

type Response struct {
	ReportID string `json:"reportId"`
}

// ReportRecipe files a report against a recipe from any source.
func (h *Handler) ReportRecipe(ctx context.Context, req *Request) (*Response, error) {
	if req.RecipeID == "" {
		return nil, status.Error(codes.InvalidArgument, "recipeId is required")
	}
	source := platedb.FavoriteSource(req.Source)
	switch source {
	case platedb.FavoriteSourceSpoonacular, platedb.FavoriteSourceCustom, platedb.FavoriteSourcePublished:
	default:
		return nil, status.Error(codes.InvalidArgument, "source must be spoonacular, custom, or published")
	}
	reason := platedb.ReportReason(req.Reason)
	if !platedb.ValidReportReason(reason) {
		return nil, status.Error(codes.InvalidArgument, "unknown report reason")
	}

	doc := h.store.Collection(platedb.CollectionRecipeReports).NewDoc()
	if _, err := doc.Create(ctx, platedb.Report{
		RecipeID:    req.RecipeID,
		Source:      source,
		Reason:      reason,
		ReporterUID: auth.UID(ctx),
	}); err != nil {
		return nil, fmt.Errorf("reportrecipe: creating report: %w", err)
	}
	return &Response{ReportID: doc.ID}, nil
}
