package favorites

import (
	"context"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Validation rejects before any persistence call, so invalid requests are
// exercised without a Firestore client.

func wantInvalidArgument(t *testing.T, err error, call string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s error = nil, want invalid-argument", call)
	}
	if st, ok := status.FromError(err); !ok || st.Code() != codes.InvalidArgument {
		t.Errorf("%s error = %v, want invalid-argument", call, err)
	}
}

func TestTogglePublishedRequiresRecipeID(t *testing.T) {
	h := NewHandler(nil)
	_, err := h.TogglePublished(context.Background(), &ToggleRequest{})
	wantInvalidArgument(t, err, "TogglePublished(empty recipeId)")
}

func TestSaveRejectsUnknownSource(t *testing.T) {
	h := NewHandler(nil)
	_, err := h.Save(context.Background(), &SaveRequest{Source: "published"})
	wantInvalidArgument(t, err, "Save(published source)")

	_, err = h.Save(context.Background(), &SaveRequest{Source: "pinterest"})
	wantInvalidArgument(t, err, "Save(unknown source)")
}

func TestSaveRequiresSpoonacularID(t *testing.T) {
	h := NewHandler(nil)
	_, err := h.Save(context.Background(), &SaveRequest{Source: "spoonacular"})
	wantInvalidArgument(t, err, "Save(spoonacular without id)")

	_, err = h.Save(context.Background(), &SaveRequest{Source: "spoonacular", SpoonacularID: -1})
	wantInvalidArgument(t, err, "Save(spoonacular negative id)")
}

func TestSaveRequiresCustomTitle(t *testing.T) {
	h := NewHandler(nil)
	_, err := h.Save(context.Background(), &SaveRequest{Source: "custom"})
	wantInvalidArgument(t, err, "Save(custom without title)")
}

func TestRemoveRequiresFavoriteID(t *testing.T) {
	h := NewHandler(nil)
	_, err := h.Remove(context.Background(), &RemoveRequest{})
	wantInvalidArgument(t, err, "Remove(empty favoriteId)")
}

func TestSetCategoryRequiresFavoriteID(t *testing.T) {
	h := NewHandler(nil)
	_, err := h.SetCategory(context.Background(), &SetCategoryRequest{Category: "dinner"})
	wantInvalidArgument(t, err, "SetCategory(empty favoriteId)")
}
