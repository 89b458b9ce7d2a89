package deleterecipe

import (
	"context"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/platefeed/server/internal/platedb"
)

func TestDeleteRecipeRequiresRecipeID(t *testing.T) {
	h := NewHandler(nil)
	_, err := h.DeleteRecipe(context.Background(), &Request{})
	if err == nil {
		t.Fatal("DeleteRecipe() error = nil, want invalid-argument")
	}
	if st, ok := status.FromError(err); !ok || st.Code() != codes.InvalidArgument {
		t.Errorf("DeleteRecipe() error = %v, want invalid-argument", err)
	}
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name   string
		author string
		uid    string
		want   bool
	}{
		{"author deletes own recipe", "user-a", "user-a", true},
		{"non-author denied", "user-a", "user-b", false},
		{"anonymized recipe has no owner", platedb.AnonymousAuthor, platedb.AnonymousAuthor, false},
	}
	for _, tt := range tests {
		recipe := &platedb.PublishedRecipe{AuthorID: tt.author}
		if got := canDelete(recipe, tt.uid); got != tt.want {
			t.Errorf("%s: canDelete() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
