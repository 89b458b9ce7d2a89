package reportrecipe

import (
	"context"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestReportRecipeValidation(t *testing.T) {
	h := NewHandler(nil)
	tests := []struct {
		name string
		req  Request
	}{
		{"missing recipeId", Request{Source: "published", Reason: "spam"}},
		{"unknown source", Request{RecipeID: "r1", Source: "tiktok", Reason: "spam"}},
		{"unknown reason", Request{RecipeID: "r1", Source: "published", Reason: "grudge"}},
	}
	for _, tt := range tests {
		_, err := h.ReportRecipe(context.Background(), &tt.req)
		if err == nil {
			t.Errorf("%s: ReportRecipe() error = nil, want invalid-argument", tt.name)
			continue
		}
		if st, ok := status.FromError(err); !ok || st.Code() != codes.InvalidArgument {
			t.Errorf("%s: ReportRecipe() error = %v, want invalid-argument", tt.name, err)
		}
	}
}
