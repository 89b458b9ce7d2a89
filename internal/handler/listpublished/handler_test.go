package listpublished

import (
	"testing"
	"time"

	"github.com/platefeed/server/internal/handler/getpublished"
)

func TestNextCursorKeepsFullPrecision(t *testing.T) {
	// Server timestamps carry microseconds; a cursor rounded to
	// milliseconds would skip recipes created inside the rounded window.
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 123456000, time.UTC)
	recipes := []getpublished.Recipe{
		{ID: "newer", CreatedAt: createdAt.Add(time.Second)},
		{ID: "older", CreatedAt: createdAt},
	}

	cursor := nextCursor(recipes, 2)
	if cursor == nil {
		t.Fatal("nextCursor() = nil, want cursor for a full page")
	}
	if !cursor.CreatedAt.Equal(createdAt) {
		t.Errorf("cursor createdAt = %v, want exact %v", cursor.CreatedAt, createdAt)
	}
	if got := cursor.CreatedAt.Nanosecond(); got != 123456000 {
		t.Errorf("cursor nanoseconds = %d, want 123456000 (no truncation)", got)
	}
	if cursor.ID != "older" {
		t.Errorf("cursor id = %q, want %q", cursor.ID, "older")
	}
}

func TestNextCursorNilOnPartialPage(t *testing.T) {
	recipes := []getpublished.Recipe{
		{ID: "only", CreatedAt: time.Now()},
	}
	if cursor := nextCursor(recipes, 10); cursor != nil {
		t.Errorf("nextCursor() = %+v, want nil for a partial page", cursor)
	}
}
