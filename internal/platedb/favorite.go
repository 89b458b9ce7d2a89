// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

package platedb

import (
	"strconv"
	"time"
)

// FavoriteSource identifies where a favorited recipe came from. The three
// sources are disjoint: spoonacular recipes are referenced by numeric id,
// custom recipes are user-authored and never published, published recipes
// are inlined at save time so the favorite survives the publisher deleting
// their recipe or account.
type FavoriteSource string

const (
	FavoriteSourceSpoonacular FavoriteSource = "spoonacular"
	FavoriteSourceCustom      FavoriteSource = "custom"
	FavoriteSourcePublished   FavoriteSource = "published"
)

// FavoriteKeySpoonacular returns the deterministic document ID for a
// favorite of a spoonacular recipe. Deterministic keys make saves an
// idempotent upsert: saving the same recipe twice overwrites in place.
func FavoriteKeySpoonacular(recipeID int64) string {
	return "spoonacular_" + strconv.FormatInt(recipeID, 10)
}

// FavoriteKeyCustom returns the document ID for a user-authored recipe.
// Custom recipes have no stable external id, so the creation time in
// milliseconds is used as the uniqueness key. Two custom recipes saved in
// the same millisecond collide; accepted.
func FavoriteKeyCustom(createdAt time.Time) string {
	return "custom_" + strconv.FormatInt(createdAt.UnixMilli(), 10)
}

// FavoriteKeyPublished returns the deterministic document ID for a favorite
// of a published recipe.
func FavoriteKeyPublished(publishedID string) string {
	return "published_" + publishedID
}

// FavoriteRecipe is a recipe saved by a user, stored under
// users/{uid}/FavRecipes with a composite source+identity document ID.
type FavoriteRecipe struct {
	// Source identifies the origin of the recipe.
	Source FavoriteSource `firestore:"source"`

	// SourceID is the identifier of the recipe in its source: the numeric
	// spoonacular id as a string, the creation millis for custom recipes,
	// or the PublishedRecipes document ID.
	SourceID string `firestore:"sourceId"`

	// Title is the recipe title. Denormalized for custom and published
	// sources so the favorite is self-contained.
	Title string `firestore:"title"`

	// ImageURL is the URL of the recipe image.
	ImageURL string `firestore:"imageUrl"`

	// Ingredients are the inlined ingredients for custom/published sources.
	Ingredients []string `firestore:"ingredients,omitempty"`

	// Steps are the inlined preparation steps for custom/published sources.
	Steps []string `firestore:"steps,omitempty"`

	// Category is a free-text reference to a user-owned category name.
	// Deleting a category does not cascade; the label simply dangles.
	Category string `firestore:"category,omitempty"`

	// CreatedAt is the time the favorite was saved.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}
