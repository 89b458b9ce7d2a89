// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

package platedb

import "time"

// CollectionPublishedRecipes is the top-level collection of user-published
// recipes.
const CollectionPublishedRecipes = "PublishedRecipes"

// Subcollections of a published recipe. Each holds one document per user;
// document existence is the source of truth for "has this user liked/saved
// this recipe". The counters on the parent are cached aggregates kept
// consistent by writing membership and counter in one transaction.
const (
	SubcollectionLikes = "likes"
	SubcollectionSaves = "saves"
)

// Difficulty is the self-reported difficulty of a published recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ValidDifficulty reports whether d is one of the accepted difficulty
// values.
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// AnonymousAuthor replaces the author fields of published recipes when the
// author deletes their account.
const AnonymousAuthor = "anonymous"

// PublishedRecipe represents a user-published recipe stored in Firestore.
type PublishedRecipe struct {
	// AuthorID is the UID of the publishing user, or AnonymousAuthor after
	// the author deleted their account.
	AuthorID string `firestore:"authorId"`

	// AuthorName is the display name of the author at publish time.
	AuthorName string `firestore:"authorName"`

	// Title is the title of the recipe.
	Title string `firestore:"title"`

	// ImageURL is the URL for the main image of the recipe.
	ImageURL string `firestore:"imageUrl"`

	// Ingredients are the ingredients of the recipe as free-form lines.
	Ingredients []string `firestore:"ingredients"`

	// Steps are the preparation steps of the recipe.
	Steps []string `firestore:"steps"`

	// ReadyInMinutes is the total preparation time. Omitted when the
	// publisher did not provide one.
	ReadyInMinutes int `firestore:"readyInMinutes,omitempty"`

	// Difficulty is the self-reported difficulty. Omitted when not provided.
	Difficulty Difficulty `firestore:"difficulty,omitempty"`

	// Nutrition is a free-form nutrition map (e.g. calories, protein).
	// Omitted when not provided.
	Nutrition map[string]string `firestore:"nutrition,omitempty"`

	// LikesCount is the cached cardinality of the likes subcollection.
	LikesCount int64 `firestore:"likesCount"`

	// SavesCount is the cached cardinality of the saves subcollection.
	SavesCount int64 `firestore:"savesCount"`

	// SharesCount is the number of times the recipe was shared. Shares have
	// no membership subcollection and are unbounded per user.
	SharesCount int64 `firestore:"sharesCount"`

	// CreatedAt is assigned by the server at publish time.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}

// Reaction is a membership document in a likes or saves subcollection.
type Reaction struct {
	// UserID is the UID of the reacting user, duplicated from the document
	// ID for collection-group queries.
	UserID string `firestore:"userId"`

	// CreatedAt is the time the reaction was created.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}
