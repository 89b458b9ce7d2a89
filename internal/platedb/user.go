// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

package platedb

import "time"

// CollectionUsers is the top-level collection of user profiles, keyed by
// Firebase UID.
const CollectionUsers = "users"

// Subcollections of a user document.
const (
	SubcollectionFavorites  = "FavRecipes"
	SubcollectionCategories = "Categories"
	SubcollectionFollowing  = "following"
	SubcollectionFollowers  = "followers"
)

// AccountStatus is the visibility state of a user account.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusPaused AccountStatus = "paused"
)

// ValidAccountStatus reports whether s is one of the accepted account
// statuses.
func ValidAccountStatus(s AccountStatus) bool {
	return s == AccountStatusActive || s == AccountStatusPaused
}

// User represents a user profile stored in Firestore. Users are never hard
// deleted; account deletion anonymizes authored content and removes the
// profile and its subcollections.
type User struct {
	// Username is the unique handle chosen at sign-up.
	Username string `firestore:"username"`

	// DisplayName is the name shown on the profile.
	DisplayName string `firestore:"displayName"`

	// Bio is the free-form profile text.
	Bio string `firestore:"bio"`

	// PhotoURL is the URL of the profile avatar.
	PhotoURL string `firestore:"photoUrl"`

	// Status is the account status.
	Status AccountStatus `firestore:"status"`

	// FollowersCount is the cached cardinality of the followers
	// subcollection.
	FollowersCount int64 `firestore:"followersCount"`

	// FollowingCount is the cached cardinality of the following
	// subcollection.
	FollowingCount int64 `firestore:"followingCount"`

	// CreatedAt is the time the profile was created.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}

// FollowEdge is one half of a bidirectional follow relationship. The same
// shape is written under both users/{follower}/following/{target} and
// users/{target}/followers/{follower}.
type FollowEdge struct {
	// UserID is the UID of the user on the other end of the edge.
	UserID string `firestore:"userId"`

	// CreatedAt is the time the follow was created.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}

// Category is a user-owned favorite category. Names are free text with no
// uniqueness constraint; favorites reference categories by name only.
type Category struct {
	// Name is the category name.
	Name string `firestore:"name"`

	// CreatedAt is the time the category was created.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}
