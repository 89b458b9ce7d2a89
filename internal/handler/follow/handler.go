// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package follow implements the setFollow callable. A follow is a
// bidirectional pair of edge documents plus denormalized counters on both
// user documents, all written in one transaction.
package follow

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

type SetRequest struct {
	// TargetUID is the user to follow or unfollow.
	TargetUID string `json:"targetUid"`

	// Active is the desired follow state.
	Active bool `json:"active"`
}

type SetResponse struct {
	Active bool `json:"active"`
}

// SetFollow brings the follow edge between the caller and the target to the
// requested state. Idempotent: repeating a call in the same state changes
// nothing, so the counters cannot drift from the edge documents.
func (h *Handler) SetFollow(ctx context.Context, req *SetRequest) (*SetResponse, error) {
	if req.TargetUID == "" {
		return nil, status.Error(codes.InvalidArgument, "targetUid is required")
	}
	uid := auth.UID(ctx)
	if req.TargetUID == uid {
		return nil, status.Error(codes.InvalidArgument, "cannot follow yourself")
	}

	users := h.store.Collection(platedb.CollectionUsers)
	followerRef := users.Doc(uid)
	targetRef := users.Doc(req.TargetUID)
	followingEdge := followerRef.Collection(platedb.SubcollectionFollowing).Doc(req.TargetUID)
	followerEdge := targetRef.Collection(platedb.SubcollectionFollowers).Doc(uid)

	err := h.store.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(targetRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return status.Error(codes.NotFound, "user not found")
			}
			return fmt.Errorf("follow: reading target user: %w", err)
		}

		exists := true
		if _, err := tx.Get(followingEdge); err != nil {
			if status.Code(err) != codes.NotFound {
				return fmt.Errorf("follow: reading follow edge: %w", err)
			}
			exists = false
		}
		if exists == req.Active {
			return nil
		}

		delta := int64(1)
		if req.Active {
			if err := tx.Create(followingEdge, platedb.FollowEdge{UserID: req.TargetUID}); err != nil {
				return fmt.Errorf("follow: creating following edge: %w", err)
			}
			if err := tx.Create(followerEdge, platedb.FollowEdge{UserID: uid}); err != nil {
				return fmt.Errorf("follow: creating follower edge: %w", err)
			}
		} else {
			delta = -1
			if err := tx.Delete(followingEdge); err != nil {
				return fmt.Errorf("follow: deleting following edge: %w", err)
			}
			if err := tx.Delete(followerEdge); err != nil {
				return fmt.Errorf("follow: deleting follower edge: %w", err)
			}
		}
		if err := tx.Update(followerRef, []firestore.Update{
			{Path: "followingCount", Value: firestore.Increment(delta)},
		}); err != nil {
			return fmt.Errorf("follow: updating following count: %w", err)
		}
		return tx.Update(targetRef, []firestore.Update{
			{Path: "followersCount", Value: firestore.Increment(delta)},
		})
	})
	if err != nil {
		return nil, err
	}
	return &SetResponse{Active: req.Active}, nil
}
