// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package profile implements the user profile callables, including account
// deletion. Accounts are never hard-deleted upstream of Firestore: deletion
// here anonymizes authored recipes and removes the profile document and its
// subcollections.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/platefeed/server/internal/auth"
	"github.com/platefeed/server/internal/images"
	"github.com/platefeed/server/internal/platedb"
)

func NewHandler(store *firestore.Client, uploader *images.Uploader) *Handler {
	return &Handler{
		store:    store,
		uploader: uploader,
	}
}

type Handler struct {
	store    *firestore.Client
	uploader *images.Uploader
}

type CreateRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type CreateResponse struct{}

// CreateProfile creates the caller's profile document at sign-up. Creating
// an already-existing profile fails rather than clobbering it.
func (h *Handler) CreateProfile(ctx context.Context, req *CreateRequest) (*CreateResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, status.Error(codes.InvalidArgument, "username is required")
	}

	user := platedb.User{
		Username:    username,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Status:      platedb.AccountStatusActive,
	}
	if _, err := h.store.Collection(platedb.CollectionUsers).Doc(auth.UID(ctx)).Create(ctx, user); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, status.Error(codes.AlreadyExists, "profile already exists")
		}
		return nil, fmt.Errorf("profile: creating user: %w", err)
	}
	return &CreateResponse{}, nil
}

type GetRequest struct {
	// UID is the profile to fetch; empty means the caller's own.
	UID string `json:"uid,omitempty"`
}

type Profile struct {
	UID            string    `json:"uid"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	Bio            string    `json:"bio"`
	PhotoURL       string    `json:"photoUrl"`
	Status         string    `json:"status"`
	FollowersCount int64     `json:"followersCount"`
	FollowingCount int64     `json:"followingCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

type GetResponse struct {
	Profile Profile `json:"profile"`

	// IsFollowing reports whether the caller follows this profile. Always
	// false for the caller's own profile.
	IsFollowing bool `json:"isFollowing"`
}

// GetProfile returns a user profile with the caller's follow state.
func (h *Handler) GetProfile(ctx context.Context, req *GetRequest) (*GetResponse, error) {
	callerUID := auth.UID(ctx)
	uid := req.UID
	if uid == "" {
		uid = callerUID
	}

	doc, err := h.store.Collection(platedb.CollectionUsers).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, status.Error(codes.NotFound, "user not found")
		}
		return nil, fmt.Errorf("profile: reading user: %w", err)
	}
	var user platedb.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("profile: unmarshalling user: %w", err)
	}

	res := &GetResponse{Profile: Profile{
		UID:            uid,
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		Bio:            user.Bio,
		PhotoURL:       user.PhotoURL,
		Status:         string(user.Status),
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
		CreatedAt:      user.CreatedAt,
	}}
	if uid != callerUID {
		edge, err := h.store.Collection(platedb.CollectionUsers).Doc(callerUID).
			Collection(platedb.SubcollectionFollowing).Doc(uid).Get(ctx)
		res.IsFollowing = err == nil && edge.Exists()
	}
	return res, nil
}

type UpdateRequest struct {
	// Fields are applied only when non-nil, so a client can update a subset
	// without clobbering the rest.
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Status      *string `json:"status,omitempty"`

	// PhotoDataURL is a data-URL avatar to re-host. The stored photoUrl
	// always points at the public bucket.
	PhotoDataURL string `json:"photoDataUrl,omitempty"`
}

type UpdateResponse struct {
	PhotoURL string `json:"photoUrl,omitempty"`
}

// UpdateProfile applies a partial profile update for the caller.
func (h *Handler) UpdateProfile(ctx context.Context, req *UpdateRequest) (*UpdateResponse, error) {
	uid := auth.UID(ctx)

	var updates []firestore.Update
	if req.Username != nil {
		if strings.TrimSpace(*req.Username) == "" {
			return nil, status.Error(codes.InvalidArgument, "username must not be blank")
		}
		updates = append(updates, firestore.Update{Path: "username", Value: strings.TrimSpace(*req.Username)})
	}
	if req.DisplayName != nil {
		updates = append(updates, firestore.Update{Path: "displayName", Value: strings.TrimSpace(*req.DisplayName)})
	}
	if req.Bio != nil {
		updates = append(updates, firestore.Update{Path: "bio", Value: *req.Bio})
	}
	if req.Status != nil {
		s := platedb.AccountStatus(*req.Status)
		if !platedb.ValidAccountStatus(s) {
			return nil, status.Error(codes.InvalidArgument, "status must be active or paused")
		}
		updates = append(updates, firestore.Update{Path: "status", Value: s})
	}

	res := &UpdateResponse{}
	if req.PhotoDataURL != "" {
		url, err := h.uploader.SaveDataURL(ctx,
			fmt.Sprintf("public/users/%s/avatar_%s", uid, uuid.NewString()), req.PhotoDataURL)
		if err != nil {
			return nil, fmt.Errorf("profile: saving avatar: %w", err)
		}
		updates = append(updates, firestore.Update{Path: "photoUrl", Value: url})
		res.PhotoURL = url
	}

	if len(updates) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no fields to update")
	}
	if _, err := h.store.Collection(platedb.CollectionUsers).Doc(uid).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, status.Error(codes.NotFound, "user not found")
		}
		return nil, fmt.Errorf("profile: updating user: %w", err)
	}
	return res, nil
}

type DeleteAccountRequest struct{}

type DeleteAccountResponse struct{}

// deletionJob is the part of a firestore.BulkWriterJob the handler waits on.
// Enqueueing a write only schedules it; the write itself can still fail and
// reports that through Results.
type deletionJob interface {
	Results() (*firestore.WriteResult, error)
}

// DeleteAccount anonymizes the caller's published recipes and removes the
// profile document with its subcollections. Favorites other users took of
// the caller's recipes keep their denormalized content and are untouched.
func (h *Handler) DeleteAccount(ctx context.Context, _ *DeleteAccountRequest) (*DeleteAccountResponse, error) {
	uid := auth.UID(ctx)
	userRef := h.store.Collection(platedb.CollectionUsers).Doc(uid)

	bw := h.store.BulkWriter(ctx)
	var jobs []deletionJob

	authored := h.store.Collection(platedb.CollectionPublishedRecipes).
		Where("authorId", "==", uid).Documents(ctx)
	for {
		doc, err := authored.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("profile: listing authored recipes: %w", err)
		}
		job, err := bw.Update(doc.Ref, []firestore.Update{
			{Path: "authorId", Value: platedb.AnonymousAuthor},
			{Path: "authorName", Value: platedb.AnonymousAuthor},
		})
		if err != nil {
			return nil, fmt.Errorf("profile: anonymizing recipe: %w", err)
		}
		jobs = append(jobs, job)
	}

	// Following/followers edges are mirrored on the other user; remove the
	// mirror and fix that user's counter so the edge set stays consistent.
	jobs, err := h.removeEdges(ctx, bw, jobs, userRef, platedb.SubcollectionFollowing, platedb.SubcollectionFollowers, "followersCount")
	if err != nil {
		return nil, err
	}
	jobs, err = h.removeEdges(ctx, bw, jobs, userRef, platedb.SubcollectionFollowers, platedb.SubcollectionFollowing, "followingCount")
	if err != nil {
		return nil, err
	}

	for _, sub := range []string{platedb.SubcollectionFavorites, platedb.SubcollectionCategories} {
		it := userRef.Collection(sub).Documents(ctx)
		for {
			doc, err := it.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("profile: listing %s: %w", sub, err)
			}
			job, err := bw.Delete(doc.Ref)
			if err != nil {
				return nil, fmt.Errorf("profile: deleting %s doc: %w", sub, err)
			}
			jobs = append(jobs, job)
		}
	}

	job, err := bw.Delete(userRef)
	if err != nil {
		return nil, fmt.Errorf("profile: deleting user: %w", err)
	}
	jobs = append(jobs, job)

	bw.End()
	if err := awaitJobs(jobs); err != nil {
		return nil, err
	}
	return &DeleteAccountResponse{}, nil
}

// awaitJobs blocks until every enqueued write has been applied, failing on
// the first write that did not.
func awaitJobs(jobs []deletionJob) error {
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("profile: applying account deletion write: %w", err)
		}
	}
	return nil
}

// removeEdges deletes the user's own edge docs in sub, the mirrored edge on
// the other user in mirrorSub, and decrements the other user's counter,
// appending the enqueued jobs to jobs.
func (h *Handler) removeEdges(ctx context.Context, bw *firestore.BulkWriter, jobs []deletionJob, userRef *firestore.DocumentRef, sub string, mirrorSub string, mirrorCounter string) ([]deletionJob, error) {
	docs, err := userRef.Collection(sub).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("profile: listing %s: %w", sub, err)
	}
	for _, doc := range docs {
		otherRef := h.store.Collection(platedb.CollectionUsers).Doc(doc.Ref.ID)
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			return nil, fmt.Errorf("profile: deleting %s edge: %w", sub, err)
		}
		jobs = append(jobs, job)
		if job, err = bw.Delete(otherRef.Collection(mirrorSub).Doc(userRef.ID)); err != nil {
			return nil, fmt.Errorf("profile: deleting mirrored %s edge: %w", mirrorSub, err)
		}
		jobs = append(jobs, job)
		if job, err = bw.Update(otherRef, []firestore.Update{
			{Path: mirrorCounter, Value: firestore.Increment(-1)},
		}); err != nil {
			return nil, fmt.Errorf("profile: decrementing %s: %w", mirrorCounter, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
