// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package images re-hosts client-uploaded images onto the public bucket.
// Clients send images as base64 data URLs; stored documents only ever
// reference https URLs on the bucket.
package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// Uploader writes images to the public bucket.
type Uploader struct {
	storage      *storage.Client
	publicBucket string
}

// NewUploader creates an Uploader for the given bucket.
func NewUploader(storage *storage.Client, publicBucket string) *Uploader {
	return &Uploader{
		storage:      storage,
		publicBucket: publicBucket,
	}
}

// SaveDataURL decodes an image data URL and writes it to the bucket at
// pathNoExt plus the extension implied by the content type, returning the
// public URL of the object.
func (u *Uploader) SaveDataURL(ctx context.Context, pathNoExt string, dataURL string) (string, error) {
	ct, ext, contents, err := ParseDataURL(dataURL)
	if err != nil {
		return "", err
	}
	path := pathNoExt + "." + ext

	w := u.storage.Bucket(u.publicBucket).Object(path).NewWriter(ctx)
	w.ContentType = ct
	if _, err := w.Write(contents); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("images: writing image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("images: closing writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.publicBucket, path), nil
}

// ParseDataURL decodes a base64 image data URL into its content type, file
// extension, and raw bytes. Only image/* content is accepted.
func ParseDataURL(dataURL string) (contentType string, ext string, contents []byte, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", "", nil, fmt.Errorf("images: invalid data URL")
	}
	ct, payload, ok := strings.Cut(rest, ";")
	if !ok {
		return "", "", nil, fmt.Errorf("images: invalid data URL")
	}
	ext, ok = strings.CutPrefix(ct, "image/")
	if !ok {
		return "", "", nil, fmt.Errorf("images: only image data URLs supported, got %q", ct)
	}
	b64, ok := strings.CutPrefix(payload, "base64,")
	if !ok {
		return "", "", nil, fmt.Errorf("images: only base64 data URLs supported")
	}
	contents, err = base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", "", nil, fmt.Errorf("images: decoding base64 data URL: %w", err)
	}
	return ct, ext, contents, nil
}

// IsDataURL reports whether s is a data URL rather than an already-hosted
// https URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}
