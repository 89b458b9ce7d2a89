// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

// Package params parses and validates query parameters at the HTTP edge.
// Handlers receive already-clamped values and never look at raw query
// strings themselves.
package params

import (
	"strconv"
	"strings"
)

// MaxCuisines is the maximum number of cuisine filters forwarded upstream.
const MaxCuisines = 5

// Number parses raw as an integer and clamps it into [min, max]. Garbage
// and empty input fall back to def.
func Number(raw string, def, min, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// CuisineList splits raw on commas, trims each entry, drops empties, and
// keeps at most MaxCuisines entries, returning them joined by commas for
// the upstream request. An empty result means no cuisine filter.
func CuisineList(raw string) string {
	parts := strings.Split(raw, ",")
	kept := make([]string, 0, MaxCuisines)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kept = append(kept, p)
		if len(kept) == MaxCuisines {
			break
		}
	}
	return strings.Join(kept, ",")
}

// PositiveID parses raw as a positive integer identifier. ok is false for
// missing, malformed, zero, or negative input.
func PositiveID(raw string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
