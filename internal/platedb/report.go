// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

package platedb

import "time"

// CollectionRecipeReports is the top-level append-only collection of recipe
// reports. Reports have no lifecycle beyond creation.
const CollectionRecipeReports = "RecipeReports"

// ReportReason is the reason code attached to a recipe report.
type ReportReason string

const (
	ReportReasonInappropriate ReportReason = "inappropriate"
	ReportReasonSpam          ReportReason = "spam"
	ReportReasonCopyright     ReportReason = "copyright"
	ReportReasonOther         ReportReason = "other"
)

// ValidReportReason reports whether r is one of the accepted reason codes.
func ValidReportReason(r ReportReason) bool {
	switch r {
	case ReportReasonInappropriate, ReportReasonSpam, ReportReasonCopyright, ReportReasonOther:
		return true
	}
	return false
}

// Report is a user flagging a recipe from any source.
type Report struct {
	// RecipeID is the identifier of the reported recipe in its source.
	RecipeID string `firestore:"recipeId"`

	// Source is the origin of the reported recipe.
	Source FavoriteSource `firestore:"source"`

	// Reason is the reason code.
	Reason ReportReason `firestore:"reason"`

	// ReporterUID is the UID of the reporting user.
	ReporterUID string `firestore:"reporterUid"`

	// CreatedAt is the time the report was filed.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}
