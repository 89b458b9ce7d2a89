package auth

import (
	"context"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
)

// UID returns the Firebase UID of the authenticated caller. The auth
// middleware guarantees a verified token on any route that reaches a
// callable handler.
func UID(ctx context.Context) string {
	return firebaseauth.TokenFromContext(ctx).UID
}
