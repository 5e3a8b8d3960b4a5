// Package revocations keeps the ids of tokens that were logged out before
// they expired.
package revocations

import (
	"context"
	"time"
)

type Repository interface {
	// Revoke marks tokenID as revoked until expiresAt. Tokens that have
	// already expired are ignored.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
