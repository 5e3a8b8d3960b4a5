// Package system exposes database-level queries that are not tied to a table.
package system

import (
	"context"
	"time"
)

type Repository interface {
	// Now returns the database server's current time.
	Now(ctx context.Context) (time.Time, error)
}
