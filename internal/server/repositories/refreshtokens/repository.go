// Package refreshtokens stores the opaque refresh tokens issued at login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/nutricare/internal/server/models"
)

// Repository issues, looks up and revokes refresh tokens.
type Repository interface {
	// Create stores token for userID, valid until now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete reports whether the token existed. A token can be consumed once.
	Delete(ctx context.Context, token string) (bool, error)

	// DeleteExpired drops every token that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
