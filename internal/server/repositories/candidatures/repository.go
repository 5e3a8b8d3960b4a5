package candidatures

import (
	"context"

	"github.com/dmitrijs2005/recrutement/internal/server/models"
)

// Repository stores candidatures, at most one per user.
type Repository interface {
	Create(ctx context.Context, c *models.Candidature) (*models.Candidature, error)
	GetByUserID(ctx context.Context, userID string) (*models.Candidature, error)
	SetDocumentKey(ctx context.Context, userID, key string) (*models.Candidature, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
