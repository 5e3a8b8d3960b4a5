package messages

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
)

var (
	ErrSenderNotFound   = fmt.Errorf("sender %w", common.ErrorNotFound)
	ErrReceiverNotFound = fmt.Errorf("receiver %w", common.ErrorNotFound)
)

// Repository is an append-only log of messages between two users.
type Repository interface {
	Create(ctx context.Context, m *models.Message) (*models.Message, error)
	// ListConversation returns the messages exchanged between a and b in
	// either direction, oldest first.
	ListConversation(ctx context.Context, a, b string) ([]models.Message, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
