package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/messages"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/repomanager"
)

type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMessageService(db *sql.DB, m repomanager.RepositoryManager) *MessageService {
	return &MessageService{db: db, repomanager: m}
}

// Send stores a message from senderID to receiverID. Both users' existence
// is checked by the insert itself; a sender deleted since login gets
// common.ErrorUnauthorized.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.NewPublicError(common.ErrValidation, "message must not be empty")
	}

	m, err := s.repomanager.Messages(s.db).Create(ctx, &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
	})
	if err != nil {
		switch {
		case errors.Is(err, messages.ErrSenderNotFound):
			return nil, common.NewPublicError(common.ErrorUnauthorized, "user no longer exists")
		case errors.Is(err, messages.ErrReceiverNotFound):
			return nil, common.NewPublicError(common.ErrorNotFound, "receiver not found")
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.NewPublicError(common.ErrorNotFound, "user not found")
		}
		return nil, fmt.Errorf("error sending message: %w", err)
	}
	return m, nil
}

// Conversation returns the messages between me and other, oldest first.
func (s *MessageService) Conversation(ctx context.Context, me, other string) ([]models.Message, error) {
	msgs, err := s.repomanager.Messages(s.db).ListConversation(ctx, me, other)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	return msgs, nil
}
