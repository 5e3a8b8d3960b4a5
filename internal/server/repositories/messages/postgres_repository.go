package messages

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/dmitrijs2005/recrutement/internal/dbx"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
)

const (
	senderFKey   = "messages_sender_id_fkey"
	receiverFKey = "messages_receiver_id_fkey"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends a message. A missing sender or receiver is reported as
// ErrSenderNotFound or ErrReceiverNotFound, both matching common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	query :=
		`INSERT INTO messages (sender_id, receiver_id, message)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, m.SenderID, m.ReceiverID, m.Message).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			switch dbx.ConstraintName(err) {
			case senderFKey:
				return nil, ErrSenderNotFound
			case receiverFKey:
				return nil, ErrReceiverNotFound
			}
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) ListConversation(ctx context.Context, a, b string) ([]models.Message, error) {
	query :=
		`SELECT id, sender_id, receiver_id, message, created_at FROM messages
		 WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, a, b)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE sender_id = $1 OR receiver_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
