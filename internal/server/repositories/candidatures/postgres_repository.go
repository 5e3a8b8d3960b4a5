package candidatures

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/dmitrijs2005/recrutement/internal/dbx"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
)

const columns = `id, user_id, paiement_online, paiement_cash, document_key, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scan(row *sql.Row) (*models.Candidature, error) {
	c := &models.Candidature{}
	var key sql.NullString
	if err := row.Scan(&c.ID, &c.UserID, &c.PaiementOnline, &c.PaiementCash, &key, &c.CreatedAt); err != nil {
		return nil, err
	}
	if key.Valid {
		c.DocumentKey = &key.String
	}
	return c, nil
}

// Create inserts the candidature in a single statement. The unique index on
// user_id turns a second submission into common.ErrConflict.
func (r *PostgresRepository) Create(ctx context.Context, c *models.Candidature) (*models.Candidature, error) {
	query :=
		`INSERT INTO candidatures (user_id, paiement_online, paiement_cash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, c.UserID, c.PaiementOnline, c.PaiementCash).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrConflict
		case dbx.IsForeignKeyViolation(err):
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Candidature, error) {
	query := `SELECT ` + columns + ` FROM candidatures WHERE user_id = $1`

	c, err := scan(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) SetDocumentKey(ctx context.Context, userID, key string) (*models.Candidature, error) {
	query := `UPDATE candidatures SET document_key = $2 WHERE user_id = $1 RETURNING ` + columns

	c, err := scan(r.db.QueryRowContext(ctx, query, userID, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM candidatures WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
