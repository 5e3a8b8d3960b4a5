package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/repomanager"
)

type CandidatureService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCandidatureService(db *sql.DB, m repomanager.RepositoryManager) *CandidatureService {
	return &CandidatureService{db: db, repomanager: m}
}

// Submit records the user's candidature. A second submission fails with
// common.ErrConflict.
func (s *CandidatureService) Submit(ctx context.Context, userID string, paiementOnline, paiementCash bool) (*models.Candidature, error) {
	c, err := s.repomanager.Candidatures(s.db).Create(ctx, &models.Candidature{
		UserID:         userID,
		PaiementOnline: paiementOnline,
		PaiementCash:   paiementCash,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrConflict):
			return nil, common.NewPublicError(common.ErrConflict, "candidature already submitted")
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.NewPublicError(common.ErrorNotFound, "user not found")
		}
		return nil, fmt.Errorf("error creating candidature: %w", err)
	}
	return c, nil
}

func (s *CandidatureService) Get(ctx context.Context, userID string) (*models.Candidature, error) {
	c, err := s.repomanager.Candidatures(s.db).GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewPublicError(common.ErrorNotFound, "candidature not found")
		}
		return nil, fmt.Errorf("error loading candidature: %w", err)
	}
	return c, nil
}
