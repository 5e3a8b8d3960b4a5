package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recrutement/internal/server/repositories/repomanager"
)

type SystemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSystemService(db *sql.DB, m repomanager.RepositoryManager) *SystemService {
	return &SystemService{db: db, repomanager: m}
}

// DatabaseTime returns the current time as seen by the database.
func (s *SystemService) DatabaseTime(ctx context.Context) (time.Time, error) {
	t, err := s.repomanager.System(s.db).Now(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("error reading database time: %w", err)
	}
	return t, nil
}
