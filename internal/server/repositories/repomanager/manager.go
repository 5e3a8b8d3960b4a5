package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/recrutement/internal/dbx"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/candidatures"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/messages"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/system"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services can compose several of them inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Candidatures(db dbx.DBTX) candidatures.Repository
	Messages(db dbx.DBTX) messages.Repository
	System(db dbx.DBTX) system.Repository
}
