package users

import (
	"context"

	"github.com/dmitrijs2005/recrutement/internal/server/models"
)

// Repository is the credential store. Lookups return common.ErrorNotFound for
// missing users; Create returns common.ErrConflict for a duplicate email.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
