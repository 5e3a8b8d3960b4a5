// Package services contains server-side business logic. Each service owns one
// resource and translates repository errors into the sentinel errors the HTTP
// layer maps to status codes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/dmitrijs2005/recrutement/internal/cryptox"
	"github.com/dmitrijs2005/recrutement/internal/dbx"
	"github.com/dmitrijs2005/recrutement/internal/server/auth"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/revocations"
)

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(userID string, role models.Role) (string, error)
}

// RegisterInput holds the identity fields of a new account.
type RegisterInput struct {
	Nom       string
	Postnom   string
	Prenom    string
	Email     string
	Password  string
	Telephone string
	Adresse   string
	Role      models.Role
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	Role  models.Role
	User  *models.User
}

// UserService handles registration, login, logout and user administration.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	revocations revocations.Repository

	allowCandidatSignup bool
}

type UserOption func(*UserService)

// WithCandidatSignup controls whether Register accepts role candidat. It is
// accepted unless disabled.
func WithCandidatSignup(allow bool) UserOption {
	return func(s *UserService) { s.allowCandidatSignup = allow }
}

// NewUserService constructs a UserService. revoked may be nil, in which case
// logout does not invalidate tokens server-side.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, revoked revocations.Repository, opts ...UserOption) *UserService {
	s := &UserService{
		db:                  db,
		repomanager:         m,
		tokens:              tokens,
		revocations:         revoked,
		allowCandidatSignup: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// hashPassword is a seam for tests.
var hashPassword = cryptox.HashPassword

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with role user (the default) or, when
// candidat signup is allowed, candidat.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	switch {
	case role == models.RoleCandidat && !s.allowCandidatSignup:
		return nil, common.NewPublicError(common.ErrValidation, "role must be user")
	case role != models.RoleUser && role != models.RoleCandidat:
		return nil, common.NewPublicError(common.ErrValidation, "role must be user or candidat")
	}
	return s.create(ctx, s.db, in, role)
}

func (s *UserService) create(ctx context.Context, db dbx.DBTX, in RegisterInput, role models.Role) (*models.User, error) {
	hash, err := hashPassword(in.Password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return nil, common.NewPublicError(common.ErrValidation, "password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Nom:          strings.TrimSpace(in.Nom),
		Postnom:      strings.TrimSpace(in.Postnom),
		Prenom:       strings.TrimSpace(in.Prenom),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Telephone:    strings.TrimSpace(in.Telephone),
		Adresse:      strings.TrimSpace(in.Adresse),
		Role:         role,
	}

	u, err := s.repomanager.Users(db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewPublicError(common.ErrConflict, "email already registered")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the password and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewPublicError(common.ErrorNotFound, "user not found")
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := cryptox.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, cryptox.ErrMismatchedPassword) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error checking password: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &LoginResult{Token: token, Role: user.Role, User: user}, nil
}

// Logout revokes the caller's token until it expires. Without a revocation
// store it only acknowledges the request.
func (s *UserService) Logout(ctx context.Context, p *auth.Principal) error {
	if s.revocations == nil {
		return nil
	}
	if err := s.revocations.Revoke(ctx, p.TokenID, p.ExpiresAt); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// List returns all users. Callers must not expose PasswordHash.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// SetRole changes the role of the user with the given id.
func (s *UserService) SetRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, common.NewPublicError(common.ErrValidation, "role must be user, candidat or admin")
	}
	u, err := s.repomanager.Users(s.db).UpdateRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewPublicError(common.ErrorNotFound, "user not found")
		}
		return nil, fmt.Errorf("error updating role: %w", err)
	}
	return u, nil
}

// Delete removes a user together with their candidature and messages in a
// single transaction.
func (s *UserService) Delete(ctx context.Context, id string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Messages(tx).DeleteByUserID(ctx, id); err != nil {
			return fmt.Errorf("error deleting messages: %w", err)
		}
		if err := s.repomanager.Candidatures(tx).DeleteByUserID(ctx, id); err != nil {
			return fmt.Errorf("error deleting candidature: %w", err)
		}
		return s.repomanager.Users(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.NewPublicError(common.ErrorNotFound, "user not found")
		}
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

// BootstrapAdmin creates an admin account, or promotes the existing account
// with the same email. It reports whether a new account was created.
func (s *UserService) BootstrapAdmin(ctx context.Context, in RegisterInput) (*models.User, bool, error) {
	var (
		user    *models.User
		created bool
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		existing, err := repo.GetByEmail(ctx, normalizeEmail(in.Email))
		switch {
		case err == nil:
			user, err = repo.UpdateRole(ctx, existing.ID, models.RoleAdmin)
			return err
		case errors.Is(err, common.ErrorNotFound):
			user, err = s.create(ctx, tx, in, models.RoleAdmin)
			created = err == nil
			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, fmt.Errorf("error bootstrapping admin: %w", err)
	}
	return user, created, nil
}
