package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/dmitrijs2005/recrutement/internal/server/auth"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
	"github.com/go-chi/jwtauth/v5"
)

type ctxKey string

const principalKey ctxKey = "principal"

var (
	errTokenRequired = common.NewPublicError(common.ErrorUnauthorized, "authorization token required")
	errBadHeader     = common.NewPublicError(common.ErrorUnauthorized, "authorization header format must be Bearer <token>")
)

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the principal set by the authentication guard.
func PrincipalFromContext(ctx context.Context) (*auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*auth.Principal)
	return p, ok && p != nil
}

// authenticate resolves the request's principal from its bearer token.
func (s *Server) authenticate(r *http.Request) (*auth.Principal, error) {
	if r.Header.Get(common.AuthorizationHeaderName) == "" {
		return nil, errTokenRequired
	}

	token := jwtauth.TokenFromHeader(r)
	if token == "" {
		return nil, errBadHeader
	}

	p, err := s.Tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if s.Revocations != nil {
		revoked, err := s.Revocations.IsRevoked(r.Context(), p.TokenID)
		if err != nil {
			return nil, fmt.Errorf("error checking token revocation: %w", err)
		}
		if revoked {
			return nil, common.ErrTokenRevoked
		}
	}

	return p, nil
}

// authorize admits p when it holds role or is an admin.
func authorize(p *auth.Principal, role models.Role) error {
	if p == nil {
		return errTokenRequired
	}
	if p.Role != role && p.Role != models.RoleAdmin {
		return common.ErrForbidden
	}
	return nil
}

// RequireAuth rejects requests without a valid, unrevoked bearer token and
// stores the principal in the request context.
func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := s.authenticate(r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireRole must run after RequireAuth.
func (s *Server) RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := PrincipalFromContext(r.Context())
			if err := authorize(p, role); err != nil {
				s.respondError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
