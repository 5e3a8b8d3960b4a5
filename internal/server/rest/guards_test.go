package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/dmitrijs2005/recrutement/internal/server/auth"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const candidatID = "3f2c9a4e-8d1b-4c55-9a7e-1b2c3d4e5f60"

func TestRequireAuth_Rejections(t *testing.T) {
	e := newTestEnv(t)
	expired := auth.NewTokenService([]byte(testSecret), -time.Hour)
	expiredTok, err := expired.Issue(candidatID, models.RoleCandidat)
	require.NoError(t, err)
	foreign, err := auth.NewTokenService([]byte("another-secret-another-secret-xx"), time.Hour).Issue(candidatID, models.RoleCandidat)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing header", "", "authorization token required"},
		{"not bearer", "Token abc", "authorization header format must be Bearer <token>"},
		{"empty bearer", "Bearer ", "authorization header format must be Bearer <token>"},
		{"garbage", "Bearer not-a-jwt", "invalid token"},
		{"wrong secret", "Bearer " + foreign, "invalid token"},
		{"expired", "Bearer " + expiredTok, "token expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/candidature", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(e, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantMsg, errorBody(t, rec))
			assert.Empty(t, e.candidatures.userID, "handler must not run")
		})
	}
}

func TestRequireAuth_Revoked(t *testing.T) {
	e := newTestEnv(t)
	tok := e.token(t, candidatID, models.RoleCandidat)
	p, err := e.tokens.Verify(tok)
	require.NoError(t, err)

	e.srv.Revocations = &fakeRevocations{revoked: map[string]bool{p.TokenID: true}}

	rec := e.do(t, http.MethodGet, "/candidature", "", tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token revoked", errorBody(t, rec))
}

func TestRequireAuth_RevocationStoreFailure(t *testing.T) {
	e := newTestEnv(t)
	e.srv.Revocations = &fakeRevocations{err: errors.New("redis down")}

	rec := e.do(t, http.MethodGet, "/candidature", "", e.token(t, candidatID, models.RoleCandidat))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", errorBody(t, rec))
}

func TestRequireAuth_StoresPrincipal(t *testing.T) {
	e := newTestEnv(t)
	e.srv.Revocations = &fakeRevocations{}
	e.candidatures.resp = &models.Candidature{ID: "c1", UserID: candidatID}

	rec := e.do(t, http.MethodGet, "/candidature", "", e.token(t, candidatID, models.RoleCandidat))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, candidatID, e.candidatures.userID)
}

func TestRequireRole(t *testing.T) {
	e := newTestEnv(t)
	e.candidatures.resp = &models.Candidature{ID: "c1"}

	tests := []struct {
		name string
		path string
		role models.Role
		want int
	}{
		{"candidat on candidature", "/candidature", models.RoleCandidat, http.StatusOK},
		{"user on candidature", "/candidature", models.RoleUser, http.StatusForbidden},
		{"admin override on candidature", "/candidature", models.RoleAdmin, http.StatusOK},
		{"candidat on users", "/users", models.RoleCandidat, http.StatusForbidden},
		{"user on users", "/users", models.RoleUser, http.StatusForbidden},
		{"admin on users", "/users", models.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(t, http.MethodGet, tt.path, "", e.token(t, candidatID, tt.role))
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, "access denied", errorBody(t, rec))
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	assert.ErrorIs(t, authorize(nil, models.RoleUser), common.ErrorUnauthorized)
	assert.NoError(t, authorize(&auth.Principal{Role: models.RoleUser}, models.RoleUser))
	assert.NoError(t, authorize(&auth.Principal{Role: models.RoleAdmin}, models.RoleCandidat))
	assert.ErrorIs(t, authorize(&auth.Principal{Role: models.RoleCandidat}, models.RoleAdmin), common.ErrForbidden)
}

func TestPrincipalFromContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	want := &auth.Principal{UserID: candidatID, Role: models.RoleCandidat}
	got, ok := PrincipalFromContext(WithPrincipal(context.Background(), want))
	require.True(t, ok)
	assert.Same(t, want, got)
}
