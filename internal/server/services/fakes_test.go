package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/recrutement/internal/common"
	"github.com/dmitrijs2005/recrutement/internal/dbx"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/candidatures"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/messages"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/system"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo is an in-memory users.Repository keyed by id.
type fakeUsersRepo struct {
	byID    map[string]*models.User
	nextID  int
	err     error
	deleted []string
}

func newFakeUsersRepo(us ...*models.User) *fakeUsersRepo {
	r := &fakeUsersRepo{byID: map[string]*models.User{}}
	for _, u := range us {
		r.byID[u.ID] = u
	}
	return r
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrConflict
		}
	}
	f.nextID++
	cp := *u
	cp.ID = "u-new-" + string(rune('0'+f.nextID))
	cp.CreatedAt = time.Now()
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsersRepo) UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCandidaturesRepo struct {
	byUser    map[string]*models.Candidature
	createErr error
	getErr    error
	setErr    error
	deleteErr error
	deleted   []string
}

func newFakeCandidaturesRepo() *fakeCandidaturesRepo {
	return &fakeCandidaturesRepo{byUser: map[string]*models.Candidature{}}
}

func (f *fakeCandidaturesRepo) Create(ctx context.Context, c *models.Candidature) (*models.Candidature, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byUser[c.UserID]; ok {
		return nil, common.ErrConflict
	}
	cp := *c
	cp.ID = "c-" + c.UserID
	f.byUser[c.UserID] = &cp
	return &cp, nil
}

func (f *fakeCandidaturesRepo) GetByUserID(ctx context.Context, userID string) (*models.Candidature, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCandidaturesRepo) SetDocumentKey(ctx context.Context, userID, key string) (*models.Candidature, error) {
	if f.setErr != nil {
		return nil, f.setErr
	}
	c, ok := f.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.DocumentKey = &key
	cp := *c
	return &cp, nil
}

func (f *fakeCandidaturesRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byUser, userID)
	f.deleted = append(f.deleted, userID)
	return nil
}

type fakeMessagesRepo struct {
	msgs      []models.Message
	users     map[string]bool
	createErr error
	listErr   error
	deleteErr error
	deleted   []string
}

func (f *fakeMessagesRepo) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.users != nil && !f.users[m.SenderID] {
		return nil, messages.ErrSenderNotFound
	}
	if f.users != nil && !f.users[m.ReceiverID] {
		return nil, messages.ErrReceiverNotFound
	}
	cp := *m
	cp.ID = int64(len(f.msgs) + 1)
	cp.CreatedAt = time.Unix(int64(len(f.msgs)), 0)
	f.msgs = append(f.msgs, cp)
	return &cp, nil
}

func (f *fakeMessagesRepo) ListConversation(ctx context.Context, a, b string) ([]models.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Message, 0)
	for _, m := range f.msgs {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessagesRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, userID)
	return nil
}

type fakeSystemRepo struct {
	now time.Time
	err error
}

func (f *fakeSystemRepo) Now(ctx context.Context) (time.Time, error) { return f.now, f.err }

type fakeRepoManager struct {
	u   *fakeUsersRepo
	c   *fakeCandidaturesRepo
	m   *fakeMessagesRepo
	sys *fakeSystemRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return m.u }
func (m *fakeRepoManager) Candidatures(db dbx.DBTX) candidatures.Repository { return m.c }
func (m *fakeRepoManager) Messages(db dbx.DBTX) messages.Repository { return m.m }
func (m *fakeRepoManager) System(db dbx.DBTX) system.Repository { return m.sys }
