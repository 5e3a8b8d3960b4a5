package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/recrutement/internal/logging"
	"github.com/dmitrijs2005/recrutement/internal/server/auth"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
	"github.com/dmitrijs2005/recrutement/internal/server/services"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeUsers struct {
	registered *services.RegisterInput
	regResp    *models.User
	regErr     error

	loginResp *services.LoginResult
	loginErr  error

	loggedOut *auth.Principal
	logoutErr error

	listResp []models.User
	listErr  error

	roleID   string
	roleSet  models.Role
	roleResp *models.User
	roleErr  error

	deletedID string
	deleteErr error
}

func (f *fakeUsers) Register(ctx context.Context, in services.RegisterInput) (*models.User, error) {
	f.registered = &in
	return f.regResp, f.regErr
}
func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	return f.loginResp, f.loginErr
}
func (f *fakeUsers) Logout(ctx context.Context, p *auth.Principal) error {
	f.loggedOut = p
	return f.logoutErr
}
func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	return f.listResp, f.listErr
}
func (f *fakeUsers) SetRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	f.roleID, f.roleSet = id, role
	return f.roleResp, f.roleErr
}
func (f *fakeUsers) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeCandidatures struct {
	userID       string
	online, cash bool
	resp         *models.Candidature
	err          error
}

func (f *fakeCandidatures) Submit(ctx context.Context, userID string, online, cash bool) (*models.Candidature, error) {
	f.userID, f.online, f.cash = userID, online, cash
	return f.resp, f.err
}
func (f *fakeCandidatures) Get(ctx context.Context, userID string) (*models.Candidature, error) {
	f.userID = userID
	return f.resp, f.err
}

type fakeDocuments struct {
	key, url string
	err      error
}

func (f *fakeDocuments) RequestUpload(ctx context.Context, userID string) (string, string, error) {
	return f.key, f.url, f.err
}
func (f *fakeDocuments) RequestDownload(ctx context.Context, userID string) (string, error) {
	return f.url, f.err
}

type fakeMessages struct {
	sender, receiver, text string
	sendResp               *models.Message
	sendErr                error

	me, other string
	convResp  []models.Message
	convErr   error
}

func (f *fakeMessages) Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	f.sender, f.receiver, f.text = senderID, receiverID, text
	return f.sendResp, f.sendErr
}
func (f *fakeMessages) Conversation(ctx context.Context, me, other string) ([]models.Message, error) {
	f.me, f.other = me, other
	return f.convResp, f.convErr
}

type fakeSystem struct {
	t   time.Time
	err error
}

func (f *fakeSystem) DatabaseTime(ctx context.Context) (time.Time, error) { return f.t, f.err }

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return f.revoked[tokenID], f.err
}

// ---- helpers ----

type testEnv struct {
	srv    *Server
	tokens *auth.TokenService

	users        *fakeUsers
	candidatures *fakeCandidatures
	documents    *fakeDocuments
	messages     *fakeMessages
	system       *fakeSystem
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		tokens:       auth.NewTokenService([]byte(testSecret), time.Hour),
		users:        &fakeUsers{},
		candidatures: &fakeCandidatures{},
		documents:    &fakeDocuments{},
		messages:     &fakeMessages{},
		system:       &fakeSystem{},
	}
	e.srv = NewServer(Options{CORSOrigins: []string{"*"}}, nopLogger{}, Deps{
		Tokens:       e.tokens,
		Users:        e.users,
		Candidatures: e.candidatures,
		Documents:    e.documents,
		Messages:     e.messages,
		System:       e.system,
	})
	return e
}

func (e *testEnv) token(t *testing.T, userID string, role models.Role) string {
	t.Helper()
	tok, err := e.tokens.Issue(userID, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var er ErrorResponse
	decodeBody(t, rec, &er)
	return er.Error
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q, want application/json", ct)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}
