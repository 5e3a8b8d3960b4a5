// Package rest exposes the services over HTTP/JSON: a chi router, the
// authentication and role guards, and one handler per resource.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/recrutement/internal/logging"
	"github.com/dmitrijs2005/recrutement/internal/server/auth"
	"github.com/dmitrijs2005/recrutement/internal/server/models"
	"github.com/dmitrijs2005/recrutement/internal/server/services"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Principal, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Logout(ctx context.Context, p *auth.Principal) error
	List(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type CandidatureService interface {
	Submit(ctx context.Context, userID string, paiementOnline, paiementCash bool) (*models.Candidature, error)
	Get(ctx context.Context, userID string) (*models.Candidature, error)
}

type DocumentService interface {
	RequestUpload(ctx context.Context, userID string) (string, string, error)
	RequestDownload(ctx context.Context, userID string) (string, error)
}

type MessageService interface {
	Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error)
	Conversation(ctx context.Context, me, other string) ([]models.Message, error)
}

type SystemService interface {
	DatabaseTime(ctx context.Context) (time.Time, error)
}

// Deps are the collaborators of the HTTP server. Revocations may be nil.
type Deps struct {
	Tokens       TokenVerifier
	Revocations  RevocationChecker
	Users        UserService
	Candidatures CandidatureService
	Documents    DocumentService
	Messages     MessageService
	System       SystemService
}

type Options struct {
	Address         string
	CORSOrigins     []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	Deps
	opts   Options
	logger logging.Logger
}

func NewServer(opts Options, l logging.Logger, deps Deps) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		Deps:   deps,
		opts:   opts,
		logger: l.With("module", "http_server"),
	}
}

// Run serves HTTP on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.opts.RequestTimeout,
		WriteTimeout:      s.opts.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-shutdownErr
		return err
	}
	return <-shutdownErr
}
