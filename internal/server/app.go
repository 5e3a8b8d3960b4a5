// Package server wires configuration, storage and services together and runs
// the HTTP API until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/recrutement/internal/logging"
	"github.com/dmitrijs2005/recrutement/internal/server/auth"
	"github.com/dmitrijs2005/recrutement/internal/server/config"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/revocations"
	"github.com/dmitrijs2005/recrutement/internal/server/rest"
	"github.com/dmitrijs2005/recrutement/internal/server/services"
	"github.com/redis/go-redis/v9"
)

// Seams for tests.
var (
	openDB         = repomanager.OpenDB
	newRedisClient = revocations.NewRedisClient
	logOutput      io.Writer = os.Stdout
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	server *rest.Server
}

// NewApp validates c, connects to PostgreSQL (and Redis when configured),
// applies migrations if enabled and builds the HTTP server.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(c.LogBackend, c.Development(), logOutput)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger}

	app.db, err = openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if c.MigrateOnStart {
		logger.Info(ctx, "Applying migrations...")
		if err := m.RunMigrations(ctx, app.db); err != nil {
			app.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	var (
		revoked revocations.Repository
		checker rest.RevocationChecker
	)
	if c.RedisEnabled() {
		app.redis, err = newRedisClient(ctx, c.RedisURL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		repo := revocations.NewRedisRepository(app.redis)
		revoked, checker = repo, repo
	} else {
		logger.Warn(ctx, "REDIS_URL not set, logout will not revoke tokens")
	}

	if !c.S3Enabled() {
		logger.Warn(ctx, "S3 bucket not set, document upload is disabled")
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenTTL)

	app.server = rest.NewServer(rest.Options{
		Address:         c.HTTPAddr,
		CORSOrigins:     c.CORSOrigins,
		RequestTimeout:  c.RequestTimeout,
		ShutdownTimeout: c.ShutdownTimeout,
	}, logger, rest.Deps{
		Tokens:       tokens,
		Revocations:  checker,
		Users:        services.NewUserService(app.db, m, tokens, revoked, services.WithCandidatSignup(c.AllowCandidatSignup)),
		Candidatures: services.NewCandidatureService(app.db, m),
		Documents:    services.NewDocumentService(app.db, m, c),
		Messages:     services.NewMessageService(app.db, m),
		System:       services.NewSystemService(app.db, m),
	})

	return app, nil
}

// initSignalHandler cancels the app on SIGINT, SIGTERM or SIGQUIT. The
// handler is unregistered once ctx is done; the returned channel is closed
// when its goroutine exits.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) <-chan struct{} {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer signal.Stop(sigs)

		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
	return done
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the database and Redis connections.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.Close()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(ctx, cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server error", "error", err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

// Close releases external connections. It is safe to call more than once.
func (app *App) Close() {
	var errs []error
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
		app.redis = nil
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
		app.db = nil
	}
	if z, ok := app.logger.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Error(context.Background(), "error closing connections", "error", err.Error())
	}
}
