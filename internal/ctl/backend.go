package ctl

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/nutricare/internal/logging"
	"github.com/dmitrijs2005/nutricare/internal/server"
	"github.com/dmitrijs2005/nutricare/internal/server/config"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/nutricare/internal/server/services"
)

// Backend is what the commands need from the server side.
type Backend interface {
	Migrate(ctx context.Context) error
	Register(ctx context.Context, username, password string) (*models.User, error)
	PruneRefreshTokens(ctx context.Context) (int64, error)
	Close() error
}

// Opener connects a Backend for cfg.
type Opener func(ctx context.Context, cfg *config.Config) (Backend, error)

type dbBackend struct {
	db    *sql.DB
	m     repomanager.RepositoryManager
	users *services.UserService
}

// OpenPostgres connects to cfg.DatabaseDSN without migrating, so that
// "migrate" stays an explicit step.
func OpenPostgres(ctx context.Context, cfg *config.Config) (Backend, error) {
	db, err := server.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	m := repomanager.NewPostgresRepositoryManager()
	return &dbBackend{
		db:    db,
		m:     m,
		users: services.NewUserService(db, m, cfg, logging.NewNop()),
	}, nil
}

func (b *dbBackend) Migrate(ctx context.Context) error {
	return b.m.RunMigrations(ctx, b.db)
}

func (b *dbBackend) Register(ctx context.Context, username, password string) (*models.User, error) {
	return b.users.Register(ctx, username, password)
}

func (b *dbBackend) PruneRefreshTokens(ctx context.Context) (int64, error) {
	return b.users.PruneRefreshTokens(ctx)
}

func (b *dbBackend) Close() error {
	return b.db.Close()
}
