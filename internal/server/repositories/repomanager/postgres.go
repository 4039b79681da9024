// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/nutricare/internal/dbx"
	"github.com/dmitrijs2005/nutricare/internal/server/migrations"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/nutrition"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/prescriptions"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/reminders"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/users"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/yoga"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Reminders(db dbx.DBTX) reminders.Repository {
	return reminders.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Prescriptions(db dbx.DBTX) prescriptions.Repository {
	return prescriptions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Nutrition(db dbx.DBTX) nutrition.Repository {
	return nutrition.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Yoga(db dbx.DBTX) yoga.Repository {
	return yoga.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations to db.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
