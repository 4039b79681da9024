package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/nutricare/internal/dbx"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/nutrition"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/prescriptions"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/reminders"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/users"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/yoga"
)

// RepositoryManager hands out repositories bound to a DBTX, so services can
// use the same constructors on *sql.DB and inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Reminders(db dbx.DBTX) reminders.Repository
	Prescriptions(db dbx.DBTX) prescriptions.Repository
	Nutrition(db dbx.DBTX) nutrition.Repository
	Yoga(db dbx.DBTX) yoga.Repository
}
