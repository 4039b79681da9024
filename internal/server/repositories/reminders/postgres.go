package reminders

import (
	"context"
	"time"

	"github.com/dmitrijs2005/nutricare/internal/dbx"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/store"
)

var schema = store.Schema[models.Reminder]{
	Table:         "reminders",
	OwnerColumn:   "user_id",
	CreatedColumn: "created_at",
	Columns:       []string{"medicine", "dosage", "time", "frequency"},
	Values: func(r *models.Reminder) []any {
		return []any{r.Medicine, r.Dosage, r.Time, r.Frequency}
	},
	Scan: func(row store.Scanner) (*models.Reminder, error) {
		r := &models.Reminder{}
		if err := row.Scan(&r.ID, &r.UserID, &r.Medicine, &r.Dosage, &r.Time, &r.Frequency, &r.CreatedAt); err != nil {
			return nil, err
		}
		return r, nil
	},
	Assign: func(r *models.Reminder, id int64, userID string, created time.Time) {
		r.ID, r.UserID, r.CreatedAt = id, userID, created
	},
}

type PostgresRepository struct {
	store *store.Store[models.Reminder]
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{store: store.New(db, schema)}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, reminder *models.Reminder) (*models.Reminder, error) {
	if _, err := r.store.Create(ctx, userID, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Reminder, error) {
	return r.store.List(ctx, userID)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	return r.store.Delete(ctx, userID, id)
}

func (r *PostgresRepository) Count(ctx context.Context, userID string) (int, error) {
	return r.store.Count(ctx, userID)
}
