package prescriptions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/nutricare/internal/dbx"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/store"
)

var schema = store.Schema[models.Prescription]{
	Table:         "prescriptions",
	OwnerColumn:   "user_id",
	CreatedColumn: "upload_date",
	Columns:       []string{"stored_filename", "original_filename"},
	Values: func(p *models.Prescription) []any {
		return []any{p.StoredFilename, p.OriginalFilename}
	},
	Scan: func(row store.Scanner) (*models.Prescription, error) {
		p := &models.Prescription{}
		if err := row.Scan(&p.ID, &p.UserID, &p.StoredFilename, &p.OriginalFilename, &p.UploadDate); err != nil {
			return nil, err
		}
		return p, nil
	},
	Assign: func(p *models.Prescription, id int64, userID string, uploaded time.Time) {
		p.ID, p.UserID, p.UploadDate = id, userID, uploaded
	},
}

type PostgresRepository struct {
	store *store.Store[models.Prescription]
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{store: store.New(db, schema)}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, p *models.Prescription) (*models.Prescription, error) {
	if _, err := r.store.Create(ctx, userID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Prescription, error) {
	return r.store.List(ctx, userID)
}

// Get returns common.ErrorNotFound for rows that are missing or owned by
// someone else.
func (r *PostgresRepository) Get(ctx context.Context, userID string, id int64) (*models.Prescription, error) {
	return r.store.Get(ctx, userID, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	return r.store.Delete(ctx, userID, id)
}

func (r *PostgresRepository) Count(ctx context.Context, userID string) (int, error) {
	return r.store.Count(ctx, userID)
}
