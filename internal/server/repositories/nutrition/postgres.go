package nutrition

import (
	"context"
	"time"

	"github.com/dmitrijs2005/nutricare/internal/dbx"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/store"
)

var schema = store.Schema[models.NutritionRecord]{
	Table:         "nutrition_history",
	OwnerColumn:   "user_id",
	CreatedColumn: "created_at",
	Columns:       []string{"food_name", "calories", "protein", "carbs", "fat"},
	Values: func(n *models.NutritionRecord) []any {
		return []any{n.FoodName, n.Calories, n.Protein, n.Carbs, n.Fat}
	},
	Scan: func(row store.Scanner) (*models.NutritionRecord, error) {
		n := &models.NutritionRecord{}
		if err := row.Scan(&n.ID, &n.UserID, &n.FoodName, &n.Calories, &n.Protein, &n.Carbs, &n.Fat, &n.CreatedAt); err != nil {
			return nil, err
		}
		return n, nil
	},
	Assign: func(n *models.NutritionRecord, id int64, userID string, created time.Time) {
		n.ID, n.UserID, n.CreatedAt = id, userID, created
	},
}

type PostgresRepository struct {
	store *store.Store[models.NutritionRecord]
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{store: store.New(db, schema)}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, rec *models.NutritionRecord) (*models.NutritionRecord, error) {
	if _, err := r.store.Create(ctx, userID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.NutritionRecord, error) {
	return r.store.List(ctx, userID)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	return r.store.Delete(ctx, userID, id)
}
