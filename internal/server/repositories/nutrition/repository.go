// Package nutrition persists the nutrition facts a user saved from search.
package nutrition

import (
	"context"

	"github.com/dmitrijs2005/nutricare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, rec *models.NutritionRecord) (*models.NutritionRecord, error)
	List(ctx context.Context, userID string) ([]*models.NutritionRecord, error)
	Delete(ctx context.Context, userID string, id int64) (bool, error)
}
