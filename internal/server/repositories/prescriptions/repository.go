// Package prescriptions persists the metadata rows of uploaded
// prescription images. The bytes themselves live in a blob store.
package prescriptions

import (
	"context"

	"github.com/dmitrijs2005/nutricare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, p *models.Prescription) (*models.Prescription, error)
	List(ctx context.Context, userID string) ([]*models.Prescription, error)
	Get(ctx context.Context, userID string, id int64) (*models.Prescription, error)
	Delete(ctx context.Context, userID string, id int64) (bool, error)
	Count(ctx context.Context, userID string) (int, error)
}
