// Package yoga persists the shared yoga pose cache. Unlike the per-user
// tables it has no owner: saving replaces the whole set.
package yoga

import (
	"context"

	"github.com/dmitrijs2005/nutricare/internal/server/models"
)

type Repository interface {
	ReplaceAll(ctx context.Context, poses []models.YogaPose) (int, error)
	List(ctx context.Context) ([]*models.YogaPose, error)
}
