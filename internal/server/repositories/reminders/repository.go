// Package reminders persists medication reminders, one list per user.
package reminders

import (
	"context"

	"github.com/dmitrijs2005/nutricare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, r *models.Reminder) (*models.Reminder, error)
	List(ctx context.Context, userID string) ([]*models.Reminder, error)
	Delete(ctx context.Context, userID string, id int64) (bool, error)
	Count(ctx context.Context, userID string) (int, error)
}
