package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/dmitrijs2005/nutricare/internal/logging"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/repomanager"
)

type ReminderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewReminderService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ReminderService {
	return &ReminderService{db: db, repomanager: m, logger: logger.With("service", "reminders")}
}

// Create stores a reminder for userID. Every field is required.
func (s *ReminderService) Create(ctx context.Context, userID string, r *models.Reminder) (*models.Reminder, error) {
	r.Medicine = strings.TrimSpace(r.Medicine)
	r.Dosage = strings.TrimSpace(r.Dosage)
	r.Time = strings.TrimSpace(r.Time)
	r.Frequency = strings.TrimSpace(r.Frequency)

	for _, f := range []struct{ name, value string }{
		{"medicine", r.Medicine},
		{"dosage", r.Dosage},
		{"time", r.Time},
		{"frequency", r.Frequency},
	} {
		if f.value == "" {
			return nil, &common.MissingFieldError{Field: f.name}
		}
	}

	created, err := s.repomanager.Reminders(s.db).Create(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "reminder created", "user_id", userID, "id", created.ID)
	return created, nil
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]*models.Reminder, error) {
	return s.repomanager.Reminders(s.db).List(ctx, userID)
}

// Delete reports false when the reminder is missing or belongs to another user.
func (s *ReminderService) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	return s.repomanager.Reminders(s.db).Delete(ctx, userID, id)
}
