package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/nutricare/internal/server/repositories/repomanager"
)

// DashboardStats are per-user counters shown on the dashboard.
type DashboardStats struct {
	Reminders     int `json:"reminders"`
	Prescriptions int `json:"prescriptions"`
}

type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager) *StatsService {
	return &StatsService{db: db, repomanager: m}
}

func (s *StatsService) Dashboard(ctx context.Context, userID string) (*DashboardStats, error) {
	reminders, err := s.repomanager.Reminders(s.db).Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	prescriptions, err := s.repomanager.Prescriptions(s.db).Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{Reminders: reminders, Prescriptions: prescriptions}, nil
}
