package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/dmitrijs2005/nutricare/internal/logging"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/repomanager"
)

// Search result sources.
const (
	SourceAPI   = "api"
	SourceLocal = "local"
)

// FoodCatalog is the local food dataset.
type FoodCatalog interface {
	SearchFoods(query string) ([]models.NutritionFact, error)
}

// NutritionLookup is the remote nutrition API.
type NutritionLookup interface {
	Enabled() bool
	Lookup(ctx context.Context, query string) ([]models.NutritionFact, error)
}

type SearchResult struct {
	Results []models.NutritionFact `json:"results"`
	Source  string                 `json:"source"`
}

// NutritionEntry is the payload of a save request. Pointer fields tell a
// missing value from a zero one.
type NutritionEntry struct {
	FoodName *string  `json:"food_name"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

type NutritionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	catalog     FoodCatalog
	remote      NutritionLookup
	timeout     time.Duration
	logger      logging.Logger
}

func NewNutritionService(db *sql.DB, m repomanager.RepositoryManager, catalog FoodCatalog, remote NutritionLookup,
	timeout time.Duration, logger logging.Logger) *NutritionService {
	return &NutritionService{
		db:          db,
		repomanager: m,
		catalog:     catalog,
		remote:      remote,
		timeout:     timeout,
		logger:      logger.With("service", "nutrition"),
	}
}

// Search tries the remote API when useAPI is set and falls back to the
// local catalog on any remote failure.
func (s *NutritionService) Search(ctx context.Context, query string, useAPI bool) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, common.ErrEmptyQuery
	}

	if useAPI {
		res, err := s.lookupRemote(ctx, query)
		if err == nil {
			return &SearchResult{Results: res, Source: SourceAPI}, nil
		}
		s.logger.Warn(ctx, "nutrition api failed, using local data", "query", query, "error", err)
	}

	res, err := s.catalog.SearchFoods(query)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Results: res, Source: SourceLocal}, nil
}

func (s *NutritionService) lookupRemote(ctx context.Context, query string) ([]models.NutritionFact, error) {
	if s.remote == nil || !s.remote.Enabled() {
		return nil, fmt.Errorf("%w: not configured", common.ErrExternalServiceUnavailable)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.remote.Lookup(ctx, query)
}

// Save validates e and appends it to userID's history.
func (s *NutritionService) Save(ctx context.Context, userID string, e *NutritionEntry) (*models.NutritionRecord, error) {
	if e.FoodName == nil || strings.TrimSpace(*e.FoodName) == "" {
		return nil, &common.MissingFieldError{Field: "food_name"}
	}
	values := []struct {
		name string
		v    *float64
	}{
		{"calories", e.Calories},
		{"protein", e.Protein},
		{"carbs", e.Carbs},
		{"fat", e.Fat},
	}
	for _, f := range values {
		if f.v == nil {
			return nil, &common.MissingFieldError{Field: f.name}
		}
	}
	for _, f := range values {
		if *f.v < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", common.ErrorValidation, f.name)
		}
	}

	return s.repomanager.Nutrition(s.db).Create(ctx, userID, &models.NutritionRecord{
		FoodName: strings.TrimSpace(*e.FoodName),
		Calories: *e.Calories,
		Protein:  *e.Protein,
		Carbs:    *e.Carbs,
		Fat:      *e.Fat,
	})
}

func (s *NutritionService) History(ctx context.Context, userID string) ([]*models.NutritionRecord, error) {
	return s.repomanager.Nutrition(s.db).List(ctx, userID)
}

func (s *NutritionService) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	return s.repomanager.Nutrition(s.db).Delete(ctx, userID, id)
}
