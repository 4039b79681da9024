package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/nutricare/internal/dbx"
	"github.com/dmitrijs2005/nutricare/internal/logging"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/repomanager"
)

// YogaModeAPI asks for remote pose data. No remote source exists yet, so it
// is served from the local catalog.
const YogaModeAPI = "api"

type YogaCatalog interface {
	YogaPoses() (*models.YogaCatalog, error)
}

type YogaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	catalog     YogaCatalog
	logger      logging.Logger
}

func NewYogaService(db *sql.DB, m repomanager.RepositoryManager, catalog YogaCatalog, logger logging.Logger) *YogaService {
	return &YogaService{db: db, repomanager: m, catalog: catalog, logger: logger.With("service", "yoga")}
}

func (s *YogaService) Poses(ctx context.Context, mode string) (*models.YogaCatalog, error) {
	if mode == YogaModeAPI {
		s.logger.Info(ctx, "yoga api unavailable, using local data")
	}
	return s.catalog.YogaPoses()
}

// Save replaces the shared pose cache with poses in one transaction.
func (s *YogaService) Save(ctx context.Context, poses []models.YogaPose) (int, error) {
	var n int
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		n, err = s.repomanager.Yoga(tx).ReplaceAll(ctx, poses)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "yoga cache replaced", "poses", n)
	return n, nil
}

func (s *YogaService) History(ctx context.Context) ([]*models.YogaPose, error) {
	return s.repomanager.Yoga(s.db).List(ctx)
}
