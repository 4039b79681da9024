// Package server wires configuration, storage and services together and
// runs the HTTP API until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/nutricare/internal/logging"
	"github.com/dmitrijs2005/nutricare/internal/server/blobstore"
	"github.com/dmitrijs2005/nutricare/internal/server/catalog"
	"github.com/dmitrijs2005/nutricare/internal/server/config"
	"github.com/dmitrijs2005/nutricare/internal/server/httpapi"
	"github.com/dmitrijs2005/nutricare/internal/server/nutritionapi"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/nutricare/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// sqlOpen is a test seam for sql.Open.
var sqlOpen = sql.Open

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	services httpapi.Services
}

// Connect opens the pgx pool and checks connectivity.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return db, nil
}

// OpenDatabase connects and applies pending migrations.
func OpenDatabase(ctx context.Context, dsn string, m repomanager.RepositoryManager) (*sql.DB, error) {
	db, err := Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return db, nil
}

// NewBlobStore builds the prescription content store selected by
// c.StorageBackend.
func NewBlobStore(ctx context.Context, c *config.Config) (blobstore.Store, error) {
	switch c.StorageBackend {
	case config.StorageLocal:
		return blobstore.NewLocalStore(c.UploadDir)
	case config.StorageS3:
		s, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3BaseEndpoint,
			AccessKey: c.S3RootUser,
			SecretKey: c.S3RootPassword,
		})
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	m := repomanager.NewPostgresRepositoryManager()

	db, err := OpenDatabase(ctx, c.DatabaseDSN, m)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	blobs, err := NewBlobStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	data := catalog.New(c.DataDir)
	remote := nutritionapi.New(c.NutritionAPIURL, c.NutritionAPIKey, c.NutritionAPITimeout)
	if !remote.Enabled() {
		logger.Info(ctx, "nutrition api key not set, searches use local data only")
	}

	svc := httpapi.Services{
		Users:         services.NewUserService(db, m, c, logger),
		Reminders:     services.NewReminderService(db, m, logger),
		Prescriptions: services.NewPrescriptionService(db, m, blobs, logger),
		Nutrition:     services.NewNutritionService(db, m, data, remote, c.NutritionAPITimeout, logger),
		Yoga:          services.NewYogaService(db, m, data, logger),
		Stats:         services.NewStatsService(db, m),
	}

	return &App{config: c, logger: logger, db: db, services: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.config.SecretKey, app.services)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
