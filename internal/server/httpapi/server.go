// Package httpapi exposes the NutriCare services as a JSON API over gin.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/nutricare/internal/logging"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/dmitrijs2005/nutricare/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type ReminderService interface {
	Create(ctx context.Context, userID string, r *models.Reminder) (*models.Reminder, error)
	List(ctx context.Context, userID string) ([]*models.Reminder, error)
	Delete(ctx context.Context, userID string, id int64) (bool, error)
}

type PrescriptionService interface {
	Upload(ctx context.Context, userID, originalName string, data []byte) (*models.Prescription, error)
	List(ctx context.Context, userID string) ([]*models.Prescription, error)
	Delete(ctx context.Context, userID string, id int64) (bool, error)
	Open(ctx context.Context, userID string, id int64) (*services.PrescriptionFile, error)
}

type NutritionService interface {
	Search(ctx context.Context, query string, useAPI bool) (*services.SearchResult, error)
	Save(ctx context.Context, userID string, e *services.NutritionEntry) (*models.NutritionRecord, error)
	History(ctx context.Context, userID string) ([]*models.NutritionRecord, error)
	Delete(ctx context.Context, userID string, id int64) (bool, error)
}

type YogaService interface {
	Poses(ctx context.Context, mode string) (*models.YogaCatalog, error)
	Save(ctx context.Context, poses []models.YogaPose) (int, error)
	History(ctx context.Context) ([]*models.YogaPose, error)
}

type StatsService interface {
	Dashboard(ctx context.Context, userID string) (*services.DashboardStats, error)
}

// Services groups everything the handlers call.
type Services struct {
	Users         UserService
	Reminders     ReminderService
	Prescriptions PrescriptionService
	Nutrition     NutritionService
	Yoga          YogaService
	Stats         StatsService
}

type HTTPServer struct {
	address   string
	logger    logging.Logger
	jwtSecret []byte
	svc       Services
	engine    *gin.Engine
}

func NewHTTPServer(address string, l logging.Logger, secretKey string, svc Services) *HTTPServer {
	s := &HTTPServer{
		address:   address,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
		svc:       svc,
	}
	s.engine = s.routes()
	return s
}

// Handler returns the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.bodyLimit(maxBodySize))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	api.GET("/health", s.health)

	auth := api.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.POST("/refresh", s.refresh)
		auth.POST("/logout", s.logout)
	}

	private := api.Group("", s.accessTokenMiddleware())
	{
		private.GET("/profile", s.profile)
		private.GET("/dashboard/stats", s.dashboardStats)

		private.GET("/reminders", s.listReminders)
		private.POST("/reminders", s.createReminder)
		private.DELETE("/reminders/:id", s.deleteReminder)

		private.GET("/prescriptions", s.listPrescriptions)
		private.POST("/prescriptions", s.uploadPrescription)
		private.GET("/prescriptions/:id/file", s.prescriptionFile)
		private.DELETE("/prescriptions/:id", s.deletePrescription)

		private.POST("/nutrition/search", s.searchNutrition)
		private.GET("/nutrition/history", s.nutritionHistory)
		private.POST("/nutrition/save", s.saveNutrition)
		private.DELETE("/nutrition/history/:id", s.deleteNutrition)

		private.GET("/yoga/poses", s.yogaPoses)
		private.POST("/yoga/save", s.saveYoga)
		private.GET("/yoga/history", s.yogaHistory)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
