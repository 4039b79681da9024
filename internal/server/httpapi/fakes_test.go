package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/dmitrijs2005/nutricare/internal/logging"
	"github.com/dmitrijs2005/nutricare/internal/server/auth"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/dmitrijs2005/nutricare/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers struct {
	registerErr error
	loginErr    error
	refreshErr  error
	logoutErr   error
	lastToken   string
}

func (f *fakeUsers) Register(ctx context.Context, username, password string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "u-1", UserName: username}, nil
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (*services.TokenPair, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeUsers) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	f.lastToken = refreshToken
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return &services.TokenPair{AccessToken: "access2", RefreshToken: "refresh2"}, nil
}

func (f *fakeUsers) Logout(ctx context.Context, refreshToken string) error {
	f.lastToken = refreshToken
	return f.logoutErr
}

func (f *fakeUsers) Profile(ctx context.Context, userID string) (*models.User, error) {
	return &models.User{ID: userID, UserName: "alice"}, nil
}

type fakeReminders struct {
	items   map[string][]*models.Reminder
	nextID  int64
	lastErr error
}

func newFakeReminders() *fakeReminders {
	return &fakeReminders{items: map[string][]*models.Reminder{}}
}

func (f *fakeReminders) Create(ctx context.Context, userID string, r *models.Reminder) (*models.Reminder, error) {
	if r.Medicine == "" {
		return nil, &common.MissingFieldError{Field: "medicine"}
	}
	f.nextID++
	r.ID = f.nextID
	r.UserID = userID
	f.items[userID] = append([]*models.Reminder{r}, f.items[userID]...)
	return r, nil
}

func (f *fakeReminders) List(ctx context.Context, userID string) ([]*models.Reminder, error) {
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	items := f.items[userID]
	if items == nil {
		items = []*models.Reminder{}
	}
	return items, nil
}

func (f *fakeReminders) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	for i, r := range f.items[userID] {
		if r.ID == id {
			f.items[userID] = append(f.items[userID][:i], f.items[userID][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakePrescriptions struct {
	uploadedName string
	uploadedSize int
	uploadErr    error
	file         *services.PrescriptionFile
	openErr      error
	deleted      bool
}

func (f *fakePrescriptions) Upload(ctx context.Context, userID, originalName string, data []byte) (*models.Prescription, error) {
	f.uploadedName = originalName
	f.uploadedSize = len(data)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &models.Prescription{ID: 1, UserID: userID, StoredFilename: "abc.png", OriginalFilename: originalName}, nil
}

func (f *fakePrescriptions) List(ctx context.Context, userID string) ([]*models.Prescription, error) {
	return []*models.Prescription{}, nil
}

func (f *fakePrescriptions) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	return f.deleted, nil
}

func (f *fakePrescriptions) Open(ctx context.Context, userID string, id int64) (*services.PrescriptionFile, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.file, nil
}

type fakeNutrition struct {
	lastQuery  string
	lastUseAPI bool
	searchErr  error
	saved      *services.NutritionEntry
}

func (f *fakeNutrition) Search(ctx context.Context, query string, useAPI bool) (*services.SearchResult, error) {
	f.lastQuery, f.lastUseAPI = query, useAPI
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &services.SearchResult{
		Results: []models.NutritionFact{{Name: "Apple", Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2}},
		Source:  services.SourceLocal,
	}, nil
}

func (f *fakeNutrition) Save(ctx context.Context, userID string, e *services.NutritionEntry) (*models.NutritionRecord, error) {
	f.saved = e
	if e.FoodName == nil {
		return nil, &common.MissingFieldError{Field: "food_name"}
	}
	return &models.NutritionRecord{ID: 7, UserID: userID, FoodName: *e.FoodName}, nil
}

func (f *fakeNutrition) History(ctx context.Context, userID string) ([]*models.NutritionRecord, error) {
	return []*models.NutritionRecord{}, nil
}

func (f *fakeNutrition) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	return id == 7, nil
}

type fakeYoga struct {
	lastMode string
	saved    []models.YogaPose
	posesErr error
}

func (f *fakeYoga) Poses(ctx context.Context, mode string) (*models.YogaCatalog, error) {
	f.lastMode = mode
	if f.posesErr != nil {
		return nil, f.posesErr
	}
	return &models.YogaCatalog{Poses: []models.YogaPose{
		{Name: "Tree Pose", Steps: models.Steps(`["Stand","Balance"]`)},
	}}, nil
}

func (f *fakeYoga) Save(ctx context.Context, poses []models.YogaPose) (int, error) {
	f.saved = poses
	return len(poses), nil
}

// History hands back the last saved set the way the cache stores it: steps
// go through their column text.
func (f *fakeYoga) History(ctx context.Context) ([]*models.YogaPose, error) {
	res := make([]*models.YogaPose, 0, len(f.saved))
	for i := len(f.saved) - 1; i >= 0; i-- {
		p := f.saved[i]
		p.Steps = models.StepsFromText(p.Steps.Text())
		res = append(res, &p)
	}
	return res, nil
}

type fakeStats struct{}

func (fakeStats) Dashboard(ctx context.Context, userID string) (*services.DashboardStats, error) {
	return &services.DashboardStats{Reminders: 2, Prescriptions: 1}, nil
}

type testEnv struct {
	handler       http.Handler
	users         *fakeUsers
	reminders     *fakeReminders
	prescriptions *fakePrescriptions
	nutrition     *fakeNutrition
	yoga          *fakeYoga
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		users:         &fakeUsers{},
		reminders:     newFakeReminders(),
		prescriptions: &fakePrescriptions{},
		nutrition:     &fakeNutrition{},
		yoga:          &fakeYoga{},
	}
	s := NewHTTPServer(":0", logging.NewNop(), testSecret, Services{
		Users:         e.users,
		Reminders:     e.reminders,
		Prescriptions: e.prescriptions,
		Nutrition:     e.nutrition,
		Yoga:          e.yoga,
		Stats:         fakeStats{},
	})
	e.handler = s.Handler()
	return e
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Minute)
	require.NoError(t, err)
	return common.BearerPrefix + tok
}

func (e *testEnv) do(t *testing.T, method, path, authz string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authz != "" {
		req.Header.Set(common.AuthorizationHeaderName, authz)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(t *testing.T, method, path, authz, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return e.do(t, method, path, authz, r, "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}
