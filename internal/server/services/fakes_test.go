package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/dmitrijs2005/nutricare/internal/dbx"
	"github.com/dmitrijs2005/nutricare/internal/server/catalog"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/nutrition"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/prescriptions"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/reminders"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/users"
	"github.com/dmitrijs2005/nutricare/internal/server/repositories/yoga"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// -------- repositories --------

type fakeUsersRepo struct {
	byName    map[string]*models.User
	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = "id-" + u.UserName
	u.CreatedAt = time.Now()
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, name string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeRefreshRepo struct {
	tokens map[string]*models.RefreshToken

	createErr error
	findErr   error
	deleteErr error
	// consumed makes Delete report that another request used the token first.
	consumed bool
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if f.consumed {
		return false, nil
	}
	_, ok := f.tokens[token]
	delete(f.tokens, token)
	return ok, nil
}

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for k, t := range f.tokens {
		if t.Expires.Before(now) {
			delete(f.tokens, k)
			n++
		}
	}
	return n, nil
}

// ownedRows is an in-memory owner-scoped table, newest first.
type ownedRows[T any] struct {
	rows   []*T
	owner  func(*T) string
	id     func(*T) int64
	assign func(*T, int64, string)
	nextID int64

	createErr error
	listErr   error
	getErr    error
	deleteErr error
}

func (o *ownedRows[T]) create(userID string, item *T) (*T, error) {
	if o.createErr != nil {
		return nil, o.createErr
	}
	o.nextID++
	o.assign(item, o.nextID, userID)
	o.rows = append(o.rows, item)
	return item, nil
}

func (o *ownedRows[T]) list(userID string) ([]*T, error) {
	if o.listErr != nil {
		return nil, o.listErr
	}
	out := make([]*T, 0)
	for _, r := range o.rows {
		if o.owner(r) == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return o.id(out[i]) > o.id(out[j]) })
	return out, nil
}

func (o *ownedRows[T]) get(userID string, id int64) (*T, error) {
	if o.getErr != nil {
		return nil, o.getErr
	}
	for _, r := range o.rows {
		if o.id(r) == id && o.owner(r) == userID {
			return r, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (o *ownedRows[T]) delete(userID string, id int64) (bool, error) {
	if o.deleteErr != nil {
		return false, o.deleteErr
	}
	for i, r := range o.rows {
		if o.id(r) == id && o.owner(r) == userID {
			o.rows = append(o.rows[:i], o.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (o *ownedRows[T]) count(userID string) (int, error) {
	l, err := o.list(userID)
	return len(l), err
}

type fakeReminderRepo struct{ ownedRows[models.Reminder] }

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{ownedRows[models.Reminder]{
		owner:  func(r *models.Reminder) string { return r.UserID },
		id:     func(r *models.Reminder) int64 { return r.ID },
		assign: func(r *models.Reminder, id int64, u string) { r.ID, r.UserID, r.CreatedAt = id, u, time.Now() },
	}}
}

func (f *fakeReminderRepo) Create(_ context.Context, u string, r *models.Reminder) (*models.Reminder, error) {
	return f.create(u, r)
}
func (f *fakeReminderRepo) List(_ context.Context, u string) ([]*models.Reminder, error) {
	return f.list(u)
}
func (f *fakeReminderRepo) Delete(_ context.Context, u string, id int64) (bool, error) {
	return f.delete(u, id)
}
func (f *fakeReminderRepo) Count(_ context.Context, u string) (int, error) { return f.count(u) }

type fakePrescriptionRepo struct{ ownedRows[models.Prescription] }

func newFakePrescriptionRepo() *fakePrescriptionRepo {
	return &fakePrescriptionRepo{ownedRows[models.Prescription]{
		owner:  func(p *models.Prescription) string { return p.UserID },
		id:     func(p *models.Prescription) int64 { return p.ID },
		assign: func(p *models.Prescription, id int64, u string) { p.ID, p.UserID, p.UploadDate = id, u, time.Now() },
	}}
}

func (f *fakePrescriptionRepo) Create(_ context.Context, u string, p *models.Prescription) (*models.Prescription, error) {
	return f.create(u, p)
}
func (f *fakePrescriptionRepo) List(_ context.Context, u string) ([]*models.Prescription, error) {
	return f.list(u)
}
func (f *fakePrescriptionRepo) Get(_ context.Context, u string, id int64) (*models.Prescription, error) {
	return f.get(u, id)
}
func (f *fakePrescriptionRepo) Delete(_ context.Context, u string, id int64) (bool, error) {
	return f.delete(u, id)
}
func (f *fakePrescriptionRepo) Count(_ context.Context, u string) (int, error) { return f.count(u) }

type fakeNutritionRepo struct{ ownedRows[models.NutritionRecord] }

func newFakeNutritionRepo() *fakeNutritionRepo {
	return &fakeNutritionRepo{ownedRows[models.NutritionRecord]{
		owner:  func(n *models.NutritionRecord) string { return n.UserID },
		id:     func(n *models.NutritionRecord) int64 { return n.ID },
		assign: func(n *models.NutritionRecord, id int64, u string) { n.ID, n.UserID, n.CreatedAt = id, u, time.Now() },
	}}
}

func (f *fakeNutritionRepo) Create(_ context.Context, u string, n *models.NutritionRecord) (*models.NutritionRecord, error) {
	return f.create(u, n)
}
func (f *fakeNutritionRepo) List(_ context.Context, u string) ([]*models.NutritionRecord, error) {
	return f.list(u)
}
func (f *fakeNutritionRepo) Delete(_ context.Context, u string, id int64) (bool, error) {
	return f.delete(u, id)
}

type fakeYogaRepo struct {
	poses      []*models.YogaPose
	replaceErr error
	listErr    error
}

func (f *fakeYogaRepo) ReplaceAll(_ context.Context, poses []models.YogaPose) (int, error) {
	if f.replaceErr != nil {
		return 0, f.replaceErr
	}
	f.poses = f.poses[:0]
	for i := len(poses) - 1; i >= 0; i-- {
		p := poses[i]
		p.ID = int64(i + 1)
		f.poses = append(f.poses, &p)
	}
	return len(poses), nil
}

func (f *fakeYogaRepo) List(_ context.Context) ([]*models.YogaPose, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.poses, nil
}

type fakeRepoManager struct {
	users         *fakeUsersRepo
	refresh       *fakeRefreshRepo
	reminders     *fakeReminderRepo
	prescriptions *fakePrescriptionRepo
	nutrition     *fakeNutritionRepo
	yoga          *fakeYogaRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:         newFakeUsersRepo(),
		refresh:       newFakeRefreshRepo(),
		reminders:     newFakeReminderRepo(),
		prescriptions: newFakePrescriptionRepo(),
		nutrition:     newFakeNutritionRepo(),
		yoga:          &fakeYogaRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                   { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository   { return m.refresh }
func (m *fakeRepoManager) Reminders(dbx.DBTX) reminders.Repository           { return m.reminders }
func (m *fakeRepoManager) Prescriptions(dbx.DBTX) prescriptions.Repository   { return m.prescriptions }
func (m *fakeRepoManager) Nutrition(dbx.DBTX) nutrition.Repository           { return m.nutrition }
func (m *fakeRepoManager) Yoga(dbx.DBTX) yoga.Repository                     { return m.yoga }

// -------- blob store --------

type fakeBlobs struct {
	objects   map[string][]byte
	putErr    error
	removeErr error
	removed   []string
}

func newFakeBlobs() *fakeBlobs { return &fakeBlobs{objects: map[string][]byte{}} }

func (f *fakeBlobs) Put(_ context.Context, name string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[name] = data
	return nil
}

func (f *fakeBlobs) Open(_ context.Context, name string) (io.ReadCloser, error) {
	b, ok := f.objects[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeBlobs) Remove(_ context.Context, name string) (bool, error) {
	f.removed = append(f.removed, name)
	if f.removeErr != nil {
		return false, f.removeErr
	}
	_, ok := f.objects[name]
	delete(f.objects, name)
	return ok, nil
}

type fakePresigningBlobs struct {
	*fakeBlobs
}

func (f fakePresigningBlobs) PresignGet(_ context.Context, name string) (string, error) {
	return "https://bucket.example/" + name + "?sig=1", nil
}

// -------- data sources --------

type fakeFoodCatalog struct {
	foods []models.NutritionFact
	err   error
	calls int
}

func (f *fakeFoodCatalog) SearchFoods(query string) ([]models.NutritionFact, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	res := catalog.Match(f.foods, query)
	if len(res) == 0 {
		return nil, common.ErrNoNutritionData
	}
	return res, nil
}

type fakeLookup struct {
	enabled     bool
	res         []models.NutritionFact
	err         error
	calls       int
	hadDeadline bool
}

func (f *fakeLookup) Enabled() bool { return f.enabled }

func (f *fakeLookup) Lookup(ctx context.Context, _ string) ([]models.NutritionFact, error) {
	f.calls++
	_, f.hadDeadline = ctx.Deadline()
	return f.res, f.err
}

type fakeYogaCatalog struct {
	doc *models.YogaCatalog
	err error
}

func (f *fakeYogaCatalog) YogaPoses() (*models.YogaCatalog, error) { return f.doc, f.err }
