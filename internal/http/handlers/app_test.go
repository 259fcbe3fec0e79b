package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/generation"
	"server/internal/infra"
	"server/internal/middleware"
)

const testUserID = "user-1"

type fakeGenerator struct {
	result   *generation.Result
	err      error
	requests []generation.Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req generation.Request) (*generation.Result, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeProfiles struct {
	profile *domain.UserProfile
	err     error

	upserted *domain.UserProfile
	progress []int
}

func (f *fakeProfiles) Upsert(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error) {
	f.upserted = p
	return p, f.err
}

func (f *fakeProfiles) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.profile == nil {
		return nil, domain.ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeProfiles) AddProgress(ctx context.Context, id string, points, workouts, gems int) error {
	f.progress = append(f.progress, points, workouts, gems)
	return nil
}

type fakePlans struct {
	saved    []*domain.SavedPlan
	plan     *domain.SavedPlan
	replaced *domain.TrainingPlan
	err      error
}

func (f *fakePlans) Save(ctx context.Context, saved *domain.SavedPlan) error {
	f.saved = append(f.saved, saved)
	return f.err
}

func (f *fakePlans) GetByID(ctx context.Context, userID, planID string) (*domain.SavedPlan, error) {
	if f.plan == nil {
		return nil, domain.ErrNotFound
	}
	return f.plan, nil
}

func (f *fakePlans) ListByUser(ctx context.Context, userID string) ([]domain.SavedPlan, error) {
	out := make([]domain.SavedPlan, 0, len(f.saved))
	for _, p := range f.saved {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlans) SetActive(ctx context.Context, userID, planID string) error { return f.err }

func (f *fakePlans) ReplacePlan(ctx context.Context, userID, planID string, plan domain.TrainingPlan) error {
	f.replaced = &plan
	return f.err
}

func (f *fakePlans) Delete(ctx context.Context, userID, planID string) error { return f.err }

type fakeJobs struct {
	created []*domain.Job
	job     *domain.Job
}

func (f *fakeJobs) Create(ctx context.Context, job *domain.Job) error {
	f.created = append(f.created, job)
	return nil
}

func (f *fakeJobs) GetByID(ctx context.Context, userID, jobID string) (*domain.Job, error) {
	if f.job == nil {
		return nil, domain.ErrNotFound
	}
	return f.job, nil
}

func (f *fakeJobs) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Job, error) {
	if f.job == nil {
		return nil, nil
	}
	return []domain.Job{*f.job}, nil
}

type fakeAssets struct {
	assets []domain.Asset
}

func (f *fakeAssets) ListByJobID(ctx context.Context, jobID string) ([]domain.Asset, error) {
	return f.assets, nil
}

func (f *fakeAssets) GetByID(ctx context.Context, userID, assetID string) (*domain.Asset, error) {
	for i := range f.assets {
		if f.assets[i].ID == assetID {
			return &f.assets[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeOrders struct {
	products []domain.Product
	orders   []*domain.Order
	err      error
}

func (f *fakeOrders) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeOrders) CreateOrder(ctx context.Context, order *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	order.Total = 99
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrders) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	return f.err
}

func (f *fakeOrders) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

type fakeChats struct {
	history  []domain.ChatMessage
	appended []domain.ChatMessage
	cleared  bool
}

func (f *fakeChats) Append(ctx context.Context, userID string, msg domain.ChatMessage) error {
	f.appended = append(f.appended, msg)
	return nil
}

func (f *fakeChats) History(ctx context.Context, userID string, limit int) ([]domain.ChatMessage, error) {
	return f.history, nil
}

func (f *fakeChats) Clear(ctx context.Context, userID string) error {
	f.cleared = true
	return nil
}

type fakeWorkouts struct {
	logs []*domain.WorkoutLog
}

func (f *fakeWorkouts) Insert(ctx context.Context, log *domain.WorkoutLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeWorkouts) ListByUser(ctx context.Context, userID string, limit int) ([]domain.WorkoutLog, error) {
	out := make([]domain.WorkoutLog, 0, len(f.logs))
	for _, l := range f.logs {
		out = append(out, *l)
	}
	return out, nil
}

type fakeCreds struct {
	key         string
	setKey      string
	invalidated bool
}

func (f *fakeCreds) GeminiAPIKey(ctx context.Context) (string, error) { return f.key, nil }

func (f *fakeCreds) SetGeminiAPIKey(ctx context.Context, key string) error {
	f.setKey = key
	return nil
}

func (f *fakeCreds) Invalidate(ctx context.Context) error {
	f.invalidated = true
	return nil
}

type fakeFiles struct {
	data map[string][]byte
}

func (f *fakeFiles) Read(ctx context.Context, key string) ([]byte, error) {
	if d, ok := f.data[key]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

type testDeps struct {
	gen      *fakeGenerator
	profiles *fakeProfiles
	plans    *fakePlans
	jobs     *fakeJobs
	assets   *fakeAssets
	orders   *fakeOrders
	chats    *fakeChats
	workouts *fakeWorkouts
	creds    *fakeCreds
	files    *fakeFiles
}

func newTestApp() (*App, *testDeps) {
	deps := &testDeps{
		gen:      &fakeGenerator{},
		profiles: &fakeProfiles{},
		plans:    &fakePlans{},
		jobs:     &fakeJobs{},
		assets:   &fakeAssets{},
		orders:   &fakeOrders{},
		chats:    &fakeChats{},
		workouts: &fakeWorkouts{},
		creds:    &fakeCreds{},
		files:    &fakeFiles{data: map[string][]byte{}},
	}
	app := &App{
		Cfg:      &infra.Config{JWTSecret: "test-secret"},
		Logger:   zerolog.New(io.Discard),
		Gen:      deps.gen,
		Profiles: deps.profiles,
		Plans:    deps.plans,
		Jobs:     deps.jobs,
		Assets:   deps.assets,
		Orders:   deps.orders,
		Chats:    deps.chats,
		Workouts: deps.workouts,
		Creds:    deps.creds,
		Files:    deps.files,
	}
	return app, deps
}

func testProfile() *domain.UserProfile {
	return &domain.UserProfile{
		ID:     testUserID,
		Name:   "Omar",
		Gender: domain.GenderMale,
		Age:    "24",
		Weight: "78",
		Height: "180",
	}
}

// authedRequest builds a request carrying the test user and locale, the way
// the auth and i18n middleware would have left the context.
func authedRequest(method, target, locale string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	ctx := middleware.ContextWithUserID(r.Context(), testUserID)
	ctx = context.WithValue(ctx, middleware.LocaleKey, locale)
	return r.WithContext(ctx)
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }
