package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"server/internal/domain"
	"server/internal/generation"
	"server/internal/infra"
	"server/internal/middleware"
)

// Generator executes synchronous generation requests.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// ProfileStore persists user profiles.
type ProfileStore interface {
	Upsert(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error)
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	AddProgress(ctx context.Context, id string, points, workouts, gems int) error
}

// PlanStore persists saved training plans.
type PlanStore interface {
	Save(ctx context.Context, saved *domain.SavedPlan) error
	GetByID(ctx context.Context, userID, planID string) (*domain.SavedPlan, error)
	ListByUser(ctx context.Context, userID string) ([]domain.SavedPlan, error)
	SetActive(ctx context.Context, userID, planID string) error
	ReplacePlan(ctx context.Context, userID, planID string, plan domain.TrainingPlan) error
	Delete(ctx context.Context, userID, planID string) error
}

// JobStore persists queued generation jobs.
type JobStore interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, userID, jobID string) (*domain.Job, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Job, error)
}

// AssetStore reads stored asset metadata.
type AssetStore interface {
	ListByJobID(ctx context.Context, jobID string) ([]domain.Asset, error)
	GetByID(ctx context.Context, userID, assetID string) (*domain.Asset, error)
}

// OrderStore persists store products and orders.
type OrderStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateOrder(ctx context.Context, order *domain.Order) error
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// ChatStore persists conversation history.
type ChatStore interface {
	Append(ctx context.Context, userID string, msg domain.ChatMessage) error
	History(ctx context.Context, userID string, limit int) ([]domain.ChatMessage, error)
	Clear(ctx context.Context, userID string) error
}

// WorkoutLogStore persists completed sessions.
type WorkoutLogStore interface {
	Insert(ctx context.Context, log *domain.WorkoutLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.WorkoutLog, error)
}

// CredentialStore manages the provider credential selection.
type CredentialStore interface {
	GeminiAPIKey(ctx context.Context) (string, error)
	SetGeminiAPIKey(ctx context.Context, key string) error
	Invalidate(ctx context.Context) error
}

// FileReader serves stored asset bytes.
type FileReader interface {
	Read(ctx context.Context, key string) ([]byte, error)
}

// App aggregates every dependency the HTTP handlers need.
type App struct {
	Cfg    *infra.Config
	Logger infra.Logger

	Gen      Generator
	Profiles ProfileStore
	Plans    PlanStore
	Jobs     JobStore
	Assets   AssetStore
	Orders   OrderStore
	Chats    ChatStore
	Workouts WorkoutLogStore
	Creds    CredentialStore
	Files    FileReader
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// generationError renders a failed generation call: caller mistakes become
// 400s, everything else carries the failure kind plus the localized
// remediation message so clients can render retry affordances.
func (a *App) generationError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *generation.ValidationError
	if errors.As(err, &vErr) {
		a.error(w, http.StatusBadRequest, "bad_request", vErr.Error())
		return
	}

	classified := generation.Classify(err)
	a.Logger.Error().
		Str("kind", string(classified.Kind)).
		Str("diagnostic", classified.Diagnostic).
		Msg("generation failed")

	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, statusForKind(classified.Kind), map[string]any{
		"error":     string(classified.Kind),
		"message":   classified.UserMessage(locale),
		"retryable": classified.Retryable,
		"cooldown":  classified.Cooldown,
	})
}

func statusForKind(kind generation.Kind) int {
	switch kind {
	case generation.KindCredentialMissing:
		return http.StatusPreconditionRequired
	case generation.KindQuotaExceeded:
		return http.StatusTooManyRequests
	case generation.KindBillingRequired:
		return http.StatusPaymentRequired
	case generation.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// notFoundOr renders domain.ErrNotFound as 404 and anything else as a 500.
func (a *App) notFoundOr(w http.ResponseWriter, err error, resource string) {
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", resource+" not found")
		return
	}
	a.Logger.Error().Err(err).Str("resource", resource).Msg("storage failure")
	a.error(w, http.StatusInternalServerError, "internal", "unexpected failure")
}
