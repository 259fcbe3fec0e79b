package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/generation"
	"server/internal/middleware"
)

type generatePlanRequest struct {
	Sport string `json:"sport"`
	Goals string `json:"goals"`
}

// GeneratePlan builds a 7-day blueprint from the stored profile and saves it
// as the user's active plan.
func (a *App) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req generatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Sport) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "sport is required")
		return
	}

	userID := a.currentUserID(r)
	profile, err := a.Profiles.GetByID(r.Context(), userID)
	if err != nil {
		a.notFoundOr(w, err, "profile")
		return
	}

	genReq, err := generation.Build(generation.IntentPlanGeneration, generation.Input{
		Profile:  profile,
		Sport:    req.Sport,
		Goals:    req.Goals,
		Language: middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	result, err := a.Gen.Generate(r.Context(), genReq)
	if err != nil {
		a.generationError(w, r, err)
		return
	}

	saved := &domain.SavedPlan{
		ID:        uuid.NewString(),
		UserID:    userID,
		Sport:     req.Sport,
		Plan:      *result.Plan,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.Plans.Save(r.Context(), saved); err != nil {
		a.Logger.Error().Err(err).Msg("save plan")
		a.error(w, http.StatusInternalServerError, "internal", "could not save plan")
		return
	}
	a.json(w, http.StatusCreated, saved)
}

func (a *App) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := a.Plans.ListByUser(r.Context(), a.currentUserID(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list plans")
		a.error(w, http.StatusInternalServerError, "internal", "could not list plans")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"plans": plans})
}

func (a *App) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := a.Plans.GetByID(r.Context(), a.currentUserID(r), chi.URLParam(r, "planID"))
	if err != nil {
		a.notFoundOr(w, err, "plan")
		return
	}
	a.json(w, http.StatusOK, plan)
}

func (a *App) ActivatePlan(w http.ResponseWriter, r *http.Request) {
	err := a.Plans.SetActive(r.Context(), a.currentUserID(r), chi.URLParam(r, "planID"))
	if err != nil {
		a.notFoundOr(w, err, "plan")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "active"})
}

func (a *App) DeletePlan(w http.ResponseWriter, r *http.Request) {
	err := a.Plans.Delete(r.Context(), a.currentUserID(r), chi.URLParam(r, "planID"))
	if err != nil {
		a.notFoundOr(w, err, "plan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegenerateDay replaces one day of a saved plan with a fresh routine. The
// day path parameter is the 1-based position in the weekly schedule.
func (a *App) RegenerateDay(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	planID := chi.URLParam(r, "planID")
	dayNum, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || dayNum < 1 || dayNum > domain.WeeklyScheduleDays {
		a.error(w, http.StatusBadRequest, "bad_request", "day must be between 1 and 7")
		return
	}

	saved, err := a.Plans.GetByID(r.Context(), userID, planID)
	if err != nil {
		a.notFoundOr(w, err, "plan")
		return
	}
	profile, err := a.Profiles.GetByID(r.Context(), userID)
	if err != nil {
		a.notFoundOr(w, err, "profile")
		return
	}

	if dayNum > len(saved.Plan.WeeklySchedule) {
		a.error(w, http.StatusBadRequest, "bad_request", "plan has no such day")
		return
	}
	previous := saved.Plan.WeeklySchedule[dayNum-1]
	genReq, err := generation.Build(generation.IntentDayRegeneration, generation.Input{
		Profile:  profile,
		Sport:    saved.Sport,
		Day:      &previous,
		Language: middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	result, err := a.Gen.Generate(r.Context(), genReq)
	if err != nil {
		a.generationError(w, r, err)
		return
	}

	saved.Plan.WeeklySchedule[dayNum-1] = *result.Day
	if err := a.Plans.ReplacePlan(r.Context(), userID, planID, saved.Plan); err != nil {
		a.notFoundOr(w, err, "plan")
		return
	}
	a.json(w, http.StatusOK, result.Day)
}

type regenerateExerciseRequest struct {
	ExerciseName string `json:"exerciseName"`
}

// RegenerateExercise produces an alternative for a single exercise. The
// substitution happens client-side; the plan document is not touched.
func (a *App) RegenerateExercise(w http.ResponseWriter, r *http.Request) {
	var req regenerateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	genReq, err := generation.Build(generation.IntentExerciseRegeneration, generation.Input{
		ExerciseName: req.ExerciseName,
		Language:     middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	result, err := a.Gen.Generate(r.Context(), genReq)
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	// Regeneration is free-form coaching text, not a structured exercise.
	a.json(w, http.StatusOK, map[string]string{"text": result.Text})
}
