package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
)

func (a *App) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	profile, err := a.Profiles.GetByID(r.Context(), userID)
	if err != nil {
		a.notFoundOr(w, err, "profile")
		return
	}
	a.json(w, http.StatusOK, profile)
}

func (a *App) PutProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	profile.ID = a.currentUserID(r)
	if strings.TrimSpace(profile.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}

	saved, err := a.Profiles.Upsert(r.Context(), &profile)
	if err != nil {
		a.Logger.Error().Err(err).Msg("upsert profile")
		a.error(w, http.StatusInternalServerError, "internal", "could not save profile")
		return
	}
	a.json(w, http.StatusOK, saved)
}

type workoutLogRequest struct {
	ExerciseID string `json:"exerciseId"`
	Date       string `json:"date"`
	Duration   int    `json:"duration"`
}

// workout completion rewards, mirrored by the client's progress screen.
const (
	workoutPoints = 10
	workoutGems   = 1
)

func (a *App) LogWorkout(w http.ResponseWriter, r *http.Request) {
	var req workoutLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ExerciseID) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "exerciseId is required")
		return
	}
	if req.Date == "" {
		req.Date = time.Now().UTC().Format("2006-01-02")
	}

	userID := a.currentUserID(r)
	log := &domain.WorkoutLog{
		ID:         uuid.NewString(),
		UserID:     userID,
		ExerciseID: req.ExerciseID,
		Date:       req.Date,
		Duration:   req.Duration,
	}
	if err := a.Workouts.Insert(r.Context(), log); err != nil {
		a.Logger.Error().Err(err).Msg("insert workout log")
		a.error(w, http.StatusInternalServerError, "internal", "could not record workout")
		return
	}
	if err := a.Profiles.AddProgress(r.Context(), userID, workoutPoints, 1, workoutGems); err != nil {
		a.Logger.Warn().Err(err).Str("user_id", userID).Msg("progress not updated")
	}
	a.json(w, http.StatusCreated, log)
}

func (a *App) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	logs, err := a.Workouts.ListByUser(r.Context(), a.currentUserID(r), 100)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list workout logs")
		a.error(w, http.StatusInternalServerError, "internal", "could not list workouts")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"logs": logs})
}
