package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"server/internal/catalog"
	"server/internal/generation"
	"server/internal/middleware"
)

func (a *App) ListExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results := catalog.Search(catalog.Filter{
		Category:    q.Get("category"),
		AgeGroup:    q.Get("ageGroup"),
		Location:    q.Get("location"),
		Difficulty:  q.Get("difficulty"),
		MuscleGroup: q.Get("muscleGroup"),
		Query:       q.Get("q"),
	})
	a.json(w, http.StatusOK, map[string]any{"exercises": results})
}

func (a *App) GetExercise(w http.ResponseWriter, r *http.Request) {
	ex, ok := catalog.ByID(chi.URLParam(r, "exerciseID"))
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "exercise not found")
		return
	}
	a.json(w, http.StatusOK, ex)
}

type discoverRequest struct {
	Query   string            `json:"query"`
	Filters map[string]string `json:"filters"`
}

// DiscoverExercise asks the model for an exercise the seeded catalog does not
// cover, constrained by the same filter keys the catalog uses.
func (a *App) DiscoverExercise(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	genReq, err := generation.Build(generation.IntentExerciseDiscovery, generation.Input{
		Query:    req.Query,
		Filters:  req.Filters,
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
	a.json(w, http.StatusOK, result.Exercise)
}
