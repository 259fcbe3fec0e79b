package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"server/internal/domain"
	"server/internal/generation"
)

func TestListExercisesFiltersByCategory(t *testing.T) {
	app, _ := newTestApp()

	w := httptest.NewRecorder()
	app.ListExercises(w, authedRequest(http.MethodGet, "/v1/exercises?category=football", "ar", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body struct {
		Exercises []domain.Exercise `json:"exercises"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Exercises) == 0 {
		t.Fatalf("no football exercises returned")
	}
	for _, ex := range body.Exercises {
		if ex.Category != domain.CategoryFootball {
			t.Fatalf("exercise %q category = %q", ex.ID, ex.Category)
		}
	}
}

func TestGetExercise(t *testing.T) {
	app, _ := newTestApp()

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodGet, "/v1/exercises/st-1", "ar", nil)
	r = withURLParams(r, map[string]string{"exerciseID": "st-1"})
	app.GetExercise(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var ex domain.Exercise
	if err := json.NewDecoder(w.Body).Decode(&ex); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if ex.ID != "st-1" {
		t.Fatalf("id = %q, want %q", ex.ID, "st-1")
	}
}

func TestGetExerciseUnknown(t *testing.T) {
	app, _ := newTestApp()

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodGet, "/v1/exercises/nope", "ar", nil)
	r = withURLParams(r, map[string]string{"exerciseID": "nope"})
	app.GetExercise(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDiscoverExerciseReturnsResult(t *testing.T) {
	app, deps := newTestApp()
	deps.gen.result = &generation.Result{
		Intent:   generation.IntentExerciseDiscovery,
		Exercise: &domain.Exercise{ID: "gen-1", Name: "تمرين مخصص"},
	}

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodPost, "/v1/exercises/discover", "ar",
		jsonBody(`{"query":"تمارين للكتف","filters":{"location":"home"}}`))
	app.DiscoverExercise(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if deps.gen.requests[0].Intent != generation.IntentExerciseDiscovery {
		t.Fatalf("intent = %q", deps.gen.requests[0].Intent)
	}
}

func TestDiscoverExerciseRequiresQuery(t *testing.T) {
	app, deps := newTestApp()

	w := httptest.NewRecorder()
	app.DiscoverExercise(w, authedRequest(http.MethodPost, "/v1/exercises/discover", "ar", jsonBody(`{}`)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if len(deps.gen.requests) != 0 {
		t.Fatalf("generator called despite invalid input")
	}
}
