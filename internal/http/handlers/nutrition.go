package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/generation"
	"server/internal/middleware"
)

type nutritionRequest struct {
	Goals string `json:"goals"`
}

func (a *App) GenerateNutritionPlan(w http.ResponseWriter, r *http.Request) {
	var req nutritionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	profile, err := a.Profiles.GetByID(r.Context(), a.currentUserID(r))
	if err != nil {
		a.notFoundOr(w, err, "profile")
		return
	}

	genReq, err := generation.Build(generation.IntentNutritionPlan, generation.Input{
		Profile:  profile,
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
	a.json(w, http.StatusOK, result.Nutrition)
}
