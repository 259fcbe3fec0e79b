package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"server/internal/middleware"
)

type sessionRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Locale string `json:"locale"`
}

// CreateSession mints a signed session token. New installs omit userId and
// get a fresh identity; returning clients pass their stored one back.
func (a *App) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = uuid.NewString()
	}

	claims := middleware.TokenClaims{
		Sub:    userID,
		Name:   strings.TrimSpace(req.Name),
		Locale: req.Locale,
		Exp:    time.Now().Add(30 * 24 * time.Hour).Unix(),
		Issuer: "nova-coach",
	}
	token, err := middleware.SignJWT(a.Cfg.JWTSecret, claims)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign session token")
		a.error(w, http.StatusInternalServerError, "internal", "could not create session")
		return
	}

	a.json(w, http.StatusCreated, map[string]string{
		"userId": userID,
		"token":  token,
	})
}
