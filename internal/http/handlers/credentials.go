package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// CredentialStatus reports whether a provider key is currently selected. The
// key material itself never leaves the server.
func (a *App) CredentialStatus(w http.ResponseWriter, r *http.Request) {
	key, err := a.Creds.GeminiAPIKey(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("read credential status")
		a.error(w, http.StatusInternalServerError, "internal", "could not read credential status")
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"configured": key != ""})
}

type setCredentialRequest struct {
	APIKey string `json:"apiKey"`
}

func (a *App) SetCredential(w http.ResponseWriter, r *http.Request) {
	var req setCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "apiKey is required")
		return
	}

	if err := a.Creds.SetGeminiAPIKey(r.Context(), req.APIKey); err != nil {
		a.Logger.Error().Err(err).Msg("store credential")
		a.error(w, http.StatusInternalServerError, "internal", "could not store credential")
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"configured": true})
}

func (a *App) InvalidateCredential(w http.ResponseWriter, r *http.Request) {
	if err := a.Creds.Invalidate(r.Context()); err != nil {
		a.Logger.Error().Err(err).Msg("invalidate credential")
		a.error(w, http.StatusInternalServerError, "internal", "could not invalidate credential")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
