package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/domain"
	"server/internal/generation"
	"server/internal/middleware"
)

// chatHistoryWindow bounds how many prior turns are replayed per request.
const chatHistoryWindow = 20

type chatRequest struct {
	Message  string `json:"message"`
	NoSearch bool   `json:"noSearch"`
}

// Chat answers a coaching question with the stored conversation as context.
// Replies are search-grounded unless the client opts out.
func (a *App) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	userID := a.currentUserID(r)
	history, err := a.Chats.History(r.Context(), userID, chatHistoryWindow)
	if err != nil {
		a.Logger.Error().Err(err).Msg("load chat history")
		a.error(w, http.StatusInternalServerError, "internal", "could not load history")
		return
	}

	genReq, err := generation.Build(generation.IntentChat, generation.Input{
		Message:  req.Message,
		History:  history,
		Language: middleware.LocaleFromContext(r.Context()),
		Config:   generation.Config{UseSearch: !req.NoSearch},
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

	ctx := r.Context()
	if err := a.Chats.Append(ctx, userID, domain.ChatMessage{Role: domain.RoleUser, Text: req.Message}); err != nil {
		a.Logger.Warn().Err(err).Msg("user turn not persisted")
	}
	if err := a.Chats.Append(ctx, userID, domain.ChatMessage{Role: domain.RoleModel, Text: result.Text}); err != nil {
		a.Logger.Warn().Err(err).Msg("model turn not persisted")
	}

	a.json(w, http.StatusOK, map[string]any{
		"text":      result.Text,
		"citations": result.Citations,
	})
}

func (a *App) ChatHistory(w http.ResponseWriter, r *http.Request) {
	history, err := a.Chats.History(r.Context(), a.currentUserID(r), 200)
	if err != nil {
		a.Logger.Error().Err(err).Msg("load chat history")
		a.error(w, http.StatusInternalServerError, "internal", "could not load history")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"messages": history})
}

func (a *App) ClearChat(w http.ResponseWriter, r *http.Request) {
	if err := a.Chats.Clear(r.Context(), a.currentUserID(r)); err != nil {
		a.Logger.Error().Err(err).Msg("clear chat history")
		a.error(w, http.StatusInternalServerError, "internal", "could not clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
