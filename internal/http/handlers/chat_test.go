package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"server/internal/domain"
	"server/internal/generation"
)

func TestChatPersistsBothTurns(t *testing.T) {
	app, deps := newTestApp()
	deps.chats.history = []domain.ChatMessage{{Role: domain.RoleUser, Text: "سؤال سابق"}}
	deps.gen.result = &generation.Result{
		Intent:    generation.IntentChat,
		Text:      "إجابة المدرب",
		Citations: []domain.Citation{{Title: "مصدر", URI: "https://example.com"}},
	}

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodPost, "/v1/chat", "ar", jsonBody(`{"message":"كيف أحسن سرعتي؟"}`))
	app.Chat(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if len(deps.gen.requests) != 1 {
		t.Fatalf("generator calls = %d, want 1", len(deps.gen.requests))
	}
	req := deps.gen.requests[0]
	if len(req.History) != 1 {
		t.Fatalf("history turns = %d, want 1", len(req.History))
	}
	if !req.Config.UseSearch {
		t.Fatalf("search grounding disabled by default")
	}

	if len(deps.chats.appended) != 2 {
		t.Fatalf("appended turns = %d, want 2", len(deps.chats.appended))
	}
	if deps.chats.appended[0].Role != domain.RoleUser || deps.chats.appended[1].Role != domain.RoleModel {
		t.Fatalf("turn roles = %q, %q", deps.chats.appended[0].Role, deps.chats.appended[1].Role)
	}

	var body struct {
		Text      string            `json:"text"`
		Citations []domain.Citation `json:"citations"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Text != "إجابة المدرب" {
		t.Fatalf("text = %q", body.Text)
	}
	if len(body.Citations) != 1 {
		t.Fatalf("citations = %+v", body.Citations)
	}
}

func TestChatSearchOptOut(t *testing.T) {
	app, deps := newTestApp()
	deps.gen.result = &generation.Result{Intent: generation.IntentChat, Text: "ok", Citations: []domain.Citation{}}

	w := httptest.NewRecorder()
	app.Chat(w, authedRequest(http.MethodPost, "/v1/chat", "ar", jsonBody(`{"message":"hi","noSearch":true}`)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if deps.gen.requests[0].Config.UseSearch {
		t.Fatalf("search grounding enabled despite opt-out")
	}
}

func TestChatRequiresMessage(t *testing.T) {
	app, deps := newTestApp()

	w := httptest.NewRecorder()
	app.Chat(w, authedRequest(http.MethodPost, "/v1/chat", "ar", jsonBody(`{"message":"  "}`)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if len(deps.chats.appended) != 0 {
		t.Fatalf("turns persisted despite invalid input")
	}
}

func TestClearChat(t *testing.T) {
	app, deps := newTestApp()

	w := httptest.NewRecorder()
	app.ClearChat(w, authedRequest(http.MethodDelete, "/v1/chat/history", "ar", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if !deps.chats.cleared {
		t.Fatalf("history was not cleared")
	}
}
