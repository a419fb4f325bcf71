package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"talent-track/core/assistant"
)

// AssistantHandler handles AI chat requests
type AssistantHandler struct {
	assistant *assistant.Assistant
	history   *assistant.History
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(chat *assistant.Assistant, history *assistant.History) *AssistantHandler {
	return &AssistantHandler{assistant: chat, history: history}
}

// ChatRequest is one user message
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /v1/assistant/chat
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	if !h.assistant.Available() {
		http.Error(w, "Assistant is not configured", http.StatusServiceUnavailable)
		return
	}

	reply, err := h.assistant.Chat(r.Context(), req.Message)
	if err != nil {
		log.Printf("Assistant chat failed: %v", err)
		http.Error(w, "Assistant request failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"reply": reply,
	})
}

// GetHistory handles GET /v1/assistant/history
func (h *AssistantHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := h.history.Load()
	if err != nil {
		http.Error(w, "Failed to load history: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items": messages,
	})
}

// ClearHistory handles DELETE /v1/assistant/history
func (h *AssistantHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Clear(); err != nil {
		http.Error(w, "Failed to clear history: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
