// Package api exposes the HTTP surface of the wingman service.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vgwingman/wingman/internal/api/respond"
	"github.com/vgwingman/wingman/internal/model"
)

// Assistant is the slice of the question pipeline the HTTP layer needs.
type Assistant interface {
	Answer(ctx context.Context, userID, question, code string) (string, error)
}

type AssistantHandler struct {
	svc Assistant
}

func NewAssistantHandler(svc Assistant) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// Ask POST /api/assistant
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"userId"`
		Question string `json:"question"`
		Code     string `json:"code,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.UserID == "" || req.Question == "" {
		respond.WriteBadRequest(w, "userId and question are required")
		return
	}

	answer, err := h.svc.Answer(r.Context(), req.UserID, req.Question, req.Code)
	if err != nil {
		if model.IsAuthError(err) {
			respond.WriteUnauthorized(w, err.Error())
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"answer": answer})
}
