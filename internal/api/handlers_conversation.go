package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vgwingman/wingman/internal/api/respond"
	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/store"
)

type ConversationHandler struct {
	st store.Store
}

func NewConversationHandler(st store.Store) *ConversationHandler {
	return &ConversationHandler{st: st}
}

// ListConversations GET /api/conversations/{userId}
func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	out, err := h.st.Questions().ListByUser(r.Context(), userID)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	if out == nil {
		out = []*model.Question{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"conversations": out, "count": len(out)})
}

// DeleteInteraction DELETE /api/interactions/{id}
func (h *ConversationHandler) DeleteInteraction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.st.Questions().Delete(r.Context(), id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "interaction not found")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
