package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vgwingman/wingman/internal/api/respond"
	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/store"
	"github.com/vgwingman/wingman/internal/usersync"
)

type UserHandler struct {
	st store.Store
}

func NewUserHandler(st store.Store) *UserHandler {
	return &UserHandler{st: st}
}

// GetUser GET /api/users/{userId}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	out, err := h.st.Users().Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "user not found")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// SyncUser POST /api/users/sync
func (h *UserHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	var req model.SplashUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.UserID == "" {
		respond.WriteBadRequest(w, "userId is required")
		return
	}
	out, err := usersync.Sync(r.Context(), h.st, req)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
