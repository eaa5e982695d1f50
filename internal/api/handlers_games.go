package api

import (
	"net/http"

	"github.com/vgwingman/wingman/internal/api/respond"
	"github.com/vgwingman/wingman/internal/provider/localdata"
)

type GamesHandler struct {
	local *localdata.Dataset
}

func NewGamesHandler(local *localdata.Dataset) *GamesHandler {
	return &GamesHandler{local: local}
}

// ListTitles GET /api/games/titles
func (h *GamesHandler) ListTitles(w http.ResponseWriter, r *http.Request) {
	titles := h.local.Titles()
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"titles": titles, "count": len(titles)})
}
