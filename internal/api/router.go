package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vgwingman/wingman/internal/api/recovery"
	"github.com/vgwingman/wingman/internal/notify"
	"github.com/vgwingman/wingman/internal/provider/localdata"
	"github.com/vgwingman/wingman/internal/store"
)

// NewRouter wires all HTTP routes to handlers.
func NewRouter(svc Assistant, st store.Store, local *localdata.Dataset, hub *notify.Hub, auth *AuthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	assistantHandler := NewAssistantHandler(svc)
	conversationHandler := NewConversationHandler(st)
	userHandler := NewUserHandler(st)
	gamesHandler := NewGamesHandler(local)
	healthHandler := NewHealthHandler(st)

	router.HandleFunc("/api/assistant", assistantHandler.Ask).Methods("POST")
	router.HandleFunc("/api/twitch/login", auth.TwitchLogin).Methods("GET")

	router.HandleFunc("/api/conversations/{userId}", conversationHandler.ListConversations).Methods("GET")
	router.HandleFunc("/api/interactions/{id}", conversationHandler.DeleteInteraction).Methods("DELETE")

	// Fixed paths registered before the variable {userId} route.
	router.HandleFunc("/api/users/sync", userHandler.SyncUser).Methods("POST")
	router.HandleFunc("/api/users/{userId}", userHandler.GetUser).Methods("GET")

	router.HandleFunc("/api/games/titles", gamesHandler.ListTitles).Methods("GET")

	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		hub.HandleWS(w, r)
	}).Methods("GET")

	router.HandleFunc("/v0/health", healthHandler.CheckHealth).Methods("GET")

	return router
}
