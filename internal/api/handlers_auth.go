package api

import (
	"net/http"
)

// LoginURLBuilder produces the upstream authorization URL for the
// authorization-code flow.
type LoginURLBuilder interface {
	AuthorizeURL(scopes string) string
}

type AuthHandler struct {
	builder LoginURLBuilder
	scopes  string
}

func NewAuthHandler(builder LoginURLBuilder, scopes string) *AuthHandler {
	return &AuthHandler{builder: builder, scopes: scopes}
}

// TwitchLogin GET /api/twitch/login
// Redirects the browser to the Twitch authorization page; Twitch sends the
// user back to the configured redirect URI with a code.
func (h *AuthHandler) TwitchLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.builder.AuthorizeURL(h.scopes), http.StatusFound)
}
