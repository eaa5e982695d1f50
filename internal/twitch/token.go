// Package twitch implements the OAuth flows used by the game-metadata
// upstream: a cached client-credentials token for server-to-server calls and
// the authorization-code exchange for account lookups.
package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/vgwingman/wingman/internal/model"
)

// TokenSource supplies a valid app access token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// AppTokenSource caches a client-credentials bearer token until expiry and
// refreshes it transparently. Safe for concurrent use; the mutex serializes
// refreshes so two expired callers don't both hit the token endpoint.
type AppTokenSource struct {
	client       *resty.Client
	tokenURL     string
	clientID     string
	clientSecret string
	log          zerolog.Logger

	mu     sync.Mutex
	token  string
	expiry time.Time
	now    func() time.Time
}

// NewAppTokenSource constructs a token source. Credentials are validated on
// first use, not at construction, so a misconfigured service still starts.
func NewAppTokenSource(tokenURL, clientID, clientSecret string, log zerolog.Logger) *AppTokenSource {
	return &AppTokenSource{
		client:       resty.New().SetTimeout(15 * time.Second),
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		log:          log,
		now:          time.Now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Token returns the cached token while it is still valid, otherwise performs
// a client-credentials exchange. Callers must not retry here; retry policy
// belongs to them.
func (s *AppTokenSource) Token(ctx context.Context) (string, error) {
	if s.clientID == "" || s.clientSecret == "" {
		return "", &model.AuthError{Reason: "twitch client credentials not configured"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Before(s.expiry) {
		return s.token, nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     s.clientID,
			"client_secret": s.clientSecret,
			"grant_type":    "client_credentials",
		}).
		Post(s.tokenURL)
	if err != nil {
		return "", &model.AuthError{Reason: "client credentials exchange failed", Cause: err}
	}
	if !resp.IsSuccess() {
		return "", &model.AuthError{Reason: fmt.Sprintf("client credentials exchange returned %d", resp.StatusCode())}
	}

	var tr tokenResponse
	if err := json.Unmarshal(resp.Body(), &tr); err != nil {
		return "", &model.AuthError{Reason: "malformed token response", Cause: err}
	}
	if tr.AccessToken == "" {
		return "", &model.AuthError{Reason: "token response missing access_token"}
	}

	s.token = tr.AccessToken
	s.expiry = s.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	s.log.Debug().Time("expiry", s.expiry).Msg("app access token refreshed")
	return s.token, nil
}
