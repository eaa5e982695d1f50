package twitch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgwingman/wingman/internal/model"
)

func newTokenServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		require.Equal(t, "cid", r.PostForm.Get("client_id"))
		*calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","expires_in":3600}`, *calls)
	}))
}

func TestTokenCachedUntilExpiry(t *testing.T) {
	calls := 0
	srv := newTokenServer(t, &calls)
	defer srv.Close()

	src := NewAppTokenSource(srv.URL, "cid", "secret", zerolog.Nop())

	tok, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	// Second call inside the validity window must not hit the endpoint.
	tok, err = src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, 1, calls)
}

func TestTokenRefreshedAfterExpiry(t *testing.T) {
	calls := 0
	srv := newTokenServer(t, &calls)
	defer srv.Close()

	src := NewAppTokenSource(srv.URL, "cid", "secret", zerolog.Nop())
	current := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	src.now = func() time.Time { return current }

	tok, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	current = current.Add(2 * time.Hour)

	tok, err = src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.Equal(t, 2, calls)
}

func TestTokenMissingCredentials(t *testing.T) {
	src := NewAppTokenSource("http://unused", "", "", zerolog.Nop())
	_, err := src.Token(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsAuthError(err))
}

func TestTokenUpstreamRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	src := NewAppTokenSource(srv.URL, "cid", "secret", zerolog.Nop())
	_, err := src.Token(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsAuthError(err))
}
