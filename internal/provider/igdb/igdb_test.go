package igdb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgwingman/wingman/internal/model"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(ctx context.Context) (string, error) { return s.token, s.err }

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/games", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, "cid", r.Header.Get("Client-ID"))
		body, _ := io.ReadAll(r.Body)
		require.Contains(t, string(body), `search "Hades"`)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"Hades Clone","first_release_date":0},
			{"name":"Hades","first_release_date":1576108800,"url":"https://www.igdb.com/games/hades",
			 "genres":[{"name":"Roguelike"}],"platforms":[{"name":"PC"}],
			 "involved_companies":[{"company":{"name":"Supergiant Games"},"developer":true,"publisher":true}]}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "cid", staticTokens{token: "tok"}, zerolog.Nop())
	rec, err := c.Lookup(context.Background(), "Hades")
	require.NoError(t, err)

	// "Hades Clone" contains the query, so first-match-wins takes it.
	assert.Equal(t, "Hades Clone", rec.Title)
	assert.Equal(t, model.SourceIGDB, rec.Source)
}

func TestLookupNoTitleMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Something Else"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "cid", staticTokens{token: "tok"}, zerolog.Nop())
	_, err := c.Lookup(context.Background(), "Hades")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLookupDegradesOnUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "cid", staticTokens{token: "tok"}, zerolog.Nop())
	_, err := c.Lookup(context.Background(), "Hades")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLookupDegradesOnTokenFailure(t *testing.T) {
	c := NewClient("http://unused", "cid", staticTokens{err: errors.New("no creds")}, zerolog.Nop())
	_, err := c.Lookup(context.Background(), "Hades")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLookupSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.Contains(t, string(body), `where collection.name ~ "Mario"`)
		_, _ = w.Write([]byte(`[
			{"name":"Mario Kart 8","first_release_date":1401321600,"platforms":[{"name":"Wii U"}]},
			{"name":"Mario Party"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "cid", staticTokens{token: "tok"}, zerolog.Nop())
	recs, err := c.LookupSeries(context.Background(), "Mario")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Mario Kart 8", recs[0].Title)
	require.NotNil(t, recs[0].ReleaseDate)
	assert.Nil(t, recs[1].ReleaseDate)
}

func TestSanitizeEscapesQuotes(t *testing.T) {
	assert.Equal(t, `a \"b\"`, sanitize(`a "b"`))
}
