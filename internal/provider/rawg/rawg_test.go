package rawg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgwingman/wingman/internal/model"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/games", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "k", q.Get("key"))
		require.Equal(t, "Celeste", q.Get("search"))
		require.Equal(t, "true", q.Get("search_precise"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"name":"Celeste","released":"2018-01-25","slug":"celeste",
			 "genres":[{"name":"Platformer"}],"platforms":[{"platform":{"name":"PC"}}]}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", zerolog.Nop())
	rec, err := c.Lookup(context.Background(), "Celeste")
	require.NoError(t, err)
	assert.Equal(t, "Celeste", rec.Title)
	assert.Equal(t, model.SourceRAWG, rec.Source)
	assert.Equal(t, "https://rawg.io/games/celeste", rec.URL)
	require.NotNil(t, rec.ReleaseDate)
	assert.Equal(t, "1/25/2018", rec.ReleaseDate.Format("1/2/2006"))
	assert.Equal(t, []string{"PC"}, rec.Platforms)
}

func TestLookupDegradesOnUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", zerolog.Nop())
	_, err := c.Lookup(context.Background(), "Celeste")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLookupNoTitleMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"name":"Unrelated"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", zerolog.Nop())
	_, err := c.Lookup(context.Background(), "Celeste")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRecommend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "indie", r.URL.Query().Get("genres"))
		_, _ = w.Write([]byte(`{"results":[{"name":"Hades"},{"name":"Celeste"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", zerolog.Nop())
	names, err := c.Recommend(context.Background(), "indie")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hades", "Celeste"}, names)
}

func TestLookupSeriesKeepsAllResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"name":"Mario Kart 8"},{"name":"Luigi's Mansion"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", zerolog.Nop())
	recs, err := c.LookupSeries(context.Background(), "Mario")
	require.NoError(t, err)
	// The prefix filter is applied by the caller, not the adapter.
	assert.Len(t, recs, 2)
}
