// Package rawg adapts the RAWG community game database. Access is keyed per
// request; the canonical record URL is built from the returned slug.
package rawg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/provider"
)

type Client struct {
	http   *resty.Client
	apiKey string
	log    zerolog.Logger
}

func NewClient(baseURL, apiKey string, log zerolog.Logger) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second)
	return &Client{http: c, apiKey: apiKey, log: log}
}

type rawgName struct {
	Name string `json:"name"`
}

type rawgPlatform struct {
	Platform rawgName `json:"platform"`
}

type rawgGame struct {
	Name      string         `json:"name"`
	Released  string         `json:"released"` // YYYY-MM-DD
	Slug      string         `json:"slug"`
	Genres    []rawgName     `json:"genres"`
	Platforms []rawgPlatform `json:"platforms"`
}

type searchResponse struct {
	Results []rawgGame `json:"results"`
}

// Lookup searches RAWG and returns the first result whose normalized name
// equals or contains the normalized query. Failures degrade to ErrNotFound.
func (c *Client) Lookup(ctx context.Context, query string) (*model.GameRecord, error) {
	games, err := c.search(ctx, map[string]string{
		"search":         query,
		"search_precise": "true",
	})
	if err != nil {
		c.log.Warn().Err(err).Str("query", query).Msg("rawg lookup failed")
		return nil, model.ErrNotFound
	}
	for _, g := range games {
		if provider.TitlesMatch(query, g.Name) {
			rec := g.record()
			return &rec, nil
		}
	}
	return nil, model.ErrNotFound
}

// LookupSeries returns the raw search results for a series name; the caller
// applies the strict prefix filter.
func (c *Client) LookupSeries(ctx context.Context, series string) ([]model.GameRecord, error) {
	games, err := c.search(ctx, map[string]string{"search": series})
	if err != nil {
		c.log.Warn().Err(err).Str("series", series).Msg("rawg series lookup failed")
		return nil, model.ErrNotFound
	}
	out := make([]model.GameRecord, 0, len(games))
	for _, g := range games {
		out = append(out, g.record())
	}
	return out, nil
}

// Recommend lists game names for a genre slug, used by the recommendation route.
func (c *Client) Recommend(ctx context.Context, genre string) ([]string, error) {
	games, err := c.search(ctx, map[string]string{"genres": genre})
	if err != nil {
		c.log.Warn().Err(err).Str("genre", genre).Msg("rawg recommendation search failed")
		return nil, model.ErrNotFound
	}
	names := make([]string, 0, len(games))
	for _, g := range games {
		names = append(names, g.Name)
	}
	return names, nil
}

func (c *Client) search(ctx context.Context, params map[string]string) ([]rawgGame, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetQueryParams(params).
		Get("/games")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("rawg status %d: %s", resp.StatusCode(), resp.String())
	}

	var body searchResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode rawg response: %w", err)
	}
	return body.Results, nil
}

func (g rawgGame) record() model.GameRecord {
	rec := model.GameRecord{
		Title:  g.Name,
		Source: model.SourceRAWG,
	}
	if g.Slug != "" {
		rec.URL = "https://rawg.io/games/" + g.Slug
	}
	if t, err := time.Parse("2006-01-02", g.Released); err == nil {
		rec.ReleaseDate = &t
	}
	for _, gn := range g.Genres {
		rec.Genres = append(rec.Genres, gn.Name)
	}
	for _, p := range g.Platforms {
		rec.Platforms = append(rec.Platforms, p.Platform.Name)
	}
	return rec
}
