// Package igdb adapts the IGDB structured game database. Requests carry an
// app access token obtained through the client-credentials token source.
package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/provider"
	"github.com/vgwingman/wingman/internal/twitch"
)

type Client struct {
	http     *resty.Client
	clientID string
	tokens   twitch.TokenSource
	log      zerolog.Logger
}

func NewClient(baseURL, clientID string, tokens twitch.TokenSource, log zerolog.Logger) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
	return &Client{http: c, clientID: clientID, tokens: tokens, log: log}
}

type igdbName struct {
	Name string `json:"name"`
}

type igdbCompany struct {
	Company   igdbName `json:"company"`
	Developer bool     `json:"developer"`
	Publisher bool     `json:"publisher"`
}

type igdbGame struct {
	Name             string        `json:"name"`
	FirstReleaseDate int64         `json:"first_release_date"`
	URL              string        `json:"url"`
	Genres           []igdbName    `json:"genres"`
	Platforms        []igdbName    `json:"platforms"`
	Involved         []igdbCompany `json:"involved_companies"`
}

// Lookup runs a fuzzy server-side search and returns the first result whose
// normalized name equals or contains the normalized query. Every failure mode
// degrades to model.ErrNotFound with a logged diagnostic.
func (c *Client) Lookup(ctx context.Context, query string) (*model.GameRecord, error) {
	body := fmt.Sprintf(`search "%s";
fields name,first_release_date,genres.name,platforms.name,involved_companies.company.name,involved_companies.developer,involved_companies.publisher,url;
limit 10;`, sanitize(query))

	games, err := c.query(ctx, body)
	if err != nil {
		c.log.Warn().Err(err).Str("query", query).Msg("igdb lookup failed")
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

// LookupSeries returns every game IGDB associates with the named collection.
func (c *Client) LookupSeries(ctx context.Context, series string) ([]model.GameRecord, error) {
	body := fmt.Sprintf(`fields name,first_release_date,platforms.name;
where collection.name ~ "%s";`, sanitize(series))

	games, err := c.query(ctx, body)
	if err != nil {
		c.log.Warn().Err(err).Str("series", series).Msg("igdb series lookup failed")
		return nil, model.ErrNotFound
	}
	out := make([]model.GameRecord, 0, len(games))
	for _, g := range games {
		out = append(out, g.record())
	}
	return out, nil
}

func (c *Client) query(ctx context.Context, body string) ([]igdbGame, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Client-ID", c.clientID).
		SetHeader("Authorization", "Bearer "+token).
		SetBody(body).
		Post("/games")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("igdb status %d: %s", resp.StatusCode(), resp.String())
	}

	var games []igdbGame
	if err := json.Unmarshal(resp.Body(), &games); err != nil {
		return nil, fmt.Errorf("decode igdb response: %w", err)
	}
	return games, nil
}

func (g igdbGame) record() model.GameRecord {
	rec := model.GameRecord{
		Title:  g.Name,
		URL:    g.URL,
		Source: model.SourceIGDB,
	}
	if g.FirstReleaseDate > 0 {
		t := time.Unix(g.FirstReleaseDate, 0).UTC()
		rec.ReleaseDate = &t
	}
	for _, gn := range g.Genres {
		rec.Genres = append(rec.Genres, gn.Name)
	}
	for _, p := range g.Platforms {
		rec.Platforms = append(rec.Platforms, p.Name)
	}
	for _, ic := range g.Involved {
		if ic.Developer {
			rec.Developers = append(rec.Developers, ic.Company.Name)
		}
		if ic.Publisher {
			rec.Publishers = append(rec.Publishers, ic.Company.Name)
		}
	}
	return rec
}

// sanitize escapes double quotes so titles can't break out of the IGDB query.
func sanitize(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
