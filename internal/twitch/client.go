package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/vgwingman/wingman/internal/model"
)

// Client performs the authorization-code flow pieces the assistant needs:
// exchanging a callback code for a user token and fetching the user profile.
type Client struct {
	http         *resty.Client
	tokenURL     string
	apiURL       string
	clientID     string
	clientSecret string
	redirectURI  string
	log          zerolog.Logger
}

func NewClient(tokenURL, apiURL, clientID, clientSecret, redirectURI string, log zerolog.Logger) *Client {
	return &Client{
		http:         resty.New().SetTimeout(15 * time.Second),
		tokenURL:     tokenURL,
		apiURL:       apiURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		log:          log,
	}
}

// ExchangeCode trades an authorization code for a user access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	if c.clientID == "" || c.clientSecret == "" || c.redirectURI == "" {
		return "", &model.AuthError{Reason: "twitch authorization-code flow not configured"}
	}
	if code == "" {
		return "", &model.AuthError{Reason: "authorization code required"}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"grant_type":    "authorization_code",
			"code":          code,
			"redirect_uri":  c.redirectURI,
		}).
		Post(c.tokenURL)
	if err != nil {
		return "", &model.AuthError{Reason: "authorization code exchange failed", Cause: err}
	}
	if !resp.IsSuccess() {
		return "", &model.AuthError{Reason: fmt.Sprintf("authorization code exchange returned %d", resp.StatusCode())}
	}

	var tr tokenResponse
	if err := json.Unmarshal(resp.Body(), &tr); err != nil {
		return "", &model.AuthError{Reason: "malformed token response", Cause: err}
	}
	if tr.AccessToken == "" {
		return "", &model.AuthError{Reason: "token response missing access_token"}
	}
	return tr.AccessToken, nil
}

// FetchProfile loads the authenticated user's profile from helix /users.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*model.TwitchProfile, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+accessToken).
		SetHeader("Client-Id", c.clientID).
		Get(c.apiURL + "/users")
	if err != nil {
		return nil, fmt.Errorf("fetch twitch profile: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &model.AuthError{Reason: fmt.Sprintf("profile fetch returned %d", resp.StatusCode())}
	}

	var body struct {
		Data []model.TwitchProfile `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode twitch profile: %w", err)
	}
	if len(body.Data) == 0 {
		return nil, model.ErrNotFound
	}
	return &body.Data[0], nil
}

// AuthorizeURL builds the user-facing authorization URL for the code flow.
// Redirect handling itself lives with the HTTP edge, not here.
func (c *Client) AuthorizeURL(scopes string) string {
	v := url.Values{}
	v.Set("response_type", "code")
	v.Set("client_id", c.clientID)
	v.Set("redirect_uri", c.redirectURI)
	v.Set("scope", scopes)
	return "https://id.twitch.tv/oauth2/authorize?" + v.Encode()
}
