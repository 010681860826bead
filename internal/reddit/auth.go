package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/SSSScoreboardBot/sss-scoreboard-bot-simple/internal/model"
)

const oauthBaseURL = "https://oauth.reddit.com"

// Credentials holds script-app OAuth credentials.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
}

// CredentialsFromEnv reads the conventional REDDIT_* environment variables.
// The second return is false when any required variable is missing.
func CredentialsFromEnv() (Credentials, bool) {
	creds := Credentials{
		ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		Username:     os.Getenv("REDDIT_USERNAME"),
		Password:     os.Getenv("REDDIT_PASSWORD"),
		UserAgent:    os.Getenv("REDDIT_USER_AGENT"),
	}
	ok := creds.ClientID != "" && creds.ClientSecret != "" && creds.Username != "" && creds.Password != ""
	return creds, ok
}

// authenticator exchanges script credentials for a bearer token and keeps it
// fresh for authenticated calls.
type authenticator struct {
	client *Client
	creds  Credentials

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func newAuthenticator(c *Client, creds Credentials) *authenticator {
	return &authenticator{client: c, creds: creds}
}

func (a *authenticator) bearer(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" && time.Now().Before(a.expiry) {
		return a.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", a.creds.Username)
	form.Set("password", a.creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.client.baseURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.SetBasicAuth(a.creds.ClientID, a.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", a.userAgent())

	resp, err := a.client.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed: %d %s", resp.StatusCode, resp.Status)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, a.client.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token response carried no access_token")
	}

	a.token = payload.AccessToken
	// Refresh a minute early.
	a.expiry = time.Now().Add(time.Duration(payload.ExpiresIn)*time.Second - time.Minute)
	return a.token, nil
}

func (a *authenticator) userAgent() string {
	if a.creds.UserAgent != "" {
		return a.creds.UserAgent
	}
	return a.client.userAgent
}

// apiBase returns the authenticated API host. Tests pointing the client at a
// local server keep using that server.
func (a *authenticator) apiBase() string {
	if a.client.baseURL != DefaultBaseURL {
		return a.client.baseURL
	}
	return oauthBaseURL
}

// Reply posts body as a top-level comment in the given thread. It requires
// credentials; without them the client is read-only.
func (c *Client) Reply(ctx context.Context, thread model.Thread, body string) error {
	if c.auth == nil {
		return fmt.Errorf("posting requires credentials (set REDDIT_CLIENT_ID et al.)")
	}

	token, err := c.auth.bearer(ctx)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("thing_id", "t3_"+thread.ID)
	form.Set("text", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.auth.apiBase()+"/api/comment", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create comment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.auth.userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post comment: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("comment request failed: %d %s", resp.StatusCode, resp.Status)
	}
	return nil
}
