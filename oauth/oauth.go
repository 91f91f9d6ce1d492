// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

// Package oauth implements the Driftline authorization-code flow:
// building the authorization URL, exchanging a code for a token, and
// revoking a token. The flow is stateless; callers persist the token.
package oauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Default endpoints of the production Driftline deployment.
const (
	DefaultAuthorizeURL = "https://driftline.chat/oauth/authorize"
	DefaultTokenURL     = "https://driftline.chat/oauth/access_token"
	DefaultRevokeURL    = "https://driftline.chat/oauth/revoke"
)

const defaultTimeout = 30 * time.Second

// Token is the result of a successful code exchange.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope,omitempty"`
}

// Flow holds the registered application credentials. The URL fields
// default to the production endpoints when empty.
type Flow struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	AuthorizeURL string
	TokenURL     string
	RevokeURL    string

	// HTTPClient is used for exchange and revocation. If nil, a client
	// with a 30-second timeout is used.
	HTTPClient *http.Client
}

// AuthorizationURL returns the URL to send the user to. The state
// value is echoed back on the redirect; callers must verify it.
func (f *Flow) AuthorizationURL(state string) string {
	endpoint := f.AuthorizeURL
	if endpoint == "" {
		endpoint = DefaultAuthorizeURL
	}
	query := url.Values{}
	query.Set("client_id", f.ClientID)
	query.Set("response_type", "code")
	if f.RedirectURI != "" {
		query.Set("redirect_uri", f.RedirectURI)
	}
	if state != "" {
		query.Set("state", state)
	}
	return endpoint + "?" + query.Encode()
}

// ExchangeCode trades an authorization code for an access token.
func (f *Flow) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	endpoint := f.TokenURL
	if endpoint == "" {
		endpoint = DefaultTokenURL
	}
	form := url.Values{}
	form.Set("client_id", f.ClientID)
	form.Set("client_secret", f.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	if f.RedirectURI != "" {
		form.Set("redirect_uri", f.RedirectURI)
	}

	body, err := f.postForm(ctx, endpoint, form)
	if err != nil {
		return nil, err
	}
	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("oauth: parsing token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("oauth: token response has no access_token")
	}
	return &token, nil
}

// RevokeToken invalidates an access token. Revoking an already-revoked
// token is not an error.
func (f *Flow) RevokeToken(ctx context.Context, accessToken string) error {
	endpoint := f.RevokeURL
	if endpoint == "" {
		endpoint = DefaultRevokeURL
	}
	form := url.Values{}
	form.Set("client_id", f.ClientID)
	form.Set("client_secret", f.ClientSecret)
	form.Set("token", accessToken)

	_, err := f.postForm(ctx, endpoint, form)
	return err
}

func (f *Flow) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("oauth: failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpClient := f.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	response, err := httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("oauth: request to %s failed: %w", endpoint, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("oauth: failed to read response body: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("oauth: %s returned %d: %s", endpoint, response.StatusCode, string(body))
	}
	return body, nil
}
