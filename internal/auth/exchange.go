package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const spotifyTokenURL = "https://accounts.spotify.com/api/token"

// ErrMalformedTokenResponse indicates a success status whose body is missing
// access_token. Distinct from an HTTP-level failure.
var ErrMalformedTokenResponse = fmt.Errorf("token response missing access_token")

// TokenEndpointError is a non-success response from the token endpoint.
//
// Body carries the remote error detail verbatim; Spotify's 400s here
// (expired code, revoked refresh token) are meaningful to the end user.
type TokenEndpointError struct {
	StatusCode int
	Body       string
}

func (e *TokenEndpointError) Error() string {
	return fmt.Sprintf("token endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// tokenResponse is the JSON body of both token endpoint operations.
// refresh_token is optional; refresh responses may omit it when the
// provider does not rotate refresh tokens.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	TokenType    string `json:"token_type"`
}

// TokenClient performs the two token-endpoint calls of the authorization
// flow: authorization-code exchange and refresh. Both are form-encoded POSTs
// authenticated with HTTP Basic auth using the client credentials.
type TokenClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	tokenURL     string
	httpClient   *http.Client
}

// NewTokenClient creates a token client for the Spotify accounts service.
func NewTokenClient(clientID, clientSecret, redirectURI string, httpClient *http.Client) *TokenClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &TokenClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		tokenURL:     spotifyTokenURL,
		httpClient:   httpClient,
	}
}

// Exchange trades an authorization code and its PKCE verifier for tokens.
func (c *TokenClient) Exchange(ctx context.Context, code, verifier string) (*TokenSet, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.redirectURI},
		"client_id":     {c.clientID},
		"code_verifier": {verifier},
	}

	resp, err := c.post(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	return &TokenSet{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		Scope:        resp.Scope,
	}, nil
}

// Refresh mints a new access token from a refresh token.
//
// Refresh tokens are not guaranteed to rotate: when the response omits one,
// the refresh token that was passed in is retained in the returned set.
func (c *TokenClient) Refresh(ctx context.Context, refreshToken string) (*TokenSet, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	resp, err := c.post(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	tokens := &TokenSet{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		Scope:        resp.Scope,
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}

	return tokens, nil
}

// post performs a form-encoded POST to the token endpoint with Basic auth
// and decodes the response body.
func (c *TokenClient) post(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TokenEndpointError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if tr.AccessToken == "" {
		return nil, ErrMalformedTokenResponse
	}

	return &tr, nil
}
