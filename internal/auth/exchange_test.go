package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestTokenClient(t *testing.T, handler http.HandlerFunc) *TokenClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewTokenClient("test_client_id", "test_client_secret", "http://127.0.0.1:8888/callback", srv.Client())
	client.tokenURL = srv.URL
	return client
}

func TestTokenClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Exchange", func(t *testing.T) {
		client := newTestTokenClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}

			user, pass, ok := r.BasicAuth()
			if !ok || user != "test_client_id" || pass != "test_client_secret" {
				t.Error("expected basic auth with client credentials")
			}

			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}
			if grant := r.PostForm.Get("grant_type"); grant != "authorization_code" {
				t.Errorf("expected grant_type authorization_code, got %s", grant)
			}
			if code := r.PostForm.Get("code"); code != "test_code" {
				t.Errorf("expected code test_code, got %s", code)
			}
			if verifier := r.PostForm.Get("code_verifier"); verifier != "test_verifier" {
				t.Errorf("expected code_verifier test_verifier, got %s", verifier)
			}
			if redirect := r.PostForm.Get("redirect_uri"); redirect != "http://127.0.0.1:8888/callback" {
				t.Errorf("unexpected redirect_uri %s", redirect)
			}

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"A1","refresh_token":"R1","expires_in":3600,"scope":"user-read-playback-state"}`)
		})

		tokens, err := client.Exchange(ctx, "test_code", "test_verifier")
		if err != nil {
			t.Fatalf("exchange failed: %v", err)
		}

		if tokens.AccessToken != "A1" {
			t.Errorf("expected access token A1, got %s", tokens.AccessToken)
		}
		if tokens.RefreshToken != "R1" {
			t.Errorf("expected refresh token R1, got %s", tokens.RefreshToken)
		}
		if tokens.ExpiresIn != 3600 {
			t.Errorf("expected expires_in 3600, got %d", tokens.ExpiresIn)
		}
		if tokens.Scope != "user-read-playback-state" {
			t.Errorf("unexpected scope %s", tokens.Scope)
		}
	})

	t.Run("ExchangeErrorBodyPreserved", func(t *testing.T) {
		client := newTestTokenClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant","error_description":"Authorization code expired"}`)
		})

		_, err := client.Exchange(ctx, "stale_code", "v")
		if err == nil {
			t.Fatal("expected an error for a 400 response")
		}

		var endpointErr *TokenEndpointError
		if !errors.As(err, &endpointErr) {
			t.Fatalf("expected a TokenEndpointError, got %T", err)
		}
		if endpointErr.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", endpointErr.StatusCode)
		}
		if endpointErr.Body != `{"error":"invalid_grant","error_description":"Authorization code expired"}` {
			t.Errorf("error body not preserved verbatim: %s", endpointErr.Body)
		}
	})

	t.Run("ExchangeMalformedSuccess", func(t *testing.T) {
		client := newTestTokenClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"token_type":"Bearer"}`)
		})

		_, err := client.Exchange(ctx, "c", "v")
		if !errors.Is(err, ErrMalformedTokenResponse) {
			t.Errorf("expected ErrMalformedTokenResponse, got %v", err)
		}
	})

	t.Run("Refresh", func(t *testing.T) {
		client := newTestTokenClient(t, func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}
			if grant := r.PostForm.Get("grant_type"); grant != "refresh_token" {
				t.Errorf("expected grant_type refresh_token, got %s", grant)
			}
			if rt := r.PostForm.Get("refresh_token"); rt != "R1" {
				t.Errorf("expected refresh_token R1, got %s", rt)
			}

			fmt.Fprint(w, `{"access_token":"A2","refresh_token":"R2","expires_in":3600}`)
		})

		tokens, err := client.Refresh(ctx, "R1")
		if err != nil {
			t.Fatalf("refresh failed: %v", err)
		}

		if tokens.AccessToken != "A2" {
			t.Errorf("expected access token A2, got %s", tokens.AccessToken)
		}
		if tokens.RefreshToken != "R2" {
			t.Errorf("rotated refresh token should be adopted, got %s", tokens.RefreshToken)
		}
	})

	t.Run("RefreshCarriesTokenForward", func(t *testing.T) {
		client := newTestTokenClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"access_token":"A2","expires_in":3600}`)
		})

		tokens, err := client.Refresh(ctx, "R1")
		if err != nil {
			t.Fatalf("refresh failed: %v", err)
		}

		if tokens.RefreshToken != "R1" {
			t.Errorf("expected original refresh token R1 to be retained, got %s", tokens.RefreshToken)
		}
	})
}
