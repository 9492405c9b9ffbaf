package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCallbackHandler(t *testing.T) {
	t.Run("PublishesCodeAndState", func(t *testing.T) {
		handler := NewCallbackHandler()
		req := httptest.NewRequest(http.MethodGet, "/callback?code=test_code&state=test_state", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Authentication Successful") {
			t.Error("expected success page")
		}

		result := <-handler.Result()
		if result.Err != nil {
			t.Fatalf("unexpected error: %v", result.Err)
		}
		if result.Code != "test_code" {
			t.Errorf("expected code test_code, got %s", result.Code)
		}
		if result.State != "test_state" {
			t.Errorf("expected state test_state, got %s", result.State)
		}
	})

	t.Run("PublishesProviderError", func(t *testing.T) {
		handler := NewCallbackHandler()
		req := httptest.NewRequest(http.MethodGet, "/callback?error=access_denied&error_description=User+denied+the+request", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if !strings.Contains(w.Body.String(), "Authentication Failed") {
			t.Error("expected failure page")
		}

		result := <-handler.Result()
		if result.Err == nil {
			t.Fatal("expected an error result")
		}
		if !strings.Contains(result.Err.Error(), "access_denied") {
			t.Errorf("expected error code in message, got %v", result.Err)
		}
		if !strings.Contains(result.Err.Error(), "User denied the request") {
			t.Errorf("expected error description in message, got %v", result.Err)
		}
	})

	t.Run("MissingCode", func(t *testing.T) {
		handler := NewCallbackHandler()
		req := httptest.NewRequest(http.MethodGet, "/callback?state=only_state", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		result := <-handler.Result()
		if result.Err == nil {
			t.Fatal("expected an error for a redirect without a code")
		}
		if !strings.Contains(result.Err.Error(), "missing authorization code") {
			t.Errorf("unexpected error message: %v", result.Err)
		}
	})

	t.Run("SecondRequestRejected", func(t *testing.T) {
		handler := NewCallbackHandler()

		first := httptest.NewRequest(http.MethodGet, "/callback?code=first_code&state=s", nil)
		handler.ServeHTTP(httptest.NewRecorder(), first)

		second := httptest.NewRequest(http.MethodGet, "/callback?code=second_code&state=s", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, second)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400 for a repeated callback, got %d", w.Code)
		}

		result := <-handler.Result()
		if result.Code != "first_code" {
			t.Errorf("first result should win, got code %s", result.Code)
		}
	})

	t.Run("Routes", func(t *testing.T) {
		handler := NewCallbackHandler()
		routes := handler.Routes()
		if len(routes) != 1 || routes[0] != "/callback" {
			t.Errorf("expected single /callback route, got %v", routes)
		}
	})
}
