package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// CallbackResult is the outcome of a single authorization redirect.
//
// Either Code/State are set (the provider redirected back with an
// authorization code) or Err is set, never both.
type CallbackResult struct {
	Code  string
	State string
	Err   error
}

// CallbackHandler receives the OAuth2 authorization redirect on /callback.
//
// Implements the [Handler] interface for registration with a [Router]. The
// handler publishes exactly one [CallbackResult] through a one-shot channel;
// later requests to the same path (browser retries, refreshes) get a 400 and
// never overwrite the published result.
type CallbackHandler struct {
	resultChan  chan CallbackResult
	once        sync.Once
	mu          sync.Mutex
	callbackHit bool
}

// NewCallbackHandler creates a new callback handler for a single authorization attempt.
func NewCallbackHandler() *CallbackHandler {
	return &CallbackHandler{
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the authorization redirect.
//
// An error parameter is published verbatim. A code/state pair is published
// for the waiting flow to validate; state matching happens there, before any
// token exchange. Anything else is a malformed redirect.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		msg := errParam
		if desc := query.Get("error_description"); desc != "" {
			msg = fmt.Sprintf("%s: %s", errParam, desc)
		}
		h.Send(CallbackResult{Err: errors.New(msg)})
		h.writePage(w, "Authentication Failed", "You can close this window and return to the terminal.")
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		h.Send(CallbackResult{Err: errors.New("missing authorization code")})
		h.writePage(w, "Authentication Failed", "Missing authorization code. You can close this window.")
		return
	}

	h.Send(CallbackResult{Code: code, State: state})
	h.writePage(w, "Authentication Successful", "You can close this window and return to spotcli.")
}

// Send publishes the result through the channel (only once).
func (h *CallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the channel that receives the authorization outcome.
//
// The channel receives exactly one result and is then closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

func (h *CallbackHandler) writePage(w http.ResponseWriter, title, body string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>
`, title, title, body)
}
