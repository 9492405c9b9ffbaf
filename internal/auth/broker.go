package auth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotcli/internal/server"
	"github.com/desertthunder/spotcli/internal/shared"
	"golang.org/x/oauth2"
)

const spotifyAuthURL = "https://accounts.spotify.com/authorize"

// DefaultScopes are the permissions requested for playback and library access.
var DefaultScopes = []string{
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-currently-playing",
	"streaming",
	"user-library-read",
	"playlist-read-private",
	"playlist-read-collaborative",
}

// Broker performs the OAuth2 Authorization-Code flow with PKCE against the
// Spotify accounts service: it binds a local callback listener, points the
// user's browser at the authorization URL, awaits the single redirect,
// validates it, and exchanges the code for a [TokenSet].
//
// A broker handles one attempt at a time; concurrent Authenticate calls are
// serialized.
type Broker struct {
	config  *oauth2.Config
	tokens  *TokenClient
	addr    string
	logger  *log.Logger
	output  io.Writer
	openURL func(string) error
	mu      sync.Mutex
}

// BrokerOpts contains configuration options for creating a Broker.
type BrokerOpts struct {
	Credentials shared.SpotifyConfig
	Addr        string // listen address for the callback server, e.g. "127.0.0.1:8888"
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
}

// NewBroker creates a Broker from Spotify credentials.
func NewBroker(opts BrokerOpts) (*Broker, error) {
	if opts.Credentials.ClientID == "" || opts.Credentials.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret are required", shared.ErrMissingCredentials)
	}
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:8888"
	}
	if opts.Credentials.RedirectURI == "" {
		opts.Credentials.RedirectURI = fmt.Sprintf("http://%s/callback", opts.Addr)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	config := &oauth2.Config{
		ClientID:     opts.Credentials.ClientID,
		ClientSecret: opts.Credentials.ClientSecret,
		RedirectURL:  opts.Credentials.RedirectURI,
		Scopes:       DefaultScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &Broker{
		config:  config,
		tokens:  NewTokenClient(opts.Credentials.ClientID, opts.Credentials.ClientSecret, opts.Credentials.RedirectURI, opts.HTTPClient),
		addr:    opts.Addr,
		logger:  opts.Logger,
		output:  opts.Output,
		openURL: shared.OpenBrowser,
	}, nil
}

// TokenClient returns the broker's token endpoint client, shared with the
// session manager for refresh calls.
func (b *Broker) TokenClient() *TokenClient {
	return b.tokens
}

// AuthURL constructs the authorization URL for a verifier/state pair.
func (b *Broker) AuthURL(state, verifier string) string {
	return b.config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

// Authenticate runs one full authorization attempt and returns the resulting tokens.
//
// The wait for the browser redirect is unbounded by design; the human in the
// loop may take arbitrarily long. Callers that want a deadline cancel ctx.
func (b *Broker) Authenticate(ctx context.Context) (*TokenSet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	verifier, err := GenerateVerifier()
	if err != nil {
		return nil, err
	}
	state, err := GenerateState()
	if err != nil {
		return nil, err
	}

	attemptID := shared.GenerateID()
	logger := shared.WithLogger(b.logger, "attempt", attemptID)

	// Bind before the URL is presented so a port conflict surfaces as its
	// own failure mode, not as a hung flow.
	ln, err := net.Listen("tcp", b.addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrCallbackBind, b.addr, err)
	}

	handler := server.NewCallbackHandler()
	router := server.NewBasicRouter()
	router.Use(server.Logging(logger))
	router.Handler(handler)

	httpServer := &http.Server{Handler: router}
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("callback listener started", "addr", b.addr)
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error shutting down callback listener", "error", err)
		}
	}()

	authURL := b.AuthURL(state, verifier)

	fmt.Fprintln(b.output, "→ Opening browser for Spotify authorization...")
	if err := b.openURL(authURL); err != nil {
		logger.Warnf("failed to open browser automatically %v", err)
		fmt.Fprintln(b.output, "⚠ Could not open browser automatically.")
		fmt.Fprintf(b.output, "Please open this URL in your browser:\n%s\n\n", authURL)
	}

	fmt.Fprintln(b.output, "→ Waiting for authorization...")

	var result server.CallbackResult
	select {
	case result = <-handler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("callback listener error: %w", err)
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, ctx.Err())
	}

	if result.Err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAuthFailed, result.Err)
	}

	// CSRF defense: a code whose echoed state differs from ours is never
	// exchanged.
	if result.State != state {
		return nil, shared.ErrStateMismatch
	}

	tokens, err := b.tokens.Exchange(ctx, result.Code, verifier)
	if err != nil {
		return nil, err
	}

	logger.Info("authorization successful", "scope", tokens.Scope)

	return tokens, nil
}
