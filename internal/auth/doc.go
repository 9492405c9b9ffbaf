// Package auth implements the user authentication broker for spotcli.
//
// # Flow
//
// [Broker.Authenticate] drives a single OAuth2 Authorization-Code attempt
// with PKCE (RFC 7636): generate a fresh verifier/challenge/state triple,
// bind the loopback callback listener, open the system browser at the
// authorization URL, await exactly one redirect, verify the echoed state,
// and exchange the code for tokens. PKCE parameters live for one attempt
// and are never reused.
//
// # Token lifecycle
//
// [TokenClient] performs the two token-endpoint operations (exchange and
// refresh). [SessionManager] owns the resulting [TokenSet] for the process
// lifetime, persists it to ~/.spotcli/session.json, and exposes the bearer
// token to the API wrappers in internal/services. Refresh is reactive: an
// API call that hits a 401 asks the session manager to refresh and retries
// once. Nothing here inspects expires_in.
//
// # Failure modes
//
// Every failure is a typed error returned to the interactive caller:
// [shared.ErrCallbackBind] (port in use), [shared.ErrAuthFailed] (provider
// denied, verbatim detail), [shared.ErrStateMismatch] (CSRF gate),
// [TokenEndpointError] (remote error body, unmodified), and
// [ErrMalformedTokenResponse] (2xx without access_token).
package auth
