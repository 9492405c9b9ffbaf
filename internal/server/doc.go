// Package server provides HTTP routing, middleware, and the OAuth callback handler for spotcli.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [CallbackHandler] receives the single authorization redirect of an OAuth2
// authorization-code attempt and hands the parsed outcome to the waiting
// flow through a one-shot channel. It deliberately does not validate the
// state parameter or exchange the code itself; both belong to the
// authorization flow in internal/auth, which must verify state before any
// exchange is attempted.
//
// # Current Usage
//
// When the user runs `spotcli auth login`, a temporary HTTP server binds to
// the configured loopback address (127.0.0.1:8888 by default), handles the
// callback, and is shut down once the flow resolves.
package server
