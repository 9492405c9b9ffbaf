// Package services wraps the Spotify Web API behind the [Catalog] and
// [Player] interfaces.
//
// Each operation is a one-shot authenticated HTTP call. The wrappers are
// unaware of the OAuth flow that produced the session; they only consume
// bearer tokens through the [Session] interface and ask it to refresh when
// a call comes back 401. That retry happens exactly once per call — the
// client never schedules refreshes from expires_in.
package services
