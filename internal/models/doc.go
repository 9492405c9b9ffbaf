// Package models holds the plain domain types passed between the Spotify
// client, the terminal UI, and the recently-played cache. Wire formats stay
// in internal/services; persistence mapping stays in internal/repositories.
package models
