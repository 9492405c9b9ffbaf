// Package ui implements the interactive terminal front end with bubbletea.
//
// The model has three views: search (textinput plus a result list), recently
// played (backed by the local SQLite cache), and player (current playback
// with transport controls). Playback commands run as tea.Cmds against the
// services client; every state change that could affect playback re-fetches
// /me/player rather than guessing.
package ui
