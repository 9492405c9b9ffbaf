package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/spotcli/internal/shared"
	mocks "github.com/desertthunder/spotcli/internal/testing"
)

func newTestClient(t *testing.T, session Session, handler http.Handler) *SpotifyClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewSpotifyClient(session, srv.Client(), shared.NewLogger(io.Discard))
	client.baseURL = srv.URL
	return client
}

func TestSpotifyClient(t *testing.T) {
	ctx := context.Background()

	t.Run("AttachesBearerToken", func(t *testing.T) {
		session := &mocks.MockSession{Token: "test_token"}
		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth := r.Header.Get("Authorization"); auth != "Bearer test_token" {
				t.Errorf("expected bearer token header, got %q", auth)
			}
			fmt.Fprint(w, `{"id":"t1","name":"Song","duration_ms":200000,"uri":"spotify:track:t1"}`)
		}))

		track, err := client.Track(ctx, "t1")
		if err != nil {
			t.Fatalf("track request failed: %v", err)
		}
		if track.Title != "Song" {
			t.Errorf("expected title Song, got %s", track.Title)
		}
	})

	t.Run("RefreshesOnceOn401", func(t *testing.T) {
		var calls atomic.Int32
		session := &mocks.MockSession{Token: "stale", RefreshedToken: "fresh"}

		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			if r.Header.Get("Authorization") == "Bearer stale" {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error":{"status":401,"message":"The access token expired"}}`)
				return
			}
			fmt.Fprint(w, `{"id":"t1","name":"Song"}`)
		}))

		track, err := client.Track(ctx, "t1")
		if err != nil {
			t.Fatalf("expected retry to succeed, got %v", err)
		}
		if track.Title != "Song" {
			t.Errorf("expected title Song, got %s", track.Title)
		}
		if session.RefreshCalls != 1 {
			t.Errorf("expected exactly one refresh, got %d", session.RefreshCalls)
		}
		if n := calls.Load(); n != 2 {
			t.Errorf("expected exactly two requests, got %d", n)
		}
	})

	t.Run("RefreshFailurePropagates", func(t *testing.T) {
		refreshErr := errors.New("refresh endpoint down")
		session := &mocks.MockSession{Token: "stale", RefreshErr: refreshErr}

		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := client.Track(ctx, "t1")
		if !errors.Is(err, refreshErr) {
			t.Errorf("expected refresh error to propagate, got %v", err)
		}
		if session.RefreshCalls != 1 {
			t.Errorf("expected one refresh attempt, got %d", session.RefreshCalls)
		}
	})

	t.Run("PersistentUnauthorizedStops", func(t *testing.T) {
		var calls atomic.Int32
		session := &mocks.MockSession{Token: "stale", RefreshedToken: "still_bad"}

		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := client.Track(ctx, "t1")
		if err == nil {
			t.Fatal("expected an error when the retry also fails")
		}
		if n := calls.Load(); n != 2 {
			t.Errorf("expected exactly two requests (no retry loop), got %d", n)
		}
	})

	t.Run("NotAuthenticated", func(t *testing.T) {
		session := &mocks.MockSession{TokenErr: shared.ErrNotAuthenticated}
		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should be made without a token")
		}))

		_, err := client.Track(ctx, "t1")
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Search", func(t *testing.T) {
		session := &mocks.MockSession{Token: "t"}
		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if q := r.URL.Query().Get("q"); q != "test query" {
				t.Errorf("expected query 'test query', got %q", q)
			}
			fmt.Fprint(w, `{
				"tracks": {"items": [{"id":"t1","name":"Song","artists":[{"name":"Artist A"},{"name":"Artist B"}],"album":{"name":"Album"},"duration_ms":180000}], "total": 1},
				"albums": {"items": [{"id":"a1","name":"Album","artists":[{"name":"Artist A"}],"release_date":"2020-01-01"}], "total": 1},
				"artists": {"items": [{"id":"ar1","name":"Artist A"}], "total": 1},
				"playlists": {"items": [{"id":"p1","name":"Mix","tracks":{"total":12}}], "total": 1}
			}`)
		}))

		results, err := client.Search(ctx, "test query", 10)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if len(results.Tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(results.Tracks))
		}
		if results.Tracks[0].Artist != "Artist A, Artist B" {
			t.Errorf("artist names should be joined, got %s", results.Tracks[0].Artist)
		}
		if results.Tracks[0].Album != "Album" {
			t.Errorf("expected album name Album, got %s", results.Tracks[0].Album)
		}
		if len(results.Albums) != 1 || results.Albums[0].Artist != "Artist A" {
			t.Errorf("unexpected albums: %+v", results.Albums)
		}
		if len(results.Playlists) != 1 || results.Playlists[0].TrackCount != 12 {
			t.Errorf("unexpected playlists: %+v", results.Playlists)
		}
	})

	t.Run("SearchEmptyQuery", func(t *testing.T) {
		session := &mocks.MockSession{Token: "t"}
		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should be made for an empty query")
		}))

		_, err := client.Search(ctx, "   ", 10)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("NowWithNoPlayback", func(t *testing.T) {
		session := &mocks.MockSession{Token: "t"}
		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		playback, err := client.Now(ctx)
		if err != nil {
			t.Fatalf("now failed: %v", err)
		}
		if playback != nil {
			t.Errorf("expected nil playback for 204, got %+v", playback)
		}
	})

	t.Run("NowWithActivePlayback", func(t *testing.T) {
		session := &mocks.MockSession{Token: "t"}
		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"device": {"id":"d1","name":"Desk","type":"Computer","is_active":true,"volume_percent":65},
				"is_playing": true,
				"progress_ms": 42000,
				"item": {"id":"t1","name":"Song","duration_ms":180000}
			}`)
		}))

		playback, err := client.Now(ctx)
		if err != nil {
			t.Fatalf("now failed: %v", err)
		}
		if playback == nil || playback.Track == nil || playback.Device == nil {
			t.Fatalf("expected full playback state, got %+v", playback)
		}
		if !playback.IsPlaying || playback.ProgressMS != 42000 {
			t.Errorf("unexpected playback: %+v", playback)
		}
		if playback.Device.VolumePercent != 65 {
			t.Errorf("expected volume 65, got %d", playback.Device.VolumePercent)
		}
	})

	t.Run("PlaySendsURI", func(t *testing.T) {
		session := &mocks.MockSession{Token: "t"}
		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			body, _ := io.ReadAll(r.Body)
			if string(body) != `{"uris":["spotify:track:t1"]}` {
				t.Errorf("unexpected body %s", body)
			}
			w.WriteHeader(http.StatusNoContent)
		}))

		if err := client.Play(ctx, "spotify:track:t1"); err != nil {
			t.Fatalf("play failed: %v", err)
		}
	})

	t.Run("SetVolumeClamps", func(t *testing.T) {
		session := &mocks.MockSession{Token: "t"}
		var lastVolume string
		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastVolume = r.URL.Query().Get("volume_percent")
			w.WriteHeader(http.StatusNoContent)
		}))

		if err := client.SetVolume(ctx, 150); err != nil {
			t.Fatalf("set volume failed: %v", err)
		}
		if lastVolume != "100" {
			t.Errorf("expected volume clamped to 100, got %s", lastVolume)
		}

		if err := client.SetVolume(ctx, -5); err != nil {
			t.Fatalf("set volume failed: %v", err)
		}
		if lastVolume != "0" {
			t.Errorf("expected volume clamped to 0, got %s", lastVolume)
		}
	})

	t.Run("SavedTracks", func(t *testing.T) {
		session := &mocks.MockSession{Token: "t"}
		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"items":[{"added_at":"2025-01-01T00:00:00Z","track":{"id":"t1","name":"Saved Song","duration_ms":180000}}],"total":1}`)
		}))

		tracks, err := client.SavedTracks(ctx, 10)
		if err != nil {
			t.Fatalf("saved tracks failed: %v", err)
		}
		if len(tracks) != 1 || tracks[0].Title != "Saved Song" {
			t.Errorf("unexpected tracks: %+v", tracks)
		}
	})

	t.Run("FeaturedPlaylists", func(t *testing.T) {
		session := &mocks.MockSession{Token: "t"}
		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"message":"Editor's picks","playlists":{"items":[{"id":"p1","name":"Daily Mix","tracks":{"total":40}}],"total":1}}`)
		}))

		playlists, err := client.FeaturedPlaylists(ctx, 10)
		if err != nil {
			t.Fatalf("featured playlists failed: %v", err)
		}
		if len(playlists) != 1 || playlists[0].TrackCount != 40 {
			t.Errorf("unexpected playlists: %+v", playlists)
		}
	})

	t.Run("Devices", func(t *testing.T) {
		session := &mocks.MockSession{Token: "t"}
		client := newTestClient(t, session, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"devices":[{"id":"d1","name":"Desk","type":"Computer","is_active":true,"volume_percent":80}]}`)
		}))

		devices, err := client.Devices(ctx)
		if err != nil {
			t.Fatalf("devices failed: %v", err)
		}
		if len(devices) != 1 || !devices[0].Active || devices[0].Name != "Desk" {
			t.Errorf("unexpected devices: %+v", devices)
		}
	})
}
