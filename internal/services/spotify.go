// Spotify Web API implementation of [Catalog] and [Player]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotcli/internal/models"
	"github.com/desertthunder/spotcli/internal/shared"
	"golang.org/x/time/rate"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	URI    string   `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string          `json:"release_date"`
	TotalTracks int             `json:"total_tracks"`
	Images      []SpotifyImage  `json:"images"`
	URI         string          `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

type owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type playlistTracks struct {
	Total int `json:"total"`
}

// SpotifyPlaylist represents a Spotify playlist.
type SpotifyPlaylist struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Owner       owner          `json:"owner"`
	Public      bool           `json:"public"`
	Tracks      playlistTracks `json:"tracks"`
	URI         string         `json:"uri"`
}

type searchPage[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// SpotifySearchResponse is the combined /search response.
type SpotifySearchResponse struct {
	Tracks    *searchPage[SpotifyTrack]    `json:"tracks"`
	Artists   *searchPage[SpotifyArtist]   `json:"artists"`
	Albums    *searchPage[SpotifyAlbum]    `json:"albums"`
	Playlists *searchPage[SpotifyPlaylist] `json:"playlists"`
}

// SpotifyDevice represents a playback device.
type SpotifyDevice struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
	VolumePercent int    `json:"volume_percent"`
}

// SpotifyPlayback represents the /me/player response.
type SpotifyPlayback struct {
	Device       *SpotifyDevice `json:"device"`
	IsPlaying    bool           `json:"is_playing"`
	ProgressMS   int            `json:"progress_ms"`
	ShuffleState bool           `json:"shuffle_state"`
	Item         *SpotifyTrack  `json:"item"`
}

// Session supplies bearer tokens to the client and refreshes them on demand.
// Satisfied by [auth.SessionManager].
type Session interface {
	AccessToken() (string, error)
	Refresh(ctx context.Context) error
}

// SpotifyClient implements [Catalog] and [Player] against the Spotify Web API.
//
// All calls share one request path that attaches the session's bearer token
// and rate-limits outbound traffic. Expired tokens are handled reactively:
// a 401 triggers one session refresh and one retry, nothing more.
type SpotifyClient struct {
	baseURL    string
	httpClient *http.Client
	session    Session
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewSpotifyClient creates a Spotify Web API client backed by the given session.
func NewSpotifyClient(session Session, httpClient *http.Client, logger *log.Logger) *SpotifyClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &SpotifyClient{
		baseURL:    spotifyBaseURL,
		httpClient: httpClient,
		session:    session,
		// Spotify's documented guidance is a rolling 30s window; 10 rps with
		// small bursts stays comfortably under it for interactive use.
		limiter: rate.NewLimiter(rate.Limit(10), 5),
		logger:  logger,
	}
}

// apiError is a non-2xx Spotify API response with its body preserved.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("spotify API error: status %d: %s", e.status, e.body)
}

// do performs one authenticated request, refreshing the session and retrying
// once on 401.
func (c *SpotifyClient) do(ctx context.Context, method, endpoint string, body, result any) error {
	err := c.doOnce(ctx, method, endpoint, body, result)

	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.status == http.StatusUnauthorized {
		c.logger.Debug("access token rejected, refreshing session", "endpoint", endpoint)
		if refreshErr := c.session.Refresh(ctx); refreshErr != nil {
			return refreshErr
		}
		return c.doOnce(ctx, method, endpoint, body, result)
	}

	return err
}

func (c *SpotifyClient) doOnce(ctx context.Context, method, endpoint string, body, result any) error {
	token, err := c.session.AccessToken()
	if err != nil {
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiError{status: resp.StatusCode, body: string(data)}
	}

	// Playback control endpoints answer 204 with no body.
	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search queries tracks, artists, albums, and playlists in one call.
func (c *SpotifyClient) Search(ctx context.Context, query string, limit int) (*models.SearchResults, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrInvalidArgument)
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=track,artist,album,playlist&limit=%d", url.QueryEscape(query), limit)

	var response SpotifySearchResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	results := &models.SearchResults{}
	if response.Tracks != nil {
		for _, t := range response.Tracks.Items {
			results.Tracks = append(results.Tracks, toTrack(t))
		}
	}
	if response.Artists != nil {
		for _, a := range response.Artists.Items {
			results.Artists = append(results.Artists, toArtist(a))
		}
	}
	if response.Albums != nil {
		for _, a := range response.Albums.Items {
			results.Albums = append(results.Albums, toAlbum(a))
		}
	}
	if response.Playlists != nil {
		for _, p := range response.Playlists.Items {
			results.Playlists = append(results.Playlists, toPlaylist(p))
		}
	}

	return results, nil
}

// Track retrieves a single track by ID.
func (c *SpotifyClient) Track(ctx context.Context, trackID string) (*models.Track, error) {
	var st SpotifyTrack
	if err := c.do(ctx, http.MethodGet, "/tracks/"+url.PathEscape(trackID), nil, &st); err != nil {
		return nil, err
	}
	track := toTrack(st)
	return &track, nil
}

// Album retrieves an album by ID.
func (c *SpotifyClient) Album(ctx context.Context, albumID string) (*models.Album, error) {
	var sa SpotifyAlbum
	if err := c.do(ctx, http.MethodGet, "/albums/"+url.PathEscape(albumID), nil, &sa); err != nil {
		return nil, err
	}
	album := toAlbum(sa)
	return &album, nil
}

// Artist retrieves an artist by ID.
func (c *SpotifyClient) Artist(ctx context.Context, artistID string) (*models.Artist, error) {
	var sa SpotifyArtist
	if err := c.do(ctx, http.MethodGet, "/artists/"+url.PathEscape(artistID), nil, &sa); err != nil {
		return nil, err
	}
	artist := toArtist(sa)
	return &artist, nil
}

// Playlist retrieves a playlist by ID.
func (c *SpotifyClient) Playlist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	var sp SpotifyPlaylist
	if err := c.do(ctx, http.MethodGet, "/playlists/"+url.PathEscape(playlistID), nil, &sp); err != nil {
		return nil, err
	}
	playlist := toPlaylist(sp)
	return &playlist, nil
}

// NewReleases lists newly released albums.
func (c *SpotifyClient) NewReleases(ctx context.Context, limit int) ([]models.Album, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	var response struct {
		Albums searchPage[SpotifyAlbum] `json:"albums"`
	}
	endpoint := fmt.Sprintf("/browse/new-releases?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	albums := make([]models.Album, 0, len(response.Albums.Items))
	for _, a := range response.Albums.Items {
		albums = append(albums, toAlbum(a))
	}

	return albums, nil
}

// FeaturedPlaylists lists Spotify's featured playlists.
func (c *SpotifyClient) FeaturedPlaylists(ctx context.Context, limit int) ([]models.Playlist, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	var response struct {
		Message   string                      `json:"message"`
		Playlists searchPage[SpotifyPlaylist] `json:"playlists"`
	}
	endpoint := fmt.Sprintf("/browse/featured-playlists?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, 0, len(response.Playlists.Items))
	for _, p := range response.Playlists.Items {
		playlists = append(playlists, toPlaylist(p))
	}

	return playlists, nil
}

// SavedTracks lists the user's saved library tracks.
func (c *SpotifyClient) SavedTracks(ctx context.Context, limit int) ([]models.Track, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	var response struct {
		Items []struct {
			AddedAt string       `json:"added_at"`
			Track   SpotifyTrack `json:"track"`
		} `json:"items"`
		Total int `json:"total"`
	}
	endpoint := fmt.Sprintf("/me/tracks?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Items))
	for _, item := range response.Items {
		tracks = append(tracks, toTrack(item.Track))
	}

	return tracks, nil
}

// Now returns the current playback state, or nil when no device is active.
func (c *SpotifyClient) Now(ctx context.Context) (*models.Playback, error) {
	var sp SpotifyPlayback
	if err := c.do(ctx, http.MethodGet, "/me/player", nil, &sp); err != nil {
		return nil, err
	}

	// A 204 leaves sp zero-valued: nothing is playing anywhere.
	if sp.Device == nil && sp.Item == nil {
		return nil, nil
	}

	playback := &models.Playback{
		IsPlaying:  sp.IsPlaying,
		ProgressMS: sp.ProgressMS,
		Shuffle:    sp.ShuffleState,
	}
	if sp.Item != nil {
		track := toTrack(*sp.Item)
		playback.Track = &track
	}
	if sp.Device != nil {
		device := toDevice(*sp.Device)
		playback.Device = &device
	}

	return playback, nil
}

// Play starts playback of the given track URI on the active device.
func (c *SpotifyClient) Play(ctx context.Context, trackURI string) error {
	body := map[string]any{"uris": []string{trackURI}}
	return c.do(ctx, http.MethodPut, "/me/player/play", body, nil)
}

// Pause pauses playback on the active device.
func (c *SpotifyClient) Pause(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/me/player/pause", nil, nil)
}

// Resume resumes playback of the current context.
func (c *SpotifyClient) Resume(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/me/player/play", nil, nil)
}

// Next skips to the next track.
func (c *SpotifyClient) Next(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/me/player/next", nil, nil)
}

// Previous skips to the previous track.
func (c *SpotifyClient) Previous(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/me/player/previous", nil, nil)
}

// SetVolume sets the active device volume as a percentage.
func (c *SpotifyClient) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	endpoint := fmt.Sprintf("/me/player/volume?volume_percent=%d", percent)
	return c.do(ctx, http.MethodPut, endpoint, nil, nil)
}

// Devices lists the user's available playback devices.
func (c *SpotifyClient) Devices(ctx context.Context) ([]models.Device, error) {
	var response struct {
		Devices []SpotifyDevice `json:"devices"`
	}
	if err := c.do(ctx, http.MethodGet, "/me/player/devices", nil, &response); err != nil {
		return nil, err
	}

	devices := make([]models.Device, 0, len(response.Devices))
	for _, d := range response.Devices {
		devices = append(devices, toDevice(d))
	}

	return devices, nil
}

func toTrack(t SpotifyTrack) models.Track {
	track := models.Track{
		ID:         t.ID,
		Title:      t.Name,
		Album:      t.Album.Name,
		DurationMS: t.DurationMS,
		Popularity: t.Popularity,
		URI:        t.URI,
	}

	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	track.Artist = strings.Join(names, ", ")

	return track
}

func toArtist(a SpotifyArtist) models.Artist {
	return models.Artist{ID: a.ID, Name: a.Name, Genres: a.Genres}
}

func toAlbum(a SpotifyAlbum) models.Album {
	album := models.Album{
		ID:          a.ID,
		Name:        a.Name,
		ReleaseDate: a.ReleaseDate,
		TotalTracks: a.TotalTracks,
		URI:         a.URI,
	}
	if len(a.Artists) > 0 {
		album.Artist = a.Artists[0].Name
	}
	return album
}

func toPlaylist(p SpotifyPlaylist) models.Playlist {
	return models.Playlist{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       p.Owner.DisplayName,
		TrackCount:  p.Tracks.Total,
		Public:      p.Public,
		URI:         p.URI,
	}
}

func toDevice(d SpotifyDevice) models.Device {
	return models.Device{
		ID:            d.ID,
		Name:          d.Name,
		Type:          d.Type,
		Active:        d.IsActive,
		VolumePercent: d.VolumePercent,
	}
}
