package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotcli/internal/formatter"
	"github.com/desertthunder/spotcli/internal/models"
	"github.com/desertthunder/spotcli/internal/repositories"
	"github.com/desertthunder/spotcli/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	RecentView
	PlayerView
)

const playbackPollInterval = 5 * time.Second

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	catalog services.Catalog
	player  services.Player
	recent  *repositories.RecentTrackRepository

	width  int
	height int

	searchInput textinput.Model
	searching   bool
	resultList  list.Model
	hasResults  bool
	recentList  list.Model
	playback    *models.Playback
	volume      int
	status      string
	err         error

	help help.Model
	keys keyMap
}

// trackItem wraps [models.Track] to implement list.Item.
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Title }
func (i trackItem) Title() string       { return formatter.TrackLine(i.track) }
func (i trackItem) Description() string {
	desc := formatter.FormatDuration(i.track.DurationMS)
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return desc
}

// recentItem wraps [models.RecentTrack] to implement list.Item.
type recentItem struct {
	entry models.RecentTrack
}

func (i recentItem) FilterValue() string { return i.entry.Track.Title }
func (i recentItem) Title() string       { return formatter.TrackLine(i.entry.Track) }
func (i recentItem) Description() string {
	return fmt.Sprintf("played %s", i.entry.PlayedAt.Format("Jan 2 15:04"))
}

type searchResultsMsg struct {
	results *models.SearchResults
	err     error
}

type recentFetchedMsg struct {
	entries []models.RecentTrack
	err     error
}

type playbackMsg struct {
	playback *models.Playback
	err      error
}

type actionDoneMsg struct {
	status string
	err    error
}

type pollTickMsg struct{}

// NewModel creates a new TUI model with the provided dependencies.
//
// The recent repository may be nil, in which case the recent view shows an
// empty list and plays are not recorded locally.
func NewModel(ctx context.Context, catalog services.Catalog, player services.Player, recent *repositories.RecentTrackRepository) *Model {
	input := textinput.New()
	input.Placeholder = "Search tracks, albums, artists..."
	input.CharLimit = 120

	results := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	results.Title = "Songs"
	recents := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	recents.Title = "Recently Played"

	return &Model{
		ctx:         ctx,
		view:        SearchView,
		catalog:     catalog,
		player:      player,
		recent:      recent,
		searchInput: input,
		resultList:  results,
		recentList:  recents,
		volume:      -1,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init fetches the current playback state and the local history.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchPlayback(), m.fetchRecent(), m.pollPlayback())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() == 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-10)
		}
		if m.recentList.Width() == 0 {
			m.recentList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchInputKeys(msg)
		}
		return m.handleKeys(msg)

	case searchResultsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.results.Tracks))
		for i, track := range msg.results.Tracks {
			items[i] = trackItem{track: track}
		}
		m.resultList.SetItems(items)
		m.resultList.SetSize(m.width-4, m.height-10)
		m.hasResults = true
		return m, nil

	case recentFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.entries))
		for i, entry := range msg.entries {
			items[i] = recentItem{entry: entry}
		}
		m.recentList.SetItems(items)
		m.recentList.SetSize(m.width-4, m.height-8)
		return m, nil

	case playbackMsg:
		if msg.err == nil {
			m.playback = msg.playback
			if msg.playback != nil && msg.playback.Device != nil {
				m.volume = msg.playback.Device.VolumePercent
			}
		}
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		return m, tea.Batch(m.fetchPlayback(), m.fetchRecent())

	case pollTickMsg:
		return m, tea.Batch(m.fetchPlayback(), m.pollPlayback())
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case SearchView:
		body = m.renderSearch()
	case RecentView:
		body = m.renderRecent()
	case PlayerView:
		body = m.renderPlayerDetail()
	}

	return fmt.Sprintf("%s\n%s", body, m.renderStatusBar())
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/", "1":
		m.view = SearchView
		if msg.String() == "/" {
			m.searching = true
			m.searchInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	case "2":
		m.view = RecentView
		return m, m.fetchRecent()
	case "3":
		m.view = PlayerView
		return m, m.fetchPlayback()
	case " ":
		return m, m.togglePlayback()
	case "n":
		return m, m.playerAction("skipped to next track", m.player.Next)
	case "b":
		return m, m.playerAction("skipped to previous track", m.player.Previous)
	case "+", "=":
		return m, m.changeVolume(10)
	case "-":
		return m, m.changeVolume(-10)
	case "enter":
		return m, m.playSelected()
	}

	return m.updateLists(msg)
}

func (m *Model) handleSearchInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		return m, m.runSearch(query)
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		if m.hasResults {
			m.resultList, cmd = m.resultList.Update(msg)
		}
	case RecentView:
		m.recentList, cmd = m.recentList.Update(msg)
	}
	return m, cmd
}

func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.catalog.Search(m.ctx, query, 20)
		return searchResultsMsg{results: results, err: err}
	}
}

func (m *Model) fetchRecent() tea.Cmd {
	return func() tea.Msg {
		if m.recent == nil {
			return recentFetchedMsg{}
		}
		entries, err := m.recent.Recent(0)
		return recentFetchedMsg{entries: entries, err: err}
	}
}

func (m *Model) fetchPlayback() tea.Cmd {
	return func() tea.Msg {
		playback, err := m.player.Now(m.ctx)
		return playbackMsg{playback: playback, err: err}
	}
}

func (m *Model) pollPlayback() tea.Cmd {
	return tea.Tick(playbackPollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func (m *Model) playSelected() tea.Cmd {
	var track models.Track

	switch m.view {
	case SearchView:
		if !m.hasResults {
			return nil
		}
		selected := m.resultList.SelectedItem()
		item, ok := selected.(trackItem)
		if !ok {
			return nil
		}
		track = item.track
	case RecentView:
		selected := m.recentList.SelectedItem()
		item, ok := selected.(recentItem)
		if !ok {
			return nil
		}
		track = item.entry.Track
	default:
		return nil
	}

	return func() tea.Msg {
		if err := m.player.Play(m.ctx, track.URI); err != nil {
			return actionDoneMsg{err: err}
		}
		if m.recent != nil {
			if err := m.recent.Record(track); err != nil {
				return actionDoneMsg{err: err}
			}
		}
		return actionDoneMsg{status: fmt.Sprintf("playing %s", formatter.TrackLine(track))}
	}
}

func (m *Model) togglePlayback() tea.Cmd {
	playing := m.playback != nil && m.playback.IsPlaying
	if playing {
		return m.playerAction("paused", m.player.Pause)
	}
	return m.playerAction("resumed", m.player.Resume)
}

func (m *Model) playerAction(status string, action func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := action(m.ctx); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: status}
	}
}

func (m *Model) changeVolume(delta int) tea.Cmd {
	target := m.volume + delta
	if m.volume < 0 {
		target = 50 + delta
	}
	if target < 0 {
		target = 0
	}
	if target > 100 {
		target = 100
	}

	m.volume = target
	return m.playerAction(fmt.Sprintf("volume %d%%", target), func(ctx context.Context) error {
		return m.player.SetVolume(ctx, target)
	})
}
