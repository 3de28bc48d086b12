// Package tui renders the application store and translates key input into
// store actions. It also plays the media surface role: it owns the
// playback clock and feeds the engine time and ended events.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/quietloop/sona/internal/app"
	"github.com/quietloop/sona/internal/catalog"
	"github.com/quietloop/sona/internal/domain"
	"github.com/quietloop/sona/internal/nav"
	"github.com/quietloop/sona/internal/playback"
	"github.com/quietloop/sona/internal/player"
)

const seekStep = 15 // seconds per arrow-key seek

// Model is the main Bubble Tea model for the application
type Model struct {
	store    *app.Store
	launcher *player.Launcher
	keys     KeyMap

	width  int
	height int

	// List state for the current view
	cursor   int
	lastView nav.View

	// In-view filter
	filtering   bool
	filterInput textinput.Model

	// Global catalog search
	searching     bool
	searchInput   textinput.Model
	searchResults []catalog.SearchResult
	searchCursor  int

	progressBar progress.Model

	statusMsg   string
	statusIsErr bool

	// Audio ref currently handed to the external player
	currentRef string
}

// NewModel creates the application model
func NewModel(store *app.Store, launcher *player.Launcher) Model {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.CharLimit = 64

	search := textinput.New()
	search.Placeholder = "search courses and ambience"
	search.CharLimit = 64

	return Model{
		store:       store,
		launcher:    launcher,
		keys:        DefaultKeyMap(),
		filterInput: filter,
		searchInput: search,
		progressBar: progress.New(progress.WithDefaultGradient()),
		lastView:    store.Snapshot().View,
	}
}

// Init starts the playback clock
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}

func clearStatusCmd(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = msg.Width - 8
		return m, nil

	case TickMsg:
		m.handleTick()
		return m, tickCmd()

	case StatusMsg:
		m.statusMsg = msg.Message
		m.statusIsErr = msg.IsError
		return m, clearStatusCmd(4 * time.Second)

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleTick advances the playback clock by one second and reports it to
// the engine. Pending seeks are consumed here, even while paused, because
// the surface owns the authoritative position.
func (m *Model) handleTick() {
	sess := m.store.Snapshot().Session
	if !sess.Active() {
		m.syncAudio()
		return
	}

	pos := sess.Position
	if v, ok := m.store.ConsumeSeek(); ok {
		pos = v
	}
	if sess.Playing {
		pos++
	}

	if sess.Duration > 0 && pos >= sess.Duration {
		m.store.HandleMediaEvent(playback.TimeUpdated{Position: sess.Duration, Duration: sess.Duration})
		m.store.HandleMediaEvent(playback.Ended{})
	} else {
		m.store.HandleMediaEvent(playback.TimeUpdated{Position: pos, Duration: sess.Duration})
	}

	m.syncAudio()
}

// syncAudio reconciles the external player process with the session state
func (m *Model) syncAudio() {
	sess := m.store.Snapshot().Session

	ref := ""
	if sess.Playing {
		switch sess.Kind {
		case playback.KindLesson:
			ref = sess.Lesson.AudioRef
		case playback.KindAmbience:
			ref = sess.Track.AudioRef
		}
	}

	if ref == m.currentRef {
		return
	}
	if ref == "" {
		m.launcher.Stop()
		m.currentRef = ""
		return
	}
	if err := m.launcher.Play(ref); err != nil {
		m.statusMsg = "No audio player available (browsing still works)"
		m.statusIsErr = true
	}
	m.currentRef = ref
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.launcher.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleItems())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.openSelected()
		return m.viewChanged(), nil

	case key.Matches(msg, m.keys.Back):
		m.goBack()
		return m.viewChanged(), nil

	case key.Matches(msg, m.keys.Home):
		m.store.GoHome()
		return m.viewChanged(), nil

	case key.Matches(msg, m.keys.Ambience):
		m.store.GoAmbience("")
		return m.viewChanged(), nil

	case key.Matches(msg, m.keys.Favorites):
		m.store.GoFavorites()
		return m.viewChanged(), nil

	case key.Matches(msg, m.keys.Settings):
		m.store.GoSettings()
		return m.viewChanged(), nil

	case key.Matches(msg, m.keys.NowPlaying):
		m.store.GoPlayer()
		return m.viewChanged(), nil

	case key.Matches(msg, m.keys.PlayPause):
		m.store.TogglePlayPause()
		m.syncAudio()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.store.PlayNext()
		m.syncAudio()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.store.PlayPrev()
		m.syncAudio()
		return m, nil

	case key.Matches(msg, m.keys.SeekFwd):
		if sess := m.store.Snapshot().Session; sess.Active() {
			m.store.Seek(sess.Position + seekStep)
		}
		return m, nil

	case key.Matches(msg, m.keys.SeekBack):
		if sess := m.store.Snapshot().Session; sess.Active() {
			m.store.Seek(sess.Position - seekStep)
		}
		return m, nil

	case key.Matches(msg, m.keys.Close):
		m.store.ClosePlayer()
		m.syncAudio()
		return m.viewChanged(), nil

	case key.Matches(msg, m.keys.Favorite):
		m.toggleFavoriteSelected()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		if len(m.listItems()) > 0 {
			m.filtering = true
			m.filterInput.Focus()
		}
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		m.searchResults = nil
		m.searchCursor = 0
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Upgrade):
		m.cyclePlan()
		return m, clearStatusCmd(4 * time.Second)

	case key.Matches(msg, m.keys.Overlay):
		m.store.ToggleOverlay()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.goBack()
		return m.viewChanged(), nil
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.filtering = false
		m.filterInput.Reset()
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.filtering = false
		m.openSelected()
		m.filterInput.Reset()
		return m.viewChanged(), nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.searchInput.Reset()
		m.searchResults = nil
		return m, nil

	// Only arrow keys move the result cursor; letters go to the input
	case msg.Type == tea.KeyUp:
		if m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil

	case msg.Type == tea.KeyDown:
		if m.searchCursor < len(m.searchResults)-1 {
			m.searchCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.openSearchResult()
		m.searching = false
		m.searchInput.Reset()
		m.searchResults = nil
		return m.viewChanged(), nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchResults = m.store.Catalog().Search(m.searchInput.Value())
	m.searchCursor = 0
	return m, cmd
}

// viewChanged resets list state when navigation moved to a different view
func (m Model) viewChanged() Model {
	view := m.store.Snapshot().View
	if view != m.lastView {
		m.cursor = 0
		m.filtering = false
		m.filterInput.Reset()
		m.lastView = view
	}
	return m
}

// listItems returns the unfiltered list for the current view
func (m *Model) listItems() []domain.ListItem {
	snap := m.store.Snapshot()
	cat := m.store.Catalog()

	switch snap.View {
	case nav.ViewHome, nav.ViewCourses:
		var items []domain.ListItem
		for _, c := range cat.Courses() {
			items = append(items, c)
		}
		return items

	case nav.ViewCourseDetail:
		course, err := cat.Course(snap.Params[nav.ParamCourseID])
		if err != nil {
			return nil
		}
		var items []domain.ListItem
		for _, l := range course.Lessons() {
			items = append(items, l)
		}
		return items

	case nav.ViewAmbience:
		if id := snap.Params[nav.ParamCategoryID]; id != "" {
			category, err := cat.Category(id)
			if err != nil {
				return nil
			}
			var items []domain.ListItem
			for _, t := range category.Tracks {
				items = append(items, t)
			}
			return items
		}
		var items []domain.ListItem
		for _, c := range cat.Categories() {
			items = append(items, c)
		}
		return items

	case nav.ViewFavorites:
		var items []domain.ListItem
		for _, id := range snap.FavoriteCourses {
			if course, err := cat.Course(id); err == nil {
				items = append(items, course)
			}
		}
		for _, id := range snap.FavoriteTracks {
			if track, err := cat.Track(id); err == nil {
				items = append(items, track)
			}
		}
		return items
	}

	return nil
}

// visibleItems returns the current list after the in-view filter
func (m *Model) visibleItems() []domain.ListItem {
	return filterItems(m.listItems(), m.filterInput.Value())
}

func (m *Model) selectedItem() domain.ListItem {
	items := m.visibleItems()
	if m.cursor < 0 || m.cursor >= len(items) {
		return nil
	}
	return items[m.cursor]
}

func (m *Model) openSelected() {
	item := m.selectedItem()
	if item == nil {
		return
	}

	switch v := item.(type) {
	case *domain.Course:
		m.store.GoCourseDetail(v.ID)
	case *domain.AmbienceCategory:
		m.store.GoAmbience(v.ID)
	case *domain.Lesson:
		courseID := m.store.Snapshot().Params[nav.ParamCourseID]
		m.store.StartLesson(courseID, v.ID)
		m.syncAudio()
	case *domain.AmbienceTrack:
		m.store.StartAmbience(v.ID)
		m.syncAudio()
	}
}

func (m *Model) openSearchResult() {
	if m.searchCursor < 0 || m.searchCursor >= len(m.searchResults) {
		return
	}
	res := m.searchResults[m.searchCursor]
	switch {
	case res.CourseID != "":
		m.store.GoCourseDetail(res.CourseID)
	case res.TrackID != "":
		m.store.StartAmbience(res.TrackID)
		m.syncAudio()
	}
}

func (m *Model) toggleFavoriteSelected() {
	snap := m.store.Snapshot()

	// In player views, favorite the active content's container
	switch snap.View {
	case nav.ViewPlayer:
		if snap.Session.Kind == playback.KindLesson {
			m.store.ToggleFavoriteCourse(snap.Session.Course.ID)
		}
		return
	case nav.ViewAmbiencePlayer:
		if snap.Session.Kind == playback.KindAmbience {
			m.store.ToggleFavoriteTrack(snap.Session.Track.ID)
		}
		return
	}

	switch v := m.selectedItem().(type) {
	case *domain.Course:
		m.store.ToggleFavoriteCourse(v.ID)
	case *domain.AmbienceTrack:
		m.store.ToggleFavoriteTrack(v.ID)
	}
}

// goBack steps up one level in the view hierarchy
func (m *Model) goBack() {
	snap := m.store.Snapshot()

	switch snap.View {
	case nav.ViewCourseDetail:
		m.store.GoHome()
	case nav.ViewPlayer:
		if snap.Session.Kind == playback.KindLesson {
			m.store.GoCourseDetail(snap.Session.Course.ID)
			return
		}
		m.store.GoHome()
	case nav.ViewAmbiencePlayer:
		m.store.GoAmbience("")
	case nav.ViewAmbience:
		if snap.Params[nav.ParamCategoryID] != "" {
			m.store.GoAmbience("")
			return
		}
		m.store.GoHome()
	case nav.ViewHome, nav.ViewCourses:
		// Already at the root
	default:
		m.store.GoHome()
	}
}

// cyclePlan steps the demo identity through the plan ladder. A real
// deployment replaces this with the external identity flow calling
// Login/UpdateUser directly.
func (m *Model) cyclePlan() {
	snap := m.store.Snapshot()

	user := snap.User
	if user == nil {
		user = &domain.User{ID: "local", Name: "Local User", Plan: domain.PlanFree}
	}

	switch user.Plan {
	case domain.PlanFree:
		user.Plan = domain.PlanBasic
	case domain.PlanBasic:
		user.Plan = domain.PlanStandard
	case domain.PlanStandard:
		user.Plan = domain.PlanPremium
	default:
		user.Plan = domain.PlanFree
	}

	m.store.UpdateUser(user)
	m.statusMsg = "Plan switched to " + user.Plan.String()
	m.statusIsErr = false
}
