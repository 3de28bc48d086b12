// Package app wires the catalog, playback engine, progress ledger,
// favorites, navigation router, and persistence into a single application
// store: one snapshot out, one action surface in.
package app

import (
	"log/slog"

	"github.com/quietloop/sona/internal/catalog"
	"github.com/quietloop/sona/internal/domain"
	"github.com/quietloop/sona/internal/favorites"
	"github.com/quietloop/sona/internal/nav"
	"github.com/quietloop/sona/internal/playback"
	"github.com/quietloop/sona/internal/progress"
)

// Favorite kinds used with the persistence boundary
const (
	favoriteCourses = "courses"
	favoriteTracks  = "tracks"
)

// UserState is the load/save boundary for persisted user state
// (consumer-defined interface; store.UserStore satisfies it).
type UserState interface {
	GetProgress() (map[string][]string, bool)
	SaveProgress(entries map[string][]string) error
	GetFavorites(kind string) ([]string, bool)
	SaveFavorites(kind string, ids []string) error
	GetUser() (*domain.User, bool)
	SaveUser(user *domain.User) error
	ClearUser()
}

// Store is the application's composition root. It is constructed once at
// startup and passed by reference to the presentation layer; there is no
// package-level global. All mutation goes through its action methods,
// applied in call order on a single logical thread.
//
// Entitlement is enforced here, before playback is invoked: the engine
// trusts its caller, and this store is that caller.
type Store struct {
	catalog *catalog.Catalog
	engine  *playback.Engine
	ledger  *progress.Ledger
	router  *nav.Router
	persist UserState
	logger  *slog.Logger

	favCourses *favorites.Registry
	favTracks  *favorites.Registry

	user *domain.User // nil means signed out (free tier)
}

// NewStore builds the application store, restoring persisted user state
func NewStore(cat *catalog.Catalog, persist UserState, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	ledger := progress.NewLedger()
	s := &Store{
		catalog:    cat,
		ledger:     ledger,
		engine:     playback.NewEngine(ledger, logger),
		router:     nav.NewRouter(),
		persist:    persist,
		logger:     logger,
		favCourses: favorites.NewRegistry(),
		favTracks:  favorites.NewRegistry(),
	}

	if persist != nil {
		if entries, ok := persist.GetProgress(); ok {
			s.ledger.Restore(entries)
		}
		if ids, ok := persist.GetFavorites(favoriteCourses); ok {
			s.favCourses.Restore(ids)
		}
		if ids, ok := persist.GetFavorites(favoriteTracks); ok {
			s.favTracks.Restore(ids)
		}
		if user, ok := persist.GetUser(); ok {
			s.user = user
		}
	}

	return s
}

// Snapshot is the full state exposed to the presentation layer at a point
// in time. It is a copy: views must not mutate it, and mutating it has no
// effect on the store.
type Snapshot struct {
	View    nav.View
	Params  nav.Params
	Overlay bool

	User    *domain.User
	Session playback.Session

	FavoriteCourses []string
	FavoriteTracks  []string
}

// Snapshot returns the current application state as a detached copy
func (s *Store) Snapshot() Snapshot {
	var user *domain.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return Snapshot{
		View:            s.router.View(),
		Params:          s.router.Params(),
		Overlay:         s.router.OverlayOpen(),
		User:            user,
		Session:         s.engine.Session(),
		FavoriteCourses: s.favCourses.IDs(),
		FavoriteTracks:  s.favTracks.IDs(),
	}
}

// Catalog returns the session's immutable content catalog
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// Plan returns the current user's entitlement level (free when signed out)
func (s *Store) Plan() domain.Plan {
	if s.user == nil {
		return domain.PlanFree
	}
	return s.user.Plan
}

// === Identity actions (called by the identity collaborator) ===

// Login installs a resolved user
func (s *Store) Login(user *domain.User) {
	if user == nil {
		return
	}
	s.user = user
	s.logger.Info("user logged in", "user", user.ID, "plan", user.Plan.String())
	if s.persist != nil {
		if err := s.persist.SaveUser(user); err != nil {
			s.logger.Warn("failed to persist user", "error", err)
		}
	}
}

// Logout clears the resolved user; playback and progress are untouched
func (s *Store) Logout() {
	s.user = nil
	s.logger.Info("user logged out")
	if s.persist != nil {
		s.persist.ClearUser()
	}
}

// UpdateUser replaces the resolved user, e.g. after a plan change
func (s *Store) UpdateUser(user *domain.User) {
	s.Login(user)
}

// === Playback actions ===

// StartLesson begins lesson playback after an entitlement check. Denied
// content routes to the upsell view and never reaches the engine; unknown
// content routes to the not-found view.
func (s *Store) StartLesson(courseID, lessonID string) {
	lesson, course, err := s.catalog.Lesson(courseID, lessonID)
	if err != nil {
		s.logger.Warn("start lesson failed", "course", courseID, "lesson", lessonID, "error", err)
		s.router.GoNotFound()
		return
	}
	if !domain.CanAccessLesson(s.Plan(), course, lesson) {
		s.logger.Info("lesson gated by plan", "lesson", lessonID, "plan", s.Plan().String(), "required", course.Plan.String())
		s.router.GoUpsell(lessonID)
		return
	}
	s.applyEffect(s.engine.PlayLesson(lesson, course))
}

// StartAmbience begins ambience playback after an entitlement check
func (s *Store) StartAmbience(trackID string) {
	track, err := s.catalog.Track(trackID)
	if err != nil {
		s.logger.Warn("start ambience failed", "track", trackID, "error", err)
		s.router.GoNotFound()
		return
	}
	if !domain.CanAccessTrack(s.Plan(), track) {
		s.logger.Info("track gated by plan", "track", trackID, "plan", s.Plan().String(), "required", track.Plan.String())
		s.router.GoUpsell(trackID)
		return
	}
	s.applyEffect(s.engine.PlayAmbience(track))
}

// TogglePlayPause flips play/pause; no-op when idle
func (s *Store) TogglePlayPause() {
	s.engine.TogglePlayPause()
}

// Seek requests a jump to the given position in seconds
func (s *Store) Seek(seconds float64) {
	s.engine.Seek(seconds)
}

// ConsumeSeek hands the pending seek request to the media surface
func (s *Store) ConsumeSeek() (float64, bool) {
	return s.engine.ConsumeSeek()
}

// HandleMediaEvent applies a media surface signal. A lesson completion is
// persisted through the load/save boundary; persistence failures are
// logged and never surfaced.
func (s *Store) HandleMediaEvent(ev playback.MediaEvent) {
	wasLesson := s.engine.Session().Kind == playback.KindLesson
	s.engine.HandleMediaEvent(ev, s.Plan())

	if _, ended := ev.(playback.Ended); ended && wasLesson {
		s.persistProgress()
	}
}

// PlayNext skips to the next eligible lesson
func (s *Store) PlayNext() {
	s.engine.PlayNext(s.Plan())
}

// PlayPrev returns to the previous eligible lesson
func (s *Store) PlayPrev() {
	s.engine.PlayPrev(s.Plan())
}

// ClosePlayer ends the playback session and returns home
func (s *Store) ClosePlayer() {
	s.engine.Close()
	s.router.GoHome()
}

// === Progress reads ===

// CoursePercent returns a course's completion percentage (0-100)
func (s *Store) CoursePercent(courseID string) int {
	course, err := s.catalog.Course(courseID)
	if err != nil {
		return 0
	}
	return s.ledger.Percent(course)
}

// IsLessonComplete reports whether a lesson has been completed
func (s *Store) IsLessonComplete(courseID, lessonID string) bool {
	return s.ledger.IsComplete(courseID, lessonID)
}

// CanPlayLesson reports whether the current user may start a lesson;
// the UI uses it to render lock badges and upsell affordances.
func (s *Store) CanPlayLesson(courseID, lessonID string) bool {
	lesson, course, err := s.catalog.Lesson(courseID, lessonID)
	if err != nil {
		return false
	}
	return domain.CanAccessLesson(s.Plan(), course, lesson)
}

// CanPlayTrack reports whether the current user may start an ambience track
func (s *Store) CanPlayTrack(trackID string) bool {
	track, err := s.catalog.Track(trackID)
	if err != nil {
		return false
	}
	return domain.CanAccessTrack(s.Plan(), track)
}

// === Favorites actions ===

// ToggleFavoriteCourse toggles a course favorite. Unknown IDs are a
// silent no-op.
func (s *Store) ToggleFavoriteCourse(courseID string) {
	if _, err := s.catalog.Course(courseID); err != nil {
		return
	}
	s.favCourses.Toggle(courseID)
	s.persistFavorites(favoriteCourses, s.favCourses)
}

// ToggleFavoriteTrack toggles an ambience track favorite. Unknown IDs are
// a silent no-op.
func (s *Store) ToggleFavoriteTrack(trackID string) {
	if _, err := s.catalog.Track(trackID); err != nil {
		return
	}
	s.favTracks.Toggle(trackID)
	s.persistFavorites(favoriteTracks, s.favTracks)
}

// IsFavoriteCourse reports whether a course is favorited
func (s *Store) IsFavoriteCourse(courseID string) bool {
	return s.favCourses.Contains(courseID)
}

// IsFavoriteTrack reports whether a track is favorited
func (s *Store) IsFavoriteTrack(trackID string) bool {
	return s.favTracks.Contains(trackID)
}

// === Navigation actions ===

// NavigateTo changes the current view
func (s *Store) NavigateTo(view nav.View, params nav.Params) {
	s.router.NavigateTo(view, params)
}

// GoHome shows the home view
func (s *Store) GoHome() { s.router.GoHome() }

// GoCourses shows the course list
func (s *Store) GoCourses() { s.router.GoCourses() }

// GoCourseDetail shows a single course
func (s *Store) GoCourseDetail(courseID string) { s.router.GoCourseDetail(courseID) }

// GoAmbience shows the ambience browser
func (s *Store) GoAmbience(categoryID string) { s.router.GoAmbience(categoryID) }

// GoFavorites shows favorited content
func (s *Store) GoFavorites() { s.router.GoFavorites() }

// GoSettings shows the settings view
func (s *Store) GoSettings() { s.router.GoSettings() }

// GoPlayer returns to the full-screen player for the active session
func (s *Store) GoPlayer() {
	switch s.engine.Session().Kind {
	case playback.KindLesson:
		s.router.GoPlayer()
	case playback.KindAmbience:
		s.router.GoAmbiencePlayer()
	}
}

// ToggleOverlay flips the settings drawer overlay
func (s *Store) ToggleOverlay() { s.router.ToggleOverlay() }

// === Internal ===

func (s *Store) applyEffect(effect playback.Effect) {
	switch effect {
	case playback.EffectShowPlayer:
		s.router.GoPlayer()
	case playback.EffectShowAmbiencePlayer:
		s.router.GoAmbiencePlayer()
	}
}

func (s *Store) persistProgress() {
	if s.persist == nil {
		return
	}
	if err := s.persist.SaveProgress(s.ledger.Entries()); err != nil {
		s.logger.Warn("failed to persist progress", "error", err)
	}
}

func (s *Store) persistFavorites(kind string, reg *favorites.Registry) {
	if s.persist == nil {
		return
	}
	if err := s.persist.SaveFavorites(kind, reg.IDs()); err != nil {
		s.logger.Warn("failed to persist favorites", "kind", kind, "error", err)
	}
}
