package app

import (
	"testing"

	"github.com/quietloop/sona/internal/catalog"
	"github.com/quietloop/sona/internal/domain"
	"github.com/quietloop/sona/internal/log"
	"github.com/quietloop/sona/internal/nav"
	"github.com/quietloop/sona/internal/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserState is an in-memory stand-in for the persistence boundary
type fakeUserState struct {
	progress  map[string][]string
	favorites map[string][]string
	user      *domain.User

	progressSaves int
}

func newFakeUserState() *fakeUserState {
	return &fakeUserState{favorites: make(map[string][]string)}
}

func (f *fakeUserState) GetProgress() (map[string][]string, bool) {
	return f.progress, f.progress != nil
}

func (f *fakeUserState) SaveProgress(entries map[string][]string) error {
	f.progress = entries
	f.progressSaves++
	return nil
}

func (f *fakeUserState) GetFavorites(kind string) ([]string, bool) {
	ids, ok := f.favorites[kind]
	return ids, ok
}

func (f *fakeUserState) SaveFavorites(kind string, ids []string) error {
	f.favorites[kind] = ids
	return nil
}

func (f *fakeUserState) GetUser() (*domain.User, bool) {
	return f.user, f.user != nil
}

func (f *fakeUserState) SaveUser(user *domain.User) error {
	f.user = user
	return nil
}

func (f *fakeUserState) ClearUser() {
	f.user = nil
}

func newTestStore(t *testing.T) (*Store, *fakeUserState) {
	t.Helper()
	persist := newFakeUserState()
	return NewStore(catalog.Sample(), persist, log.NullLogger()), persist
}

func standardUser() *domain.User {
	return &domain.User{ID: "u1", Name: "Ava", Plan: domain.PlanStandard}
}

func TestSignedOutUserIsFreeTier(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, domain.PlanFree, s.Plan())
	assert.Nil(t, s.Snapshot().User)
}

func TestStartLessonAllowed(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartLesson("foundations", "f1")

	snap := s.Snapshot()
	assert.Equal(t, nav.ViewPlayer, snap.View, "play navigates to the full-screen player")
	assert.Equal(t, playback.KindLesson, snap.Session.Kind)
	assert.Equal(t, "f1", snap.Session.Lesson.ID)
	assert.True(t, snap.Session.Playing)
}

func TestStartLessonPreviewPlayableWithoutEntitlement(t *testing.T) {
	s, _ := newTestStore(t)

	// deep-sleep requires standard, but its first lesson is a free preview
	s.StartLesson("deep-sleep", "d1")

	snap := s.Snapshot()
	assert.Equal(t, nav.ViewPlayer, snap.View)
	assert.Equal(t, "d1", snap.Session.Lesson.ID)
}

func TestStartLessonDeniedRoutesToUpsell(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartLesson("deep-sleep", "d2") // locked, free < standard

	snap := s.Snapshot()
	assert.Equal(t, nav.ViewUpsell, snap.View)
	assert.Equal(t, "d2", snap.Params[nav.ParamContentID])
	assert.Equal(t, playback.KindNone, snap.Session.Kind, "denied content never reaches the engine")
}

func TestStartLessonAllowedAfterUpgrade(t *testing.T) {
	s, _ := newTestStore(t)
	s.Login(standardUser())

	s.StartLesson("deep-sleep", "d2")

	snap := s.Snapshot()
	assert.Equal(t, nav.ViewPlayer, snap.View)
	assert.Equal(t, "d2", snap.Session.Lesson.ID)
}

func TestStartLessonUnknownRoutesToNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartLesson("foundations", "missing")

	snap := s.Snapshot()
	assert.Equal(t, nav.ViewNotFound, snap.View)
	assert.Equal(t, playback.KindNone, snap.Session.Kind)
}

func TestStartAmbience(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartAmbience("rain-window")

	snap := s.Snapshot()
	assert.Equal(t, nav.ViewAmbiencePlayer, snap.View)
	assert.Equal(t, playback.KindAmbience, snap.Session.Kind)
	assert.Equal(t, "rain-window", snap.Session.Track.ID)
}

func TestStartAmbienceDenied(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartAmbience("forest-stream") // requires standard

	snap := s.Snapshot()
	assert.Equal(t, nav.ViewUpsell, snap.View)
	assert.Equal(t, playback.KindNone, snap.Session.Kind)
}

func TestNavigationDoesNotStopPlayback(t *testing.T) {
	s, _ := newTestStore(t)
	s.StartLesson("foundations", "f1")

	s.GoCourses()
	s.GoSettings()
	s.GoFavorites()

	snap := s.Snapshot()
	assert.Equal(t, nav.ViewFavorites, snap.View)
	assert.Equal(t, "f1", snap.Session.Lesson.ID)
	assert.True(t, snap.Session.Playing)
}

func TestClosePlayerReturnsHome(t *testing.T) {
	s, _ := newTestStore(t)
	s.StartLesson("foundations", "f1")

	s.ClosePlayer()

	snap := s.Snapshot()
	assert.Equal(t, nav.ViewHome, snap.View)
	assert.Equal(t, playback.KindNone, snap.Session.Kind)
}

func TestLessonEndPersistsProgress(t *testing.T) {
	s, persist := newTestStore(t)
	s.StartLesson("foundations", "f1")

	s.HandleMediaEvent(playback.Ended{})

	assert.True(t, s.IsLessonComplete("foundations", "f1"))
	require.Equal(t, 1, persist.progressSaves)
	assert.Equal(t, []string{"f1"}, persist.progress["foundations"])
}

func TestAutoAdvanceUsesCurrentPlan(t *testing.T) {
	s, _ := newTestStore(t)

	// Free user finishes the deep-sleep preview; d2/d3 are locked
	s.StartLesson("deep-sleep", "d1")
	s.HandleMediaEvent(playback.Ended{})

	snap := s.Snapshot()
	assert.Equal(t, "d1", snap.Session.Lesson.ID, "session stays on the last played lesson")
	assert.False(t, snap.Session.Playing)

	// After an upgrade the same flow advances into gated content
	s.UpdateUser(standardUser())
	s.StartLesson("deep-sleep", "d1")
	s.HandleMediaEvent(playback.Ended{})

	assert.Equal(t, "d2", s.Snapshot().Session.Lesson.ID)
}

func TestCoursePercent(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, 0, s.CoursePercent("foundations"))
	assert.Equal(t, 0, s.CoursePercent("unknown"))

	s.StartLesson("foundations", "f1")
	s.HandleMediaEvent(playback.Ended{})

	// f1 done, f2 now playing: 1 of 5
	assert.Equal(t, 20, s.CoursePercent("foundations"))
}

func TestFavoriteToggleAndPersist(t *testing.T) {
	s, persist := newTestStore(t)

	s.ToggleFavoriteCourse("foundations")
	assert.True(t, s.IsFavoriteCourse("foundations"))
	assert.Equal(t, []string{"foundations"}, persist.favorites[favoriteCourses])

	s.ToggleFavoriteCourse("foundations")
	assert.False(t, s.IsFavoriteCourse("foundations"))
	assert.Empty(t, persist.favorites[favoriteCourses])
}

func TestFavoriteUnknownIDIsNoOp(t *testing.T) {
	s, persist := newTestStore(t)

	s.ToggleFavoriteCourse("ghost")
	s.ToggleFavoriteTrack("ghost")

	assert.Empty(t, s.Snapshot().FavoriteCourses)
	assert.Empty(t, s.Snapshot().FavoriteTracks)
	assert.Empty(t, persist.favorites)
}

func TestRestoreFromPersistence(t *testing.T) {
	persist := newFakeUserState()
	persist.progress = map[string][]string{"foundations": {"f1", "f2"}}
	persist.favorites[favoriteTracks] = []string{"rain-window"}
	persist.user = standardUser()

	s := NewStore(catalog.Sample(), persist, log.NullLogger())

	assert.True(t, s.IsLessonComplete("foundations", "f1"))
	assert.Equal(t, 40, s.CoursePercent("foundations"))
	assert.True(t, s.IsFavoriteTrack("rain-window"))
	assert.Equal(t, domain.PlanStandard, s.Plan())
}

func TestLogoutDropsEntitlement(t *testing.T) {
	s, persist := newTestStore(t)
	s.Login(standardUser())
	require.Equal(t, domain.PlanStandard, s.Plan())

	s.Logout()

	assert.Equal(t, domain.PlanFree, s.Plan())
	assert.Nil(t, persist.user)
	assert.True(t, s.CanPlayLesson("deep-sleep", "d1"), "previews stay playable")
	assert.False(t, s.CanPlayLesson("deep-sleep", "d2"))
}

func TestSnapshotIsDetached(t *testing.T) {
	s, _ := newTestStore(t)
	s.Login(standardUser())
	s.GoCourseDetail("foundations")

	snap := s.Snapshot()
	snap.Params[nav.ParamCourseID] = "mutated"
	snap.User.Plan = domain.PlanFree
	snap.FavoriteCourses = append(snap.FavoriteCourses, "mutated")

	fresh := s.Snapshot()
	assert.Equal(t, "foundations", fresh.Params[nav.ParamCourseID])
	assert.Equal(t, domain.PlanStandard, fresh.User.Plan)
	assert.Empty(t, fresh.FavoriteCourses)
}

func TestSeekPassthrough(t *testing.T) {
	s, _ := newTestStore(t)

	// Idle: nothing recorded
	s.Seek(45)
	_, ok := s.ConsumeSeek()
	assert.False(t, ok)

	s.StartLesson("foundations", "f1")
	s.Seek(30)
	s.Seek(60)

	v, ok := s.ConsumeSeek()
	require.True(t, ok)
	assert.Equal(t, float64(60), v)
}

func TestNilPersistenceIsSupported(t *testing.T) {
	s := NewStore(catalog.Sample(), nil, log.NullLogger())

	s.StartLesson("foundations", "f1")
	s.HandleMediaEvent(playback.Ended{})
	s.ToggleFavoriteCourse("foundations")
	s.Login(standardUser())
	s.Logout()

	assert.True(t, s.IsLessonComplete("foundations", "f1"))
	assert.True(t, s.IsFavoriteCourse("foundations"))
}
