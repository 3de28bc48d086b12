package playback

import (
	"testing"

	"github.com/quietloop/sona/internal/domain"
	"github.com/quietloop/sona/internal/log"
	"github.com/quietloop/sona/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// courseOf builds a single-section course from the given lessons
func courseOf(plan domain.Plan, lessons ...*domain.Lesson) *domain.Course {
	return &domain.Course{
		ID:   "c1",
		Plan: plan,
		Sections: []*domain.Section{
			{ID: "s1", Lessons: lessons},
		},
	}
}

func lesson(id string, locked bool) *domain.Lesson {
	return &domain.Lesson{ID: id, Title: id, Duration: 300, Locked: locked}
}

func newEngine() (*Engine, *progress.Ledger) {
	ledger := progress.NewLedger()
	return NewEngine(ledger, log.NullLogger()), ledger
}

func TestPlayLessonStartsSession(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	course := courseOf(domain.PlanFree, l1)

	effect := e.PlayLesson(l1, course)

	assert.Equal(t, EffectShowPlayer, effect)
	s := e.Session()
	assert.Equal(t, KindLesson, s.Kind)
	assert.Equal(t, "l1", s.Lesson.ID)
	assert.Equal(t, "c1", s.Course.ID)
	assert.Equal(t, float64(0), s.Position)
	assert.Equal(t, float64(300), s.Duration)
	assert.True(t, s.Playing)
}

func TestPlaySupersedesExistingSession(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	l2 := lesson("l2", false)
	course := courseOf(domain.PlanFree, l1, l2)

	e.PlayLesson(l1, course)
	e.HandleMediaEvent(TimeUpdated{Position: 120}, domain.PlanFree)
	e.PlayLesson(l2, course)

	s := e.Session()
	assert.Equal(t, KindLesson, s.Kind)
	assert.Equal(t, "l2", s.Lesson.ID)
	assert.Equal(t, float64(0), s.Position, "position resets on replacement")
	assert.True(t, s.Playing)
}

func TestLessonReplacedByAmbienceNeverBlends(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	course := courseOf(domain.PlanFree, l1)
	track := &domain.AmbienceTrack{ID: "rain", Duration: 600}

	e.PlayLesson(l1, course)
	effect := e.PlayAmbience(track)

	assert.Equal(t, EffectShowAmbiencePlayer, effect)
	s := e.Session()
	assert.Equal(t, KindAmbience, s.Kind)
	assert.Equal(t, "rain", s.Track.ID)
	assert.Nil(t, s.Lesson)
	assert.Nil(t, s.Course)
}

func TestTogglePlayPause(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	e.PlayLesson(l1, courseOf(domain.PlanFree, l1))

	e.TogglePlayPause()
	assert.False(t, e.Session().Playing)
	e.TogglePlayPause()
	assert.True(t, e.Session().Playing)
}

func TestTogglePlayPauseIdleIsNoOp(t *testing.T) {
	e, _ := newEngine()
	e.TogglePlayPause()
	assert.Equal(t, KindNone, e.Session().Kind)
}

func TestSeekWhileIdleRecordsNothing(t *testing.T) {
	e, _ := newEngine()

	e.Seek(45)

	_, ok := e.PendingSeek()
	assert.False(t, ok)
}

func TestSeekLastWriteWins(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	e.PlayLesson(l1, courseOf(domain.PlanFree, l1))

	e.Seek(30)
	e.Seek(90)

	v, ok := e.ConsumeSeek()
	require.True(t, ok)
	assert.Equal(t, float64(90), v)

	// Consumed exactly once
	_, ok = e.ConsumeSeek()
	assert.False(t, ok)
}

func TestSeekClampedToZero(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	e.PlayLesson(l1, courseOf(domain.PlanFree, l1))

	e.Seek(-10)

	v, ok := e.ConsumeSeek()
	require.True(t, ok)
	assert.Equal(t, float64(0), v)
}

func TestTimeUpdatedIgnoresInvalidDuration(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	e.PlayLesson(l1, courseOf(domain.PlanFree, l1))

	e.HandleMediaEvent(TimeUpdated{Position: 10, Duration: 0}, domain.PlanFree)
	assert.Equal(t, float64(300), e.Session().Duration, "zero duration is a transient reading")

	e.HandleMediaEvent(TimeUpdated{Position: 11, Duration: -1}, domain.PlanFree)
	assert.Equal(t, float64(300), e.Session().Duration)

	e.HandleMediaEvent(TimeUpdated{Position: 12, Duration: 284.5}, domain.PlanFree)
	s := e.Session()
	assert.Equal(t, float64(12), s.Position)
	assert.Equal(t, 284.5, s.Duration, "real duration adopted once reported")
}

func TestMetadataLoadedCorrectsDuration(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	e.PlayLesson(l1, courseOf(domain.PlanFree, l1))

	e.HandleMediaEvent(MetadataLoaded{Duration: 312}, domain.PlanFree)
	assert.Equal(t, float64(312), e.Session().Duration)

	e.HandleMediaEvent(MetadataLoaded{Duration: 0}, domain.PlanFree)
	assert.Equal(t, float64(312), e.Session().Duration)
}

func TestStrayEventAfterCloseIsNoOp(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	e.PlayLesson(l1, courseOf(domain.PlanFree, l1))
	e.Close()

	e.HandleMediaEvent(TimeUpdated{Position: 99, Duration: 99}, domain.PlanFree)
	e.HandleMediaEvent(Ended{}, domain.PlanFree)

	assert.Equal(t, KindNone, e.Session().Kind)
}

func TestEndedMarksCompleteAndAdvances(t *testing.T) {
	e, ledger := newEngine()
	l1 := lesson("l1", false)
	l2 := lesson("l2", false)
	course := courseOf(domain.PlanFree, l1, l2)

	e.PlayLesson(l1, course)
	e.HandleMediaEvent(Ended{}, domain.PlanFree)

	assert.True(t, ledger.IsComplete("c1", "l1"))
	s := e.Session()
	assert.Equal(t, "l2", s.Lesson.ID)
	assert.True(t, s.Playing)
	assert.Equal(t, float64(0), s.Position)
}

func TestEndedMarksCompleteExactlyOncePerCall(t *testing.T) {
	e, ledger := newEngine()
	l1 := lesson("l1", false)
	course := courseOf(domain.PlanFree, l1)

	e.PlayLesson(l1, course)
	e.HandleMediaEvent(Ended{}, domain.PlanFree)
	assert.Equal(t, 1, ledger.CompletionCount("c1"))

	// Replaying and finishing again keeps the lesson complete
	e.PlayLesson(l1, course)
	e.HandleMediaEvent(Ended{}, domain.PlanFree)
	assert.True(t, ledger.IsComplete("c1", "l1"))
	assert.Equal(t, 1, ledger.CompletionCount("c1"))
}

func TestAutoAdvanceSkipsLockedLessons(t *testing.T) {
	e, ledger := newEngine()
	l1 := lesson("l1", false)
	l2 := lesson("l2", true)
	l3 := lesson("l3", true)
	l4 := lesson("l4", false)
	course := courseOf(domain.PlanStandard, l1, l2, l3, l4)

	e.PlayLesson(l1, course)
	e.HandleMediaEvent(Ended{}, domain.PlanFree)

	// l2 and l3 are locked and the free plan is insufficient: skip to l4
	assert.True(t, ledger.IsComplete("c1", "l1"))
	s := e.Session()
	assert.Equal(t, "l4", s.Lesson.ID)
	assert.True(t, s.Playing)
}

func TestAutoAdvanceAcrossSections(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	l2 := lesson("l2", false)
	course := &domain.Course{
		ID:   "c1",
		Plan: domain.PlanFree,
		Sections: []*domain.Section{
			{ID: "s1", Lessons: []*domain.Lesson{l1}},
			{ID: "s2", Lessons: []*domain.Lesson{l2}},
		},
	}

	e.PlayLesson(l1, course)
	e.HandleMediaEvent(Ended{}, domain.PlanFree)

	assert.Equal(t, "l2", e.Session().Lesson.ID)
}

// The gated-course scenario: the free user finishes the preview, the only
// following lesson is locked, playback stops on the lesson actually played.
func TestAutoAdvanceNoEligibleStopsOnLastPlayed(t *testing.T) {
	e, ledger := newEngine()
	l1 := lesson("l1", false)
	l2 := lesson("l2", true)
	course := courseOf(domain.PlanStandard, l1, l2)

	e.PlayLesson(l1, course)
	e.HandleMediaEvent(Ended{}, domain.PlanFree)

	assert.True(t, ledger.IsComplete("c1", "l1"))
	s := e.Session()
	assert.Equal(t, KindLesson, s.Kind, "session persists, not cleared to idle")
	assert.Equal(t, "l1", s.Lesson.ID, "l2 was never started")
	assert.False(t, s.Playing)
}

func TestAutoAdvanceEntitledUserPlaysLockedLesson(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	l2 := lesson("l2", true)
	course := courseOf(domain.PlanStandard, l1, l2)

	e.PlayLesson(l1, course)
	e.HandleMediaEvent(Ended{}, domain.PlanStandard)

	s := e.Session()
	assert.Equal(t, "l2", s.Lesson.ID)
	assert.True(t, s.Playing)
}

func TestAmbienceLoopsOnEnded(t *testing.T) {
	e, _ := newEngine()
	track := &domain.AmbienceTrack{ID: "rain", Duration: 600}

	e.PlayAmbience(track)
	e.HandleMediaEvent(TimeUpdated{Position: 600}, domain.PlanFree)
	e.HandleMediaEvent(Ended{}, domain.PlanFree)

	s := e.Session()
	assert.Equal(t, KindAmbience, s.Kind)
	assert.Equal(t, "rain", s.Track.ID)
	assert.Equal(t, float64(0), s.Position)
	assert.True(t, s.Playing, "ambience repeats rather than advancing")
}

func TestPlayNextStopsAtCourseBoundary(t *testing.T) {
	e, ledger := newEngine()
	l1 := lesson("l1", false)
	l2 := lesson("l2", false)
	course := courseOf(domain.PlanFree, l1, l2)

	e.PlayLesson(l2, course)
	e.PlayNext(domain.PlanFree)

	s := e.Session()
	assert.Equal(t, "l2", s.Lesson.ID)
	assert.False(t, s.Playing, "no next lesson stops playback")
	assert.False(t, ledger.IsComplete("c1", "l2"), "manual skip has no completion side effect")
}

func TestPlayPrevNoEligibleIsNoOp(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", true)
	l2 := lesson("l2", false)
	course := courseOf(domain.PlanStandard, l1, l2)

	e.PlayLesson(l2, course)
	e.PlayPrev(domain.PlanFree)

	s := e.Session()
	assert.Equal(t, "l2", s.Lesson.ID)
	assert.True(t, s.Playing, "prev with nothing eligible leaves playback untouched")
}

func TestPlayPrevSkipsLocked(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	l2 := lesson("l2", true)
	l3 := lesson("l3", false)
	course := courseOf(domain.PlanPremium, l1, l2, l3)

	e.PlayLesson(l3, course)
	e.PlayPrev(domain.PlanFree)

	assert.Equal(t, "l1", e.Session().Lesson.ID)
}

func TestNextPrevOutsideLessonSessionAreNoOps(t *testing.T) {
	e, _ := newEngine()
	track := &domain.AmbienceTrack{ID: "rain", Duration: 600}
	e.PlayAmbience(track)

	e.PlayNext(domain.PlanFree)
	e.PlayPrev(domain.PlanFree)

	assert.Equal(t, KindAmbience, e.Session().Kind)
	assert.True(t, e.Session().Playing)
}

func TestCloseClearsEverything(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	e.PlayLesson(l1, courseOf(domain.PlanFree, l1))
	e.Seek(30)

	e.Close()

	s := e.Session()
	assert.Equal(t, KindNone, s.Kind)
	assert.Nil(t, s.Lesson)
	assert.Nil(t, s.Course)
	assert.Nil(t, s.Track)
	_, ok := e.PendingSeek()
	assert.False(t, ok)
}

func TestPlaySwitchClearsPendingSeek(t *testing.T) {
	e, _ := newEngine()
	l1 := lesson("l1", false)
	l2 := lesson("l2", false)
	course := courseOf(domain.PlanFree, l1, l2)

	e.PlayLesson(l1, course)
	e.Seek(100)
	e.PlayLesson(l2, course)

	_, ok := e.PendingSeek()
	assert.False(t, ok, "stale seek must not apply to the new session")
}
