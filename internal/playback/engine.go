// Package playback implements the playback session state machine: what is
// loaded, whether it is playing, and how auto-advance walks a course.
package playback

import (
	"log/slog"

	"github.com/quietloop/sona/internal/domain"
	"github.com/quietloop/sona/internal/progress"
)

// SessionKind tags the active session variant. At most one variant is
// active at a time; the tagged union makes "both active" unrepresentable.
type SessionKind int

const (
	KindNone SessionKind = iota
	KindLesson
	KindAmbience
)

// String returns a human-readable session kind
func (k SessionKind) String() string {
	switch k {
	case KindLesson:
		return "lesson"
	case KindAmbience:
		return "ambience"
	default:
		return "none"
	}
}

// Session is the single playback session. Lesson sessions carry a
// back-reference to their owning course for auto-advance and return
// navigation; ambience sessions carry only the track.
type Session struct {
	Kind   SessionKind
	Lesson *domain.Lesson
	Course *domain.Course
	Track  *domain.AmbienceTrack

	Position float64 // seconds, fed by the media surface
	Duration float64 // seconds, declared until the surface corrects it
	Playing  bool
}

// Active reports whether any session is loaded
func (s Session) Active() bool {
	return s.Kind != KindNone
}

// Effect is a navigation side effect requested by an engine operation.
// The composition root consumes it; the engine stays router-free while the
// documented play-navigates-to-player coupling is preserved.
type Effect int

const (
	EffectNone Effect = iota
	EffectShowPlayer
	EffectShowAmbiencePlayer
)

// Engine owns the playback session and the auto-advance algorithm.
// It enforces mechanics only: entitlement policy is checked by the caller
// before starting playback. The one place entitlement enters the engine is
// the adjacency scan, which skips lessons the given plan cannot access.
//
// Invalid or stale calls (seek with no session, events after close) are
// silent no-ops; the media surface may report reactively after the engine
// has already moved on.
type Engine struct {
	ledger *progress.Ledger
	logger *slog.Logger

	session     Session
	pendingSeek *float64
}

// NewEngine creates an idle engine writing completions into the ledger
func NewEngine(ledger *progress.Ledger, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{ledger: ledger, logger: logger}
}

// Session returns a copy of the current session
func (e *Engine) Session() Session {
	return e.session
}

// PendingSeek returns the unconsumed seek request, if any
func (e *Engine) PendingSeek() (float64, bool) {
	if e.pendingSeek == nil {
		return 0, false
	}
	return *e.pendingSeek, true
}

// PlayLesson starts a lesson session, replacing any existing session
// wholesale. Entitlement is the caller's responsibility: previews are
// intentionally playable without it. Returns the navigate-to-player effect.
func (e *Engine) PlayLesson(lesson *domain.Lesson, course *domain.Course) Effect {
	if lesson == nil || course == nil {
		return EffectNone
	}
	e.startLesson(lesson, course)
	return EffectShowPlayer
}

// PlayAmbience starts an ambience session, replacing any existing session
func (e *Engine) PlayAmbience(track *domain.AmbienceTrack) Effect {
	if track == nil {
		return EffectNone
	}
	e.pendingSeek = nil
	e.session = Session{
		Kind:     KindAmbience,
		Track:    track,
		Position: 0,
		Duration: float64(track.Duration),
		Playing:  true,
	}
	e.logger.Info("ambience started", "track", track.ID)
	return EffectShowAmbiencePlayer
}

// TogglePlayPause flips the playing flag. No-op when idle.
func (e *Engine) TogglePlayPause() {
	if !e.session.Active() {
		return
	}
	e.session.Playing = !e.session.Playing
}

// Seek records a pending seek request for the media surface to consume.
// A second request before consumption overwrites the first (last-write-wins).
// No-op when idle: no pending seek is recorded.
func (e *Engine) Seek(seconds float64) {
	if !e.session.Active() {
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	e.pendingSeek = &seconds
}

// ConsumeSeek returns the pending seek request and clears it.
// Each request is consumed exactly once.
func (e *Engine) ConsumeSeek() (float64, bool) {
	if e.pendingSeek == nil {
		return 0, false
	}
	v := *e.pendingSeek
	e.pendingSeek = nil
	return v, true
}

// HandleMediaEvent applies a surface signal to the session. The user plan
// is needed for auto-advance eligibility on Ended.
func (e *Engine) HandleMediaEvent(ev MediaEvent, userPlan domain.Plan) {
	if !e.session.Active() {
		return // stray event after close
	}

	switch v := ev.(type) {
	case TimeUpdated:
		e.session.Position = v.Position
		if v.Duration > 0 {
			e.session.Duration = v.Duration
		}

	case MetadataLoaded:
		if v.Duration > 0 {
			e.session.Duration = v.Duration
		}

	case Ended:
		e.onEnded(userPlan)
	}
}

// onEnded is the auto-advance decision point. A finished lesson is marked
// complete, then playback moves to the first eligible following lesson; if
// none exists the session stays on the last played lesson with playing
// stopped. Ambience tracks loop.
func (e *Engine) onEnded(userPlan domain.Plan) {
	switch e.session.Kind {
	case KindLesson:
		e.ledger.MarkComplete(e.session.Course.ID, e.session.Lesson.ID)

		next := adjacentEligible(e.session.Course, e.session.Lesson.ID, userPlan, 1)
		if next == nil {
			e.session.Playing = false
			e.logger.Info("course playback finished", "course", e.session.Course.ID, "lesson", e.session.Lesson.ID)
			return
		}
		e.startLesson(next, e.session.Course)

	case KindAmbience:
		e.session.Position = 0
		e.session.Playing = true
	}
}

// PlayNext advances to the next eligible lesson in the current course.
// Stops playback when none exists. No-op outside a lesson session.
func (e *Engine) PlayNext(userPlan domain.Plan) {
	if e.session.Kind != KindLesson {
		return
	}
	next := adjacentEligible(e.session.Course, e.session.Lesson.ID, userPlan, 1)
	if next == nil {
		e.session.Playing = false
		return
	}
	e.startLesson(next, e.session.Course)
}

// PlayPrev moves to the previous eligible lesson in the current course.
// No-op when none exists or outside a lesson session.
func (e *Engine) PlayPrev(userPlan domain.Plan) {
	if e.session.Kind != KindLesson {
		return
	}
	prev := adjacentEligible(e.session.Course, e.session.Lesson.ID, userPlan, -1)
	if prev == nil {
		return
	}
	e.startLesson(prev, e.session.Course)
}

// Close drops the session entirely. Unconditional.
func (e *Engine) Close() {
	e.session = Session{}
	e.pendingSeek = nil
}

func (e *Engine) startLesson(lesson *domain.Lesson, course *domain.Course) {
	e.pendingSeek = nil
	e.session = Session{
		Kind:     KindLesson,
		Lesson:   lesson,
		Course:   course,
		Position: 0,
		Duration: float64(lesson.Duration),
		Playing:  true,
	}
	e.logger.Info("lesson started", "course", course.ID, "lesson", lesson.ID)
}

// adjacentEligible scans the course's flattened lesson order from the
// current lesson, stepping forward (+1) or backward (-1), and returns the
// first lesson the plan can access. Locked lessons the plan cannot access
// are skipped silently. Returns nil when the scan exhausts the course.
func adjacentEligible(course *domain.Course, currentID string, userPlan domain.Plan, step int) *domain.Lesson {
	flat := course.Lessons()

	idx := -1
	for i, l := range flat {
		if l.ID == currentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	for i := idx + step; i >= 0 && i < len(flat); i += step {
		if domain.CanAccessLesson(userPlan, course, flat[i]) {
			return flat[i]
		}
	}
	return nil
}
