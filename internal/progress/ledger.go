// Package progress tracks per-course lesson completion.
package progress

import (
	"sort"

	"github.com/quietloop/sona/internal/domain"
)

// Ledger records which lessons have been completed, per course.
// Completion is monotonic: normal playback flow never un-completes a lesson.
// Course sets are created lazily on first completion.
type Ledger struct {
	completed map[string]map[string]struct{} // courseID -> set of lessonIDs
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{completed: make(map[string]map[string]struct{})}
}

// MarkComplete records a lesson as completed. Idempotent.
func (l *Ledger) MarkComplete(courseID, lessonID string) {
	if courseID == "" || lessonID == "" {
		return
	}
	set, ok := l.completed[courseID]
	if !ok {
		set = make(map[string]struct{})
		l.completed[courseID] = set
	}
	set[lessonID] = struct{}{}
}

// IsComplete reports whether a lesson has been completed
func (l *Ledger) IsComplete(courseID, lessonID string) bool {
	set, ok := l.completed[courseID]
	if !ok {
		return false
	}
	_, done := set[lessonID]
	return done
}

// CompletionCount returns the number of completed lessons for a course
func (l *Ledger) CompletionCount(courseID string) int {
	return len(l.completed[courseID])
}

// Percent returns course completion as a whole percentage (0-100).
// A course with zero lessons is defined as 0% complete.
func (l *Ledger) Percent(course *domain.Course) int {
	if course == nil {
		return 0
	}
	total := course.LessonCount()
	if total == 0 {
		return 0
	}
	done := l.CompletionCount(course.ID)
	if done > total {
		done = total
	}
	return done * 100 / total
}

// Entries returns the ledger contents as sorted ID slices, suitable for
// persistence. Mutating the result does not affect the ledger.
func (l *Ledger) Entries() map[string][]string {
	out := make(map[string][]string, len(l.completed))
	for courseID, set := range l.completed {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out[courseID] = ids
	}
	return out
}

// Restore replaces the ledger contents from persisted entries
func (l *Ledger) Restore(entries map[string][]string) {
	l.completed = make(map[string]map[string]struct{}, len(entries))
	for courseID, ids := range entries {
		if courseID == "" || len(ids) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if id != "" {
				set[id] = struct{}{}
			}
		}
		l.completed[courseID] = set
	}
}
