package domain

import "fmt"

// Course represents a guided meditation course: an ordered list of
// sections, each an ordered list of lessons.
type Course struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Summary  string     `json:"summary,omitempty"`
	Author   string     `json:"author,omitempty"`
	Plan     Plan       `json:"plan"` // required entitlement level
	Sections []*Section `json:"sections"`

	// Image URL for detail views (optional)
	ArtURL string `json:"art_url,omitempty"`
}

// Lessons returns the course's lessons flattened into playback order:
// section order first, then lesson position within each section.
func (c *Course) Lessons() []*Lesson {
	var lessons []*Lesson
	for _, sec := range c.Sections {
		lessons = append(lessons, sec.Lessons...)
	}
	return lessons
}

// LessonCount returns the total number of lessons across all sections
func (c *Course) LessonCount() int {
	n := 0
	for _, sec := range c.Sections {
		n += len(sec.Lessons)
	}
	return n
}

// FindLesson returns the lesson with the given ID, or nil if absent
func (c *Course) FindLesson(lessonID string) *Lesson {
	for _, sec := range c.Sections {
		for _, l := range sec.Lessons {
			if l.ID == lessonID {
				return l
			}
		}
	}
	return nil
}

// TotalDuration returns the summed duration of all lessons in seconds
func (c *Course) TotalDuration() int {
	total := 0
	for _, l := range c.Lessons() {
		total += l.Duration
	}
	return total
}

// Section is an ordered group of lessons within a course
type Section struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Lessons []*Lesson `json:"lessons"`
}

// Lesson is a single playable audio lesson within a course section
type Lesson struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"` // seconds (declared; corrected once media reports)
	AudioRef string `json:"audio_ref"`
	Position int    `json:"position"` // ordinal within its section

	// Locked gates the lesson behind the course's required plan.
	// Locked=false marks a free preview, independent of the course plan.
	Locked bool `json:"locked"`
}

// FormattedDuration returns the lesson duration as M:SS or H:MM:SS
func (l *Lesson) FormattedDuration() string {
	return FormatSeconds(l.Duration)
}

// AmbienceCategory groups related ambience tracks (e.g. "Rain", "Forest")
type AmbienceCategory struct {
	ID     string           `json:"id"`
	Title  string           `json:"title"`
	Tracks []*AmbienceTrack `json:"tracks"`
}

// AmbienceTrack is a standalone looping soundscape track
type AmbienceTrack struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"` // seconds
	AudioRef string `json:"audio_ref"`
	Plan     Plan   `json:"plan"` // required entitlement level
}

// FormattedDuration returns the track duration as M:SS or H:MM:SS
func (t *AmbienceTrack) FormattedDuration() string {
	return FormatSeconds(t.Duration)
}

// User is a resolved identity supplied by the identity collaborator.
// The core never authenticates; it only consumes the result.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Plan Plan   `json:"plan"`
}

// FormatSeconds renders a second count as M:SS or H:MM:SS
func FormatSeconds(secs int) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
