package domain

import "fmt"

// ListItem is the polymorphic interface for items shown in browse lists.
// It gives the presentation layer a uniform API for display and filtering
// without switching on concrete types everywhere.
type ListItem interface {
	// GetID returns the unique identifier for this item
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetDescription returns secondary info for display
	GetDescription() string

	// GetItemType returns the type identifier: "course", "lesson", "category", "track"
	GetItemType() string

	// CanDrillDown returns true if this item opens child content
	CanDrillDown() bool
}

func (c *Course) GetID() string    { return c.ID }
func (c *Course) GetTitle() string { return c.Title }
func (c *Course) GetDescription() string {
	n := c.LessonCount()
	if n == 1 {
		return "1 lesson"
	}
	return fmt.Sprintf("%d lessons", n)
}
func (c *Course) GetItemType() string { return "course" }
func (c *Course) CanDrillDown() bool  { return true }

func (l *Lesson) GetID() string          { return l.ID }
func (l *Lesson) GetTitle() string       { return l.Title }
func (l *Lesson) GetDescription() string { return l.FormattedDuration() }
func (l *Lesson) GetItemType() string    { return "lesson" }
func (l *Lesson) CanDrillDown() bool     { return false }

func (a *AmbienceCategory) GetID() string    { return a.ID }
func (a *AmbienceCategory) GetTitle() string { return a.Title }
func (a *AmbienceCategory) GetDescription() string {
	if len(a.Tracks) == 1 {
		return "1 track"
	}
	return fmt.Sprintf("%d tracks", len(a.Tracks))
}
func (a *AmbienceCategory) GetItemType() string { return "category" }
func (a *AmbienceCategory) CanDrillDown() bool  { return true }

func (t *AmbienceTrack) GetID() string          { return t.ID }
func (t *AmbienceTrack) GetTitle() string       { return t.Title }
func (t *AmbienceTrack) GetDescription() string { return t.FormattedDuration() }
func (t *AmbienceTrack) GetItemType() string    { return "track" }
func (t *AmbienceTrack) CanDrillDown() bool     { return false }
