package tui

import "time"

// Message types for the TUI

// TickMsg drives the playback clock. The TUI is the media surface here:
// it owns the authoritative position and feeds the engine TimeUpdated and
// Ended events on each tick.
type TickMsg struct {
	At time.Time
}

// StatusMsg sets a temporary status bar message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
