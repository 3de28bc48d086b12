package playback

// MediaEvent is an inbound signal from the media surface. The surface owns
// the authoritative playback clock; the engine only reacts to these three
// signals and never reaches into the surface.
type MediaEvent interface {
	isMediaEvent()
}

// TimeUpdated reports the surface's current position, and optionally the
// real media duration once known. A zero or negative duration is a
// transient reading during media load and is ignored.
type TimeUpdated struct {
	Position float64 // seconds
	Duration float64 // seconds; <= 0 means unknown
}

// Ended signals that the current item finished playing
type Ended struct{}

// MetadataLoaded reports the real media duration once decoding begins
type MetadataLoaded struct {
	Duration float64 // seconds; <= 0 means unknown
}

func (TimeUpdated) isMediaEvent()    {}
func (Ended) isMediaEvent()          {}
func (MetadataLoaded) isMediaEvent() {}
